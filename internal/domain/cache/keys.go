// Package cache define las llaves de caché de las colecciones remotas y la tabla
// declarativa mutación → llaves invalidadas.
package cache

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// Colecciones.
const (
	Products    = "productos"
	Ingredients = "insumos"
	Recipes     = "recetas"
	Categories  = "categorias"
	Providers   = "proveedores"
	Orders      = "pedidos"
	Payroll     = "planilla"
	Cash        = "caja"
	Conversions = "conversiones"
	Config      = "config"
	Users       = "usuarios"
	Waste       = "mermas"
	Production  = "produccion"
	Purchases   = "compras"
)

// Key identifica un recurso cacheado: segmentos de ruta más filtros opcionales.
type Key struct {
	Parts  []string
	Params map[string]string
}

// NewKey construye una llave sin filtros.
func NewKey(parts ...string) Key { return Key{Parts: parts} }

// With devuelve una copia con el filtro agregado. Los valores vacíos se ignoran.
func (k Key) With(name, value string) Key {
	if value == "" {
		return k
	}
	params := make(map[string]string, len(k.Params)+1)
	for n, v := range k.Params {
		params[n] = v
	}
	params[name] = value
	return Key{Parts: append([]string(nil), k.Parts...), Params: params}
}

// Collection primer segmento de la llave.
func (k Key) Collection() string {
	if len(k.Parts) == 0 {
		return ""
	}
	return k.Parts[0]
}

// String forma canónica: segmentos unidos por "/" y filtros ordenados.
func (k Key) String() string {
	s := strings.Join(k.Parts, "/")
	if len(k.Params) == 0 {
		return s
	}
	names := make([]string, 0, len(k.Params))
	for n := range k.Params {
		names = append(names, n)
	}
	sort.Strings(names)
	q := make(url.Values, len(names))
	for _, n := range names {
		q.Set(n, k.Params[n])
	}
	return s + "?" + q.Encode()
}

// Matches indica si invalidar k afecta a other: los segmentos de k son prefijo de los de
// other y los filtros de k son subconjunto de los de other. Una llave sin filtros afecta
// todas las variantes filtradas de la colección.
func (k Key) Matches(other Key) bool {
	if len(k.Parts) > len(other.Parts) {
		return false
	}
	for i, p := range k.Parts {
		if other.Parts[i] != p {
			return false
		}
	}
	for n, v := range k.Params {
		if other.Params[n] != v {
			return false
		}
	}
	return true
}

// Llaves de uso común.

func ProductsKey() Key    { return NewKey(Products) }
func IngredientsKey() Key { return NewKey(Ingredients) }
func RecipesKey() Key     { return NewKey(Recipes) }
func CategoriesKey() Key  { return NewKey(Categories) }
func ProvidersKey() Key   { return NewKey(Providers) }
func OrdersKey() Key      { return NewKey(Orders, "lista") }
func PayrollKey() Key     { return NewKey(Payroll) }
func ConversionsKey() Key { return NewKey(Conversions) }
func ConfigKey() Key      { return NewKey(Config) }
func UsersKey() Key       { return NewKey(Users) }
func WasteKey() Key       { return NewKey(Waste) }
func ProductionKey() Key  { return NewKey(Production) }
func PurchasesKey() Key   { return NewKey(Purchases) }

// RecipeKey detalle de una receta.
func RecipeKey(id string) Key { return NewKey(Recipes, id) }

// RecipeCostKey desglose de costo calculado por el servidor.
func RecipeCostKey(id string) Key { return NewKey(Recipes, id, "costo") }

// RecipeByProductKey receta asociada a un producto.
func RecipeByProductKey(productID string) Key { return NewKey(Recipes, "producto", productID) }

// OrderKey detalle de un pedido.
func OrderKey(id string) Key { return NewKey(Orders, "detalle", id) }

// CashKey listado de movimientos de caja con los filtros mostrados.
func CashKey(f entity.CashFilter) Key {
	k := NewKey(Cash)
	if !f.From.IsZero() {
		k = k.With("desde", f.From.Format(time.DateOnly))
	}
	if !f.To.IsZero() {
		k = k.With("hasta", f.To.Format(time.DateOnly))
	}
	return k.With("tipo", f.Type)
}
