package cache

import (
	"fmt"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Mutation operación de escritura contra la API remota.
type Mutation string

const (
	IngredientCreate Mutation = "insumo.crear"
	IngredientUpdate Mutation = "insumo.actualizar"
	IngredientDelete Mutation = "insumo.eliminar"
	PurchaseRegister Mutation = "compra.registrar"

	ProductCreate Mutation = "producto.crear"
	ProductUpdate Mutation = "producto.actualizar"
	ProductDelete Mutation = "producto.eliminar"

	RecipeCreate Mutation = "receta.crear"
	RecipeUpdate Mutation = "receta.actualizar"
	RecipeDelete Mutation = "receta.eliminar"

	ProductionRegister Mutation = "produccion.registrar"
	WasteRegister      Mutation = "merma.registrar"
	Checkout           Mutation = "venta.cobrar"
	CashRegister       Mutation = "caja.registrar"

	PayrollCreate Mutation = "planilla.crear"
	PayrollUpdate Mutation = "planilla.actualizar"
	PayrollDelete Mutation = "planilla.eliminar"

	OrderCreate   Mutation = "pedido.crear"
	OrderUpdate   Mutation = "pedido.actualizar"
	OrderDeposit  Mutation = "pedido.abonar"
	OrderFinalize Mutation = "pedido.finalizar"

	CategoryCreate Mutation = "categoria.crear"
	CategoryUpdate Mutation = "categoria.actualizar"
	CategoryDelete Mutation = "categoria.eliminar"

	ProviderCreate Mutation = "proveedor.crear"
	ProviderUpdate Mutation = "proveedor.actualizar"
	ProviderDelete Mutation = "proveedor.eliminar"

	UserCreate Mutation = "usuario.crear"
	UserUpdate Mutation = "usuario.actualizar"
	UserDelete Mutation = "usuario.eliminar"

	ConfigUpdate Mutation = "config.actualizar"
)

// Target datos de la mutación concreta que parametrizan las llaves.
type Target struct {
	ID         string
	ProductID  optional.Value[string]
	CashFilter optional.Value[entity.CashFilter]
}

// Rule llaves a invalidar para una mutación.
type Rule func(t Target) []Key

func constant(keys ...func() Key) Rule {
	return func(Target) []Key {
		out := make([]Key, 0, len(keys))
		for _, k := range keys {
			out = append(out, k())
		}
		return out
	}
}

func recipeRule(t Target) []Key {
	keys := []Key{RecipesKey()}
	if t.ID != "" {
		keys = append(keys, RecipeCostKey(t.ID))
	}
	if pid, ok := t.ProductID.Get(); ok {
		keys = append(keys, RecipeByProductKey(pid))
	}
	return keys
}

func orderRule(t Target) []Key {
	keys := []Key{OrdersKey()}
	if t.ID != "" {
		keys = append(keys, OrderKey(t.ID))
	}
	return keys
}

// cashRule la colección completa: un movimiento cambia todas las variantes filtradas,
// no solo la que se está mostrando. La llave mostrada se agrega para el registro.
func cashRule(t Target) []Key {
	keys := []Key{NewKey(Cash)}
	if f, ok := t.CashFilter.Get(); ok {
		if shown := CashKey(f); shown.String() != keys[0].String() {
			keys = append(keys, shown)
		}
	}
	return keys
}

// Rules tabla declarativa mutación → llaves. Es la única fuente de verdad de la invalidación.
var Rules = map[Mutation]Rule{
	IngredientCreate: constant(IngredientsKey),
	IngredientUpdate: constant(IngredientsKey),
	IngredientDelete: constant(IngredientsKey),
	PurchaseRegister: constant(IngredientsKey, PurchasesKey),

	ProductCreate: constant(ProductsKey),
	ProductUpdate: constant(ProductsKey),
	ProductDelete: constant(ProductsKey),

	RecipeCreate: recipeRule,
	RecipeUpdate: recipeRule,
	RecipeDelete: recipeRule,

	ProductionRegister: constant(ProductsKey, IngredientsKey, ProductionKey),
	WasteRegister:      constant(ProductsKey, WasteKey),
	Checkout:           constant(ProductsKey),
	CashRegister:       cashRule,

	PayrollCreate: constant(PayrollKey),
	PayrollUpdate: constant(PayrollKey),
	PayrollDelete: constant(PayrollKey),

	OrderCreate:   orderRule,
	OrderUpdate:   orderRule,
	OrderDeposit:  orderRule,
	OrderFinalize: orderRule,

	CategoryCreate: constant(CategoriesKey, ProductsKey),
	CategoryUpdate: constant(CategoriesKey, ProductsKey),
	CategoryDelete: constant(CategoriesKey, ProductsKey),

	ProviderCreate: constant(ProvidersKey),
	ProviderUpdate: constant(ProvidersKey),
	ProviderDelete: constant(ProvidersKey),

	UserCreate: constant(UsersKey),
	UserUpdate: constant(UsersKey),
	UserDelete: constant(UsersKey),

	ConfigUpdate: constant(ConfigKey),
}

// KeysFor llaves afectadas por la mutación. Una mutación sin regla es un error de programación.
func KeysFor(m Mutation, t Target) ([]Key, error) {
	rule, ok := Rules[m]
	if !ok {
		return nil, fmt.Errorf("cache: mutación sin regla de invalidación: %s", m)
	}
	return rule(t), nil
}
