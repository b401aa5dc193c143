package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

func keyStrings(t *testing.T, m cache.Mutation, target cache.Target) []string {
	t.Helper()
	keys, err := cache.KeysFor(m, target)
	require.NoError(t, err)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	return out
}

func TestKeysFor_TablaDeInvalidacion(t *testing.T) {
	pedido := cache.Target{ID: "ped-7"}
	receta := cache.Target{ID: "rec-1", ProductID: optional.Some("pan-1")}

	cases := []struct {
		m      cache.Mutation
		target cache.Target
		want   []string
	}{
		{cache.IngredientCreate, cache.Target{}, []string{"insumos"}},
		{cache.IngredientUpdate, cache.Target{}, []string{"insumos"}},
		{cache.IngredientDelete, cache.Target{}, []string{"insumos"}},
		{cache.PurchaseRegister, cache.Target{}, []string{"insumos", "compras"}},
		{cache.ProductCreate, cache.Target{}, []string{"productos"}},
		{cache.ProductUpdate, cache.Target{}, []string{"productos"}},
		{cache.ProductDelete, cache.Target{}, []string{"productos"}},
		{cache.RecipeCreate, receta, []string{"recetas", "recetas/rec-1/costo", "recetas/producto/pan-1"}},
		{cache.RecipeUpdate, receta, []string{"recetas", "recetas/rec-1/costo", "recetas/producto/pan-1"}},
		{cache.RecipeDelete, receta, []string{"recetas", "recetas/rec-1/costo", "recetas/producto/pan-1"}},
		{cache.ProductionRegister, cache.Target{}, []string{"productos", "insumos", "produccion"}},
		{cache.WasteRegister, cache.Target{}, []string{"productos", "mermas"}},
		{cache.Checkout, cache.Target{}, []string{"productos"}},
		{cache.PayrollCreate, cache.Target{}, []string{"planilla"}},
		{cache.PayrollUpdate, cache.Target{}, []string{"planilla"}},
		{cache.PayrollDelete, cache.Target{}, []string{"planilla"}},
		{cache.OrderCreate, pedido, []string{"pedidos/lista", "pedidos/detalle/ped-7"}},
		{cache.OrderUpdate, pedido, []string{"pedidos/lista", "pedidos/detalle/ped-7"}},
		{cache.OrderDeposit, pedido, []string{"pedidos/lista", "pedidos/detalle/ped-7"}},
		{cache.OrderFinalize, pedido, []string{"pedidos/lista", "pedidos/detalle/ped-7"}},
		{cache.ConfigUpdate, cache.Target{}, []string{"config"}},
	}
	for _, c := range cases {
		t.Run(string(c.m), func(t *testing.T) {
			assert.Equal(t, c.want, keyStrings(t, c.m, c.target))
		})
	}
}

func TestKeysFor_CajaInvalidaTodasLasVariantes(t *testing.T) {
	f := entity.CashFilter{
		From: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Type: entity.CashMovementOut,
	}
	keys, err := cache.KeysFor(cache.CashRegister, cache.Target{CashFilter: optional.Some(f)})
	require.NoError(t, err)
	require.NotEmpty(t, keys)

	others := []entity.CashFilter{{}, {Type: entity.CashMovementIn}, {From: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}, f}
	for _, o := range others {
		assert.True(t, anyMatches(keys, cache.CashKey(o)), "la vista %s debe quedar obsoleta", cache.CashKey(o))
	}

	assert.Equal(t, []string{"caja"}, keyStrings(t, cache.CashRegister, cache.Target{}))
	assert.Equal(t, []string{"caja"}, keyStrings(t, cache.CashRegister, cache.Target{CashFilter: optional.Some(entity.CashFilter{})}))
}

func anyMatches(keys []cache.Key, k cache.Key) bool {
	for _, inv := range keys {
		if inv.Matches(k) {
			return true
		}
	}
	return false
}

func TestKeysFor_TodasLasMutacionesTienenRegla(t *testing.T) {
	for m := range cache.Rules {
		keys, err := cache.KeysFor(m, cache.Target{ID: "x"})
		require.NoError(t, err)
		assert.NotEmpty(t, keys, m)
	}
	_, err := cache.KeysFor("inventada", cache.Target{})
	assert.Error(t, err)
}

func TestKey_Matches(t *testing.T) {
	productos := cache.ProductsKey()
	assert.True(t, productos.Matches(cache.ProductsKey()))
	assert.True(t, productos.Matches(cache.ProductsKey().With("categoria", "dulce")))
	assert.False(t, productos.Matches(cache.IngredientsKey()))

	recetas := cache.RecipesKey()
	assert.True(t, recetas.Matches(cache.RecipeCostKey("r1")))
	assert.False(t, cache.RecipeCostKey("r1").Matches(cache.RecipeCostKey("r2")))

	mayo := cache.NewKey(cache.Cash).With("desde", "2024-05-01")
	assert.True(t, mayo.Matches(mayo.With("tipo", "ingreso")))
	assert.False(t, mayo.Matches(cache.NewKey(cache.Cash).With("desde", "2024-06-01")))
	assert.False(t, mayo.Matches(cache.NewKey(cache.Cash)), "una llave filtrada no invalida la colección completa")
}
