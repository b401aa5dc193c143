package cachestore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

func TestMemoryStore_InvalidateMarcaObsoleto(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(0)

	ok, err := s.Set(ctx, cache.ProductsKey(), []byte(`[]`), 0)
	require.NoError(t, err)
	require.True(t, ok)
	_, _ = s.Set(ctx, cache.IngredientsKey(), []byte(`[]`), 0)

	n, err := s.Invalidate(ctx, cache.ProductsKey())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	e, found, err := s.Get(ctx, cache.ProductsKey())
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, e.Stale)

	e, _, _ = s.Get(ctx, cache.IngredientsKey())
	assert.False(t, e.Stale, "insumos no debe verse afectado")
}

func TestMemoryStore_InvalidaVariantesFiltradas(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(0)
	egresos := cache.CashKey(entity.CashFilter{Type: entity.CashMovementOut})
	ingresos := cache.CashKey(entity.CashFilter{Type: entity.CashMovementIn})
	_, _ = s.Set(ctx, egresos, []byte(`[]`), 0)
	_, _ = s.Set(ctx, ingresos, []byte(`[]`), 0)

	n, err := s.Invalidate(ctx, egresos)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Invalidate(ctx, cache.NewKey(cache.Cash))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "solo quedaba ingresos vigente")
}

func TestMemoryStore_SetRechazaGeneracionVieja(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(0)
	gen, err := s.Generation(ctx)
	require.NoError(t, err)

	_, _ = s.Invalidate(ctx, cache.ProductsKey())

	ok, err := s.Set(ctx, cache.ProductsKey(), []byte(`[]`), gen)
	require.NoError(t, err)
	assert.False(t, ok)
	_, found, _ := s.Get(ctx, cache.ProductsKey())
	assert.False(t, found)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(time.Nanosecond)
	_, _ = s.Set(ctx, cache.ConfigKey(), []byte(`{}`), 0)
	time.Sleep(time.Millisecond)

	e, found, err := s.Get(ctx, cache.ConfigKey())
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, e.Stale)
}

func TestFetch_UsaCacheVigente(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(0)
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"pan"}, nil
	}

	v, err := cachestore.Fetch(ctx, s, cache.ProductsKey(), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"pan"}, v)

	v, err = cachestore.Fetch(ctx, s, cache.ProductsKey(), load)
	require.NoError(t, err)
	assert.Equal(t, []string{"pan"}, v)
	assert.Equal(t, 1, calls)

	_, _ = s.Invalidate(ctx, cache.ProductsKey())
	_, err = cachestore.Fetch(ctx, s, cache.ProductsKey(), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "una llave obsoleta se vuelve a pedir")
}

func TestFetch_InvalidacionDuranteLecturaNoGuarda(t *testing.T) {
	ctx := context.Background()
	s := cachestore.NewMemoryStore(0)
	load := func(ctx context.Context) (int, error) {
		// una mutación concurrente invalida mientras la lectura está en vuelo
		_, _ = s.Invalidate(ctx, cache.ProductsKey())
		return 7, nil
	}

	v, err := cachestore.Fetch(ctx, s, cache.ProductsKey(), load)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	_, found, _ := s.Get(ctx, cache.ProductsKey())
	assert.False(t, found)
}

func TestFetch_LecturaCanceladaNoGuarda(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := cachestore.NewMemoryStore(0)
	load := func(context.Context) (int, error) {
		cancel()
		return 1, nil
	}

	_, err := cachestore.Fetch(ctx, s, cache.RecipesKey(), load)
	assert.ErrorIs(t, err, context.Canceled)
	_, found, _ := s.Get(context.Background(), cache.RecipesKey())
	assert.False(t, found)
}

func TestFetch_PropagaErrorDeCarga(t *testing.T) {
	s := cachestore.NewMemoryStore(0)
	boom := errors.New("boom")
	_, err := cachestore.Fetch(context.Background(), s, cache.RecipesKey(), func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}
