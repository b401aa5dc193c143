package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/application/catalog"
	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type stubAPI struct {
	catalog.CatalogAPI
	products []entity.Product
	recipes  map[string]entity.Recipe
	calls    []string
}

func (s *stubAPI) ListProducts(context.Context) ([]entity.Product, error) {
	s.calls = append(s.calls, "productos")
	return s.products, nil
}

func (s *stubAPI) CreateProduct(_ context.Context, p entity.Product) (entity.Product, error) {
	s.calls = append(s.calls, "crear-producto")
	p.ID = "pan-9"
	s.products = append(s.products, p)
	return p, nil
}

func (s *stubAPI) ListRecipes(context.Context) ([]entity.Recipe, error) {
	s.calls = append(s.calls, "recetas")
	out := make([]entity.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	return out, nil
}

func (s *stubAPI) GetRecipe(_ context.Context, id string) (entity.Recipe, error) {
	r, ok := s.recipes[id]
	if !ok {
		return entity.Recipe{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *stubAPI) CreateProductRecipe(_ context.Context, r entity.Recipe) (entity.Recipe, error) {
	s.calls = append(s.calls, "crear-receta")
	r.ID = "rec-2"
	s.recipes[r.ID] = r
	return r, nil
}

func (s *stubAPI) UpsertRecipe(_ context.Context, r entity.Recipe) (entity.Recipe, error) {
	s.calls = append(s.calls, "actualizar-receta")
	s.recipes[r.ID] = r
	return r, nil
}

func (s *stubAPI) DeleteRecipe(_ context.Context, id string) error {
	s.calls = append(s.calls, "eliminar-receta")
	delete(s.recipes, id)
	return nil
}

type inputs struct{ table *units.Table }

func (i inputs) Ingredients(context.Context) (recipe.Ingredients, error) {
	return recipe.IndexIngredients([]entity.Ingredient{{ID: "X", Name: "Harina", Unit: "KG", AverageCost: d("50")}}), nil
}

func (i inputs) Table(context.Context) (*units.Table, error) { return i.table, nil }

func setup(t *testing.T) (*catalog.UseCase, *stubAPI, *cachestore.MemoryStore) {
	t.Helper()
	tbl, err := units.NewTable([]entity.UnitConversion{{From: "LB", To: "KG", Factor: d("0.4536")}})
	require.NoError(t, err)
	api := &stubAPI{recipes: map[string]entity.Recipe{}}
	store := cachestore.NewMemoryStore(0)
	return catalog.NewUseCase(api, store, mutation.NewRunner(store, nil, nil), inputs{table: tbl}), api, store
}

func recipeReq(unit string) dto.RecipeRequest {
	return dto.RecipeRequest{
		ProductID: "pan-1",
		Yield:     d("4"),
		Lines:     []dto.RecipeLineInput{{IngredientID: "X", Quantity: d("2"), Unit: unit}},
	}
}

func stale(t *testing.T, s cachestore.Store, k cache.Key) bool {
	t.Helper()
	e, ok, err := s.Get(context.Background(), k)
	require.NoError(t, err)
	require.True(t, ok, "la llave %s debería estar cacheada", k)
	return e.Stale
}

func TestSaveRecipe_UnidadSinConversionNoLlegaALaRed(t *testing.T) {
	uc, api, _ := setup(t)

	_, err := uc.SaveRecipe(context.Background(), "", recipeReq("TAZA"))
	assert.ErrorIs(t, err, domain.ErrConversionNotFound)
	assert.Empty(t, api.calls)
}

func TestSaveRecipe_CrearInvalidaRecetas(t *testing.T) {
	uc, api, store := setup(t)
	ctx := context.Background()

	_, err := uc.ListRecipes(ctx)
	require.NoError(t, err)

	r, err := uc.SaveRecipe(ctx, "", recipeReq("lb"))
	require.NoError(t, err)
	assert.Equal(t, "rec-2", r.ID)
	assert.Equal(t, []string{"recetas", "crear-receta"}, api.calls)
	assert.True(t, stale(t, store, cache.RecipesKey()))
}

func TestSaveRecipe_ActualizarUsaUpsert(t *testing.T) {
	uc, api, _ := setup(t)

	_, err := uc.SaveRecipe(context.Background(), "rec-1", recipeReq("KG"))
	require.NoError(t, err)
	assert.Equal(t, []string{"actualizar-receta"}, api.calls)
}

func TestSaveRecipe_Validacion(t *testing.T) {
	uc, api, _ := setup(t)
	req := recipeReq("KG")
	req.Yield = decimal.Zero

	_, err := uc.SaveRecipe(context.Background(), "", req)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.calls)
}

func TestDeleteRecipe_InvalidaConsultaPorProducto(t *testing.T) {
	uc, api, store := setup(t)
	ctx := context.Background()
	api.recipes["rec-1"] = entity.Recipe{ID: "rec-1", ProductID: "pan-1", Yield: d("4")}

	// poblar recetas/rec-1 y recetas/producto/pan-1
	_, err := cachestore.Fetch(ctx, store, cache.RecipeKey("rec-1"), func(ctx context.Context) (entity.Recipe, error) {
		return api.GetRecipe(ctx, "rec-1")
	})
	require.NoError(t, err)
	_, err = cachestore.Fetch(ctx, store, cache.RecipeByProductKey("pan-1"), func(ctx context.Context) (entity.Recipe, error) {
		return api.GetRecipe(ctx, "rec-1")
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRecipe(ctx, "rec-1"))
	assert.True(t, stale(t, store, cache.RecipeByProductKey("pan-1")))
	assert.True(t, stale(t, store, cache.RecipeKey("rec-1")))
}

func TestCreateProduct_InvalidaCatalogo(t *testing.T) {
	uc, api, store := setup(t)
	ctx := context.Background()

	_, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	p, err := uc.CreateProduct(ctx, dto.ProductRequest{Name: "Semita", Price: d("25"), Active: true})
	require.NoError(t, err)
	assert.Equal(t, "pan-9", p.ID)
	assert.True(t, stale(t, store, cache.ProductsKey()))

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, []string{"productos", "crear-producto", "productos"}, api.calls)
}

func TestCreateProduct_NombreRequerido(t *testing.T) {
	uc, api, _ := setup(t)

	_, err := uc.CreateProduct(context.Background(), dto.ProductRequest{Price: d("25")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.calls)
}
