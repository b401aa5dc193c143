// Package catalog administra productos, categorías, proveedores y recetas.
package catalog

import (
	"context"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// CatalogAPI operaciones remotas del catálogo.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, productID string) (entity.Product, error)
	CreateProduct(ctx context.Context, in entity.Product) (entity.Product, error)
	UpdateProduct(ctx context.Context, in entity.Product) (entity.Product, error)
	DeleteProduct(ctx context.Context, productID string) error

	ListCategories(ctx context.Context) ([]entity.Category, error)
	SaveCategory(ctx context.Context, in entity.Category) (entity.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error

	ListProviders(ctx context.Context) ([]entity.Provider, error)
	SaveProvider(ctx context.Context, in entity.Provider) (entity.Provider, error)
	DeleteProvider(ctx context.Context, providerID string) error

	ListRecipes(ctx context.Context) ([]entity.Recipe, error)
	GetRecipe(ctx context.Context, recipeID string) (entity.Recipe, error)
	CreateProductRecipe(ctx context.Context, r entity.Recipe) (entity.Recipe, error)
	UpsertRecipe(ctx context.Context, r entity.Recipe) (entity.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID string) error
}

// RecipeInputs insumos y tabla de conversiones para validar recetas antes de enviarlas.
type RecipeInputs interface {
	Ingredients(ctx context.Context) (recipe.Ingredients, error)
	Table(ctx context.Context) (*units.Table, error)
}

// UseCase casos de uso del catálogo.
type UseCase struct {
	api    CatalogAPI
	store  cachestore.Store
	runner *mutation.Runner
	inputs RecipeInputs
}

// NewUseCase construye el caso de uso.
func NewUseCase(api CatalogAPI, store cachestore.Store, runner *mutation.Runner, inputs RecipeInputs) *UseCase {
	return &UseCase{api: api, store: store, runner: runner, inputs: inputs}
}

// ── Productos ───────────────────────────────────────────────────────────────

// ListProducts catálogo de productos (cacheado).
func (uc *UseCase) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return cachestore.Fetch(ctx, uc.store, cache.ProductsKey(), uc.api.ListProducts)
}

// GetProduct producto por id. Se resuelve desde el catálogo cacheado.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (entity.Product, error) {
	list, err := uc.ListProducts(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return uc.api.GetProduct(ctx, id)
}

// CreateProduct alta de producto.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.ProductRequest) (entity.Product, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Product{}, err
	}
	return mutation.Run(ctx, uc.runner, cache.ProductCreate,
		func(ctx context.Context) (entity.Product, error) { return uc.api.CreateProduct(ctx, in.ToEntity("")) },
		nil, "Producto creado")
}

// UpdateProduct edición de producto.
func (uc *UseCase) UpdateProduct(ctx context.Context, id string, in dto.ProductRequest) (entity.Product, error) {
	if id == "" {
		return entity.Product{}, domain.Invalid("id", "requerido")
	}
	if err := dto.Validate(in); err != nil {
		return entity.Product{}, err
	}
	return mutation.Run(ctx, uc.runner, cache.ProductUpdate,
		func(ctx context.Context) (entity.Product, error) { return uc.api.UpdateProduct(ctx, in.ToEntity(id)) },
		nil, "Producto actualizado")
}

// DeleteProduct baja de producto.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.ProductDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteProduct(ctx, id) },
		nil, "Producto eliminado")
	return err
}

// ── Categorías ──────────────────────────────────────────────────────────────

func (uc *UseCase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return cachestore.Fetch(ctx, uc.store, cache.CategoriesKey(), uc.api.ListCategories)
}

// SaveCategory crea (id vacío) o actualiza una categoría.
func (uc *UseCase) SaveCategory(ctx context.Context, id string, in dto.CategoryRequest) (entity.Category, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Category{}, err
	}
	m, msg := cache.CategoryCreate, "Categoría creada"
	if id != "" {
		m, msg = cache.CategoryUpdate, "Categoría actualizada"
	}
	c := entity.Category{ID: id, Name: in.Name, Description: in.Description}
	return mutation.Run(ctx, uc.runner, m,
		func(ctx context.Context) (entity.Category, error) { return uc.api.SaveCategory(ctx, c) },
		nil, msg)
}

func (uc *UseCase) DeleteCategory(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.CategoryDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteCategory(ctx, id) },
		nil, "Categoría eliminada")
	return err
}

// ── Proveedores ─────────────────────────────────────────────────────────────

func (uc *UseCase) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return cachestore.Fetch(ctx, uc.store, cache.ProvidersKey(), uc.api.ListProviders)
}

// SaveProvider crea (id vacío) o actualiza un proveedor.
func (uc *UseCase) SaveProvider(ctx context.Context, id string, in dto.ProviderRequest) (entity.Provider, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Provider{}, err
	}
	m, msg := cache.ProviderCreate, "Proveedor creado"
	if id != "" {
		m, msg = cache.ProviderUpdate, "Proveedor actualizado"
	}
	p := entity.Provider{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email, Address: in.Address}
	return mutation.Run(ctx, uc.runner, m,
		func(ctx context.Context) (entity.Provider, error) { return uc.api.SaveProvider(ctx, p) },
		nil, msg)
}

func (uc *UseCase) DeleteProvider(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.ProviderDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteProvider(ctx, id) },
		nil, "Proveedor eliminado")
	return err
}

// ── Recetas ─────────────────────────────────────────────────────────────────

func (uc *UseCase) ListRecipes(ctx context.Context) ([]entity.Recipe, error) {
	return cachestore.Fetch(ctx, uc.store, cache.RecipesKey(), uc.api.ListRecipes)
}

// SaveRecipe valida la receta contra los insumos y la tabla de conversiones vigentes
// y la envía. Sin id se crea la receta del producto; con id se actualiza.
// Una unidad sin conversión se rechaza aquí y no llega a la red.
func (uc *UseCase) SaveRecipe(ctx context.Context, id string, in dto.RecipeRequest) (entity.Recipe, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Recipe{}, err
	}
	r := in.ToEntity(id)
	ingredients, err := uc.inputs.Ingredients(ctx)
	if err != nil {
		return entity.Recipe{}, err
	}
	table, err := uc.inputs.Table(ctx)
	if err != nil {
		return entity.Recipe{}, err
	}
	if err := recipe.Validate(r, ingredients, table); err != nil {
		return entity.Recipe{}, err
	}

	m, msg, call := cache.RecipeCreate, "Receta creada", uc.api.CreateProductRecipe
	if id != "" {
		m, msg, call = cache.RecipeUpdate, "Receta actualizada", uc.api.UpsertRecipe
	}
	return mutation.Run(ctx, uc.runner, m,
		func(ctx context.Context) (entity.Recipe, error) { return call(ctx, r) },
		recipeTarget, msg)
}

// DeleteRecipe baja de receta. Si la receta está en caché también se invalida
// la consulta por producto.
func (uc *UseCase) DeleteRecipe(ctx context.Context, id string) error {
	t := cache.Target{ID: id}
	if e, ok, err := uc.store.Get(ctx, cache.RecipeKey(id)); err == nil && ok {
		if r, err := cachestore.Decode[entity.Recipe](e); err == nil && r.ProductID != "" {
			t.ProductID = optional.Some(r.ProductID)
		}
	}
	_, err := mutation.Run(ctx, uc.runner, cache.RecipeDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteRecipe(ctx, id) },
		func(struct{}) cache.Target { return t }, "Receta eliminada")
	return err
}

func recipeTarget(r entity.Recipe) cache.Target {
	t := cache.Target{ID: r.ID}
	if r.ProductID != "" {
		t.ProductID = optional.Some(r.ProductID)
	}
	return t
}
