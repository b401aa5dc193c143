// Package costing costea recetas con los costos promedio vigentes de los insumos.
// El costo se recalcula en cada consulta a partir de las colecciones cacheadas; el
// resultado derivado nunca se guarda.
package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/pricing"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// CostingAPI lecturas remotas necesarias para costear.
type CostingAPI interface {
	GetRecipe(ctx context.Context, recipeID string) (entity.Recipe, error)
	RecipeByProduct(ctx context.Context, productID string) (entity.Recipe, error)
	ListIngredients(ctx context.Context) ([]entity.Ingredient, error)
	ListConversions(ctx context.Context) ([]entity.UnitConversion, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	RecipeCost(ctx context.Context, recipeID string) (entity.RecipeCostReport, error)
}

// CostSheet datos de la ficha de costo imprimible.
type CostSheet struct {
	Business string
	Currency string
	Product  entity.Product
	Cost     recipe.Cost
	Pricing  optional.Value[pricing.Analysis]
	Date     time.Time
}

// CostSheetGenerator genera el PDF de la ficha de costo.
type CostSheetGenerator interface {
	GenerateCostSheet(ctx context.Context, sheet CostSheet) ([]byte, error)
}

// UseCase costeo de recetas.
type UseCase struct {
	api       CostingAPI
	store     cachestore.Store
	generator CostSheetGenerator
	business  string
	currency  string
}

// NewUseCase construye el caso de uso. generator puede ser nil si no se exponen PDFs.
func NewUseCase(api CostingAPI, store cachestore.Store, generator CostSheetGenerator, business, primaryCurrency string) *UseCase {
	return &UseCase{api: api, store: store, generator: generator, business: business, currency: primaryCurrency}
}

// Table tabla de conversiones de unidades vigente.
func (uc *UseCase) Table(ctx context.Context) (*units.Table, error) {
	list, err := cachestore.Fetch(ctx, uc.store, cache.ConversionsKey(), uc.api.ListConversions)
	if err != nil {
		return nil, err
	}
	return units.NewTable(list)
}

// Ingredients insumos indexados por id.
func (uc *UseCase) Ingredients(ctx context.Context) (recipe.Ingredients, error) {
	list, err := cachestore.Fetch(ctx, uc.store, cache.IngredientsKey(), uc.api.ListIngredients)
	if err != nil {
		return nil, err
	}
	return recipe.IndexIngredients(list), nil
}

// Recipe receta por id (cacheada).
func (uc *UseCase) Recipe(ctx context.Context, recipeID string) (entity.Recipe, error) {
	return cachestore.Fetch(ctx, uc.store, cache.RecipeKey(recipeID), func(ctx context.Context) (entity.Recipe, error) {
		return uc.api.GetRecipe(ctx, recipeID)
	})
}

// RecipeForProduct receta asociada a un producto (cacheada).
func (uc *UseCase) RecipeForProduct(ctx context.Context, productID string) (entity.Recipe, error) {
	return cachestore.Fetch(ctx, uc.store, cache.RecipeByProductKey(productID), func(ctx context.Context) (entity.Recipe, error) {
		return uc.api.RecipeByProduct(ctx, productID)
	})
}

// RecipeCost costo de la receta y margen del producto si tiene precio.
func (uc *UseCase) RecipeCost(ctx context.Context, recipeID string) (*dto.RecipeCostResponse, error) {
	r, err := uc.Recipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return uc.cost(ctx, r)
}

// ProductCost costo de la receta asociada al producto.
func (uc *UseCase) ProductCost(ctx context.Context, productID string) (*dto.RecipeCostResponse, error) {
	r, err := uc.RecipeForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.cost(ctx, r)
}

// Calculate costea una receta arbitraria (p. ej. un borrador antes de guardarla).
func (uc *UseCase) Calculate(ctx context.Context, r entity.Recipe) (*dto.RecipeCostResponse, error) {
	return uc.cost(ctx, r)
}

func (uc *UseCase) cost(ctx context.Context, r entity.Recipe) (*dto.RecipeCostResponse, error) {
	ingredients, err := uc.Ingredients(ctx)
	if err != nil {
		return nil, err
	}
	table, err := uc.Table(ctx)
	if err != nil {
		return nil, err
	}
	c, err := recipe.Calculate(r, ingredients, table)
	if err != nil {
		return nil, err
	}
	out := &dto.RecipeCostResponse{Cost: c}
	if p, ok, err := uc.product(ctx, r.ProductID); err == nil && ok && p.Price.GreaterThan(decimal.Zero) {
		out.Pricing = optional.Some(pricing.Analyze(p.Price, c.UnitCost))
	}
	return out, nil
}

func (uc *UseCase) product(ctx context.Context, productID string) (entity.Product, bool, error) {
	list, err := cachestore.Fetch(ctx, uc.store, cache.ProductsKey(), uc.api.ListProducts)
	if err != nil {
		return entity.Product{}, false, err
	}
	for _, p := range list {
		if p.ID == productID {
			return p, true, nil
		}
	}
	return entity.Product{}, false, nil
}

// ServerCost desglose calculado por el servidor (cacheado bajo recetas/{id}/costo).
func (uc *UseCase) ServerCost(ctx context.Context, recipeID string) (entity.RecipeCostReport, error) {
	return cachestore.Fetch(ctx, uc.store, cache.RecipeCostKey(recipeID), func(ctx context.Context) (entity.RecipeCostReport, error) {
		return uc.api.RecipeCost(ctx, recipeID)
	})
}

// SuggestPrice precio para alcanzar el margen objetivo sobre el costo unitario actual.
func (uc *UseCase) SuggestPrice(ctx context.Context, recipeID string, marginPct decimal.Decimal) (*dto.PriceSuggestionResponse, error) {
	res, err := uc.RecipeCost(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	price, ok := pricing.PriceForMargin(res.Cost.UnitCost, marginPct)
	if !ok {
		return nil, domain.Invalid("margen", "debe estar entre 0 y 100 (sin incluir 100)")
	}
	return &dto.PriceSuggestionResponse{
		UnitCost:  res.Cost.UnitCost,
		MarginPct: marginPct,
		Price:     price,
		Analysis:  pricing.Analyze(price, res.Cost.UnitCost),
	}, nil
}

// CostSheetPDF ficha de costo en PDF y nombre de archivo sugerido.
func (uc *UseCase) CostSheetPDF(ctx context.Context, recipeID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("costing: generador de PDF no configurado")
	}
	res, err := uc.RecipeCost(ctx, recipeID)
	if err != nil {
		return nil, "", err
	}
	p, ok, err := uc.product(ctx, res.Cost.ProductID)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		p = entity.Product{ID: res.Cost.ProductID, Name: res.Cost.ProductID}
	}
	b, err := uc.generator.GenerateCostSheet(ctx, CostSheet{
		Business: uc.business,
		Currency: uc.currency,
		Product:  p,
		Cost:     res.Cost,
		Pricing:  res.Pricing,
		Date:     time.Now(),
	})
	if err != nil {
		return nil, "", err
	}
	return b, fmt.Sprintf("costo-receta-%s.pdf", recipeID), nil
}

// Convert conversión de cantidad con la tabla vigente.
func (uc *UseCase) Convert(ctx context.Context, in dto.ConvertRequest) (*dto.ConvertResponse, error) {
	table, err := uc.Table(ctx)
	if err != nil {
		return nil, err
	}
	factor, err := table.Factor(in.From, in.To)
	if err != nil {
		return nil, err
	}
	return &dto.ConvertResponse{
		Quantity: in.Quantity,
		From:     units.Normalize(in.From),
		To:       units.Normalize(in.To),
		Factor:   factor,
		Result:   in.Quantity.Mul(factor),
	}, nil
}

// ProductionPreview consumo esperado de insumos para producir tandas del producto.
func (uc *UseCase) ProductionPreview(ctx context.Context, productID string, batches decimal.Decimal) (*dto.ProductionPreview, error) {
	r, err := uc.RecipeForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	ingredients, err := uc.Ingredients(ctx)
	if err != nil {
		return nil, err
	}
	table, err := uc.Table(ctx)
	if err != nil {
		return nil, err
	}
	cons, err := recipe.ExpectedConsumption(r, batches, ingredients, table)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductionPreview{RecipeID: r.ID, Units: r.Yield.Mul(batches), Consumption: cons}
	for _, c := range cons {
		if c.Shortage {
			out.Shortage = true
			break
		}
	}
	return out, nil
}
