package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/pricing"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
)

// RecipeLineInput ingrediente de la receta.
type RecipeLineInput struct {
	IngredientID string          `json:"insumoId" validate:"required"`
	Quantity     decimal.Decimal `json:"cantidad" validate:"gt=0" swaggertype:"number"`
	Unit         string          `json:"unidad" validate:"required"`
}

// RecipeRequest alta o edición de receta.
type RecipeRequest struct {
	ProductID    string            `json:"productoId" validate:"required"`
	Yield        decimal.Decimal   `json:"rendimiento" validate:"gt=0" swaggertype:"number"`
	LaborCost    decimal.Decimal   `json:"costoManoObra" validate:"min=0" swaggertype:"number"`
	OverheadCost decimal.Decimal   `json:"costoIndirecto" validate:"min=0" swaggertype:"number"`
	Lines        []RecipeLineInput `json:"ingredientes" validate:"required,min=1,dive"`
}

// ToEntity convierte la petición en receta.
func (r RecipeRequest) ToEntity(id string) entity.Recipe {
	lines := make([]entity.RecipeLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = entity.RecipeLine{IngredientID: l.IngredientID, Quantity: l.Quantity, Unit: l.Unit}
	}
	return entity.Recipe{
		ID:           id,
		ProductID:    r.ProductID,
		Yield:        r.Yield,
		LaborCost:    r.LaborCost,
		OverheadCost: r.OverheadCost,
		Lines:        lines,
	}
}

// RecipeCostResponse costo calculado localmente con los costos promedio vigentes y,
// si el producto tiene precio, su margen.
type RecipeCostResponse struct {
	Cost    recipe.Cost                      `json:"costo"`
	Pricing optional.Value[pricing.Analysis] `json:"margen"`
}

// ConvertRequest conversión de cantidad entre unidades.
type ConvertRequest struct {
	Quantity decimal.Decimal `json:"cantidad" validate:"min=0" swaggertype:"number"`
	From     string          `json:"desde" validate:"required"`
	To       string          `json:"hacia" validate:"required"`
}

// ConvertResponse resultado de la conversión.
type ConvertResponse struct {
	Quantity decimal.Decimal `json:"cantidad"`
	From     string          `json:"desde"`
	To       string          `json:"hacia"`
	Factor   decimal.Decimal `json:"factor"`
	Result   decimal.Decimal `json:"resultado"`
}

// PriceSuggestionResponse precio sugerido para un margen objetivo.
type PriceSuggestionResponse struct {
	UnitCost  decimal.Decimal  `json:"costoUnitario"`
	MarginPct decimal.Decimal  `json:"margenPct"`
	Price     decimal.Decimal  `json:"precioSugerido"`
	Analysis  pricing.Analysis `json:"analisis"`
}
