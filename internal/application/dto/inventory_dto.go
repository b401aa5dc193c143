package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/inventory"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
)

// IngredientRequest alta o edición de insumo.
type IngredientRequest struct {
	Name        string                          `json:"nombre" validate:"required,max=120"`
	Unit        string                          `json:"unidadMedida" validate:"required"`
	Stock       decimal.Decimal                 `json:"stock" validate:"min=0" swaggertype:"number"`
	AverageCost decimal.Decimal                 `json:"costoPromedio" validate:"min=0" swaggertype:"number"`
	MinStock    optional.Value[decimal.Decimal] `json:"stockMinimo" swaggertype:"number"`
	ProviderID  optional.Value[string]          `json:"proveedorId" swaggertype:"string"`
}

// ToEntity convierte la petición en insumo.
func (r IngredientRequest) ToEntity(id string) entity.Ingredient {
	return entity.Ingredient{
		ID:          id,
		Name:        r.Name,
		Unit:        r.Unit,
		Stock:       r.Stock,
		AverageCost: r.AverageCost,
		MinStock:    r.MinStock,
		ProviderID:  r.ProviderID,
	}
}

// PurchaseRequest compra de insumo.
type PurchaseRequest struct {
	IngredientID string                 `json:"insumoId" validate:"required"`
	Quantity     decimal.Decimal        `json:"cantidad" validate:"gt=0" swaggertype:"number"`
	TotalCost    decimal.Decimal        `json:"costoTotal" validate:"gt=0" swaggertype:"number"`
	ProviderID   optional.Value[string] `json:"proveedorId" swaggertype:"string"`
}

// ToEntity convierte la petición en compra.
func (r PurchaseRequest) ToEntity() entity.Purchase {
	return entity.Purchase{
		IngredientID: r.IngredientID,
		Quantity:     r.Quantity,
		TotalCost:    r.TotalCost,
		ProviderID:   r.ProviderID,
	}
}

// PurchaseResponse insumo actualizado por el servidor y la proyección local previa.
type PurchaseResponse struct {
	Preview    inventory.PurchasePreview `json:"proyeccion"`
	Ingredient entity.Ingredient         `json:"insumo"`
	Message    string                    `json:"message"`
}

// ProductionRequest producción de tandas de un producto.
type ProductionRequest struct {
	ProductID string          `json:"productoId" validate:"required"`
	Batches   decimal.Decimal `json:"tandas" validate:"gt=0" swaggertype:"number"`
}

// ProductionPreview consumo esperado de insumos para la producción.
type ProductionPreview struct {
	RecipeID    string               `json:"recetaId"`
	Units       decimal.Decimal      `json:"unidades"`
	Consumption []recipe.Consumption `json:"consumo"`
	Shortage    bool                 `json:"faltantes"`
}

// ProductionResponse producción registrada.
type ProductionResponse struct {
	Batch   entity.ProductionBatch `json:"produccion"`
	Preview ProductionPreview      `json:"consumo"`
	Message string                 `json:"message"`
}

// WasteRequest registro de merma.
type WasteRequest struct {
	ProductID string          `json:"productoId" validate:"required"`
	Quantity  decimal.Decimal `json:"cantidad" validate:"gt=0" swaggertype:"number"`
	Reason    string          `json:"motivo" validate:"required,max=200"`
}

// ReplenishmentSuggestion insumo bajo su stock mínimo con la compra sugerida.
type ReplenishmentSuggestion struct {
	IngredientID  string          `json:"insumoId"`
	Name          string          `json:"insumo"`
	Unit          string          `json:"unidad"`
	Stock         decimal.Decimal `json:"stock"`
	MinStock      decimal.Decimal `json:"stockMinimo"`
	IdealStock    decimal.Decimal `json:"stockIdeal"`
	SuggestedQty  decimal.Decimal `json:"cantidadSugerida"`
	AverageCost   decimal.Decimal `json:"costoPromedio"`
	EstimatedCost decimal.Decimal `json:"costoEstimado"`
	Priority      int             `json:"prioridad"`
}
