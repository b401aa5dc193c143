package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// InventoryAPI operaciones remotas de insumos, producción y mermas.
type InventoryAPI interface {
	ListIngredients(ctx context.Context) ([]entity.Ingredient, error)
	GetIngredient(ctx context.Context, ingredientID string) (entity.Ingredient, error)
	CreateIngredient(ctx context.Context, in entity.Ingredient) (entity.Ingredient, error)
	UpdateIngredient(ctx context.Context, in entity.Ingredient) (entity.Ingredient, error)
	DeleteIngredient(ctx context.Context, ingredientID string) error
	RegisterPurchase(ctx context.Context, p entity.Purchase) (entity.Ingredient, error)

	ListProduction(ctx context.Context) ([]entity.ProductionBatch, error)
	RegisterProduction(ctx context.Context, in entity.ProductionBatch) (entity.ProductionBatch, error)
	ListWaste(ctx context.Context) ([]entity.WasteEntry, error)
	RegisterWaste(ctx context.Context, in entity.WasteEntry) (entity.WasteEntry, error)
}

// ProductionPlanner proyecta el consumo de insumos de una producción a partir de la receta
// del producto (costing.UseCase lo implementa).
type ProductionPlanner interface {
	ProductionPreview(ctx context.Context, productID string, batches decimal.Decimal) (*dto.ProductionPreview, error)
}
