// Package inventory administra insumos, compras, producción y mermas. Stock y costo
// promedio los mantiene el servidor; aquí se valida y se proyecta antes de enviar.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/application/mutation"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/cache"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/inventory"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/cachestore"
)

// UseCase casos de uso de inventario.
type UseCase struct {
	api     InventoryAPI
	store   cachestore.Store
	runner  *mutation.Runner
	planner ProductionPlanner
	now     func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(api InventoryAPI, store cachestore.Store, runner *mutation.Runner, planner ProductionPlanner) *UseCase {
	return &UseCase{api: api, store: store, runner: runner, planner: planner, now: time.Now}
}

// ListIngredients insumos (cacheado).
func (uc *UseCase) ListIngredients(ctx context.Context) ([]entity.Ingredient, error) {
	return cachestore.Fetch(ctx, uc.store, cache.IngredientsKey(), uc.api.ListIngredients)
}

// GetIngredient insumo por id desde la lista cacheada.
func (uc *UseCase) GetIngredient(ctx context.Context, id string) (entity.Ingredient, error) {
	list, err := uc.ListIngredients(ctx)
	if err != nil {
		return entity.Ingredient{}, err
	}
	for _, ing := range list {
		if ing.ID == id {
			return ing, nil
		}
	}
	return entity.Ingredient{}, fmt.Errorf("insumo %s: %w", id, domain.ErrNotFound)
}

// CreateIngredient alta de insumo.
func (uc *UseCase) CreateIngredient(ctx context.Context, in dto.IngredientRequest) (entity.Ingredient, error) {
	if err := dto.Validate(in); err != nil {
		return entity.Ingredient{}, err
	}
	return mutation.Run(ctx, uc.runner, cache.IngredientCreate,
		func(ctx context.Context) (entity.Ingredient, error) { return uc.api.CreateIngredient(ctx, in.ToEntity("")) },
		nil, "Insumo creado")
}

// UpdateIngredient edición de insumo.
func (uc *UseCase) UpdateIngredient(ctx context.Context, id string, in dto.IngredientRequest) (entity.Ingredient, error) {
	if id == "" {
		return entity.Ingredient{}, domain.Invalid("id", "requerido")
	}
	if err := dto.Validate(in); err != nil {
		return entity.Ingredient{}, err
	}
	return mutation.Run(ctx, uc.runner, cache.IngredientUpdate,
		func(ctx context.Context) (entity.Ingredient, error) { return uc.api.UpdateIngredient(ctx, in.ToEntity(id)) },
		nil, "Insumo actualizado")
}

// DeleteIngredient baja de insumo.
func (uc *UseCase) DeleteIngredient(ctx context.Context, id string) error {
	_, err := mutation.Run(ctx, uc.runner, cache.IngredientDelete,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.api.DeleteIngredient(ctx, id) },
		nil, "Insumo eliminado")
	return err
}

// RegisterPurchase proyecta el nuevo costo promedio y registra la compra. El servidor
// recalcula stock y costo; la proyección se devuelve para mostrar la diferencia.
func (uc *UseCase) RegisterPurchase(ctx context.Context, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p := in.ToEntity()
	ing, err := uc.GetIngredient(ctx, p.IngredientID)
	if err != nil {
		return nil, err
	}
	preview, err := inventory.PreviewPurchase(ing, p)
	if err != nil {
		return nil, err
	}
	const msg = "Compra registrada"
	updated, err := mutation.Run(ctx, uc.runner, cache.PurchaseRegister,
		func(ctx context.Context) (entity.Ingredient, error) { return uc.api.RegisterPurchase(ctx, p) },
		nil, msg)
	if err != nil {
		return nil, err
	}
	return &dto.PurchaseResponse{Preview: preview, Ingredient: updated, Message: msg}, nil
}

// ListProduction historial de producción (cacheado).
func (uc *UseCase) ListProduction(ctx context.Context) ([]entity.ProductionBatch, error) {
	return cachestore.Fetch(ctx, uc.store, cache.ProductionKey(), uc.api.ListProduction)
}

// PreviewProduction consumo esperado sin registrar nada.
func (uc *UseCase) PreviewProduction(ctx context.Context, in dto.ProductionRequest) (*dto.ProductionPreview, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	preview, err := uc.planner.ProductionPreview(ctx, in.ProductID, in.Batches)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("el producto %s no tiene receta: %w", in.ProductID, err)
	}
	return preview, err
}

// RegisterProduction registra tandas de un producto con receta. Un faltante de insumos
// se informa en la proyección pero no bloquea: el inventario físico manda.
func (uc *UseCase) RegisterProduction(ctx context.Context, in dto.ProductionRequest) (*dto.ProductionResponse, error) {
	preview, err := uc.PreviewProduction(ctx, in)
	if err != nil {
		return nil, err
	}
	batch := entity.ProductionBatch{
		ProductID: in.ProductID,
		RecipeID:  preview.RecipeID,
		Batches:   in.Batches,
		Units:     preview.Units,
		Date:      uc.now(),
	}
	const msg = "Producción registrada"
	out, err := mutation.Run(ctx, uc.runner, cache.ProductionRegister,
		func(ctx context.Context) (entity.ProductionBatch, error) { return uc.api.RegisterProduction(ctx, batch) },
		nil, msg)
	if err != nil {
		return nil, err
	}
	return &dto.ProductionResponse{Batch: out, Preview: *preview, Message: msg}, nil
}

// ListWaste historial de mermas (cacheado).
func (uc *UseCase) ListWaste(ctx context.Context) ([]entity.WasteEntry, error) {
	return cachestore.Fetch(ctx, uc.store, cache.WasteKey(), uc.api.ListWaste)
}

// RegisterWaste registra merma de producto terminado.
func (uc *UseCase) RegisterWaste(ctx context.Context, in dto.WasteRequest) (entity.WasteEntry, error) {
	if err := dto.Validate(in); err != nil {
		return entity.WasteEntry{}, err
	}
	w := entity.WasteEntry{ProductID: in.ProductID, Quantity: in.Quantity, Reason: in.Reason, Date: uc.now()}
	return mutation.Run(ctx, uc.runner, cache.WasteRegister,
		func(ctx context.Context) (entity.WasteEntry, error) { return uc.api.RegisterWaste(ctx, w) },
		nil, "Merma registrada")
}
