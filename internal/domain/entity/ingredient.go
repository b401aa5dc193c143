package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Ingredient (insumo) materia prima. Stock y AverageCost están expresados en Unit (unidad nativa).
// AverageCost es el costo promedio ponderado que mantiene el servidor con cada compra.
type Ingredient struct {
	ID          string                          `json:"id"`
	Name        string                          `json:"nombre"`
	Unit        string                          `json:"unidadMedida"`
	Stock       decimal.Decimal                 `json:"stock"`
	AverageCost decimal.Decimal                 `json:"costoPromedio"`
	MinStock    optional.Value[decimal.Decimal] `json:"stockMinimo"`
	ProviderID  optional.Value[string]          `json:"proveedorId"`
}

// BelowMinimum indica si el stock está por debajo del mínimo configurado.
func (i Ingredient) BelowMinimum() bool {
	min, ok := i.MinStock.Get()
	return ok && i.Stock.LessThan(min)
}
