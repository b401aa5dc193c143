package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Purchase compra de un insumo. El servidor suma Quantity al stock y recalcula el costo promedio.
type Purchase struct {
	IngredientID string                 `json:"insumoId"`
	Quantity     decimal.Decimal        `json:"cantidad"`
	TotalCost    decimal.Decimal        `json:"costoTotal"`
	ProviderID   optional.Value[string] `json:"proveedorId"`
}

// UnitCost costo por unidad nativa de la compra.
func (p Purchase) UnitCost() decimal.Decimal {
	if !p.Quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return p.TotalCost.Div(p.Quantity)
}
