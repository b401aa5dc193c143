package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionBatch registro de producción: Batches tandas de la receta del producto.
// El servidor suma Units al stock del producto y descuenta los insumos.
type ProductionBatch struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"productoId"`
	RecipeID  string          `json:"recetaId"`
	Batches   decimal.Decimal `json:"tandas"`
	Units     decimal.Decimal `json:"unidades"`
	Date      time.Time       `json:"fecha"`
}

// WasteEntry merma de producto terminado (vencido, quemado, dañado).
type WasteEntry struct {
	ID        string          `json:"id,omitempty"`
	ProductID string          `json:"productoId"`
	Quantity  decimal.Decimal `json:"cantidad"`
	Reason    string          `json:"motivo"`
	Date      time.Time       `json:"fecha"`
}
