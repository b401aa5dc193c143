package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Sale venta de mostrador enviada a la API.
type Sale struct {
	ID       string          `json:"id,omitempty"`
	Items    []SaleItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Payments []SalePayment   `json:"pagos"`
	Change   decimal.Decimal `json:"cambio"`
	Date     time.Time       `json:"fecha"`
}

// SaleItem línea de venta al precio vigente.
type SaleItem struct {
	ProductID string          `json:"productoId"`
	Quantity  decimal.Decimal `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precioUnitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalePayment pago entregado, con el tipo de cambio capturado si es en moneda secundaria.
type SalePayment struct {
	Currency string                          `json:"moneda"`
	Amount   decimal.Decimal                 `json:"monto"`
	Rate     optional.Value[decimal.Decimal] `json:"tasaCambio"`
}
