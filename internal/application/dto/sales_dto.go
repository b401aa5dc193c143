package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/payment"
)

// PaymentInput monto entregado en una moneda. Si la moneda es la secundaria y no trae
// tasaCambio, se captura el tipo de cambio vigente.
type PaymentInput struct {
	Currency string                          `json:"moneda" validate:"required"`
	Amount   decimal.Decimal                 `json:"monto" validate:"min=0"`
	Rate     optional.Value[decimal.Decimal] `json:"tasaCambio" swaggertype:"number"`
}

// CartItem línea del carrito.
type CartItem struct {
	ProductID string          `json:"productoId" validate:"required"`
	Quantity  decimal.Decimal `json:"cantidad" validate:"gt=0" swaggertype:"number"`
}

// CheckoutRequest cobro de una venta.
type CheckoutRequest struct {
	Items    []CartItem     `json:"items" validate:"dive"`
	Payments []PaymentInput `json:"pagos" validate:"max=2,dive"`
}

// CheckoutResponse venta registrada y conciliación del pago.
type CheckoutResponse struct {
	Sale    entity.Sale     `json:"venta"`
	Payment payment.Result  `json:"pago"`
	Rate    decimal.Decimal `json:"tasaCambio"`
	Message string          `json:"message"`
}

// ChangeRequest cálculo de cambio sin registrar venta.
type ChangeRequest struct {
	Total    decimal.Decimal `json:"total" validate:"min=0" swaggertype:"number"`
	Payments []PaymentInput  `json:"pagos" validate:"max=2,dive"`
}

// ChangeResponse resultado de la conciliación con el faltante (si lo hay).
type ChangeResponse struct {
	payment.Result
	Shortfall decimal.Decimal `json:"faltante"`
	Rate      decimal.Decimal `json:"tasaCambio"`
}
