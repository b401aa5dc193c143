package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Tipos de movimiento de caja.
const (
	CashMovementIn  = "ingreso"
	CashMovementOut = "egreso"
)

// CashMovement entrada o salida de efectivo fuera de las ventas (pago a proveedor, retiro, fondo).
type CashMovement struct {
	ID       string                          `json:"id,omitempty"`
	Type     string                          `json:"tipo"`
	Amount   decimal.Decimal                 `json:"monto"`
	Currency string                          `json:"moneda"`
	Rate     optional.Value[decimal.Decimal] `json:"tasaCambio"`
	Concept  string                          `json:"concepto"`
	Date     time.Time                       `json:"fecha"`
	UserID   string                          `json:"usuarioId,omitempty"`
}

// CashFilter filtros del listado de movimientos de caja. Forman parte de la llave de caché.
type CashFilter struct {
	From time.Time
	To   time.Time
	Type string
}
