package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Estados de un pedido.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusFinalized = "finalizado"
	OrderStatusCancelled = "cancelado"
)

// Order pedido de un cliente (p.ej. pastel por encargo) con abonos parciales.
type Order struct {
	ID           string                    `json:"id,omitempty"`
	Customer     Customer                  `json:"cliente"`
	Items        []OrderItem               `json:"items"`
	Total        decimal.Decimal           `json:"total"`
	Deposits     []Deposit                 `json:"abonos"`
	Status       string                    `json:"estado"`
	DeliveryDate optional.Value[time.Time] `json:"fechaEntrega"`
	Notes        string                    `json:"notas,omitempty"`
}

// OrderItem línea de un pedido.
type OrderItem struct {
	ProductID   string          `json:"productoId"`
	Description string          `json:"descripcion,omitempty"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precioUnitario"`
}

// Deposit abono a un pedido. PrimaryAmount es el valor en moneda primaria al tipo de cambio
// capturado cuando se recibió.
type Deposit struct {
	ID            string                          `json:"id,omitempty"`
	Currency      string                          `json:"moneda"`
	Amount        decimal.Decimal                 `json:"monto"`
	Rate          optional.Value[decimal.Decimal] `json:"tasaCambio"`
	PrimaryAmount decimal.Decimal                 `json:"montoPrimario"`
	Date          time.Time                       `json:"fecha"`
}

// Paid suma de abonos en moneda primaria.
func (o Order) Paid() decimal.Decimal {
	total := decimal.Zero
	for _, d := range o.Deposits {
		total = total.Add(d.PrimaryAmount)
	}
	return total
}

// Balance saldo pendiente (nunca negativo).
func (o Order) Balance() decimal.Decimal {
	b := o.Total.Sub(o.Paid())
	if b.IsNegative() {
		return decimal.Zero
	}
	return b
}

// ItemsTotal suma de cantidad * precio de las líneas.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}
