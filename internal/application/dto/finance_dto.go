package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// CashMovementRequest ingreso o egreso de caja.
type CashMovementRequest struct {
	Type     string                          `json:"tipo" validate:"required,oneof=ingreso egreso"`
	Amount   decimal.Decimal                 `json:"monto" validate:"gt=0" swaggertype:"number"`
	Currency string                          `json:"moneda" validate:"required"`
	Rate     optional.Value[decimal.Decimal] `json:"tasaCambio" swaggertype:"number"`
	Concept  string                          `json:"concepto" validate:"required,max=200"`
}

// CashSummary totales del listado filtrado, en moneda primaria.
type CashSummary struct {
	Movements []entity.CashMovement `json:"movimientos"`
	TotalIn   decimal.Decimal       `json:"totalIngresos"`
	TotalOut  decimal.Decimal       `json:"totalEgresos"`
	Net       decimal.Decimal       `json:"neto"`
}

// PayrollRequest alta o edición de planilla.
type PayrollRequest struct {
	Employee   string                    `json:"empleado" validate:"required,max=120"`
	Period     string                    `json:"periodo" validate:"required"`
	BaseSalary decimal.Decimal           `json:"salarioBase" validate:"min=0" swaggertype:"number"`
	Bonuses    decimal.Decimal           `json:"bonificaciones" validate:"min=0" swaggertype:"number"`
	Deductions decimal.Decimal           `json:"deducciones" validate:"min=0" swaggertype:"number"`
	PaidAt     optional.Value[time.Time] `json:"fechaPago" swaggertype:"string"`
}

// ToEntity convierte la petición en entrada de planilla con el neto calculado.
func (r PayrollRequest) ToEntity(id string) entity.PayrollEntry {
	e := entity.PayrollEntry{
		ID:         id,
		Employee:   r.Employee,
		Period:     r.Period,
		BaseSalary: r.BaseSalary,
		Bonuses:    r.Bonuses,
		Deductions: r.Deductions,
		PaidAt:     r.PaidAt,
	}
	e.NetPay = e.ComputeNet()
	return e
}

// ExchangeRateRequest actualización del tipo de cambio.
type ExchangeRateRequest struct {
	Rate decimal.Decimal `json:"tipoCambio" validate:"gt=0" swaggertype:"number"`
}

// ExchangeRateResponse tipo de cambio vigente.
type ExchangeRateResponse struct {
	Primary   string          `json:"monedaPrimaria"`
	Secondary string          `json:"monedaSecundaria"`
	Rate      decimal.Decimal `json:"tipoCambio"`
	UpdatedAt time.Time       `json:"updatedAt,omitempty"`
}
