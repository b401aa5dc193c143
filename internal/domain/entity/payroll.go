package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// PayrollEntry registro de planilla de un empleado para un período (AAAA-MM o quincena).
type PayrollEntry struct {
	ID         string                    `json:"id,omitempty"`
	Employee   string                    `json:"empleado"`
	Period     string                    `json:"periodo"`
	BaseSalary decimal.Decimal           `json:"salarioBase"`
	Bonuses    decimal.Decimal           `json:"bonificaciones"`
	Deductions decimal.Decimal           `json:"deducciones"`
	NetPay     decimal.Decimal           `json:"salarioNeto"`
	PaidAt     optional.Value[time.Time] `json:"fechaPago"`
}

// ComputeNet salario base + bonificaciones - deducciones.
func (p PayrollEntry) ComputeNet() decimal.Decimal {
	return p.BaseSalary.Add(p.Bonuses).Sub(p.Deductions)
}
