// Package payment concilia los pagos entregados en caja contra el total a cobrar.
//
// Los montos en moneda secundaria se convierten con el tipo de cambio capturado
// al momento de entregarlos, de modo que una transacción histórica siempre se
// puede reproducir.
package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// MaxTenders como máximo un pago por moneda.
const MaxTenders = 2

// Tender es un monto entregado en una moneda. Rate solo aplica a la moneda secundaria.
type Tender struct {
	Currency currency.Code                   `json:"moneda"`
	Amount   decimal.Decimal                 `json:"monto"`
	Rate     optional.Value[decimal.Decimal] `json:"tasaCambio"`
}

// Result resultado de la conciliación. Change solo tiene sentido si Sufficient.
type Result struct {
	TotalDue      decimal.Decimal `json:"totalAPagar"`
	TotalTendered decimal.Decimal `json:"totalRecibido"`
	Change        decimal.Decimal `json:"cambio"`
	Sufficient    bool            `json:"suficiente"`
}

// Err devuelve *InsufficientError si el pago no alcanza.
func (r Result) Err() error {
	if r.Sufficient {
		return nil
	}
	return &InsufficientError{
		Due:       r.TotalDue,
		Tendered:  r.TotalTendered,
		Shortfall: r.TotalDue.Sub(r.TotalTendered),
	}
}

// InsufficientError detalle del faltante. Envuelve domain.ErrInsufficientPayment.
type InsufficientError struct {
	Due       decimal.Decimal
	Tendered  decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("pago insuficiente: faltan %s (total %s, recibido %s)",
		e.Shortfall.StringFixed(2), e.Due.StringFixed(2), e.Tendered.StringFixed(2))
}

func (e *InsufficientError) Unwrap() error { return domain.ErrInsufficientPayment }

// Reconciler conoce cuál es la moneda primaria y cuál la secundaria.
type Reconciler struct {
	Primary   currency.Code
	Secondary currency.Code
}

// NewReconciler construye el conciliador.
func NewReconciler(primary, secondary currency.Code) Reconciler {
	return Reconciler{Primary: primary.Normalize(), Secondary: secondary.Normalize()}
}

// Reconcile suma lo entregado (convertido a primaria), decide si alcanza y calcula el cambio.
// Un pago insuficiente NO es un error de esta función: se refleja en Result.Sufficient.
// Los errores devueltos son de validación (montos negativos, moneda desconocida, tasa faltante).
func (rc Reconciler) Reconcile(totalDue decimal.Decimal, tenders []Tender) (Result, error) {
	if totalDue.IsNegative() {
		return Result{}, domain.Invalid("total", "el total no puede ser negativo")
	}
	if len(tenders) > MaxTenders {
		return Result{}, domain.Invalid("pagos", "máximo un pago por moneda")
	}

	seen := make(map[currency.Code]bool, len(tenders))
	total := decimal.Zero
	for _, t := range tenders {
		code := t.Currency.Normalize()
		if seen[code] {
			return Result{}, domain.Invalid("pagos", fmt.Sprintf("pago duplicado en %s", code))
		}
		seen[code] = true
		if t.Amount.IsNegative() {
			return Result{}, domain.Invalid("pagos", "el monto entregado no puede ser negativo")
		}

		switch code {
		case rc.Primary:
			total = total.Add(t.Amount)
		case rc.Secondary:
			rate, ok := t.Rate.Get()
			if !ok {
				return Result{}, domain.Invalid("tasaCambio", fmt.Sprintf("el pago en %s requiere el tipo de cambio capturado", code))
			}
			converted, err := currency.ToPrimary(t.Amount, rate)
			if err != nil {
				return Result{}, err
			}
			total = total.Add(converted)
		default:
			return Result{}, domain.Invalid("moneda", fmt.Sprintf("moneda %q no soportada", t.Currency))
		}
	}

	sufficient := total.GreaterThanOrEqual(totalDue)
	change := total.Sub(totalDue)
	if change.IsNegative() {
		change = decimal.Zero
	}
	return Result{
		TotalDue:      totalDue,
		TotalTendered: total,
		Change:        change,
		Sufficient:    sufficient,
	}, nil
}

// CalculateTotalPayment nio + usd*rate.
func CalculateTotalPayment(primary, secondary decimal.Decimal, rate currency.Rate) (decimal.Decimal, error) {
	converted, err := currency.ToPrimary(secondary, rate)
	if err != nil {
		return decimal.Zero, err
	}
	return primary.Add(converted), nil
}

// CalculateChange max(nio + usd*rate - total, 0).
func CalculateChange(total, primary, secondary decimal.Decimal, rate currency.Rate) (decimal.Decimal, error) {
	paid, err := CalculateTotalPayment(primary, secondary, rate)
	if err != nil {
		return decimal.Zero, err
	}
	if paid.LessThanOrEqual(total) {
		return decimal.Zero, nil
	}
	return paid.Sub(total), nil
}
