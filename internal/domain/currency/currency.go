// Package currency convierte montos entre la moneda primaria (contable) y la secundaria
// usando un tipo de cambio explícito. No lee estado global.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Code código ISO 4217 de una moneda (NIO, USD).
type Code string

// Normalize devuelve el código en mayúsculas y sin espacios.
func (c Code) Normalize() Code { return Code(strings.ToUpper(strings.TrimSpace(string(c)))) }

var (
	// ErrInvalidRate tipo de cambio no positivo.
	ErrInvalidRate = fmt.Errorf("%w: el tipo de cambio debe ser mayor que cero", domain.ErrValidation)
	// ErrNegativeAmount montos negativos no están permitidos.
	ErrNegativeAmount = fmt.Errorf("%w: el monto no puede ser negativo", domain.ErrValidation)
	// ErrCurrencyMismatch aritmética entre monedas distintas sin conversión previa.
	ErrCurrencyMismatch = errors.New("no se pueden operar montos de monedas distintas sin convertir")
)

// Rate representa "1 unidad secundaria = Rate unidades primarias".
type Rate = decimal.Decimal

// ValidateRate verifica que el tipo de cambio sea > 0.
func ValidateRate(rate Rate) error {
	if !rate.GreaterThan(decimal.Zero) {
		return ErrInvalidRate
	}
	return nil
}

// ToPrimary convierte un monto secundario a primario: secondary * rate.
func ToPrimary(secondary decimal.Decimal, rate Rate) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return secondary.Mul(rate), nil
}

// ToSecondary convierte un monto primario a secundario: primary / rate.
func ToSecondary(primary decimal.Decimal, rate Rate) (decimal.Decimal, error) {
	if err := ValidateRate(rate); err != nil {
		return decimal.Zero, err
	}
	return primary.Div(rate), nil
}

// Amount es un monto denominado en una moneda.
type Amount struct {
	Value    decimal.Decimal `json:"monto"`
	Currency Code            `json:"moneda"`
}

// NewAmount valida que el monto no sea negativo.
func NewAmount(v decimal.Decimal, c Code) (Amount, error) {
	if v.IsNegative() {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{Value: v, Currency: c.Normalize()}, nil
}

// Add suma dos montos de la misma moneda.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency.Normalize() != b.Currency.Normalize() {
		return Amount{}, ErrCurrencyMismatch
	}
	return Amount{Value: a.Value.Add(b.Value), Currency: a.Currency.Normalize()}, nil
}

// Pair agrupa la moneda primaria, la secundaria y el tipo de cambio vigente.
// Se inyecta explícitamente en cada cálculo.
type Pair struct {
	Primary   Code
	Secondary Code
	Rate      Rate
}

// Validate revisa códigos y tipo de cambio.
func (p Pair) Validate() error {
	if p.Primary.Normalize() == "" || p.Secondary.Normalize() == "" {
		return domain.Invalid("moneda", "códigos de moneda requeridos")
	}
	if p.Primary.Normalize() == p.Secondary.Normalize() {
		return domain.Invalid("moneda", "la moneda primaria y la secundaria deben ser distintas")
	}
	return ValidateRate(p.Rate)
}

// Capture tasa con la que se registra un monto en moneda secundaria: siempre la vigente.
// Una tasa enviada por el cliente solo se acepta si coincide con ella.
func (p Pair) Capture(supplied optional.Value[decimal.Decimal], field string) (Rate, error) {
	if r, ok := supplied.Get(); ok && !r.Equal(p.Rate) {
		return decimal.Zero, domain.Invalid(field, fmt.Sprintf("la tasa %s no coincide con el tipo de cambio vigente %s",
			r.String(), p.Rate.String()))
	}
	return p.Rate, nil
}

// ToPrimary convierte cualquier monto del par a la moneda primaria.
func (p Pair) ToPrimary(a Amount) (Amount, error) {
	switch a.Currency.Normalize() {
	case p.Primary.Normalize():
		return Amount{Value: a.Value, Currency: p.Primary.Normalize()}, nil
	case p.Secondary.Normalize():
		v, err := ToPrimary(a.Value, p.Rate)
		if err != nil {
			return Amount{}, err
		}
		return Amount{Value: v, Currency: p.Primary.Normalize()}, nil
	default:
		return Amount{}, domain.Invalid("moneda", fmt.Sprintf("moneda %q no soportada", a.Currency))
	}
}
