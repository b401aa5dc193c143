// Package units contiene la tabla de conversiones de unidades de medida usada por el
// costeo de recetas. La tabla se carga una vez por sesión desde la API y es de solo lectura.
package units

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// ConversionNotFoundError no existe entrada para el par (From, To).
type ConversionNotFoundError struct {
	From string
	To   string
}

func (e *ConversionNotFoundError) Error() string {
	return fmt.Sprintf("no existe conversión de %s a %s", e.From, e.To)
}

func (e *ConversionNotFoundError) Unwrap() error { return domain.ErrConversionNotFound }

type pair struct{ from, to string }

// Table búsqueda (origen, destino) → factor, sin distinguir mayúsculas.
type Table struct {
	factors map[pair]decimal.Decimal
}

// Normalize unidad en mayúsculas y sin espacios alrededor.
func Normalize(unit string) string { return strings.ToUpper(strings.TrimSpace(unit)) }

// NewTable construye la tabla. Rechaza factores no positivos y pares repetidos con
// factores distintos; un par repetido con el mismo factor se acepta.
func NewTable(entries []entity.UnitConversion) (*Table, error) {
	t := &Table{factors: make(map[pair]decimal.Decimal, len(entries))}
	for i, e := range entries {
		from, to := Normalize(e.From), Normalize(e.To)
		if from == "" || to == "" {
			return nil, domain.Invalid(fmt.Sprintf("conversiones[%d]", i), "unidad vacía")
		}
		if !e.Factor.GreaterThan(decimal.Zero) {
			return nil, domain.Invalid(fmt.Sprintf("conversiones[%d]", i), "el factor debe ser mayor que cero")
		}
		k := pair{from, to}
		if prev, ok := t.factors[k]; ok && !prev.Equal(e.Factor) {
			return nil, domain.Invalid(fmt.Sprintf("conversiones[%d]", i),
				fmt.Sprintf("factor duplicado para %s→%s", from, to))
		}
		t.factors[k] = e.Factor
	}
	return t, nil
}

// Factor devuelve el factor para (from, to). Para unidades iguales el factor es 1.
func (t *Table) Factor(from, to string) (decimal.Decimal, error) {
	f, n := Normalize(from), Normalize(to)
	if f == n {
		return decimal.NewFromInt(1), nil
	}
	if t != nil {
		if factor, ok := t.factors[pair{f, n}]; ok {
			return factor, nil
		}
	}
	return decimal.Zero, &ConversionNotFoundError{From: f, To: n}
}

// Has indica si la conversión es posible (directa o identidad).
func (t *Table) Has(from, to string) bool {
	_, err := t.Factor(from, to)
	return err == nil
}

// Convert quantity * factor. Si from == to devuelve quantity sin consultar la tabla.
func (t *Table) Convert(quantity decimal.Decimal, from, to string) (decimal.Decimal, error) {
	factor, err := t.Factor(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return quantity.Mul(factor), nil
}

// Len cantidad de pares cargados.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.factors)
}
