// Package money formatea montos y cantidades para mostrar (PDF, CLI).
// Los cálculos se hacen siempre con decimal; aquí solo se presenta.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var lang = language.MustParse("es-NI")

func printer() *message.Printer { return message.NewPrinter(lang) }

// Format monto con símbolo de moneda y separadores de miles, redondeado a 2 decimales.
// Un código ISO desconocido se antepone tal cual.
func Format(amount decimal.Decimal, code string) string {
	f := amount.Round(2).InexactFloat64()
	p := printer()
	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + p.Sprint(number.Decimal(f, number.Scale(2)))
	}
	return p.Sprint(currency.Symbol(unit.Amount(f)))
}

// Quantity cantidad con hasta 4 decimales y su unidad.
func Quantity(q decimal.Decimal, unit string) string {
	s := printer().Sprint(number.Decimal(q.Round(4).InexactFloat64(), number.MaxFractionDigits(4)))
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Percent porcentaje con 2 decimales.
func Percent(p decimal.Decimal) string {
	return printer().Sprint(number.Decimal(p.Round(2).InexactFloat64(), number.Scale(2))) + " %"
}
