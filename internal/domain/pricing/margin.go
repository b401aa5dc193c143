// Package pricing calcula margen y markup para mostrar junto al costo unitario.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Analysis margen sobre precio y markup sobre costo, en porcentaje con 2 decimales.
type Analysis struct {
	Price     decimal.Decimal `json:"precio"`
	UnitCost  decimal.Decimal `json:"costoUnitario"`
	Profit    decimal.Decimal `json:"utilidad"`
	MarginPct decimal.Decimal `json:"margenPct"`
	MarkupPct decimal.Decimal `json:"markupPct"`
	BelowCost bool            `json:"bajoCosto"`
}

// Analyze margen = (precio - costo) / precio; markup = (precio - costo) / costo.
// Con precio o costo en cero el porcentaje correspondiente queda en cero.
func Analyze(price, unitCost decimal.Decimal) Analysis {
	profit := price.Sub(unitCost)
	a := Analysis{
		Price:     price,
		UnitCost:  unitCost,
		Profit:    profit,
		BelowCost: profit.IsNegative(),
	}
	if price.GreaterThan(decimal.Zero) {
		a.MarginPct = profit.Div(price).Mul(hundred).Round(2)
	}
	if unitCost.GreaterThan(decimal.Zero) {
		a.MarkupPct = profit.Div(unitCost).Mul(hundred).Round(2)
	}
	return a
}

// PriceForMargin precio sugerido para alcanzar un margen objetivo (0 <= margen < 100).
func PriceForMargin(unitCost, marginPct decimal.Decimal) (decimal.Decimal, bool) {
	if marginPct.IsNegative() || marginPct.GreaterThanOrEqual(hundred) {
		return decimal.Zero, false
	}
	return unitCost.Div(decimal.NewFromInt(1).Sub(marginPct.Div(hundred))).Round(2), true
}
