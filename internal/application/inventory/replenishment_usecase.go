package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
)

var idealFactor = decimal.RequireFromString("1.5")

// Replenishment lista de compra de insumos bajo su stock mínimo. La cantidad sugerida
// lleva el stock a 1.5 veces el mínimo. Orden: mayor déficit relativo primero,
// luego mayor costo estimado.
func (uc *UseCase) Replenishment(ctx context.Context) ([]dto.ReplenishmentSuggestion, error) {
	list, err := uc.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReplenishmentSuggestion, 0)
	for _, ing := range list {
		if !ing.BelowMinimum() {
			continue
		}
		min, _ := ing.MinStock.Get()
		stock := ing.Stock
		if stock.IsNegative() {
			stock = decimal.Zero
		}
		ideal := min.Mul(idealFactor)
		qty := ideal.Sub(stock)
		out = append(out, dto.ReplenishmentSuggestion{
			IngredientID:  ing.ID,
			Name:          ing.Name,
			Unit:          units.Normalize(ing.Unit),
			Stock:         ing.Stock,
			MinStock:      min,
			IdealStock:    ideal,
			SuggestedQty:  qty,
			AverageCost:   ing.AverageCost,
			EstimatedCost: qty.Mul(ing.AverageCost).Round(2),
		})
	}

	deficit := func(s dto.ReplenishmentSuggestion) decimal.Decimal {
		if !s.MinStock.GreaterThan(decimal.Zero) {
			return decimal.Zero
		}
		return s.MinStock.Sub(s.Stock).Div(s.MinStock)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := deficit(out[i]), deficit(out[j])
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return out[i].EstimatedCost.GreaterThan(out[j].EstimatedCost)
	})

	// prioridad 1 = más urgente
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
