package recipe

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
)

// Consumption insumo que consumirá una producción, en su unidad nativa.
type Consumption struct {
	IngredientID string          `json:"insumoId"`
	Name         string          `json:"insumo"`
	Unit         string          `json:"unidad"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Available    decimal.Decimal `json:"disponible"`
	Shortage     bool            `json:"faltante"`
}

// ExpectedConsumption escala la receta por el número de tandas y agrupa por insumo.
// Sirve como vista previa; el descuento real lo hace el servidor.
func ExpectedConsumption(r entity.Recipe, batches decimal.Decimal, ingredients Ingredients, table *units.Table) ([]Consumption, error) {
	if !batches.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid("tandas", "debe ser mayor que cero")
	}
	totals := make(map[string]decimal.Decimal, len(r.Lines))
	for i, l := range r.Lines {
		ing, ok := ingredients[l.IngredientID]
		if !ok {
			return nil, &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: domain.ErrNotFound}
		}
		q, err := table.Convert(l.Quantity, l.Unit, ing.Unit)
		if err != nil {
			return nil, &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: err}
		}
		totals[ing.ID] = totals[ing.ID].Add(q.Mul(batches))
	}

	out := make([]Consumption, 0, len(totals))
	for id, q := range totals {
		ing := ingredients[id]
		out = append(out, Consumption{
			IngredientID: id,
			Name:         ing.Name,
			Unit:         units.Normalize(ing.Unit),
			Quantity:     q,
			Available:    ing.Stock,
			Shortage:     ing.Stock.LessThan(q),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
