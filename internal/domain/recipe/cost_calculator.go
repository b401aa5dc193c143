// Package recipe calcula el costo de una tanda y el costo unitario de una receta a partir
// de los costos promedio vigentes de los insumos. El resultado siempre se deriva de las
// entradas actuales; nunca se guarda en caché.
package recipe

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
)

// LineError identifica la línea de la receta que impidió el cálculo.
type LineError struct {
	Index        int
	IngredientID string
	Unit         string
	Err          error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("ingrediente #%d (%s, %s): %v", e.Index+1, e.IngredientID, e.Unit, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// LineCost desglose de una línea para auditoría.
type LineCost struct {
	IngredientID      string          `json:"insumoId"`
	IngredientName    string          `json:"insumo"`
	Quantity          decimal.Decimal `json:"cantidad"`
	Unit              string          `json:"unidad"`
	NativeUnit        string          `json:"unidadNativa"`
	Factor            decimal.Decimal `json:"factor"`
	ConvertedQuantity decimal.Decimal `json:"cantidadConvertida"`
	UnitCost          decimal.Decimal `json:"costoPromedio"`
	Cost              decimal.Decimal `json:"costo"`
}

// Cost resultado del costeo.
type Cost struct {
	RecipeID        string          `json:"recetaId,omitempty"`
	ProductID       string          `json:"productoId"`
	Yield           decimal.Decimal `json:"rendimiento"`
	IngredientsCost decimal.Decimal `json:"costoInsumos"`
	LaborCost       decimal.Decimal `json:"costoManoObra"`
	OverheadCost    decimal.Decimal `json:"costoIndirecto"`
	TotalCost       decimal.Decimal `json:"costoTotal"`
	UnitCost        decimal.Decimal `json:"costoUnitario"`
	Lines           []LineCost      `json:"detalles"`
}

// Ingredients búsqueda id → insumo (unidad nativa y costo promedio).
type Ingredients map[string]entity.Ingredient

// IndexIngredients arma el mapa a partir de un listado.
func IndexIngredients(list []entity.Ingredient) Ingredients {
	m := make(Ingredients, len(list))
	for _, in := range list {
		m[in.ID] = in
	}
	return m
}

// Validate revisa la receta antes de costear o enviar a la API. Si table no es nil también
// verifica que cada unidad sea convertible a la unidad nativa del insumo.
func Validate(r entity.Recipe, ingredients Ingredients, table *units.Table) error {
	if !r.Yield.GreaterThan(decimal.Zero) {
		return domain.Invalid("rendimiento", "debe ser mayor que cero")
	}
	if r.LaborCost.IsNegative() {
		return domain.Invalid("costoManoObra", "no puede ser negativo")
	}
	if r.OverheadCost.IsNegative() {
		return domain.Invalid("costoIndirecto", "no puede ser negativo")
	}
	if len(r.Lines) == 0 {
		return domain.Invalid("ingredientes", "la receta debe tener al menos un ingrediente")
	}
	for i, l := range r.Lines {
		if l.IngredientID == "" {
			return &LineError{Index: i, Unit: l.Unit, Err: domain.Invalid("insumoId", "requerido")}
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: domain.Invalid("cantidad", "debe ser mayor que cero")}
		}
		if ingredients == nil {
			continue
		}
		ing, ok := ingredients[l.IngredientID]
		if !ok {
			return &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: domain.ErrNotFound}
		}
		if table != nil && !table.Has(l.Unit, ing.Unit) {
			return &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit,
				Err: &units.ConversionNotFoundError{From: units.Normalize(l.Unit), To: units.Normalize(ing.Unit)}}
		}
	}
	return nil
}

// Calculate costea la receta. Cualquier línea sin conversión o sin insumo hace fallar
// todo el cálculo; nunca se sustituye por cero ni por factor 1.
func Calculate(r entity.Recipe, ingredients Ingredients, table *units.Table) (Cost, error) {
	if err := Validate(r, ingredients, nil); err != nil {
		return Cost{}, err
	}

	lines := make([]LineCost, 0, len(r.Lines))
	ingredientsCost := decimal.Zero
	for i, l := range r.Lines {
		ing, ok := ingredients[l.IngredientID]
		if !ok {
			return Cost{}, &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: domain.ErrNotFound}
		}
		factor, err := table.Factor(l.Unit, ing.Unit)
		if err != nil {
			return Cost{}, &LineError{Index: i, IngredientID: l.IngredientID, Unit: l.Unit, Err: err}
		}
		converted := l.Quantity.Mul(factor)
		cost := converted.Mul(ing.AverageCost)
		ingredientsCost = ingredientsCost.Add(cost)
		lines = append(lines, LineCost{
			IngredientID:      ing.ID,
			IngredientName:    ing.Name,
			Quantity:          l.Quantity,
			Unit:              units.Normalize(l.Unit),
			NativeUnit:        units.Normalize(ing.Unit),
			Factor:            factor,
			ConvertedQuantity: converted,
			UnitCost:          ing.AverageCost,
			Cost:              cost,
		})
	}

	total := ingredientsCost.Add(r.LaborCost).Add(r.OverheadCost)
	return Cost{
		RecipeID:        r.ID,
		ProductID:       r.ProductID,
		Yield:           r.Yield,
		IngredientsCost: ingredientsCost,
		LaborCost:       r.LaborCost,
		OverheadCost:    r.OverheadCost,
		TotalCost:       total,
		UnitCost:        total.Div(r.Yield),
		Lines:           lines,
	}, nil
}
