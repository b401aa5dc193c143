package recipe_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/internal/domain/units"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTable(t *testing.T, entries ...entity.UnitConversion) *units.Table {
	t.Helper()
	tbl, err := units.NewTable(entries)
	require.NoError(t, err)
	return tbl
}

var harina = entity.Ingredient{ID: "X", Name: "Harina", Unit: "KG", Stock: d("10"), AverageCost: d("50")}

func escenarioC() entity.Recipe {
	return entity.Recipe{
		ID:           "r1",
		ProductID:    "p1",
		Yield:        d("4"),
		LaborCost:    d("10"),
		OverheadCost: d("5"),
		Lines:        []entity.RecipeLine{{IngredientID: "X", Quantity: d("2"), Unit: "LB"}},
	}
}

// Escenario C: 2 LB a 0.4536 KG/LB, 50 por KG, mano de obra 10, indirectos 5, rinde 4.
func TestCalculate_EscenarioC(t *testing.T) {
	tbl := newTable(t, entity.UnitConversion{From: "LB", To: "KG", Factor: d("0.4536")})
	cost, err := recipe.Calculate(escenarioC(), recipe.IndexIngredients([]entity.Ingredient{harina}), tbl)
	require.NoError(t, err)

	assert.True(t, d("45.36").Equal(cost.IngredientsCost), cost.IngredientsCost.String())
	assert.True(t, d("60.36").Equal(cost.TotalCost), cost.TotalCost.String())
	assert.True(t, d("15.09").Equal(cost.UnitCost), cost.UnitCost.String())

	require.Len(t, cost.Lines, 1)
	line := cost.Lines[0]
	assert.Equal(t, "Harina", line.IngredientName)
	assert.Equal(t, "LB", line.Unit)
	assert.Equal(t, "KG", line.NativeUnit)
	assert.True(t, d("0.4536").Equal(line.Factor))
	assert.True(t, d("0.9072").Equal(line.ConvertedQuantity))
	assert.True(t, d("45.36").Equal(line.Cost))
}

// Escenario D: la unidad de la línea no tiene conversión a la unidad nativa.
func TestCalculate_EscenarioD_SinConversion(t *testing.T) {
	tbl := newTable(t, entity.UnitConversion{From: "TAZA", To: "ML", Factor: d("240")})
	cost, err := recipe.Calculate(escenarioC(), recipe.IndexIngredients([]entity.Ingredient{harina}), tbl)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConversionNotFound)
	assert.Contains(t, err.Error(), "LB")
	assert.Equal(t, recipe.Cost{}, cost, "no se devuelve costo parcial")

	var le *recipe.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 0, le.Index)
	assert.Equal(t, "X", le.IngredientID)
}

func TestCalculate_Idempotente(t *testing.T) {
	tbl := newTable(t, entity.UnitConversion{From: "LB", To: "KG", Factor: d("0.4536")})
	ings := recipe.IndexIngredients([]entity.Ingredient{harina})
	r := escenarioC()

	a, err := recipe.Calculate(r, ings, tbl)
	require.NoError(t, err)
	b, err := recipe.Calculate(r, ings, tbl)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, escenarioC(), r, "la receta de entrada no se modifica")
}

func TestCalculate_VariasLineasMismaUnidad(t *testing.T) {
	azucar := entity.Ingredient{ID: "A", Name: "Azúcar", Unit: "kg", AverageCost: d("30")}
	huevo := entity.Ingredient{ID: "H", Name: "Huevo", Unit: "UNIDAD", AverageCost: d("5.5")}
	tbl := newTable(t, entity.UnitConversion{From: "G", To: "KG", Factor: d("0.001")})
	r := entity.Recipe{
		ProductID: "p2",
		Yield:     d("12"),
		Lines: []entity.RecipeLine{
			{IngredientID: "A", Quantity: d("250"), Unit: "g"},
			{IngredientID: "H", Quantity: d("3"), Unit: "unidad"},
		},
	}
	cost, err := recipe.Calculate(r, recipe.IndexIngredients([]entity.Ingredient{azucar, huevo}), tbl)
	require.NoError(t, err)
	// 0.25 kg * 30 = 7.5 ; 3 * 5.5 = 16.5
	assert.True(t, d("24").Equal(cost.IngredientsCost))
	assert.True(t, d("2").Equal(cost.UnitCost))
}

func TestCalculate_Validaciones(t *testing.T) {
	tbl := newTable(t, entity.UnitConversion{From: "LB", To: "KG", Factor: d("0.4536")})
	ings := recipe.IndexIngredients([]entity.Ingredient{harina})

	sinRendimiento := escenarioC()
	sinRendimiento.Yield = decimal.Zero
	_, err := recipe.Calculate(sinRendimiento, ings, tbl)
	assert.ErrorIs(t, err, domain.ErrValidation)

	insumoDesconocido := escenarioC()
	insumoDesconocido.Lines[0].IngredientID = "no-existe"
	_, err = recipe.Calculate(insumoDesconocido, ings, tbl)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	cantidadCero := escenarioC()
	cantidadCero.Lines[0].Quantity = decimal.Zero
	_, err = recipe.Calculate(cantidadCero, ings, tbl)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidate_DetectaConversionFaltanteAntesDeEnviar(t *testing.T) {
	tbl := newTable(t)
	err := recipe.Validate(escenarioC(), recipe.IndexIngredients([]entity.Ingredient{harina}), tbl)
	assert.ErrorIs(t, err, domain.ErrConversionNotFound)
}

func TestExpectedConsumption(t *testing.T) {
	tbl := newTable(t, entity.UnitConversion{From: "LB", To: "KG", Factor: d("0.4536")})
	r := escenarioC()
	r.Lines = append(r.Lines, entity.RecipeLine{IngredientID: "X", Quantity: d("1"), Unit: "KG"})

	out, err := recipe.ExpectedConsumption(r, d("10"), recipe.IndexIngredients([]entity.Ingredient{harina}), tbl)
	require.NoError(t, err)
	require.Len(t, out, 1)
	// (0.9072 + 1) * 10 = 19.072 kg; hay 10 en stock
	assert.True(t, d("19.072").Equal(out[0].Quantity), out[0].Quantity.String())
	assert.True(t, out[0].Shortage)

	_, err = recipe.ExpectedConsumption(r, decimal.Zero, nil, tbl)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
