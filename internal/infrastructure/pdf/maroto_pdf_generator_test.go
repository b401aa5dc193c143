package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
	"github.com/jhoicas/panaderia-erp/internal/domain/pricing"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/pdf"
)

func TestGenerateCostSheet(t *testing.T) {
	d := decimal.RequireFromString
	sheet := costing.CostSheet{
		Business: "Panadería La Espiga",
		Currency: "NIO",
		Product:  entity.Product{ID: "pan-1", Name: "Pan de yema", Price: d("20")},
		Cost: recipe.Cost{
			ProductID:       "pan-1",
			Yield:           d("4"),
			IngredientsCost: d("45.36"),
			LaborCost:       d("10"),
			OverheadCost:    d("5"),
			TotalCost:       d("60.36"),
			UnitCost:        d("15.09"),
			Lines: []recipe.LineCost{{
				IngredientID:      "harina",
				IngredientName:    "Harina",
				Quantity:          d("2"),
				Unit:              "LB",
				NativeUnit:        "KG",
				Factor:            d("0.4536"),
				ConvertedQuantity: d("0.9072"),
				UnitCost:          d("50"),
				Cost:              d("45.36"),
			}},
		},
		Pricing: optional.Some(pricing.Analyze(d("20"), d("15.09"))),
		Date:    time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoPDFGenerator().GenerateCostSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
