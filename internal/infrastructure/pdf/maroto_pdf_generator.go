// Package pdf genera la ficha de costo de una receta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la panadería │  Producto + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECETA: Rendimiento / Mano de obra / Indirectos             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Insumo | Cantidad | Convertida | C.Prom | Costo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Insumos / Tanda / Unitario / Margen                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/panaderia-erp/internal/application/costing"
	"github.com/jhoicas/panaderia-erp/internal/domain/pricing"
	"github.com/jhoicas/panaderia-erp/internal/domain/recipe"
	"github.com/jhoicas/panaderia-erp/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 68, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ costing.CostSheetGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator genera la ficha de costo con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCostSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCostSheet(_ context.Context, sheet costing.CostSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de costo - "+sheet.Product.Name, true).
		WithAuthor(sheet.Business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recipeRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(sheet.Cost.Lines, sheet.Currency) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sheet))
	if a, ok := sheet.Pricing.Get(); ok {
		m.AddRows(pricingRow(a, sheet.Currency))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet costing.CostSheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.Business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ficha de costo de receta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(sheet.Product.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+sheet.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func recipeRow(sheet costing.CostSheet) core.Row {
	c := sheet.Cost
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RECETA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Rendimiento: %s unidades   |   Mano de obra: %s   |   Indirectos: %s",
				money.Quantity(c.Yield, ""),
				money.Format(c.LaborCost, sheet.Currency),
				money.Format(c.OverheadCost, sheet.Currency),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Insumo", 4, align.Left),
		h("Cantidad", 2, align.Right),
		h("Convertida", 2, align.Right),
		h("Costo prom.", 2, align.Right),
		h("Costo", 2, align.Right),
	)
}

func tableLineRows(lines []recipe.LineCost, cur string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				l.IngredientName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.Quantity(l.Quantity, l.Unit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.Quantity(l.ConvertedQuantity, l.NativeUnit),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(l.UnitCost, cur)+"/"+l.NativeUnit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(l.Cost, cur),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(sheet costing.CostSheet) core.Row {
	c := sheet.Cost
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Costo insumos:"),
			label("Costo por tanda:"),
			label("COSTO UNITARIO:"),
		),
		col.New(4).Add(
			value(money.Format(c.IngredientsCost, sheet.Currency)),
			value(money.Format(c.TotalCost, sheet.Currency)),
			grand(money.Format(c.UnitCost, sheet.Currency)),
		),
	)
}

func pricingRow(a pricing.Analysis, cur string) core.Row {
	color := colorGray
	note := ""
	if a.BelowCost {
		color = colorDanger
		note = "   (precio por debajo del costo)"
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Precio: %s   |   Utilidad: %s   |   Margen: %s   |   Markup: %s%s",
			money.Format(a.Price, cur),
			money.Format(a.Profit, cur),
			money.Percent(a.MarginPct),
			money.Percent(a.MarkupPct),
			note,
		), props.Text{Size: 8, Top: 3, Color: color}),
	))
}
