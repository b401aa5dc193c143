package entity

import "github.com/shopspring/decimal"

// Recipe (receta) de un producto. Yield es la cantidad de unidades que produce una tanda.
type Recipe struct {
	ID           string          `json:"id,omitempty"`
	ProductID    string          `json:"productoId"`
	Yield        decimal.Decimal `json:"rendimiento"`
	LaborCost    decimal.Decimal `json:"costoManoObra"`
	OverheadCost decimal.Decimal `json:"costoIndirecto"`
	Lines        []RecipeLine    `json:"ingredientes"`
}

// RecipeLine ingrediente de una receta. Unit puede diferir de la unidad nativa del insumo
// siempre que exista conversión.
type RecipeLine struct {
	IngredientID string          `json:"insumoId"`
	Quantity     decimal.Decimal `json:"cantidad"`
	Unit         string          `json:"unidad"`
}

// RecipeCostReport desglose de costo calculado por el servidor (GET /recetas/{id}/costo).
type RecipeCostReport struct {
	TotalCost       decimal.Decimal    `json:"costoTotal"`
	UnitCost        decimal.Decimal    `json:"costoUnitario"`
	IngredientsCost decimal.Decimal    `json:"costoInsumos"`
	OverheadCost    decimal.Decimal    `json:"costoOverhead"`
	Details         []RecipeCostDetail `json:"detalles"`
}

// RecipeCostDetail línea del desglose del servidor.
type RecipeCostDetail struct {
	IngredientName string          `json:"insumo"`
	Quantity       decimal.Decimal `json:"cantidad"`
	Unit           string          `json:"unidad"`
	Cost           decimal.Decimal `json:"costo"`
}
