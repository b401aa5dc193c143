package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
)

// WeightedAverageCost costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// PurchasePreview proyección del efecto de una compra sobre un insumo.
type PurchasePreview struct {
	IngredientID       string          `json:"insumoId"`
	CurrentStock       decimal.Decimal `json:"stockActual"`
	CurrentAverageCost decimal.Decimal `json:"costoPromedioActual"`
	PurchaseUnitCost   decimal.Decimal `json:"costoUnitarioCompra"`
	ProjectedStock     decimal.Decimal `json:"stockProyectado"`
	ProjectedAvgCost   decimal.Decimal `json:"costoPromedioProyectado"`
}

// ValidatePurchase cantidad y costo total deben ser positivos.
func ValidatePurchase(p entity.Purchase) error {
	if p.IngredientID == "" {
		return domain.Invalid("insumoId", "requerido")
	}
	if !p.Quantity.GreaterThan(decimal.Zero) {
		return domain.Invalid("cantidad", "debe ser mayor que cero")
	}
	if !p.TotalCost.GreaterThan(decimal.Zero) {
		return domain.Invalid("costoTotal", "debe ser mayor que cero")
	}
	return nil
}

// PreviewPurchase calcula stock y costo promedio esperados. El valor definitivo lo fija el servidor.
// Un stock negativo (descuadre) se trata como cero para no distorsionar el promedio.
func PreviewPurchase(ing entity.Ingredient, p entity.Purchase) (PurchasePreview, error) {
	if err := ValidatePurchase(p); err != nil {
		return PurchasePreview{}, err
	}
	stock := ing.Stock
	if stock.IsNegative() {
		stock = decimal.Zero
	}
	unitCost := p.UnitCost()
	return PurchasePreview{
		IngredientID:       ing.ID,
		CurrentStock:       ing.Stock,
		CurrentAverageCost: ing.AverageCost,
		PurchaseUnitCost:   unitCost,
		ProjectedStock:     stock.Add(p.Quantity),
		ProjectedAvgCost:   WeightedAverageCost(stock, ing.AverageCost, p.Quantity, unitCost),
	}, nil
}
