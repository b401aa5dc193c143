package ports

import (
	"context"

	"github.com/jhoicas/panaderia-erp/internal/domain/currency"
)

// RateProvider entrega el par de monedas con el tipo de cambio vigente.
// Los cálculos de pago lo reciben explícitamente; nunca leen un valor global.
type RateProvider interface {
	CurrentPair(ctx context.Context) (currency.Pair, error)
}
