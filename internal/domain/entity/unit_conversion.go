package entity

import "github.com/shopspring/decimal"

// UnitConversion cantidad_destino = cantidad_origen * Factor.
type UnitConversion struct {
	From   string          `json:"unidadOrigen"`
	To     string          `json:"unidadDestino"`
	Factor decimal.Decimal `json:"factor"`
}
