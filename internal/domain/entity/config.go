package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppConfig configuración global del negocio servida por GET /config.
type AppConfig struct {
	ExchangeRate decimal.Decimal `json:"tipoCambio"`
	UpdatedAt    time.Time       `json:"updatedAt,omitempty"`
}
