package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// Product representa un producto terminado de la panadería (pan, repostería, bebidas).
// El stock lo aumenta la producción y lo disminuyen ventas y mermas (lado servidor).
type Product struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"nombre"`
	Description string                 `json:"descripcion,omitempty"`
	Price       decimal.Decimal        `json:"precio"` // precio de venta en moneda primaria
	Stock       decimal.Decimal        `json:"stock"`
	CategoryID  optional.Value[string] `json:"categoriaId"` // puede venir sin categoría
	RecipeID    optional.Value[string] `json:"recetaId"`    // productos de reventa no tienen receta
	Active      bool                   `json:"activo"`
	CreatedAt   time.Time              `json:"createdAt,omitempty"`
	UpdatedAt   time.Time              `json:"updatedAt,omitempty"`
}
