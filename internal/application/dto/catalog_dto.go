package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// ProductRequest alta o edición de producto.
type ProductRequest struct {
	Name        string                 `json:"nombre" validate:"required,max=120"`
	Description string                 `json:"descripcion" validate:"max=500"`
	Price       decimal.Decimal        `json:"precio" validate:"min=0" swaggertype:"number"`
	CategoryID  optional.Value[string] `json:"categoriaId" swaggertype:"string"`
	Active      bool                   `json:"activo"`
}

// ToEntity convierte la petición en producto.
func (r ProductRequest) ToEntity(id string) entity.Product {
	return entity.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		CategoryID:  r.CategoryID,
		Active:      r.Active,
	}
}

// CategoryRequest alta o edición de categoría.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required,max=80"`
	Description string `json:"descripcion" validate:"max=300"`
}

// ProviderRequest alta o edición de proveedor.
type ProviderRequest struct {
	Name    string `json:"nombre" validate:"required,max=120"`
	Phone   string `json:"telefono" validate:"max=30"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"direccion" validate:"max=200"`
}
