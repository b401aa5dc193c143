package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-erp/internal/domain/entity"
	"github.com/jhoicas/panaderia-erp/internal/domain/optional"
)

// OrderItemInput línea del pedido.
type OrderItemInput struct {
	ProductID   string          `json:"productoId" validate:"required"`
	Description string          `json:"descripcion" validate:"max=200"`
	Quantity    decimal.Decimal `json:"cantidad" validate:"gt=0" swaggertype:"number"`
	UnitPrice   decimal.Decimal `json:"precioUnitario" validate:"min=0" swaggertype:"number"`
}

// CustomerInput cliente del pedido.
type CustomerInput struct {
	Name  string `json:"nombre" validate:"required,max=120"`
	Phone string `json:"telefono" validate:"max=30"`
}

// OrderRequest alta o edición de pedido.
type OrderRequest struct {
	Customer     CustomerInput             `json:"cliente"`
	Items        []OrderItemInput          `json:"items" validate:"required,min=1,dive"`
	DeliveryDate optional.Value[time.Time] `json:"fechaEntrega" swaggertype:"string"`
	Notes        string                    `json:"notas" validate:"max=500"`
}

// ToEntity convierte la petición en pedido; el total se calcula de las líneas.
func (r OrderRequest) ToEntity(id string) entity.Order {
	items := make([]entity.OrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = entity.OrderItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	o := entity.Order{
		ID:           id,
		Customer:     entity.Customer{Name: r.Customer.Name, Phone: r.Customer.Phone},
		Items:        items,
		Status:       entity.OrderStatusPending,
		DeliveryDate: r.DeliveryDate,
		Notes:        r.Notes,
	}
	o.Total = o.ItemsTotal()
	return o
}

// FinalizeRequest pagos con los que se cubre el saldo al entregar.
type FinalizeRequest struct {
	Payments []PaymentInput `json:"pagos" validate:"max=2,dive"`
}

// OrderResponse pedido con su estado de cuenta.
type OrderResponse struct {
	Order   entity.Order    `json:"pedido"`
	Paid    decimal.Decimal `json:"pagado"`
	Balance decimal.Decimal `json:"saldo"`
	Change  decimal.Decimal `json:"cambio"`
	Message string          `json:"message,omitempty"`
}
