package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/enums"
	"github.com/storeforge/backend/pkg/types"
)

// OrderDTO is the wire shape of an order.
type OrderDTO struct {
	ID        uuid.UUID           `json:"id"`
	StoreID   uuid.UUID           `json:"storeId"`
	Items     types.OrderItems    `json:"items"`
	Customer  types.OrderCustomer `json:"customer"`
	Total     decimal.Decimal     `json:"total"`
	Status    enums.OrderStatus   `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// OrderItemInput references a product by id; name, price, and image are
// snapshotted server-side so clients cannot set their own prices.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// CreateOrderInput is the public checkout payload.
type CreateOrderInput struct {
	Items    []OrderItemInput    `json:"items" validate:"required,min=1,dive"`
	Customer types.OrderCustomer `json:"customer" validate:"required"`
}

// UpdateStatusInput moves an order through its lifecycle.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// FromModel maps an order row onto its DTO.
func FromModel(order *models.Order) *OrderDTO {
	return &OrderDTO{
		ID:        order.ID,
		StoreID:   order.StoreID,
		Items:     order.Items,
		Customer:  order.Customer,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
