package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeforge/backend/pkg/enums"
	"github.com/storeforge/backend/pkg/types"
)

// Order snapshots its line items at submission time; product rows may change
// or disappear afterwards without affecting historical orders.
type Order struct {
	ID        uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID           `gorm:"column:store_id;type:uuid;not null;index"`
	Items     types.OrderItems    `gorm:"column:items;type:jsonb;not null"`
	Customer  types.OrderCustomer `gorm:"column:customer;type:jsonb;not null"`
	Total     decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	Status    enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:PENDING"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
