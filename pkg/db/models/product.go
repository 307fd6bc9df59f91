package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID     uuid.UUID       `gorm:"column:store_id;type:uuid;not null;index"`
	CategoryID  *uuid.UUID      `gorm:"column:category_id;type:uuid;index"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Images      pq.StringArray  `gorm:"column:images;type:text[]"`
	Inventory   int             `gorm:"column:inventory;not null;default:0"`
	// No gorm default tag: gorm drops zero-valued defaulted fields from the
	// INSERT, which would turn an explicit false into the column default.
	IsActive bool `gorm:"column:is_active;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
