package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderItem is a purchased line captured at submission time. Price is the unit
// price snapshot, not a live product reference.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// OrderItems is the jsonb-persisted line collection.
type OrderItems []OrderItem

// Total sums price times quantity across all lines.
func (items OrderItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Value marshals the lines into JSON for Postgres.
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the lines.
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("order items: unsupported scan type %T", value)
	}

	result := OrderItems{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*items = result
	return nil
}

// OrderCustomer captures the shopper payload submitted with a public order.
type OrderCustomer struct {
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Value marshals the customer into JSON for Postgres.
func (c OrderCustomer) Value() (driver.Value, error) {
	buf, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the customer.
func (c *OrderCustomer) Scan(value interface{}) error {
	if value == nil {
		*c = OrderCustomer{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("order customer: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, c)
}
