package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Theme holds the storefront look and feel persisted as JSONB on the store.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	FontFamily      string `json:"fontFamily"`
	BorderRadius    int    `json:"borderRadius"`
}

// DefaultTheme returns the palette applied to newly created stores.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:    "#3b82f6",
		SecondaryColor:  "#64748b",
		BackgroundColor: "#ffffff",
		TextColor:       "#1f2937",
		FontFamily:      "Inter, sans-serif",
		BorderRadius:    8,
	}
}

// Value marshals the theme into JSON for Postgres.
func (t Theme) Value() (driver.Value, error) {
	buf, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the theme.
func (t *Theme) Scan(value interface{}) error {
	if value == nil {
		*t = Theme{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("theme: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, t)
}
