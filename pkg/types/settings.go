package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Settings holds the tenant-level storefront configuration persisted as JSONB.
type Settings struct {
	Currency     string `json:"currency"`
	Language     string `json:"language"`
	Timezone     string `json:"timezone"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// DefaultSettings returns the settings applied to newly created stores.
func DefaultSettings() Settings {
	return Settings{
		Currency: "USD",
		Language: "en",
		Timezone: "UTC",
	}
}

// Value marshals the settings into JSON for Postgres.
func (s Settings) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the settings.
func (s *Settings) Scan(value interface{}) error {
	if value == nil {
		*s = Settings{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("settings: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, s)
}
