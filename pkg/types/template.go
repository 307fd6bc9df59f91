package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TemplatePage is a page blueprint carried by a template: the page fields
// minus identity, ready to be stamped onto a new store.
type TemplatePage struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Blocks Blocks `json:"blocks"`
	IsHome bool   `json:"isHome"`
}

// TemplatePages is the jsonb-persisted blueprint collection.
type TemplatePages []TemplatePage

// Value marshals the blueprints into JSON for Postgres.
func (p TemplatePages) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the blueprints.
func (p *TemplatePages) Scan(value interface{}) error {
	if value == nil {
		*p = TemplatePages{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("template pages: unsupported scan type %T", value)
	}

	result := TemplatePages{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}
