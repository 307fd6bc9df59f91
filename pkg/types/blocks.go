package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/storeforge/backend/pkg/enums"
)

// BlockStyles keeps per-breakpoint style maps. Desktop is always present;
// tablet/mobile are optional overrides.
type BlockStyles struct {
	Desktop map[string]any `json:"desktop"`
	Tablet  map[string]any `json:"tablet,omitempty"`
	Mobile  map[string]any `json:"mobile,omitempty"`
}

// Block is a single content unit placed on a page. Props stay an open map
// because each variant carries its own schema on the wire and in storage.
type Block struct {
	ID     string          `json:"id"`
	Type   enums.BlockType `json:"type"`
	Props  map[string]any  `json:"props"`
	Styles BlockStyles     `json:"styles"`
	Order  int             `json:"order"`
}

// Clone returns a deep copy of the block. Props and styles are copied through
// JSON so nested maps and slices do not alias the source.
func (b Block) Clone() Block {
	out := Block{
		ID:    b.ID,
		Type:  b.Type,
		Order: b.Order,
	}
	out.Props = deepCopyMap(b.Props)
	out.Styles = BlockStyles{
		Desktop: deepCopyMap(b.Styles.Desktop),
		Tablet:  deepCopyMap(b.Styles.Tablet),
		Mobile:  deepCopyMap(b.Styles.Mobile),
	}
	return out
}

func deepCopyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	buf, err := json.Marshal(src)
	if err == nil {
		out := make(map[string]any, len(src))
		if err := json.Unmarshal(buf, &out); err == nil {
			return out
		}
	}
	// Props originate from JSON, so a failed round-trip means a programming
	// error upstream; a shallow copy still beats losing the props.
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Blocks is the ordered block sequence persisted as JSONB.
type Blocks []Block

// Value marshals the sequence into JSON for Postgres.
func (b Blocks) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the sequence.
func (b *Blocks) Scan(value interface{}) error {
	if value == nil {
		*b = Blocks{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("blocks: unsupported scan type %T", value)
	}

	result := Blocks{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*b = result
	return nil
}
