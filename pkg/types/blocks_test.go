package types

import (
	"testing"

	"github.com/storeforge/backend/pkg/enums"
)

func TestBlocksRoundTrip(t *testing.T) {
	blocks := Blocks{
		{
			ID:    "b1",
			Type:  enums.BlockTypeHero,
			Props: map[string]any{"title": "Welcome", "buttons": []any{"shop", "browse"}},
			Styles: BlockStyles{
				Desktop: map[string]any{"padding": "32px"},
				Mobile:  map[string]any{"padding": "12px"},
			},
			Order: 0,
		},
		{
			ID:     "b2",
			Type:   enums.BlockTypeText,
			Props:  map[string]any{"content": "hello"},
			Styles: BlockStyles{Desktop: map[string]any{}},
			Order:  1,
		},
	}

	value, err := blocks.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded Blocks
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(decoded))
	}
	if decoded[0].Type != enums.BlockTypeHero {
		t.Fatalf("unexpected type %s", decoded[0].Type)
	}
	if decoded[0].Props["title"] != "Welcome" {
		t.Fatalf("props lost in round trip: %v", decoded[0].Props)
	}
	if decoded[1].Order != 1 {
		t.Fatalf("order lost in round trip: %d", decoded[1].Order)
	}
}

func TestBlocksScanNilYieldsEmpty(t *testing.T) {
	var blocks Blocks
	if err := blocks.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if blocks == nil || len(blocks) != 0 {
		t.Fatalf("expected empty sequence, got %v", blocks)
	}
}

func TestBlockCloneDoesNotAlias(t *testing.T) {
	src := Block{
		ID:    "b1",
		Type:  enums.BlockTypeFAQ,
		Props: map[string]any{"items": []any{map[string]any{"question": "q", "answer": "a"}}},
		Styles: BlockStyles{
			Desktop: map[string]any{"margin": "8px"},
		},
	}

	copy := src.Clone()
	copy.Props["items"].([]any)[0].(map[string]any)["question"] = "mutated"
	copy.Styles.Desktop["margin"] = "0"

	orig := src.Props["items"].([]any)[0].(map[string]any)
	if orig["question"] != "q" {
		t.Fatalf("clone aliased nested props: %v", orig)
	}
	if src.Styles.Desktop["margin"] != "8px" {
		t.Fatalf("clone aliased styles: %v", src.Styles.Desktop)
	}
}

func TestBlockCloneKeepsUnmarshalableProps(t *testing.T) {
	src := Block{
		ID:   "b1",
		Type: enums.BlockTypeText,
		// A channel never survives json.Marshal; the clone must still carry
		// every key instead of dropping the map.
		Props: map[string]any{"content": "hi", "bad": make(chan int)},
	}

	copy := src.Clone()
	if len(copy.Props) != 2 {
		t.Fatalf("expected shallow-copied props, got %v", copy.Props)
	}
	if copy.Props["content"] != "hi" {
		t.Fatalf("props lost on clone: %v", copy.Props)
	}
}
