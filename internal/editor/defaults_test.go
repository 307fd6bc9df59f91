package editor

import (
	"testing"

	"github.com/storeforge/backend/pkg/enums"
)

func TestEveryBlockTypeHasDefaults(t *testing.T) {
	for _, blockType := range enums.BlockTypes() {
		props := DefaultProps(blockType)
		if len(props) == 0 {
			t.Fatalf("block type %s has no defaults", blockType)
		}
	}
}

func TestDefaultPropsReturnsFreshMaps(t *testing.T) {
	first := DefaultProps(enums.BlockTypeHeader)
	first["logo"] = "mutated"

	second := DefaultProps(enums.BlockTypeHeader)
	if second["logo"] != "Shop Name" {
		t.Fatalf("defaults shared between calls: %v", second["logo"])
	}
}

func TestDefaultPropsUnknownType(t *testing.T) {
	if props := DefaultProps(enums.BlockType("bogus")); len(props) != 0 {
		t.Fatalf("expected empty props for unknown type, got %v", props)
	}
}
