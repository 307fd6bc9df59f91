package editor

import (
	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/enums"
	"github.com/storeforge/backend/pkg/types"
)

// Document is the working copy of one page's block sequence plus the editing
// state around it. Block order is kept dense (0..n-1) after every mutation.
type Document struct {
	blocks     types.Blocks
	selectedID string
	dirty      bool
}

// NewDocument starts with an empty block sequence.
func NewDocument() *Document {
	return &Document{blocks: types.Blocks{}}
}

// BlockPatch carries partial updates for UpdateBlock. Nil fields are ignored.
type BlockPatch struct {
	Type   *enums.BlockType
	Props  map[string]any
	Styles *types.BlockStyles
}

// Blocks returns a deep copy of the current sequence.
func (d *Document) Blocks() types.Blocks {
	out := make(types.Blocks, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.Clone()
	}
	return out
}

// Len reports the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// SelectedID returns the id of the selected block, or "" when nothing is selected.
func (d *Document) SelectedID() string {
	return d.selectedID
}

// IsDirty reports whether there are unsaved edits.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// MarkClean clears the dirty flag once the blocks have been persisted.
func (d *Document) MarkClean() {
	d.dirty = false
}

// Select marks the block as selected. An empty id clears the selection.
func (d *Document) Select(id string) {
	d.selectedID = id
}

// ClearSelection drops the selection without touching blocks.
func (d *Document) ClearSelection() {
	d.selectedID = ""
}

// AddBlock appends a block of the given type with variant defaults merged under
// the caller's overrides, selects it, and marks the document dirty.
func (d *Document) AddBlock(blockType enums.BlockType, overrides map[string]any) types.Block {
	props := DefaultProps(blockType)
	for key, value := range overrides {
		props[key] = value
	}

	block := types.Block{
		ID:    uuid.NewString(),
		Type:  blockType,
		Props: props,
		Styles: types.BlockStyles{
			Desktop: map[string]any{},
		},
		Order: len(d.blocks),
	}
	d.blocks = append(d.blocks, block)
	d.selectedID = block.ID
	d.dirty = true
	return block.Clone()
}

// UpdateBlock merges the patch into the identified block. Unknown ids are a
// silent no-op and do not dirty the document.
func (d *Document) UpdateBlock(id string, patch BlockPatch) {
	idx := d.indexOf(id)
	if idx == -1 {
		return
	}

	block := &d.blocks[idx]
	if patch.Type != nil {
		block.Type = *patch.Type
	}
	if patch.Props != nil {
		if block.Props == nil {
			block.Props = map[string]any{}
		}
		for key, value := range patch.Props {
			block.Props[key] = value
		}
	}
	if patch.Styles != nil {
		block.Styles = *patch.Styles
	}
	d.dirty = true
}

// DeleteBlock removes the block, renumbers the remainder densely, and clears
// the selection if it pointed at the removed block.
func (d *Document) DeleteBlock(id string) {
	idx := d.indexOf(id)
	if idx == -1 {
		return
	}

	d.blocks = append(d.blocks[:idx], d.blocks[idx+1:]...)
	d.renumber()
	if d.selectedID == id {
		d.selectedID = ""
	}
	d.dirty = true
}

// MoveBlock relocates activeID to the position currently held by overID and
// renumbers everything. No-op when either id is missing or they are equal.
func (d *Document) MoveBlock(activeID, overID string) {
	if activeID == overID {
		return
	}
	activeIdx := d.indexOf(activeID)
	overIdx := d.indexOf(overID)
	if activeIdx == -1 || overIdx == -1 {
		return
	}

	moved := d.blocks[activeIdx]
	d.blocks = append(d.blocks[:activeIdx], d.blocks[activeIdx+1:]...)

	rest := make(types.Blocks, 0, len(d.blocks)+1)
	rest = append(rest, d.blocks[:overIdx]...)
	rest = append(rest, moved)
	rest = append(rest, d.blocks[overIdx:]...)
	d.blocks = rest

	d.renumber()
	d.dirty = true
}

// DuplicateBlock deep-copies the block with a fresh id, inserts it right after
// the source, renumbers, and selects the copy.
func (d *Document) DuplicateBlock(id string) {
	idx := d.indexOf(id)
	if idx == -1 {
		return
	}

	copied := d.blocks[idx].Clone()
	copied.ID = uuid.NewString()

	out := make(types.Blocks, 0, len(d.blocks)+1)
	out = append(out, d.blocks[:idx+1]...)
	out = append(out, copied)
	out = append(out, d.blocks[idx+1:]...)
	d.blocks = out

	d.renumber()
	d.selectedID = copied.ID
	d.dirty = true
}

// SetBlocks replaces the whole sequence, renumbers it, and clears the dirty
// flag; used when loading a page from the backend.
func (d *Document) SetBlocks(blocks types.Blocks) {
	out := make(types.Blocks, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	d.blocks = out
	d.renumber()
	d.dirty = false
}

func (d *Document) indexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) renumber() {
	for i := range d.blocks {
		d.blocks[i].Order = i
	}
}
