package blocks

import "github.com/google/uuid"

// newID is swapped in tests that need deterministic ids.
var newID = func() string {
	return uuid.New().String()
}

// Document is an immutable ordered list of blocks. Every mutation returns a
// new Document and leaves the receiver untouched. Mutations referencing an
// unknown id or an out of range index return the receiver unchanged.
type Document struct {
	blocks []Block
}

// NewDocument builds a document from blocks, in order. Blocks with an empty
// or already used id receive a fresh one so ids stay unique.
func NewDocument(blocks ...Block) Document {
	if len(blocks) == 0 {
		return Document{}
	}
	out := make([]Block, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if _, dup := seen[b.ID]; dup || b.ID == "" {
			b.ID = newID()
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return Document{blocks: out}
}

func (d Document) Len() int {
	return len(d.blocks)
}

func (d Document) IsEmpty() bool {
	return len(d.blocks) == 0
}

// Blocks returns a copy of the blocks in render order
func (d Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// At returns the block at index i
func (d Document) At(i int) (Block, bool) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, false
	}
	return d.blocks[i], true
}

// Find returns the block with the given id
func (d Document) Find(id string) (Block, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}
	return d.blocks[i], true
}

// IndexOf returns the position of id, or -1
func (d Document) IndexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the block ids in order
func (d Document) IDs() []string {
	ids := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		ids[i] = b.ID
	}
	return ids
}

// Append adds a new block of type t at the end and returns it so the caller
// can make it the active block. Unknown types leave the document unchanged
// and return a zero Block.
func (d Document) Append(t BlockType) (Document, Block) {
	if !t.IsValid() {
		return d, Block{}
	}
	b := NewBlock(t)
	for d.IndexOf(b.ID) >= 0 {
		b.ID = newID()
	}
	next := make([]Block, len(d.blocks), len(d.blocks)+1)
	copy(next, d.blocks)
	next = append(next, b)
	return Document{blocks: next}, b
}

// Remove deletes the block with the given id
func (d Document) Remove(id string) Document {
	i := d.IndexOf(id)
	if i < 0 {
		return d
	}
	next := make([]Block, 0, len(d.blocks)-1)
	next = append(next, d.blocks[:i]...)
	next = append(next, d.blocks[i+1:]...)
	return Document{blocks: next}
}

// Move swaps the block at index with its neighbour at index+direction.
// direction must be -1 or +1; there is no wraparound.
func (d Document) Move(index, direction int) Document {
	if direction != -1 && direction != 1 {
		return d
	}
	target := index + direction
	if index < 0 || index >= len(d.blocks) || target < 0 || target >= len(d.blocks) {
		return d
	}
	next := d.Blocks()
	next[index], next[target] = next[target], next[index]
	return Document{blocks: next}
}

// UpdateContent replaces the content of the block with the given id
func (d Document) UpdateContent(id, value string) Document {
	return d.update(id, func(b *Block) {
		b.Content = value
	})
}

// UpdateStyle shallow-merges partial into the styles of the block with the given id
func (d Document) UpdateStyle(id string, partial Styles) Document {
	return d.update(id, func(b *Block) {
		b.Styles = b.Styles.Merge(partial)
	})
}

func (d Document) update(id string, fn func(b *Block)) Document {
	i := d.IndexOf(id)
	if i < 0 {
		return d
	}
	next := d.Blocks()
	fn(&next[i])
	return Document{blocks: next}
}

// Equal compares two documents block by block
func (d Document) Equal(o Document) bool {
	if len(d.blocks) != len(o.blocks) {
		return false
	}
	for i := range d.blocks {
		if !d.blocks[i].Equal(o.blocks[i]) {
			return false
		}
	}
	return true
}
