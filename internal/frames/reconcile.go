package frames

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

// FromTree pairs movi children with idx1 entries by position. The first
// pair whose id or length differ fails the whole construction with an
// ErrKindReconcile error carrying that position. A missing movi or idx1
// counts as an empty one, so a file with only one of them fails at 0.
func FromTree(tree *ast.Tree) (*Sequence, error) {
	var children []ast.Node
	if movi := tree.Movi(); movi != nil {
		children = movi.Children
	}
	var entries []format.IndexEntry
	if idx := tree.Index(); idx != nil {
		table, ok := idx.Payload.(*format.IndexTable)
		if !ok {
			return nil, mismatch(0, fmt.Errorf("idx1 payload is %s", idx.Payload.Kind()))
		}
		entries = table.Entries
	}

	s := &Sequence{frames: make([]*Frame, 0, len(entries))}
	for i := range max(len(children), len(entries)) {
		if i >= len(children) {
			return nil, mismatch(i, fmt.Errorf("idx1 has %d entries, movi has %d chunks", len(entries), len(children)))
		}
		if i >= len(entries) {
			return nil, mismatch(i, fmt.Errorf("movi has %d chunks, idx1 has %d entries", len(children), len(entries)))
		}
		c, ok := children[i].(*ast.Chunk)
		if !ok {
			return nil, mismatch(i, fmt.Errorf("movi child is a LIST %s", children[i].(*ast.List).Type))
		}
		e := entries[i]
		if c.ID != e.ID {
			return nil, mismatch(i, fmt.Errorf("chunk %s, index %s", c.ID, e.ID))
		}
		if c.Size != e.Length {
			return nil, mismatch(i, fmt.Errorf("%s chunk size %d, index length %d", c.ID, c.Size, e.Length))
		}
		s.push(Frame{
			ID:    c.ID,
			Size:  c.Size,
			Data:  payloadBytes(c.Payload),
			Flags: DecodeFlags(e.Flags),
		})
	}
	return s, nil
}

func mismatch(i int, err error) error {
	return &types.Error{
		Kind:  types.ErrKindReconcile,
		Msg:   types.ErrReconcile.Msg,
		Index: i,
		Err:   err,
	}
}

func payloadBytes(rec format.Record) []byte {
	if raw, ok := rec.(format.Raw); ok {
		return raw
	}
	return rec.AppendTo(nil)
}
