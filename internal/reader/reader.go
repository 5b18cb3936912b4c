// Package reader decodes an in-memory AVI file into an *ast.Tree. It is the
// structure parser behind pkg/avi; callers outside the module go through that
// facade.
package reader

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/avikit/internal/buf"
	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

// MaxDepth bounds list nesting. Real files nest three levels deep
// (RIFF/hdrl/strl); anything past this is treated as corrupt.
const MaxDepth = 32

// Parse decodes data. Structural problems are collected rather than
// returned at the first one; if any were found Parse returns them as
// types.ParseErrors and no tree.
//
// Raw payloads in the tree alias data, so data must not be modified while
// the tree is in use.
func Parse(data []byte, logger *slog.Logger) (*ast.Tree, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &parser{data: data, log: logger}
	root := p.root()
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &ast.Tree{Root: root}, nil
}

type parser struct {
	data []byte
	log  *slog.Logger
	errs types.ParseErrors
}

func (p *parser) fail(off int, msg string, err error) {
	p.errs = append(p.errs, &types.Error{
		Kind:   types.ErrKindParse,
		Msg:    msg,
		Offset: off,
		Err:    err,
	})
}

func (p *parser) root() *ast.List {
	if err := format.CheckSignature(p.data); err != nil {
		p.fail(0, "riff header", err)
		return nil
	}
	h, _ := format.ReadChunkHeader(p.data, 0)
	if h.Size < format.ListTypeSize {
		p.fail(0, fmt.Sprintf("RIFF size %d", h.Size), format.ErrTruncated)
		return nil
	}
	end, err := buf.CheckRange(format.ChunkHeaderSize, int(h.Size), len(p.data))
	if err != nil {
		p.fail(0, fmt.Sprintf("RIFF size %d", h.Size), fmt.Errorf("%w: %v", format.ErrSizeOverrun, err))
		// Keep going over what is present so later problems are reported too.
		end = len(p.data)
	}

	root := &ast.List{ID: h.ID, Size: h.Size, Offset: 0}
	copy(root.Type[:], p.data[format.ChunkHeaderSize:format.ListHeaderSize])
	p.logList(root, 0)
	root.Children = p.children(format.ListHeaderSize, end, 1)
	if format.PadLen(int(h.Size)) == 1 {
		root.PadByte = p.padByte(end)
	}

	// The final pad byte may be missing; anything else is trailing garbage.
	tail := end + format.PadLen(int(h.Size))
	if tail < len(p.data) {
		p.fail(tail, fmt.Sprintf("%d bytes after RIFF", len(p.data)-tail), format.ErrTrailingData)
	}
	return root
}

// children decodes the nodes in [off, end). Every list starts with an empty
// stream context; a strh updates it for the siblings that follow, so the
// stream type never leaks out of its strl.
func (p *parser) children(off, end, depth int) []ast.Node {
	var (
		out []ast.Node
		ctx format.StreamContext
	)
	for off < end {
		h, err := format.ReadChunkHeader(p.data[:end], off)
		if err != nil {
			p.fail(off, "chunk header", err)
			return out
		}
		bodyStart := off + format.ChunkHeaderSize
		bodyEnd, err := buf.CheckRange(bodyStart, int(h.Size), end)
		if err != nil {
			p.fail(off, fmt.Sprintf("%s size %d", h.ID, h.Size), fmt.Errorf("%w: %v", format.ErrSizeOverrun, err))
			return out
		}

		var n ast.Node
		if h.IsList() {
			n = p.list(h, off, bodyEnd, depth)
		} else {
			n, ctx = p.chunk(h, off, ctx, depth)
		}
		if n != nil {
			out = append(out, n)
		}

		next := bodyEnd + format.PadLen(int(h.Size))
		if next > end {
			p.fail(off, fmt.Sprintf("%s pad byte", h.ID), format.ErrSizeOverrun)
			return out
		}
		if next > bodyEnd {
			setPadByte(n, p.data[bodyEnd])
		}
		off = next
	}
	return out
}

func (p *parser) list(h format.ChunkHeader, off, bodyEnd, depth int) ast.Node {
	if h.Size < format.ListTypeSize {
		p.fail(off, fmt.Sprintf("%s size %d", h.ID, h.Size), format.ErrTruncated)
		return nil
	}
	if depth > MaxDepth {
		p.fail(off, fmt.Sprintf("nesting deeper than %d", MaxDepth), format.ErrSizeOverrun)
		return nil
	}
	l := &ast.List{ID: h.ID, Size: h.Size, Offset: off}
	typeOff := off + format.ChunkHeaderSize
	copy(l.Type[:], p.data[typeOff:typeOff+format.ListTypeSize])
	p.logList(l, depth)
	l.Children = p.children(typeOff+format.ListTypeSize, bodyEnd, depth+1)
	return l
}

func (p *parser) chunk(h format.ChunkHeader, off int, ctx format.StreamContext, depth int) (ast.Node, format.StreamContext) {
	start := off + format.ChunkHeaderSize
	payload := p.data[start : start+int(h.Size)]

	rec, next, err := format.Decode(h.ID, ctx, payload)
	if err != nil {
		p.fail(off, "decode chunk", err)
		rec = format.Raw(payload)
	}
	c := &ast.Chunk{
		ID:      h.ID,
		Size:    h.Size,
		Payload: rec,
		Padding: format.PadLen(int(h.Size)),
		Offset:  off,
	}
	p.log.Debug("chunk",
		"depth", depth,
		"id", h.ID.String(),
		"record", rec.Kind().String(),
		"size", h.Size,
		"offset", off,
	)
	return c, next
}

func (p *parser) padByte(at int) byte {
	if at < len(p.data) {
		return p.data[at]
	}
	return 0
}

func setPadByte(n ast.Node, b byte) {
	switch v := n.(type) {
	case *ast.List:
		v.PadByte = b
	case *ast.Chunk:
		v.PadByte = b
	}
}

func (p *parser) logList(l *ast.List, depth int) {
	p.log.Debug("list",
		"depth", depth,
		"id", l.ID.String(),
		"type", l.Type.String(),
		"size", l.Size,
		"offset", l.Offset,
	)
}
