// Package writer turns a tree back into bytes and hands them to a sink.
package writer

import (
	"errors"
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/pkg/ast"
)

// ErrSizeMismatch indicates a node whose declared size disagrees with what
// it encodes to. Trees from the parser and from edit.ReplaceFrames never
// trigger it.
var ErrSizeMismatch = errors.New("writer: declared size does not match content")

// Encode emits tree in file order. Records re-encode with the same field
// order and widths they decoded with, pad bytes keep the value they were
// read with (zero for new content), and the RIFF size is set to the total
// length minus 8.
func Encode(tree *ast.Tree) ([]byte, error) {
	var dst []byte
	if tree != nil && tree.Root != nil {
		dst = make([]byte, 0, tree.Root.EncodedLen())
	}
	return AppendTree(dst, tree)
}

// AppendTree is Encode appending to dst.
func AppendTree(dst []byte, tree *ast.Tree) ([]byte, error) {
	if tree == nil || tree.Root == nil {
		return nil, errors.New("writer: empty tree")
	}
	start := len(dst)
	dst, err := appendList(dst, tree.Root, true)
	if err != nil {
		return nil, err
	}
	buf.PutU32LE(dst, start+format.RIFFSizeOffset, uint32(len(dst)-start-format.ChunkHeaderSize))
	return dst, nil
}

func appendNode(dst []byte, n ast.Node) ([]byte, error) {
	switch v := n.(type) {
	case *ast.List:
		return appendList(dst, v, false)
	case *ast.Chunk:
		return appendChunk(dst, v)
	}
	return nil, fmt.Errorf("writer: unknown node %T", n)
}

func appendList(dst []byte, l *ast.List, root bool) ([]byte, error) {
	dst = format.AppendChunkHeader(dst, l.ID, l.Size)
	body := len(dst)
	dst = append(dst, l.Type[:]...)
	for _, ch := range l.Children {
		var err error
		if dst, err = appendNode(dst, ch); err != nil {
			return nil, err
		}
	}
	if n := len(dst) - body; !root && n != int(l.Size) {
		return nil, fmt.Errorf("LIST %s: size %d, children encode to %d: %w", l.Type, l.Size, n, ErrSizeMismatch)
	}
	return appendPad(dst, len(dst)-body, l.PadByte), nil
}

func appendChunk(dst []byte, c *ast.Chunk) ([]byte, error) {
	if c.Payload == nil {
		return nil, fmt.Errorf("chunk %s: no payload", c.ID)
	}
	if n := c.Payload.Len(); n != int(c.Size) {
		return nil, fmt.Errorf("chunk %s: size %d, payload encodes to %d: %w", c.ID, c.Size, n, ErrSizeMismatch)
	}
	dst = format.AppendChunkHeader(dst, c.ID, c.Size)
	dst = c.Payload.AppendTo(dst)
	return appendPad(dst, int(c.Size), c.PadByte), nil
}

func appendPad(dst []byte, n int, pad byte) []byte {
	if format.PadLen(n) == 1 {
		dst = append(dst, pad)
	}
	return dst
}
