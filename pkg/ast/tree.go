package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/avikit/internal/format"
)

// PathSeparator separates components in Find paths.
const PathSeparator = "/"

// Node is either a *List or a *Chunk.
type Node interface {
	// Tag returns the leading FourCC: "RIFF", "LIST" or the chunk id.
	Tag() format.FourCC
	// DeclaredSize returns the size field as stored on the wire.
	DeclaredSize() uint32
	// EncodedLen returns header, body and pad byte length.
	EncodedLen() int

	node()
}

// List is a RIFF or LIST node. Size counts the 4-byte Type and all encoded
// children.
type List struct {
	ID       format.FourCC
	Size     uint32
	Type     format.FourCC
	Children []Node
	PadByte  byte // value written after an odd-sized body
	Offset   int  // position of the header in the parsed input
}

// Chunk is a leaf node. Size excludes the header and the pad byte.
type Chunk struct {
	ID      format.FourCC
	Size    uint32
	Payload format.Record
	Padding int  // 0 or 1
	PadByte byte // value of the pad byte, when Padding is 1
	Offset  int  // position of the header in the parsed input
}

func (l *List) Tag() format.FourCC   { return l.ID }
func (l *List) DeclaredSize() uint32 { return l.Size }
func (l *List) EncodedLen() int      { return format.EncodedLen(int(l.Size)) }
func (l *List) node()                {}

func (c *Chunk) Tag() format.FourCC   { return c.ID }
func (c *Chunk) DeclaredSize() uint32 { return c.Size }
func (c *Chunk) EncodedLen() int      { return format.EncodedLen(int(c.Size)) }
func (c *Chunk) node()                {}

// NewChunk builds a chunk whose size and padding follow rec.
func NewChunk(id format.FourCC, rec format.Record) *Chunk {
	c := &Chunk{ID: id}
	c.SetPayload(rec)
	return c
}

// SetPayload replaces the chunk's layout and recomputes Size and Padding.
// The pad byte of new content is zero.
func (c *Chunk) SetPayload(rec format.Record) {
	c.Payload = rec
	c.Size = uint32(rec.Len())
	c.Padding = format.PadLen(rec.Len())
	c.PadByte = 0
}

// SetChildren replaces the list body and recomputes Size as the list type
// plus the encoded length of every child.
func (l *List) SetChildren(children []Node) {
	l.Children = children
	size := format.ListTypeSize
	for _, ch := range children {
		size += ch.EncodedLen()
	}
	l.Size = uint32(size)
}

// ChildList returns the first child LIST with the given type.
func (l *List) ChildList(typ format.FourCC) *List {
	for _, ch := range l.Children {
		if sub, ok := ch.(*List); ok && sub.Type.Equal(typ) {
			return sub
		}
	}
	return nil
}

// ChildChunk returns the first child chunk with the given id.
func (l *List) ChildChunk(id format.FourCC) *Chunk {
	for _, ch := range l.Children {
		if c, ok := ch.(*Chunk); ok && c.ID.Equal(id) {
			return c
		}
	}
	return nil
}

// Tree represents a complete parsed AVI file.
type Tree struct {
	Root *List
}

// Header returns the LIST hdrl, or nil.
func (t *Tree) Header() *List {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.ChildList(format.ListHeader)
}

// MainHeader returns the decoded avih record, or nil.
func (t *Tree) MainHeader() *format.MainHeader {
	hdrl := t.Header()
	if hdrl == nil {
		return nil
	}
	c := hdrl.ChildChunk(format.ChunkMainHeader)
	if c == nil {
		return nil
	}
	h, _ := c.Payload.(*format.MainHeader)
	return h
}

// Streams returns the strl lists in file order.
func (t *Tree) Streams() []*List {
	hdrl := t.Header()
	if hdrl == nil {
		return nil
	}
	var out []*List
	for _, ch := range hdrl.Children {
		if l, ok := ch.(*List); ok && l.Type.Equal(format.ListStream) {
			out = append(out, l)
		}
	}
	return out
}

// StreamHeader returns the decoded strh of a strl list, or nil.
func StreamHeader(strl *List) *format.StreamHeader {
	if strl == nil {
		return nil
	}
	c := strl.ChildChunk(format.ChunkStreamHeader)
	if c == nil {
		return nil
	}
	h, _ := c.Payload.(*format.StreamHeader)
	return h
}

// FirstStreamOfType returns the strh of the first stream whose fccType is
// typ, or nil.
func (t *Tree) FirstStreamOfType(typ format.FourCC) *format.StreamHeader {
	for _, strl := range t.Streams() {
		if h := StreamHeader(strl); h != nil && h.Type == typ {
			return h
		}
	}
	return nil
}

// Movi returns the LIST movi, or nil.
func (t *Tree) Movi() *List {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.ChildList(format.ListMovi)
}

// Index returns the idx1 chunk, or nil.
func (t *Tree) Index() *Chunk {
	if t == nil || t.Root == nil {
		return nil
	}
	return t.Root.ChildChunk(format.ChunkIndex)
}

// WalkFunc is called for every node in depth-first order. path holds the
// Find-style path of the node.
type WalkFunc func(n Node, depth int, path string) error

// Walk visits the root and all descendants.
func (t *Tree) Walk(fn WalkFunc) error {
	if t == nil || t.Root == nil {
		return nil
	}
	if err := fn(t.Root, 0, ""); err != nil {
		return err
	}
	return walkChildren(t.Root, 1, "", fn)
}

func walkChildren(l *List, depth int, prefix string, fn WalkFunc) error {
	seen := make(map[string]int, len(l.Children))
	for _, ch := range l.Children {
		name := segmentName(ch)
		path := fmt.Sprintf("%s[%d]", name, seen[name])
		seen[name]++
		if prefix != "" {
			path = prefix + PathSeparator + path
		}
		if err := fn(ch, depth, path); err != nil {
			return err
		}
		if sub, ok := ch.(*List); ok {
			if err := walkChildren(sub, depth+1, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// segmentName is the path component for n: the list type for lists, the id
// for chunks, trimmed of trailing spaces.
func segmentName(n Node) string {
	switch v := n.(type) {
	case *List:
		return strings.TrimRight(v.Type.String(), " ")
	case *Chunk:
		return strings.TrimRight(v.ID.String(), " ")
	}
	return ""
}

// Find resolves a slash-separated path below the root. Each component names
// a list type or chunk id, optionally followed by [n] to select the n-th
// (0-based) sibling of that name. Matching ignores ASCII case.
//
//	tree.Find("hdrl/avih")
//	tree.Find("hdrl/strl[1]/strf")
func (t *Tree) Find(path string) (Node, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("find %q: empty tree", path)
	}
	if path == "" {
		return t.Root, nil
	}
	var cur Node = t.Root
	for _, seg := range strings.Split(path, PathSeparator) {
		l, ok := cur.(*List)
		if !ok {
			return nil, fmt.Errorf("find %q: %s is not a list", path, segmentName(cur))
		}
		name, idx, err := parseSegment(seg)
		if err != nil {
			return nil, fmt.Errorf("find %q: %w", path, err)
		}
		next := nthChild(l, name, idx)
		if next == nil {
			return nil, fmt.Errorf("find %q: no %s", path, seg)
		}
		cur = next
	}
	return cur, nil
}

func parseSegment(seg string) (string, int, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, 0, nil
	}
	if !strings.HasSuffix(seg, "]") {
		return "", 0, fmt.Errorf("malformed component %q", seg)
	}
	idx, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || idx < 0 {
		return "", 0, fmt.Errorf("malformed index in %q", seg)
	}
	return seg[:open], idx, nil
}

func nthChild(l *List, name string, idx int) Node {
	for _, ch := range l.Children {
		if !strings.EqualFold(segmentName(ch), name) {
			continue
		}
		if idx == 0 {
			return ch
		}
		idx--
	}
	return nil
}
