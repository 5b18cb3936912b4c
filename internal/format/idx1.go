package format

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
)

// IndexEntry is one AVIINDEXENTRY of idx1:
//
//	Offset  Size  Field
//	0x00    4     ckid
//	0x04    4     dwFlags
//	0x08    4     dwChunkOffset (relative to the movi list-type tag)
//	0x0C    4     dwChunkLength
type IndexEntry struct {
	ID     FourCC
	Flags  uint32
	Offset uint32
	Length uint32
}

// IndexTable is the idx1 payload. Its length is entirely determined by the
// entry count, so edits build a new table instead of patching the old one.
type IndexTable struct {
	Entries []IndexEntry
}

// NewIndexTable returns the idx1 layout for entries.
func NewIndexTable(entries []IndexEntry) *IndexTable {
	return &IndexTable{Entries: entries}
}

// IndexEntryCount derives the entry count from a declared idx1 size.
func IndexEntryCount(size uint32) (int, error) {
	if size%IndexEntrySize != 0 {
		return 0, fmt.Errorf("idx1 size %d: %w", size, ErrBadIndexSize)
	}
	return int(size / IndexEntrySize), nil
}

// DecodeIndexTable decodes an idx1 payload.
func DecodeIndexTable(b []byte) (*IndexTable, error) {
	n, err := IndexEntryCount(uint32(len(b)))
	if err != nil {
		return nil, err
	}
	t := &IndexTable{Entries: make([]IndexEntry, n)}
	r := fieldReader{b: b}
	for i := range t.Entries {
		t.Entries[i] = IndexEntry{
			ID:     r.fourCC(),
			Flags:  r.u32(),
			Offset: r.u32(),
			Length: r.u32(),
		}
	}
	return t, nil
}

func (t *IndexTable) Kind() Kind { return KindIndex }
func (t *IndexTable) Len() int   { return len(t.Entries) * IndexEntrySize }

func (t *IndexTable) AppendTo(b []byte) []byte {
	for _, e := range t.Entries {
		b = append(b, e.ID[:]...)
		b = buf.AppendU32LE(b, e.Flags)
		b = buf.AppendU32LE(b, e.Offset)
		b = buf.AppendU32LE(b, e.Length)
	}
	return b
}
