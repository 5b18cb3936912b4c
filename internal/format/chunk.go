package format

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
)

// ChunkHeader is the 8-byte prefix shared by chunks and lists:
//
//	Offset  Size  Field
//	0x00    4     FourCC ("LIST", "RIFF" or a chunk id)
//	0x04    4     Size of the body, excluding this header and any pad byte
type ChunkHeader struct {
	ID   FourCC
	Size uint32
}

// IsList reports whether the header opens a node with children.
func (h ChunkHeader) IsList() bool {
	return h.ID.Equal(ListSignature) || h.ID.Equal(RIFFSignature)
}

// ReadChunkHeader decodes the header at off.
func ReadChunkHeader(b []byte, off int) (ChunkHeader, error) {
	head, ok := buf.Slice(b, off, ChunkHeaderSize)
	if !ok {
		return ChunkHeader{}, fmt.Errorf("chunk header at %d: %w", off, ErrTruncated)
	}
	var h ChunkHeader
	copy(h.ID[:], head[:4])
	h.Size = buf.U32LE(head[4:])
	return h, nil
}

// AppendChunkHeader appends id and size.
func AppendChunkHeader(b []byte, id FourCC, size uint32) []byte {
	b = append(b, id[:]...)
	return buf.AppendU32LE(b, size)
}

// CheckSignature validates the RIFF/AVI preamble.
func CheckSignature(b []byte) error {
	if len(b) < ListHeaderSize {
		return fmt.Errorf("riff header: %w", ErrTruncated)
	}
	var id, form FourCC
	copy(id[:], b[:4])
	copy(form[:], b[8:12])
	if id != RIFFSignature {
		return fmt.Errorf("riff header %q: %w", id.String(), ErrSignatureMismatch)
	}
	if form != AVIForm {
		return fmt.Errorf("riff form %q: %w", form.String(), ErrSignatureMismatch)
	}
	return nil
}
