package format

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
)

// Kind names a record layout chosen by Select.
type Kind int

const (
	KindRaw Kind = iota
	KindMainHeader
	KindStreamHeader
	KindBitmapInfoHeader
	KindWaveFormat
	KindWaveFormatExtensible
	KindMPEG1WaveFormat
	KindMPEGLayer3WaveFormat
	KindVideoProperties
	KindIndex
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindMainHeader:
		return "MainAVIHeader"
	case KindStreamHeader:
		return "AVIStreamHeader"
	case KindBitmapInfoHeader:
		return "BITMAPINFOHEADER"
	case KindWaveFormat:
		return "WAVEFORMAT"
	case KindWaveFormatExtensible:
		return "WAVEFORMATEXTENSIBLE"
	case KindMPEG1WaveFormat:
		return "MPEG1WAVEFORMAT"
	case KindMPEGLayer3WaveFormat:
		return "MPEGLAYER3WAVEFORMAT"
	case KindVideoProperties:
		return "VideoPropHeader"
	case KindIndex:
		return "AVIINDEXENTRY[]"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Record is a decoded chunk payload. AppendTo is the exact mirror of the
// decoder: same field order, same widths, and Len() bytes appended.
type Record interface {
	Kind() Kind
	Len() int
	AppendTo(b []byte) []byte
}

// Raw is an opaque payload stored verbatim.
type Raw []byte

func (r Raw) Kind() Kind               { return KindRaw }
func (r Raw) Len() int                 { return len(r) }
func (r Raw) AppendTo(b []byte) []byte { return append(b, r...) }

// fieldReader walks a payload whose length was validated up front.
type fieldReader struct {
	b   []byte
	off int
}

func (r *fieldReader) u16() uint16 {
	v := buf.U16LE(r.b[r.off:])
	r.off += 2
	return v
}

func (r *fieldReader) i16() int16 {
	return int16(r.u16())
}

func (r *fieldReader) u32() uint32 {
	v := buf.U32LE(r.b[r.off:])
	r.off += 4
	return v
}

func (r *fieldReader) i32() int32 {
	return int32(r.u32())
}

func (r *fieldReader) fourCC() FourCC {
	var f FourCC
	copy(f[:], r.b[r.off:r.off+4])
	r.off += 4
	return f
}

// rest returns a copy of whatever follows the fixed layout, or nil.
func (r *fieldReader) rest() []byte {
	if r.off >= len(r.b) {
		return nil
	}
	return append([]byte(nil), r.b[r.off:]...)
}

func need(what string, b []byte, n int) error {
	if len(b) < n {
		return fmt.Errorf("%s: %w (have %d, need %d)", what, ErrTruncated, len(b), n)
	}
	return nil
}
