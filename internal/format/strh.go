package format

import "github.com/joshuapare/avikit/internal/buf"

// Rect is the strh rcFrame destination rectangle.
type Rect struct {
	Left, Top, Right, Bottom int16
}

// StreamHeader is the strh payload (AVISTREAMHEADER). Type is the value the
// parser threads to the following strf as the ambient stream type.
type StreamHeader struct {
	Type                FourCC
	Handler             FourCC
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Frame               Rect
	Extra               []byte
}

// DecodeStreamHeader decodes a strh payload.
func DecodeStreamHeader(b []byte) (*StreamHeader, error) {
	if err := need("strh", b, StreamHeaderSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	h := &StreamHeader{
		Type:                r.fourCC(),
		Handler:             r.fourCC(),
		Flags:               r.u32(),
		Priority:            r.u16(),
		Language:            r.u16(),
		InitialFrames:       r.u32(),
		Scale:               r.u32(),
		Rate:                r.u32(),
		Start:               r.u32(),
		Length:              r.u32(),
		SuggestedBufferSize: r.u32(),
		Quality:             r.u32(),
		SampleSize:          r.u32(),
	}
	h.Frame = Rect{Left: r.i16(), Top: r.i16(), Right: r.i16(), Bottom: r.i16()}
	h.Extra = r.rest()
	return h, nil
}

func (h *StreamHeader) Kind() Kind { return KindStreamHeader }
func (h *StreamHeader) Len() int   { return StreamHeaderSize + len(h.Extra) }

func (h *StreamHeader) AppendTo(b []byte) []byte {
	b = append(b, h.Type[:]...)
	b = append(b, h.Handler[:]...)
	b = buf.AppendU32LE(b, h.Flags)
	b = buf.AppendU16LE(b, h.Priority)
	b = buf.AppendU16LE(b, h.Language)
	for _, v := range []uint32{
		h.InitialFrames, h.Scale, h.Rate, h.Start, h.Length,
		h.SuggestedBufferSize, h.Quality, h.SampleSize,
	} {
		b = buf.AppendU32LE(b, v)
	}
	for _, v := range []int16{h.Frame.Left, h.Frame.Top, h.Frame.Right, h.Frame.Bottom} {
		b = buf.AppendU16LE(b, uint16(v))
	}
	return append(b, h.Extra...)
}
