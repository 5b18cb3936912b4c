package format

import "github.com/joshuapare/avikit/internal/buf"

// HeaderFlags is MainAVIHeader.dwFlags.
type HeaderFlags uint32

const (
	HeaderHasIndex       HeaderFlags = 0x00000010
	HeaderMustUseIndex   HeaderFlags = 0x00000020
	HeaderIsInterleaved  HeaderFlags = 0x00000100
	HeaderTrustCKType    HeaderFlags = 0x00000800
	HeaderWasCaptureFile HeaderFlags = 0x00010000
	HeaderCopyrighted    HeaderFlags = 0x00020000
)

var headerFlagNames = []struct {
	flag HeaderFlags
	name string
}{
	{HeaderHasIndex, "AVIF_HASINDEX"},
	{HeaderMustUseIndex, "AVIF_MUSTUSEINDEX"},
	{HeaderIsInterleaved, "AVIF_ISINTERLEAVED"},
	{HeaderTrustCKType, "AVIF_TRUSTCKTYPE"},
	{HeaderWasCaptureFile, "AVIF_WASCAPTUREFILE"},
	{HeaderCopyrighted, "AVIF_COPYRIGHTED"},
}

// Has reports whether every bit of flag is set.
func (f HeaderFlags) Has(flag HeaderFlags) bool {
	return f&flag == flag
}

// Names lists the set flags in declaration order.
func (f HeaderFlags) Names() []string {
	var out []string
	for _, n := range headerFlagNames {
		if f.Has(n.flag) {
			out = append(out, n.name)
		}
	}
	return out
}

// MainHeader is the avih payload (MainAVIHeader):
//
//	Offset  Size  Field
//	0x00    4     MicroSecPerFrame
//	0x04    4     MaxBytesPerSec
//	0x08    4     PaddingGranularity
//	0x0C    4     Flags
//	0x10    4     TotalFrames
//	0x14    4     InitialFrames
//	0x18    4     Streams
//	0x1C    4     SuggestedBufferSize
//	0x20    4     Width
//	0x24    4     Height
//	0x28    16    Reserved
type MainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               HeaderFlags
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
	Reserved            [4]uint32
	Extra               []byte
}

// DecodeMainHeader decodes an avih payload.
func DecodeMainHeader(b []byte) (*MainHeader, error) {
	if err := need("avih", b, MainHeaderSize); err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	h := &MainHeader{
		MicroSecPerFrame:    r.u32(),
		MaxBytesPerSec:      r.u32(),
		PaddingGranularity:  r.u32(),
		Flags:               HeaderFlags(r.u32()),
		TotalFrames:         r.u32(),
		InitialFrames:       r.u32(),
		Streams:             r.u32(),
		SuggestedBufferSize: r.u32(),
		Width:               r.u32(),
		Height:              r.u32(),
	}
	for i := range h.Reserved {
		h.Reserved[i] = r.u32()
	}
	h.Extra = r.rest()
	return h, nil
}

func (h *MainHeader) Kind() Kind { return KindMainHeader }
func (h *MainHeader) Len() int   { return MainHeaderSize + len(h.Extra) }

func (h *MainHeader) AppendTo(b []byte) []byte {
	for _, v := range []uint32{
		h.MicroSecPerFrame, h.MaxBytesPerSec, h.PaddingGranularity, uint32(h.Flags),
		h.TotalFrames, h.InitialFrames, h.Streams, h.SuggestedBufferSize,
		h.Width, h.Height,
	} {
		b = buf.AppendU32LE(b, v)
	}
	for _, v := range h.Reserved {
		b = buf.AppendU32LE(b, v)
	}
	return append(b, h.Extra...)
}
