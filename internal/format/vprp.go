package format

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
)

// VideoFieldDesc is one VIDEO_FIELD_DESC entry of a vprp chunk.
type VideoFieldDesc struct {
	CompressedBMHeight   uint32
	CompressedBMWidth    uint32
	ValidBMHeight        uint32
	ValidBMWidth         uint32
	ValidBMXOffset       uint32
	ValidBMYOffset       uint32
	VideoXOffsetInT      uint32
	VideoYValidStartLine uint32
}

// VideoProperties is the vprp payload (VideoPropHeader). The record is
// length-prefixed: FieldPerFrame, the last field of the 36-byte header,
// counts the FieldInfo entries that follow.
type VideoProperties struct {
	VideoFormatToken    uint32
	VideoStandard       uint32
	VerticalRefreshRate uint32
	HTotalInT           uint32
	VTotalInLines       uint32
	FrameAspectRatio    uint32
	FrameWidthInPixels  uint32
	FrameHeightInLines  uint32
	FieldPerFrame       uint32
	FieldInfo           []VideoFieldDesc
	Extra               []byte
}

// FieldPerFrameOf reads the vprp count ahead of decoding the record.
func FieldPerFrameOf(b []byte) (uint32, error) {
	if err := need("vprp", b, VideoPropHeaderSize); err != nil {
		return 0, err
	}
	return buf.U32LE(b[FieldPerFrameOffset:]), nil
}

// DecodeVideoProperties decodes a vprp payload in two phases: the fixed
// header first, then exactly FieldPerFrame trailing descriptors.
func DecodeVideoProperties(b []byte) (*VideoProperties, error) {
	count, err := FieldPerFrameOf(b)
	if err != nil {
		return nil, err
	}
	r := fieldReader{b: b}
	v := &VideoProperties{
		VideoFormatToken:    r.u32(),
		VideoStandard:       r.u32(),
		VerticalRefreshRate: r.u32(),
		HTotalInT:           r.u32(),
		VTotalInLines:       r.u32(),
		FrameAspectRatio:    r.u32(),
		FrameWidthInPixels:  r.u32(),
		FrameHeightInLines:  r.u32(),
		FieldPerFrame:       r.u32(),
	}

	// count comes from the file; bound it by the payload before allocating.
	if uint64(count) > uint64(len(b)-VideoPropHeaderSize)/VideoFieldDescSize {
		return nil, fmt.Errorf("vprp: %d field descriptors: %w (have %d bytes)",
			count, ErrTruncated, len(b)-VideoPropHeaderSize)
	}
	v.FieldInfo = make([]VideoFieldDesc, count)
	for i := range v.FieldInfo {
		v.FieldInfo[i] = VideoFieldDesc{
			CompressedBMHeight:   r.u32(),
			CompressedBMWidth:    r.u32(),
			ValidBMHeight:        r.u32(),
			ValidBMWidth:         r.u32(),
			ValidBMXOffset:       r.u32(),
			ValidBMYOffset:       r.u32(),
			VideoXOffsetInT:      r.u32(),
			VideoYValidStartLine: r.u32(),
		}
	}
	v.Extra = r.rest()
	return v, nil
}

func (v *VideoProperties) Kind() Kind { return KindVideoProperties }

func (v *VideoProperties) Len() int {
	return VideoPropHeaderSize + len(v.FieldInfo)*VideoFieldDescSize + len(v.Extra)
}

// AppendTo writes FieldPerFrame as len(FieldInfo) so the count can never
// disagree with the descriptors that follow it.
func (v *VideoProperties) AppendTo(b []byte) []byte {
	for _, x := range []uint32{
		v.VideoFormatToken, v.VideoStandard, v.VerticalRefreshRate, v.HTotalInT,
		v.VTotalInLines, v.FrameAspectRatio, v.FrameWidthInPixels, v.FrameHeightInLines,
		uint32(len(v.FieldInfo)),
	} {
		b = buf.AppendU32LE(b, x)
	}
	for _, d := range v.FieldInfo {
		for _, x := range []uint32{
			d.CompressedBMHeight, d.CompressedBMWidth, d.ValidBMHeight, d.ValidBMWidth,
			d.ValidBMXOffset, d.ValidBMYOffset, d.VideoXOffsetInT, d.VideoYValidStartLine,
		} {
			b = buf.AppendU32LE(b, x)
		}
	}
	return append(b, v.Extra...)
}
