// Package testutil builds synthetic AVI files so tests across the module can
// exercise the parser, frame model and writer without binary fixtures.
package testutil

import (
	"github.com/joshuapare/avikit/internal/buf"
	"github.com/joshuapare/avikit/internal/format"
)

// Frame is one movi chunk together with its idx1 flags.
type Frame struct {
	ID    string
	Data  []byte
	Flags uint32
}

// AVIBuilder describes a well-formed file: one video stream, an optional
// audio stream, and a movi/idx1 pair that agrees entry by entry. Header
// counters are derived from Frames so the output is already consistent.
type AVIBuilder struct {
	Width, Height    uint32
	MicroSecPerFrame uint32
	VideoHandler     string

	Audio          bool
	AudioFormatTag uint16 // 0 selects PCM (1)
	AudioExtra     []byte // bytes appended after the 18-byte WAVEFORMATEX

	VideoProps bool   // add a vprp with two field descriptors
	StreamName string // add a strn to the video stream
	JunkSize   int    // add a JUNK chunk of this size before movi
	InfoSoft   string // add LIST INFO with an ISFT chunk

	Frames []Frame

	OmitIndex bool
	// EditIndex may mutate the generated idx1 entries before encoding.
	EditIndex func([]format.IndexEntry) []format.IndexEntry
}

// DefaultFrames returns a small interleaved sequence with odd and even sizes.
func DefaultFrames() []Frame {
	return []Frame{
		{ID: "00dc", Data: []byte{0x01, 0x02, 0x03, 0x04, 0x05}, Flags: 0x10},
		{ID: "01wb", Data: []byte{0xA0, 0xA1, 0xA2, 0xA3}, Flags: 0x10},
		{ID: "00dc", Data: []byte{0x06, 0x07, 0x08}, Flags: 0x00},
		{ID: "01wb", Data: []byte{0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6}, Flags: 0x10},
		{ID: "00dc", Data: []byte{0x09, 0x0A}, Flags: 0x10},
	}
}

// NewAVIBuilder returns a builder with a 320x240 video stream, an audio
// stream and DefaultFrames.
func NewAVIBuilder() *AVIBuilder {
	return &AVIBuilder{
		Width:            320,
		Height:           240,
		MicroSecPerFrame: 40000,
		VideoHandler:     "MJPG",
		Audio:            true,
		Frames:           DefaultFrames(),
	}
}

// Counts returns the number of compressed-video and audio frames.
func (b *AVIBuilder) Counts() (video, audio int) {
	for _, f := range b.Frames {
		switch format.ParseFourCC(f.ID).TwoCC() {
		case format.TwoCCCompressedVideo:
			video++
		case format.TwoCCAudio:
			audio++
		}
	}
	return video, audio
}

// Bytes encodes the file.
func (b *AVIBuilder) Bytes() []byte {
	video, audio := b.Counts()
	streams := uint32(1)
	if b.Audio {
		streams = 2
	}

	avih := &format.MainHeader{
		MicroSecPerFrame:    b.MicroSecPerFrame,
		MaxBytesPerSec:      25000,
		Flags:               format.HeaderHasIndex | format.HeaderIsInterleaved,
		TotalFrames:         uint32(video),
		Streams:             streams,
		SuggestedBufferSize: 4096,
		Width:               b.Width,
		Height:              b.Height,
	}

	hdrl := [][]byte{Chunk("avih", avih.AppendTo(nil)), b.videoStream(video)}
	if b.Audio {
		hdrl = append(hdrl, b.audioStream(audio))
	}

	var body [][]byte
	body = append(body, []byte("AVI "), List("hdrl", hdrl...))
	if b.InfoSoft != "" {
		body = append(body, List("INFO", Chunk("ISFT", append([]byte(b.InfoSoft), 0))))
	}
	if b.JunkSize > 0 {
		body = append(body, Chunk("JUNK", make([]byte, b.JunkSize)))
	}

	movi := make([][]byte, len(b.Frames))
	entries := make([]format.IndexEntry, len(b.Frames))
	offset := uint32(format.MoviFirstChunkOffset)
	for i, f := range b.Frames {
		movi[i] = Chunk(f.ID, f.Data)
		entries[i] = format.IndexEntry{
			ID:     format.ParseFourCC(f.ID),
			Flags:  f.Flags,
			Offset: offset,
			Length: uint32(len(f.Data)),
		}
		offset += uint32(len(movi[i]))
	}
	body = append(body, List("movi", movi...))

	if !b.OmitIndex {
		if b.EditIndex != nil {
			entries = b.EditIndex(entries)
		}
		body = append(body, Chunk("idx1", format.NewIndexTable(entries).AppendTo(nil)))
	}

	return RIFF(Concat(body...))
}

// RIFF wraps body, which must start with the form type, in the top-level node.
func RIFF(body []byte) []byte {
	return Node("RIFF", body)
}

func (b *AVIBuilder) videoStream(length int) []byte {
	strh := &format.StreamHeader{
		Type:                format.StreamVideo,
		Handler:             format.ParseFourCC(b.VideoHandler),
		Scale:               1,
		Rate:                25,
		Length:              uint32(length),
		SuggestedBufferSize: 4096,
		Quality:             0xFFFFFFFF,
		Frame:               format.Rect{Right: int16(b.Width), Bottom: int16(b.Height)},
	}
	strf := &format.BitmapInfoHeader{
		Size:        format.BitmapInfoHeaderSize,
		Width:       int32(b.Width),
		Height:      int32(b.Height),
		Planes:      1,
		BitCount:    24,
		Compression: format.ParseFourCC(b.VideoHandler),
		SizeImage:   b.Width * b.Height * 3,
	}
	children := [][]byte{Chunk("strh", strh.AppendTo(nil)), Chunk("strf", strf.AppendTo(nil))}
	if b.VideoProps {
		vprp := &format.VideoProperties{
			VideoStandard:       1,
			VerticalRefreshRate: 50,
			FrameAspectRatio:    0x00040003,
			FrameWidthInPixels:  b.Width,
			FrameHeightInLines:  b.Height,
			FieldInfo: []format.VideoFieldDesc{
				{CompressedBMHeight: b.Height / 2, CompressedBMWidth: b.Width, ValidBMHeight: b.Height / 2, ValidBMWidth: b.Width},
				{CompressedBMHeight: b.Height / 2, CompressedBMWidth: b.Width, ValidBMHeight: b.Height / 2, ValidBMWidth: b.Width, ValidBMYOffset: 1},
			},
		}
		children = append(children, Chunk("vprp", vprp.AppendTo(nil)))
	}
	if b.StreamName != "" {
		children = append(children, Chunk("strn", append([]byte(b.StreamName), 0)))
	}
	return List("strl", children...)
}

func (b *AVIBuilder) audioStream(length int) []byte {
	tag := b.AudioFormatTag
	if tag == 0 {
		tag = 1
	}
	strh := &format.StreamHeader{
		Type:       format.StreamAudio,
		Scale:      1,
		Rate:       44100,
		Length:     uint32(length),
		SampleSize: 4,
	}
	wfx := buf.AppendU16LE(nil, tag)
	wfx = buf.AppendU16LE(wfx, 2)
	wfx = buf.AppendU32LE(wfx, 44100)
	wfx = buf.AppendU32LE(wfx, 176400)
	wfx = buf.AppendU16LE(wfx, 4)
	wfx = buf.AppendU16LE(wfx, 16)
	wfx = buf.AppendU16LE(wfx, uint16(len(b.AudioExtra)))
	wfx = append(wfx, b.AudioExtra...)
	return List("strl", Chunk("strh", strh.AppendTo(nil)), Chunk("strf", wfx))
}

// Concat joins encoded nodes.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Node encodes a header, body and pad byte. Use it for RIFF and for chunks
// whose size must not match their body.
func Node(tag string, body []byte) []byte {
	out := format.AppendChunkHeader(nil, format.ParseFourCC(tag), uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// Chunk encodes a leaf chunk.
func Chunk(id string, payload []byte) []byte {
	return Node(id, payload)
}

// List encodes a LIST of the given type.
func List(typ string, children ...[]byte) []byte {
	return Node("LIST", Concat(append([][]byte{[]byte(typ)}, children...)...))
}
