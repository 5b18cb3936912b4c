// Package frames pairs the movi chunks of a parsed file with their idx1
// entries and offers the edit operations applied before re-serializing.
package frames

import (
	"github.com/joshuapare/avikit/internal/format"
)

// Frame is one media chunk. Data is opaque codec payload and is shared, not
// copied, between a frame and its duplicates.
type Frame struct {
	ID    format.FourCC
	Size  uint32
	Data  []byte
	Flags IndexFlags

	key uint64
}

// Key identifies the frame for Delete and Duplicate. It is a sequence number
// assigned when the frame enters a Sequence and does not change when other
// frames are inserted or removed. A duplicate carries its source's key.
func (f *Frame) Key() uint64 { return f.key }

// Kind returns the lower-cased two-character chunk suffix ("dc", "wb", ...).
func (f *Frame) Kind() string { return f.ID.TwoCC() }

// IsVideo reports a compressed-video chunk (suffix "dc").
func (f *Frame) IsVideo() bool { return f.Kind() == format.TwoCCCompressedVideo }

// IsAudio reports an audio chunk (suffix "wb").
func (f *Frame) IsAudio() bool { return f.Kind() == format.TwoCCAudio }

// IsKeyframe reports a compressed-video chunk flagged KEYFRAME. Uncompressed
// video ("db") and audio are never keyframes here.
func (f *Frame) IsKeyframe() bool { return f.Flags.Keyframe && f.IsVideo() }

// DataEntry is the chunk a frame encodes to inside movi.
type DataEntry struct {
	ID   format.FourCC
	Size uint32
	Data []byte
	Pad  int
}

// EncodedLen is header, data and pad byte.
func (d DataEntry) EncodedLen() int {
	return format.ChunkHeaderSize + len(d.Data) + d.Pad
}
