package frames

import (
	"iter"
	"slices"

	"github.com/joshuapare/avikit/internal/format"
)

// Sequence is the ordered, editable list of frames of one file. It is not
// safe for concurrent mutation.
type Sequence struct {
	frames  []*Frame
	nextKey uint64
}

// New builds a sequence from frames, assigning fresh keys in order.
func New(frames ...Frame) *Sequence {
	s := &Sequence{frames: make([]*Frame, 0, len(frames))}
	for i := range frames {
		s.push(frames[i])
	}
	return s
}

func (s *Sequence) push(f Frame) *Frame {
	s.nextKey++
	f.key = s.nextKey
	p := &f
	s.frames = append(s.frames, p)
	return p
}

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.frames) }

// At returns the i-th frame.
func (s *Sequence) At(i int) *Frame { return s.frames[i] }

// Frames returns the frames in current order. The slice is a copy; the
// frames are not.
func (s *Sequence) Frames() []*Frame { return slices.Clone(s.frames) }

// All iterates frames with their positions. Each call starts over.
func (s *Sequence) All() iter.Seq2[int, *Frame] {
	return func(yield func(int, *Frame) bool) {
		for i, f := range s.frames {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Keyframes returns the compressed-video frames flagged KEYFRAME.
func (s *Sequence) Keyframes() []*Frame {
	var out []*Frame
	for _, f := range s.frames {
		if f.IsKeyframe() {
			out = append(out, f)
		}
	}
	return out
}

// Filter returns a new sequence holding the frames keep accepts. Keys are
// preserved.
func (s *Sequence) Filter(keep func(*Frame) bool) *Sequence {
	out := &Sequence{nextKey: s.nextKey}
	for _, f := range s.frames {
		if keep(f) {
			out.frames = append(out.frames, f)
		}
	}
	return out
}

// Delete removes every frame whose key equals f's and returns how many
// were removed.
func (s *Sequence) Delete(f *Frame) int {
	before := len(s.frames)
	key := f.Key()
	s.frames = slices.DeleteFunc(s.frames, func(g *Frame) bool { return g.key == key })
	return before - len(s.frames)
}

// Duplicate inserts a copy of f immediately before the first frame with its
// key. It reports false when f is not in the sequence.
func (s *Sequence) Duplicate(f *Frame) bool {
	i := slices.IndexFunc(s.frames, func(g *Frame) bool { return g.key == f.Key() })
	if i < 0 {
		return false
	}
	cp := *s.frames[i]
	s.frames = slices.Insert(s.frames, i, &cp)
	return true
}

// Counts returns the number of compressed-video ("dc") and audio ("wb")
// frames, the values patched into the header counters.
func (s *Sequence) Counts() (video, audio int) {
	for _, f := range s.frames {
		switch {
		case f.IsVideo():
			video++
		case f.IsAudio():
			audio++
		}
	}
	return video, audio
}

// IndexEntries projects the current order onto idx1 entries. Offsets are
// relative to the movi type tag, so the first frame sits at 4 and each
// following one 8 + WordAlign(size) bytes later.
func (s *Sequence) IndexEntries() []format.IndexEntry {
	out := make([]format.IndexEntry, len(s.frames))
	off := uint32(format.MoviFirstChunkOffset)
	for i, f := range s.frames {
		out[i] = format.IndexEntry{
			ID:     f.ID,
			Flags:  f.Flags.Bits(),
			Offset: off,
			Length: f.Size,
		}
		off += uint32(format.EncodedLen(int(f.Size)))
	}
	return out
}

// DataEntries projects the current order onto movi chunks and returns the
// total encoded length of those chunks.
func (s *Sequence) DataEntries() ([]DataEntry, int) {
	out := make([]DataEntry, len(s.frames))
	total := 0
	for i, f := range s.frames {
		out[i] = DataEntry{
			ID:   f.ID,
			Size: f.Size,
			Data: f.Data,
			Pad:  format.PadLen(int(f.Size)),
		}
		total += out[i].EncodedLen()
	}
	return out, total
}
