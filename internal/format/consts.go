// Package format houses the low-level codecs for the AVI flavour of RIFF.
// It knows the byte layout of every record the parser understands, and the
// rules for choosing one (Select), but nothing about trees or frames, so the
// higher-level packages can orchestrate the data in a more ergonomic form.
package format

import "strings"

// FourCC is a four-character ASCII code identifying a chunk or list kind.
type FourCC [4]byte

// ParseFourCC converts s to a FourCC. Short strings are padded with spaces,
// long strings are truncated.
func ParseFourCC(s string) FourCC {
	f := FourCC{' ', ' ', ' ', ' '}
	copy(f[:], s)
	return f
}

// String returns the code as a 4-byte string.
func (f FourCC) String() string {
	return string(f[:])
}

// Lower returns the code with ASCII letters lower-cased. Chunk dispatch is
// case-insensitive.
func (f FourCC) Lower() FourCC {
	for i, c := range f {
		if c >= 'A' && c <= 'Z' {
			f[i] = c + ('a' - 'A')
		}
	}
	return f
}

// Equal reports whether f and g name the same code, ignoring ASCII case.
func (f FourCC) Equal(g FourCC) bool {
	return f.Lower() == g.Lower()
}

// TwoCC returns the lower-cased two-character suffix of a stream chunk id,
// e.g. "dc" for "00dc".
func (f FourCC) TwoCC() string {
	return strings.ToLower(string(f[2:]))
}

var (
	// RIFFSignature opens every AVI file.
	RIFFSignature = FourCC{'R', 'I', 'F', 'F'}
	// AVIForm is the RIFF form type of an AVI file.
	AVIForm = FourCC{'A', 'V', 'I', ' '}
	// ListSignature tags nodes that carry children.
	ListSignature = FourCC{'L', 'I', 'S', 'T'}

	// List types.
	ListHeader = FourCC{'h', 'd', 'r', 'l'}
	ListStream = FourCC{'s', 't', 'r', 'l'}
	ListMovi   = FourCC{'m', 'o', 'v', 'i'}
	ListInfo   = FourCC{'I', 'N', 'F', 'O'}

	// Chunk ids with a typed layout.
	ChunkMainHeader   = FourCC{'a', 'v', 'i', 'h'}
	ChunkStreamHeader = FourCC{'s', 't', 'r', 'h'}
	ChunkStreamFormat = FourCC{'s', 't', 'r', 'f'}
	ChunkVideoProps   = FourCC{'v', 'p', 'r', 'p'}
	ChunkIndex        = FourCC{'i', 'd', 'x', '1'}

	// Chunk ids stored as opaque bytes but recognised for reporting.
	ChunkStreamName = FourCC{'s', 't', 'r', 'n'}
	ChunkJunk       = FourCC{'J', 'U', 'N', 'K'}

	// Stream types carried in strh.fccType.
	StreamVideo = FourCC{'v', 'i', 'd', 's'}
	StreamAudio = FourCC{'a', 'u', 'd', 's'}
	StreamText  = FourCC{'t', 'x', 't', 's'}
)

// Two-character suffixes of movi chunk ids.
const (
	TwoCCCompressedVideo   = "dc"
	TwoCCUncompressedVideo = "db"
	TwoCCAudio             = "wb"
)

const (
	// ChunkHeaderSize covers the FourCC and the little-endian size field.
	ChunkHeaderSize = 8
	// ListTypeSize is the list-type FourCC counted inside a list's size.
	ListTypeSize = 4
	// ListHeaderSize is the full header of a LIST or RIFF node.
	ListHeaderSize = ChunkHeaderSize + ListTypeSize
	// RIFFSizeOffset locates the top-level size field patched on write.
	RIFFSizeOffset = 4

	// Fixed record widths (payload bytes, excluding the chunk header).
	MainHeaderSize           = 56
	StreamHeaderSize         = 56
	BitmapInfoHeaderSize     = 40
	WaveFormatSize           = 16
	WaveFormatExSize         = 18
	MPEGLayer3WaveFormatSize = 30
	MPEG1WaveFormatSize      = 40
	WaveFormatExtensibleSize = 40
	VideoPropHeaderSize      = 36
	VideoFieldDescSize       = 32
	IndexEntrySize           = 16

	// FormatTagOffset is where strf/auds keeps wFormatTag.
	FormatTagOffset = 0
	// FieldPerFrameOffset is where vprp keeps the count of trailing
	// VIDEO_FIELD_DESC records.
	FieldPerFrameOffset = 32
	// StreamTypeOffset is where strh keeps fccType.
	StreamTypeOffset = 0
	// MoviFirstChunkOffset is idx1's offset of the first movi child. Offsets
	// are relative to the movi list-type tag, which sits at 0.
	MoviFirstChunkOffset = 4
)

// Audio format tags that select a strf layout.
const (
	WaveFormatTagExtensible = 0xFFFE
	WaveFormatTagMPEG       = 0x0050
	WaveFormatTagMPEGLayer3 = 0x0055
)
