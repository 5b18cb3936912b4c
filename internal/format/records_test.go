package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestRecordsReencodeExactly(t *testing.T) {
	vprp := pattern(VideoPropHeaderSize + 2*VideoFieldDescSize + 4)
	binary.LittleEndian.PutUint32(vprp[FieldPerFrameOffset:], 2)

	tests := []struct {
		name    string
		decode  func([]byte) (Record, error)
		payload []byte
		kind    Kind
	}{
		{"main header", func(b []byte) (Record, error) { return DecodeMainHeader(b) }, pattern(MainHeaderSize), KindMainHeader},
		{"main header with tail", func(b []byte) (Record, error) { return DecodeMainHeader(b) }, pattern(MainHeaderSize + 3), KindMainHeader},
		{"stream header", func(b []byte) (Record, error) { return DecodeStreamHeader(b) }, pattern(StreamHeaderSize), KindStreamHeader},
		{"bitmap info with palette", func(b []byte) (Record, error) { return DecodeBitmapInfoHeader(b) }, pattern(BitmapInfoHeaderSize + 8), KindBitmapInfoHeader},
		{"wave format", func(b []byte) (Record, error) { return DecodeWaveFormat(b) }, pattern(WaveFormatExSize), KindWaveFormat},
		{"extensible", func(b []byte) (Record, error) { return DecodeWaveFormatExtensible(b) }, pattern(WaveFormatExtensibleSize), KindWaveFormatExtensible},
		{"mpeg1", func(b []byte) (Record, error) { return DecodeMPEG1WaveFormat(b) }, pattern(MPEG1WaveFormatSize), KindMPEG1WaveFormat},
		{"mp3", func(b []byte) (Record, error) { return DecodeMPEGLayer3WaveFormat(b) }, pattern(MPEGLayer3WaveFormatSize), KindMPEGLayer3WaveFormat},
		{"vprp", func(b []byte) (Record, error) { return DecodeVideoProperties(b) }, vprp, KindVideoProperties},
		{"idx1", func(b []byte) (Record, error) { return DecodeIndexTable(b) }, pattern(3 * IndexEntrySize), KindIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := tt.decode(tt.payload)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rec.Kind() != tt.kind {
				t.Fatalf("Kind = %v, want %v", rec.Kind(), tt.kind)
			}
			if rec.Len() != len(tt.payload) {
				t.Fatalf("Len = %d, want %d", rec.Len(), len(tt.payload))
			}
			if got := rec.AppendTo(nil); !bytes.Equal(got, tt.payload) {
				t.Fatalf("re-encode mismatch:\n got % x\nwant % x", got, tt.payload)
			}
		})
	}
}

func TestMainHeaderFields(t *testing.T) {
	b := make([]byte, MainHeaderSize)
	binary.LittleEndian.PutUint32(b[0x00:], 40000)
	binary.LittleEndian.PutUint32(b[0x0C:], uint32(HeaderHasIndex|HeaderIsInterleaved))
	binary.LittleEndian.PutUint32(b[0x10:], 250)
	binary.LittleEndian.PutUint32(b[0x18:], 2)
	binary.LittleEndian.PutUint32(b[0x20:], 320)
	binary.LittleEndian.PutUint32(b[0x24:], 240)

	h, err := DecodeMainHeader(b)
	if err != nil {
		t.Fatalf("DecodeMainHeader: %v", err)
	}
	if h.MicroSecPerFrame != 40000 || h.TotalFrames != 250 || h.Streams != 2 || h.Width != 320 || h.Height != 240 {
		t.Fatalf("unexpected header: %+v", h)
	}
	names := h.Flags.Names()
	if len(names) != 2 || names[0] != "AVIF_HASINDEX" || names[1] != "AVIF_ISINTERLEAVED" {
		t.Fatalf("flag names = %v", names)
	}
	if h.Flags.Has(HeaderMustUseIndex) {
		t.Fatalf("MUSTUSEINDEX should not be set")
	}
}

func TestVideoPropertiesTwoPhase(t *testing.T) {
	b := make([]byte, VideoPropHeaderSize+VideoFieldDescSize)
	binary.LittleEndian.PutUint32(b[24:], 720) // FrameWidthInPixels
	binary.LittleEndian.PutUint32(b[FieldPerFrameOffset:], 1)
	binary.LittleEndian.PutUint32(b[VideoPropHeaderSize:], 288) // CompressedBMHeight

	n, err := FieldPerFrameOf(b)
	if err != nil || n != 1 {
		t.Fatalf("FieldPerFrameOf = %d, %v", n, err)
	}
	v, err := DecodeVideoProperties(b)
	if err != nil {
		t.Fatalf("DecodeVideoProperties: %v", err)
	}
	if v.FrameWidthInPixels != 720 || v.FieldPerFrame != 1 || len(v.FieldInfo) != 1 {
		t.Fatalf("unexpected vprp: %+v", v)
	}
	if v.FieldInfo[0].CompressedBMHeight != 288 {
		t.Fatalf("field info = %+v", v.FieldInfo[0])
	}

	// A count that promises more descriptors than the payload holds.
	binary.LittleEndian.PutUint32(b[FieldPerFrameOffset:], 2)
	if _, err := DecodeVideoProperties(b); !errors.Is(err, ErrTruncated) {
		t.Fatalf("oversized count error = %v, want ErrTruncated", err)
	}
	binary.LittleEndian.PutUint32(b[FieldPerFrameOffset:], 0xFFFFFFFF)
	if _, err := DecodeVideoProperties(b); !errors.Is(err, ErrTruncated) {
		t.Fatalf("huge count error = %v, want ErrTruncated", err)
	}
}

func TestIndexTable(t *testing.T) {
	if _, err := IndexEntryCount(33); !errors.Is(err, ErrBadIndexSize) {
		t.Fatalf("IndexEntryCount(33) error = %v", err)
	}
	n, err := IndexEntryCount(48)
	if err != nil || n != 3 {
		t.Fatalf("IndexEntryCount(48) = %d, %v", n, err)
	}

	tbl := NewIndexTable([]IndexEntry{
		{ID: ParseFourCC("00dc"), Flags: 0x10, Offset: 4, Length: 5},
		{ID: ParseFourCC("01wb"), Flags: 0, Offset: 18, Length: 2},
	})
	encoded := tbl.AppendTo(nil)
	if len(encoded) != 2*IndexEntrySize || tbl.Len() != len(encoded) {
		t.Fatalf("encoded %d bytes, Len %d", len(encoded), tbl.Len())
	}
	back, err := DecodeIndexTable(encoded)
	if err != nil {
		t.Fatalf("DecodeIndexTable: %v", err)
	}
	if len(back.Entries) != 2 || back.Entries[1] != tbl.Entries[1] {
		t.Fatalf("decoded entries = %+v", back.Entries)
	}
}

func TestVideoPropertiesCountFollowsFieldInfo(t *testing.T) {
	v := &VideoProperties{FieldPerFrame: 5, FieldInfo: make([]VideoFieldDesc, 2)}
	b := v.AppendTo(nil)
	if got := binary.LittleEndian.Uint32(b[FieldPerFrameOffset:]); got != 2 {
		t.Fatalf("encoded FieldPerFrame = %d, want 2", got)
	}
}
