package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func waveBytes(tag uint16, total int) []byte {
	b := make([]byte, total)
	binary.LittleEndian.PutUint16(b[0:], tag)
	binary.LittleEndian.PutUint16(b[2:], 2)     // channels
	binary.LittleEndian.PutUint32(b[4:], 44100) // samples/sec
	binary.LittleEndian.PutUint32(b[8:], 16000) // avg bytes/sec
	binary.LittleEndian.PutUint16(b[12:], 1)    // block align
	binary.LittleEndian.PutUint16(b[14:], 16)   // bits/sample
	return b
}

func TestSelect(t *testing.T) {
	audio := StreamContext{StreamType: StreamAudio}
	video := StreamContext{StreamType: StreamVideo}
	tests := []struct {
		name    string
		id      string
		ctx     StreamContext
		payload []byte
		want    Kind
	}{
		{"avih", "avih", StreamContext{}, nil, KindMainHeader},
		{"avih upper case", "AVIH", StreamContext{}, nil, KindMainHeader},
		{"strh", "strh", StreamContext{}, nil, KindStreamHeader},
		{"vprp", "vprp", video, nil, KindVideoProperties},
		{"idx1", "idx1", StreamContext{}, nil, KindIndex},
		{"strf video", "strf", video, nil, KindBitmapInfoHeader},
		{"strf extensible", "strf", audio, waveBytes(0xFFFE, 40), KindWaveFormatExtensible},
		{"strf mpeg1", "strf", audio, waveBytes(0x0050, 40), KindMPEG1WaveFormat},
		{"strf mp3", "strf", audio, waveBytes(0x0055, 30), KindMPEGLayer3WaveFormat},
		{"strf pcm", "strf", audio, waveBytes(0x0001, 16), KindWaveFormat},
		{"strf unknown tag", "strf", audio, waveBytes(0x1234, 18), KindWaveFormat},
		{"strf empty audio payload", "strf", audio, nil, KindWaveFormat},
		{"strf text stream", "strf", StreamContext{StreamType: StreamText}, nil, KindRaw},
		{"strf without strh", "strf", StreamContext{}, nil, KindRaw},
		{"junk", "JUNK", StreamContext{}, nil, KindRaw},
		{"frame", "00dc", video, nil, KindRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(ParseFourCC(tt.id), tt.ctx, tt.payload); got != tt.want {
				t.Fatalf("Select(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDecodeStreamHeaderUpdatesContext(t *testing.T) {
	payload := make([]byte, StreamHeaderSize)
	copy(payload, "auds")
	copy(payload[4:], "mp3 ")

	_, ctx, err := Decode(ChunkStreamHeader, StreamContext{StreamType: StreamVideo}, payload)
	if err != nil {
		t.Fatalf("Decode strh: %v", err)
	}
	if ctx.StreamType != StreamAudio {
		t.Fatalf("context = %q, want auds", ctx.StreamType)
	}

	// Any other chunk leaves the context alone.
	_, ctx2, err := Decode(ChunkJunk, ctx, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Decode JUNK: %v", err)
	}
	if ctx2 != ctx {
		t.Fatalf("JUNK changed context: %v", ctx2)
	}
}

func TestDecodeMPEGLayer3Dispatch(t *testing.T) {
	payload := waveBytes(WaveFormatTagMPEGLayer3, MPEGLayer3WaveFormatSize)
	binary.LittleEndian.PutUint16(payload[16:], 12)  // cbSize
	binary.LittleEndian.PutUint16(payload[18:], 1)   // ID
	binary.LittleEndian.PutUint32(payload[20:], 2)   // Flags
	binary.LittleEndian.PutUint16(payload[24:], 417) // BlockSize
	binary.LittleEndian.PutUint16(payload[26:], 1)   // FramesPerBlock
	binary.LittleEndian.PutUint16(payload[28:], 1393)

	rec, _, err := Decode(ChunkStreamFormat, StreamContext{StreamType: StreamAudio}, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mp3, ok := rec.(*MPEGLayer3WaveFormat)
	if !ok {
		t.Fatalf("record = %T, want *MPEGLayer3WaveFormat", rec)
	}
	if mp3.WFX.FormatTag != 0x0055 || mp3.WFX.Size != 12 {
		t.Fatalf("wfx = %+v", mp3.WFX)
	}
	if mp3.ID != 1 || mp3.Flags != 2 || mp3.BlockSize != 417 || mp3.FramesPerBlock != 1 || mp3.CodecDelay != 1393 {
		t.Fatalf("mp3 fields = %+v", mp3)
	}
	if got := rec.AppendTo(nil); !bytes.Equal(got, payload) {
		t.Fatalf("re-encode mismatch:\n got % x\nwant % x", got, payload)
	}
}

func TestDecodeUnknownFormatTagUsesGenericLayout(t *testing.T) {
	payload := waveBytes(0x1234, 22)
	copy(payload[16:], []byte{0x04, 0x00, 0xAA, 0xBB, 0xCC, 0xDD})

	rec, _, err := Decode(ChunkStreamFormat, StreamContext{StreamType: StreamAudio}, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	w, ok := rec.(*GenericWaveFormat)
	if !ok {
		t.Fatalf("record = %T, want *GenericWaveFormat", rec)
	}
	if w.FormatTag != 0x1234 || w.Channels != 2 || w.SamplesPerSec != 44100 || w.BitsPerSample != 16 {
		t.Fatalf("fields = %+v", w.WaveFormat)
	}
	if len(w.Extra) != 6 {
		t.Fatalf("extra = %d bytes, want 6", len(w.Extra))
	}
	if rec.Len() != len(payload) {
		t.Fatalf("Len = %d, want %d", rec.Len(), len(payload))
	}
}

func TestDecodeTruncatedRecords(t *testing.T) {
	tests := []struct {
		name string
		id   FourCC
		ctx  StreamContext
		size int
	}{
		{"avih", ChunkMainHeader, StreamContext{}, MainHeaderSize - 1},
		{"strh", ChunkStreamHeader, StreamContext{}, 20},
		{"bitmapinfo", ChunkStreamFormat, StreamContext{StreamType: StreamVideo}, 39},
		{"waveformat", ChunkStreamFormat, StreamContext{StreamType: StreamAudio}, 10},
		{"vprp header", ChunkVideoProps, StreamContext{}, 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.id, tt.ctx, make([]byte, tt.size))
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("Decode error = %v, want ErrTruncated", err)
			}
		})
	}
}

func TestDecodeMP3TagTooShort(t *testing.T) {
	_, _, err := Decode(ChunkStreamFormat, StreamContext{StreamType: StreamAudio}, waveBytes(0x0055, 18))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("Decode error = %v, want ErrTruncated", err)
	}
}
