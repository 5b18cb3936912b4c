package format

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/buf"
)

// StreamContext is the ambient state the registry consults: the fccType of
// the most recent strh. The parser passes it down one strl subtree and
// threads the value returned by Decode to the next sibling, so nothing is
// shared between streams or between parses.
type StreamContext struct {
	StreamType FourCC
}

// Select picks the layout for a chunk payload. It is pure: the result
// depends only on id, ctx and, for strf/auds, the format tag in payload.
func Select(id FourCC, ctx StreamContext, payload []byte) Kind {
	switch id.Lower() {
	case ChunkMainHeader:
		return KindMainHeader
	case ChunkStreamHeader:
		return KindStreamHeader
	case ChunkVideoProps:
		return KindVideoProperties
	case ChunkIndex:
		return KindIndex
	case ChunkStreamFormat:
		switch ctx.StreamType {
		case StreamAudio:
			return selectWaveFormat(payload)
		case StreamVideo:
			return KindBitmapInfoHeader
		}
	}
	return KindRaw
}

func selectWaveFormat(payload []byte) Kind {
	switch buf.U16LE(payload[min(FormatTagOffset, len(payload)):]) {
	case WaveFormatTagExtensible:
		return KindWaveFormatExtensible
	case WaveFormatTagMPEG:
		return KindMPEG1WaveFormat
	case WaveFormatTagMPEGLayer3:
		return KindMPEGLayer3WaveFormat
	default:
		return KindWaveFormat
	}
}

// Decode decodes payload with the layout Select picks and returns the
// context for the chunks that follow. Only strh changes the context.
func Decode(id FourCC, ctx StreamContext, payload []byte) (Record, StreamContext, error) {
	kind := Select(id, ctx, payload)
	if kind == KindStreamHeader && len(payload) >= StreamTypeOffset+4 {
		copy(ctx.StreamType[:], payload[StreamTypeOffset:StreamTypeOffset+4])
	}
	rec, err := decodeKind(kind, payload)
	if err != nil {
		return nil, ctx, fmt.Errorf("%s as %s: %w", id, kind, err)
	}
	return rec, ctx, nil
}

func decodeKind(kind Kind, payload []byte) (Record, error) {
	switch kind {
	case KindMainHeader:
		return DecodeMainHeader(payload)
	case KindStreamHeader:
		return DecodeStreamHeader(payload)
	case KindBitmapInfoHeader:
		return DecodeBitmapInfoHeader(payload)
	case KindWaveFormat:
		return DecodeWaveFormat(payload)
	case KindWaveFormatExtensible:
		return DecodeWaveFormatExtensible(payload)
	case KindMPEG1WaveFormat:
		return DecodeMPEG1WaveFormat(payload)
	case KindMPEGLayer3WaveFormat:
		return DecodeMPEGLayer3WaveFormat(payload)
	case KindVideoProperties:
		return DecodeVideoProperties(payload)
	case KindIndex:
		return DecodeIndexTable(payload)
	default:
		return Raw(payload), nil
	}
}
