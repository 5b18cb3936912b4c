package avi

import (
	"bytes"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/pkg/ast"
)

// Summary reports header-level facts. It reads the tree only and does not
// require movi and idx1 to reconcile.
func (f *File) Summary() (Summary, error) {
	if err := f.ensureParsed(); err != nil {
		return Summary{}, err
	}
	tree := f.tree
	s := Summary{FileSize: len(f.data)}

	if avih := tree.MainHeader(); avih != nil {
		s.MicroSecPerFrame = avih.MicroSecPerFrame
		s.TotalFrames = avih.TotalFrames
		s.StreamCount = avih.Streams
		s.Width = avih.Width
		s.Height = avih.Height
		s.Flags = avih.Flags.Names()
		s.Duration = time.Duration(avih.TotalFrames) * time.Duration(avih.MicroSecPerFrame) * time.Microsecond
	}

	for i, strl := range tree.Streams() {
		s.Streams = append(s.Streams, streamInfo(i, strl))
	}

	if idx := tree.Index(); idx != nil {
		if table, ok := idx.Payload.(*format.IndexTable); ok {
			s.IndexEntries = len(table.Entries)
		}
	}
	if movi := tree.Movi(); movi != nil {
		for _, ch := range movi.Children {
			switch ch.Tag().TwoCC() {
			case format.TwoCCCompressedVideo:
				s.VideoFrames++
			case format.TwoCCAudio:
				s.AudioFrames++
			}
		}
	}
	return s, nil
}

func streamInfo(i int, strl *ast.List) StreamInfo {
	info := StreamInfo{Index: i}
	if strh := ast.StreamHeader(strl); strh != nil {
		info.Type = strh.Type.String()
		info.Handler = strh.Handler.String()
		info.Scale = strh.Scale
		info.Rate = strh.Rate
		info.Length = strh.Length
	}
	if c := strl.ChildChunk(format.ChunkStreamName); c != nil {
		info.Name = decodeName(c.Payload.AppendTo(nil))
	}
	if c := strl.ChildChunk(format.ChunkStreamFormat); c != nil {
		info.Format = c.Payload.Kind().String()
		describeFormat(&info, c.Payload)
	}
	return info
}

func describeFormat(info *StreamInfo, rec format.Record) {
	var wf *format.WaveFormat
	switch v := rec.(type) {
	case *format.BitmapInfoHeader:
		info.Compression = v.Compression.String()
		info.Width = v.Width
		info.Height = v.Height
		info.BitCount = v.BitCount
		return
	case *format.GenericWaveFormat:
		wf = &v.WaveFormat
	case *format.WaveFormatExtensible:
		wf = &v.Format.WaveFormat
	case *format.MPEG1WaveFormat:
		wf = &v.WFX.WaveFormat
	case *format.MPEGLayer3WaveFormat:
		wf = &v.WFX.WaveFormat
	default:
		return
	}
	info.FormatTag = wf.FormatTag
	info.Channels = wf.Channels
	info.SampleRate = wf.SamplesPerSec
}

// decodeName turns a NUL-terminated Windows-1252 strn payload into UTF-8.
func decodeName(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
