package avi

import (
	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/internal/frames"
	"github.com/joshuapare/avikit/internal/writer"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

// Re-export commonly used types so users only need to import pkg/avi.

// Options and reports.
type (
	OpenOptions  = types.OpenOptions
	WriteOptions = types.WriteOptions
	Summary      = types.Summary
	StreamInfo   = types.StreamInfo
)

// Frame model.
type (
	Sequence   = frames.Sequence
	Frame      = frames.Frame
	IndexFlags = frames.IndexFlags
)

// Tree is the decoded container.
type Tree = ast.Tree

// Tree nodes.
type (
	Node  = ast.Node
	List  = ast.List
	Chunk = ast.Chunk
)

// Chunk payloads. Every Chunk.Payload is one of these records.
type (
	FourCC               = format.FourCC
	Record               = format.Record
	Kind                 = format.Kind
	Raw                  = format.Raw
	MainHeader           = format.MainHeader
	HeaderFlags          = format.HeaderFlags
	StreamHeader         = format.StreamHeader
	Rect                 = format.Rect
	BitmapInfoHeader     = format.BitmapInfoHeader
	WaveFormat           = format.WaveFormat
	WaveFormatEx         = format.WaveFormatEx
	GenericWaveFormat    = format.GenericWaveFormat
	GUID                 = format.GUID
	WaveFormatExtensible = format.WaveFormatExtensible
	MPEG1WaveFormat      = format.MPEG1WaveFormat
	MPEGLayer3WaveFormat = format.MPEGLayer3WaveFormat
	VideoProperties      = format.VideoProperties
	VideoFieldDesc       = format.VideoFieldDesc
	IndexTable           = format.IndexTable
	IndexEntry           = format.IndexEntry
)

// Record kinds.
const (
	KindRaw                  = format.KindRaw
	KindMainHeader           = format.KindMainHeader
	KindStreamHeader         = format.KindStreamHeader
	KindBitmapInfoHeader     = format.KindBitmapInfoHeader
	KindWaveFormat           = format.KindWaveFormat
	KindWaveFormatExtensible = format.KindWaveFormatExtensible
	KindMPEG1WaveFormat      = format.KindMPEG1WaveFormat
	KindMPEGLayer3WaveFormat = format.KindMPEGLayer3WaveFormat
	KindVideoProperties      = format.KindVideoProperties
	KindIndex                = format.KindIndex
)

// Main header flags.
const (
	HeaderHasIndex       = format.HeaderHasIndex
	HeaderMustUseIndex   = format.HeaderMustUseIndex
	HeaderIsInterleaved  = format.HeaderIsInterleaved
	HeaderTrustCKType    = format.HeaderTrustCKType
	HeaderWasCaptureFile = format.HeaderWasCaptureFile
	HeaderCopyrighted    = format.HeaderCopyrighted
)

var (
	// ParseFourCC converts a string such as "00dc" to a FourCC.
	ParseFourCC = format.ParseFourCC
	// NewChunk builds a chunk whose size and padding follow its record.
	NewChunk = ast.NewChunk
	// DecodeFlags turns raw idx1 flag bits into IndexFlags.
	DecodeFlags = frames.DecodeFlags
)

// Output sinks.
type (
	Sink         = writer.Sink
	FileWriter   = writer.FileWriter
	MemWriter    = writer.MemWriter
	StreamWriter = writer.StreamWriter
)

// NewSequence builds a frame sequence from scratch.
var NewSequence = frames.New
