package types

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindInput        ErrKind = iota // no usable byte buffer or file path
	ErrKindParse                       // structural decode failure (truncation, bad sizes)
	ErrKindReconcile                   // movi child and idx1 entry disagree
	ErrKindPrecondition                // operation requires a successful parse first
	ErrKindState                       // handle used after Close
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindInput:
		return "input"
	case ErrKindParse:
		return "parse"
	case ErrKindReconcile:
		return "reconcile"
	case ErrKindPrecondition:
		return "precondition"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind   ErrKind
	Msg    string
	Offset int   // byte offset of the offending node (ErrKindParse)
	Index  int   // frame position (ErrKindReconcile)
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(e.Msg)
	switch e.Kind {
	case ErrKindParse:
		fmt.Fprintf(&sb, " at offset %d", e.Offset)
	case ErrKindReconcile:
		fmt.Fprintf(&sb, " at frame %d", e.Index)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below act as
// category tests: errors.Is(err, types.ErrReconcile).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrInput indicates neither a byte buffer nor an existing file path was given.
	ErrInput = &Error{Kind: ErrKindInput, Msg: "expected file buffer or file path"}
	// ErrParse indicates the container could not be decoded.
	ErrParse = &Error{Kind: ErrKindParse, Msg: "unable to read AVI structure"}
	// ErrReconcile indicates a movi/idx1 mismatch.
	ErrReconcile = &Error{Kind: ErrKindReconcile, Msg: "frame mismatch to index"}
	// ErrNotParsed indicates an edit or write before a successful parse.
	ErrNotParsed = &Error{Kind: ErrKindPrecondition, Msg: "file has not been parsed yet"}
	// ErrClosed indicates use of a closed handle.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "file is closed"}
)

// ParseErrors is the set of structural errors found while decoding a file.
// A non-empty set is always fatal: no tree is returned alongside it.
type ParseErrors []*Error

func (pe ParseErrors) Error() string {
	switch len(pe) {
	case 0:
		return "no parse errors"
	case 1:
		return "parse: " + pe[0].Error()
	}
	msgs := make([]string, len(pe))
	for i, e := range pe {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("parse: %d errors: %s", len(pe), strings.Join(msgs, "; "))
}

// Unwrap exposes every member to errors.Is and errors.As.
func (pe ParseErrors) Unwrap() []error {
	out := make([]error, len(pe))
	for i, e := range pe {
		out[i] = e
	}
	return out
}

// -----------------------------------------------------------------------------
// Open Options
// -----------------------------------------------------------------------------

// OpenOptions controls how a file is loaded and parsed.
type OpenOptions struct {
	// Logger receives one Debug record per decoded node. Logging is purely
	// observational. nil discards.
	Logger *slog.Logger

	// ZeroCopy keeps a file opened by path memory-mapped and lets opaque
	// payloads (frame data, JUNK, strn, ...) alias the mapping. Such slices
	// are read-only and invalid after Close. When false the file is copied
	// onto the heap and unmapped before Open returns.
	ZeroCopy bool
}

// WriteOptions controls how (*avi.File).WriteFile writes to disk. The zero
// value writes atomically under an advisory lock with mode 0644.
type WriteOptions struct {
	// Direct writes straight to the destination instead of a temp file
	// renamed into place.
	Direct bool
	// NoLock skips the "<path>.lock" advisory lock.
	NoLock bool
	// Mode is the permission of the written file; 0 means 0644.
	Mode os.FileMode
}

// -----------------------------------------------------------------------------
// Summaries
// -----------------------------------------------------------------------------

// StreamInfo describes one strl list.
type StreamInfo struct {
	Index       int    `json:"index"`
	Type        string `json:"type"`
	Handler     string `json:"handler"`
	Name        string `json:"name,omitempty"`
	Scale       uint32 `json:"scale"`
	Rate        uint32 `json:"rate"`
	Length      uint32 `json:"length"`
	Format      string `json:"format,omitempty"` // record layout of strf
	Compression string `json:"compression,omitempty"`
	Width       int32  `json:"width,omitempty"`
	Height      int32  `json:"height,omitempty"`
	BitCount    uint16 `json:"bit_count,omitempty"`
	FormatTag   uint16 `json:"format_tag,omitempty"`
	Channels    uint16 `json:"channels,omitempty"`
	SampleRate  uint32 `json:"sample_rate,omitempty"`
}

// Summary reports the header-level facts of a parsed file.
type Summary struct {
	FileSize         int           `json:"file_size"`
	MicroSecPerFrame uint32        `json:"microsec_per_frame"`
	TotalFrames      uint32        `json:"total_frames"`
	StreamCount      uint32        `json:"stream_count"`
	Width            uint32        `json:"width"`
	Height           uint32        `json:"height"`
	Flags            []string      `json:"flags"`
	Duration         time.Duration `json:"duration"`
	Streams          []StreamInfo  `json:"streams"`
	IndexEntries     int           `json:"index_entries"`
	VideoFrames      int           `json:"video_frames"`
	AudioFrames      int           `json:"audio_frames"`
}
