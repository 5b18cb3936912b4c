package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSizeOverrun indicates a declared size reaches past its container.
	ErrSizeOverrun = errors.New("format: size overruns container")
	// ErrSignatureMismatch indicates the file does not open with RIFF/AVI.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrBadIndexSize indicates an idx1 size that is not a whole number of entries.
	ErrBadIndexSize = errors.New("format: idx1 size not a multiple of entry size")
	// ErrTrailingData indicates bytes after the top-level RIFF node.
	ErrTrailingData = errors.New("format: trailing data after RIFF")
)
