package avi

import (
	"io"

	"github.com/joshuapare/avikit/internal/edit"
	"github.com/joshuapare/avikit/internal/frames"
	"github.com/joshuapare/avikit/internal/mmfile"
	"github.com/joshuapare/avikit/internal/reader"
	"github.com/joshuapare/avikit/internal/writer"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

// File is an AVI file held in memory.
type File struct {
	data   []byte
	unmap  func() error
	opts   OpenOptions
	tree   *ast.Tree
	closed bool
}

// Open loads the file at path. With opts.ZeroCopy the file stays mapped
// until Close; otherwise it is copied onto the heap.
func Open(path string, opts OpenOptions) (*File, error) {
	if path == "" {
		return nil, types.ErrInput
	}
	f := &File{opts: opts}
	var err error
	if opts.ZeroCopy {
		f.data, f.unmap, err = mmfile.Map(path)
	} else {
		f.data, err = mmfile.Load(path)
	}
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindInput, Msg: types.ErrInput.Msg, Err: err}
	}
	return f, nil
}

// OpenBytes wraps buf. The tree aliases buf, so it must not be modified
// while the File is in use.
func OpenBytes(buf []byte, opts OpenOptions) (*File, error) {
	if buf == nil {
		return nil, types.ErrInput
	}
	return &File{data: buf, opts: opts}, nil
}

// Parse decodes the file. On failure the error is a types.ParseErrors and
// the File stays unparsed.
func (f *File) Parse() error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	tree, err := reader.Parse(f.data, f.opts.Logger)
	f.tree = tree
	return err
}

// Tree returns the decoded tree. Edits made to it are written out.
func (f *File) Tree() (*Tree, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}
	return f.tree, nil
}

// Frames reconciles movi with idx1 and returns a fresh sequence.
func (f *File) Frames() (*Sequence, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}
	return frames.FromTree(f.tree)
}

// ReplaceFrames rebuilds movi and idx1 from seq and patches the header
// frame counters.
func (f *File) ReplaceFrames(seq *Sequence) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}
	return edit.ReplaceFrames(f.tree, seq)
}

// Bytes encodes the current tree.
func (f *File) Bytes() ([]byte, error) {
	if err := f.ensureParsed(); err != nil {
		return nil, err
	}
	return writer.Encode(f.tree)
}

// Write encodes the current tree and hands it to sink.
func (f *File) Write(sink Sink) error {
	if err := f.ensureParsed(); err != nil {
		return err
	}
	return writer.Write(f.tree, sink)
}

// WriteTo implements io.WriterTo.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	sw := &writer.StreamWriter{W: w}
	err := f.Write(sw)
	return sw.N, err
}

// WriteFile writes the current tree to path.
func (f *File) WriteFile(path string, opts WriteOptions) error {
	if path == "" {
		return types.ErrInput
	}
	mode := opts.Mode
	if mode == 0 {
		mode = writer.DefaultFileMode
	}
	return f.Write(&writer.FileWriter{
		Path:   path,
		Mode:   mode,
		Atomic: !opts.Direct,
		Lock:   !opts.NoLock,
	})
}

// Close releases the mapping, if any. Further calls return ErrClosed except
// Close itself, which is idempotent.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.tree = nil
	if f.unmap != nil {
		return f.unmap()
	}
	return nil
}

func (f *File) ensureOpen() error {
	if f.closed {
		return types.ErrClosed
	}
	return nil
}

func (f *File) ensureParsed() error {
	if err := f.ensureOpen(); err != nil {
		return err
	}
	if f.tree == nil {
		return types.ErrNotParsed
	}
	return nil
}
