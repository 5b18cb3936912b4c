package writer

import (
	"io"

	"github.com/joshuapare/avikit/pkg/ast"
)

// Sink receives a complete encoded file.
type Sink interface {
	WriteAVI(buf []byte) error
}

// MemWriter captures the encoded file in memory.
type MemWriter struct {
	Buf []byte
}

// WriteAVI copies buf into w.Buf, reusing its capacity.
func (w *MemWriter) WriteAVI(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}

// StreamWriter forwards the encoded file to an io.Writer.
type StreamWriter struct {
	W io.Writer
	N int64 // bytes written by the last WriteAVI
}

// WriteAVI writes buf in one call.
func (w *StreamWriter) WriteAVI(buf []byte) error {
	n, err := w.W.Write(buf)
	w.N = int64(n)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return err
}

// Write encodes tree into a pooled buffer and hands it to sink. Sinks must
// not retain buf after WriteAVI returns; MemWriter copies it.
func Write(tree *ast.Tree, sink Sink) error {
	scratch := getBuffer()
	defer putBuffer(scratch)

	out, err := AppendTree((*scratch)[:0], tree)
	if err != nil {
		return err
	}
	*scratch = out
	return sink.WriteAVI(out)
}
