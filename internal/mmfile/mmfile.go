// Package mmfile loads AVI files into memory for the parser.
package mmfile

import (
	"bytes"
	"fmt"
)

// Load returns a heap copy of the file at path. The mapping used to read it
// is released before Load returns.
func Load(path string) ([]byte, error) {
	data, unmap, err := Map(path)
	if err != nil {
		return nil, err
	}
	out := bytes.Clone(data)
	if out == nil {
		out = []byte{}
	}
	if err := unmap(); err != nil {
		return nil, fmt.Errorf("mmfile: unmap %s: %w", path, err)
	}
	return out, nil
}
