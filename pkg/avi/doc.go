/*
Package avi reads, edits and rewrites AVI (RIFF) files.

# Quick Start

Drop every keyframe from a file:

	f, err := avi.Open("in.avi", avi.OpenOptions{})
	if err != nil {
	    log.Fatal(err)
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
	    log.Fatal(err)
	}
	seq, _ := f.Frames()
	seq = seq.Filter(func(fr *avi.Frame) bool { return !fr.IsKeyframe() })
	if err := f.ReplaceFrames(seq); err != nil {
	    log.Fatal(err)
	}
	err = f.WriteFile("out.avi", avi.WriteOptions{})

# Model

Parse decodes the file into a tree of lists and chunks (see pkg/ast). Header
chunks (avih, strh, strf, vprp, idx1) carry typed records; everything else,
including frame data, is kept as opaque bytes. Frames pairs the movi chunks
with their idx1 entries; ReplaceFrames regenerates both from an edited
sequence and patches the frame counters in avih and the stream headers.

Writing an unedited file reproduces its bytes exactly.

# Error Handling

Errors are *types.Error values (or types.ParseErrors, a set of them) and can
be tested by category:

	if errors.Is(err, types.ErrReconcile) { ... }

# Concurrency

A File is not safe for concurrent use.
*/
package avi
