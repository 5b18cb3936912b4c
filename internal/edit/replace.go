// Package edit splices an edited frame sequence back into a parsed tree.
//
// The movi and idx1 layouts depend on the frame count, so both are rebuilt
// from the sequence and swapped in whole rather than patched field by field.
package edit

import (
	"fmt"

	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/internal/frames"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

// ReplaceFrames rewrites tree so it carries seq:
//
//  1. avih.TotalFrames and the first vids strh Length become the "dc" count;
//     the first auds strh Length becomes the "wb" count.
//  2. idx1 gets a fresh table projected from seq (inserted after movi if
//     the file had none).
//  3. movi gets one chunk per frame and Size = 4 + encoded children.
//  4. The RIFF size is recomputed from its children.
//
// The tree is left untouched when an error is returned.
func ReplaceFrames(tree *ast.Tree, seq *frames.Sequence) error {
	if tree == nil || tree.Root == nil {
		return types.ErrNotParsed
	}
	movi := tree.Movi()
	if movi == nil {
		return &types.Error{Kind: types.ErrKindPrecondition, Msg: "file has no movi list"}
	}

	entries, _ := seq.DataEntries()
	children := make([]ast.Node, len(entries))
	for i, e := range entries {
		if int(e.Size) != len(e.Data) {
			return &types.Error{
				Kind:  types.ErrKindReconcile,
				Msg:   "frame size differs from its data",
				Index: i,
				Err:   fmt.Errorf("%s size %d, %d data bytes", e.ID, e.Size, len(e.Data)),
			}
		}
		children[i] = ast.NewChunk(e.ID, format.Raw(e.Data))
	}

	patchCounters(tree, seq)

	table := format.NewIndexTable(seq.IndexEntries())
	if idx := tree.Index(); idx != nil {
		idx.SetPayload(table)
	} else {
		insertAfter(tree.Root, movi, ast.NewChunk(format.ChunkIndex, table))
	}

	movi.SetChildren(children)
	tree.Root.SetChildren(tree.Root.Children)
	return nil
}

func patchCounters(tree *ast.Tree, seq *frames.Sequence) {
	video, audio := seq.Counts()
	if avih := tree.MainHeader(); avih != nil {
		avih.TotalFrames = uint32(video)
	}
	if strh := tree.FirstStreamOfType(format.StreamVideo); strh != nil {
		strh.Length = uint32(video)
	}
	if strh := tree.FirstStreamOfType(format.StreamAudio); strh != nil {
		strh.Length = uint32(audio)
	}
}

func insertAfter(parent *ast.List, after ast.Node, n ast.Node) {
	out := make([]ast.Node, 0, len(parent.Children)+1)
	for _, ch := range parent.Children {
		out = append(out, ch)
		if ch == after {
			out = append(out, n)
		}
	}
	parent.Children = out
}
