package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/internal/frames"
	"github.com/joshuapare/avikit/internal/reader"
	"github.com/joshuapare/avikit/internal/testutil"
	"github.com/joshuapare/avikit/internal/writer"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

func load(t *testing.T, b *testutil.AVIBuilder) (*ast.Tree, *frames.Sequence) {
	t.Helper()
	tree, err := reader.Parse(b.Bytes(), nil)
	require.NoError(t, err)
	seq, err := frames.FromTree(tree)
	require.NoError(t, err)
	return tree, seq
}

func TestReplaceFrames_Unchanged(t *testing.T) {
	b := testutil.NewAVIBuilder()
	b.JunkSize = 3
	tree, seq := load(t, b)

	require.NoError(t, ReplaceFrames(tree, seq))
	out, err := writer.Encode(tree)
	require.NoError(t, err)
	assert.Equal(t, b.Bytes(), out)
}

func TestReplaceFrames_DuplicateDelete(t *testing.T) {
	tree, seq := load(t, testutil.NewAVIBuilder())

	// [00dc 01wb 00dc 01wb 00dc] -> duplicate frame 1, delete frame 2.
	require.True(t, seq.Duplicate(seq.At(1)))
	assert.Equal(t, 1, seq.Delete(seq.At(3)))
	require.Equal(t, 5, seq.Len())
	video, audio := seq.Counts()
	assert.Equal(t, 2, video)
	assert.Equal(t, 3, audio)

	require.NoError(t, ReplaceFrames(tree, seq))

	assert.Equal(t, uint32(video), tree.MainHeader().TotalFrames)
	assert.Equal(t, uint32(video), tree.FirstStreamOfType(format.StreamVideo).Length)
	assert.Equal(t, uint32(audio), tree.FirstStreamOfType(format.StreamAudio).Length)

	movi := tree.Movi()
	require.Len(t, movi.Children, 5)
	size := 4
	for _, ch := range movi.Children {
		size += ch.EncodedLen()
	}
	assert.Equal(t, uint32(size), movi.Size)

	idx := tree.Index()
	assert.Equal(t, uint32(5*16), idx.Size)
	assert.Equal(t, seq.IndexEntries(), idx.Payload.(*format.IndexTable).Entries)

	// The written file parses and reconciles again.
	out, err := writer.Encode(tree)
	require.NoError(t, err)
	again, err := reader.Parse(out, nil)
	require.NoError(t, err)
	seq2, err := frames.FromTree(again)
	require.NoError(t, err)
	require.Equal(t, seq.Len(), seq2.Len())
	for i := range seq.Len() {
		assert.Equal(t, seq.At(i).ID, seq2.At(i).ID)
		assert.Equal(t, seq.At(i).Data, seq2.At(i).Data)
		assert.Equal(t, seq.At(i).Flags, seq2.At(i).Flags)
	}
	assert.Equal(t, uint32(len(out)-8), again.Root.Size)
}

func TestReplaceFrames_DropAll(t *testing.T) {
	tree, seq := load(t, testutil.NewAVIBuilder())
	empty := seq.Filter(func(*frames.Frame) bool { return false })

	require.NoError(t, ReplaceFrames(tree, empty))
	assert.Equal(t, uint32(4), tree.Movi().Size)
	assert.Equal(t, uint32(0), tree.Index().Size)
	assert.Equal(t, uint32(0), tree.MainHeader().TotalFrames)
}

func TestReplaceFrames_InsertsMissingIndex(t *testing.T) {
	b := testutil.NewAVIBuilder()
	b.Frames = nil
	b.OmitIndex = true
	tree, seq := load(t, b)
	require.Nil(t, tree.Index())

	extra := frames.New(frames.Frame{ID: format.ParseFourCC("00dc"), Size: 3, Data: []byte{1, 2, 3}, Flags: frames.IndexFlags{Keyframe: true}})
	require.NoError(t, ReplaceFrames(tree, extra))
	require.NotNil(t, tree.Index())

	last := tree.Root.Children[len(tree.Root.Children)-1]
	assert.Equal(t, format.ChunkIndex, last.Tag())
	assert.Equal(t, 0, seq.Len())
	assert.Equal(t, uint32(1), tree.MainHeader().TotalFrames)
}

func TestReplaceFrames_SizeDataMismatch(t *testing.T) {
	tree, seq := load(t, testutil.NewAVIBuilder())
	before, err := writer.Encode(tree)
	require.NoError(t, err)

	seq.At(2).Data = append([]byte{}, 1, 2, 3, 4)
	err = ReplaceFrames(tree, seq)
	assert.ErrorIs(t, err, types.ErrReconcile)

	after, err := writer.Encode(tree)
	require.NoError(t, err)
	assert.Equal(t, before, after, "tree untouched on error")
}

func TestReplaceFrames_Preconditions(t *testing.T) {
	err := ReplaceFrames(nil, frames.New())
	assert.ErrorIs(t, err, types.ErrNotParsed)

	root := &ast.List{ID: format.RIFFSignature, Type: format.AVIForm}
	err = ReplaceFrames(&ast.Tree{Root: root}, frames.New())
	var te *types.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.ErrKindPrecondition, te.Kind)
}
