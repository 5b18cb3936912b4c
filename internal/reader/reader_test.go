package reader

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/avikit/internal/format"
	"github.com/joshuapare/avikit/internal/testutil"
	"github.com/joshuapare/avikit/pkg/ast"
	"github.com/joshuapare/avikit/pkg/types"
)

func mustParse(t *testing.T, data []byte) *ast.Tree {
	t.Helper()
	tree, err := Parse(data, nil)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree
}

func TestParse_WellFormed(t *testing.T) {
	b := testutil.NewAVIBuilder()
	b.VideoProps = true
	b.StreamName = "Video"
	b.JunkSize = 7
	b.InfoSoft = "avikit"
	data := b.Bytes()

	tree := mustParse(t, data)

	assert.Equal(t, format.RIFFSignature, tree.Root.ID)
	assert.Equal(t, format.AVIForm, tree.Root.Type)
	assert.Equal(t, uint32(len(data)-8), tree.Root.Size)

	avih := tree.MainHeader()
	require.NotNil(t, avih)
	assert.Equal(t, uint32(320), avih.Width)
	assert.Equal(t, uint32(240), avih.Height)
	assert.Equal(t, uint32(3), avih.TotalFrames)
	assert.Equal(t, uint32(2), avih.Streams)

	require.Len(t, tree.Streams(), 2)
	strf, err := tree.Find("hdrl/strl[0]/strf")
	require.NoError(t, err)
	bih, ok := strf.(*ast.Chunk).Payload.(*format.BitmapInfoHeader)
	require.True(t, ok, "video strf should decode as BITMAPINFOHEADER")
	assert.Equal(t, int32(320), bih.Width)

	vprp, err := tree.Find("hdrl/strl[0]/vprp")
	require.NoError(t, err)
	props := vprp.(*ast.Chunk).Payload.(*format.VideoProperties)
	assert.Len(t, props.FieldInfo, 2)

	strn, err := tree.Find("hdrl/strl[0]/strn")
	require.NoError(t, err)
	assert.Equal(t, format.Raw("Video\x00"), strn.(*ast.Chunk).Payload)

	astrf, err := tree.Find("hdrl/strl[1]/strf")
	require.NoError(t, err)
	wfx, ok := astrf.(*ast.Chunk).Payload.(*format.GenericWaveFormat)
	require.True(t, ok, "audio strf should decode as generic WAVEFORMAT")
	assert.Equal(t, uint16(1), wfx.FormatTag)
	assert.Equal(t, uint32(44100), wfx.SamplesPerSec)

	junk, err := tree.Find("JUNK")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), junk.DeclaredSize())
	assert.Equal(t, 1, junk.(*ast.Chunk).Padding)

	info, err := tree.Find("INFO/ISFT")
	require.NoError(t, err)
	assert.Equal(t, format.KindRaw, info.(*ast.Chunk).Payload.Kind())

	movi := tree.Movi()
	require.NotNil(t, movi)
	require.Len(t, movi.Children, 5)
	first := movi.Children[0].(*ast.Chunk)
	assert.Equal(t, "00dc", first.ID.String())
	assert.Equal(t, uint32(5), first.Size)
	assert.Equal(t, 1, first.Padding)

	idx := tree.Index()
	require.NotNil(t, idx)
	table := idx.Payload.(*format.IndexTable)
	assert.Len(t, table.Entries, 5)
}

func TestParse_PaddingLaw(t *testing.T) {
	tree := mustParse(t, testutil.NewAVIBuilder().Bytes())
	err := tree.Walk(func(n ast.Node, _ int, path string) error {
		s := int(n.DeclaredSize())
		want := 8 + s
		if s%2 == 1 {
			want++
		}
		assert.Equal(t, want, n.EncodedLen(), path)
		return nil
	})
	require.NoError(t, err)
}

func TestParse_OffsetsFollowEncodedLengths(t *testing.T) {
	tree := mustParse(t, testutil.NewAVIBuilder().Bytes())
	movi := tree.Movi()
	off := movi.Offset + format.ListHeaderSize
	for _, ch := range movi.Children {
		c := ch.(*ast.Chunk)
		assert.Equal(t, off, c.Offset, c.ID.String())
		off += c.EncodedLen()
	}
}

func TestParse_AudioFormatDispatch(t *testing.T) {
	tests := []struct {
		name  string
		tag   uint16
		extra int
		want  format.Kind
	}{
		{"pcm", 0x0001, 0, format.KindWaveFormat},
		{"extensible", format.WaveFormatTagExtensible, 22, format.KindWaveFormatExtensible},
		{"mpeg1", format.WaveFormatTagMPEG, 22, format.KindMPEG1WaveFormat},
		{"mp3", format.WaveFormatTagMPEGLayer3, 12, format.KindMPEGLayer3WaveFormat},
		{"unknown", 0x1234, 6, format.KindWaveFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.NewAVIBuilder()
			b.AudioFormatTag = tt.tag
			b.AudioExtra = make([]byte, tt.extra)
			tree := mustParse(t, b.Bytes())

			n, err := tree.Find("hdrl/strl[1]/strf")
			require.NoError(t, err)
			c := n.(*ast.Chunk)
			assert.Equal(t, tt.want, c.Payload.Kind())
			assert.Equal(t, int(c.Size), c.Payload.Len())
		})
	}
}

func TestParse_StreamContextStaysInsideStrl(t *testing.T) {
	bih := (&format.BitmapInfoHeader{Size: 40, Width: 8, Height: 8}).AppendTo(nil)
	vids := (&format.StreamHeader{Type: format.StreamVideo}).AppendTo(nil)
	data := testutil.RIFF(testutil.Concat(
		[]byte("AVI "),
		testutil.List("hdrl",
			testutil.List("strl",
				testutil.Chunk("strh", vids),
				testutil.Chunk("strf", bih),
			),
			// No strh: strf must not inherit "vids" from the previous stream.
			testutil.List("strl",
				testutil.Chunk("strf", bih),
			),
		),
	))

	tree := mustParse(t, data)
	first, err := tree.Find("hdrl/strl[0]/strf")
	require.NoError(t, err)
	assert.Equal(t, format.KindBitmapInfoHeader, first.(*ast.Chunk).Payload.Kind())

	second, err := tree.Find("hdrl/strl[1]/strf")
	require.NoError(t, err)
	assert.Equal(t, format.KindRaw, second.(*ast.Chunk).Payload.Kind())
}

func TestParse_NoPartialTreeOnError(t *testing.T) {
	data := testutil.NewAVIBuilder().Bytes()

	tree, err := Parse(data[:len(data)-3], nil)
	assert.Nil(t, tree)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrParse)
	assert.ErrorIs(t, err, format.ErrSizeOverrun)

	var perrs types.ParseErrors
	require.True(t, errors.As(err, &perrs))
	assert.NotEmpty(t, perrs)
}

func TestParse_Errors(t *testing.T) {
	good := testutil.NewAVIBuilder().Bytes()

	badIndex := testutil.NewAVIBuilder()
	badIndex.OmitIndex = true
	withBadIndex := badIndex.Bytes()
	withBadIndex = testutil.RIFF(append(withBadIndex[8:], testutil.Chunk("idx1", make([]byte, 20))...))

	overrun := testutil.RIFF(testutil.Concat(
		[]byte("AVI "),
		testutil.Node("JUNK", []byte{1, 2}),
		[]byte("LIST"), []byte{0xFF, 0, 0, 0}, []byte("movi"),
	))

	shortAvih := testutil.RIFF(testutil.Concat(
		[]byte("AVI "),
		testutil.List("hdrl", testutil.Chunk("avih", make([]byte, 10))),
	))

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, format.ErrTruncated},
		{"not riff", append([]byte("RIFX"), good[4:]...), format.ErrSignatureMismatch},
		{"not avi", append(append([]byte{}, good[:8]...), append([]byte("WAVE"), good[12:]...)...), format.ErrSignatureMismatch},
		{"truncated", good[:len(good)/2], format.ErrSizeOverrun},
		{"trailing data", append(append([]byte{}, good...), 1, 2, 3, 4), format.ErrTrailingData},
		{"bad idx1 size", withBadIndex, format.ErrBadIndexSize},
		{"child overrun", overrun, format.ErrSizeOverrun},
		{"short avih", shortAvih, format.ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.data, nil)
			assert.Nil(t, tree)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, types.ErrParse)
		})
	}
}

func TestParse_ErrorOffsets(t *testing.T) {
	data := testutil.RIFF(testutil.Concat(
		[]byte("AVI "),
		testutil.Chunk("JUNK", []byte{0, 0}),
		testutil.List("hdrl", testutil.Chunk("avih", make([]byte, 10))),
	))
	_, err := Parse(data, nil)

	var perrs types.ParseErrors
	require.True(t, errors.As(err, &perrs))
	require.Len(t, perrs, 1)
	// RIFF header 12 + JUNK 10 + LIST header 12
	assert.Equal(t, 34, perrs[0].Offset)
}

func TestParse_DiagnosticsPerNode(t *testing.T) {
	data := testutil.NewAVIBuilder().Bytes()
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree, err := Parse(data, logger)
	require.NoError(t, err)

	nodes := 0
	require.NoError(t, tree.Walk(func(ast.Node, int, string) error { nodes++; return nil }))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	assert.Len(t, lines, nodes)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "list", first["msg"])
	assert.Equal(t, "RIFF", first["id"])
	assert.Equal(t, "AVI ", first["type"])

	// Logging is observational: output with and without a sink is the same tree.
	quiet := mustParse(t, data)
	assert.Equal(t, quiet, tree)
}
