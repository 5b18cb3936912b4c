package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/avikit/pkg/avi"
)

var framesKeyframes bool

func init() {
	cmd := newFramesCmd()
	cmd.Flags().BoolVar(&framesKeyframes, "keyframes", false, "Only list video keyframes (default from frames.keyframes_only)")
	rootCmd.AddCommand(cmd)
}

func newFramesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames <file>",
		Short: "List frames reconciled against the index",
		Long: `The frames command pairs every movi chunk with its idx1 entry and
lists position, chunk id, size, flags and index offset. A file whose movi and
idx1 disagree is reported with the first mismatching position.

Example:
  avictl frames clip.avi
  avictl frames clip.avi --keyframes --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyframesOnly := cfg.Frames.KeyframesOnly
			if cmd.Flags().Changed("keyframes") {
				keyframesOnly = framesKeyframes
			}
			return runFrames(args, keyframesOnly)
		},
	}
	return cmd
}

type frameRow struct {
	Index  int      `json:"index"`
	ID     string   `json:"id"`
	Size   uint32   `json:"size"`
	Flags  []string `json:"flags"`
	Offset uint32   `json:"offset"`
}

func runFrames(args []string, keyframesOnly bool) error {
	f, err := openParsed(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	seq, err := f.Frames()
	if err != nil {
		return err
	}
	rows := frameRows(seq, keyframesOnly)

	if jsonOut {
		return printJSON(rows)
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{
			strconv.Itoa(r.Index),
			r.ID,
			strconv.FormatUint(uint64(r.Size), 10),
			seq.At(r.Index).Flags.String(),
			strconv.FormatUint(uint64(r.Offset), 10),
		}
	}
	printInfo("%s\n", renderTable(
		[]string{"#", "ID", "Size", "Flags", "Offset"},
		table,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight},
	))
	printVerbose("%d of %d frames\n", len(rows), seq.Len())
	return nil
}

func frameRows(seq *avi.Sequence, keyframesOnly bool) []frameRow {
	entries := seq.IndexEntries()
	rows := make([]frameRow, 0, seq.Len())
	for i, fr := range seq.All() {
		if keyframesOnly && !fr.IsKeyframe() {
			continue
		}
		flags := fr.Flags.Names()
		if flags == nil {
			flags = []string{}
		}
		rows = append(rows, frameRow{
			Index:  i,
			ID:     fr.ID.String(),
			Size:   fr.Size,
			Flags:  flags,
			Offset: entries[i].Offset,
		})
	}
	return rows
}
