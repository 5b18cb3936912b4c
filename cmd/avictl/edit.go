package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/avikit/pkg/avi"
)

var (
	editOutput        string
	editDelete        []int
	editDuplicate     []int
	editDropKeyframes bool
)

func init() {
	cmd := newEditCmd()
	cmd.Flags().StringVarP(&editOutput, "output", "o", "", "Output file (required)")
	cmd.Flags().IntSliceVar(&editDelete, "delete", nil, "Frame positions to delete (e.g. 1,4)")
	cmd.Flags().IntSliceVar(&editDuplicate, "duplicate", nil, "Frame positions to duplicate in place")
	cmd.Flags().BoolVar(&editDropKeyframes, "drop-keyframes", false, "Remove every video keyframe")
	_ = cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <file> -o <output>",
		Short: "Delete or duplicate frames and write a new file",
		Long: `The edit command applies frame edits and writes a new file with movi,
idx1, avih.TotalFrames and the stream lengths regenerated.

Positions refer to the input file's frame order. Duplicates are inserted
immediately before the original.

Example:
  avictl edit clip.avi -o out.avi --delete 3,4
  avictl edit clip.avi -o out.avi --duplicate 0 --drop-keyframes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(args)
		},
	}
	return cmd
}

func runEdit(args []string) error {
	if editOutput == "" {
		return fmt.Errorf("--output is required")
	}
	f, err := openParsed(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	seq, err := f.Frames()
	if err != nil {
		return err
	}
	before := seq.Len()

	// Resolve positions before anything moves.
	deletes, err := pick(seq, editDelete)
	if err != nil {
		return fmt.Errorf("--delete: %w", err)
	}
	dups, err := pick(seq, editDuplicate)
	if err != nil {
		return fmt.Errorf("--duplicate: %w", err)
	}

	if editDropKeyframes {
		seq = seq.Filter(func(fr *avi.Frame) bool { return !fr.IsKeyframe() })
	}
	for _, fr := range deletes {
		seq.Delete(fr)
	}
	for i, fr := range dups {
		if !seq.Duplicate(fr) {
			return fmt.Errorf("--duplicate: frame %d was removed by an earlier edit", editDuplicate[i])
		}
	}

	if err := f.ReplaceFrames(seq); err != nil {
		return err
	}
	opts := avi.WriteOptions{
		Direct: !cfg.Write.Atomic,
		NoLock: !cfg.Write.Lock,
		Mode:   cfg.FileMode(),
	}
	if err := f.WriteFile(editOutput, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", editOutput, err)
	}

	out, err := f.Bytes()
	if err != nil {
		return err
	}
	video, audio := seq.Counts()
	logger.Info("wrote file", "path", editOutput, "frames", seq.Len(), "bytes", len(out))
	printInfo("Wrote %s (%s): %d -> %d frames (video %d, audio %d)\n",
		editOutput, humanize.IBytes(uint64(len(out))), before, seq.Len(), video, audio)
	return nil
}

func pick(seq *avi.Sequence, positions []int) ([]*avi.Frame, error) {
	out := make([]*avi.Frame, 0, len(positions))
	for _, p := range positions {
		if p < 0 || p >= seq.Len() {
			return nil, fmt.Errorf("frame %d out of range [0,%d)", p, seq.Len())
		}
		out = append(out, seq.At(p))
	}
	return out, nil
}
