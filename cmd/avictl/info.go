package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Report header and stream metadata",
		Long: `The info command parses an AVI file and displays the main header
(frame rate, dimensions, flags, frame count) and one row per stream.

Example:
  avictl info clip.avi
  avictl info clip.avi --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	f, err := openParsed(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := f.Summary()
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(s)
	}

	flags := strings.Join(s.Flags, ", ")
	if flags == "" {
		flags = "-"
	}
	printInfo("\n%s\n", styled(headingStyle, "AVI Information:"))
	printInfo("  File: %s\n", path)
	printInfo("  Size: %s (%d bytes)\n", humanize.IBytes(uint64(s.FileSize)), s.FileSize)
	printInfo("  Dimensions: %dx%d\n", s.Width, s.Height)
	printInfo("  Frame time: %d µs\n", s.MicroSecPerFrame)
	printInfo("  Total frames: %d\n", s.TotalFrames)
	printInfo("  Duration: %s\n", s.Duration)
	printInfo("  Flags: %s\n", flags)
	printInfo("  Index entries: %d (video %d, audio %d)\n", s.IndexEntries, s.VideoFrames, s.AudioFrames)

	if len(s.Streams) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(s.Streams))
	for _, st := range s.Streams {
		rows = append(rows, []string{
			strconv.Itoa(st.Index),
			st.Type,
			st.Handler,
			st.Name,
			strconv.FormatUint(uint64(st.Length), 10),
			rate(st.Rate, st.Scale),
			codec(st.Format, st.Compression, st.FormatTag, st.Width, st.Height, st.Channels, st.SampleRate),
		})
	}
	printInfo("\n%s\n", renderTable(
		[]string{"#", "Type", "Handler", "Name", "Length", "Rate", "Format"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}

func rate(r, scale uint32) string {
	if scale == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(r)/float64(scale), 'f', -1, 64) + "/s"
}

func codec(layout, compression string, tag uint16, w, h int32, channels uint16, sampleRate uint32) string {
	switch {
	case compression != "":
		return fmt.Sprintf("%s %dx%d", compression, w, h)
	case tag != 0:
		return fmt.Sprintf("%s tag=%#04x %dch %dHz", layout, tag, channels, sampleRate)
	}
	return layout
}
