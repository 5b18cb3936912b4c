package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joshuapare/avikit/internal/config"
	"github.com/joshuapare/avikit/internal/logging"
	"github.com/joshuapare/avikit/pkg/avi"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	noColor    bool
	configPath string
	logLevel   string

	// Set by setup before any command runs.
	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "avictl",
	Short: "Inspect and edit AVI files",
	Long: `avictl decodes AVI (RIFF) files into their list/chunk tree, lists the
frames of the movi list against the idx1 index, and rewrites files after
frame edits with the index and header counters regenerated.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and parser diagnostics")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/avikit/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level from the config")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and builds the diagnostics logger. Each invocation
// is tagged with its own run id.
func setup() error {
	loaded, _, _, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = *loaded

	level := cfg.Logging.Level
	switch {
	case logLevel != "":
		level = logLevel
	case verbose:
		level = "debug"
	}
	l, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format, Writer: os.Stderr})
	if err != nil {
		return err
	}
	logger = l.With(slog.String("run", uuid.NewString()))
	return nil
}

// openParsed opens and parses path with the command logger.
func openParsed(path string) (*avi.File, error) {
	printVerbose("Opening file: %s\n", path)
	f, err := avi.Open(path, avi.OpenOptions{Logger: logger})
	if err != nil {
		return nil, err
	}
	if err := f.Parse(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logger.Info("parsed", slog.String("path", path))
	return f, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
