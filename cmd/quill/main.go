// Package main is the entry point for the quill editor.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/engine/buffer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:   "quill [file]",
		Short: "A small terminal text editor",
		Long: `quill edits one file in the terminal.

Keys:
  arrows, Home, End, PgUp, PgDn   move the cursor
  Backspace, Delete               delete
  Ctrl-S                          save
  Ctrl-Q                          quit (twice with unsaved changes)`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.ParseLogLevel(opts.LogLevel); err != nil {
				return err
			}
			if len(args) == 1 {
				opts.File = args[0]
			}
			return runEditor(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default ~/.config/quill/config.toml)")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "log file path (default ~/.config/quill/quill.log)")
	rootCmd.Flags().BoolVarP(&opts.ReadOnly, "readonly", "R", false, "open the file read-only")

	rootCmd.AddCommand(newStatCmd())
	return rootCmd
}

// runEditor runs the interactive editor until quit or SIGTERM.
func runEditor(ctx context.Context, opts app.Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat FILE",
		Short: "Print a file's status line and size without opening the editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stat(cmd.OutOrStdout(), args[0])
		},
	}
}

func stat(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := buffer.NewFromReader(f, buffer.WithPath(path))
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	size := b.ByteSize()
	fmt.Fprintln(w, b.StatusText())
	fmt.Fprintf(w, "size: %s (%s bytes)\n", humanize.Bytes(uint64(size)), humanize.Comma(size))
	fmt.Fprintf(w, "characters: %s\n", humanize.Comma(int64(b.Len())))
	fmt.Fprintf(w, "line ending: %s\n", b.LineEnding())
	return nil
}
