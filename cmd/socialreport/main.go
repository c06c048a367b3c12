package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/socialreport/internal/ingest"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "socialreport",
		Short:        "Build social media performance reports from platform exports",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log ingest details to stderr")

	logger := func() *slog.Logger {
		lvl := slog.LevelWarn
		if verbose {
			lvl = slog.LevelDebug
		}
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}

	root.AddCommand(newReportCmd(logger), newInspectCmd(logger))
	return root
}

func readUploads(paths []string) ([]ingest.Upload, error) {
	out := make([]ingest.Upload, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		out = append(out, ingest.Upload{Name: filepath.Base(p), Data: b})
	}
	return out, nil
}
