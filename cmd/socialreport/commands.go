package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/metrics"
	"github.com/AngelCh415/socialreport/internal/render"
)

func newReportCmd(logger func() *slog.Logger) *cobra.Command {
	var (
		months int
		format string
	)
	cmd := &cobra.Command{
		Use:   "report FILE...",
		Short: "Generate a report from CSV, XLSX or ZIP exports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !metrics.ValidWindow(months) {
				return fmt.Errorf("%w: %d", metrics.ErrInvalidWindow, months)
			}
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (text, json or yaml)", format)
			}

			uploads, err := readUploads(args)
			if err != nil {
				return err
			}
			log := logger()
			b, err := ingest.NewETL(log, nil, 0, 0).Run(cmd.Context(), uploads)
			if err != nil {
				return err
			}
			for _, f := range b.Files {
				if !f.Success {
					log.Warn("skipped file", slog.String("file", f.FileName), slog.String("err", f.Error))
				}
			}

			rep, err := metrics.NewService(log, nil).Report(b.Dataset(), months)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(rep)
			}
			render.WriteText(out, rep, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVarP(&months, "months", "m", metrics.WindowMonths[0], "report window in months (3, 6 or 12)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}

func newInspectCmd(logger func() *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE...",
		Short: "Show how each export was classified and the dataset's date range",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploads, err := readUploads(args)
			if err != nil {
				return err
			}
			b, err := ingest.NewETL(logger(), nil, 0, 0).Run(cmd.Context(), uploads)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tKIND\tROWS\tSTATUS")
			for _, f := range b.Files {
				status := "ok"
				if !f.Success {
					status = f.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f.FileName, f.Kind, f.RowCount, status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			ds := b.Dataset()
			if r, ok := metrics.DetectRange(ds); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nData range: %s to %s\n", render.Date(r.StartDate), render.Date(r.EndDate))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "\nData range: none")
			}
			if !ds.HasPosts() {
				fmt.Fprintln(cmd.OutOrStdout(), "No post exports found; a report needs at least one.")
			}
			return nil
		},
	}
}
