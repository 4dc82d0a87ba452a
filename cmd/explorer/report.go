package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/spf13/cobra"
)

// report is the aggregate output of the report command.
type report struct {
	Year   int            `json:"year"`
	Total  int            `json:"total"`
	Causes []domain.Count `json:"causes"`
	Cause  string         `json:"cause,omitempty"`
	States []domain.Count `json:"states,omitempty"`
}

func newReportCmd() *cobra.Command {
	var (
		year   int
		cause  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print cause counts (and per-state counts for a cause) for one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := observability.NewStderrLogger(cfg)

			ds, err := loadDataset(cmd.Context(), cfg, observability.NewMetrics(), logger)
			if err != nil {
				return err
			}
			r, err := buildReport(ds, year, cause)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return writeReport(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year to report on (required)")
	cmd.Flags().StringVar(&cause, "cause", "", "also break the year down by state for this cause")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func buildReport(ds *domain.Dataset, year int, cause string) (report, error) {
	if err := ds.CheckYear(year); err != nil {
		return report{}, err
	}
	if cause != domain.NoCause && !ds.HasCause(cause) {
		return report{}, &domain.UnknownCauseError{Cause: cause}
	}

	r := report{
		Year:   year,
		Total:  len(ds.FilterByYear(year)),
		Causes: ds.CauseCounts(year),
	}
	if cause != domain.NoCause {
		r.Cause = cause
		r.States = ds.StateCounts(year, cause)
	}
	return r, nil
}

func writeReport(w io.Writer, r report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Year %d: %d incidents\n\n", r.Year, r.Total)
	fmt.Fprintln(tw, "CAUSE\tCOUNT")
	for _, c := range r.Causes {
		fmt.Fprintf(tw, "%s\t%d\n", c.Key, c.Count)
	}
	if r.Cause != "" {
		fmt.Fprintf(tw, "\nSelected Cause: %s (%d)\n", r.Cause, r.Year)
		fmt.Fprintln(tw, "STATE\tCOUNT")
		for _, s := range r.States {
			key := s.Key
			if key == "" {
				key = "(unknown)"
			}
			fmt.Fprintf(tw, "%s\t%d\n", key, s.Count)
		}
	}
	return tw.Flush()
}
