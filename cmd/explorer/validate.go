package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	csvadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/csv"
	sqliteadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/sqlite"
	"github.com/couchcryptid/wildfire-explorer/internal/domain"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

// maxPhaseErrors caps the detail printed per failing phase.
const maxPhaseErrors = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd() *cobra.Command {
	var csvPath, sqlitePath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a CSV export and a SQLite database yield the same views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := observability.NewStderrLogger(cfg)

			csvIncidents, err := csvadapter.NewLoader(csvPath, logger).Load()
			if err != nil {
				return err
			}
			sqliteIncidents, err := sqliteadapter.NewLoader(sqlitePath, logger).Load(cmd.Context())
			if err != nil {
				return err
			}

			phases := validateDatasets(domain.NewDataset(csvIncidents), domain.NewDataset(sqliteIncidents))
			if !printPhases(cmd.OutOrStdout(), phases) {
				return errors.New("validation failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV export to compare")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database to compare")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("sqlite")
	return cmd
}

// validateDatasets compares everything the explorer derives from a dataset:
// year domain, cause vocabulary, and every per-year aggregate.
func validateDatasets(want, got *domain.Dataset) []*phase {
	return []*phase{
		validateShape(want, got),
		validateCauseCounts(want, got),
		validateStateCounts(want, got),
	}
}

func validateShape(want, got *domain.Dataset) *phase {
	p := &phase{name: "Dataset shape"}
	if want.Len() != got.Len() {
		p.errorf("incidents: csv=%d sqlite=%d", want.Len(), got.Len())
	}
	if diff := cmp.Diff(want.Years(), got.Years()); diff != "" {
		p.errorf("years differ (-csv +sqlite):\n%s", diff)
	}
	if diff := cmp.Diff(want.Causes(), got.Causes()); diff != "" {
		p.errorf("causes differ (-csv +sqlite):\n%s", diff)
	}
	return p
}

func validateCauseCounts(want, got *domain.Dataset) *phase {
	p := &phase{name: "Bar chart counts per year"}
	for _, year := range unionYears(want, got) {
		if diff := cmp.Diff(want.CauseCounts(year), got.CauseCounts(year)); diff != "" {
			p.errorf("year %d (-csv +sqlite):\n%s", year, diff)
		}
	}
	return p
}

func validateStateCounts(want, got *domain.Dataset) *phase {
	p := &phase{name: "Heatmap counts per year and cause"}
	causes := slices.Compact(slices.Sorted(slices.Values(append(want.Causes(), got.Causes()...))))
	for _, year := range unionYears(want, got) {
		for _, cause := range causes {
			if diff := cmp.Diff(want.StateCounts(year, cause), got.StateCounts(year, cause)); diff != "" {
				p.errorf("year %d cause %q (-csv +sqlite):\n%s", year, cause, diff)
			}
		}
	}
	return p
}

func unionYears(a, b *domain.Dataset) []int {
	return slices.Compact(slices.Sorted(slices.Values(append(a.Years(), b.Years()...))))
}

// printPhases writes a PASS/FAIL summary and reports whether all phases passed.
func printPhases(w io.Writer, phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxPhaseErrors {
				fmt.Fprintf(w, "  ... and %d more\n", len(p.errors)-maxPhaseErrors)
				break
			}
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	return allPassed
}
