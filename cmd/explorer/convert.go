package main

import (
	"fmt"

	csvadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/csv"
	sqliteadapter "github.com/couchcryptid/wildfire-explorer/internal/adapter/sqlite"
	"github.com/couchcryptid/wildfire-explorer/internal/observability"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var csvPath, out string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a CSV export into a SQLite database with a Fires table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := observability.NewStderrLogger(cfg)

			incidents, err := csvadapter.NewLoader(csvPath, logger).Load()
			if err != nil {
				return err
			}
			if err := sqliteadapter.Export(cmd.Context(), out, incidents); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d incidents to %s\n", len(incidents), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV export to read")
	cmd.Flags().StringVar(&out, "out", "", "SQLite file to create")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
