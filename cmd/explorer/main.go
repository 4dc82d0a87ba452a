// Command explorer serves the linked wildfire views over HTTP and answers
// one-off aggregate queries from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "explorer",
		Short:        "Explore US wildfire incidents by year and cause",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("data", "", "dataset path (overrides DATA_PATH)")
	root.AddCommand(newServeCmd(), newReportCmd(), newConvertCmd(), newValidateCmd())
	return root
}
