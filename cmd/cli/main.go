package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gobi",
		Short:         "gobi CLI for profiling, filtering and charting tabular files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newProfileCmd(),
		newFilterCmd(),
		newInsightsCmd(),
		newChartCmd(),
		newSampleCmd(),
	)
	return rootCmd
}
