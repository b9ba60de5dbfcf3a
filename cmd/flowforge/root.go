package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flowforge",
	Short: "Flowforge builds, validates, and scores automation workflow graphs",
	Long: `Flowforge composes n8n-format workflow graphs from requirement records,
validates their structure against an extensible node catalog, grades them
with weighted quality checks, and iteratively refines synthesized
candidates until they clear the acceptance threshold.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "flowforge.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}
