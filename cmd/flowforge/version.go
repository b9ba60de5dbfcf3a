package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nvalerio/flowforge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowforge version %s\n", strings.TrimSpace(flowforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
