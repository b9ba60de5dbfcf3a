package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/nvalerio/flowforge/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server on stdio",
	Long: `Starts the engine as an MCP server so AI agent hosts can build,
validate, and score workflow graphs as tools. Uses standard input/output;
logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcpAdapter.NewServer(newEngine(cmd))
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
