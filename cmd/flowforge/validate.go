package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvalerio/flowforge/pkg/score"
)

var validateCmd = &cobra.Command{
	Use:   "validate <workflow.json>",
	Short: "Validate a workflow graph's structure and score it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tierName, _ := cmd.Flags().GetString("tier")

		wf, err := loadWorkflow(args[0])
		if err != nil {
			return err
		}
		tier, err := score.ParseTier(tierName)
		if err != nil {
			return err
		}

		eng := newEngine(cmd)
		findings := eng.Validator.ValidateGraph(wf)

		for _, e := range findings.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		for _, w := range findings.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if findings.Valid {
			fmt.Fprintln(os.Stderr, "structure: ok")
		}

		if err := renderReport(os.Stdout, eng.Scorer.Score(wf, tier)); err != nil {
			return err
		}
		if !findings.Valid {
			return fmt.Errorf("workflow has %d structural error(s)", len(findings.Errors))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("tier", "standard", "Complexity tier: light, standard, or heavy")
	rootCmd.AddCommand(validateCmd)
}
