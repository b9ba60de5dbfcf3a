package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvalerio/flowforge/pkg/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score <workflow.json>",
	Short: "Score a workflow graph against the quality checks",
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
		return renderReport(os.Stdout, eng.Scorer.Score(wf, tier))
	},
}

func init() {
	scoreCmd.Flags().String("tier", "standard", "Complexity tier: light, standard, or heavy")
	rootCmd.AddCommand(scoreCmd)
}
