package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvalerio/flowforge"
	"github.com/nvalerio/flowforge/pkg/assemble"
	"github.com/nvalerio/flowforge/pkg/score"
)

var buildCmd = &cobra.Command{
	Use:   "build <requirements-file>",
	Short: "Compose a workflow graph from a requirements file",
	Long: `Reads a YAML or JSON requirements record, deterministically composes a
workflow graph, repairs it (credential placeholders, error policies,
annotations), and scores it. The workflow JSON goes to stdout or --output;
the quality report goes to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tierName, _ := cmd.Flags().GetString("tier")
		output, _ := cmd.Flags().GetString("output")

		req, err := loadRequirements(args[0])
		if err != nil {
			return err
		}
		tier, err := score.ParseTier(tierName)
		if err != nil {
			return err
		}

		eng := newEngine(cmd)
		wf := eng.Repairer.Repair(eng.Builder.Build(req))
		report := eng.Scorer.Score(wf, tier)

		payload, err := json.MarshalIndent(wf, "", "  ")
		if err != nil {
			return fmt.Errorf("encode workflow: %w", err)
		}
		if output != "" {
			if err := os.WriteFile(output, append(payload, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d nodes)\n", output, len(wf.Nodes))
		} else {
			fmt.Println(string(payload))
		}

		return renderReport(os.Stderr, report)
	},
}

// loadRequirements parses a requirements file. YAML is the default and
// also covers JSON bodies.
func loadRequirements(path string) (assemble.Requirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return assemble.Requirements{}, fmt.Errorf("read requirements: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return assemble.Requirements{}, fmt.Errorf("parse requirements %s: %w", path, err)
	}
	return assemble.Decode(raw)
}

// newEngine builds the engine honoring the config file when present.
func newEngine(cmd *cobra.Command) *flowforge.Engine {
	cfg := loadConfig(cmd)
	return flowforge.New(
		flowforge.WithLogger(newLogger(cmd)),
		flowforge.WithScoreConfig(score.Config{
			Threshold:             cfg.Score.Threshold,
			MinErrorHandlingRatio: cfg.Score.MinErrorHandlingRatio,
			MinAnnotations:        cfg.Score.MinAnnotations,
		}),
	)
}

func init() {
	buildCmd.Flags().String("tier", "standard", "Complexity tier: light, standard, or heavy")
	buildCmd.Flags().StringP("output", "o", "", "Write the workflow JSON to a file instead of stdout")
	rootCmd.AddCommand(buildCmd)
}
