/*
Package flowforge generates, validates, scores, and iteratively refines
automation workflow graphs in the n8n wire format.

The library is split along a hexagonal boundary. The core packages are
deterministic and dependency-free at runtime: pkg/assemble composes
workflows from a flat requirements record, pkg/validate checks structure
against the open-world type catalog in pkg/catalog, and pkg/score grades a
graph with seven weighted quality checks. pkg/refine drives the
synthesize-repair-score loop against collaborators defined in pkg/ports;
adapters for HTTP, MCP, Redis, and in-memory use live under pkg/adapters.

# Usage

	eng := flowforge.New()

	req, _ := assemble.Decode(map[string]any{
		"trigger":          "webhook",
		"needs_validation": true,
		"outputs":          []string{"slack"},
	})
	wf := eng.Repairer.Repair(eng.Builder.Build(req))
	report := eng.Scorer.Score(wf, score.TierStandard)

A report carries a 0-100 score, a letter grade, the per-check breakdown,
and structured feedback directives. The refinement pipeline folds those
directives into the next synthesis instruction until a candidate clears
the acceptance threshold or the attempt budget runs out; it never returns
an error, only a result with an explicit status.
*/
package flowforge
