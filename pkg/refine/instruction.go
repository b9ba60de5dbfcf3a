package refine

import (
	"fmt"
	"strings"

	"github.com/nvalerio/flowforge/pkg/ports"
	"github.com/nvalerio/flowforge/pkg/score"
)

// Instruction is the synthesis request the pipeline assembles for each
// attempt. The structured fields are the source of truth; Render is a pure
// formatting step over them, so folding feedback in means appending
// directives, never editing rendered text.
type Instruction struct {
	Intent       string
	Tier         score.Tier
	MinNodes     int
	Integrations []string
	Context      string
	References   []ports.Reference
	Directives   []score.Directive
}

// Render produces the full instruction text.
func (in *Instruction) Render() string {
	var b strings.Builder
	b.WriteString("Build an automation workflow graph.\n\n")
	fmt.Fprintf(&b, "Intent: %s\n", in.Intent)
	fmt.Fprintf(&b, "Complexity tier: %s (at least %d nodes)\n", in.Tier, in.MinNodes)
	if len(in.Integrations) > 0 {
		fmt.Fprintf(&b, "Required integrations: %s\n", strings.Join(in.Integrations, ", "))
	}
	if in.Context != "" {
		fmt.Fprintf(&b, "\nAdditional context:\n%s\n", in.Context)
	}
	if len(in.References) > 0 {
		b.WriteString("\nReference workflows to pattern against:\n")
		for _, ref := range in.References {
			fmt.Fprintf(&b, "- %s (%d nodes): %s", ref.Name, ref.NodeCount, ref.Summary)
			if len(ref.Patterns) > 0 {
				fmt.Fprintf(&b, " [patterns: %s]", strings.Join(ref.Patterns, ", "))
			}
			b.WriteByte('\n')
		}
	}
	if len(in.Directives) > 0 {
		b.WriteString("\nThe previous candidate fell short. You MUST address:\n")
		for _, d := range in.Directives {
			fmt.Fprintf(&b, "- %s\n", d.String())
		}
	}
	return b.String()
}
