package score

import (
	"fmt"
	"strings"
)

// Check names used in feedback directives.
const (
	CheckNodeCount     = "node_count"
	CheckCredentials   = "credentials"
	CheckParameters    = "parameters"
	CheckErrorHandling = "error_handling"
	CheckConnectivity  = "connectivity"
	CheckDocumentation = "documentation"
	CheckFlowFeatures  = "flow_features"
)

// Severity separates must-fix findings from advisory ones.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityAdvisory Severity = "advisory"
)

// Directive is one structured, quantified improvement instruction derived
// from a failing check. Instruction text is produced by String as a pure
// formatting step; the numbers are the source of truth.
type Directive struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Have     int      `json:"have"`
	Want     int      `json:"want"`
	Names    []string `json:"names,omitempty"`
}

// String renders the directive as a single actionable instruction.
func (d Directive) String() string {
	switch d.Check {
	case CheckNodeCount:
		return fmt.Sprintf("workflow has only %d nodes; add nodes to reach the %d-node minimum", d.Have, d.Want)
	case CheckCredentials:
		return fmt.Sprintf("%d of %d credential-requiring nodes are missing credentials", d.Want-d.Have, d.Want)
	case CheckParameters:
		return fmt.Sprintf("%d of %d nodes have incomplete or missing parameters", d.Want-d.Have, d.Want)
	case CheckErrorHandling:
		pct := 0
		if d.Want > 0 {
			pct = d.Have * 100 / d.Want
		}
		return fmt.Sprintf("only %d%% of processable nodes have error handling; add on-error or retry policies to critical nodes", pct)
	case CheckConnectivity:
		names := d.Names
		if len(names) > 3 {
			names = names[:3]
		}
		return fmt.Sprintf("%d nodes have no incoming connection: %s", d.Want-d.Have, strings.Join(names, ", "))
	case CheckDocumentation:
		return fmt.Sprintf("add %d more annotation notes to document workflow sections", d.Want-d.Have)
	case CheckFlowFeatures:
		return "workflow lacks flow features; add branching, merge, or data-transformation nodes"
	default:
		return fmt.Sprintf("improve %s (%d/%d)", d.Check, d.Have, d.Want)
	}
}

// feedback emits one directive per failing check, in canonical order.
func feedback(b *Breakdown) []Directive {
	var out []Directive
	add := func(check string, sev Severity, r CheckResult) {
		if r.Passed {
			return
		}
		out = append(out, Directive{
			Check:    check,
			Severity: sev,
			Have:     r.Have,
			Want:     r.Want,
			Names:    r.Names,
		})
	}

	add(CheckNodeCount, SeverityCritical, b.NodeCount)
	add(CheckCredentials, SeverityCritical, b.Credentials)
	add(CheckParameters, SeverityCritical, b.Parameters)
	add(CheckErrorHandling, SeverityAdvisory, b.ErrorHandling)
	add(CheckConnectivity, SeverityCritical, b.Connectivity)
	add(CheckDocumentation, SeverityAdvisory, b.Documentation)
	add(CheckFlowFeatures, SeverityAdvisory, b.FlowFeatures)
	return out
}
