// Package validate implements the structural validator for workflow
// graphs. Findings are reported, never thrown: a malformed graph degrades
// to errors and warnings in the result, and the caller decides what to do
// with them. Intermediate candidates are expected to be imperfect.
package validate

import (
	"fmt"

	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
)

// NodeResult holds the findings for a single node.
type NodeResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// GraphResult aggregates per-node findings with graph-level checks.
type GraphResult struct {
	Valid    bool                  `json:"valid"`
	Nodes    map[string]NodeResult `json:"nodes,omitempty"`
	Errors   []string              `json:"errors,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Validator checks nodes and graphs against the catalog's expectations.
type Validator struct {
	catalog *catalog.Catalog
}

// New creates a validator over the given catalog.
func New(c *catalog.Catalog) *Validator {
	return &Validator{catalog: c}
}

// ValidateNode checks a single node against its type schema.
//
// A type absent from the catalog yields only a warning; the catalog is
// open-world and new integrations must not be misclassified as invalid.
func (v *Validator) ValidateNode(n *domain.Node) NodeResult {
	if n == nil {
		return NodeResult{Errors: []string{"node is absent"}}
	}

	schema, ok := v.catalog.Lookup(n.Type)
	if !ok {
		return NodeResult{
			Valid:    true,
			Warnings: []string{fmt.Sprintf("no schema registered for node type %q", n.Type)},
		}
	}

	var result NodeResult

	for _, key := range schema.Required {
		if _, present := n.Parameters[key]; !present {
			result.Errors = append(result.Errors, fmt.Sprintf("missing required parameter %q", key))
		}
	}
	if len(schema.Required) > 0 && len(n.Parameters) == 0 {
		result.Errors = append(result.Errors, "parameter bag is empty but required parameters exist")
	}

	if schema.RequiresCredential {
		switch {
		case len(n.Credentials) == 0:
			result.Errors = append(result.Errors, "missing credentials configuration")
		case !n.HasCredential(schema.CredentialKind):
			result.Errors = append(result.Errors, fmt.Sprintf("missing credential kind %q", schema.CredentialKind))
		}
	}

	if schema.ErrorHandlingRecommended && !n.HasErrorPolicy() {
		result.Warnings = append(result.Warnings, "error handling recommended but not configured")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateGraph aggregates per-node results and checks graph-level
// well-formedness: duplicate display names and connection referential
// integrity. It never panics; absent input degrades to a reported finding.
func (v *Validator) ValidateGraph(wf *domain.Workflow) GraphResult {
	if wf == nil {
		return GraphResult{Errors: []string{"workflow is absent"}}
	}

	result := GraphResult{Nodes: make(map[string]NodeResult, len(wf.Nodes))}

	names := make(map[string]bool, len(wf.Nodes))
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		key := n.Name
		if key == "" {
			key = fmt.Sprintf("node[%d]", i)
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s has no display name", key))
		}
		if names[key] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate node name %q", key))
		}
		names[key] = true

		nr := v.ValidateNode(n)
		result.Nodes[key] = nr
		result.Warnings = append(result.Warnings, prefix(key, nr.Warnings)...)
	}

	for source, pm := range wf.Connections {
		if !names[source] {
			result.Errors = append(result.Errors, fmt.Sprintf("connection source %q does not exist", source))
		}
		for _, outs := range pm {
			for _, links := range outs {
				for _, l := range links {
					if !names[l.Node] {
						result.Errors = append(result.Errors, fmt.Sprintf("connection target %q does not exist", l.Node))
					}
				}
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	for _, nr := range result.Nodes {
		if !nr.Valid {
			result.Valid = false
			break
		}
	}
	return result
}

func prefix(name string, findings []string) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, fmt.Sprintf("%s: %s", name, f))
	}
	return out
}
