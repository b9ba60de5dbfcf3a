package ports

import "context"

// Query narrows a reference lookup. All fields are optional.
type Query struct {
	Intent       string
	Integrations []string
	Tier         string
	Limit        int
}

// Reference is a summarized prior workflow the synthesizer can pattern
// against. It carries no executable content.
type Reference struct {
	Name      string   `json:"name" yaml:"name"`
	Summary   string   `json:"summary" yaml:"summary"`
	NodeCount int      `json:"node_count" yaml:"node_count"`
	Patterns  []string `json:"patterns,omitempty" yaml:"patterns,omitempty"`
}

// Retriever looks up reference material for an intent. An empty result is
// a normal outcome, not an error; the pipeline also tolerates retrieval
// errors and proceeds without guidance.
type Retriever interface {
	Retrieve(ctx context.Context, q Query) ([]Reference, error)
}
