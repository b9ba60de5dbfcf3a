package refine

import (
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/score"
)

// Status is the terminal state of a pipeline run.
type Status string

const (
	// StatusAccepted means a candidate met the acceptance threshold.
	StatusAccepted Status = "accepted"
	// StatusExhausted means the attempt budget ran out (or the run was
	// cancelled); the result carries the best candidate seen, if any.
	StatusExhausted Status = "exhausted"
)

// Request describes one pipeline run.
type Request struct {
	Intent       string   `json:"intent" yaml:"intent"`
	Tier         string   `json:"tier,omitempty" yaml:"tier,omitempty"`
	Integrations []string `json:"integrations,omitempty" yaml:"integrations,omitempty"`
	// Context is optional free-text guidance passed through to the
	// synthesis instruction verbatim.
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Result is the outcome of a pipeline run. Every run produces one; there
// is no error path out of Generate.
type Result struct {
	// Workflow is the best candidate seen, nil when no attempt produced
	// one.
	Workflow *domain.Workflow `json:"workflow"`
	// Report is the quality verdict for Workflow, nil alongside it.
	Report       *score.Report `json:"report,omitempty"`
	AttemptsUsed int           `json:"attemptsUsed"`
	ThresholdMet bool          `json:"thresholdMet"`
	Status       Status        `json:"status"`
}
