package assemble

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Requirements is the flat record the builder composes a workflow from.
// It is decodable from YAML, JSON, or a plain map with the snake_case
// keys the intake surface produces.
type Requirements struct {
	// Trigger selects the entry stage: webhook, schedule, email, or manual.
	Trigger           string `mapstructure:"trigger" yaml:"trigger" json:"trigger"`
	WebhookPath       string `mapstructure:"webhook_path" yaml:"webhook_path" json:"webhook_path,omitempty"`
	ScheduleFrequency string `mapstructure:"schedule_frequency" yaml:"schedule_frequency" json:"schedule_frequency,omitempty"`

	// Database selects the storage flavor for duplicate checks and audit
	// logging: postgres (default) or mysql.
	Database string `mapstructure:"database" yaml:"database" json:"database,omitempty"`

	Integrations []string `mapstructure:"integrations" yaml:"integrations" json:"integrations,omitempty"`
	Outputs      []string `mapstructure:"outputs" yaml:"outputs" json:"outputs,omitempty"`
	Intent       string   `mapstructure:"intent" yaml:"intent" json:"intent,omitempty"`

	NeedsAuth           bool `mapstructure:"needs_auth" yaml:"needs_auth" json:"needs_auth,omitempty"`
	NeedsValidation     bool `mapstructure:"needs_validation" yaml:"needs_validation" json:"needs_validation,omitempty"`
	NeedsDuplicateCheck bool `mapstructure:"needs_duplicate_check" yaml:"needs_duplicate_check" json:"needs_duplicate_check,omitempty"`
	NeedsTransformation bool `mapstructure:"needs_transformation" yaml:"needs_transformation" json:"needs_transformation,omitempty"`
	NeedsScoring        bool `mapstructure:"needs_scoring" yaml:"needs_scoring" json:"needs_scoring,omitempty"`
	HasBranching        bool `mapstructure:"has_branching" yaml:"has_branching" json:"has_branching,omitempty"`
	HasLoops            bool `mapstructure:"has_loops" yaml:"has_loops" json:"has_loops,omitempty"`
	NeedsLogging        bool `mapstructure:"needs_logging" yaml:"needs_logging" json:"needs_logging,omitempty"`
	NeedsNotification   bool `mapstructure:"needs_notification" yaml:"needs_notification" json:"needs_notification,omitempty"`
	NeedsErrorHandling  bool `mapstructure:"needs_error_handling" yaml:"needs_error_handling" json:"needs_error_handling,omitempty"`
	NeedsErrorAlerts    bool `mapstructure:"needs_error_alerts" yaml:"needs_error_alerts" json:"needs_error_alerts,omitempty"`
	NeedsRetryLogic     bool `mapstructure:"needs_retry_logic" yaml:"needs_retry_logic" json:"needs_retry_logic,omitempty"`
}

// Decode converts a flat requirements map into a Requirements record.
// Unrecognized keys are ignored; scalar types are coerced leniently so
// that "true"/1 style values from loosely typed intake surfaces work.
func Decode(raw map[string]any) (Requirements, error) {
	var req Requirements
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return req, fmt.Errorf("build requirements decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return req, fmt.Errorf("decode requirements: %w", err)
	}
	return req, nil
}

// ComplexityScore estimates how involved the composed workflow will be on
// a 1-10 scale. It is recorded in the workflow meta for downstream
// consumers; stages also consult it for the implicit branching/logging
// thresholds.
func ComplexityScore(req Requirements) int {
	c := 1
	if req.Trigger == "webhook" {
		c++
	}
	if req.NeedsAuth {
		c++
	}
	if req.NeedsValidation {
		c += 2
	}
	if req.NeedsDuplicateCheck {
		c += 2
	}
	if req.NeedsTransformation {
		c++
	}
	if req.NeedsScoring {
		c += 2
	}
	if req.HasBranching {
		c += 2
	}
	if req.HasLoops {
		c += 3
	}
	if req.NeedsErrorHandling {
		c += 2
	}
	if req.NeedsRetryLogic {
		c += 2
	}
	c += len(req.Outputs)
	if c > 10 {
		c = 10
	}
	return c
}
