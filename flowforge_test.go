package flowforge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalerio/flowforge"
	"github.com/nvalerio/flowforge/pkg/assemble"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/ports"
	"github.com/nvalerio/flowforge/pkg/refine"
	"github.com/nvalerio/flowforge/pkg/score"
)

func TestNewWiresComponents(t *testing.T) {
	eng := flowforge.New()
	require.NotNil(t, eng.Catalog)
	require.NotNil(t, eng.Builder)
	require.NotNil(t, eng.Validator)
	require.NotNil(t, eng.Scorer)
	require.NotNil(t, eng.Repairer)
	assert.Equal(t, 80, eng.Scorer.Config().Threshold)
}

func TestEngineBuildRepairScore(t *testing.T) {
	eng := flowforge.New()

	req, err := assemble.Decode(map[string]any{
		"trigger":              "webhook",
		"needs_validation":     true,
		"needs_error_handling": true,
		"outputs":              []string{"slack"},
	})
	require.NoError(t, err)

	wf := eng.Repairer.Repair(eng.Builder.Build(req))
	require.NotNil(t, wf)

	// Repair backfills credentials for every credential-requiring node.
	slack := wf.NodeByName("Post to Slack")
	require.NotNil(t, slack)
	assert.True(t, slack.HasCredential("slackApi"))

	findings := eng.Validator.ValidateGraph(wf)
	assert.Empty(t, findings.Errors)

	report := eng.Scorer.Score(wf, score.TierLight)
	assert.Greater(t, report.Score, 0)
	assert.NotEmpty(t, report.Grade)
}

func TestWithScoreConfigPropagates(t *testing.T) {
	cfg := score.DefaultConfig()
	cfg.Threshold = 50
	cfg.MinAnnotations = 2

	eng := flowforge.New(flowforge.WithScoreConfig(cfg))
	assert.Equal(t, 50, eng.Scorer.Config().Threshold)

	// The repairer inherits the annotation floor: a small graph gets two
	// notes, not five.
	wf := &domain.Workflow{Nodes: []domain.Node{
		{Name: "Start", Type: domain.TypeManualTrigger},
		{Name: "Step", Type: domain.TypeSet},
		{Name: "Other", Type: domain.TypeSet},
	}}
	eng.Repairer.Repair(wf)
	assert.Equal(t, 2, wf.Annotations())
}

type staticSynth struct{ wf *domain.Workflow }

func (s staticSynth) Synthesize(context.Context, ports.Instruction) (*domain.Workflow, error) {
	return s.wf, nil
}

func TestEnginePipelineUsesEngineScorer(t *testing.T) {
	cfg := score.DefaultConfig()
	cfg.Threshold = 1

	eng := flowforge.New(flowforge.WithScoreConfig(cfg))
	wf := &domain.Workflow{Nodes: []domain.Node{
		{Name: "Start", Type: domain.TypeManualTrigger},
		{Name: "Step", Type: domain.TypeSet},
	}, Connections: domain.ConnectionMap{}}
	wf.Connections.Connect("Start", "Step")

	res := eng.Pipeline(staticSynth{wf: wf}).Generate(context.Background(), refine.Request{Intent: "tiny"})
	assert.Equal(t, refine.StatusAccepted, res.Status)
	assert.Equal(t, 1, res.AttemptsUsed)
}
