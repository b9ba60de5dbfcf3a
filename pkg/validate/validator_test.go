package validate_test

import (
	"testing"

	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNode(t *testing.T) {
	v := validate.New(catalog.Default())

	t.Run("complete service node", func(t *testing.T) {
		n := &domain.Node{
			Name: "Post to Slack",
			Type: domain.TypeSlack,
			Parameters: map[string]any{
				"resource":  "message",
				"operation": "post",
			},
			Credentials: map[string]domain.Credential{
				"slackApi": {ID: "1", Name: "Slack account"},
			},
			OnError: domain.OnErrorContinue,
		}
		result := v.ValidateNode(n)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		n := &domain.Node{
			Type:       domain.TypeHTTPRequest,
			Parameters: map[string]any{"method": "GET"},
		}
		result := v.ValidateNode(n)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], `"url"`)
	})

	t.Run("empty bag with required keys", func(t *testing.T) {
		n := &domain.Node{Type: domain.TypeIf}
		result := v.ValidateNode(n)
		assert.False(t, result.Valid)
		// Both the missing key and the empty bag are reported.
		assert.Len(t, result.Errors, 2)
	})

	t.Run("wrong credential kind", func(t *testing.T) {
		n := &domain.Node{
			Type:       domain.TypeGmail,
			Parameters: map[string]any{"resource": "message", "operation": "send"},
			Credentials: map[string]domain.Credential{
				"imap": {ID: "1"},
			},
		}
		result := v.ValidateNode(n)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "gmailOAuth2")
	})

	t.Run("missing recommended error policy is a warning only", func(t *testing.T) {
		n := &domain.Node{
			Type:       domain.TypePostgres,
			Parameters: map[string]any{"operation": "insert"},
			Credentials: map[string]domain.Credential{
				"postgres": {ID: "1"},
			},
		}
		result := v.ValidateNode(n)
		assert.True(t, result.Valid)
		assert.Len(t, result.Warnings, 1)
	})

	t.Run("unknown type warns, stays valid", func(t *testing.T) {
		n := &domain.Node{Type: "n8n-nodes-community.newThing"}
		result := v.ValidateNode(n)
		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "newThing")
	})

	t.Run("nil node degrades to a finding", func(t *testing.T) {
		result := v.ValidateNode(nil)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})
}

func TestValidateGraph(t *testing.T) {
	v := validate.New(catalog.Default())

	t.Run("nil workflow never panics", func(t *testing.T) {
		result := v.ValidateGraph(nil)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("duplicate names are errors", func(t *testing.T) {
		wf := &domain.Workflow{
			Nodes: []domain.Node{
				{Name: "Step", Type: domain.TypeManualTrigger},
				{Name: "Step", Type: domain.TypeSet, Parameters: map[string]any{}},
			},
		}
		result := v.ValidateGraph(wf)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0], "duplicate node name")
	})

	t.Run("dangling target reported exactly once with its name", func(t *testing.T) {
		conns := domain.ConnectionMap{}
		conns.Connect("Trigger", "Ghost")
		wf := &domain.Workflow{
			Nodes: []domain.Node{
				{Name: "Trigger", Type: domain.TypeManualTrigger},
			},
			Connections: conns,
		}
		result := v.ValidateGraph(wf)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], `"Ghost"`)
	})

	t.Run("dangling source reported", func(t *testing.T) {
		conns := domain.ConnectionMap{}
		conns.Connect("Nowhere", "Trigger")
		wf := &domain.Workflow{
			Nodes:       []domain.Node{{Name: "Trigger", Type: domain.TypeManualTrigger}},
			Connections: conns,
		}
		result := v.ValidateGraph(wf)
		assert.False(t, result.Valid)
	})

	t.Run("node findings roll up", func(t *testing.T) {
		wf := &domain.Workflow{
			Nodes: []domain.Node{
				{Name: "Trigger", Type: domain.TypeManualTrigger},
				{Name: "Save", Type: domain.TypePostgres, Parameters: map[string]any{"operation": "insert"}},
			},
		}
		result := v.ValidateGraph(wf)
		assert.False(t, result.Valid, "missing credentials on Save")
		assert.False(t, result.Nodes["Save"].Valid)
		assert.True(t, result.Nodes["Trigger"].Valid)
	})
}
