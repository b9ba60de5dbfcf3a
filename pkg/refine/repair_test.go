package refine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
)

func testRepairer(opts ...RepairerOption) *Repairer {
	n := 0
	base := []RepairerOption{WithRepairIDFunc(func() string {
		n++
		return fmt.Sprintf("fix-%d", n)
	})}
	return NewRepairer(catalog.Default(), append(base, opts...)...)
}

func TestRepairNilGraph(t *testing.T) {
	assert.Nil(t, testRepairer().Repair(nil))
}

func TestRepairFillsStructuralDefaults(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Bare", Type: domain.TypeSet},
		},
	}
	testRepairer().Repair(wf)

	n := wf.NodeByName("Bare")
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, domain.DefaultTypeVersion, n.TypeVersion)
	assert.NotNil(t, n.Parameters)
	assert.NotEqual(t, [2]int{}, n.Position)
	assert.NotNil(t, wf.Connections)
}

func TestRepairInjectsCredentialPlaceholders(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Notify", Type: domain.TypeSlack},
			{Name: "Plain", Type: domain.TypeSet},
		},
	}
	testRepairer().Repair(wf)

	notify := wf.NodeByName("Notify")
	require.True(t, notify.HasCredential("slackApi"))
	assert.Equal(t, "{{CREDENTIAL_ID}}", notify.Credentials["slackApi"].ID)
	assert.Empty(t, wf.NodeByName("Plain").Credentials)
}

func TestRepairPreservesExistingCredentials(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{
				Name: "Notify", Type: domain.TypeSlack,
				Credentials: map[string]domain.Credential{
					"slackApi": {ID: "real-cred-7", Name: "Team Slack"},
				},
			},
		},
	}
	testRepairer().Repair(wf)
	assert.Equal(t, "real-cred-7", wf.NodeByName("Notify").Credentials["slackApi"].ID)
}

func TestRepairInjectsErrorPolicies(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Call API", Type: domain.TypeHTTPRequest},
			{Name: "Reshape", Type: domain.TypeSet},
		},
	}
	testRepairer().Repair(wf)

	call := wf.NodeByName("Call API")
	assert.Equal(t, domain.OnErrorContinue, call.OnError)
	assert.True(t, call.RetryOnFail)
	assert.Equal(t, 3, call.MaxTries)

	// Set nodes carry no recommendation; they stay policy-free.
	assert.False(t, wf.NodeByName("Reshape").HasErrorPolicy())
}

func TestRepairRespectsExistingErrorPolicy(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Call API", Type: domain.TypeHTTPRequest, OnError: domain.OnErrorStop},
		},
	}
	testRepairer().Repair(wf)

	call := wf.NodeByName("Call API")
	assert.Equal(t, domain.OnErrorStop, call.OnError)
	assert.False(t, call.RetryOnFail)
}

func TestRepairAddsAnnotationsUpToFloor(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Start", Type: domain.TypeManualTrigger},
			{Name: "Route", Type: domain.TypeSwitch},
			{Name: "Join", Type: domain.TypeMerge},
			{Name: "Notify", Type: domain.TypeSlack},
			{Name: "Reshape", Type: domain.TypeSet},
			{Name: "Reshape Again", Type: domain.TypeSet},
		},
	}
	testRepairer(WithMinAnnotations(3)).Repair(wf)

	require.Equal(t, 3, wf.Annotations())
	// Entry and branch sections are annotated before generic processing.
	entryNote := wf.NodeByName("Note: Start")
	require.NotNil(t, entryNote)
	assert.Contains(t, entryNote.Parameters["content"], "Entry")
	assert.NotNil(t, wf.NodeByName("Note: Route"))
	assert.NotNil(t, wf.NodeByName("Note: Join"))
	assert.Nil(t, wf.NodeByName("Note: Notify"))
}

func TestRepairAnnotationFloorAlreadyMet(t *testing.T) {
	wf := &domain.Workflow{
		Nodes: []domain.Node{
			{Name: "Start", Type: domain.TypeManualTrigger},
			{Name: "Docs 1", Type: domain.TypeStickyNote},
			{Name: "Docs 2", Type: domain.TypeStickyNote},
		},
	}
	testRepairer(WithMinAnnotations(2)).Repair(wf)
	assert.Equal(t, 2, wf.Annotations())
}

func TestRepairIdempotentOnPopulatedGraph(t *testing.T) {
	wf := &domain.Workflow{
		Name: "Stable",
		Nodes: []domain.Node{
			{Name: "Start", Type: domain.TypeManualTrigger},
			{Name: "Call API", Type: domain.TypeHTTPRequest},
			{Name: "Notify", Type: domain.TypeSlack},
		},
		Connections: domain.ConnectionMap{},
	}
	wf.Connections.Connect("Start", "Call API")
	wf.Connections.Connect("Call API", "Notify")

	r := testRepairer(WithMinAnnotations(3))
	first := r.Repair(wf)

	// Snapshot after the first pass, then repair again.
	again := testRepairer(WithMinAnnotations(3)).Repair(first)
	assert.Equal(t, first, again)

	// A third pass with the same repairer instance is also a no-op.
	before := len(first.Nodes)
	r.Repair(first)
	assert.Len(t, first.Nodes, before)
}
