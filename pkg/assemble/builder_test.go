package assemble

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalerio/flowforge/pkg/domain"
)

// seqIDs returns an ID function that yields id-1, id-2, ... so graph
// builds are byte-reproducible in tests.
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestBuildMinimalManualFlow(t *testing.T) {
	b := NewBuilder(WithIDFunc(seqIDs()))

	wf := b.Build(Requirements{})
	require.NotNil(t, wf)

	// Bare requirements still produce a runnable skeleton: a trigger
	// wired to a default action.
	require.Len(t, wf.Nodes, 2)
	assert.Equal(t, "Manual Trigger", wf.Nodes[0].Name)
	assert.Equal(t, domain.TypeManualTrigger, wf.Nodes[0].Type)
	assert.Equal(t, "Send Email", wf.Nodes[1].Name)

	links := wf.Connections["Manual Trigger"][domain.LinkKindMain]
	require.Len(t, links, 1)
	require.Len(t, links[0], 1)
	assert.Equal(t, "Send Email", links[0][0].Node)

	assert.False(t, wf.Active)
	assert.Equal(t, "v1", wf.Settings["executionOrder"])
	assert.Equal(t, "flowforge", wf.Meta["generatedBy"])
	assert.Equal(t, 2, wf.Meta["nodeCount"])
}

func TestBuildTriggerSelection(t *testing.T) {
	tests := []struct {
		trigger  string
		wantName string
		wantType string
	}{
		{"webhook", "Webhook Trigger", domain.TypeWebhook},
		{"schedule", "Schedule Trigger", domain.TypeScheduleTrigger},
		{"email", "Email Trigger", domain.TypeEmailTrigger},
		{"manual", "Manual Trigger", domain.TypeManualTrigger},
		{"", "Manual Trigger", domain.TypeManualTrigger},
	}
	for _, tt := range tests {
		t.Run("trigger="+tt.trigger, func(t *testing.T) {
			wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{Trigger: tt.trigger})
			require.NotEmpty(t, wf.Nodes)
			assert.Equal(t, tt.wantName, wf.Nodes[0].Name)
			assert.Equal(t, tt.wantType, wf.Nodes[0].Type)
			assert.True(t, wf.Nodes[0].IsSource())
		})
	}
}

func TestBuildWebhookTriggerParameters(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		Trigger:     "webhook",
		WebhookPath: "leads/incoming",
	})

	trigger := wf.NodeByName("Webhook Trigger")
	require.NotNil(t, trigger)
	assert.Equal(t, "POST", trigger.Parameters["httpMethod"])
	assert.Equal(t, "leads/incoming", trigger.Parameters["path"])
	assert.NotEmpty(t, trigger.WebhookID)
}

func TestBuildValidationBranch(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		NeedsValidation: true,
	})

	ifNode := wf.NodeByName("Is Valid?")
	require.NotNil(t, ifNode)
	require.NotNil(t, wf.NodeByName("Validate Data"))
	require.NotNil(t, wf.NodeByName("Log Validation Error"))

	ports := wf.Connections["Is Valid?"][domain.LinkKindMain]
	require.Len(t, ports, 2)
	// True output continues the main path, false output hits the sink.
	assert.Equal(t, "Send Email", ports[0][0].Node)
	assert.Equal(t, "Log Validation Error", ports[1][0].Node)

	// The sink sits one row below the IF node.
	sink := wf.NodeByName("Log Validation Error")
	assert.Equal(t, ifNode.Position[1]+stepY, sink.Position[1])
}

func TestBuildBranchingFansOutAndReconverges(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		HasBranching: true,
	})

	sw := wf.NodeByName("Route by Priority")
	require.NotNil(t, sw)
	ports := wf.Connections["Route by Priority"][domain.LinkKindMain]
	require.Len(t, ports, 3)
	assert.Equal(t, "High Priority Processing", ports[0][0].Node)
	assert.Equal(t, "Medium Priority Processing", ports[1][0].Node)
	assert.Equal(t, "Low Priority Processing", ports[2][0].Node)

	for _, lane := range []string{"High Priority Processing", "Medium Priority Processing", "Low Priority Processing"} {
		links := wf.Connections[lane][domain.LinkKindMain]
		require.Len(t, links, 1, lane)
		assert.Equal(t, "Merge Paths", links[0][0].Node, lane)
	}

	high := wf.NodeByName("High Priority Processing")
	low := wf.NodeByName("Low Priority Processing")
	assert.Equal(t, sw.Position[1]-stepY, high.Position[1])
	assert.Equal(t, sw.Position[1]+stepY, low.Position[1])
}

func TestBuildBranchingImpliedByComplexity(t *testing.T) {
	// No explicit branching flag, but the feature mix pushes the
	// complexity score past the threshold that forces a routing stage.
	req := Requirements{
		Trigger:            "webhook",
		NeedsValidation:    true,
		NeedsScoring:       true,
		HasLoops:           true,
		NeedsErrorHandling: true,
	}
	require.Greater(t, ComplexityScore(req), 6)

	wf := NewBuilder(WithIDFunc(seqIDs())).Build(req)
	assert.NotNil(t, wf.NodeByName("Route by Priority"))
	assert.NotNil(t, wf.NodeByName("Merge Paths"))
}

func TestBuildErrorFlowPlacement(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		NeedsErrorHandling: true,
		NeedsErrorAlerts:   true,
	})

	trigger := wf.NodeByName("Error Trigger")
	logNode := wf.NodeByName("Log Error Details")
	alert := wf.NodeByName("Alert Admin")
	require.NotNil(t, trigger)
	require.NotNil(t, logNode)
	require.NotNil(t, alert)

	wantY := originY + errRowDY
	assert.Equal(t, wantY, trigger.Position[1])
	assert.Equal(t, wantY, logNode.Position[1])
	assert.Equal(t, wantY, alert.Position[1])

	assert.Equal(t, "Log Error Details", wf.Connections["Error Trigger"][domain.LinkKindMain][0][0].Node)
	assert.Equal(t, "Alert Admin", wf.Connections["Log Error Details"][domain.LinkKindMain][0][0].Node)

	// The error sub-graph is reachable only from its own trigger.
	assert.False(t, wf.Connections.Targets()["Error Trigger"])
}

func TestBuildErrorFlowWithoutAlerts(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		NeedsErrorHandling: true,
	})
	assert.NotNil(t, wf.NodeByName("Error Trigger"))
	assert.NotNil(t, wf.NodeByName("Log Error Details"))
	assert.Nil(t, wf.NodeByName("Alert Admin"))
}

func TestBuildActionSelection(t *testing.T) {
	tests := []struct {
		output   string
		wantName string
		wantCred string
	}{
		{"email", "Send Email", "gmailOAuth2"},
		{"slack", "Post to Slack", "slackApi"},
		{"database", "Save to Database", "postgres"},
		{"webhook", "Send to Webhook", ""},
	}
	for _, tt := range tests {
		t.Run("output="+tt.output, func(t *testing.T) {
			wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{Outputs: []string{tt.output}})
			n := wf.NodeByName(tt.wantName)
			require.NotNil(t, n)
			if tt.wantCred != "" {
				assert.True(t, n.HasCredential(tt.wantCred))
				assert.Equal(t, "{{CREDENTIAL_ID}}", n.Credentials[tt.wantCred].ID)
			} else {
				assert.Empty(t, n.Credentials)
			}
		})
	}
}

func TestBuildDatabaseKindFollowsRequirements(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		Database:            "mysql",
		NeedsDuplicateCheck: true,
	})
	check := wf.NodeByName("Check for Duplicates")
	require.NotNil(t, check)
	assert.Equal(t, domain.TypeMySQL, check.Type)
	assert.True(t, check.HasCredential("mySql"))
}

func TestBuildLinearChainIsFullyConnected(t *testing.T) {
	wf := NewBuilder(WithIDFunc(seqIDs())).Build(Requirements{
		Trigger:             "webhook",
		NeedsAuth:           true,
		NeedsValidation:     true,
		NeedsDuplicateCheck: true,
		NeedsScoring:        true,
		NeedsLogging:        true,
		NeedsNotification:   true,
		NeedsErrorHandling:  true,
		Outputs:             []string{"slack"},
	})

	targets := wf.Connections.Targets()
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.IsSource() {
			continue
		}
		// Error-branch sinks are targets too; every non-entry node
		// must be reachable.
		assert.True(t, targets[n.Name], "node %q has no inbound connection", n.Name)
	}
}

func TestBuildIsDeterministicUnderFixedIDs(t *testing.T) {
	req := Requirements{
		Trigger:            "schedule",
		NeedsScoring:       true,
		HasBranching:       true,
		NeedsErrorHandling: true,
	}
	a := NewBuilder(WithIDFunc(seqIDs())).Build(req)
	b := NewBuilder(WithIDFunc(seqIDs())).Build(req)
	assert.Equal(t, a, b)
}

func TestWorkflowName(t *testing.T) {
	tests := []struct {
		name string
		req  Requirements
		want string
	}{
		{"from intent", Requirements{Intent: "sync leads to crm"}, "Sync Leads To Crm Workflow"},
		{"intent truncated", Requirements{Intent: "one two three four five six seven"}, "One Two Three Four Five Workflow"},
		{"from trigger and output", Requirements{Trigger: "webhook", Outputs: []string{"slack"}}, "Webhook To Slack Workflow"},
		{"all defaults", Requirements{}, "Manual To Processing Workflow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflowName(tt.req))
		})
	}
}
