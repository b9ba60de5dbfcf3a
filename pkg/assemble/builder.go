// Package assemble implements the deterministic, rule-based graph
// builder. Given a structured requirements record it composes canned
// sub-graphs in a fixed order, with no external calls: each stage appends
// nodes and connections, advances a layout cursor, and hands its exit
// node to the next stage as the connection source. The resulting graph
// structure is fully determined by the requirements; only node IDs are
// fresh on every build.
package assemble

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nvalerio/flowforge/pkg/domain"
)

// Layout constants: the cursor starts at the canvas origin the target
// editor uses and advances one column per stage; parallel branches offset
// vertically.
const (
	originX  = 240
	originY  = 300
	stepX    = 220
	stepY    = 150
	errRowDY = 400
)

// Builder assembles workflow graphs from requirements records.
type Builder struct {
	newID func() string
}

// Option configures a Builder.
type Option func(*Builder)

// WithIDFunc overrides node ID generation. Tests use this to make builds
// fully reproducible.
func WithIDFunc(fn func() string) Option {
	return func(b *Builder) { b.newID = fn }
}

// NewBuilder creates a builder. Node IDs default to fresh UUIDs.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{newID: uuid.NewString}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// cursor tracks the layout position for the next node.
type cursor struct {
	x, y int
}

func (c *cursor) advance() { c.x += stepX }

// Build composes a complete workflow from the requirements. It is pure
// assembly: no I/O, no collaborator calls, and the same requirements
// always yield the same graph shape.
func (b *Builder) Build(req Requirements) *domain.Workflow {
	nodes := []domain.Node{}
	conns := domain.ConnectionMap{}
	cur := cursor{x: originX, y: originY}
	complexity := ComplexityScore(req)

	trigger := b.triggerNode(req, &cur)
	nodes = append(nodes, trigger)
	last := trigger.Name

	if req.NeedsAuth {
		auth := b.authNode(&cur)
		nodes = append(nodes, auth)
		conns.Connect(last, auth.Name)
		last = auth.Name
	}

	if req.NeedsValidation {
		stage := b.validationFlow(&cur)
		nodes = append(nodes, stage.nodes...)
		conns.Merge(stage.conns)
		conns.Connect(last, stage.entry)
		last = stage.exit
	}

	if req.NeedsDuplicateCheck {
		stage := b.duplicateCheckFlow(req, &cur)
		nodes = append(nodes, stage.nodes...)
		conns.Merge(stage.conns)
		conns.Connect(last, stage.entry)
		last = stage.exit
	}

	if req.NeedsScoring {
		scoring := b.scoringNode(&cur)
		nodes = append(nodes, scoring)
		conns.Connect(last, scoring.Name)
		last = scoring.Name
	}

	if req.HasBranching || complexity > 6 {
		stage := b.branchingFlow(&cur)
		nodes = append(nodes, stage.nodes...)
		conns.Merge(stage.conns)
		conns.Connect(last, stage.entry)
		last = stage.exit
	}

	action := b.actionNode(req, &cur)
	nodes = append(nodes, action)
	conns.Connect(last, action.Name)
	last = action.Name

	if req.NeedsLogging || complexity > 5 {
		audit := b.auditNode(req, &cur)
		nodes = append(nodes, audit)
		conns.Connect(last, audit.Name)
		last = audit.Name
	}

	if req.NeedsNotification {
		notify := b.notificationNode(&cur)
		nodes = append(nodes, notify)
		conns.Connect(last, notify.Name)
	}

	if req.NeedsErrorHandling {
		stage := b.errorFlow(req)
		nodes = append(nodes, stage.nodes...)
		conns.Merge(stage.conns)
	}

	return &domain.Workflow{
		Name:        workflowName(req),
		Nodes:       nodes,
		Connections: conns,
		Active:      false,
		Settings:    domain.DefaultSettings(),
		Meta: map[string]any{
			"generatedBy": "flowforge",
			"complexity":  complexity,
			"nodeCount":   len(nodes),
		},
	}
}

// stage is the output of one composition step: its nodes, internal
// connections, and the names the neighbouring stages attach to.
type stage struct {
	nodes []domain.Node
	conns domain.ConnectionMap
	entry string
	exit  string
}

func workflowName(req Requirements) string {
	if req.Intent != "" {
		words := strings.Fields(req.Intent)
		if len(words) > 5 {
			words = words[:5]
		}
		return title(strings.Join(words, " ")) + " Workflow"
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = "manual"
	}
	action := "processing"
	if len(req.Outputs) > 0 {
		action = req.Outputs[0]
	}
	return title(trigger) + " to " + title(action) + " Workflow"
}

// title upper-cases the first letter of each space-separated word.
func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
