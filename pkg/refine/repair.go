package refine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nvalerio/flowforge/internal/logging"
	"github.com/nvalerio/flowforge/pkg/catalog"
	"github.com/nvalerio/flowforge/pkg/domain"
	"github.com/nvalerio/flowforge/pkg/validate"
)

// Default layout for nodes the synthesizer left unplaced. Matches the
// builder's canvas geometry.
const (
	repairOriginX = 240
	repairOriginY = 300
	repairStepX   = 220
	noteRowDY     = -180
)

// Repairer applies best-effort structural fixes to candidate graphs. Every
// pass degrades gracefully: Repair never returns an error and never leaves
// a graph worse than it found it. Repairing an already fully-populated
// graph a second time changes nothing.
type Repairer struct {
	catalog        *catalog.Catalog
	validator      *validate.Validator
	logger         *slog.Logger
	minAnnotations int
	newID          func() string
}

// RepairerOption configures a Repairer.
type RepairerOption func(*Repairer)

// WithRepairLogger sets the logger validation findings are reported to.
func WithRepairLogger(l *slog.Logger) RepairerOption {
	return func(r *Repairer) { r.logger = l }
}

// WithMinAnnotations sets the documentation floor the annotation pass
// fills toward.
func WithMinAnnotations(n int) RepairerOption {
	return func(r *Repairer) { r.minAnnotations = n }
}

// WithRepairIDFunc overrides ID generation for injected nodes.
func WithRepairIDFunc(fn func() string) RepairerOption {
	return func(r *Repairer) { r.newID = fn }
}

// NewRepairer creates a repairer over the given catalog.
func NewRepairer(c *catalog.Catalog, opts ...RepairerOption) *Repairer {
	r := &Repairer{
		catalog:        c,
		validator:      validate.New(c),
		logger:         logging.NewNop(),
		minAnnotations: 5,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Repair runs the fixed-order passes in place and returns the same graph.
// A nil graph is returned unchanged.
func (r *Repairer) Repair(wf *domain.Workflow) *domain.Workflow {
	if wf == nil {
		return nil
	}
	r.fillDefaults(wf)
	r.logFindings(wf)
	r.injectCredentials(wf)
	r.injectErrorPolicies(wf)
	r.addAnnotations(wf)
	if wf.Connections == nil {
		wf.Connections = domain.ConnectionMap{}
	}
	return wf
}

// fillDefaults supplies id, position, version, and an empty parameter bag
// where the synthesizer omitted them.
func (r *Repairer) fillDefaults(wf *domain.Workflow) {
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.ID == "" {
			n.ID = r.newID()
		}
		if n.TypeVersion == 0 {
			n.TypeVersion = domain.DefaultTypeVersion
		}
		if n.Parameters == nil {
			n.Parameters = map[string]any{}
		}
		if n.Position == [2]int{} {
			n.Position = [2]int{repairOriginX + i*repairStepX, repairOriginY}
		}
	}
}

// logFindings runs the structural validator and reports what it found.
// Findings never block repair.
func (r *Repairer) logFindings(wf *domain.Workflow) {
	res := r.validator.ValidateGraph(wf)
	for _, e := range res.Errors {
		r.logger.Warn("candidate has structural error", "finding", e)
	}
	for _, w := range res.Warnings {
		r.logger.Debug("candidate warning", "finding", w)
	}
}

// injectCredentials adds a placeholder binding of the catalog's kind to
// every credential-requiring node that lacks one. The placeholder ID is
// resolved by the importing system.
func (r *Repairer) injectCredentials(wf *domain.Workflow) {
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if !r.catalog.RequiresCredential(n.Type) {
			continue
		}
		kind := r.catalog.CredentialKind(n.Type)
		if kind == "" || n.HasCredential(kind) {
			continue
		}
		if n.Credentials == nil {
			n.Credentials = map[string]domain.Credential{}
		}
		n.Credentials[kind] = domain.Credential{
			ID:   "{{CREDENTIAL_ID}}",
			Name: kind + " account",
		}
	}
}

// injectErrorPolicies sets a continue-and-retry policy on nodes whose type
// recommends error handling and which carry none.
func (r *Repairer) injectErrorPolicies(wf *domain.Workflow) {
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.HasErrorPolicy() || !r.catalog.ErrorHandlingRecommended(n.Type) {
			continue
		}
		n.OnError = domain.OnErrorContinue
		n.RetryOnFail = true
		n.MaxTries = 3
	}
}

// addAnnotations places sticky notes near detected workflow sections until
// the documentation floor is met. Each anchor node gets at most one note,
// keyed by name, so repeated repairs add nothing once the floor is
// reached or the anchors are exhausted.
func (r *Repairer) addAnnotations(wf *domain.Workflow) {
	have := wf.Annotations()
	if have >= r.minAnnotations {
		return
	}

	existing := make(map[string]bool, len(wf.Nodes))
	for i := range wf.Nodes {
		existing[wf.Nodes[i].Name] = true
	}

	var notes []domain.Node
	for _, anchor := range r.sectionAnchors(wf) {
		if have+len(notes) >= r.minAnnotations {
			break
		}
		name := "Note: " + anchor.name
		if existing[name] {
			continue
		}
		existing[name] = true
		notes = append(notes, domain.Node{
			ID:          r.newID(),
			Name:        name,
			Type:        domain.TypeStickyNote,
			TypeVersion: domain.DefaultTypeVersion,
			Position:    [2]int{anchor.pos[0], anchor.pos[1] + noteRowDY},
			Parameters: map[string]any{
				"content": fmt.Sprintf("## %s\n%s", anchor.section, anchor.text),
				"width":   200,
				"height":  120,
			},
		})
	}
	wf.Nodes = append(wf.Nodes, notes...)
}

type anchor struct {
	name    string
	section string
	text    string
	pos     [2]int
}

// sectionAnchors lists annotation targets in priority order: entry points,
// branch points, merges, credentialed integrations, then the remaining
// executable nodes.
func (r *Repairer) sectionAnchors(wf *domain.Workflow) []anchor {
	var entries, branches, merges, integrations, rest []anchor
	for i := range wf.Nodes {
		n := &wf.Nodes[i]
		if n.IsAnnotation() {
			continue
		}
		a := anchor{name: n.Name, pos: n.Position}
		switch {
		case n.IsSource():
			a.section, a.text = "Entry", "Workflow starts here."
			entries = append(entries, a)
		case n.Type == domain.TypeIf || n.Type == domain.TypeSwitch:
			a.section, a.text = "Branching", "Flow splits based on the upstream result."
			branches = append(branches, a)
		case n.Type == domain.TypeMerge:
			a.section, a.text = "Merge", "Parallel paths reconverge here."
			merges = append(merges, a)
		case len(n.Credentials) > 0:
			a.section, a.text = "Integration", "Talks to an external service."
			integrations = append(integrations, a)
		default:
			a.section, a.text = "Processing", "Transforms the data in flight."
			rest = append(rest, a)
		}
	}
	out := make([]anchor, 0, len(wf.Nodes))
	out = append(out, entries...)
	out = append(out, branches...)
	out = append(out, merges...)
	out = append(out, integrations...)
	out = append(out, rest...)
	return out
}
