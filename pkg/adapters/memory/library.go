// Package memory provides an in-memory reference library. It is the
// default retriever for tests and the CLI, and the behavioral model for
// the redis-backed library.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/nvalerio/flowforge/pkg/ports"
)

// DefaultLimit caps how many references a single lookup returns when the
// query does not say.
const DefaultLimit = 3

// Library implements ports.Retriever over an in-memory slice.
// Safe for concurrent use.
type Library struct {
	mu   sync.RWMutex
	refs []ports.Reference
}

// NewLibrary creates a library seeded with the given references. Later
// entries replace earlier ones with the same name.
func NewLibrary(refs ...ports.Reference) *Library {
	l := &Library{}
	for _, ref := range refs {
		_ = l.Put(context.Background(), ref)
	}
	return l
}

// Put adds or replaces a reference by name. The context and error exist
// to match the persistent library's signature; this implementation never
// fails.
func (l *Library) Put(ctx context.Context, ref ports.Reference) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.refs {
		if l.refs[i].Name == ref.Name {
			l.refs[i] = ref
			return nil
		}
	}
	l.refs = append(l.refs, ref)
	return nil
}

// Retrieve returns the references most relevant to the query, best first.
// An empty library or a query nothing matches yields an empty result, not
// an error.
func (l *Library) Retrieve(ctx context.Context, q ports.Query) ([]ports.Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	type ranked struct {
		ref   ports.Reference
		score int
	}
	var hits []ranked
	for _, ref := range l.refs {
		if s := Relevance(ref, q); s > 0 {
			hits = append(hits, ranked{ref, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]ports.Reference, len(hits))
	for i, h := range hits {
		out[i] = h.ref
	}
	return out, nil
}

// Relevance scores how well a reference matches a query. Zero means no
// match. Shared verbatim by the redis library, which filters client-side.
func Relevance(ref ports.Reference, q ports.Query) int {
	score := 0
	intent := strings.ToLower(q.Intent)
	for _, word := range strings.Fields(intent) {
		if len(word) < 4 {
			continue
		}
		if strings.Contains(strings.ToLower(ref.Name), word) ||
			strings.Contains(strings.ToLower(ref.Summary), word) {
			score += 2
		}
	}
	for _, integ := range q.Integrations {
		for _, p := range ref.Patterns {
			if strings.EqualFold(integ, p) {
				score += 3
			}
		}
	}
	return score
}

// Builtin returns a library seeded with a small set of common automation
// shapes, enough for unguided local runs to produce useful instructions.
func Builtin() *Library {
	return NewLibrary(
		ports.Reference{
			Name:      "Lead Intake and Scoring",
			Summary:   "webhook intake, field validation, duplicate check, weighted scoring, priority routing to slack and email",
			NodeCount: 27,
			Patterns:  []string{"webhook", "slack", "gmail", "postgres", "branching"},
		},
		ports.Reference{
			Name:      "Scheduled Report Digest",
			Summary:   "scheduled pull from a database, aggregation, markdown digest posted to slack",
			NodeCount: 16,
			Patterns:  []string{"schedule", "postgres", "slack"},
		},
		ports.Reference{
			Name:      "Inbox Order Processing",
			Summary:   "email intake, attachment parsing, order record upsert, confirmation email, error alerting",
			NodeCount: 31,
			Patterns:  []string{"email", "gmail", "mysql", "error-handling"},
		},
	)
}
