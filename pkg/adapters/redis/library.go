// Package redis provides a Redis-backed reference library for sharing
// workflow templates across pipeline instances.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"

	"github.com/nvalerio/flowforge/pkg/adapters/memory"
	"github.com/nvalerio/flowforge/pkg/ports"
)

const defaultPrefix = "flowforge:"

// Library implements ports.Retriever over Redis. References are stored as
// JSON values under a key prefix, with a set index of known names.
// Relevance filtering happens client-side with the same rules as the
// in-memory library.
type Library struct {
	client *backend.Client
	prefix string
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithPrefix overrides the key prefix. Useful when several libraries share
// one Redis database.
func WithPrefix(prefix string) LibraryOption {
	return func(l *Library) { l.prefix = prefix }
}

// NewLibrary creates a library on an existing client.
func NewLibrary(client *backend.Client, opts ...LibraryOption) *Library {
	l := &Library{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) refKey(name string) string { return l.prefix + "ref:" + name }
func (l *Library) indexKey() string          { return l.prefix + "refs" }

// Put stores a reference, replacing any previous one with the same name.
func (l *Library) Put(ctx context.Context, ref ports.Reference) error {
	payload, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("marshal reference %q: %w", ref.Name, err)
	}
	if err := l.client.Set(ctx, l.refKey(ref.Name), payload, 0).Err(); err != nil {
		return fmt.Errorf("store reference %q: %w", ref.Name, err)
	}
	if err := l.client.SAdd(ctx, l.indexKey(), ref.Name).Err(); err != nil {
		return fmt.Errorf("index reference %q: %w", ref.Name, err)
	}
	return nil
}

// Delete removes a reference by name. Deleting an absent name is not an
// error.
func (l *Library) Delete(ctx context.Context, name string) error {
	if err := l.client.Del(ctx, l.refKey(name)).Err(); err != nil {
		return fmt.Errorf("delete reference %q: %w", name, err)
	}
	if err := l.client.SRem(ctx, l.indexKey(), name).Err(); err != nil {
		return fmt.Errorf("unindex reference %q: %w", name, err)
	}
	return nil
}

// Retrieve loads all indexed references and returns the most relevant,
// best first. Index entries whose value has expired or fails to decode are
// skipped, not fatal.
func (l *Library) Retrieve(ctx context.Context, q ports.Query) ([]ports.Reference, error) {
	names, err := l.client.SMembers(ctx, l.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	sort.Strings(names)

	type ranked struct {
		ref   ports.Reference
		score int
	}
	var hits []ranked
	for _, name := range names {
		raw, err := l.client.Get(ctx, l.refKey(name)).Bytes()
		if err == backend.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load reference %q: %w", name, err)
		}
		var ref ports.Reference
		if err := json.Unmarshal(raw, &ref); err != nil {
			continue
		}
		if s := memory.Relevance(ref, q); s > 0 {
			hits = append(hits, ranked{ref, s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	limit := q.Limit
	if limit <= 0 {
		limit = memory.DefaultLimit
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
