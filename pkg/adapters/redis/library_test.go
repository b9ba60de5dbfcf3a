package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/nvalerio/flowforge/pkg/adapters/redis"
	"github.com/nvalerio/flowforge/pkg/ports"
)

func newTestLibrary(t *testing.T) (*adapter.Library, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return adapter.NewLibrary(client), mr
}

func TestLibraryPutRetrieveRoundTrip(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()

	err := lib.Put(ctx, ports.Reference{
		Name:      "Invoice Sync",
		Summary:   "pulls invoices nightly and syncs them to the ledger",
		NodeCount: 18,
		Patterns:  []string{"schedule", "postgres"},
	})
	require.NoError(t, err)

	refs, err := lib.Retrieve(ctx, ports.Query{Intent: "sync invoices"})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Invoice Sync", refs[0].Name)
	assert.Equal(t, 18, refs[0].NodeCount)
	assert.Equal(t, []string{"schedule", "postgres"}, refs[0].Patterns)
}

func TestLibraryRetrieveFiltersAndRanks(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.Put(ctx, ports.Reference{
		Name: "Alerting Fanout", Summary: "routes alerts to slack channels", Patterns: []string{"slack"},
	}))
	require.NoError(t, lib.Put(ctx, ports.Reference{
		Name: "Nightly Backup", Summary: "copies database snapshots to storage", Patterns: []string{"postgres"},
	}))

	refs, err := lib.Retrieve(ctx, ports.Query{Intent: "alert the team", Integrations: []string{"slack"}})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Alerting Fanout", refs[0].Name)
}

func TestLibraryPutReplaces(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.Put(ctx, ports.Reference{Name: "Digest", Summary: "digest version one"}))
	require.NoError(t, lib.Put(ctx, ports.Reference{Name: "Digest", Summary: "digest version two"}))

	refs, err := lib.Retrieve(ctx, ports.Query{Intent: "digest"})
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "digest version two", refs[0].Summary)
}

func TestLibraryDelete(t *testing.T) {
	lib, _ := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.Put(ctx, ports.Reference{Name: "Ephemeral", Summary: "ephemeral flow"}))
	require.NoError(t, lib.Delete(ctx, "Ephemeral"))

	refs, err := lib.Retrieve(ctx, ports.Query{Intent: "ephemeral"})
	require.NoError(t, err)
	assert.Empty(t, refs)

	// Deleting again is a no-op.
	assert.NoError(t, lib.Delete(ctx, "Ephemeral"))
}

func TestLibraryExpiredValueIsSkipped(t *testing.T) {
	lib, mr := newTestLibrary(t)
	ctx := context.Background()

	require.NoError(t, lib.Put(ctx, ports.Reference{Name: "Stale", Summary: "stale reference data"}))

	// Simulate an evicted value whose index entry lingers.
	mr.Del("flowforge:ref:Stale")

	refs, err := lib.Retrieve(ctx, ports.Query{Intent: "stale reference"})
	require.NoError(t, err)
	assert.Empty(t, refs)
}
