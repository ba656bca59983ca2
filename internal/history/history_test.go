package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := &StaticProvider{Revisions: map[string]time.Time{
		"src/api/users.ts": when,
	}}

	got, err := p.LastRevision(context.Background(), "src/api/users.ts")
	require.NoError(t, err)
	assert.Equal(t, when, got)

	_, err = p.LastRevision(context.Background(), "unknown.ts")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCachedProvider_StoresAndServes(t *testing.T) {
	root := t.TempDir()
	relPath := "notes.md"
	require.NoError(t, os.WriteFile(filepath.Join(root, relPath), []byte("content"), 0o644))

	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	inner := &StaticProvider{Revisions: map[string]time.Time{relPath: when}}

	cached, err := NewCachedProvider(inner, root, filepath.Join(root, ".cache", "revisions.db"))
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()

	got, err := cached.LastRevision(ctx, relPath)
	require.NoError(t, err)
	assert.Equal(t, when, got)

	// Remove the inner answer; the cache must serve the second query.
	delete(inner.Revisions, relPath)

	got, err = cached.LastRevision(ctx, relPath)
	require.NoError(t, err)
	assert.Equal(t, when, got)
}

func TestCachedProvider_StaleAfterFileChange(t *testing.T) {
	root := t.TempDir()
	relPath := "notes.md"
	absPath := filepath.Join(root, relPath)
	require.NoError(t, os.WriteFile(absPath, []byte("content"), 0o644))

	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	inner := &StaticProvider{Revisions: map[string]time.Time{relPath: when}}

	cached, err := NewCachedProvider(inner, root, filepath.Join(root, ".cache", "revisions.db"))
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()

	_, err = cached.LastRevision(ctx, relPath)
	require.NoError(t, err)

	// Push the file's mtime past the probe time; the cached value is no
	// longer trusted and the inner provider is consulted again.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(absPath, future, future))
	delete(inner.Revisions, relPath)

	_, err = cached.LastRevision(ctx, relPath)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCachedProvider_InnerErrorNotCached(t *testing.T) {
	root := t.TempDir()
	inner := &StaticProvider{Revisions: map[string]time.Time{}}

	cached, err := NewCachedProvider(inner, root, filepath.Join(root, ".cache", "revisions.db"))
	require.NoError(t, err)
	defer cached.Close()

	_, err = cached.LastRevision(context.Background(), "missing.ts")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWarm_StaticProviderIsNoOp(t *testing.T) {
	p := &StaticProvider{Revisions: map[string]time.Time{}}
	// Must return without querying anything; StaticProvider does not cache.
	Warm(context.Background(), p, []string{"a.ts", "b.ts"})
}

func TestWarm_CachedProviderPrefetches(t *testing.T) {
	root := t.TempDir()
	paths := []string{"a.md", "b.md"}
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	revisions := make(map[string]time.Time)
	for _, p := range paths {
		require.NoError(t, os.WriteFile(filepath.Join(root, p), []byte("x"), 0o644))
		revisions[p] = when
	}

	inner := &StaticProvider{Revisions: revisions}
	cached, err := NewCachedProvider(inner, root, filepath.Join(root, ".cache", "revisions.db"))
	require.NoError(t, err)
	defer cached.Close()

	Warm(context.Background(), cached, paths)

	// The cache now answers without the inner provider.
	inner.Revisions = map[string]time.Time{}
	for _, p := range paths {
		got, err := cached.LastRevision(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, when, got)
	}
}
