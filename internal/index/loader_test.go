package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeatlas/internal/partition"
	"github.com/dshills/codeatlas/pkg/types"
)

func writeFullIndex(t *testing.T, dir string, entries []types.IndexEntry, strategy partition.Strategy) {
	t.Helper()

	run := types.RunMetadata{
		Project:     "demo",
		RunID:       "run-test",
		GeneratedAt: "2024-06-01T10:00:00Z",
		EntryCount:  len(entries),
	}
	w := NewWriter(dir, "demo")
	parts := partition.Split(entries, strategy)

	var refs []types.PartitionRef
	for _, part := range parts {
		ref, err := w.WritePartition(run, part)
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	require.NoError(t, w.WriteMain(run, entries, refs, partition.Rollups(entries), nil))
}

func loaderEntries() []types.IndexEntry {
	return []types.IndexEntry{
		sampleEntry("a1", "api", "2024-03-01T00:00:00Z"),
		sampleEntry("a2", "api", "2024-05-01T00:00:00Z"),
		sampleEntry("c1", "core", "2024-04-01T00:00:00Z"),
		sampleEntry("u1", "ui", "2024-02-01T00:00:00Z"),
	}
}

// byID indexes loaded entries for structural comparison; serialization
// reorders them, so the round-trip property is set equality.
func byID(entries []types.IndexEntry) map[string]types.IndexEntry {
	m := make(map[string]types.IndexEntry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

func TestRoundTrip_Inline(t *testing.T) {
	dir := t.TempDir()
	original := loaderEntries()
	writeFullIndex(t, dir, original, partition.StrategyNone)

	loaded, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, loaded, len(original))

	got := byID(loaded)
	for _, want := range original {
		found, ok := got[want.ID]
		require.True(t, ok, "entry %s missing after round trip", want.ID)
		assert.True(t, want.Equal(&found), "entry %s changed during round trip", want.ID)
	}
}

func TestRoundTrip_Partitioned(t *testing.T) {
	dir := t.TempDir()
	original := loaderEntries()
	writeFullIndex(t, dir, original, partition.StrategyDomain)

	// Main artifact is a manifest, not inline.
	mainPath, err := Find(dir)
	require.NoError(t, err)
	art, err := LoadArtifact(mainPath)
	require.NoError(t, err)
	assert.True(t, art.IsManifest())
	assert.Len(t, art.Partitions, 3)

	loaded, err := Load(mainPath)
	require.NoError(t, err)
	require.Len(t, loaded, len(original))

	got := byID(loaded)
	for _, want := range original {
		found, ok := got[want.ID]
		require.True(t, ok, "entry %s missing after round trip", want.ID)
		assert.True(t, want.Equal(&found), "entry %s changed during round trip", want.ID)
	}
}

func TestLoad_MissingPartitionSkippedWithWarning(t *testing.T) {
	dir := t.TempDir()
	original := loaderEntries()
	writeFullIndex(t, dir, original, partition.StrategyDomain)

	require.NoError(t, os.Remove(filepath.Join(dir, "demo-index-ui.yaml")))

	loaded, err := LoadDir(dir)
	require.NoError(t, err)

	// The ui entry is gone; everything else survives.
	assert.Len(t, loaded, 3)
	_, ok := byID(loaded)["u1"]
	assert.False(t, ok)
}

func TestLoad_MalformedPartitionIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFullIndex(t, dir, loaderEntries(), partition.StrategyDomain)

	broken := `entries:
  - id: "doc-x#c01"
    domain: "api"
    source: "x.ts"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo-index-api.yaml"), []byte(broken), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMissingField)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	_, err := Find(dir)
	assert.ErrorIs(t, err, types.ErrNoArtifact)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo-index.yaml"), []byte("entries:\n"), 0o644))
	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo-index.yaml", filepath.Base(path))

	// Partition artifacts do not match the main-artifact pattern.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo-index-api.yaml"), []byte("entries:\n"), 0o644))
	_, err = Find(dir)
	assert.NoError(t, err)

	// A second main artifact is ambiguous.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other-index.yaml"), []byte("entries:\n"), 0o644))
	_, err = Find(dir)
	assert.Error(t, err)
}

func TestFind_DomainNameEndingInIndex(t *testing.T) {
	dir := t.TempDir()
	entries := []types.IndexEntry{
		sampleEntry("a1", "api", "2024-03-01T00:00:00Z"),
		sampleEntry("s1", "search-index", "2024-04-01T00:00:00Z"),
	}
	writeFullIndex(t, dir, entries, partition.StrategyDomain)

	// The search-index partition artifact also matches the main-artifact
	// glob; its partition header must keep it out of Find's candidates.
	_, err := os.Stat(filepath.Join(dir, "demo-index-search-index.yaml"))
	require.NoError(t, err)

	path, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo-index.yaml", filepath.Base(path))

	loaded, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}
