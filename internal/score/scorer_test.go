package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/codeatlas/pkg/types"
)

func docChunk(tokens int) types.Chunk {
	return types.Chunk{
		Text:      strings.Repeat("x", tokens*4),
		Kind:      types.ChunkSection,
		StartLine: 1,
		EndLine:   10,
	}
}

func TestImportance_ReadmeMaxesOut(t *testing.T) {
	e := types.IndexEntry{
		Domain:         "core",
		FreshnessScore: 1.0,
		Tags:           []string{"architecture", "documentation"},
	}

	// freshness 0.30 + readme 0.25 + critical domain 0.15 + docs content
	// 0.15 + critical tag 0.10 + substance 0.05 = 1.0
	got := Importance(e, "README.md", docChunk(150))
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestImportance_BaselineFloor(t *testing.T) {
	e := types.IndexEntry{
		Domain:         "misc",
		FreshnessScore: 0.2,
	}
	chunk := types.Chunk{
		Text:      strings.Repeat("x", 240), // 60 tokens, no substance bonus
		Kind:      types.ChunkExport,
		StartLine: 1,
		EndLine:   5,
	}

	// freshness 0.06 + baseline file 0.05 + baseline domain 0.05 +
	// baseline content 0.05 = 0.21
	got := Importance(e, "misc/helpers.ts", chunk)
	assert.InDelta(t, 0.21, got, 1e-9)
}

func TestImportance_DeclarationBeatsPlainCode(t *testing.T) {
	e := types.IndexEntry{Domain: "api", FreshnessScore: 0.5}

	declaration := types.Chunk{Text: strings.Repeat("x", 240), Kind: types.ChunkFunction}
	plain := types.Chunk{Text: strings.Repeat("x", 240), Kind: types.ChunkExport}

	assert.Greater(t,
		Importance(e, "src/api/users.ts", declaration),
		Importance(e, "src/api/users.ts", plain))
}

func TestImportance_FreshnessMovesScore(t *testing.T) {
	fresh := types.IndexEntry{Domain: "ui", FreshnessScore: 0.9}
	stale := types.IndexEntry{Domain: "ui", FreshnessScore: 0.3}
	chunk := docChunk(60)

	assert.Greater(t,
		Importance(fresh, "docs/ui/theme.md", chunk),
		Importance(stale, "docs/ui/theme.md", chunk))
}

func TestImportance_SpecFilename(t *testing.T) {
	e := types.IndexEntry{Domain: "specs", FreshnessScore: 0.5}
	chunk := docChunk(60)

	spec := Importance(e, "docs/specs/protocol-spec.md", chunk)
	other := Importance(e, "docs/specs/notes.md", chunk)
	assert.Greater(t, spec, other)
}

func TestImportance_AlwaysInRange(t *testing.T) {
	entries := []types.IndexEntry{
		{Domain: "core", FreshnessScore: 1.0, Tags: []string{"api", "websocket"}},
		{Domain: "misc", FreshnessScore: 0.2},
		{Domain: "architecture", FreshnessScore: 0.99, Tags: []string{"architecture"}},
	}
	paths := []string{"README.md", "src/index.ts", "docs/architecture/system-architecture.md"}

	for i, e := range entries {
		got := Importance(e, paths[i], docChunk(200))
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestTagSignal(t *testing.T) {
	assert.Equal(t, tagScoreCritical, tagSignal([]string{"websocket", "api"}))
	assert.Equal(t, tagScoreImportant, tagSignal([]string{"websocket"}))
	assert.Equal(t, 0.0, tagSignal([]string{"documentation"}))
	assert.Equal(t, 0.0, tagSignal(nil))
}

func TestFilenameSignal(t *testing.T) {
	assert.Equal(t, fileScoreReadme, filenameSignal("README.md"))
	assert.Equal(t, fileScoreReadme, filenameSignal("docs/index.md"))
	assert.Equal(t, fileScoreSpec, filenameSignal("docs/api-spec.md"))
	assert.Equal(t, fileScoreSrcIndex, filenameSignal("src/api/index.ts"))
	assert.Equal(t, fileScoreBaseline, filenameSignal("src/api/users.ts"))
	// index outside a source root carries no special weight.
	assert.Equal(t, fileScoreBaseline, filenameSignal("scripts/index.ts"))
}
