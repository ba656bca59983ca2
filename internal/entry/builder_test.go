package entry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeatlas/internal/metadata"
	"github.com/dshills/codeatlas/pkg/types"
)

func testSource() Source {
	return Source{
		Path:      "src/api/client.ts",
		Content:   "import express from 'express';",
		Timestamp: "2024-05-01T12:00:00Z",
		Freshness: 0.8,
	}
}

func testChunk() types.Chunk {
	return types.Chunk{
		Text: "function connect() {\n" +
			strings.Repeat("  // establishes the websocket connection to the backend\n", 6) +
			"}",
		Title:     "function connect",
		Kind:      types.ChunkFunction,
		StartLine: 1,
		EndLine:   8,
	}
}

func TestBuild_Success(t *testing.T) {
	b := NewBuilder()
	chunk := testChunk()

	e, reason := b.Build(chunk, 0, testSource())

	require.Equal(t, FilterNone, reason)
	assert.Equal(t, "doc-client#c01", e.ID)
	assert.Equal(t, "function connect", e.Title)
	assert.Equal(t, "api", e.Domain)
	assert.Equal(t, "src/api/client.ts", e.Source)
	assert.Equal(t, "2024-05-01T12:00:00Z", e.Timestamp)
	assert.Equal(t, 0.8, e.FreshnessScore)
	assert.Equal(t, types.StatusActive, e.Status)
	assert.Equal(t, types.EntryVersion, e.Version)
	assert.Equal(t, metadata.Fingerprint(chunk.Text), e.Provenance.SourceHash)
	assert.Contains(t, e.Tags, "typescript")
	assert.NoError(t, e.Validate())
}

func TestBuild_TokenWindowFiltersSmallChunk(t *testing.T) {
	b := NewBuilder()
	chunk := types.Chunk{
		Text:      strings.Repeat("x", 160), // 40 tokens, below the window
		Title:     "function tiny",
		Kind:      types.ChunkFunction,
		StartLine: 1,
		EndLine:   2,
	}

	_, reason := b.Build(chunk, 0, testSource())
	assert.Equal(t, FilterTokens, reason)
}

func TestBuild_TokenWindowFiltersOversizedChunk(t *testing.T) {
	b := NewBuilder()
	chunk := types.Chunk{
		Text:      strings.Repeat("x", 4000), // 1000 tokens, above the window
		Title:     "Huge",
		Kind:      types.ChunkSection,
		StartLine: 1,
		EndLine:   2,
	}

	_, reason := b.Build(chunk, 0, testSource())
	assert.Equal(t, FilterTokens, reason)
}

func TestBuild_FreshnessFloorFiltersStaleFile(t *testing.T) {
	b := NewBuilder()
	src := testSource()
	src.Freshness = 0.15

	_, reason := b.Build(testChunk(), 0, src)
	assert.Equal(t, FilterFreshness, reason)
}

func TestBuild_WholeFileChunkExemptFromWindow(t *testing.T) {
	b := NewBuilder()
	chunk := types.Chunk{
		Text:      `{"name": "demo"}`, // far below the window minimum
		Title:     "package.json",
		Kind:      types.ChunkWholeFile,
		StartLine: 1,
		EndLine:   1,
	}
	src := Source{
		Path:      "package.json",
		Content:   chunk.Text,
		Timestamp: "2024-05-01T12:00:00Z",
		Freshness: 0.9,
	}

	e, reason := b.Build(chunk, 0, src)

	require.Equal(t, FilterNone, reason)
	assert.Equal(t, "Configuration file: package.json", e.MiniSummary)
}

func TestBuild_EmptyTitleFallsBackToFileName(t *testing.T) {
	b := NewBuilder()
	chunk := testChunk()
	chunk.Title = ""

	e, reason := b.Build(chunk, 0, testSource())

	require.Equal(t, FilterNone, reason)
	assert.Equal(t, "client.ts", e.Title)
}

func TestEntryID(t *testing.T) {
	tests := []struct {
		path    string
		ordinal int
		want    string
	}{
		{"src/api/users.ts", 0, "doc-users#c01"},
		{"src/api/users.ts", 1, "doc-users#c02"},
		{"README.md", 9, "doc-readme#c10"},
		{"docs/My File (v2).md", 0, "doc-my-file--v2-#c01"},
		{"state_server.ts", 0, "doc-state_server#c01"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EntryID(tt.path, tt.ordinal))
		})
	}
}

func TestFilterReason_String(t *testing.T) {
	assert.Equal(t, "kept", FilterNone.String())
	assert.Equal(t, "token window", FilterTokens.String())
	assert.Equal(t, "low freshness", FilterFreshness.String())
}
