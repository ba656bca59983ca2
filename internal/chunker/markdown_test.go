package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeatlas/pkg/types"
)

// section returns a body paragraph comfortably above the minimum section size.
func section() string {
	return strings.Repeat("The gateway forwards each message to the correct room. ", 12)
}

func TestMarkdownChunk_ThreeSections(t *testing.T) {
	doc := "# Alpha\n" + section() + "\n\n" +
		"# Beta\n" + section() + "\n\n" +
		"# Gamma\n" + section() + "\n"

	chunks := NewMarkdown().Chunk(doc)

	require.Len(t, chunks, 3)
	assert.Equal(t, "Alpha", chunks[0].Title)
	assert.Equal(t, "Beta", chunks[1].Title)
	assert.Equal(t, "Gamma", chunks[2].Title)
	for _, c := range chunks {
		assert.Equal(t, types.ChunkSection, c.Kind)
		assert.Equal(t, 1, c.Level)
		assert.GreaterOrEqual(t, c.TokenEstimate(), MarkdownMinTokens)
	}
}

func TestMarkdownChunk_SmallDocSingleChunk(t *testing.T) {
	doc := "# Notes\nShort body here."

	chunks := NewMarkdown().Chunk(doc)

	// A sole section is never discarded, even below the minimum.
	require.Len(t, chunks, 1)
	assert.Equal(t, "Notes", chunks[0].Title)
	assert.Less(t, chunks[0].TokenEstimate(), MarkdownMinTokens)
}

func TestMarkdownChunk_NoHeaderDefaultTitle(t *testing.T) {
	chunks := NewMarkdown().Chunk("Just some prose with no header at all.")

	require.Len(t, chunks, 1)
	assert.Equal(t, DefaultSectionTitle, chunks[0].Title)
}

func TestMarkdownChunk_UndersizedTailMergesIntoPrevious(t *testing.T) {
	doc := "# Alpha\n" + section() + "\n\n# Beta\ntiny\n"

	chunks := NewMarkdown().Chunk(doc)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Alpha", chunks[0].Title)
	assert.Contains(t, chunks[0].Text, "tiny")
}

func TestMarkdownChunk_UndersizedFirstSectionHeld(t *testing.T) {
	doc := "# Intro\nshort\n# Main\n" + section() + "\n"

	chunks := NewMarkdown().Chunk(doc)

	// The undersized first section has no predecessor to merge into, so it
	// stays open and absorbs the next section.
	require.Len(t, chunks, 1)
	assert.Equal(t, "Intro", chunks[0].Title)
	assert.Contains(t, chunks[0].Text, "# Main")
}

func TestMarkdownChunk_OversizedSectionSplitsAtSentences(t *testing.T) {
	body := strings.Repeat("The gateway forwards each message to the correct room. ", 150)
	doc := "# Guide\n" + body + "\n"

	chunks := NewMarkdown().Chunk(doc)

	require.GreaterOrEqual(t, len(chunks), 2)
	for i, c := range chunks {
		assert.Equal(t, "Guide", c.Title)
		if i < len(chunks)-1 {
			assert.LessOrEqual(t, c.TokenEstimate(), MarkdownMaxTokens)
		}
	}
}

func TestMarkdownChunk_EmptyInput(t *testing.T) {
	assert.Empty(t, NewMarkdown().Chunk(""))
	assert.Empty(t, NewMarkdown().Chunk("\n\n\n"))
}

func TestPackSentences(t *testing.T) {
	text := "First sentence here. Second sentence here. Third one!"
	groups := packSentences(text, 5)

	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.NotEmpty(t, strings.TrimSpace(g))
	}

	// Small budget forces one sentence per group.
	assert.GreaterOrEqual(t, len(groups), 3)
}

func TestPackSentences_NoBoundaries(t *testing.T) {
	text := "no terminators at all just words"
	groups := packSentences(text, 5)
	require.Len(t, groups, 1)
	assert.Equal(t, text, groups[0])
}
