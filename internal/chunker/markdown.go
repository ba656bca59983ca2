package chunker

import (
	"regexp"
	"strings"

	"github.com/dshills/codeatlas/pkg/types"
)

const (
	// MarkdownMinTokens is the minimum token estimate for an emitted section
	MarkdownMinTokens = 150
	// MarkdownMaxTokens is the maximum token estimate before an in-progress
	// section is split at sentence boundaries
	MarkdownMaxTokens = 800

	// DefaultSectionTitle is assigned to leading content before any header
	DefaultSectionTitle = "Document"
)

var (
	atxHeaderRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	sentenceRe  = regexp.MustCompile(`([.!?])\s+`)
)

// MarkdownChunker splits documentation text into header-delimited sections
// with size-aware merge and split behavior.
type MarkdownChunker struct {
	minTokens int
	maxTokens int
}

// NewMarkdown creates a MarkdownChunker with the default thresholds.
func NewMarkdown() *MarkdownChunker {
	return &MarkdownChunker{
		minTokens: MarkdownMinTokens,
		maxTokens: MarkdownMaxTokens,
	}
}

// mdAccumulator holds the in-progress section
type mdAccumulator struct {
	lines     []string
	title     string
	level     int
	startLine int // 1-based
}

func (a *mdAccumulator) text() string {
	return strings.Join(a.lines, "\n")
}

func (a *mdAccumulator) tokens() int {
	return types.EstimateTokens(a.text())
}

func (a *mdAccumulator) empty() bool {
	return len(a.lines) == 0 || strings.TrimSpace(a.text()) == ""
}

// Chunk splits the document body into sections. Front matter is assumed to
// have been stripped by the caller. Every document with non-empty content
// produces at least one chunk.
func (m *MarkdownChunker) Chunk(text string) []types.Chunk {
	lines := strings.Split(text, "\n")

	var chunks []types.Chunk
	acc := &mdAccumulator{title: DefaultSectionTitle, level: 0, startLine: 1}

	for i, line := range lines {
		lineNo := i + 1

		if match := atxHeaderRe.FindStringSubmatch(line); match != nil {
			if m.closeSection(&chunks, acc, lineNo-1) {
				acc = &mdAccumulator{title: match[2], level: len(match[1]), startLine: lineNo}
			} else {
				// Undersized first section with no predecessor: hold it and
				// keep accumulating under this header's title.
				if acc.empty() || acc.title == DefaultSectionTitle {
					acc.title = match[2]
					acc.level = len(match[1])
				}
				acc.lines = append(acc.lines, line)
			}
			continue
		}

		acc.lines = append(acc.lines, line)

		if acc.tokens() > m.maxTokens {
			m.splitOversized(&chunks, acc, lineNo)
		}
	}

	m.closeFinal(&chunks, acc, len(lines))
	return chunks
}

// closeSection closes the accumulation at a header boundary. Returns true
// when the accumulation was consumed (emitted or merged into a predecessor)
// and a fresh accumulation should begin; false when the undersized first
// section must be held open.
func (m *MarkdownChunker) closeSection(chunks *[]types.Chunk, acc *mdAccumulator, endLine int) bool {
	if acc.empty() {
		return true
	}

	if acc.tokens() >= m.minTokens {
		*chunks = append(*chunks, m.build(acc, endLine))
		return true
	}

	if len(*chunks) > 0 {
		mergeIntoLast(*chunks, acc.text(), endLine)
		return true
	}

	return false
}

// closeFinal handles the trailing accumulation at end of input. It is
// emitted when it meets the minimum, or when it is the only section of the
// document; otherwise it is merged into the previous chunk.
func (m *MarkdownChunker) closeFinal(chunks *[]types.Chunk, acc *mdAccumulator, endLine int) {
	if acc.empty() {
		return
	}

	if acc.tokens() >= m.minTokens || len(*chunks) == 0 {
		*chunks = append(*chunks, m.build(acc, endLine))
		return
	}

	mergeIntoLast(*chunks, acc.text(), endLine)
}

// splitOversized breaks the in-progress accumulation at sentence boundaries,
// emitting sub-chunks that fit within maxTokens. The final partial sentence
// run continues accumulating under the same header.
func (m *MarkdownChunker) splitOversized(chunks *[]types.Chunk, acc *mdAccumulator, curLine int) {
	groups := packSentences(acc.text(), m.maxTokens)
	if len(groups) < 2 {
		return
	}

	// Map character offsets onto the accumulated line span proportionally.
	span := curLine - acc.startLine
	total := len(acc.text())
	start := acc.startLine
	consumed := 0

	for _, g := range groups[:len(groups)-1] {
		consumed += len(g)
		end := acc.startLine + span*consumed/max(total, 1)
		if end < start {
			end = start
		}
		*chunks = append(*chunks, types.Chunk{
			Text:      g,
			Title:     acc.title,
			Kind:      types.ChunkSection,
			Level:     acc.level,
			StartLine: start,
			EndLine:   end,
		})
		start = end
	}

	rest := groups[len(groups)-1]
	acc.lines = strings.Split(rest, "\n")
	acc.startLine = start
}

func (m *MarkdownChunker) build(acc *mdAccumulator, endLine int) types.Chunk {
	if endLine < acc.startLine {
		endLine = acc.startLine
	}
	return types.Chunk{
		Text:      acc.text(),
		Title:     acc.title,
		Kind:      types.ChunkSection,
		Level:     acc.level,
		StartLine: acc.startLine,
		EndLine:   endLine,
	}
}

// mergeIntoLast appends undersized text to the most recent chunk,
// extending its end line.
func mergeIntoLast(chunks []types.Chunk, text string, endLine int) {
	last := &chunks[len(chunks)-1]
	last.Text = last.Text + "\n" + text
	if endLine > last.EndLine {
		last.EndLine = endLine
	}
}

// packSentences splits text on sentence boundaries (., !, ? followed by
// whitespace) and packs consecutive sentences into groups whose token
// estimate stays at or below maxTokens. The final group holds the
// remainder and may be arbitrarily small.
func packSentences(text string, maxTokens int) []string {
	locs := sentenceRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var sentences []string
	prev := 0
	for _, loc := range locs {
		// Keep the terminator with its sentence, drop the trailing whitespace.
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	if prev < len(text) {
		sentences = append(sentences, text[prev:])
	}

	var groups []string
	var cur strings.Builder
	for _, s := range sentences {
		candidate := s
		if cur.Len() > 0 {
			candidate = cur.String() + " " + s
		}
		if types.EstimateTokens(candidate) > maxTokens && cur.Len() > 0 {
			groups = append(groups, cur.String())
			cur.Reset()
			cur.WriteString(s)
			continue
		}
		cur.Reset()
		cur.WriteString(candidate)
	}
	if cur.Len() > 0 {
		groups = append(groups, cur.String())
	}

	return groups
}
