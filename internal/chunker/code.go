package chunker

import (
	"regexp"
	"strings"

	"github.com/dshills/codeatlas/pkg/types"
)

const (
	// CodeMinTokens is the minimum token estimate for an emitted code chunk
	CodeMinTokens = 50
	// CodeMaxTokens is the token estimate above which an in-progress chunk
	// is split backward at a blank or comment-only line
	CodeMaxTokens = 800
	// CodeSplitPrefixTokens is the minimum prefix size required before an
	// oversized chunk may be split
	CodeSplitPrefixTokens = 150
)

// Boundary patterns, checked in priority order. Declaration detection is
// line-local pattern matching, not a language grammar.
var (
	functionRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	classRe     = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	interfaceRe = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	typeAliasRe = regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=`)
	exportVarRe = regexp.MustCompile(`^\s*export\s+(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

	commentOnlyRe = regexp.MustCompile(`^\s*(//|/\*|\*|\*/)`)
)

// CodeChunker splits code text into declaration-delimited sections using
// brace-depth tracking. A boundary is recognized only at brace depth zero,
// so nested declarations inside a body never open a new chunk.
type CodeChunker struct {
	minTokens int
	maxTokens int
}

// NewCode creates a CodeChunker with the default thresholds.
func NewCode() *CodeChunker {
	return &CodeChunker{
		minTokens: CodeMinTokens,
		maxTokens: CodeMaxTokens,
	}
}

// codeAccumulator holds the in-progress chunk
type codeAccumulator struct {
	lines     []string
	kind      types.ChunkKind
	title     string
	startLine int
}

func (a *codeAccumulator) text() string {
	return strings.Join(a.lines, "\n")
}

func (a *codeAccumulator) tokens() int {
	return types.EstimateTokens(a.text())
}

func (a *codeAccumulator) empty() bool {
	return len(a.lines) == 0 || strings.TrimSpace(a.text()) == ""
}

// Chunk splits file text at top-level declaration boundaries.
func (c *CodeChunker) Chunk(text string) []types.Chunk {
	lines := strings.Split(text, "\n")

	var chunks []types.Chunk
	depth := 0
	acc := &codeAccumulator{kind: types.ChunkExport, startLine: 1}

	for i, line := range lines {
		lineNo := i + 1

		if depth == 0 {
			if kind, title, ok := matchBoundary(line, acc); ok {
				c.closeChunk(&chunks, acc, lineNo-1)
				acc = &codeAccumulator{kind: kind, title: title, startLine: lineNo}
			}
		}

		acc.lines = append(acc.lines, line)
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}

		if acc.tokens() > c.maxTokens {
			c.splitOversized(&chunks, acc)
		}
	}

	c.closeChunk(&chunks, acc, len(lines))
	return chunks
}

// matchBoundary recognizes a structural boundary on a single line,
// in priority order.
func matchBoundary(line string, acc *codeAccumulator) (types.ChunkKind, string, bool) {
	if m := functionRe.FindStringSubmatch(line); m != nil {
		return types.ChunkFunction, "function " + m[1], true
	}
	if m := classRe.FindStringSubmatch(line); m != nil {
		return types.ChunkClass, "class " + m[1], true
	}
	if m := interfaceRe.FindStringSubmatch(line); m != nil {
		return types.ChunkInterface, "interface " + m[1], true
	}
	if m := typeAliasRe.FindStringSubmatch(line); m != nil {
		return types.ChunkTypeAlias, "type " + m[1], true
	}
	// Top-level exported values only count as boundaries outside a
	// function or class body.
	if acc.kind != types.ChunkFunction && acc.kind != types.ChunkClass {
		if m := exportVarRe.FindStringSubmatch(line); m != nil {
			return types.ChunkExport, "export " + m[1], true
		}
	}
	return "", "", false
}

// closeChunk emits the accumulation when it meets the minimum; an
// undersized remainder is merged into the preceding chunk, or dropped
// when none exists.
func (c *CodeChunker) closeChunk(chunks *[]types.Chunk, acc *codeAccumulator, endLine int) {
	if acc.empty() {
		return
	}

	if acc.tokens() >= c.minTokens {
		if endLine < acc.startLine {
			endLine = acc.startLine
		}
		*chunks = append(*chunks, types.Chunk{
			Text:      acc.text(),
			Title:     acc.title,
			Kind:      acc.kind,
			StartLine: acc.startLine,
			EndLine:   endLine,
		})
		return
	}

	if len(*chunks) > 0 {
		mergeIntoLast(*chunks, acc.text(), endLine)
	}
}

// splitOversized searches backward from the current line for the earliest
// blank or comment-only line where the prefix already reaches the split
// minimum. The prefix is emitted and the remainder continues accumulating
// as a new chunk anchored at the split point. When no such position exists
// the oversized chunk persists rather than splitting mid-statement.
func (c *CodeChunker) splitOversized(chunks *[]types.Chunk, acc *codeAccumulator) {
	splitIdx := -1
	for i := range acc.lines {
		line := acc.lines[i]
		if strings.TrimSpace(line) != "" && !commentOnlyRe.MatchString(line) {
			continue
		}
		prefix := strings.Join(acc.lines[:i+1], "\n")
		if types.EstimateTokens(prefix) >= CodeSplitPrefixTokens {
			splitIdx = i
			break
		}
	}

	if splitIdx < 0 || splitIdx >= len(acc.lines)-1 {
		return
	}

	splitLine := acc.startLine + splitIdx
	*chunks = append(*chunks, types.Chunk{
		Text:      strings.Join(acc.lines[:splitIdx+1], "\n"),
		Title:     acc.title,
		Kind:      acc.kind,
		StartLine: acc.startLine,
		EndLine:   splitLine,
	})

	acc.lines = acc.lines[splitIdx+1:]
	acc.startLine = splitLine + 1
}
