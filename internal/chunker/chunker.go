package chunker

import (
	"path/filepath"
	"strings"

	"github.com/dshills/codeatlas/pkg/types"
)

// FileKind classifies a file by the chunking strategy it receives
type FileKind int

const (
	// KindUnsupported files are not indexed
	KindUnsupported FileKind = iota
	// KindDoc files are chunked by markdown headers
	KindDoc
	// KindCode files are chunked at declaration boundaries
	KindCode
	// KindConfig files are indexed as a single whole-file chunk
	KindConfig
)

var docExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

var codeExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

// configBasenames is the fixed allow-list of config files worth indexing.
var configBasenames = map[string]bool{
	"package.json":        true,
	"tsconfig.json":       true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"vite.config.json":    true,
	"railway.json":        true,
	".eslintrc.json":      true,
}

// ClassifyFile determines the chunking strategy for a path.
func ClassifyFile(path string) FileKind {
	base := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(base)

	switch {
	case docExtensions[ext]:
		return KindDoc
	case codeExtensions[ext]:
		return KindCode
	case ext == ".json" || ext == ".yaml" || ext == ".yml":
		if configBasenames[base] {
			return KindConfig
		}
		return KindUnsupported
	default:
		return KindUnsupported
	}
}

// Chunker selects a chunking strategy by file kind and produces raw chunks.
type Chunker struct {
	markdown *MarkdownChunker
	code     *CodeChunker
}

// New creates a new Chunker instance
func New() *Chunker {
	return &Chunker{
		markdown: NewMarkdown(),
		code:     NewCode(),
	}
}

// ChunkFile splits file text into chunks according to the file's kind.
// Unsupported files produce no chunks.
func (c *Chunker) ChunkFile(path, text string) []types.Chunk {
	switch ClassifyFile(path) {
	case KindDoc:
		return c.markdown.Chunk(stripFrontMatter(text))
	case KindCode:
		return c.code.Chunk(text)
	case KindConfig:
		return []types.Chunk{wholeFileChunk(path, text)}
	default:
		return nil
	}
}

// wholeFileChunk wraps an entire config file in a single chunk.
func wholeFileChunk(path, text string) types.Chunk {
	return types.Chunk{
		Text:      text,
		Title:     filepath.Base(path),
		Kind:      types.ChunkWholeFile,
		StartLine: 1,
		EndLine:   strings.Count(text, "\n") + 1,
	}
}

// stripFrontMatter removes a leading YAML front-matter block delimited by
// "---" lines, when present.
func stripFrontMatter(text string) string {
	if !strings.HasPrefix(text, "---\n") && text != "---" {
		return text
	}
	rest := text[4:]
	if idx := strings.Index(rest, "\n---"); idx >= 0 {
		after := rest[idx+4:]
		if after == "" {
			return ""
		}
		if after[0] == '\n' {
			return after[1:]
		}
		// Not a closing delimiter on its own line.
		return text
	}
	return text
}
