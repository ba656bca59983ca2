package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeatlas/pkg/types"
)

func TestClassifyFile(t *testing.T) {
	tests := []struct {
		path string
		want FileKind
	}{
		{"README.md", KindDoc},
		{"docs/guide.mdx", KindDoc},
		{"src/api/users.ts", KindCode},
		{"src/App.tsx", KindCode},
		{"lib/util.js", KindCode},
		{"components/Nav.jsx", KindCode},
		{"package.json", KindConfig},
		{"tsconfig.json", KindConfig},
		{"docker-compose.yml", KindConfig},
		{"deploy/railway.json", KindConfig},
		{".eslintrc.json", KindConfig},
		{"data/records.json", KindUnsupported},
		{"notes.txt", KindUnsupported},
		{"main.go", KindUnsupported},
		{"image.png", KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFile(tt.path))
		})
	}
}

func TestNew(t *testing.T) {
	c := New()
	assert.NotNil(t, c)
}

func TestChunkFile_Dispatch(t *testing.T) {
	c := New()

	doc := c.ChunkFile("notes.md", "# Title\nBody text.")
	require.Len(t, doc, 1)
	assert.Equal(t, types.ChunkSection, doc[0].Kind)

	code := c.ChunkFile("src/app.ts", "function run() {\n"+fnBody+"\n}\n")
	require.Len(t, code, 1)
	assert.Equal(t, types.ChunkFunction, code[0].Kind)

	cfg := c.ChunkFile("package.json", `{"name": "demo"}`)
	require.Len(t, cfg, 1)
	assert.Equal(t, types.ChunkWholeFile, cfg[0].Kind)
	assert.Equal(t, "package.json", cfg[0].Title)

	assert.Empty(t, c.ChunkFile("readme.txt", "plain text"))
}

func TestChunkFile_StripsFrontMatter(t *testing.T) {
	text := "---\ntitle: Design Notes\ndate: 2024-01-15\n---\n# Overview\nThe actual body."

	chunks := New().ChunkFile("design.md", text)

	require.Len(t, chunks, 1)
	assert.NotContains(t, chunks[0].Text, "date: 2024-01-15")
	assert.Contains(t, chunks[0].Text, "The actual body.")
	assert.Equal(t, "Overview", chunks[0].Title)
}

func TestStripFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no front matter", "# Title\nbody", "# Title\nbody"},
		{"with front matter", "---\nkey: value\n---\nbody", "body"},
		{"unterminated", "---\nkey: value\nbody", "---\nkey: value\nbody"},
		{"only front matter", "---\nkey: value\n---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFrontMatter(tt.in))
		})
	}
}

func TestWholeFileChunk_LineSpan(t *testing.T) {
	chunk := wholeFileChunk("tsconfig.json", "{\n  \"strict\": true\n}")
	assert.Equal(t, 1, chunk.StartLine)
	assert.Equal(t, 3, chunk.EndLine)
	assert.Equal(t, "tsconfig.json", chunk.Title)
}
