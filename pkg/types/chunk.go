package types

import "errors"

// ChunkKind represents the structural kind of a chunk
type ChunkKind string

const (
	// ChunkSection is a header-delimited section of a documentation file
	ChunkSection ChunkKind = "section"
	// ChunkFunction is a top-level function declaration in a code file
	ChunkFunction ChunkKind = "function"
	// ChunkClass is a top-level class declaration
	ChunkClass ChunkKind = "class"
	// ChunkInterface is a top-level interface declaration
	ChunkInterface ChunkKind = "interface"
	// ChunkTypeAlias is a top-level type-alias declaration
	ChunkTypeAlias ChunkKind = "type"
	// ChunkExport is a top-level exported const/let/var declaration
	ChunkExport ChunkKind = "export"
	// ChunkWholeFile is an entire file indexed as a single chunk (config files)
	ChunkWholeFile ChunkKind = "file"
)

// Chunk represents a contiguous span of one file's text produced by a chunker.
// Chunks never overlap within a file; sub-threshold tail fragments are merged
// into the preceding chunk rather than emitted on their own.
type Chunk struct {
	// Content
	Text  string
	Title string // empty when the chunk has no owning header/declaration

	// Structure
	Kind  ChunkKind
	Level int // header depth for sections, 0 for code chunks

	// Location (1-based, inclusive)
	StartLine int
	EndLine   int
}

// TokenEstimate returns the estimated token count of the chunk text.
func (c *Chunk) TokenEstimate() int {
	return EstimateTokens(c.Text)
}

// IsDeclaration reports whether the chunk is anchored at a recognized
// code declaration boundary.
func (c *Chunk) IsDeclaration() bool {
	switch c.Kind {
	case ChunkFunction, ChunkClass, ChunkInterface, ChunkTypeAlias:
		return true
	default:
		return false
	}
}

// ValidateKind checks if the chunk kind is valid
func (c *Chunk) ValidateKind() error {
	switch c.Kind {
	case ChunkSection, ChunkFunction, ChunkClass, ChunkInterface, ChunkTypeAlias, ChunkExport, ChunkWholeFile:
		return nil
	default:
		return errors.New("invalid chunk kind")
	}
}

// Validate performs comprehensive validation of the chunk
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return errors.New("chunk text cannot be empty")
	}

	if err := c.ValidateKind(); err != nil {
		return err
	}

	if c.StartLine <= 0 || c.EndLine <= 0 {
		return errors.New("line numbers must be positive")
	}

	if c.StartLine > c.EndLine {
		return errors.New("start line must be before or equal to end line")
	}

	return nil
}
