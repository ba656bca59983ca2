package entry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dshills/codeatlas/internal/metadata"
	"github.com/dshills/codeatlas/pkg/types"
)

const (
	// MinEntryTokens is the lower bound of the entry token window
	MinEntryTokens = 50
	// MaxEntryTokens is the upper bound of the entry token window
	MaxEntryTokens = 900
	// MinFreshness is the freshness floor below which content is excluded
	// from the index entirely, not merely down-ranked
	MinFreshness = 0.2
)

// FilterReason explains why a chunk did not become an entry
type FilterReason int

const (
	// FilterNone means the entry was built and kept
	FilterNone FilterReason = iota
	// FilterTokens means the chunk fell outside the token window
	FilterTokens
	// FilterFreshness means the file's freshness score fell below the floor
	FilterFreshness
)

// String describes the filter reason for reporting.
func (r FilterReason) String() string {
	switch r {
	case FilterTokens:
		return "token window"
	case FilterFreshness:
		return "low freshness"
	default:
		return "kept"
	}
}

// Source carries the per-file metadata an entry is built against.
type Source struct {
	Path      string // relative to the indexed root
	Content   string // full file text, for tag extraction
	Timestamp string // ISO-8601 last-revision time
	Freshness float64
}

// Builder combines a chunk and its derived metadata into a normalized
// index entry.
type Builder struct{}

// NewBuilder creates a new Builder instance
func NewBuilder() *Builder {
	return &Builder{}
}

// Build produces an IndexEntry from a chunk and its source metadata.
// The returned reason is FilterNone when the entry was kept; otherwise the
// chunk was discarded and the entry value is meaningless.
func (b *Builder) Build(chunk types.Chunk, ordinal int, src Source) (types.IndexEntry, FilterReason) {
	if src.Freshness < MinFreshness {
		return types.IndexEntry{}, FilterFreshness
	}

	// Whole-file config chunks carry no chunker window; everything else
	// must fit the entry token window.
	if chunk.Kind != types.ChunkWholeFile {
		est := chunk.TokenEstimate()
		if est < MinEntryTokens || est > MaxEntryTokens {
			return types.IndexEntry{}, FilterTokens
		}
	}

	title := chunk.Title
	if title == "" {
		title = filepath.Base(src.Path)
	}

	e := types.IndexEntry{
		ID:             EntryID(src.Path, ordinal),
		Title:          title,
		Domain:         metadata.DomainForPath(src.Path),
		Source:         filepath.ToSlash(src.Path),
		MiniSummary:    b.summarize(chunk, src),
		Tags:           metadata.TagsForFile(src.Path, src.Content),
		Timestamp:      src.Timestamp,
		FreshnessScore: src.Freshness,
		Status:         types.StatusActive,
		Version:        types.EntryVersion,
		Provenance:     types.Provenance{SourceHash: metadata.Fingerprint(chunk.Text)},
	}

	return e, FilterNone
}

// summarize picks the summary strategy by chunk kind.
func (b *Builder) summarize(chunk types.Chunk, src Source) string {
	if chunk.Kind == types.ChunkWholeFile {
		return "Configuration file: " + filepath.Base(src.Path)
	}
	return Summarize(chunk.Text, chunk.Title, filepath.Base(src.Path))
}

var idSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// EntryID derives the entry identifier from the sanitized file basename and
// the 1-based chunk ordinal: "doc-<basename>#cNN".
//
// The identifier is file-basename-scoped, not path-scoped: two files sharing
// a basename in different directories produce colliding ids. Existing index
// consumers may depend on this exact format, so it is kept as-is rather than
// silently widened; collisions are a known limitation.
func EntryID(path string, ordinal int) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	base = idSanitizeRe.ReplaceAllString(base, "-")
	return fmt.Sprintf("doc-%s#c%02d", base, ordinal+1)
}
