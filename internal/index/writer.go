package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/codeatlas/internal/partition"
	"github.com/dshills/codeatlas/pkg/types"
)

const (
	// SchemaVersion is stamped into every artifact
	SchemaVersion = "v1"
	// SummaryTopK bounds the summary view carried by the main artifact
	SummaryTopK = 50
	// SummaryMaxTags bounds the tags carried per summary entry
	SummaryMaxTags = 3
)

// Writer renders entries into the restricted text schema and writes index
// artifacts. The emitter is hand-rolled: a fixed key order per entry,
// JSON-style string escaping, bracketed arrays, and an inline provenance
// object. It deliberately avoids a general-purpose format library so the
// schema stays exactly as consumers expect it.
type Writer struct {
	outDir  string
	project string
}

// NewWriter creates a Writer emitting artifacts for a project into outDir.
func NewWriter(outDir, project string) *Writer {
	return &Writer{outDir: outDir, project: project}
}

// MainArtifactName returns the file name of the main index artifact.
func (w *Writer) MainArtifactName() string {
	return w.project + "-index.yaml"
}

// PartitionArtifactName returns the file name for a named partition.
func (w *Writer) PartitionArtifactName(name string) string {
	return w.project + "-index-" + name + ".yaml"
}

// WritePartition writes one partition artifact and returns its reference.
func (w *Writer) WritePartition(run types.RunMetadata, part partition.Partition) (types.PartitionRef, error) {
	var b strings.Builder
	b.WriteString("version: " + quote(SchemaVersion) + "\n")
	b.WriteString("project: " + quote(run.Project) + "\n")
	b.WriteString("partition: " + quote(part.Name) + "\n")
	b.WriteString("entry_count: " + strconv.Itoa(len(part.Entries)) + "\n")
	encodeEntries(&b, part.Entries)

	name := w.PartitionArtifactName(part.Name)
	if err := w.writeFile(name, b.String()); err != nil {
		return types.PartitionRef{}, err
	}

	return types.PartitionRef{Name: part.Name, Artifact: name, Count: len(part.Entries)}, nil
}

// WriteMain writes the main index artifact. When refs is empty the full
// entry set is emitted inline; otherwise the artifact carries the partition
// manifest and only the bounded summary view.
func (w *Writer) WriteMain(run types.RunMetadata, entries []types.IndexEntry,
	refs []types.PartitionRef, rollups []types.DomainRollup, summary []types.SummaryEntry) error {

	var b strings.Builder
	b.WriteString("version: " + quote(SchemaVersion) + "\n")
	b.WriteString("project: " + quote(run.Project) + "\n")
	b.WriteString("run_id: " + quote(run.RunID) + "\n")
	b.WriteString("generated_at: " + quote(run.GeneratedAt) + "\n")
	b.WriteString("entry_count: " + strconv.Itoa(run.EntryCount) + "\n")

	if len(refs) > 0 {
		b.WriteString("partitions:\n")
		for _, ref := range refs {
			b.WriteString("  - name: " + quote(ref.Name) + "\n")
			b.WriteString("    artifact: " + quote(ref.Artifact) + "\n")
			b.WriteString("    count: " + strconv.Itoa(ref.Count) + "\n")
		}
	}

	if len(rollups) > 0 {
		b.WriteString("domains:\n")
		for _, r := range rollups {
			b.WriteString("  - domain: " + quote(r.Domain) + "\n")
			b.WriteString("    count: " + strconv.Itoa(r.Count) + "\n")
			b.WriteString("    mean_importance: " + formatFloat(r.MeanImportance) + "\n")
		}
	}

	if len(summary) > 0 {
		b.WriteString("summary:\n")
		for _, s := range summary {
			b.WriteString("  - id: " + quote(s.ID) + "\n")
			b.WriteString("    title: " + quote(s.Title) + "\n")
			b.WriteString("    domain: " + quote(s.Domain) + "\n")
			b.WriteString("    score: " + formatFloat(s.Score) + "\n")
			b.WriteString("    file: " + quote(s.File) + "\n")
			b.WriteString("    tags: " + encodeArray(s.Tags) + "\n")
			b.WriteString("    partition: " + quote(s.Partition) + "\n")
		}
	}

	if len(refs) == 0 {
		encodeEntries(&b, entries)
	}

	return w.writeFile(w.MainArtifactName(), b.String())
}

// EncodeEntries renders an entry list to the restricted schema, sorted by
// (domain ascending, timestamp descending). Exposed for round-trip testing.
func EncodeEntries(entries []types.IndexEntry) string {
	var b strings.Builder
	encodeEntries(&b, entries)
	return b.String()
}

func encodeEntries(b *strings.Builder, entries []types.IndexEntry) {
	sorted := make([]types.IndexEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Domain != sorted[j].Domain {
			return sorted[i].Domain < sorted[j].Domain
		}
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	b.WriteString("entries:\n")
	for i := range sorted {
		encodeEntry(b, &sorted[i])
	}
}

// encodeEntry renders one entry with the fixed key order the parser expects.
func encodeEntry(b *strings.Builder, e *types.IndexEntry) {
	b.WriteString("  - id: " + quote(e.ID) + "\n")
	b.WriteString("    title: " + quote(e.Title) + "\n")
	b.WriteString("    domain: " + quote(e.Domain) + "\n")
	b.WriteString("    source: " + quote(e.Source) + "\n")
	b.WriteString("    mini_summary: " + quote(e.MiniSummary) + "\n")
	b.WriteString("    tags: " + encodeArray(e.Tags) + "\n")
	b.WriteString("    timestamp: " + quote(e.Timestamp) + "\n")
	b.WriteString("    freshness_score: " + formatFloat(e.FreshnessScore) + "\n")
	b.WriteString("    importance_score: " + formatFloat(e.ImportanceScore) + "\n")
	b.WriteString("    status: " + quote(e.Status) + "\n")
	b.WriteString("    version: " + quote(e.Version) + "\n")
	b.WriteString("    provenance: {source_hash: " + quote(e.Provenance.SourceHash) + "}\n")
}

// encodeArray renders a bracketed, comma-delimited array of quoted strings.
func encodeArray(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote renders a string value with JSON-style escaping.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// formatFloat renders a float with the shortest representation that parses
// back to the identical value, preserving round-trip equality.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (w *Writer) writeFile(name, content string) error {
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return nil
}
