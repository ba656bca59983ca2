package types

// PartitionRef references one emitted partition artifact from the main index
type PartitionRef struct {
	Name     string // partition name, e.g. "api" or "api-high"
	Artifact string // artifact file name the partition was written to
	Count    int    // number of entries in the partition
}

// DomainRollup is the per-domain aggregate carried by the main index
type DomainRollup struct {
	Domain         string
	Count          int
	MeanImportance float64
}

// SummaryEntry is the trimmed view of a top-ranked entry carried by the
// main index: enough to locate the full entry without loading partitions.
type SummaryEntry struct {
	ID        string
	Title     string
	Domain    string
	Score     float64
	File      string   // file basename of the entry source
	Tags      []string // at most 3
	Partition string   // empty when partitioning is off
}

// RunMetadata describes one pipeline run
type RunMetadata struct {
	Project     string
	RunID       string
	GeneratedAt string // ISO-8601
	EntryCount  int
}

// Artifact is the parsed form of one index artifact. It is a sum type:
// exactly one of Entries (inline form) or Partitions (manifest form) is
// populated, and consumers branch on IsManifest rather than sniffing text.
type Artifact struct {
	Run        RunMetadata
	Entries    []IndexEntry
	Partitions []PartitionRef
	Domains    []DomainRollup
	Summary    []SummaryEntry

	manifest bool
}

// InlineArtifact constructs the inline variant holding the full entry set.
func InlineArtifact(run RunMetadata, entries []IndexEntry) *Artifact {
	return &Artifact{Run: run, Entries: entries}
}

// ManifestArtifact constructs the manifest variant referencing partitions.
func ManifestArtifact(run RunMetadata, partitions []PartitionRef) *Artifact {
	return &Artifact{Run: run, Partitions: partitions, manifest: true}
}

// IsManifest reports whether the artifact references partition files
// instead of carrying inline entries.
func (a *Artifact) IsManifest() bool {
	return a.manifest
}
