package indexer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/dshills/codeatlas/internal/chunker"
	"github.com/dshills/codeatlas/internal/entry"
	"github.com/dshills/codeatlas/internal/history"
	"github.com/dshills/codeatlas/internal/index"
	"github.com/dshills/codeatlas/internal/metadata"
	"github.com/dshills/codeatlas/internal/partition"
	"github.com/dshills/codeatlas/internal/score"
	"github.com/dshills/codeatlas/pkg/types"
)

// Indexer coordinates the pipeline: discover -> chunk -> extract metadata ->
// build entries -> score -> prioritize -> partition -> serialize. Execution
// is strictly sequential; the only parallelism is the revision prefetch at
// the collaborator edge before the run starts.
type Indexer struct {
	chunker  *chunker.Chunker
	builder  *entry.Builder
	history  history.Provider
	reporter Reporter
}

// Options configures one pipeline run.
type Options struct {
	ProjectName string
	MaxEntries  int
	PartitionBy partition.Strategy
	OutputDir   string
}

// Statistics contains statistics about one index run
type Statistics struct {
	FilesDiscovered   int
	FilesIndexed      int
	FilesFailed       int
	ChunksCreated     int
	EntriesKept       int
	EntriesFiltered   int
	EntriesDropped    int // beyond the max-entries cutoff
	PartitionsWritten int
	Duration          time.Duration
	ErrorMessages     []string
}

// excludedDirs are build/dependency/cache/VCS folders skipped anywhere in
// the tree, by exact name.
var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
	".svn":         true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"coverage":     true,
	".next":        true,
	".cache":       true,
	".turbo":       true,
	"vendor":       true,
	"tmp":          true,
}

// excludedFiles are lockfiles and local-env files never indexed.
var excludedFiles = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"bun.lockb":         true,
	".env":              true,
}

// New creates a new Indexer instance
func New(hist history.Provider, reporter Reporter) *Indexer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Indexer{
		chunker:  chunker.New(),
		builder:  entry.NewBuilder(),
		history:  hist,
		reporter: reporter,
	}
}

// Run indexes the tree at root and writes the index artifacts.
func (idx *Indexer) Run(ctx context.Context, root string, opts Options) (*Statistics, error) {
	startTime := time.Now()
	stats := &Statistics{}

	files, err := idx.discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	stats.FilesDiscovered = len(files)

	// Prefetch revision times; the pipeline itself stays sequential.
	history.Warm(ctx, idx.history, files)

	now := time.Now().UTC()
	var entries []types.IndexEntry
	for _, relPath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileEntries, err := idx.processFile(ctx, root, relPath, now, stats)
		if err != nil {
			stats.FilesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", relPath, err))
			idx.reporter.FileFailed(relPath, err)
			continue
		}

		stats.FilesIndexed++
		entries = append(entries, fileEntries...)
	}

	ranked := score.Prioritize(entries, opts.MaxEntries)
	stats.EntriesKept = len(ranked)
	stats.EntriesDropped = len(entries) - len(ranked)

	if err := idx.writeArtifacts(ranked, opts, now, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)
	idx.reporter.RunComplete(stats)
	return stats, nil
}

// discoverFiles walks the tree and returns root-relative paths of indexable
// files in walk order. Unreadable subtrees are warned about and skipped;
// traversal continues elsewhere.
func (idx *Indexer) discoverFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Str("path", path).Err(err).Msg("skipping unreadable subtree")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if excludedDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if excludedFiles[name] || strings.HasPrefix(name, ".env.") {
			return nil
		}
		if chunker.ClassifyFile(path) == chunker.KindUnsupported {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// processFile runs one file through chunking, metadata extraction, entry
// building, and scoring. Failures, including a panicking chunker, are
// isolated to the file.
func (idx *Indexer) processFile(ctx context.Context, root, relPath string, now time.Time, stats *Statistics) (entries []types.IndexEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("panic while processing: %v", r)
		}
	}()

	data, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	text := string(data)

	timestamp, freshness := idx.fileFreshness(ctx, root, relPath, now)

	chunks := idx.chunker.ChunkFile(relPath, text)
	stats.ChunksCreated += len(chunks)

	src := entry.Source{
		Path:      relPath,
		Content:   text,
		Timestamp: timestamp,
		Freshness: freshness,
	}

	for ordinal, chunk := range chunks {
		e, reason := idx.builder.Build(chunk, ordinal, src)
		if reason != entry.FilterNone {
			stats.EntriesFiltered++
			idx.reporter.EntryFiltered(relPath, reason.String())
			continue
		}
		e = e.WithImportance(score.Importance(e, relPath, chunk))
		entries = append(entries, e)
	}

	idx.reporter.FileProcessed(relPath, len(chunks), len(entries))
	return entries, nil
}

// fileFreshness resolves the file's last-revision timestamp and freshness
// score. Revision history is queried first; a file without history falls
// back to filesystem modification time, then to the current time. A query
// error is absorbed with the neutral score rather than propagated.
func (idx *Indexer) fileFreshness(ctx context.Context, root, relPath string, now time.Time) (string, float64) {
	revised, err := idx.history.LastRevision(ctx, relPath)

	switch {
	case err == nil:
		return revised.UTC().Format(time.RFC3339), metadata.FreshnessAt(revised, now)
	case errors.Is(err, history.ErrUnavailable):
		t := fileModTime(filepath.Join(root, relPath), now)
		return t.UTC().Format(time.RFC3339), metadata.FreshnessAt(t, now)
	default:
		log.Debug().Str("file", relPath).Err(err).Msg("revision query failed, using neutral freshness")
		t := fileModTime(filepath.Join(root, relPath), now)
		return t.UTC().Format(time.RFC3339), metadata.NeutralFreshness
	}
}

// fileModTime returns the file's modification time, or now as last resort.
func fileModTime(path string, now time.Time) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return now
	}
	return info.ModTime()
}

// writeArtifacts partitions the ranked entries and emits all artifacts.
func (idx *Indexer) writeArtifacts(ranked []types.IndexEntry, opts Options, now time.Time, stats *Statistics) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	run := types.RunMetadata{
		Project:     opts.ProjectName,
		RunID:       uuid.New().String(),
		GeneratedAt: now.Format(time.RFC3339),
		EntryCount:  len(ranked),
	}

	writer := index.NewWriter(opts.OutputDir, opts.ProjectName)
	parts := partition.Split(ranked, opts.PartitionBy)

	var refs []types.PartitionRef
	for _, part := range parts {
		ref, err := writer.WritePartition(run, part)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
		idx.reporter.PartitionWritten(ref.Name, ref.Artifact, ref.Count)
	}
	stats.PartitionsWritten = len(refs)

	summary := buildSummary(ranked, parts)
	rollups := partition.Rollups(ranked)

	return writer.WriteMain(run, ranked, refs, rollups, summary)
}

// buildSummary assembles the bounded top-K view carried by the main
// artifact. Ranked entries are already in importance order, so the first K
// are the global top.
func buildSummary(ranked []types.IndexEntry, parts []partition.Partition) []types.SummaryEntry {
	membership := make(map[string]string)
	for _, part := range parts {
		for _, e := range part.Entries {
			membership[e.ID] = part.Name
		}
	}

	k := index.SummaryTopK
	if len(ranked) < k {
		k = len(ranked)
	}

	summary := make([]types.SummaryEntry, 0, k)
	for _, e := range ranked[:k] {
		tags := e.Tags
		if len(tags) > index.SummaryMaxTags {
			tags = tags[:index.SummaryMaxTags]
		}
		summary = append(summary, types.SummaryEntry{
			ID:        e.ID,
			Title:     e.Title,
			Domain:    e.Domain,
			Score:     e.ImportanceScore,
			File:      filepath.Base(e.Source),
			Tags:      tags,
			Partition: membership[e.ID],
		})
	}
	return summary
}
