package indexer

import "github.com/phuslu/log"

// Reporter receives progress callbacks at defined pipeline checkpoints.
// It is injectable so run narration stays decoupled from the pipeline and
// can be swapped out or silenced in tests.
type Reporter interface {
	// FileProcessed is called after a file's chunks have been built into entries
	FileProcessed(path string, chunks, entries int)
	// FileFailed is called when a file is skipped due to a processing error
	FileFailed(path string, err error)
	// EntryFiltered is called when a chunk is discarded by the entry builder
	EntryFiltered(path, reason string)
	// PartitionWritten is called after each partition artifact is written
	PartitionWritten(name, artifact string, count int)
	// RunComplete is called once with the final statistics
	RunComplete(stats *Statistics)
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) FileProcessed(string, int, int)       {}
func (NopReporter) FileFailed(string, error)             {}
func (NopReporter) EntryFiltered(string, string)         {}
func (NopReporter) PartitionWritten(string, string, int) {}
func (NopReporter) RunComplete(*Statistics)              {}

// LogReporter narrates progress through the structured logger.
type LogReporter struct{}

// FileProcessed logs a processed file at debug level.
func (LogReporter) FileProcessed(path string, chunks, entries int) {
	log.Debug().Str("file", path).Int("chunks", chunks).Int("entries", entries).
		Msg("file processed")
}

// FileFailed logs a failed file; the run continues without it.
func (LogReporter) FileFailed(path string, err error) {
	log.Warn().Str("file", path).Err(err).Msg("file skipped")
}

// EntryFiltered logs a discarded chunk at debug level.
func (LogReporter) EntryFiltered(path, reason string) {
	log.Debug().Str("file", path).Str("reason", reason).Msg("chunk filtered")
}

// PartitionWritten logs an emitted partition artifact.
func (LogReporter) PartitionWritten(name, artifact string, count int) {
	log.Info().Str("partition", name).Str("artifact", artifact).Int("entries", count).
		Msg("partition written")
}

// RunComplete logs the run summary.
func (LogReporter) RunComplete(stats *Statistics) {
	log.Info().
		Int("files", stats.FilesIndexed).
		Int("failed", stats.FilesFailed).
		Int("entries", stats.EntriesKept).
		Int("filtered", stats.EntriesFiltered).
		Dur("duration", stats.Duration).
		Msg("index run complete")
}
