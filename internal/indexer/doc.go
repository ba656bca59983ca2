// Package indexer coordinates the full indexing pipeline over a file tree.
//
// Control flow is strictly sequential: discover files, chunk each by its
// file kind, derive metadata, build and score entries, prioritize,
// partition, and serialize the artifacts. There is no shared mutable state
// between stages and no concurrency inside the pipeline; the only parallel
// work is the revision-time prefetch that runs before the pipeline starts.
//
// Failures are isolated per file: an unreadable file or a chunker panic is
// reported through the Reporter and the run continues. Unreadable subtrees
// are skipped during traversal with a warning.
package indexer
