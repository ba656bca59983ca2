// Package history answers last-revision queries for indexed files.
//
// The pipeline consumes the Provider contract only; failures never
// propagate into it. GitProvider shells out to git one file at a time,
// CachedProvider layers a SQLite cache over any provider so repeat runs
// skip the per-file git processes, and StaticProvider serves fixed times
// for tests.
//
// Warm prefetches revision times with bounded parallelism before the
// strictly sequential pipeline starts. That parallelism is I/O scheduling
// at the collaborator edge; the pipeline itself remains single-threaded.
//
// The SQLite driver is selected at build time: modernc.org/sqlite by
// default, github.com/mattn/go-sqlite3 under the cgo_sqlite tag.
package history
