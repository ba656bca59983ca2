// Package entry builds normalized index entries from chunks and their
// derived metadata.
//
// The builder is also where filtering happens: chunks outside the
// [50, 900] token window and files whose freshness score falls below 0.2
// are discarded outright rather than down-ranked. Whole-file config chunks
// are exempt from the token window since their chunker applies none.
//
// Entry identifiers take the form "doc-<sanitized-basename>#cNN" and are
// basename-scoped; see EntryID for the collision caveat.
package entry
