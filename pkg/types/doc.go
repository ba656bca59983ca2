// Package types provides shared type definitions for the CodeAtlas index pipeline.
//
// This package defines the domain types used across components: chunks,
// index entries, and the artifact sum type produced by a run.
//
// # Core Types
//
// Chunk represents a bounded, contiguous text span extracted from one file,
// the atomic unit that becomes one index entry:
//
//	chunk := &types.Chunk{
//	    Text:      sectionBody,
//	    Title:     "Getting Started",
//	    Kind:      types.ChunkSection,
//	    Level:     2,
//	    StartLine: 10,
//	    EndLine:   42,
//	}
//
// IndexEntry is the unit stored in the index, combining a chunk with its
// derived metadata (domain, tags, freshness, provenance):
//
//	entry := types.IndexEntry{
//	    ID:     "doc-readme#c01",
//	    Title:  "Getting Started",
//	    Domain: "docs",
//	    Source: "docs/readme.md",
//	}
//
// Entries are treated as immutable once serialized. Importance scoring is a
// pure transformation, applied via WithImportance rather than mutation.
//
// # Artifacts
//
// Artifact is a sum type over the two persisted shapes of an index:
//
//   - inline: the artifact carries the full entry list
//   - manifest: the artifact references partition artifacts, each holding
//     a named subset of the entry set
//
// Consumers branch on IsManifest explicitly instead of sniffing content.
//
// # Token Estimation
//
// EstimateTokens implements the sizing heuristic used by every threshold in
// the pipeline: ceil(characters / 4). It is a relative size signal, not a
// lexer; all chunker and filter thresholds are expressed in this unit.
//
// # Validation
//
// Chunk and IndexEntry implement Validate methods to ensure data integrity:
//
//	if err := entry.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
