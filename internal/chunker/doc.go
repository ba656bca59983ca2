// Package chunker divides source files into bounded, contiguous chunks at
// natural structural boundaries.
//
// Two strategies exist, selected by file extension:
//
//   - Markdown: ATX headers delimit sections. Undersized sections are merged
//     into their predecessor; oversized ones are split at sentence
//     boundaries. A document always produces at least one chunk.
//   - Code: top-level declarations (function, class, interface, type alias,
//     exported const/let/var) delimit chunks, recognized by line-local
//     pattern matching at brace depth zero.
//
// Select config files (package.json and friends) bypass both strategies and
// become a single whole-file chunk.
//
// # Basic Usage
//
//	c := chunker.New()
//	chunks := c.ChunkFile("src/api/users.ts", fileText)
//
//	for _, chunk := range chunks {
//	    fmt.Printf("%s: lines %d-%d\n", chunk.Title, chunk.StartLine, chunk.EndLine)
//	}
//
// # Heuristic Boundaries
//
// Boundary detection is deliberately pattern-based, not a language grammar:
// brace counting and line-local regexes trade precision for language-agnostic
// simplicity. Nested declarations inside a body do not open new chunks
// because brace depth is non-zero while inside them. Strings or comments
// containing unbalanced braces can shift boundaries; the heuristic accepts
// that imprecision.
//
// # Chunk Sizing
//
// All thresholds are expressed in the token estimate of pkg/types
// (ceil(chars/4)):
//
//   - Markdown: sections below 150 tokens merge, above 800 split.
//   - Code: chunks below 50 tokens merge into their predecessor; above 800
//     the chunker splits backward at a blank or comment-only line once the
//     prefix reaches 150 tokens, and otherwise lets the chunk run oversize
//     rather than splitting mid-statement.
package chunker
