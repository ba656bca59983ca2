// Package metadata derives index metadata from file paths and chunk content.
//
// All extractors are pure functions over their inputs:
//
//   - DomainForPath: coarse topical label from path segments, applying an
//     ordered rule chain (source roots, docs folders, test markers, known
//     keywords) with "core" as the final fallback.
//   - TagsForFile: deterministic sorted union of extension, import-pattern,
//     code-pattern, path-segment, and infra-filename tags.
//   - FreshnessScore / FreshnessAt: logistic recency signal in [0,1]
//     centered at 45 days since last revision.
//   - Fingerprint: SHA-256 content hash of the exact chunk text, prefixed
//     with the algorithm tag ("sha256:...").
//
// Determinism matters: running the extractors twice over unchanged input
// must produce identical output, so the emitted index is reproducible.
package metadata
