// Package index serializes entries to the restricted index text format and
// parses that format back.
//
// The format is a constrained YAML subset with a fixed key order per entry,
// JSON-style string escaping, bracketed arrays, and an inline brace-delimited
// provenance object. Both the emitter and the parser are hand-rolled on
// purpose: the schema is a compatibility contract with index consumers, so no
// general-purpose format library's quoting rules may leak into it.
//
// Two artifact shapes exist:
//
//   - inline: the artifact carries "entries:" with the full entry list
//   - manifest: the main artifact carries "partitions:" referencing one
//     artifact file per partition, plus domain rollups and a bounded
//     top-K summary view
//
// The round-trip property holds at the field level: Load(Write(E)) yields a
// structurally equal entry set, though not necessarily byte-identical text.
package index
