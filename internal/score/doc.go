// Package score ranks index entries.
//
// Importance is a fixed deterministic formula, not a learned model: six
// independent weighted signals (freshness, filename category, domain
// category, content type, tag criticality, and a substance bonus) summed
// and clamped to [0,1]. Prioritize imposes a total order over entries with
// deterministic tie-breaks and truncates to the configured entry cap.
package score
