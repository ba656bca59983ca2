package score

import (
	"sort"

	"github.com/dshills/codeatlas/pkg/types"
)

// ScoreEpsilon is the importance difference below which two entries are
// considered equally ranked and tie-breaks apply.
const ScoreEpsilon = 0.001

// Prioritize total-orders entries and truncates the result to maxEntries.
// Order: importance descending (differences within ScoreEpsilon treated as
// equal), then domain ascending, then timestamp descending. Entries beyond
// the cutoff are dropped, not deferred. The input slice is not modified.
func Prioritize(entries []types.IndexEntry, maxEntries int) []types.IndexEntry {
	sorted := make([]types.IndexEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(&sorted[i], &sorted[j])
	})

	if maxEntries > 0 && len(sorted) > maxEntries {
		sorted = sorted[:maxEntries]
	}
	return sorted
}

// Less reports whether entry a ranks strictly before entry b.
func Less(a, b *types.IndexEntry) bool {
	diff := a.ImportanceScore - b.ImportanceScore
	if diff > ScoreEpsilon {
		return true
	}
	if diff < -ScoreEpsilon {
		return false
	}
	if a.Domain != b.Domain {
		return a.Domain < b.Domain
	}
	// ISO-8601 compares lexicographically; descending is chronologically
	// newest first.
	return a.Timestamp > b.Timestamp
}
