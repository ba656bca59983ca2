package partition

import (
	"sort"

	"github.com/dshills/codeatlas/pkg/types"
)

// Strategy selects how the final entry set is grouped into artifacts
type Strategy string

const (
	// StrategyNone emits all entries inline in the main artifact
	StrategyNone Strategy = "none"
	// StrategyDomain emits one partition per distinct domain
	StrategyDomain Strategy = "domain"
	// StrategyImportance emits three fixed partitions by score tier
	StrategyImportance Strategy = "importance"
)

// Valid reports whether the strategy is one of the known values.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyNone, StrategyDomain, StrategyImportance:
		return true
	default:
		return false
	}
}

const (
	// MaxPartitionSize is the member count above which a domain partition is
	// split into importance tiers instead of being emitted directly
	MaxPartitionSize = 100

	// TierHighThreshold is the minimum score for the high tier
	TierHighThreshold = 0.7
	// TierMediumThreshold is the minimum score for the medium tier
	TierMediumThreshold = 0.5
)

// Partition is a named, ordered subset of the final entry set, serialized
// to exactly one output artifact.
type Partition struct {
	Name    string
	Entries []types.IndexEntry
}

// Split groups entries into named partitions per the strategy. StrategyNone
// returns no partitions: the caller emits the entries inline. Entry order
// within each partition preserves the input order.
func Split(entries []types.IndexEntry, strategy Strategy) []Partition {
	switch strategy {
	case StrategyDomain:
		return splitByDomain(entries)
	case StrategyImportance:
		return splitByImportance(entries, "")
	default:
		return nil
	}
}

// splitByDomain produces one partition per distinct domain, in domain name
// order. Oversized partitions are replaced by their importance tiers.
func splitByDomain(entries []types.IndexEntry) []Partition {
	byDomain := make(map[string][]types.IndexEntry)
	for _, e := range entries {
		byDomain[e.Domain] = append(byDomain[e.Domain], e)
	}

	domains := make([]string, 0, len(byDomain))
	for d := range byDomain {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	var parts []Partition
	for _, d := range domains {
		members := byDomain[d]
		if len(members) > MaxPartitionSize {
			parts = append(parts, splitByImportance(members, d+"-")...)
			continue
		}
		parts = append(parts, Partition{Name: d, Entries: members})
	}
	return parts
}

// splitByImportance groups entries into high/medium/low score tiers,
// omitting empty tiers. The prefix scopes tier names when sub-partitioning
// a domain.
func splitByImportance(entries []types.IndexEntry, prefix string) []Partition {
	var high, medium, low []types.IndexEntry
	for _, e := range entries {
		switch {
		case e.ImportanceScore >= TierHighThreshold:
			high = append(high, e)
		case e.ImportanceScore >= TierMediumThreshold:
			medium = append(medium, e)
		default:
			low = append(low, e)
		}
	}

	var parts []Partition
	for _, tier := range []struct {
		name    string
		entries []types.IndexEntry
	}{
		{"high", high},
		{"medium", medium},
		{"low", low},
	} {
		if len(tier.entries) == 0 {
			continue
		}
		parts = append(parts, Partition{Name: prefix + tier.name, Entries: tier.entries})
	}
	return parts
}

// Rollups computes the per-domain aggregate view: entry count and mean
// importance for each domain present, in domain name order.
func Rollups(entries []types.IndexEntry) []types.DomainRollup {
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, e := range entries {
		counts[e.Domain]++
		sums[e.Domain] += e.ImportanceScore
	}

	domains := make([]string, 0, len(counts))
	for d := range counts {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	rollups := make([]types.DomainRollup, 0, len(domains))
	for _, d := range domains {
		rollups = append(rollups, types.DomainRollup{
			Domain:         d,
			Count:          counts[d],
			MeanImportance: sums[d] / float64(counts[d]),
		})
	}
	return rollups
}
