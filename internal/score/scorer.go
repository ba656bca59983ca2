package score

import (
	"path/filepath"
	"strings"

	"github.com/dshills/codeatlas/pkg/types"
)

// Signal weights. The composite formula is the single source of ranking
// truth and must stay stable for any consumer comparing scores across runs.
const (
	weightFreshness = 0.3

	fileScoreReadme   = 0.25
	fileScoreSpec     = 0.20
	fileScoreSrcIndex = 0.15
	fileScoreBaseline = 0.05

	domainScoreCritical = 0.15
	domainScoreNotable  = 0.10
	domainScoreBaseline = 0.05

	contentScoreDocs        = 0.15
	contentScoreDeclaration = 0.12
	contentScoreBaseline    = 0.05

	tagScoreCritical  = 0.10
	tagScoreImportant = 0.05

	substanceBonus       = 0.05
	substanceBonusTokens = 100
)

var criticalDomains = map[string]bool{
	"specs":        true,
	"architecture": true,
	"core":         true,
}

var notableDomains = map[string]bool{
	"tickets": true,
	"ui":      true,
	"railway": true,
}

var criticalTags = map[string]bool{
	"architecture": true,
	"specs":        true,
	"api":          true,
	"state-server": true,
	"core":         true,
}

var importantTags = map[string]bool{
	"websocket": true,
	"chatbot":   true,
	"server":    true,
}

var sourceRoots = map[string]bool{
	"src":      true,
	"packages": true,
	"lib":      true,
	"apps":     true,
}

// Importance computes the composite importance score for an entry as the
// sum of independent weighted signals, clamped to [0,1]. It is a pure
// function of the entry, its originating path, and the chunk it came from.
func Importance(e types.IndexEntry, path string, chunk types.Chunk) float64 {
	score := weightFreshness * e.FreshnessScore
	score += filenameSignal(path)
	score += domainSignal(e.Domain)
	score += contentSignal(path, chunk)
	score += tagSignal(e.Tags)

	if chunk.TokenEstimate() > substanceBonusTokens {
		score += substanceBonus
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// filenameSignal scores the file's name category.
func filenameSignal(path string) float64 {
	base := strings.ToLower(filepath.Base(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	ext := strings.ToLower(filepath.Ext(base))

	switch {
	case name == "readme":
		return fileScoreReadme
	case name == "index" && (ext == ".md" || ext == ".mdx"):
		return fileScoreReadme
	case strings.Contains(name, "spec") || strings.Contains(name, "architecture"):
		return fileScoreSpec
	case name == "index" && underSourceRoot(path):
		return fileScoreSrcIndex
	default:
		return fileScoreBaseline
	}
}

func underSourceRoot(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if sourceRoots[seg] {
			return true
		}
	}
	return false
}

// domainSignal scores the entry's domain category.
func domainSignal(domain string) float64 {
	switch {
	case criticalDomains[domain]:
		return domainScoreCritical
	case notableDomains[domain]:
		return domainScoreNotable
	default:
		return domainScoreBaseline
	}
}

// contentSignal scores documentation above declaration-anchored code above
// everything else.
func contentSignal(path string, chunk types.Chunk) float64 {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".md" || ext == ".mdx" {
		return contentScoreDocs
	}
	if chunk.IsDeclaration() {
		return contentScoreDeclaration
	}
	return contentScoreBaseline
}

// tagSignal scores tag criticality: any critical tag wins over any
// important tag.
func tagSignal(tags []string) float64 {
	important := false
	for _, tag := range tags {
		if criticalTags[tag] {
			return tagScoreCritical
		}
		if importantTags[tag] {
			important = true
		}
	}
	if important {
		return tagScoreImportant
	}
	return 0
}
