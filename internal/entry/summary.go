package entry

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dshills/codeatlas/pkg/types"
)

const (
	// summaryMaxWords is the word cap for a derived mini-summary
	summaryMaxWords = 50
	// summaryMinSentenceLen is the minimum length of a usable sentence
	summaryMinSentenceLen = 20
	// summaryMinTokens is the threshold below which a derived summary is
	// considered too weak and replaced by the title or file name
	summaryMinTokens = 15
)

var (
	fencedCodeRe   = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe   = regexp.MustCompile("`[^`]+`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headerMarkRe   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasisRe     = regexp.MustCompile(`[*_]{1,3}([^*_]+)[*_]{1,3}`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	summarySplitRe = regexp.MustCompile(`[.!?]\s+`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// Summarize derives a mini-summary from chunk text: markup is stripped, the
// first two sentences of at least 20 characters are taken, and the result is
// truncated to 50 words with an ellipsis if longer. Summaries that come out
// under ~15 tokens fall back to the chunk title or file name.
func Summarize(text, title, fileName string) string {
	plain := stripMarkup(text)

	var picked []string
	for _, s := range summarySplitRe.Split(plain, -1) {
		s = strings.TrimSpace(s)
		if len(s) < summaryMinSentenceLen {
			continue
		}
		picked = append(picked, s)
		if len(picked) == 2 {
			break
		}
	}

	summary := strings.Join(picked, ". ")
	summary = truncateWords(summary, summaryMaxWords)

	if types.EstimateTokens(summary) < summaryMinTokens {
		fallback := title
		if fallback == "" {
			fallback = fileName
		}
		summary = fallback
	}

	if len(summary) > types.MaxSummaryLength {
		cut := types.MaxSummaryLength - 3
		// Back off to a rune boundary so the cut never leaves a partial
		// multi-byte sequence behind.
		for cut > 0 && !utf8.RuneStart(summary[cut]) {
			cut--
		}
		summary = summary[:cut] + "..."
	}

	return summary
}

// stripMarkup removes markdown and HTML formatting so sentence detection
// operates on prose.
func stripMarkup(text string) string {
	text = fencedCodeRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headerMarkRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, "$1")
	text = htmlTagRe.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// truncateWords caps text at n words, appending an ellipsis when trimmed.
func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}
