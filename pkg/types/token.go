package types

// TokensPerChar is the heuristic divisor for estimating tokens from text length.
const TokensPerChar = 4

// EstimateTokens estimates the number of tokens in a string.
// Uses a simple heuristic: ceil(characters / 4). The estimate is a relative
// sizing signal for threshold comparisons, never an exact lexical count.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + TokensPerChar - 1) / TokensPerChar
}
