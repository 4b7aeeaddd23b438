package core

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// EstimateTokens provides a rough token count estimation when the API does
// not report usage (or before a request is made).
func EstimateTokens(content string) int {
	if content == "" {
		return 0
	}

	// 1. Split by whitespace to count words
	words := strings.Fields(content)
	wordCount := len(words)

	// 2. Count characters (excluding spaces)
	charCount := len(strings.ReplaceAll(content, " ", ""))

	// 3. ~1.3 tokens per word for English text
	tokenEstimate := float64(wordCount) * 1.3

	// 4. For very short texts, character-based estimation is more stable
	if wordCount < 10 {
		tokenEstimate = float64(charCount) / 3.5
	}

	// 5. Small buffer for punctuation and formatting
	tokenEstimate *= 1.1

	return int(tokenEstimate)
}

// GetDefaultModel returns the Claude model used when none is configured
func GetDefaultModel() anthropic.Model {
	return "claude-3-5-sonnet-20241022"
}
