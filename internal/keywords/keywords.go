package keywords

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}]+(?:['’][\p{L}\p{M}\p{N}]+)*`)

// ExtractKeywords returns the unique, lowercased, non stop word tokens of text
// in first occurrence order. Callers apply their own cap.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return keywords
	}

	seen := make(map[string]struct{})
	for _, token := range wordPattern.FindAllString(text, -1) {
		word := strings.ToLower(strings.ReplaceAll(token, "’", "'"))
		if isDigits(word) || IsStopWord(word) {
			continue
		}
		if _, exists := seen[word]; exists {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// Top returns at most n keywords.
func Top(keywords []string, n int) []string {
	if len(keywords) > n {
		return keywords[:n]
	}
	return keywords
}

func isDigits(word string) bool {
	for _, r := range word {
		if !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
