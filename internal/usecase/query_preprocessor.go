package usecase

import (
	"log"
	"regexp"
	"strings"
)

// maxQueryLength keeps marketplace search URLs short
const maxQueryLength = 100

// QueryPreprocessor turns a listing title into a marketplace search query
type QueryPreprocessor struct {
	enableDebugLogging bool
}

// Compiled regex patterns for query preprocessing
var (
	// Characters that break search URLs or carry no meaning for the search engine
	queryNoiseChars = regexp.MustCompile(`[#%+@!^*=\[\]{}<>|\\~"` + "`" + `]`)

	// Bracket pairs wrapping variant info, e.g. "(Midnight, 128 GB)"
	bracketPattern = regexp.MustCompile(`[()]`)

	// Lone separators left behind after cleanup
	orphanSeparatorPattern = regexp.MustCompile(`\s+[,\-;:|/]+\s+|[,\-;:|/]+\s*$|^\s*[,\-;:|/]+`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// queryNoiseWords are listing badges that never appear in the other marketplace's titles
var queryNoiseWords = map[string]bool{
	"new":        true,
	"sale":       true,
	"offer":      true,
	"offers":     true,
	"bestseller": true,
	"assured":    true,
	"sponsored":  true,
	"combo":      true,
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(enableDebugLogging bool) *QueryPreprocessor {
	return &QueryPreprocessor{
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery cleans a product title for a marketplace search.
// Variant info inside brackets is kept, the brackets are dropped.
func (p *QueryPreprocessor) PreprocessQuery(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}

	original := title

	cleaned := strings.ReplaceAll(title, "&", " and ")
	cleaned = queryNoiseChars.ReplaceAllString(cleaned, " ")
	cleaned = bracketPattern.ReplaceAllString(cleaned, " ")
	cleaned = p.removeNoiseWords(cleaned)
	cleaned = orphanSeparatorPattern.ReplaceAllString(cleaned, " ")
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	// Cut at a word boundary when too long
	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.TrimSpace(cleaned)
	}

	if p.enableDebugLogging {
		log.Printf("[PREPROCESS] Input: %q -> Output: %q", original, cleaned)
	}

	return cleaned
}

// removeNoiseWords drops badge words, preserving the case of everything else
func (p *QueryPreprocessor) removeNoiseWords(s string) string {
	words := strings.Fields(s)
	kept := make([]string, 0, len(words))

	for _, word := range words {
		cleanWord := strings.ToLower(strings.Trim(word, ",.!?;:-'"))
		if !queryNoiseWords[cleanWord] {
			kept = append(kept, word)
		}
	}

	return strings.Join(kept, " ")
}

// normalizeForCacheKey lowercases and collapses whitespace
func normalizeForCacheKey(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(strings.ToLower(s), " "))
}
