package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// maxQueryLength caps picker queries before ranking
const maxQueryLength = 100

// Compiled regex patterns for query preprocessing
var (
	// Matches pack/count patterns like "10-pack", "pack of 2", "3 pcs"
	packCountPattern = regexp.MustCompile(`(?i)\b\d+[-\s]*(pack|pk|pcs|pieces?)\b|\bpack\s*of\s*\d+\b`)

	// Lone punctuation left behind once words are removed
	orphanPunctuationPattern   = regexp.MustCompile(`\s+[,\-;:]+\s+`)
	trailingPunctuationPattern = regexp.MustCompile(`[,\-;:]+\s*$`)
	leadingPunctuationPattern  = regexp.MustCompile(`^\s*[,\-;:]+`)

	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// queryNoiseWords carry no product information in a picker query
var queryNoiseWords = map[string]bool{
	// Marketing terms
	"premium": true,
	"quality": true,
	"best":    true,
	"new":     true,
	"cheap":   true,
	"top":     true,
	"pro":     true,
	"genuine": true,
	"sale":    true,

	// Shopping terms
	"buy":     true,
	"price":   true,
	"product": true,
	"item":    true,
	"brand":   true,
}

// QueryPreprocessor cleans free-text picker queries before they are ranked.
// Gauges, lengths and ratings are kept since they distinguish cables.
type QueryPreprocessor struct {
	logger *zap.Logger
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{logger: logger}
}

// PreprocessQuery lowercases query and removes pack counts, marketing terms and
// orphaned punctuation, then normalizes whitespace
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	cleaned := packCountPattern.ReplaceAllString(query, " ")
	cleaned = removeNoiseWords(cleaned)
	cleaned = cleanOrphanedPunctuation(cleaned)
	cleaned = strings.TrimSpace(multiSpacePattern.ReplaceAllString(cleaned, " "))

	if len(cleaned) > maxQueryLength {
		cut := maxQueryLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
		// Try to cut at word boundary
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	if cleaned != query {
		p.logger.Debug("picker query preprocessed",
			zap.String("input", query),
			zap.String("output", cleaned))
	}
	return cleaned
}

// removeNoiseWords lowercases s and drops marketing and shopping terms
func removeNoiseWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	kept := make([]string, 0, len(words))

	for _, word := range words {
		// Clean punctuation from word for checking
		if queryNoiseWords[strings.Trim(word, ",.!?;:-'\"")] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// cleanOrphanedPunctuation removes punctuation that's now alone (e.g., lone commas)
func cleanOrphanedPunctuation(s string) string {
	result := orphanPunctuationPattern.ReplaceAllString(s, " ")
	result = trailingPunctuationPattern.ReplaceAllString(result, "")
	return leadingPunctuationPattern.ReplaceAllString(result, "")
}
