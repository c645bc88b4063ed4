package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cableworks/storefront/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Field weights for scoring
const (
	weightName        = 3.0
	weightCategory    = 2.0
	weightDescriptive = 1.0 // features, applications, specifications
	fuzzyWeightFactor = 0.8 // Fuzzy matches get 80% of normal weight
)

// searchStopWords are ignored in both queries and product text
var searchStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "for": true, "with": true,
	"to": true, "by": true, "per": true,
}

// SearchConfig holds configuration for the catalog matcher
type SearchConfig struct {
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// ProductMatcher ranks catalog products against a free-text picker query
type ProductMatcher struct {
	enableFuzzyMatching bool
	fuzzyEditDistance   int
}

// NewProductMatcher creates a matcher with the given configuration
func NewProductMatcher(config SearchConfig) *ProductMatcher {
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1 // Default edit distance of 1
	}
	return &ProductMatcher{
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
	}
}

type scoredProduct struct {
	product domain.Product
	score   float64
	order   int
}

// Rank returns the products matching query, best first. Ties keep catalog order.
// A blank query returns the products unchanged.
func (m *ProductMatcher) Rank(query string, products []domain.Product) []domain.Product {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return products
	}

	scored := make([]scoredProduct, 0, len(products))
	for i, p := range products {
		if score := m.Score(queryTokens, p); score > 0 {
			scored = append(scored, scoredProduct{product: p, score: score, order: i})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]domain.Product, len(scored))
	for i, s := range scored {
		ranked[i] = s.product
	}
	return ranked
}

// Score computes a weighted coverage score of query tokens against a product.
// Each query token contributes the weight of the best field it appears in.
func (m *ProductMatcher) Score(queryTokens []string, product domain.Product) float64 {
	fields := []struct {
		tokens []string
		weight float64
	}{
		{tokenize(product.Name), weightName},
		{tokenize(product.Category), weightCategory},
		{tokenize(strings.Join(product.Features, " ")), weightDescriptive},
		{tokenize(strings.Join(product.Applications, " ")), weightDescriptive},
		{tokenize(strings.Join(product.Specifications, " ")), weightDescriptive},
	}

	var score float64
	for _, q := range queryTokens {
		best := 0.0
		for _, f := range fields {
			if w := m.tokenWeight(q, f.tokens) * f.weight; w > best {
				best = w
			}
		}
		score += best
	}

	return score / (float64(len(queryTokens)) * weightName) * 100
}

// tokenWeight returns 1 for an exact token hit, fuzzyWeightFactor for a fuzzy hit, else 0
func (m *ProductMatcher) tokenWeight(token string, candidates []string) float64 {
	fuzzy := false
	for _, c := range candidates {
		if c == token {
			return 1
		}
		if m.enableFuzzyMatching && !fuzzy && fuzzyTokenMatch(token, c, m.fuzzyEditDistance) {
			fuzzy = true
		}
	}
	if fuzzy {
		return fuzzyWeightFactor
	}
	return 0
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation and stop words; keeps numbers since gauges and ratings matter.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if searchStopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	// Only apply fuzzy matching to tokens >= 4 chars to avoid false positives
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
