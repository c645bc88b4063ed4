package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cableworks/storefront/internal/domain"
)

// productRecord is a product row as returned by the managed backend's REST API
type productRecord struct {
	ID             json.RawMessage `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Price          json.RawMessage `json:"price"`
	Stock          json.RawMessage `json:"stock"`
	ImageURL       string          `json:"image_url"`
	Specifications json.RawMessage `json:"specifications"`
	Applications   json.RawMessage `json:"applications"`
	Features       json.RawMessage `json:"features"`
}

// MapToProduct converts a backend record to our domain Product.
// The admin panel stores list columns either as JSON arrays or as newline separated
// text, and numbers either as JSON numbers or strings; both shapes are accepted.
func MapToProduct(record *productRecord) domain.Product {
	return domain.Product{
		ID:             decodeScalar(record.ID),
		Name:           strings.TrimSpace(record.Name),
		Category:       strings.TrimSpace(record.Category),
		Description:    strings.TrimSpace(record.Description),
		Price:          nonNegativeFloat(decodeScalar(record.Price)),
		Stock:          stockCount(decodeScalar(record.Stock)),
		ImageURL:       strings.TrimSpace(record.ImageURL),
		Specifications: decodeStringList(record.Specifications),
		Applications:   decodeStringList(record.Applications),
		Features:       decodeStringList(record.Features),
	}
}

// decodeScalar returns a JSON string or number as text; null or missing yields ""
func decodeScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// decodeStringList accepts ["a","b"] or "a\nb"; blank entries are dropped
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return []string{}
		}
		list = strings.Split(text, "\n")
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// nonNegativeFloat parses s as a finite, non-negative number; anything else is 0
func nonNegativeFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// stockCount parses a unit count, truncating fractions and capping at math.MaxInt32
func stockCount(s string) int {
	v := nonNegativeFloat(s)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
