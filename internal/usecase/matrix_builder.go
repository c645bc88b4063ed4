package usecase

import (
	"fmt"
	"strings"

	"github.com/cableworks/storefront/internal/domain"
)

// List limits for application/feature rows
const (
	QuickViewListLimit = 3
	FullPageListLimit  = 5
)

// Fixed row keys, emitted first and in this order
const (
	RowName         = "Name"
	RowCategory     = "Category"
	RowPrice        = "Price"
	RowStock        = "Stock"
	RowApplications = "Applications"
	RowFeatures     = "Features"
)

// listSeparator joins a product's list entries into one comparable cell
const listSeparator = ", "

// MatrixOptions configures the matrix builder
type MatrixOptions struct {
	// ListLimit caps applications/features per product. Zero means QuickViewListLimit.
	ListLimit int
}

// MatrixBuilder aligns 2-3 products into a ComparisonMatrix
type MatrixBuilder struct {
	listLimit int
}

// NewMatrixBuilder creates a matrix builder with the given options
func NewMatrixBuilder(opts MatrixOptions) *MatrixBuilder {
	limit := opts.ListLimit
	if limit <= 0 {
		limit = QuickViewListLimit
	}
	return &MatrixBuilder{listLimit: limit}
}

// ListLimit returns the per-product cap on application/feature entries
func (b *MatrixBuilder) ListLimit() int {
	return b.listLimit
}

// Build produces the comparison matrix for members in selection order.
// Fewer than two members yields an empty matrix; callers are expected to gate on that.
func (b *MatrixBuilder) Build(members []domain.Product) domain.ComparisonMatrix {
	if len(members) < domain.MinComparisonItems {
		return domain.ComparisonMatrix{Products: []domain.ProductHeader{}, Rows: []domain.MatrixRow{}}
	}
	if len(members) > domain.MaxComparisonItems {
		members = members[:domain.MaxComparisonItems]
	}

	matrix := domain.ComparisonMatrix{
		Products: make([]domain.ProductHeader, len(members)),
	}
	for i, p := range members {
		matrix.Products[i] = domain.ProductHeader{
			ID:       p.ID,
			Name:     p.Name,
			ImageURL: p.ImageURL,
			Price:    p.Price,
			Stock:    p.Stock,
		}
	}

	matrix.Rows = append(matrix.Rows, b.generalRows(members)...)
	matrix.Rows = append(matrix.Rows,
		b.listRow(RowApplications, domain.SectionApplications, members, func(p domain.Product) []string { return p.Applications }),
		b.listRow(RowFeatures, domain.SectionFeatures, members, func(p domain.Product) []string { return p.Features }),
	)
	matrix.Rows = append(matrix.Rows, b.specificationRows(members)...)

	return matrix
}

// generalRows emits Name, Category, Price and Stock
func (b *MatrixBuilder) generalRows(members []domain.Product) []domain.MatrixRow {
	names := make([]string, len(members))
	categories := make([]string, len(members))
	prices := make([]string, len(members))
	stock := make([]string, len(members))
	stockDetails := make([]string, len(members))

	for i, p := range members {
		names[i] = p.Name
		categories[i] = p.Category
		prices[i] = FormatPrice(p.Price)
		stock[i] = string(p.StockStatus())
		stockDetails[i] = fmt.Sprintf("%d units", p.Stock)
	}

	return []domain.MatrixRow{
		newRow(RowName, domain.SectionGeneral, names),
		newRow(RowCategory, domain.SectionGeneral, categories),
		newRow(RowPrice, domain.SectionGeneral, prices),
		withDetails(newRow(RowStock, domain.SectionGeneral, stock), stockDetails),
	}
}

// listRow renders each product's list independently. Lists are positional, not
// key-aligned, so the row differs on the joined string of each capped list.
func (b *MatrixBuilder) listRow(key string, section domain.RowSection, members []domain.Product, pick func(domain.Product) []string) domain.MatrixRow {
	values := make([]string, len(members))
	lists := make([][]string, len(members))

	for i, p := range members {
		items := topDistinct(pick(p), b.listLimit)
		lists[i] = items
		if len(items) == 0 {
			values[i] = domain.MissingValue
			continue
		}
		values[i] = strings.Join(items, listSeparator)
	}

	row := newRow(key, section, values)
	row.Lists = lists
	return row
}

// specificationRows emits one row per distinct parsed key across all members.
// Keys are merged by exact string in member order; cells are resolved by fuzzy lookup
// because a product may carry the same concept under a different label.
func (b *MatrixBuilder) specificationRows(members []domain.Product) []domain.MatrixRow {
	sheets := make([]domain.SpecSheet, len(members))
	var keys []string
	seen := make(map[string]bool)

	for i, p := range members {
		sheets[i] = ParseSpecifications(p.Specifications)
		for _, key := range SpecKeys(sheets[i]) {
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}

	rows := make([]domain.MatrixRow, 0, len(keys))
	for _, key := range keys {
		values := make([]string, len(members))
		for i := range members {
			values[i] = LookupSpec(sheets[i], key)
		}
		rows = append(rows, newRow(key, domain.SectionSpecifications, values))
	}
	return rows
}

// newRow builds a row and computes its differs flag
func newRow(key string, section domain.RowSection, values []string) domain.MatrixRow {
	return domain.MatrixRow{
		Key:     key,
		Section: section,
		Values:  values,
		Differs: ValuesDiffer(values),
	}
}

func withDetails(row domain.MatrixRow, details []string) domain.MatrixRow {
	row.Details = details
	return row
}

// ValuesDiffer reports whether the trimmed values contain more than one distinct value.
// The "-" sentinel counts as a value of its own, so absence against presence differs.
func ValuesDiffer(values []string) bool {
	if len(values) < 2 {
		return false
	}
	first := strings.TrimSpace(values[0])
	for _, v := range values[1:] {
		if strings.TrimSpace(v) != first {
			return true
		}
	}
	return false
}

// FormatPrice renders a price as currency with two decimals
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// topDistinct keeps the first limit non-blank entries, dropping exact repeats
func topDistinct(items []string, limit int) []string {
	out := make([]string, 0, min(len(items), limit))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
