package usecase

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cableworks/storefront/internal/domain"
)

func cat6() domain.Product {
	return domain.Product{
		ID:       "cat6",
		Name:     "Cat6 UTP",
		Category: "Network Cables",
		Price:    29.99,
		Stock:    45,
		Specifications: []string{
			"Conductor Type: Solid copper",
			"Shield: Foil",
			"Bandwidth: 250 MHz",
		},
		Applications: []string{"Office LAN", "PoE", "Structured cabling", "Security"},
		Features:     []string{"Fluke tested"},
	}
}

func cat6a() domain.Product {
	return domain.Product{
		ID:       "cat6a",
		Name:     "Cat6A FTP",
		Category: "Network Cables",
		Price:    27.99,
		Stock:    3,
		Specifications: []string{
			"Conductor: Solid copper",
			"Shield: Foil",
		},
		Applications: []string{"Office LAN", "PoE", "Structured cabling"},
		Features:     []string{"Fluke tested", "Fluke tested", "Reel"},
	}
}

func mustRow(t *testing.T, m domain.ComparisonMatrix, key string) domain.MatrixRow {
	t.Helper()
	row, ok := m.Row(key)
	require.True(t, ok, "row %q not found", key)
	return row
}

func TestMatrixBuilder_FewerThanTwoMembers(t *testing.T) {
	builder := NewMatrixBuilder(MatrixOptions{})

	for _, members := range [][]domain.Product{nil, {cat6()}} {
		m := builder.Build(members)
		assert.True(t, m.IsEmpty())
		assert.Empty(t, m.Rows)
	}
}

func TestMatrixBuilder_FixedRowsFirst(t *testing.T) {
	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{cat6(), cat6a()})

	require.GreaterOrEqual(t, len(m.Rows), 6)
	var keys []string
	for _, row := range m.Rows[:6] {
		keys = append(keys, row.Key)
	}
	assert.Equal(t, []string{RowName, RowCategory, RowPrice, RowStock, RowApplications, RowFeatures}, keys)

	for _, row := range m.Rows {
		assert.Len(t, row.Values, 2, "row %q", row.Key)
	}
}

func TestMatrixBuilder_EndToEnd(t *testing.T) {
	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{cat6(), cat6a()})

	assert.Equal(t, []string{"cat6", "cat6a"}, []string{m.Products[0].ID, m.Products[1].ID})

	price := mustRow(t, m, RowPrice)
	assert.Equal(t, []string{"$29.99", "$27.99"}, price.Values)
	assert.True(t, price.Differs)

	stock := mustRow(t, m, RowStock)
	assert.Equal(t, []string{"In Stock", "Low Stock"}, stock.Values)
	assert.Equal(t, []string{"45 units", "3 units"}, stock.Details)
	assert.True(t, stock.Differs)

	category := mustRow(t, m, RowCategory)
	assert.False(t, category.Differs)

	// Only in the first product.
	bandwidth := mustRow(t, m, "Bandwidth")
	assert.Equal(t, []string{"250 MHz", "-"}, bandwidth.Values)
	assert.True(t, bandwidth.Differs)

	shield := mustRow(t, m, "Shield")
	assert.False(t, shield.Differs)
}

func TestMatrixBuilder_SpecificationKeysUnionAndFuzzyCells(t *testing.T) {
	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{cat6(), cat6a()})

	var specKeys []string
	for _, row := range m.Rows {
		if row.Section == domain.SectionSpecifications {
			specKeys = append(specKeys, row.Key)
		}
	}
	// Exact-string union in first-seen order; "Conductor" is a separate key.
	assert.Equal(t, []string{"Conductor Type", "Shield", "Bandwidth", "Conductor"}, specKeys)

	// Each cell resolves by fuzzy lookup, so both products fill both conductor rows.
	conductorType := mustRow(t, m, "Conductor Type")
	assert.Equal(t, []string{"Solid copper", "Solid copper"}, conductorType.Values)
	assert.False(t, conductorType.Differs)

	conductor := mustRow(t, m, "Conductor")
	assert.Equal(t, []string{"Solid copper", "Solid copper"}, conductor.Values)
}

func TestMatrixBuilder_AbsenceCountsAsDifference(t *testing.T) {
	a := domain.Product{ID: "a", Specifications: []string{"Shield: Foil"}}
	b := domain.Product{ID: "b", Specifications: []string{"Shield: Foil"}}
	c := domain.Product{ID: "c", Specifications: []string{"Jacket: PVC"}}

	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{a, b, c})

	shield := mustRow(t, m, "Shield")
	assert.Equal(t, []string{"Foil", "Foil", "-"}, shield.Values)
	assert.True(t, shield.Differs)
}

func TestMatrixBuilder_ProductWithoutSpecifications(t *testing.T) {
	a := domain.Product{ID: "a", Specifications: []string{"Gauge: 23 AWG"}}
	b := domain.Product{ID: "b"}

	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{a, b})

	gauge := mustRow(t, m, "Gauge")
	assert.Equal(t, []string{"23 AWG", "-"}, gauge.Values)
	assert.True(t, gauge.Differs)
}

func TestMatrixBuilder_NoDifferenceOnSamePriceAndStockBucket(t *testing.T) {
	a := domain.Product{ID: "a", Name: "A", Price: 10, Stock: 50}
	b := domain.Product{ID: "b", Name: "B", Price: 10, Stock: 11}

	m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{a, b})

	assert.False(t, mustRow(t, m, RowPrice).Differs)
	assert.False(t, mustRow(t, m, RowStock).Differs)
	assert.True(t, mustRow(t, m, RowName).Differs)
}

func TestMatrixBuilder_ListRows(t *testing.T) {
	t.Run("quick view caps each list at three", func(t *testing.T) {
		m := NewMatrixBuilder(MatrixOptions{ListLimit: QuickViewListLimit}).Build([]domain.Product{cat6(), cat6a()})

		apps := mustRow(t, m, RowApplications)
		assert.Equal(t, domain.SectionApplications, apps.Section)
		want := [][]string{
			{"Office LAN", "PoE", "Structured cabling"},
			{"Office LAN", "PoE", "Structured cabling"},
		}
		if diff := cmp.Diff(want, apps.Lists); diff != "" {
			t.Errorf("Lists mismatch (-want +got):\n%s", diff)
		}
		assert.False(t, apps.Differs, "lists equal after capping")
	})

	t.Run("full page shows more entries", func(t *testing.T) {
		m := NewMatrixBuilder(MatrixOptions{ListLimit: FullPageListLimit}).Build([]domain.Product{cat6(), cat6a()})

		apps := mustRow(t, m, RowApplications)
		assert.Len(t, apps.Lists[0], 4)
		assert.True(t, apps.Differs)
	})

	t.Run("duplicates inside a list are dropped", func(t *testing.T) {
		m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{cat6(), cat6a()})

		features := mustRow(t, m, RowFeatures)
		assert.Equal(t, []string{"Fluke tested", "Fluke tested, Reel"}, features.Values)
		assert.True(t, features.Differs)
	})

	t.Run("order matters for list rows", func(t *testing.T) {
		a := domain.Product{ID: "a", Features: []string{"x", "y"}}
		b := domain.Product{ID: "b", Features: []string{"y", "x"}}

		m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{a, b})
		assert.True(t, mustRow(t, m, RowFeatures).Differs)
	})

	t.Run("empty list renders sentinel", func(t *testing.T) {
		a := domain.Product{ID: "a"}
		b := domain.Product{ID: "b"}

		m := NewMatrixBuilder(MatrixOptions{}).Build([]domain.Product{a, b})
		row := mustRow(t, m, RowApplications)
		assert.Equal(t, []string{"-", "-"}, row.Values)
		assert.False(t, row.Differs)
	})
}

func TestMatrixBuilder_TruncatesBeyondCapacity(t *testing.T) {
	members := []domain.Product{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}

	m := NewMatrixBuilder(MatrixOptions{}).Build(members)

	assert.Len(t, m.Products, domain.MaxComparisonItems)
	for _, row := range m.Rows {
		assert.Len(t, row.Values, domain.MaxComparisonItems)
	}
}

func TestValuesDiffer(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   bool
	}{
		{"all equal", []string{"a", "a", "a"}, false},
		{"trimmed equal", []string{"a ", " a"}, false},
		{"one differs", []string{"a", "a", "b"}, true},
		{"absence differs", []string{"a", "-"}, true},
		{"all absent", []string{"-", "-"}, false},
		{"case sensitive", []string{"PVC", "pvc"}, true},
		{"single value", []string{"a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValuesDiffer(tt.values); got != tt.want {
				t.Errorf("ValuesDiffer(%q) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$29.99", FormatPrice(29.99))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$112.50", FormatPrice(112.5))
}
