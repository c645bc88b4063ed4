package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/usecase"
)

func testMatrix() domain.ComparisonMatrix {
	a := domain.Product{
		ID: "a", Name: "Cat6 UTP", Category: "Network Cables", Price: 29.99, Stock: 45,
		Specifications: []string{"Shield: Foil", "Bandwidth: 250 MHz"},
		Applications:   []string{"Office LAN", "PoE"},
	}
	b := domain.Product{
		ID: "b", Name: "Cat6A FTP", Category: "Network Cables", Price: 27.99, Stock: 3,
		Specifications: []string{"Shield: Foil"},
		Applications:   []string{"Data center"},
	}
	return usecase.NewMatrixBuilder(usecase.MatrixOptions{}).Build([]domain.Product{a, b})
}

func TestRenderMatrix(t *testing.T) {
	out := RenderMatrix(testMatrix(), RenderOptions{})

	for _, want := range []string{
		"Attribute", "Cat6 UTP", "Cat6A FTP",
		DiffMarker + "Price", "$29.99", "$27.99",
		"In Stock (45 units)", "Low Stock (3 units)",
		DiffMarker + "Bandwidth", "250 MHz",
		"Office LAN", "PoE", "Data center",
	} {
		assert.Contains(t, out, want)
	}

	assert.NotContains(t, out, DiffMarker+"Shield")
	assert.NotContains(t, out, DiffMarker+"Category")
	assert.True(t, strings.HasSuffix(out, "attributes differ\n"))
}

func TestRenderMatrix_DifferencesOnly(t *testing.T) {
	matrix := testMatrix()
	out := RenderMatrix(matrix, RenderOptions{DifferencesOnly: true})

	assert.Contains(t, out, "Bandwidth")
	assert.NotContains(t, out, "Shield")
	assert.NotContains(t, out, "Category")

	differing := len(matrix.DifferingRows())
	assert.Contains(t, out, fmt.Sprintf("%d of %d attributes differ", differing, len(matrix.Rows)))
}

func TestRenderMatrix_Empty(t *testing.T) {
	out := RenderMatrix(domain.ComparisonMatrix{}, RenderOptions{})
	assert.Equal(t, "Select at least two products to compare.\n", out)
}

func TestRenderRow(t *testing.T) {
	row := domain.MatrixRow{
		Key:     "Applications",
		Values:  []string{"A, B", "-"},
		Lists:   [][]string{{"A", "B"}, {}},
		Differs: true,
	}

	assert.Equal(t, []string{DiffMarker + "Applications", "A\nB", "-"}, renderRow(row))
}
