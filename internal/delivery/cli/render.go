// Package cli renders comparison matrices for the terminal.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cableworks/storefront/internal/domain"
)

// DiffMarker prefixes attribute names whose values differ
const DiffMarker = "≠ "

// RenderOptions controls matrix rendering
type RenderOptions struct {
	DifferencesOnly bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	diffStyle   = cellStyle.Foreground(lipgloss.Color("214")).Bold(true)
	keyStyle    = cellStyle.Foreground(lipgloss.Color("245"))
)

// RenderMatrix draws the matrix as a bordered table, one column per product.
// Rows whose values differ are marked and highlighted.
func RenderMatrix(matrix domain.ComparisonMatrix, opts RenderOptions) string {
	if matrix.IsEmpty() {
		return "Select at least two products to compare.\n"
	}

	headers := make([]string, 0, len(matrix.Products)+1)
	headers = append(headers, "Attribute")
	for _, p := range matrix.Products {
		headers = append(headers, p.Name)
	}

	var rows [][]string
	var differs []bool
	for _, row := range matrix.Rows {
		if opts.DifferencesOnly && !row.Differs {
			continue
		}
		rows = append(rows, renderRow(row))
		differs = append(differs, row.Differs)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(differs) && differs[row]:
				return diffStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d of %d attributes differ\n", len(matrix.DifferingRows()), len(matrix.Rows))
	return b.String()
}

// renderRow lays out one matrix row; list rows put each entry on its own line
func renderRow(row domain.MatrixRow) []string {
	label := row.Key
	if row.Differs {
		label = DiffMarker + label
	}

	cells := make([]string, 0, len(row.Values)+1)
	cells = append(cells, label)
	for i, v := range row.Values {
		switch {
		case len(row.Lists) > i && len(row.Lists[i]) > 0:
			v = strings.Join(row.Lists[i], "\n")
		case len(row.Details) > i && row.Details[i] != "":
			v = fmt.Sprintf("%s (%s)", v, row.Details[i])
		}
		cells = append(cells, v)
	}
	return cells
}
