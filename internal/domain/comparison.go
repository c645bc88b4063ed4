package domain

// MaxComparisonItems is the capacity of a comparison selection
const MaxComparisonItems = 3

// MinComparisonItems is the member count needed before a matrix can be shown
const MinComparisonItems = 2

// MissingValue is the sentinel rendered when a product has no value for an attribute
const MissingValue = "-"

// SpecEntry is one key/value pair extracted from a specification line
type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SpecSheet is the ordered key/value view of a product's specification lines.
// The key set is only known at runtime, so it is a list rather than a struct.
type SpecSheet struct {
	Entries []SpecEntry `json:"entries"`
}

// RowSection groups matrix rows for display
type RowSection string

const (
	SectionGeneral        RowSection = "general"
	SectionApplications   RowSection = "applications"
	SectionFeatures       RowSection = "features"
	SectionSpecifications RowSection = "specifications"
)

// ProductHeader is a matrix column header
type ProductHeader struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// MatrixRow is one attribute across all compared products.
// Values has exactly one cell per product, in member order.
type MatrixRow struct {
	Key     string     `json:"key"`
	Section RowSection `json:"section"`
	Values  []string   `json:"values"`
	Lists   [][]string `json:"lists,omitempty"`
	Details []string   `json:"details,omitempty"`
	Differs bool       `json:"differs"`
}

// ComparisonMatrix is the row-oriented comparison table
type ComparisonMatrix struct {
	Products []ProductHeader `json:"products"`
	Rows     []MatrixRow     `json:"rows"`
}

// Row returns the row with the given key, if present
func (m ComparisonMatrix) Row(key string) (MatrixRow, bool) {
	for _, row := range m.Rows {
		if row.Key == key {
			return row, true
		}
	}
	return MatrixRow{}, false
}

// DifferingRows returns only rows whose values differ across products
func (m ComparisonMatrix) DifferingRows() []MatrixRow {
	var rows []MatrixRow
	for _, row := range m.Rows {
		if row.Differs {
			rows = append(rows, row)
		}
	}
	return rows
}

// IsEmpty reports whether the matrix has nothing to show
func (m ComparisonMatrix) IsEmpty() bool {
	return len(m.Products) == 0
}
