package domain

// Stock thresholds used to bucket inventory into a StockStatus
const (
	LowStockThreshold = 10 // stock above this is "In Stock"
)

// StockStatus is the categorical stock label shown to shoppers
type StockStatus string

const (
	StockIn  StockStatus = "In Stock"
	StockLow StockStatus = "Low Stock"
	StockOut StockStatus = "Out of Stock"
)

// Product represents a catalog product as delivered by the catalog source.
// Specifications are free text, conventionally "Key: Value" but not enforced.
type Product struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Category       string   `json:"category" yaml:"category"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Price          float64  `json:"price" yaml:"price"`
	Stock          int      `json:"stock" yaml:"stock"`
	ImageURL       string   `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
	Specifications []string `json:"specifications" yaml:"specifications"`
	Applications   []string `json:"applications" yaml:"applications"`
	Features       []string `json:"features" yaml:"features"`
}

// StockStatus derives the categorical stock label from the stock count
func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock > LowStockThreshold:
		return StockIn
	case p.Stock > 0:
		return StockLow
	default:
		return StockOut
	}
}

// InStock reports whether at least one unit is available
func (p Product) InStock() bool {
	return p.Stock > 0
}
