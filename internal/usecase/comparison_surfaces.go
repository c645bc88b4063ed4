package usecase

import "github.com/cableworks/storefront/internal/domain"

// ViewMode identifies one of the comparison surfaces
type ViewMode string

const (
	ModeIndicator ViewMode = "indicator"
	ModePicker    ViewMode = "picker"
	ModeMatrix    ViewMode = "matrix"
)

// ResolveMode applies the surface transition rule: the matrix cannot be entered with
// fewer than two members and falls back to the picker.
func ResolveMode(requested ViewMode, memberCount int) ViewMode {
	if requested == ModeMatrix && memberCount < domain.MinComparisonItems {
		return ModePicker
	}
	return requested
}

// Thumbnail is a compact product reference shown in the floating indicator
type Thumbnail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// IndicatorView is the floating comparison indicator
type IndicatorView struct {
	Mode       ViewMode    `json:"mode"`
	Visible    bool        `json:"visible"`
	Count      int         `json:"count"`
	Capacity   int         `json:"capacity"`
	Items      []Thumbnail `json:"items"`
	CanCompare bool        `json:"canCompare"`
	CanClear   bool        `json:"canClear"`
}

// PickerTile is one product tile in the picker grid
type PickerTile struct {
	Product  domain.Product `json:"product"`
	Selected bool           `json:"selected"`
	Disabled bool           `json:"disabled"`
}

// PickerView is the product picker grid over the catalog
type PickerView struct {
	Mode       ViewMode     `json:"mode"`
	Tiles      []PickerTile `json:"tiles"`
	Count      int          `json:"count"`
	Capacity   int          `json:"capacity"`
	CanAddMore bool         `json:"canAddMore"`
	CanCompare bool         `json:"canCompare"`
}

// ProductActions are the per-column actions of the matrix view
type ProductActions struct {
	ProductID    string `json:"productId"`
	CanRemove    bool   `json:"canRemove"`
	CanAddToCart bool   `json:"canAddToCart"`
}

// MatrixView is the comparison table with its actions
type MatrixView struct {
	Mode            ViewMode                `json:"mode"`
	Matrix          domain.ComparisonMatrix `json:"matrix"`
	Actions         []ProductActions        `json:"actions"`
	CanAddMore      bool                    `json:"canAddMore"`
	DifferenceCount int                     `json:"differenceCount"`
}

// BuildIndicatorView renders the indicator from the current selection
func BuildIndicatorView(sel *ComparisonSelection) IndicatorView {
	members := sel.Members()
	items := make([]Thumbnail, len(members))
	for i, m := range members {
		items[i] = Thumbnail{ID: m.ID, Name: m.Name, ImageURL: m.ImageURL}
	}

	return IndicatorView{
		Mode:       ModeIndicator,
		Visible:    len(members) > 0,
		Count:      len(members),
		Capacity:   domain.MaxComparisonItems,
		Items:      items,
		CanCompare: len(members) >= domain.MinComparisonItems,
		CanClear:   len(members) > 0,
	}
}

// BuildPickerView renders a tile per product. Non-member tiles are disabled once the
// selection is full; member tiles stay enabled so they can be toggled off.
func BuildPickerView(sel *ComparisonSelection, products []domain.Product) PickerView {
	canAddMore := sel.CanAddMore()
	tiles := make([]PickerTile, len(products))
	for i, p := range products {
		selected := sel.IsMember(p.ID)
		tiles[i] = PickerTile{
			Product:  p,
			Selected: selected,
			Disabled: !selected && !canAddMore,
		}
	}

	count := sel.Len()
	return PickerView{
		Mode:       ModePicker,
		Tiles:      tiles,
		Count:      count,
		Capacity:   domain.MaxComparisonItems,
		CanAddMore: canAddMore,
		CanCompare: count >= domain.MinComparisonItems,
	}
}

// BuildMatrixView renders the matrix for the current members.
// Returns ErrNotEnoughMembers so callers can redirect to the picker.
func BuildMatrixView(sel *ComparisonSelection, builder *MatrixBuilder) (*MatrixView, error) {
	members := sel.Members()
	if ResolveMode(ModeMatrix, len(members)) != ModeMatrix {
		return nil, domain.ErrNotEnoughMembers
	}

	matrix := builder.Build(members)
	actions := make([]ProductActions, len(members))
	for i, m := range members {
		actions[i] = ProductActions{
			ProductID:    m.ID,
			CanRemove:    true,
			CanAddToCart: m.InStock(),
		}
	}

	return &MatrixView{
		Mode:            ModeMatrix,
		Matrix:          matrix,
		Actions:         actions,
		CanAddMore:      len(members) < domain.MaxComparisonItems,
		DifferenceCount: len(matrix.DifferingRows()),
	}, nil
}
