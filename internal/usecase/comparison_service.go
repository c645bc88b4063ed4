package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/observability"
)

// MatrixVariant selects the quick modal table or the full comparison page
type MatrixVariant string

const (
	VariantModal MatrixVariant = "modal"
	VariantPage  MatrixVariant = "page"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	QuickListLimit int
	FullListLimit  int
	PickerLimit    int
}

// ComparisonService drives the comparison surfaces for a session
type ComparisonService struct {
	sessions     *SessionStore
	catalog      *CatalogService
	cart         domain.CartRepository
	quickBuilder *MatrixBuilder
	fullBuilder  *MatrixBuilder
	pickerLimit  int
	logger       *zap.Logger
	metrics      *observability.Metrics
}

// NewComparisonService creates a new comparison service with dependencies
func NewComparisonService(
	sessions *SessionStore,
	catalog *CatalogService,
	cart domain.CartRepository,
	config ComparisonServiceConfig,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *ComparisonService {
	fullLimit := config.FullListLimit
	if fullLimit <= 0 {
		fullLimit = FullPageListLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	return &ComparisonService{
		sessions:     sessions,
		catalog:      catalog,
		cart:         cart,
		quickBuilder: NewMatrixBuilder(MatrixOptions{ListLimit: config.QuickListLimit}),
		fullBuilder:  NewMatrixBuilder(MatrixOptions{ListLimit: fullLimit}),
		pickerLimit:  config.PickerLimit,
		logger:       logger,
		metrics:      metrics,
	}
}

// Indicator returns the floating indicator for the session
func (s *ComparisonService) Indicator(sessionID string) IndicatorView {
	return BuildIndicatorView(s.sessions.Selection(sessionID))
}

// Picker returns the product picker grid, optionally filtered by a search query
func (s *ComparisonService) Picker(ctx context.Context, sessionID, query string) (*PickerView, error) {
	products, err := s.catalog.Search(ctx, query, s.pickerLimit)
	if err != nil {
		return nil, err
	}
	view := BuildPickerView(s.sessions.Selection(sessionID), products)
	return &view, nil
}

// Matrix builds the comparison table for the session. Member snapshots are refreshed
// from the catalog first so edits to a product show up in an open comparison.
// Returns domain.ErrNotEnoughMembers when fewer than two products are selected.
func (s *ComparisonService) Matrix(ctx context.Context, sessionID string, variant MatrixVariant) (*MatrixView, error) {
	sel := s.sessions.Selection(sessionID)
	if !sel.CanCompare() {
		return nil, domain.ErrNotEnoughMembers
	}

	latest, err := s.catalog.GetProducts(ctx, sel.IDs())
	if err != nil {
		s.logger.Warn("comparison refresh failed, using selected snapshots",
			zap.String("session", sessionID), zap.Error(err))
	} else {
		sel.Refresh(latest)
	}

	builder := s.quickBuilder
	if variant == VariantPage {
		builder = s.fullBuilder
	} else {
		variant = VariantModal
	}

	view, err := BuildMatrixView(sel, builder)
	if err != nil {
		return nil, err
	}

	s.metrics.MatrixBuilds.WithLabelValues(string(variant)).Inc()
	s.metrics.MatrixRows.Observe(float64(len(view.Matrix.Rows)))
	s.logger.Debug("comparison matrix built",
		zap.String("session", sessionID),
		zap.Strings("products", sel.IDs()),
		zap.Int("rows", len(view.Matrix.Rows)),
		zap.Int("differing", view.DifferenceCount))
	return view, nil
}

// Add puts a catalog product into the session's comparison
func (s *ComparisonService) Add(ctx context.Context, sessionID, productID string) (IndicatorView, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return IndicatorView{}, err
	}

	sel := s.sessions.Selection(sessionID)
	s.record("add", sessionID, productID, sel.Add(*product))
	return BuildIndicatorView(sel), nil
}

// Remove takes a product out of the session's comparison
func (s *ComparisonService) Remove(sessionID, productID string) IndicatorView {
	sel := s.sessions.Selection(sessionID)
	s.record("remove", sessionID, productID, sel.Remove(productID))
	return BuildIndicatorView(sel)
}

// Toggle adds or removes a product, as a picker tile click does
func (s *ComparisonService) Toggle(ctx context.Context, sessionID, productID string) (IndicatorView, error) {
	sel := s.sessions.Selection(sessionID)
	if sel.IsMember(productID) {
		return s.Remove(sessionID, productID), nil
	}
	return s.Add(ctx, sessionID, productID)
}

// Clear empties the session's comparison
func (s *ComparisonService) Clear(sessionID string) IndicatorView {
	sel := s.sessions.Selection(sessionID)
	changed := sel.Len() > 0
	sel.Clear()
	s.record("clear", sessionID, "", changed)
	return BuildIndicatorView(sel)
}

// AddToCart forwards a compared product to the cart collaborator.
// Only current members can be forwarded from the matrix.
func (s *ComparisonService) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}

	var product *domain.Product
	for _, m := range s.sessions.Selection(sessionID).Members() {
		if m.ID == productID {
			product = &m
			break
		}
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotAMember, productID)
	}

	cart, err := s.cart.AddItem(ctx, sessionID, *product, quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("compared product added to cart",
		zap.String("session", sessionID),
		zap.String("product", productID),
		zap.Int("quantity", quantity))
	return cart, nil
}

// Cart returns the session's cart
func (s *ComparisonService) Cart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.cart.Get(ctx, sessionID)
}

func (s *ComparisonService) record(op, sessionID, productID string, changed bool) {
	s.metrics.SelectionChanges.WithLabelValues(op, observability.Outcome(changed)).Inc()
	s.logger.Debug("comparison selection",
		zap.String("op", op),
		zap.String("session", sessionID),
		zap.String("product", productID),
		zap.Bool("changed", changed))
}
