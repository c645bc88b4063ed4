package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cableworks/storefront/internal/domain"
	"github.com/cableworks/storefront/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// pickerPath is where matrix requests with too few members are sent
const pickerPath = "/api/v1/compare/picker"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog    *usecase.CatalogService
	comparison *usecase.ComparisonService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, comparison *usecase.ComparisonService) *Handler {
	return &Handler{catalog: catalog, comparison: comparison}
}

// addItemRequest is the body of POST /compare/items
type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// productDetail is a product with its parsed specification sheet
type productDetail struct {
	domain.Product
	StockStatus domain.StockStatus `json:"stockStatus"`
	SpecSheet   domain.SpecSheet   `json:"specSheet"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-backend",
		"version": Version,
	})
}

// ListProducts lists or searches the catalog
func (h *Handler) ListProducts(c *gin.Context) {
	limit, err := optionalInt(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	products, err := h.catalog.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct returns a product with its parsed specifications
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, productDetail{
		Product:     *product,
		StockStatus: product.StockStatus(),
		SpecSheet:   usecase.ParseSpecifications(product.Specifications),
	})
}

// CompareIndicator returns the floating indicator state
func (h *Handler) CompareIndicator(c *gin.Context) {
	c.JSON(http.StatusOK, h.comparison.Indicator(sessionID(c)))
}

// ComparePicker returns the product picker grid
func (h *Handler) ComparePicker(c *gin.Context) {
	view, err := h.comparison.Picker(c.Request.Context(), sessionID(c), c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CompareMatrix returns the comparison table, or redirects to the picker when
// fewer than two products are selected
func (h *Handler) CompareMatrix(c *gin.Context) {
	variant := usecase.MatrixVariant(c.DefaultQuery("view", string(usecase.VariantModal)))
	if variant != usecase.VariantModal && variant != usecase.VariantPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "view must be 'modal' or 'page'"})
		return
	}

	view, err := h.comparison.Matrix(c.Request.Context(), sessionID(c), variant)
	if errors.Is(err, domain.ErrNotEnoughMembers) {
		c.Redirect(http.StatusSeeOther, pickerPath)
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// AddCompareItem adds a product to the comparison
func (h *Handler) AddCompareItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	view, err := h.comparison.Add(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ToggleCompareItem adds or removes a product, as a picker tile click does
func (h *Handler) ToggleCompareItem(c *gin.Context) {
	view, err := h.comparison.Toggle(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveCompareItem removes a product from the comparison
func (h *Handler) RemoveCompareItem(c *gin.Context) {
	c.JSON(http.StatusOK, h.comparison.Remove(sessionID(c), c.Param("id")))
}

// ClearCompare empties the comparison
func (h *Handler) ClearCompare(c *gin.Context) {
	c.JSON(http.StatusOK, h.comparison.Clear(sessionID(c)))
}

// AddComparedToCart forwards a compared product to the cart
func (h *Handler) AddComparedToCart(c *gin.Context) {
	var req domain.AddToCartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	cart, err := h.comparison.AddToCart(c.Request.Context(), sessionID(c), c.Param("id"), req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// GetCart returns the session's cart
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.comparison.Cart(c.Request.Context(), sessionID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(cart))
}

// handleError maps domain errors to HTTP status codes
func (h *Handler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrNotAMember):
		c.JSON(http.StatusConflict, gin.H{"error": "product is not in the comparison"})
	case errors.Is(err, domain.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "product is out of stock"})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "catalog temporarily rate limited"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog temporarily unavailable"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "catalog request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func cartResponse(cart *domain.Cart) gin.H {
	return gin.H{
		"id":        cart.ID,
		"items":     cart.Items,
		"total":     cart.Total(),
		"updatedAt": cart.UpdatedAt,
	}
}

func optionalInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidRequest
	}
	return n, nil
}
