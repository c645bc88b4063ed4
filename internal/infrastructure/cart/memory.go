// Package cart holds the in-memory cart used by the storefront until checkout.
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cableworks/storefront/internal/domain"
)

// MemoryCart keeps one cart per session in memory
type MemoryCart struct {
	mutex sync.Mutex
	carts map[string]*domain.Cart
	now   func() time.Time
}

// NewMemoryCart creates an empty cart store
func NewMemoryCart() *MemoryCart {
	return &MemoryCart{
		carts: make(map[string]*domain.Cart),
		now:   time.Now,
	}
}

// AddItem adds quantity units of product to the session's cart.
// Repeated adds of the same product merge into one line.
func (m *MemoryCart) AddItem(ctx context.Context, sessionID string, product domain.Product, quantity int) (*domain.Cart, error) {
	if sessionID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidRequest
	}
	if !product.InStock() {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutOfStock, product.ID)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	c := m.cartLocked(sessionID)
	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			c.Items[i].UnitPrice = product.Price
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, domain.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
		})
	}
	c.UpdatedAt = m.now()

	return cloneCart(c), nil
}

// Get returns the session's cart, empty if nothing was added yet
func (m *MemoryCart) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidRequest
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	return cloneCart(m.cartLocked(sessionID)), nil
}

func (m *MemoryCart) cartLocked(sessionID string) *domain.Cart {
	c, ok := m.carts[sessionID]
	if !ok {
		c = &domain.Cart{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Items:     []domain.CartItem{},
			UpdatedAt: m.now(),
		}
		m.carts[sessionID] = c
	}
	return c
}

func cloneCart(c *domain.Cart) *domain.Cart {
	out := *c
	out.Items = make([]domain.CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}
