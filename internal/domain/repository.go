package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes so memory and redis backends behave the same.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogSource is the product catalog collaborator
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}

// CartRepository is the cart collaborator that receives add-to-cart requests
type CartRepository interface {
	AddItem(ctx context.Context, sessionID string, product Product, quantity int) (*Cart, error)
	Get(ctx context.Context, sessionID string) (*Cart, error)
}
