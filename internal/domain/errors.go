package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product cannot be found in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCatalogUnavailable is returned when the catalog backend request fails
	ErrCatalogUnavailable = errors.New("catalog backend request failed")

	// ErrNotEnoughMembers is returned when a comparison is requested with fewer than two members
	ErrNotEnoughMembers = errors.New("at least two products are required to compare")

	// ErrNotAMember is returned when an action targets a product outside the comparison
	ErrNotAMember = errors.New("product is not part of the comparison")

	// ErrOutOfStock is returned when adding an unavailable product to the cart
	ErrOutOfStock = errors.New("product is out of stock")
)
