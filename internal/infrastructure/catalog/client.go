package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cableworks/storefront/internal/domain"
)

// maxAttempts bounds retries for transient backend failures
const maxAttempts = 3

// ClientConfig configures the remote catalog client
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client reads the catalog from the managed backend's REST API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     time.Duration
	logger      *zap.Logger
}

// NewClient creates a new remote catalog client
func NewClient(config ClientConfig, logger *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		backoff:     500 * time.Millisecond,
		logger:      logger.Named("catalog-client"),
	}
}

// ListProducts fetches the full catalog
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products")
	if err != nil {
		return nil, err
	}

	var records []productRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decode product list: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(records))
	for i := range records {
		p := MapToProduct(&records[i])
		if p.ID == "" {
			c.logger.Warn("skipping catalog record without id", zap.Int("index", i))
			continue
		}
		products = append(products, p)
	}

	c.logger.Debug("catalog listed", zap.Int("products", len(products)))
	return products, nil
}

// GetProduct fetches a single product by ID
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	body, err := c.get(ctx, c.baseURL+"/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var record productRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("%w: decode product: %v", domain.ErrCatalogUnavailable, err)
	}

	product := MapToProduct(&record)
	if product.ID == "" {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

// get performs a rate-limited GET, retrying transport errors, 429 and 5xx responses
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, waitError(ctx, err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		switch {
		case err != nil:
			lastErr = err
		case status == http.StatusOK:
			return body, nil
		case status == http.StatusNotFound:
			return nil, domain.ErrProductNotFound
		case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, status)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrCatalogUnavailable, status, string(body))
		}

		c.logger.Warn("catalog request failed",
			zap.String("url", reqURL),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}
	}
	return nil, lastErr
}

// waitError classifies a rate limiter Wait failure. A done context is returned as is;
// a deadline too close for the next token counts as the deadline being exceeded.
func waitError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if _, ok := ctx.Deadline(); ok {
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
}

// doRequest executes one HTTP GET with the backend's auth headers
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Storefront/1.0")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read body: %v", domain.ErrCatalogUnavailable, err)
	}
	return body, resp.StatusCode, nil
}
