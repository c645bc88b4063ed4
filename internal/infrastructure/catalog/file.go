package catalog

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cableworks/storefront/internal/domain"
)

// reloadDebounce coalesces the burst of events editors emit for one save
const reloadDebounce = 250 * time.Millisecond

// catalogFile is the on-disk YAML layout
type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// FileSource serves the catalog from a YAML file and can hot-reload it
type FileSource struct {
	path   string
	logger *zap.Logger

	mutex    sync.RWMutex
	products []domain.Product
	index    map[string]int
}

// NewFileSource loads the catalog at path
func NewFileSource(path string, logger *zap.Logger) (*FileSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src := &FileSource{path: path, logger: logger}
	if err := src.Reload(); err != nil {
		return nil, err
	}
	return src, nil
}

// Reload re-reads the file. On error the previously loaded catalog stays in place.
func (s *FileSource) Reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	products, err := ParseCatalog(raw)
	if err != nil {
		return fmt.Errorf("parse catalog %s: %w", s.path, err)
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	s.mutex.Lock()
	s.products = products
	s.index = index
	s.mutex.Unlock()

	s.logger.Info("catalog loaded", zap.String("path", s.path), zap.Int("products", len(products)))
	return nil
}

// ParseCatalog decodes and validates a YAML catalog document
func ParseCatalog(raw []byte) ([]domain.Product, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(doc.Products))
	for i := range doc.Products {
		p := &doc.Products[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("product #%d has no id", i+1)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true
		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return nil, fmt.Errorf("product %q has non-finite price", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has negative price", p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q has negative stock", p.ID)
		}
	}
	return doc.Products, nil
}

// ListProducts returns a copy of the catalog in file order
func (s *FileSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]domain.Product(nil), s.products...), nil
}

// GetProduct returns a product by ID
func (s *FileSource) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx, ok := s.index[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := s.products[idx]
	return &p, nil
}

// Watch reloads the catalog whenever the file changes and calls onReload after each
// successful reload. It blocks until ctx is cancelled.
func (s *FileSource) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than write in place.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	target := filepath.Clean(s.path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				debounce = time.After(reloadDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("catalog watcher error", zap.Error(err))
		case <-debounce:
			debounce = nil
			if err := s.Reload(); err != nil {
				s.logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
				continue
			}
			if onReload != nil {
				onReload()
			}
		}
	}
}
