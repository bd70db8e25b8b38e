package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/port"
)

//go:embed products.json
var defaultCatalog []byte

type entry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Count       *int    `json:"count"`
}

// Catalog is the starter product list shipped with the service. It is read
// once and never modified.
type Catalog struct {
	entries []entry
}

func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

func Parse(data []byte) (*Catalog, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if !domain.ValidateID(e.ID) || e.Title == "" {
			return nil, fmt.Errorf("seed catalog entry %d: id and title are required", i)
		}
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("seed catalog entry %d: duplicate id %s", i, e.ID)
		}
		if e.Count != nil && *e.Count < 0 {
			return nil, fmt.Errorf("seed catalog entry %d: negative count", i)
		}
		seen[e.ID] = struct{}{}
	}

	return &Catalog{entries: entries}, nil
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Products returns fresh copies; callers may not change the catalog.
func (c *Catalog) Products() []*domain.Product {
	products := make([]*domain.Product, len(c.entries))
	for i, e := range c.entries {
		products[i] = e.product()
	}
	return products
}

func (e entry) product() *domain.Product {
	return &domain.Product{
		ID:          domain.ID(e.ID),
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Image:       e.Image,
		Currency:    e.Currency,
	}
}

type Seeder struct {
	products port.ProductPort
	stocks   port.StockPort
}

func NewSeeder(products port.ProductPort, stocks port.StockPort) *Seeder {
	return &Seeder{products: products, stocks: stocks}
}

// Apply upserts every catalog product and, where the entry has one, its
// stock count. Running it twice leaves the store unchanged.
func (s *Seeder) Apply(ctx context.Context, catalog *Catalog) error {
	for _, e := range catalog.entries {
		if err := s.products.Create(ctx, e.product()); err != nil {
			return fmt.Errorf("seed product %s: %w", e.ID, err)
		}
		if e.Count == nil {
			continue
		}
		if err := s.stocks.Create(ctx, domain.NewStock(domain.ID(e.ID), *e.Count)); err != nil {
			return fmt.Errorf("seed stock %s: %w", e.ID, err)
		}
	}

	logger.Info(ctx, "Catalog seeded", map[string]any{"products": catalog.Len()})
	return nil
}
