package repository

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/adapters/mongo/document"
	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/port"
	"go.mongodb.org/mongo-driver/mongo"
)

type StockRepository struct {
	*BaseRepository[document.StockDocument]
}

func NewStockRepository(db *mongo.Database, collectionName string) port.StockPort {
	return &StockRepository{
		BaseRepository: NewBaseRepository[document.StockDocument](db, collectionName),
	}
}

func (r *StockRepository) Create(ctx context.Context, stock *domain.Stock) error {
	return r.Put(ctx, document.ToStockDocument(stock))
}

func (r *StockRepository) GetByProductID(ctx context.Context, id domain.ID) (*domain.Stock, error) {
	doc, err := r.FindByKey(ctx, string(id))
	if err != nil || doc == nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

// BatchGet returns the counts of the given products in one round trip.
// Products without a stock record are absent from the map.
func (r *StockRepository) BatchGet(ctx context.Context, ids []domain.ID) (map[domain.ID]int, error) {
	counts := make(map[domain.ID]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = string(id)
	}

	docs, err := r.FindByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		counts[domain.ID(doc.ProductID)] = doc.Count
	}

	return counts, nil
}
