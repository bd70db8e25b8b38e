package repository

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/adapters/mongo/document"
	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/port"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database, collectionName string) port.ProductPort {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, collectionName),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.Put(ctx, document.ToProductDocument(product))
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByKey(ctx, string(id))
	if err != nil || doc == nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].ToDomain()
	}

	return products, nil
}
