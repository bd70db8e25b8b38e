package port

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// ProductPort reads and writes product records. GetByID returns a nil
// product and a nil error when the id is unknown.
type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
}
