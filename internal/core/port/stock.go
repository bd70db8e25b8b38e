package port

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// StockPort reads and writes stock counts keyed by product id.
// BatchGet omits ids without a stock record from the result.
type StockPort interface {
	Create(ctx context.Context, stock *domain.Stock) error
	GetByProductID(ctx context.Context, productID domain.ID) (*domain.Stock, error)
	BatchGet(ctx context.Context, productIDs []domain.ID) (map[domain.ID]int, error)
}
