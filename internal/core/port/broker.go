package port

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type BrokerPort interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
