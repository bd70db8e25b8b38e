package service

import (
	"context"

	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/dto"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/port"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

// ProductService joins products with their stock counts and registers new
// products. The product and stock writes of CreateProduct are not atomic.
type ProductService struct {
	productRepository port.ProductPort
	stockRepository   port.StockPort
	broker            port.BrokerPort
	idempotency       *IdempotencyService[domain.CreatedProduct]
}

func NewProductService(
	productRepository port.ProductPort,
	stockRepository port.StockPort,
	broker port.BrokerPort,
	idempotency *IdempotencyService[domain.CreatedProduct],
) *ProductService {
	return &ProductService{
		productRepository: productRepository,
		stockRepository:   stockRepository,
		broker:            broker,
		idempotency:       idempotency,
	}
}

func (s *ProductService) GetOne(ctx context.Context, id domain.ID) (*domain.ProductWithStock, error) {
	if !domain.ValidateID(string(id)) {
		return nil, serviceerrors.NewInvalidRequestError("missing productId")
	}

	product, err := s.productRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, serviceerrors.NewNotFoundError("product not found")
	}

	stock, err := s.stockRepository.GetByProductID(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.JoinStock(product, stock), nil
}

// GetAll returns every product with its count, in scan order. Counts come
// from a single batch lookup; an empty catalog skips it.
func (s *ProductService) GetAll(ctx context.Context) ([]*domain.ProductWithStock, error) {
	products, err := s.productRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[domain.ID]int{}
	if ids := uniqueIDs(products); len(ids) > 0 {
		counts, err = s.stockRepository.BatchGet(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	joined := make([]*domain.ProductWithStock, len(products))
	for i, product := range products {
		joined[i] = domain.JoinCounts(product, counts)
	}
	return joined, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.CreatedProduct, error) {
	input, err := request.Validate()
	if err != nil {
		return nil, err
	}

	product := domain.NewProduct(input.Title, input.Description, input.Price)
	product.Category = input.Category
	product.Image = input.Image
	product.Currency = input.Currency

	if err := s.productRepository.Create(ctx, product); err != nil {
		logger.Error(ctx, "product: create failed", err, map[string]any{
			"title": input.Title,
			"price": input.Price,
		})
		return nil, err
	}

	count := domain.DefaultStockCount
	if input.HasStock {
		if err := s.stockRepository.Create(ctx, domain.NewStock(product.ID, input.Count)); err != nil {
			// the product stays and reads back with the default count
			logger.Error(ctx, "stock: create failed", err, map[string]any{
				"product_id": product.ID,
				"count":      input.Count,
			})
			return nil, err
		}
		count = input.Count
	}

	s.publishCreated(ctx, product, count)

	logger.Info(ctx, "Product created", map[string]any{"product_id": product.ID, "count": count})
	return &domain.CreatedProduct{Product: product, Stock: count}, nil
}

// CreateProductIdempotent behaves like CreateProduct, except that a
// repeated call with the same key and payload returns the first result
// instead of creating another product.
func (s *ProductService) CreateProductIdempotent(ctx context.Context, idempotencyKey string, request *dto.CreateProductRequest) (*domain.CreatedProduct, error) {
	if idempotencyKey == "" || s.idempotency == nil {
		return s.CreateProduct(ctx, request)
	}

	payloadHash, err := HashPayload(request)
	if err != nil {
		return nil, serviceerrors.NewInvalidRequestError(err.Error())
	}

	existing, err := s.idempotency.Claim(ctx, idempotencyKey, payloadHash)
	if err != nil {
		logger.Error(ctx, "idempotency: claim failed", err, map[string]any{
			"idempotency_key": idempotencyKey,
		})
		return nil, err
	}
	if existing != nil {
		logger.Info(ctx, "Product create replayed", map[string]any{
			"idempotency_key": idempotencyKey,
			"product_id":      existing.Product.ID,
		})
		return existing, nil
	}

	created, err := s.CreateProduct(ctx, request)
	if err != nil {
		s.idempotency.Release(ctx, idempotencyKey)
		return nil, err
	}

	s.idempotency.Complete(ctx, idempotencyKey, payloadHash, created)
	return created, nil
}

func (s *ProductService) publishCreated(ctx context.Context, product *domain.Product, count int) {
	if s.broker == nil {
		return
	}
	if err := s.broker.Publish(ctx, domain.NewProductCreatedEvent(product, count)); err != nil {
		logger.Warn(ctx, "product: created event not published", map[string]any{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}
}

func uniqueIDs(products []*domain.Product) []domain.ID {
	seen := make(map[domain.ID]struct{}, len(products))
	ids := make([]domain.ID, 0, len(products))
	for _, product := range products {
		if _, ok := seen[product.ID]; ok {
			continue
		}
		seen[product.ID] = struct{}{}
		ids = append(ids, product.ID)
	}
	return ids
}
