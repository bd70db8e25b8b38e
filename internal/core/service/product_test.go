package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/dto"
	"github.com/rafaelleal24/product-service/internal/core/port/mock"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
	"go.uber.org/mock/gomock"
)

type productServiceMocks struct {
	products *mock.MockProductPort
	stocks   *mock.MockStockPort
	broker   *mock.MockBrokerPort
	cache    *mock.MockCachePort[IdempotencyEntry[domain.CreatedProduct]]
}

func setupProductService(t *testing.T) (*ProductService, productServiceMocks) {
	ctrl := gomock.NewController(t)
	m := productServiceMocks{
		products: mock.NewMockProductPort(ctrl),
		stocks:   mock.NewMockStockPort(ctrl),
		broker:   mock.NewMockBrokerPort(ctrl),
		cache:    mock.NewMockCachePort[IdempotencyEntry[domain.CreatedProduct]](ctrl),
	}
	idempotency := NewIdempotencyService[domain.CreatedProduct](m.cache, 15*time.Minute, 10*time.Millisecond, 100*time.Millisecond)
	svc := NewProductService(m.products, m.stocks, m.broker, idempotency)
	return svc, m
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestProductService_GetOne(t *testing.T) {
	widget := &domain.Product{ID: "p-1", Title: "Widget", Description: "A widget", Price: 9.99}

	t.Run("product with stock", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), widget.ID).Return(widget, nil)
		m.stocks.EXPECT().GetByProductID(gomock.Any(), widget.ID).Return(domain.NewStock(widget.ID, 12), nil)

		got, err := svc.GetOne(context.Background(), widget.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Count != 12 {
			t.Fatalf("expected count 12, got %d", got.Count)
		}
		if got.Title != widget.Title || got.Price != widget.Price || got.Description != widget.Description {
			t.Fatalf("expected product fields to be merged, got %+v", got.Product)
		}
	})

	t.Run("product without stock defaults to zero", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), widget.ID).Return(widget, nil)
		m.stocks.EXPECT().GetByProductID(gomock.Any(), widget.ID).Return(nil, nil)

		got, err := svc.GetOne(context.Background(), widget.ID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Count != 0 {
			t.Fatalf("expected count 0, got %d", got.Count)
		}
	})

	t.Run("missing product is not found even with stock", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), domain.ID("ghost")).Return(nil, nil)

		_, err := svc.GetOne(context.Background(), "ghost")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})

	t.Run("empty id is invalid", func(t *testing.T) {
		svc, _ := setupProductService(t)

		_, err := svc.GetOne(context.Background(), "")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
	})

	t.Run("product lookup failure", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), widget.ID).
			Return(nil, serviceerrors.NewStorageError("products: get failed", errors.New("timeout")))

		_, err := svc.GetOne(context.Background(), widget.ID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
	})

	t.Run("stock lookup failure aborts", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), widget.ID).Return(widget, nil)
		m.stocks.EXPECT().GetByProductID(gomock.Any(), widget.ID).
			Return(nil, serviceerrors.NewStorageError("stocks: get failed", errors.New("timeout")))

		got, err := svc.GetOne(context.Background(), widget.ID)
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected no partial result, got %+v", got)
		}
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetByID(gomock.Any(), widget.ID).Return(widget, nil).Times(2)
		m.stocks.EXPECT().GetByProductID(gomock.Any(), widget.ID).Return(domain.NewStock(widget.ID, 3), nil).Times(2)

		first, _ := svc.GetOne(context.Background(), widget.ID)
		second, _ := svc.GetOne(context.Background(), widget.ID)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expected identical results, got %+v and %+v", first, second)
		}
	})
}

func TestProductService_GetAll(t *testing.T) {
	catalog := []*domain.Product{
		{ID: "p-1", Title: "Widget", Price: 9.99},
		{ID: "p-2", Title: "Gadget", Price: 19.99},
		{ID: "p-3", Title: "Doohickey", Price: 4.5},
	}

	t.Run("joins counts and defaults the rest", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).Return(catalog, nil)
		m.stocks.EXPECT().
			BatchGet(gomock.Any(), []domain.ID{"p-1", "p-2", "p-3"}).
			Return(map[domain.ID]int{"p-1": 4, "p-3": 0}, nil)

		got, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != len(catalog) {
			t.Fatalf("expected %d products, got %d", len(catalog), len(got))
		}

		want := map[domain.ID]int{"p-1": 4, "p-2": 0, "p-3": 0}
		for _, p := range got {
			if p.Count != want[p.ID] {
				t.Errorf("product %s: expected count %d, got %d", p.ID, want[p.ID], p.Count)
			}
		}
	})

	t.Run("empty catalog skips the stock lookup", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).Return([]*domain.Product{}, nil)

		got, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("duplicate ids are looked up once", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).Return([]*domain.Product{catalog[0], catalog[0]}, nil)
		m.stocks.EXPECT().BatchGet(gomock.Any(), []domain.ID{"p-1"}).Return(map[domain.ID]int{"p-1": 2}, nil)

		got, err := svc.GetAll(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].Count != 2 || got[1].Count != 2 {
			t.Fatalf("unexpected result %+v", got)
		}
	})

	t.Run("scan failure", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).
			Return(nil, serviceerrors.NewStorageError("products: scan failed", errors.New("timeout")))

		_, err := svc.GetAll(context.Background())
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
	})

	t.Run("batch failure aborts", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).Return(catalog, nil)
		m.stocks.EXPECT().BatchGet(gomock.Any(), gomock.Any()).
			Return(nil, serviceerrors.NewStorageError("stocks: batch get failed", errors.New("timeout")))

		got, err := svc.GetAll(context.Background())
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected no partial result, got %+v", got)
		}
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().GetAll(gomock.Any()).Return(catalog, nil).Times(2)
		m.stocks.EXPECT().BatchGet(gomock.Any(), gomock.Any()).Return(map[domain.ID]int{"p-2": 8}, nil).Times(2)

		first, _ := svc.GetAll(context.Background())
		second, _ := svc.GetAll(context.Background())
		if !reflect.DeepEqual(first, second) {
			t.Fatal("expected identical results")
		}
	})
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("without count writes no stock", func(t *testing.T) {
		svc, m := setupProductService(t)

		var written *domain.Product
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				written = p
				return nil
			})
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		created, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{Title: "Widget", Price: floatPtr(9.99)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Stock != 0 {
			t.Fatalf("expected stock 0, got %d", created.Stock)
		}
		if !domain.ValidateID(string(created.Product.ID)) {
			t.Fatalf("expected generated id, got %q", created.Product.ID)
		}
		if written != created.Product {
			t.Fatal("expected the written product to be returned")
		}
		if written.Description != "" {
			t.Fatalf("expected empty description, got %q", written.Description)
		}
	})

	t.Run("with count writes stock under the new id", func(t *testing.T) {
		svc, m := setupProductService(t)

		var productID domain.ID
		first := m.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) error {
				productID = p.ID
				return nil
			})
		m.stocks.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *domain.Stock) error {
				if s.ProductID != productID {
					t.Fatalf("expected stock for %q, got %q", productID, s.ProductID)
				}
				if s.Count != 5 {
					t.Fatalf("expected count 5, got %d", s.Count)
				}
				return nil
			}).After(first)
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e domain.Event) error {
				created, ok := e.(*domain.ProductCreatedEvent)
				if !ok || created.ProductID != productID || created.Count != 5 {
					t.Fatalf("unexpected event %+v", e)
				}
				return nil
			})

		created, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
			Title: "Widget", Price: floatPtr(9.99), Count: intPtr(5), Category: "tools",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Stock != 5 {
			t.Fatalf("expected stock 5, got %d", created.Stock)
		}
		if created.Product.Category != "tools" {
			t.Fatalf("expected category to pass through, got %q", created.Product.Category)
		}
	})

	t.Run("negative count writes no stock", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		created, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
			Title: "Widget", Price: floatPtr(9.99), Count: intPtr(-1),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Stock != 0 {
			t.Fatalf("expected stock 0, got %d", created.Stock)
		}
	})

	invalid := []struct {
		name string
		req  *dto.CreateProductRequest
	}{
		{"missing title", &dto.CreateProductRequest{Price: floatPtr(9.99)}},
		{"missing price", &dto.CreateProductRequest{Title: "Widget", Count: intPtr(5)}},
	}
	for _, tt := range invalid {
		t.Run(tt.name+" writes nothing", func(t *testing.T) {
			svc, _ := setupProductService(t)

			created, err := svc.CreateProduct(context.Background(), tt.req)
			if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
				t.Fatalf("expected KindInvalidRequest, got %v", err)
			}
			if created != nil {
				t.Fatalf("expected nil result, got %+v", created)
			}
		})
	}

	t.Run("product write failure skips stock", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(serviceerrors.NewStorageError("products: put failed", errors.New("timeout")))

		_, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
			Title: "Widget", Price: floatPtr(9.99), Count: intPtr(5),
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
	})

	t.Run("stock write failure keeps the product", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.stocks.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(serviceerrors.NewStorageError("stocks: put failed", errors.New("timeout")))

		_, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
			Title: "Widget", Price: floatPtr(9.99), Count: intPtr(5),
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindStorage) {
			t.Fatalf("expected KindStorage, got %v", err)
		}
	})

	t.Run("publish failure does not fail the create", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("channel closed"))

		created, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{Title: "Widget", Price: floatPtr(1)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created == nil {
			t.Fatal("expected created product")
		}
	})
}

func TestProductService_CreateThenRead(t *testing.T) {
	products := map[domain.ID]*domain.Product{}
	stocks := map[domain.ID]*domain.Stock{}

	svc, m := setupProductService(t)
	m.products.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) error {
			products[p.ID] = p
			return nil
		}).AnyTimes()
	m.stocks.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Stock) error {
			stocks[s.ProductID] = s
			return nil
		}).AnyTimes()
	m.products.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.ID) (*domain.Product, error) {
			return products[id], nil
		}).AnyTimes()
	m.stocks.EXPECT().GetByProductID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id domain.ID) (*domain.Stock, error) {
			return stocks[id], nil
		}).AnyTimes()
	m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name  string
		count *int
		want  int
	}{
		{"no count reads back zero", nil, 0},
		{"count reads back", intPtr(5), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
				Title: "Widget", Price: floatPtr(9.99), Count: tt.count,
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := svc.GetOne(context.Background(), created.Product.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.Count != tt.want {
				t.Fatalf("expected count %d, got %d", tt.want, got.Count)
			}
		})
	}
}

func TestProductService_CreateProductIdempotent(t *testing.T) {
	req := &dto.CreateProductRequest{Title: "Widget", Price: floatPtr(9.99)}

	t.Run("no key creates directly", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := svc.CreateProductIdempotent(context.Background(), "", req); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("first request creates and completes", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(true, nil)
		m.products.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		m.broker.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
		m.cache.EXPECT().Set(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(nil)

		created, err := svc.CreateProductIdempotent(context.Background(), "key-1", req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created == nil {
			t.Fatal("expected created product")
		}
	})

	t.Run("replay returns the stored result without writing", func(t *testing.T) {
		svc, m := setupProductService(t)
		hash, _ := HashPayload(req)
		stored := &domain.CreatedProduct{Product: &domain.Product{ID: "p-1", Title: "Widget"}, Stock: 0}

		m.cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(false, nil)
		m.cache.EXPECT().Get(gomock.Any(), "key-1").Return(&IdempotencyEntry[domain.CreatedProduct]{
			Status:      IdempotencyCompleted,
			PayloadHash: hash,
			Result:      stored,
		}, nil)

		created, err := svc.CreateProductIdempotent(context.Background(), "key-1", req)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.Product.ID != "p-1" {
			t.Fatalf("expected stored product, got %+v", created.Product)
		}
	})

	t.Run("failed create releases the key", func(t *testing.T) {
		svc, m := setupProductService(t)
		m.cache.EXPECT().SetNX(gomock.Any(), "key-1", gomock.Any(), gomock.Any()).Return(true, nil)
		m.cache.EXPECT().Del(gomock.Any(), "key-1").Return(nil)

		_, err := svc.CreateProductIdempotent(context.Background(), "key-1", &dto.CreateProductRequest{Title: "Widget"})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
	})
}
