package document

import (
	"github.com/rafaelleal24/product-service/internal/core/domain"
)

// StockDocument is keyed by the product id it counts.
type StockDocument struct {
	ProductID string `bson:"_id"`
	Count     int    `bson:"count"`
}

func (doc StockDocument) GetID() string {
	return doc.ProductID
}

func (doc *StockDocument) ToDomain() *domain.Stock {
	return &domain.Stock{
		ProductID: domain.ID(doc.ProductID),
		Count:     doc.Count,
	}
}

func ToStockDocument(s *domain.Stock) *StockDocument {
	return &StockDocument{
		ProductID: string(s.ProductID),
		Count:     s.Count,
	}
}
