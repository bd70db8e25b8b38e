package document

import (
	"github.com/rafaelleal24/product-service/internal/core/domain"
)

type ProductDocument struct {
	ID          string  `bson:"_id"`
	Title       string  `bson:"title"`
	Description string  `bson:"description"`
	Price       float64 `bson:"price"`
	Category    string  `bson:"category,omitempty"`
	Image       string  `bson:"image,omitempty"`
	Currency    string  `bson:"currency,omitempty"`
}

func (doc ProductDocument) GetID() string {
	return doc.ID
}

func (doc *ProductDocument) ToDomain() *domain.Product {
	return &domain.Product{
		ID:          domain.ID(doc.ID),
		Title:       doc.Title,
		Description: doc.Description,
		Price:       doc.Price,
		Category:    doc.Category,
		Image:       doc.Image,
		Currency:    doc.Currency,
	}
}

func ToProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		ID:          string(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Currency:    p.Currency,
	}
}
