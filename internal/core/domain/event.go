package domain

import "time"

type ProductCreatedEvent struct {
	ProductID ID        `json:"product_id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

func NewProductCreatedEvent(product *Product, count int) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Count:     count,
		CreatedAt: time.Now(),
	}
}

func (e *ProductCreatedEvent) GetName() string {
	return "product.created"
}

func (e *ProductCreatedEvent) GetEntityName() string {
	return "product"
}
