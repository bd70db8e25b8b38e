package domain

// DefaultStockCount is the count reported for a product with no stock record.
const DefaultStockCount = 0

type Product struct {
	ID          ID
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	Currency    string
}

func NewProduct(title, description string, price float64) *Product {
	return &Product{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Price:       price,
	}
}

type Stock struct {
	ProductID ID
	Count     int
}

func NewStock(productID ID, count int) *Stock {
	return &Stock{ProductID: productID, Count: count}
}

// ProductWithStock is a product joined with its stock count at read time.
// It is never persisted.
type ProductWithStock struct {
	Product
	Count int
}

// JoinStock merges a product with its stock record. A nil stock yields
// DefaultStockCount.
func JoinStock(product *Product, stock *Stock) *ProductWithStock {
	count := DefaultStockCount
	if stock != nil {
		count = stock.Count
	}
	return &ProductWithStock{Product: *product, Count: count}
}

// JoinCounts merges a product with its entry in a batch lookup result.
// Products missing from counts get DefaultStockCount.
func JoinCounts(product *Product, counts map[ID]int) *ProductWithStock {
	count, ok := counts[product.ID]
	if !ok {
		count = DefaultStockCount
	}
	return &ProductWithStock{Product: *product, Count: count}
}

type CreatedProduct struct {
	Product *Product `json:"product"`
	Stock   int      `json:"stock"`
}
