package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/product-service/internal/adapters/http/handlers"
	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/dto"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/service"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type ProductController struct {
	productService *service.ProductService
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
	Currency    string  `json:"currency,omitempty"`
}

// ProductWithStockResponse is a product with its current stock count.
type ProductWithStockResponse struct {
	ProductResponse
	Count int `json:"count"`
}

type CreatedProductResponse struct {
	ID      string          `json:"id"`
	Product ProductResponse `json:"product"`
	Stock   int             `json:"stock"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          string(product.ID),
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       product.Image,
		Currency:    product.Currency,
	}
}

func NewProductWithStockResponse(product *domain.ProductWithStock) ProductWithStockResponse {
	return ProductWithStockResponse{
		ProductResponse: NewProductResponse(&product.Product),
		Count:           product.Count,
	}
}

func NewCreatedProductResponse(created *domain.CreatedProduct) CreatedProductResponse {
	return CreatedProductResponse{
		ID:      string(created.Product.ID),
		Product: NewProductResponse(created.Product),
		Stock:   created.Stock,
	}
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// CreateProduct godoc
// @Summary     Create a product
// @Description Creates a product and, when count is given, its initial stock
// @Tags        products
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header   string                   false "Idempotency key"
// @Param       request         body     dto.CreateProductRequest true  "Product data"
// @Success     201             {object} CreatedProductResponse
// @Failure     400             {object} handlers.ErrorResponse
// @Failure     409             {object} handlers.ErrorResponse
// @Failure     422             {object} handlers.ErrorResponse
// @Failure     429             {object} handlers.ErrorResponse
// @Failure     500             {object} handlers.ErrorResponse
// @Router      /api/v1/products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		logger.Warn(c.Request.Context(), "create product: payload rejected", map[string]any{
			"error": err.Error(),
		})
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(dto.InvalidPayloadMessage))
		return
	}

	created, err := pc.productService.CreateProductIdempotent(c.Request.Context(), c.GetHeader(IdempotencyKeyHeader), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCreatedProductResponse(created))
}

// GetAll godoc
// @Summary     List all products
// @Description Returns every product with its stock count
// @Tags        products
// @Produce     json
// @Success     200 {array}  ProductWithStockResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/products [get]
func (pc *ProductController) GetAll(c *gin.Context) {
	products, err := pc.productService.GetAll(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	response := make([]ProductWithStockResponse, len(products))
	for i, product := range products {
		response[i] = NewProductWithStockResponse(product)
	}

	c.JSON(http.StatusOK, response)
}

// GetOne godoc
// @Summary     Get a product
// @Description Returns one product with its stock count
// @Tags        products
// @Produce     json
// @Param       productId path     string true "Product ID"
// @Success     200       {object} ProductWithStockResponse
// @Failure     400       {object} handlers.ErrorResponse
// @Failure     404       {object} handlers.ErrorResponse
// @Failure     500       {object} handlers.ErrorResponse
// @Router      /api/v1/products/{productId} [get]
func (pc *ProductController) GetOne(c *gin.Context) {
	product, err := pc.productService.GetOne(c.Request.Context(), domain.ID(c.Param("productId")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProductWithStockResponse(product))
}
