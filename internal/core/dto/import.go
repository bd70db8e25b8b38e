package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ImportRow is one line of an uploaded products CSV. Columns are read as
// text so a single malformed cell only rejects its own row.
type ImportRow struct {
	Title       string `csv:"title"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Count       string `csv:"count"`
	Category    string `csv:"category"`
	Image       string `csv:"image"`
	Currency    string `csv:"currency"`
}

func (r *ImportRow) ToCreateProductRequest() (*CreateProductRequest, error) {
	req := &CreateProductRequest{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Category:    strings.TrimSpace(r.Category),
		Image:       strings.TrimSpace(r.Image),
		Currency:    strings.TrimSpace(r.Currency),
	}

	if raw := strings.TrimSpace(r.Price); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("price %q is not a number", raw)
		}
		value := price.Round(2).InexactFloat64()
		req.Price = &value
	}

	if raw := strings.TrimSpace(r.Count); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("count %q is not an integer", raw)
		}
		req.Count = &count
	}

	return req, nil
}
