package dto

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the create-product payload. Title and Price are
// required; everything else is optional. Count, when present and
// non-negative, becomes the initial stock. A count that is not a JSON
// integer decodes as absent instead of failing the request.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Count       *int     `json:"count"`
	Category    string   `json:"category,omitempty"`
	Image       string   `json:"image,omitempty"`
	Currency    string   `json:"currency,omitempty"`
}

// CreateProductInput is a CreateProductRequest that passed Validate.
type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	Currency    string
	// HasStock is false when no usable initial count was supplied.
	HasStock bool
	Count    int
}

func (r *CreateProductRequest) UnmarshalJSON(data []byte) error {
	type plain CreateProductRequest
	aux := struct {
		*plain
		Count json.RawMessage `json:"count"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Count = parseCount(aux.Count)
	return nil
}

func parseCount(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil
	}
	number, ok := value.(json.Number)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(number.String())
	if err != nil || !d.IsInteger() {
		return nil
	}
	if d.LessThan(decimal.NewFromInt(math.MinInt32)) || d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return nil
	}
	count := int(d.IntPart())
	return &count
}

func (r *CreateProductRequest) Validate() (CreateProductInput, error) {
	if r == nil {
		return CreateProductInput{}, serviceerrors.NewInvalidRequestError(InvalidPayloadMessage)
	}
	if r.Title == "" || r.Price == nil {
		return CreateProductInput{}, serviceerrors.NewInvalidRequestError(InvalidPayloadMessage)
	}
	if math.IsInf(*r.Price, 0) || math.IsNaN(*r.Price) {
		return CreateProductInput{}, serviceerrors.NewInvalidRequestError(InvalidPayloadMessage)
	}

	input := CreateProductInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       *r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Currency:    r.Currency,
	}
	if r.Count != nil && *r.Count >= 0 {
		input.HasStock = true
		input.Count = *r.Count
	}
	return input, nil
}

// InvalidPayloadMessage is returned for any create payload that fails to
// decode or validate.
const InvalidPayloadMessage = "invalid payload, required: title (string), price (number)"
