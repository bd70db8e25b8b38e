package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rafaelleal24/product-service/internal/core/dto"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/port"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

type ImportSummary struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Skipped bool   `json:"skipped"`
	Rows    int    `json:"rows"`
	Created int    `json:"created"`
	Invalid int    `json:"invalid"`
}

// ImportService hands out upload URLs for product CSV files and turns
// uploaded files into products.
type ImportService struct {
	storage        port.ObjectStoragePort
	productService *ProductService
	uploadPrefix   string
	urlExpiry      time.Duration
}

func NewImportService(storage port.ObjectStoragePort, productService *ProductService, uploadPrefix string, urlExpiry time.Duration) *ImportService {
	return &ImportService{
		storage:        storage,
		productService: productService,
		uploadPrefix:   uploadPrefix,
		urlExpiry:      urlExpiry,
	}
}

func (s *ImportService) CreateUploadURL(ctx context.Context, fileName string) (string, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return "", serviceerrors.NewInvalidRequestError("missing file name in query string")
	}

	key := s.uploadPrefix + fileName
	url, err := s.storage.PresignUpload(ctx, key, s.urlExpiry)
	if err != nil {
		logger.Error(ctx, "import: presign failed", err, map[string]any{"key": key})
		return "", err
	}

	logger.Info(ctx, "Upload URL issued", map[string]any{"key": key, "expires_in": s.urlExpiry})
	return url, nil
}

// ProcessFile parses an uploaded CSV and creates one product per valid row.
// Rows that fail validation are counted and skipped; a storage failure stops
// the file and is returned together with the progress made so far.
func (s *ImportService) ProcessFile(ctx context.Context, bucket, key string) (*ImportSummary, error) {
	summary := &ImportSummary{Bucket: bucket, Key: key}
	attrs := map[string]any{"bucket": bucket, "key": key}

	if !strings.HasPrefix(key, s.uploadPrefix) {
		logger.Debug(ctx, "import: object outside upload prefix ignored", attrs)
		summary.Skipped = true
		return summary, nil
	}

	body, err := s.storage.Open(ctx, bucket, key)
	if err != nil {
		logger.Error(ctx, "import: open object failed", err, attrs)
		return summary, err
	}
	defer body.Close()

	var rows []*dto.ImportRow
	if err := gocsv.Unmarshal(body, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		logger.Error(ctx, "import: csv parse failed", err, attrs)
		return summary, serviceerrors.NewUnprocessableEntityError("file is not a valid products csv: " + err.Error())
	}

	for i, row := range rows {
		summary.Rows++
		rowAttrs := map[string]any{"key": key, "line": i + 2, "title": row.Title, "price": row.Price, "count": row.Count}
		logger.Info(ctx, "import: parsed record", rowAttrs)

		request, err := row.ToCreateProductRequest()
		if err != nil {
			summary.Invalid++
			logger.Warn(ctx, "import: invalid record skipped", withError(rowAttrs, err))
			continue
		}

		created, err := s.productService.CreateProduct(ctx, request)
		if serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			summary.Invalid++
			logger.Warn(ctx, "import: invalid record skipped", withError(rowAttrs, err))
			continue
		}
		if err != nil {
			return summary, err
		}

		summary.Created++
		logger.Debug(ctx, "import: product created", map[string]any{"key": key, "product_id": created.Product.ID})
	}

	logger.Info(ctx, "File imported", map[string]any{
		"bucket":  bucket,
		"key":     key,
		"rows":    summary.Rows,
		"created": summary.Created,
		"invalid": summary.Invalid,
	})
	return summary, nil
}

func withError(attrs map[string]any, err error) map[string]any {
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}
