package port

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ObjectStoragePort interface {
	PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error)
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}
