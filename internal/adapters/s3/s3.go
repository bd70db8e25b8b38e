package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/rafaelleal24/product-service/internal/adapters/config"
	"github.com/rafaelleal24/product-service/internal/core/port"
	"github.com/rafaelleal24/product-service/internal/core/serviceerrors"
)

// Storage signs uploads into the import bucket and streams uploaded objects
// back. It works against AWS S3 or any S3 compatible endpoint.
type Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewStorage(ctx context.Context, cfg config.S3Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
	}, nil
}

var _ port.ObjectStoragePort = (*Storage)(nil)

func (s *Storage) PresignUpload(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", serviceerrors.NewStorageError("s3: presign failed", err)
	}
	return req.URL, nil
}

// Open streams an object. The caller closes the returned body.
func (s *Storage) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, serviceerrors.NewNotFoundError(fmt.Sprintf("object %s/%s not found", bucket, key))
		}
		return nil, serviceerrors.NewStorageError("s3: get object failed", err)
	}
	return out.Body, nil
}

// EnsureBucket creates the import bucket if it does not exist yet.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	if err := s.HealthCheck(ctx); err == nil {
		return nil
	}

	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("bucket %s unavailable: %w", s.bucket, err)
	}
	return nil
}

func (s *Storage) Bucket() string {
	return s.bucket
}
