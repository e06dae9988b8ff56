package infra

import (
	"context"
	"time"
)

// ObjectStorage is the blob store surface the handlers and the sweeper need:
// bucket bootstrap, binary writes/removals, and time-limited signed URL
// issuance. MinioClient is the production implementation.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
	RemoveObject(ctx context.Context, bucket, key string) error
	PresignedGetURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
