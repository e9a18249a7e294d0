package shipping

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ObjectStorageService stores attachment bytes in object storage.
// The S3 implementation lives in the infrastructure layer.
type ObjectStorageService interface {
	// PutObject uploads an object under the given storage key
	PutObject(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateDownloadURL generates a presigned URL for downloading an object.
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// RateCache caches postage quotes. Rates for a given package are
// stable over short windows, so quotes are cached with a TTL.
type RateCache interface {
	// Get returns the cached amount for the key, if present
	Get(ctx context.Context, key string) (decimal.Decimal, bool)

	// Set stores the amount under the key with the given TTL
	Set(ctx context.Context, key string, amount decimal.Decimal, ttl time.Duration)
}
