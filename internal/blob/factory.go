package blob

import (
	"context"
	"fmt"

	fsstore "tankmate/internal/infra/blob/fs"
	memorystore "tankmate/internal/infra/blob/memory"
	s3store "tankmate/internal/infra/blob/s3"
)

// S3Config re-exports the S3 adapter configuration.
type S3Config = s3store.Config

// Config selects and parameterizes a blob backend.
type Config struct {
	Driver Driver
	// FSRoot is the directory root for the fs driver (default ./catalogdata).
	FSRoot string
	S3     S3Config
}

// Open constructs the configured Store. An empty driver selects the filesystem.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return fsstore.New(cfg.FSRoot)
	case DriverS3:
		return s3store.New(ctx, cfg.S3)
	case DriverMemory:
		return memorystore.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewMemory returns an in-memory Store suitable for tests.
func NewMemory() Store { return memorystore.New() }
