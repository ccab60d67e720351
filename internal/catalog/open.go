package catalog

import (
	"context"
	"errors"
	"fmt"

	"tankmate/internal/blob"
	"tankmate/internal/infra/persistence/postgres"
	"tankmate/internal/infra/persistence/sqlite"
)

// Driver names a catalog backend.
type Driver string

// Supported catalog drivers.
const (
	DriverFile     Driver = "file"
	DriverBlob     Driver = "blob"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// DefaultPath is the catalog file read by the file driver when none is configured.
const DefaultPath = "fish_data.json"

// DefaultBlobKey is the object key used by the blob driver when none is configured.
const DefaultBlobKey = DefaultPath

// ErrUnknownDriver is returned by Open for unrecognized drivers.
var ErrUnknownDriver = errors.New("unknown catalog driver")

// Options selects and parameterizes the catalog backend.
type Options struct {
	Driver      Driver
	Path        string
	SQLitePath  string
	PostgresDSN string
	Blob        blob.Config
	BlobKey     string
}

// Open constructs the configured backend. An empty driver selects the file driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case "", DriverFile:
		path := opts.Path
		if path == "" {
			path = DefaultPath
		}
		return NewFileBackend(path), nil
	case DriverBlob:
		store, err := blob.Open(ctx, opts.Blob)
		if err != nil {
			return nil, fmt.Errorf("open blob catalog: %w", err)
		}
		key := opts.BlobKey
		if key == "" {
			key = DefaultBlobKey
		}
		return NewBlobBackend(store, key), nil
	case DriverSQLite:
		store, err := sqlite.NewStore(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite catalog: %w", err)
		}
		return NewTableBackend(store), nil
	case DriverPostgres:
		store, err := postgres.NewStore(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres catalog: %w", err)
		}
		return NewTableBackend(store), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}
