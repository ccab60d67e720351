package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tankmate/internal/blob"
)

// Source loads a fresh catalog snapshot. Each call returns a new Catalog.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Sink replaces the stored catalog with records.
type Sink interface {
	Replace(ctx context.Context, records []Record) error
}

// Backend is a readable and writable catalog store.
type Backend interface {
	Source
	Sink
	Close() error
}

// PayloadStore persists one JSON document per record, in order. The SQL
// persistence stores implement it.
type PayloadStore interface {
	Payloads(ctx context.Context) ([][]byte, error)
	ReplacePayloads(ctx context.Context, payloads [][]byte) error
	Close() error
}

// FileBackend reads and writes a JSON array on the local filesystem.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend over the JSON file at path.
func NewFileBackend(path string) *FileBackend { return &FileBackend{path: path} }

// Path returns the catalog file path.
func (b *FileBackend) Path() string { return b.path }

// Load decodes the file and normalizes its records.
func (b *FileBackend) Load(context.Context) (*Catalog, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()
	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.path, err)
	}
	return FromRecords(records), nil
}

// Replace writes records through a temp file and renames it into place.
func (b *FileBackend) Replace(_ context.Context, records []Record) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := Encode(tmp, records); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace catalog file: %w", err)
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }

// BlobBackend stores the catalog as a single JSON object in a blob store.
type BlobBackend struct {
	store blob.Store
	key   string
}

// NewBlobBackend returns a backend over key in store.
func NewBlobBackend(store blob.Store, key string) *BlobBackend {
	return &BlobBackend{store: store, key: key}
}

// Load fetches and decodes the catalog object.
func (b *BlobBackend) Load(ctx context.Context) (*Catalog, error) {
	_, rc, err := b.store.Get(ctx, b.key)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog object: %w", err)
	}
	defer func() { _ = rc.Close() }()
	records, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.key, err)
	}
	return FromRecords(records), nil
}

// Replace uploads records as the catalog object, overwriting it.
func (b *BlobBackend) Replace(ctx context.Context, records []Record) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}
	_, err := b.store.Put(ctx, b.key, &buf, blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"records": fmt.Sprintf("%d", len(records))},
	})
	if err != nil {
		return fmt.Errorf("publish catalog object: %w", err)
	}
	return nil
}

// Close is a no-op.
func (b *BlobBackend) Close() error { return nil }

// TableBackend adapts a PayloadStore, one row per record.
type TableBackend struct {
	store PayloadStore
}

// NewTableBackend wraps store.
func NewTableBackend(store PayloadStore) *TableBackend { return &TableBackend{store: store} }

// Load decodes every stored payload in order and normalizes the result.
func (b *TableBackend) Load(ctx context.Context) (*Catalog, error) {
	payloads, err := b.store.Payloads(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(payloads))
	for i, payload := range payloads {
		rec, err := DecodeRecord(payload)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return FromRecords(records), nil
}

// Replace encodes records and swaps the table contents.
func (b *TableBackend) Replace(ctx context.Context, records []Record) error {
	payloads, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	return b.store.ReplacePayloads(ctx, payloads)
}

// Close closes the underlying store.
func (b *TableBackend) Close() error { return b.store.Close() }
