// Package core defines the object storage abstraction catalog documents are
// read from and published to.
package core

import (
	"context"
	"errors"
	"io"
	"maps"
	"time"
)

// Driver names a blob backend.
type Driver string

// Supported blob drivers.
const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
	// DriverMemory keeps objects in process; tests and one-shot imports only.
	DriverMemory Driver = "memory"
)

// PutOptions carries optional object attributes for Put.
type PutOptions struct {
	ContentType string
	// Metadata is flat user metadata, e.g. records=42 for a catalog document.
	Metadata map[string]string
}

// Info describes one stored catalog object.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store reads and writes whole objects by key. Put overwrites.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// ErrNotFound is wrapped by every driver when a key is absent.
var ErrNotFound = errors.New("blob: object not found")

// CloneMetadata copies md; nil stays nil.
func CloneMetadata(md map[string]string) map[string]string {
	if md == nil {
		return nil
	}
	return maps.Clone(md)
}
