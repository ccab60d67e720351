// Package blob is the entry point for catalog object storage. Callers hold a
// Store opened from Config; the concrete drivers under internal/infra/blob are
// reachable only through Open.
package blob

import "tankmate/internal/blob/core"

// Aliases so catalog code never imports blob/core directly.
type (
	Driver     = core.Driver
	PutOptions = core.PutOptions
	Info       = core.Info
	Store      = core.Store
)

// Drivers accepted by Open and by the catalog.blob.driver setting.
const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// ErrNotFound is wrapped by Get and Head when the catalog object is missing,
// so errors.Is(err, blob.ErrNotFound) works for every driver.
var ErrNotFound = core.ErrNotFound
