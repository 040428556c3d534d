// Package storage provides the two local persistence backends and the
// adapter that arbitrates between them: a BadgerDB object store with
// effectively unbounded capacity, and a quota-bound SQLite key-value store
// used as fallback and as the compaction target.
package storage

import (
	"context"
	"errors"
)

// Logical keys under which the library persists its state. These names are
// part of the stored data layout; changing them orphans existing data.
const (
	KeyBooks      = "bookLibraryData"
	KeySettings   = "bookLibrarySettings"
	KeyBackup     = "bookLibraryDataBackup"
	KeyQuarantine = "bookLibraryQuarantine"

	// Legacy per-field keys, kept for backward-compatible reads only.
	KeyTheme       = "bookLibraryTheme"
	KeyViewMode    = "viewMode"
	KeyCurrentView = "bookLibraryCurrentView"
)

var (
	// ErrQuotaExceeded means a write was rejected because it would push the
	// store past its byte quota. This is the only storage error surfaced to
	// the user.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnavailable means a backend could not be opened or reached.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Backend is the uniform save/load contract over a concrete storage
// mechanism. Load returns (nil, nil) for a missing key; it fails only on
// decode or backend errors.
type Backend interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
	Name() string
}

// Info describes a backend for the storage-info command.
type Info struct {
	Type      string
	UsedBytes int64
	Limit     int64
}
