package ports

import "go.trai.ch/cfgtrack/internal/core/domain"

// RecordStore defines the interface for persisting config record snapshots.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the snapshot stored for a record key below cacheDir.
	// Returns nil, nil if not found.
	Get(cacheDir, key string) (*domain.RecordSnapshot, error)

	// Put stores the snapshot.
	Put(cacheDir string, snap domain.RecordSnapshot) error
}
