// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/cfgtrack/internal/core/domain"
)

// SearchOptions controls how a located config file is returned.
type SearchOptions struct {
	// Raw returns the file contents as text instead of a parsed structure.
	Raw bool
}

// ConfigSearcher locates named config files on a directory chain.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_searcher.go -destination=mocks/mock_config_searcher.go -package=mocks
type ConfigSearcher interface {
	// Search walks from startDir up to rootDir and returns the first file found
	// whose name is in fileNames. Closer directories win; within a directory,
	// earlier names win.
	// Returns nil, nil if no candidate exists.
	Search(ctx context.Context, rootDir, startDir string, fileNames []string, opts SearchOptions) (*domain.ConfigResult, error)
}
