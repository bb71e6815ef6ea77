package ports

import "go.trai.ch/cfgtrack/internal/core/domain"

// OptionsLoader defines the interface for loading the build options context.
//
//go:generate mockgen -source=options_loader.go -destination=mocks/mock_options_loader.go -package=mocks
type OptionsLoader interface {
	// Load finds the project root from cwd and returns the options for it.
	Load(cwd string) (*domain.BuildOptions, error)
}
