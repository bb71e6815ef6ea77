package domain

import "go.trai.ch/zerr"

// Mode is the build mode the pipeline runs in.
type Mode string

const (
	// ModeDevelopment is the default mode.
	ModeDevelopment Mode = "development"
	// ModeProduction enables production builds.
	ModeProduction Mode = "production"
)

// BuildOptions is the options context a config handle is bound to.
// Handles are cached per *BuildOptions, so a pipeline shares one value across a build.
type BuildOptions struct {
	// ProjectRoot is the absolute directory all ProjectPaths are relative to.
	ProjectRoot string
	// CacheDir is the absolute directory record snapshots are persisted under.
	CacheDir string
	// Mode is the build mode.
	Mode Mode
	// Environment is the target environment records are created for by default.
	Environment Environment
}

// Validate checks that the options are usable.
func (o *BuildOptions) Validate() error {
	switch o.Mode {
	case ModeDevelopment, ModeProduction:
		return nil
	default:
		return zerr.With(zerr.Wrap(ErrInvalidMode, "invalid build options"), "mode", string(o.Mode))
	}
}
