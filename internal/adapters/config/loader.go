// Package config loads the build options context from cfgtrack.yaml.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables overriding options file keys.
const EnvPrefix = "CFGTRACK"

const (
	keyCacheDir                  = "cache_dir"
	keyMode                      = "mode"
	keyEnvironmentContext        = "environment.context"
	keyEnvironmentOutputFormat   = "environment.output_format"
	keyEnvironmentEngines        = "environment.engines"
	keyEnvironmentIsLibrary      = "environment.is_library"
	keyEnvironmentShouldOptimize = "environment.should_optimize"
)

var _ ports.OptionsLoader = (*Loader)(nil)

// Loader implements ports.OptionsLoader using viper.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds cfgtrack.yaml in cwd or the nearest parent and returns the options it declares.
// The directory holding the file is the project root. Without a file, cwd is the root and
// defaults apply.
func (l *Loader) Load(cwd string) (*domain.BuildOptions, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrOptionsLoadFailed.Error()), "cwd", cwd)
	}

	root, optionsPath := findOptionsFile(absCwd)

	v := viper.New()
	v.SetDefault(keyCacheDir, domain.DefaultCachePath())
	v.SetDefault(keyMode, string(domain.ModeDevelopment))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if optionsPath != "" {
		v.SetConfigFile(optionsPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrOptionsLoadFailed.Error()), "path", optionsPath)
		}
	} else if l.Logger != nil {
		l.Logger.Warn("no " + domain.OptionsFileName + " found, using " + absCwd + " as project root")
	}

	cacheDir := v.GetString(keyCacheDir)
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(root, cacheDir)
	}

	opts := &domain.BuildOptions{
		ProjectRoot: root,
		CacheDir:    filepath.Clean(cacheDir),
		Mode:        domain.Mode(v.GetString(keyMode)),
		Environment: domain.Environment{
			Context:        v.GetString(keyEnvironmentContext),
			OutputFormat:   v.GetString(keyEnvironmentOutputFormat),
			Engines:        v.GetStringMapString(keyEnvironmentEngines),
			IsLibrary:      v.GetBool(keyEnvironmentIsLibrary),
			ShouldOptimize: v.GetBool(keyEnvironmentShouldOptimize),
		},
	}
	if len(opts.Environment.Engines) == 0 {
		opts.Environment.Engines = nil
	}

	if err := opts.Validate(); err != nil {
		if optionsPath != "" {
			return nil, zerr.With(err, "path", optionsPath)
		}
		return nil, err
	}

	return opts, nil
}

// findOptionsFile walks up from dir looking for cfgtrack.yaml.
// It returns the project root and the options file path, which is empty when none exists.
func findOptionsFile(dir string) (root, optionsPath string) {
	current := dir
	for {
		candidate := filepath.Join(current, domain.OptionsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return current, candidate
		}

		parent := filepath.Dir(current)
		if parent == current {
			return dir, ""
		}
		current = parent
	}
}
