package pluginconfig

import (
	"context"
	"math"
	"path/filepath"

	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/zerr"
)

// ConfigOptions controls a discovery call.
type ConfigOptions struct {
	// PackageKey, when set, is looked up in the nearest package.json first.
	// A present, truthy value is returned without searching for fileNames.
	PackageKey string
	// Raw returns file contents as text instead of parsing them.
	Raw bool
	// Exclude skips adding the located file to the included files.
	Exclude bool
}

// GetConfigFrom searches for the first of fileNames on the directory chain above
// searchPath. A relative searchPath is taken relative to the project root.
// Returns nil, nil when nothing is found.
//
// Before searching, an above-path invalidation is recorded for every candidate name,
// whatever the outcome, so a closer config created later invalidates the result.
func (c *Config) GetConfigFrom(
	ctx context.Context,
	searchPath string,
	fileNames []string,
	opts ConfigOptions,
) (*domain.ConfigResult, error) {
	if !filepath.IsAbs(searchPath) {
		searchPath = filepath.Join(c.options.ProjectRoot, searchPath)
	}

	if opts.PackageKey != "" {
		pkg, err := c.GetPackage(ctx)
		if err != nil {
			return nil, err
		}
		if value, ok := pkg[opts.PackageKey]; ok && truthy(value) {
			return &domain.ConfigResult{
				Contents: value,
				FilePath: c.packageFilePath(),
			}, nil
		}
	}

	if len(fileNames) == 0 {
		return nil, nil
	}

	for _, fileName := range fileNames {
		err := c.InvalidateOnFileCreate(domain.ByNameAbovePath{
			FileName:      fileName,
			AboveFilePath: searchPath,
		})
		if err != nil {
			return nil, err
		}
	}

	found, err := c.searcher.Search(ctx, c.options.ProjectRoot, searchPath, fileNames, ports.SearchOptions{Raw: opts.Raw})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}

	if !opts.Exclude {
		c.AddIncludedFile(found.FilePath)
	}

	return &domain.ConfigResult{
		Contents: found.Contents,
		FilePath: found.FilePath,
	}, nil
}

// GetConfig searches for fileNames starting at the handle's search path.
func (c *Config) GetConfig(ctx context.Context, fileNames []string, opts ConfigOptions) (*domain.ConfigResult, error) {
	return c.GetConfigFrom(ctx, c.SearchPath(), fileNames, opts)
}

// GetPackage returns the nearest package.json, or nil when there is none.
// A found manifest is cached for the lifetime of the handle; concurrent first calls
// share a single search, which is not cancelled when one of them gives up.
func (c *Config) GetPackage(ctx context.Context) (domain.PackageJSON, error) {
	if pkg := c.cachedPackage(); pkg != nil {
		return pkg, nil
	}

	searchCtx := context.WithoutCancel(ctx)
	ch := c.pkgGroup.DoChan(domain.PackageManifestName, func() (any, error) {
		// A caller that lost the race with a finished search must not search again.
		if pkg := c.cachedPackage(); pkg != nil {
			return pkg, nil
		}

		found, err := c.GetConfig(searchCtx, []string{domain.PackageManifestName}, ConfigOptions{})
		if err != nil {
			return nil, err
		}
		if found == nil {
			return domain.PackageJSON(nil), nil
		}

		pkg, ok := asPackageJSON(found.Contents)
		if !ok {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "package manifest is not a JSON object")
			return nil, zerr.With(err, "path", found.FilePath)
		}

		c.pkgMu.Lock()
		c.pkg = pkg
		c.pkgFilePath = found.FilePath
		c.pkgMu.Unlock()

		return pkg, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		pkg, _ := res.Val.(domain.PackageJSON)
		return pkg, nil
	}
}

func (c *Config) cachedPackage() domain.PackageJSON {
	c.pkgMu.RLock()
	defer c.pkgMu.RUnlock()
	return c.pkg
}

func (c *Config) packageFilePath() string {
	c.pkgMu.RLock()
	defer c.pkgMu.RUnlock()
	return c.pkgFilePath
}

func asPackageJSON(contents any) (domain.PackageJSON, bool) {
	switch m := contents.(type) {
	case domain.PackageJSON:
		return m, m != nil
	case map[string]any:
		return domain.PackageJSON(m), m != nil
	default:
		return nil, false
	}
}

// truthy mirrors how manifest values are treated as present: nil, false, zero,
// NaN and the empty string count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
