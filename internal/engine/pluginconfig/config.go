package pluginconfig

import (
	"fmt"
	"sync"

	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Config is the handle a plugin uses to read its config record and record what the
// result depends on. Obtain handles through a Registry; every mutation goes to the
// shared record, so all handles for a record observe the same state.
type Config struct {
	record   *domain.ConfigRecord
	options  *domain.BuildOptions
	searcher ports.ConfigSearcher

	pkgGroup    singleflight.Group
	pkgMu       sync.RWMutex
	pkg         domain.PackageJSON
	pkgFilePath string
}

func newConfig(opts *domain.BuildOptions, record *domain.ConfigRecord, searcher ports.ConfigSearcher) *Config {
	return &Config{
		record:   record,
		options:  opts,
		searcher: searcher,
	}
}

// Env returns the build target the config is resolved for.
func (c *Config) Env() domain.Environment {
	return c.record.Environment()
}

// SearchPath returns the absolute directory discovery starts from.
func (c *Config) SearchPath() string {
	return domain.FromProjectPath(c.options.ProjectRoot, c.record.SearchPath())
}

// Result returns the last computed value.
func (c *Config) Result() any {
	return c.record.Result()
}

// IsSource reports whether the search path lies in user source.
func (c *Config) IsSource() bool {
	return c.record.IsSource()
}

// IncludedFiles returns the absolute paths of files the result depends on.
// The returned set is a fresh copy.
func (c *Config) IncludedFiles() map[string]struct{} {
	files := c.record.IncludedFiles()
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[domain.FromProjectPath(c.options.ProjectRoot, f)] = struct{}{}
	}
	return set
}

// Snapshot returns the invalidation data recorded so far.
func (c *Config) Snapshot() domain.RecordSnapshot {
	return c.record.Snapshot()
}

// SetResult replaces the computed value.
func (c *Config) SetResult(result any) {
	c.record.SetResult(result)
}

// SetResultHash replaces the content hash of the computed value.
func (c *Config) SetResultHash(hash string) {
	c.record.SetResultHash(hash)
}

// AddIncludedFile marks a file whose contents the result depends on.
func (c *Config) AddIncludedFile(filePath string) {
	c.record.AddIncludedFile(domain.ToProjectPath(c.options.ProjectRoot, filePath))
}

// AddDevDependency marks a package whose resolved version the result depends on.
func (c *Config) AddDevDependency(dep domain.DevDepRequest) {
	c.record.AppendDevDep(domain.DevDep{
		Specifier:   dep.Specifier,
		ResolveFrom: domain.ToProjectPath(c.options.ProjectRoot, dep.ResolveFrom),
		Range:       dep.Range,
	})
}

// InvalidateOnFileCreate records that creating a matching file invalidates the result.
// A nil request, an unknown variant, or a variant missing its required field fails
// with domain.ErrInvariantViolation and records nothing.
func (c *Config) InvalidateOnFileCreate(inv domain.FileCreateInvalidation) error {
	root := c.options.ProjectRoot

	var pred domain.FileCreatePredicate
	switch v := inv.(type) {
	case domain.ByGlob:
		if v.Glob == "" {
			return invalidInvalidation(inv)
		}
		pred = domain.FileCreatePredicate{Kind: domain.PredicateGlob, Glob: v.Glob}
	case domain.ByExactPath:
		if v.FilePath == "" {
			return invalidInvalidation(inv)
		}
		pred = domain.FileCreatePredicate{
			Kind:     domain.PredicateFilePath,
			FilePath: domain.ToProjectPath(root, v.FilePath),
		}
	case domain.ByNameAbovePath:
		if v.FileName == "" || v.AboveFilePath == "" {
			return invalidInvalidation(inv)
		}
		pred = domain.FileCreatePredicate{
			Kind:          domain.PredicateAboveFilePath,
			FileName:      v.FileName,
			AboveFilePath: domain.ToProjectPath(root, v.AboveFilePath),
		}
	default:
		return invalidInvalidation(inv)
	}

	c.record.AppendFileCreatePredicate(pred)
	return nil
}

// InvalidateOnStartup flags the result as untrackable so it is recomputed on every
// fresh build process. Calling it more than once has no further effect.
func (c *Config) InvalidateOnStartup() {
	c.record.MarkInvalidateOnStartup()
}

func invalidInvalidation(inv domain.FileCreateInvalidation) error {
	err := zerr.Wrap(domain.ErrInvariantViolation, "malformed file-create invalidation")
	return zerr.With(err, "invalidation", fmt.Sprintf("%#v", inv))
}
