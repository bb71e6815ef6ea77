// Package search locates configuration files on the directory chain above a path
// and decodes them by file format.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/cfgtrack/internal/adapters/fs"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigSearcher = (*Searcher)(nil)

type format int

const (
	formatText format = iota
	formatJSON
	formatYAML
	formatTOML
)

// Searcher implements ports.ConfigSearcher on top of a FileSystem.
type Searcher struct {
	fs fs.FileSystem
}

// NewSearcher creates a Searcher reading through fsys.
func NewSearcher(fsys fs.FileSystem) *Searcher {
	return &Searcher{fs: fsys}
}

// Search walks from startDir towards rootDir and returns the first file matching
// fileNames. Within a directory, names are tried in order. The walk includes rootDir
// and stops there; a startDir outside rootDir walks to the filesystem root.
func (s *Searcher) Search(
	ctx context.Context,
	rootDir, startDir string,
	fileNames []string,
	opts ports.SearchOptions,
) (*domain.ConfigResult, error) {
	if len(fileNames) == 0 {
		return nil, nil
	}

	rootDir = filepath.Clean(rootDir)
	dir := filepath.Clean(startDir)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			found, err := s.load(candidate, opts)
			if err != nil {
				return nil, err
			}
			if found != nil {
				return found, nil
			}
		}

		if dir == rootDir {
			return nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (s *Searcher) load(path string, opts ports.SearchOptions) (*domain.ConfigResult, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, failure(domain.ErrConfigReadFailed, err, path)
	}
	if info.IsDir() {
		return nil, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, failure(domain.ErrConfigReadFailed, err, path)
	}

	if opts.Raw {
		return &domain.ConfigResult{Contents: string(data), FilePath: path}, nil
	}

	contents, err := decode(formatOf(path), data)
	if err != nil {
		return nil, failure(domain.ErrConfigParseFailed, err, path)
	}

	return &domain.ConfigResult{Contents: contents, FilePath: path}, nil
}

func formatOf(path string) format {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))

	switch {
	case base == domain.PackageManifestName, ext == ".json":
		return formatJSON
	case ext == ".yaml", ext == ".yml":
		return formatYAML
	case ext == ".toml":
		return formatTOML
	case isRCFile(base):
		return formatJSON
	default:
		return formatText
	}
}

// isRCFile reports whether base is a dotfile without an extension, such as .babelrc.
func isRCFile(base string) bool {
	return strings.HasPrefix(base, ".") && len(base) > 1 && !strings.Contains(base[1:], ".")
}

func decode(f format, data []byte) (any, error) {
	var out any
	switch f {
	case formatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		if dec.More() {
			return nil, errors.New("unexpected data after top-level value")
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		out = stringKeys(out)
	case formatTOML:
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		return string(data), nil
	}
	return out, nil
}

// stringKeys converts YAML mappings with non-string keys into map[string]any so
// decoded contents have the same shape as JSON and TOML.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// failure ties a lookup error to its sentinel while keeping the cause matchable.
func failure(sentinel, err error, path string) error {
	return zerr.With(fmt.Errorf("%w: %w", sentinel, err), "path", path)
}
