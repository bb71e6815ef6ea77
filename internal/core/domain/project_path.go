package domain

import (
	"path/filepath"
	"strings"
	"unique"
)

// ProjectPath is a path stored relative to the project root, using forward slashes.
// Paths outside the project root are kept absolute.
// The underlying string is interned since the same config paths recur across many records.
type ProjectPath struct {
	h unique.Handle[string]
}

// NewProjectPath interns an already project-relative path.
func NewProjectPath(p string) ProjectPath {
	return ProjectPath{h: unique.Make(p)}
}

// String returns the stored form of the path.
func (p ProjectPath) String() string {
	var zero unique.Handle[string]
	if p.h == zero {
		return ""
	}
	return p.h.Value()
}

// IsZero reports whether the path was never set.
func (p ProjectPath) IsZero() bool {
	var zero unique.Handle[string]
	return p.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (p ProjectPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ProjectPath) UnmarshalText(text []byte) error {
	p.h = unique.Make(string(text))
	return nil
}

// ToProjectPath converts a filesystem path into its project-relative form.
// Relative inputs are taken to be project-relative already.
// The root itself is stored as ".".
func ToProjectPath(root, p string) ProjectPath {
	clean := filepath.Clean(p)
	if !filepath.IsAbs(clean) {
		return NewProjectPath(filepath.ToSlash(clean))
	}

	rel, err := filepath.Rel(filepath.Clean(root), clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NewProjectPath(filepath.ToSlash(clean))
	}
	return NewProjectPath(filepath.ToSlash(rel))
}

// FromProjectPath converts a project-relative path back into an absolute filesystem path.
func FromProjectPath(root string, p ProjectPath) string {
	native := filepath.FromSlash(p.String())
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(root, native)
}
