package domain

// FileCreateInvalidation is a request to invalidate a config when a file is created.
// It is one of ByGlob, ByExactPath or ByNameAbovePath. Paths in a request are absolute.
type FileCreateInvalidation interface {
	fileCreateInvalidation()
}

// ByGlob invalidates when any file matching Glob is created or deleted in the project.
// Globs are project-root relative and stored verbatim.
type ByGlob struct {
	Glob string
}

// ByExactPath invalidates when a file is created or removed at FilePath.
type ByExactPath struct {
	FilePath string
}

// ByNameAbovePath invalidates when a file named FileName is created anywhere on the
// directory chain from AboveFilePath up to the project root.
type ByNameAbovePath struct {
	FileName      string
	AboveFilePath string
}

func (ByGlob) fileCreateInvalidation()          {}
func (ByExactPath) fileCreateInvalidation()     {}
func (ByNameAbovePath) fileCreateInvalidation() {}

// PredicateKind identifies which field of a FileCreatePredicate is populated.
type PredicateKind string

const (
	// PredicateGlob matches a glob pattern.
	PredicateGlob PredicateKind = "glob"
	// PredicateFilePath matches an exact project-relative path.
	PredicateFilePath PredicateKind = "filePath"
	// PredicateAboveFilePath matches a file name on the chain above a path.
	PredicateAboveFilePath PredicateKind = "aboveFilePath"
)

// FileCreatePredicate is the stored, project-relative form of a FileCreateInvalidation.
type FileCreatePredicate struct {
	Kind          PredicateKind `json:"kind"`
	Glob          string        `json:"glob,omitzero"`
	FilePath      ProjectPath   `json:"filePath,omitzero"`
	FileName      string        `json:"fileName,omitzero"`
	AboveFilePath ProjectPath   `json:"aboveFilePath,omitzero"`
}

// DevDepRequest declares that a result depends on the resolved version of a package.
// ResolveFrom is an absolute path.
type DevDepRequest struct {
	Specifier   string
	ResolveFrom string
	// Range optionally restricts the accepted versions, e.g. "^7.0.0".
	Range string
}

// DevDep is the stored form of a DevDepRequest.
type DevDep struct {
	Specifier   string      `json:"specifier"`
	ResolveFrom ProjectPath `json:"resolveFrom"`
	Range       string      `json:"range,omitzero"`
}
