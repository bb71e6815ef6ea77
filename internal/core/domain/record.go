package domain

import (
	"slices"
	"sync"
	"time"
)

// ConfigRecord is the pipeline-owned state backing one plugin's config for one build target.
// All invalidation bookkeeping is append-only and guarded by a per-record lock.
type ConfigRecord struct {
	id          string
	environment Environment
	searchPath  ProjectPath
	isSource    bool

	mu                     sync.Mutex
	result                 any
	resultHash             string
	includedFiles          []ProjectPath
	includedSet            map[ProjectPath]struct{}
	invalidateOnFileCreate []FileCreatePredicate
	devDeps                []DevDep
	invalidateOnStartup    bool
}

// NewConfigRecord creates an empty record.
func NewConfigRecord(id string, env Environment, searchPath ProjectPath, isSource bool) *ConfigRecord {
	return &ConfigRecord{
		id:          id,
		environment: env.Clone(),
		searchPath:  searchPath,
		isSource:    isSource,
		includedSet: make(map[ProjectPath]struct{}),
	}
}

// ID returns the key the record is persisted under.
func (r *ConfigRecord) ID() string {
	return r.id
}

// Environment returns a copy of the record's build target.
func (r *ConfigRecord) Environment() Environment {
	return r.environment.Clone()
}

// SearchPath returns where config discovery starts.
func (r *ConfigRecord) SearchPath() ProjectPath {
	return r.searchPath
}

// IsSource reports whether the search path lies in user source rather than a dependency.
func (r *ConfigRecord) IsSource() bool {
	return r.isSource
}

// Result returns the last computed value.
func (r *ConfigRecord) Result() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// SetResult replaces the computed value.
func (r *ConfigRecord) SetResult(result any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
}

// ResultHash returns the content hash of the result.
func (r *ConfigRecord) ResultHash() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resultHash
}

// SetResultHash replaces the content hash of the result.
func (r *ConfigRecord) SetResultHash(hash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resultHash = hash
}

// AddIncludedFile adds a file whose contents the result depends on.
// Adding the same path twice is a no-op.
func (r *ConfigRecord) AddIncludedFile(p ProjectPath) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.includedSet[p]; ok {
		return
	}
	r.includedSet[p] = struct{}{}
	r.includedFiles = append(r.includedFiles, p)
}

// IncludedFiles returns the included files in insertion order.
func (r *ConfigRecord) IncludedFiles() []ProjectPath {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.includedFiles)
}

// AppendFileCreatePredicate records a file-create invalidation.
func (r *ConfigRecord) AppendFileCreatePredicate(p FileCreatePredicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidateOnFileCreate = append(r.invalidateOnFileCreate, p)
}

// FileCreatePredicates returns the recorded file-create invalidations in order.
func (r *ConfigRecord) FileCreatePredicates() []FileCreatePredicate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.invalidateOnFileCreate)
}

// AppendDevDep records a dev dependency.
func (r *ConfigRecord) AppendDevDep(d DevDep) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devDeps = append(r.devDeps, d)
}

// DevDeps returns the recorded dev dependencies in order.
func (r *ConfigRecord) DevDeps() []DevDep {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.devDeps)
}

// MarkInvalidateOnStartup flags the record for recomputation on every fresh process start.
func (r *ConfigRecord) MarkInvalidateOnStartup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidateOnStartup = true
}

// ShouldInvalidateOnStartup reports whether the record is flagged for startup invalidation.
func (r *ConfigRecord) ShouldInvalidateOnStartup() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalidateOnStartup
}

// RecordSnapshot is a point-in-time copy of a record's invalidation data.
type RecordSnapshot struct {
	ID                        string                `json:"id"`
	EnvironmentID             string                `json:"environmentId"`
	SearchPath                ProjectPath           `json:"searchPath"`
	IsSource                  bool                  `json:"isSource,omitzero"`
	ResultHash                string                `json:"resultHash,omitzero"`
	IncludedFiles             []ProjectPath         `json:"includedFiles,omitempty"`
	InvalidateOnFileCreate    []FileCreatePredicate `json:"invalidateOnFileCreate,omitempty"`
	DevDeps                   []DevDep              `json:"devDeps,omitempty"`
	ShouldInvalidateOnStartup bool                  `json:"shouldInvalidateOnStartup,omitzero"`
	// FileHashes maps included files to their content hash when the snapshot was stored.
	FileHashes map[string]string `json:"fileHashes,omitempty"`
	Timestamp  time.Time         `json:"timestamp,omitzero"`
}

// Snapshot copies the record's invalidation data under a single lock.
func (r *ConfigRecord) Snapshot() RecordSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RecordSnapshot{
		ID:                        r.id,
		EnvironmentID:             r.environment.ID(),
		SearchPath:                r.searchPath,
		IsSource:                  r.isSource,
		ResultHash:                r.resultHash,
		IncludedFiles:             slices.Clone(r.includedFiles),
		InvalidateOnFileCreate:    slices.Clone(r.invalidateOnFileCreate),
		DevDeps:                   slices.Clone(r.devDeps),
		ShouldInvalidateOnStartup: r.invalidateOnStartup,
	}
}
