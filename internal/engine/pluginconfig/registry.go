// Package pluginconfig implements the config API handed to pipeline plugins:
// locating and loading configuration while recording what invalidates it.
package pluginconfig

import (
	"runtime"
	"sync"
	"weak"

	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
)

// Registry hands out exactly one Config per (options, record) pair.
//
// Options, records and handles are all held weakly: the registry never keeps any of
// them alive. Entries are dropped by runtime cleanups once an options value or record
// is collected, and a handle that was collected while its record lives on is rebuilt
// on the next Obtain.
type Registry struct {
	searcher ports.ConfigSearcher

	mu        sync.Mutex
	byOptions map[weak.Pointer[domain.BuildOptions]]*handleSet
}

type handleSet struct {
	handles map[weak.Pointer[domain.ConfigRecord]]weak.Pointer[Config]
}

type recordKey struct {
	options weak.Pointer[domain.BuildOptions]
	record  weak.Pointer[domain.ConfigRecord]
}

// NewRegistry creates a Registry whose handles search with the given searcher.
func NewRegistry(searcher ports.ConfigSearcher) *Registry {
	return &Registry{
		searcher:  searcher,
		byOptions: make(map[weak.Pointer[domain.BuildOptions]]*handleSet),
	}
}

// Obtain returns the handle for record under opts, creating it on first use.
// Repeated calls with the same pair return the same *Config.
func (r *Registry) Obtain(opts *domain.BuildOptions, record *domain.ConfigRecord) *Config {
	r.mu.Lock()
	defer r.mu.Unlock()

	optsKey := weak.Make(opts)
	set, ok := r.byOptions[optsKey]
	if !ok {
		set = &handleSet{handles: make(map[weak.Pointer[domain.ConfigRecord]]weak.Pointer[Config])}
		r.byOptions[optsKey] = set
		runtime.AddCleanup(opts, r.dropOptions, optsKey)
	}

	recKey := weak.Make(record)
	existing, ok := set.handles[recKey]
	if ok {
		if h := existing.Value(); h != nil {
			return h
		}
	} else {
		runtime.AddCleanup(record, r.dropRecord, recordKey{options: optsKey, record: recKey})
	}

	h := newConfig(opts, record, r.searcher)
	set.handles[recKey] = weak.Make(h)
	return h
}

// Evict drops the handle for record under opts. The pipeline calls this when it
// discards a record instead of waiting for the collector.
func (r *Registry) Evict(opts *domain.BuildOptions, record *domain.ConfigRecord) {
	r.dropRecord(recordKey{options: weak.Make(opts), record: weak.Make(record)})
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, set := range r.byOptions {
		for _, h := range set.handles {
			if h.Value() != nil {
				n++
			}
		}
	}
	return n
}

func (r *Registry) dropOptions(key weak.Pointer[domain.BuildOptions]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byOptions, key)
}

func (r *Registry) dropRecord(key recordKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.byOptions[key.options]
	if !ok {
		return
	}
	delete(set.handles, key.record)
}
