// Package app implements the application layer for cfgtrack.
package app

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/cfgtrack/internal/adapters/telemetry"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/cfgtrack/internal/engine/pluginconfig"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const dependencyDirName = "node_modules"

// App resolves configs on behalf of a synthetic plugin and persists what they depend on.
type App struct {
	optionsLoader ports.OptionsLoader
	registry      *pluginconfig.Registry
	store         ports.RecordStore
	hasher        ports.Hasher
	logger        ports.Logger
	tracer        ports.Tracer
	now           func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.OptionsLoader,
	registry *pluginconfig.Registry,
	store ports.RecordStore,
	hasher ports.Hasher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		optionsLoader: loader,
		registry:      registry,
		store:         store,
		hasher:        hasher,
		logger:        log,
		tracer:        tracer,
		now:           time.Now,
	}
}

// WithClock replaces the timestamp source used for snapshots.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	// From is the directory discovery starts in. Defaults to the working directory.
	From string
	// Key is the record key the snapshot is stored under. Derived from the request when empty.
	Key string
	// PackageKey is looked up in the nearest package.json before searching for files.
	PackageKey string
	// Exclude skips recording the located file as an included file.
	Exclude bool
	// Raw returns file contents as text.
	Raw bool
	// Trace logs the duration of each resolution step.
	Trace bool
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	// Result is nil when no config was found.
	Result   *domain.ConfigResult
	Snapshot domain.RecordSnapshot
}

// Resolve runs config discovery for fileNames as a plugin would, then stores the
// record's snapshot so its invalidations can be inspected later.
func (a *App) Resolve(ctx context.Context, cwd string, fileNames []string, opts ResolveOptions) (*Resolution, error) {
	if len(fileNames) == 0 && opts.PackageKey == "" {
		return nil, domain.ErrNoFileNames
	}

	tracer := a.tracer
	if opts.Trace {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewTimingProcessor(a.logger)))
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
		tracer = telemetry.NewOTelTracerWithProvider(tp, telemetry.InstrumentationName)
	}

	ctx, span := tracer.Start(ctx, "resolve")
	defer span.End()

	res, err := a.resolve(ctx, tracer, cwd, fileNames, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("key", res.Snapshot.ID)
	span.SetAttribute("found", res.Result != nil)
	return res, nil
}

func (a *App) resolve(
	ctx context.Context,
	tracer ports.Tracer,
	cwd string,
	fileNames []string,
	opts ResolveOptions,
) (*Resolution, error) {
	buildOpts, err := a.optionsLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load build options")
	}

	from := opts.From
	if from == "" {
		from = cwd
	}
	from, err = filepath.Abs(from)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve search directory"), "from", opts.From)
	}

	searchPath := domain.ToProjectPath(buildOpts.ProjectRoot, from)
	key := opts.Key
	if key == "" {
		key = RecordKey(fileNames, opts.PackageKey, searchPath)
	}

	record := domain.NewConfigRecord(key, buildOpts.Environment, searchPath, isSourcePath(searchPath))
	handle := a.registry.Obtain(buildOpts, record)
	defer a.registry.Evict(buildOpts, record)

	discoverCtx, discoverSpan := tracer.Start(ctx, "discover")
	discoverSpan.SetAttribute("names", fileNames)
	result, err := handle.GetConfig(discoverCtx, fileNames, pluginconfig.ConfigOptions{
		PackageKey: opts.PackageKey,
		Raw:        opts.Raw,
		Exclude:    opts.Exclude,
	})
	discoverSpan.RecordError(err)
	discoverSpan.End()
	if err != nil {
		return nil, zerr.With(err, "key", key)
	}

	if result != nil {
		handle.SetResult(result.Contents)
		hash, err := a.hasher.HashValue(result.Contents)
		if err != nil {
			return nil, zerr.With(err, "path", result.FilePath)
		}
		handle.SetResultHash(hash)
		a.logger.Info("resolved " + key + " from " + result.FilePath)
	} else {
		a.logger.Warn("no config found for " + key)
	}

	snap := handle.Snapshot()
	hashCtx, hashSpan := tracer.Start(ctx, "hash_included_files")
	hashSpan.SetAttribute("files", len(snap.IncludedFiles))
	snap.FileHashes, err = a.hashIncludedFiles(hashCtx, buildOpts.ProjectRoot, snap.IncludedFiles)
	hashSpan.RecordError(err)
	hashSpan.End()
	if err != nil {
		return nil, err
	}
	snap.Timestamp = a.now().UTC()

	_, persistSpan := tracer.Start(ctx, "persist")
	err = a.store.Put(buildOpts.CacheDir, snap)
	persistSpan.RecordError(err)
	persistSpan.End()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to persist record snapshot")
	}

	return &Resolution{Result: result, Snapshot: snap}, nil
}

// Inspect returns the snapshot stored for key in the project containing cwd.
func (a *App) Inspect(cwd, key string) (*domain.RecordSnapshot, error) {
	buildOpts, err := a.optionsLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load build options")
	}

	snap, err := a.store.Get(buildOpts.CacheDir, key)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRecordNotFound, "inspect failed"), "key", key)
	}
	return snap, nil
}

// RecordKey derives the default record key from a resolve request.
func RecordKey(fileNames []string, packageKey string, searchPath domain.ProjectPath) string {
	var b strings.Builder
	if packageKey != "" {
		b.WriteString(domain.PackageManifestName + "#" + packageKey)
		if len(fileNames) > 0 {
			b.WriteString(",")
		}
	}
	b.WriteString(strings.Join(fileNames, ","))
	b.WriteString("@")
	b.WriteString(searchPath.String())
	return b.String()
}

func isSourcePath(p domain.ProjectPath) bool {
	for _, segment := range strings.Split(p.String(), "/") {
		if segment == dependencyDirName {
			return false
		}
	}
	return true
}

func (a *App) hashIncludedFiles(
	ctx context.Context,
	root string,
	files []domain.ProjectPath,
) (map[string]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	hashes := make(map[string]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hash, err := a.hasher.HashFile(domain.FromProjectPath(root, file))
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to hash included file"), "file", file.String())
			}
			mu.Lock()
			hashes[file.String()] = hash
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}
