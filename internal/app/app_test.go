package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cfgtrack/internal/adapters/telemetry"
	"go.trai.ch/cfgtrack/internal/app"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/core/ports"
	"go.trai.ch/cfgtrack/internal/core/ports/mocks"
	"go.trai.ch/cfgtrack/internal/engine/pluginconfig"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type testDeps struct {
	loader   *mocks.MockOptionsLoader
	searcher *mocks.MockConfigSearcher
	store    *mocks.MockRecordStore
	hasher   *mocks.MockHasher
	logger   *mocks.MockLogger
	opts     *domain.BuildOptions
}

func newTestApp(t *testing.T) (*app.App, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		loader:   mocks.NewMockOptionsLoader(ctrl),
		searcher: mocks.NewMockConfigSearcher(ctrl),
		store:    mocks.NewMockRecordStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		opts: &domain.BuildOptions{
			ProjectRoot: "/proj",
			CacheDir:    "/proj/.cfgtrack",
			Mode:        domain.ModeDevelopment,
			Environment: domain.Environment{Context: "browser"},
		},
	}

	a := app.New(
		deps.loader,
		pluginconfig.NewRegistry(deps.searcher),
		deps.store,
		deps.hasher,
		deps.logger,
		telemetry.NewOTelTracer(telemetry.InstrumentationName),
	).WithClock(func() time.Time { return fixedNow })
	return a, deps
}

func TestApp_Resolve_Found(t *testing.T) {
	a, deps := newTestApp(t)
	contents := map[string]any{"presets": []any{"@babel/preset-env"}}

	deps.loader.EXPECT().Load("/proj/src").Return(deps.opts, nil)
	deps.searcher.EXPECT().
		Search(gomock.Any(), "/proj", "/proj/src", []string{"babel.config.json"}, ports.SearchOptions{}).
		Return(&domain.ConfigResult{Contents: contents, FilePath: "/proj/babel.config.json"}, nil)
	deps.hasher.EXPECT().HashValue(contents).Return("00000000000000aa", nil)
	deps.hasher.EXPECT().HashFile("/proj/babel.config.json").Return("00000000000000bb", nil)
	deps.logger.EXPECT().Info(gomock.Any())

	var stored domain.RecordSnapshot
	deps.store.EXPECT().Put("/proj/.cfgtrack", gomock.Any()).
		DoAndReturn(func(_ string, snap domain.RecordSnapshot) error {
			stored = snap
			return nil
		})

	res, err := a.Resolve(context.Background(), "/proj/src", []string{"babel.config.json"}, app.ResolveOptions{})

	require.NoError(t, err)
	require.NotNil(t, res.Result)
	assert.Equal(t, "/proj/babel.config.json", res.Result.FilePath)
	assert.Equal(t, contents, res.Result.Contents)

	snap := res.Snapshot
	assert.Equal(t, stored, snap)
	assert.Equal(t, "babel.config.json@src", snap.ID)
	assert.Equal(t, deps.opts.Environment.ID(), snap.EnvironmentID)
	assert.Equal(t, domain.NewProjectPath("src"), snap.SearchPath)
	assert.True(t, snap.IsSource)
	assert.Equal(t, "00000000000000aa", snap.ResultHash)
	assert.Equal(t, []domain.ProjectPath{domain.NewProjectPath("babel.config.json")}, snap.IncludedFiles)
	assert.Equal(t, map[string]string{"babel.config.json": "00000000000000bb"}, snap.FileHashes)
	assert.Equal(t, []domain.FileCreatePredicate{{
		Kind:          domain.PredicateAboveFilePath,
		FileName:      "babel.config.json",
		AboveFilePath: domain.NewProjectPath("src"),
	}}, snap.InvalidateOnFileCreate)
	assert.Equal(t, fixedNow, snap.Timestamp)
}

func TestApp_Resolve_NotFound(t *testing.T) {
	a, deps := newTestApp(t)

	deps.loader.EXPECT().Load("/proj/src").Return(deps.opts, nil)
	deps.searcher.EXPECT().Search(gomock.Any(), "/proj", "/proj/src", []string{".toolrc"}, gomock.Any()).Return(nil, nil)
	deps.logger.EXPECT().Warn(gomock.Any())
	deps.store.EXPECT().Put("/proj/.cfgtrack", gomock.Any()).Return(nil)

	res, err := a.Resolve(context.Background(), "/proj/src", []string{".toolrc"}, app.ResolveOptions{})

	require.NoError(t, err)
	assert.Nil(t, res.Result)
	assert.Empty(t, res.Snapshot.IncludedFiles)
	assert.Nil(t, res.Snapshot.FileHashes)
	assert.Len(t, res.Snapshot.InvalidateOnFileCreate, 1, "a missing config still invalidates when one appears")
}

func TestApp_Resolve_OptionsFlowToDiscovery(t *testing.T) {
	a, deps := newTestApp(t)

	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil)
	deps.searcher.EXPECT().
		Search(gomock.Any(), "/proj", "/proj/node_modules/lib", []string{"tool.json"}, ports.SearchOptions{Raw: true}).
		Return(&domain.ConfigResult{Contents: `{"a":1}`, FilePath: "/proj/node_modules/lib/tool.json"}, nil)
	deps.hasher.EXPECT().HashValue(`{"a":1}`).Return("h", nil)
	deps.logger.EXPECT().Info(gomock.Any())
	deps.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	res, err := a.Resolve(context.Background(), "/proj", []string{"tool.json"}, app.ResolveOptions{
		From:    "/proj/node_modules/lib",
		Key:     "custom-key",
		Raw:     true,
		Exclude: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "custom-key", res.Snapshot.ID)
	assert.False(t, res.Snapshot.IsSource, "paths inside node_modules are not user source")
	assert.Empty(t, res.Snapshot.IncludedFiles)
}

func TestApp_Resolve_NoFileNames(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Resolve(context.Background(), "/proj", nil, app.ResolveOptions{})

	require.ErrorIs(t, err, domain.ErrNoFileNames)
}

func TestApp_Resolve_LoaderError(t *testing.T) {
	a, deps := newTestApp(t)
	deps.loader.EXPECT().Load("/proj").Return(nil, domain.ErrInvalidMode)

	_, err := a.Resolve(context.Background(), "/proj", []string{"a.json"}, app.ResolveOptions{})

	require.ErrorIs(t, err, domain.ErrInvalidMode)
	assert.ErrorContains(t, err, "failed to load build options")
}

func TestApp_Resolve_SearchError(t *testing.T) {
	a, deps := newTestApp(t)
	ioErr := errors.New("permission denied")

	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil)
	deps.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, ioErr)

	_, err := a.Resolve(context.Background(), "/proj", []string{"a.json"}, app.ResolveOptions{})

	require.ErrorIs(t, err, ioErr)
}

func TestApp_Resolve_StoreError(t *testing.T) {
	a, deps := newTestApp(t)
	putErr := errors.New("disk full")

	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil)
	deps.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	deps.logger.EXPECT().Warn(gomock.Any())
	deps.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(putErr)

	_, err := a.Resolve(context.Background(), "/proj", []string{"a.json"}, app.ResolveOptions{})

	require.ErrorIs(t, err, putErr)
	assert.ErrorContains(t, err, "failed to persist record snapshot")
}

func TestApp_Resolve_HashFileError(t *testing.T) {
	a, deps := newTestApp(t)
	hashErr := errors.New("vanished")

	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil)
	deps.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ConfigResult{Contents: map[string]any{}, FilePath: "/proj/a.json"}, nil)
	deps.hasher.EXPECT().HashValue(gomock.Any()).Return("h", nil)
	deps.hasher.EXPECT().HashFile("/proj/a.json").Return("", hashErr)
	deps.logger.EXPECT().Info(gomock.Any())

	_, err := a.Resolve(context.Background(), "/proj", []string{"a.json"}, app.ResolveOptions{})

	require.ErrorIs(t, err, hashErr)
	assert.ErrorContains(t, err, "failed to hash included file")
}

func TestApp_Inspect(t *testing.T) {
	a, deps := newTestApp(t)
	snap := &domain.RecordSnapshot{ID: "a.json@."}

	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil).Times(2)
	deps.store.EXPECT().Get("/proj/.cfgtrack", "a.json@.").Return(snap, nil)
	deps.store.EXPECT().Get("/proj/.cfgtrack", "missing").Return(nil, nil)

	got, err := a.Inspect("/proj", "a.json@.")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = a.Inspect("/proj", "missing")
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestRecordKey(t *testing.T) {
	tests := []struct {
		name       string
		fileNames  []string
		packageKey string
		searchPath string
		expected   string
	}{
		{name: "file names", fileNames: []string{".babelrc", "babel.config.json"}, searchPath: "src", expected: ".babelrc,babel.config.json@src"},
		{name: "package key only", packageKey: "babel", searchPath: ".", expected: "package.json#babel@."},
		{name: "package key and names", fileNames: []string{".babelrc"}, packageKey: "babel", searchPath: "src", expected: "package.json#babel,.babelrc@src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, app.RecordKey(tt.fileNames, tt.packageKey, domain.NewProjectPath(tt.searchPath)))
		})
	}
}

func TestApp_Resolve_Trace(t *testing.T) {
	a, deps := newTestApp(t)

	var lines []string
	deps.loader.EXPECT().Load("/proj").Return(deps.opts, nil)
	deps.searcher.EXPECT().Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	deps.logger.EXPECT().Warn(gomock.Any())
	deps.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) }).AnyTimes()
	deps.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	_, err := a.Resolve(context.Background(), "/proj", []string{"a.json"}, app.ResolveOptions{Trace: true})
	require.NoError(t, err)

	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "  discover "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  hash_included_files "), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "  persist "), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "resolve "), lines[3])
}
