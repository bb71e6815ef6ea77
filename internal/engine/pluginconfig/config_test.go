package pluginconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/engine/pluginconfig"
)

func newHandle(t *testing.T) (*pluginconfig.Config, *domain.ConfigRecord) {
	t.Helper()
	rec := newRecord("babel", "packages/app/src")
	return pluginconfig.NewRegistry(nil).Obtain(newOptions("/proj"), rec), rec
}

func TestConfig_ReadViews(t *testing.T) {
	h, rec := newHandle(t)
	rec.SetResult(map[string]any{"presets": []any{"env"}})

	assert.Equal(t, "/proj/packages/app/src", h.SearchPath())
	assert.True(t, h.IsSource())
	assert.Equal(t, "browser", h.Env().Context)
	assert.Equal(t, map[string]any{"presets": []any{"env"}}, h.Result())
}

func TestConfig_IncludedFilesIsFreshCopy(t *testing.T) {
	h, rec := newHandle(t)
	h.AddIncludedFile("/proj/packages/app/.babelrc")

	files := h.IncludedFiles()
	assert.Equal(t, map[string]struct{}{"/proj/packages/app/.babelrc": {}}, files)

	files["/proj/injected"] = struct{}{}
	delete(files, "/proj/packages/app/.babelrc")

	assert.Equal(t, []domain.ProjectPath{domain.NewProjectPath("packages/app/.babelrc")}, rec.IncludedFiles())
	assert.Len(t, h.IncludedFiles(), 1)
}

func TestConfig_SetResultAndHash(t *testing.T) {
	h, rec := newHandle(t)

	h.SetResult("first")
	h.SetResult("second")
	h.SetResultHash("deadbeef")

	assert.Equal(t, "second", rec.Result())
	assert.Equal(t, "deadbeef", rec.ResultHash())
}

func TestConfig_AddDevDependency(t *testing.T) {
	h, rec := newHandle(t)

	h.AddDevDependency(domain.DevDepRequest{
		Specifier:   "@babel/core",
		ResolveFrom: "/proj/packages/app/src/index.js",
		Range:       "^7.0.0",
	})

	assert.Equal(t, []domain.DevDep{{
		Specifier:   "@babel/core",
		ResolveFrom: domain.NewProjectPath("packages/app/src/index.js"),
		Range:       "^7.0.0",
	}}, rec.DevDeps())
}

func TestConfig_InvalidateOnFileCreate(t *testing.T) {
	tests := []struct {
		name string
		req  domain.FileCreateInvalidation
		want domain.FileCreatePredicate
	}{
		{
			name: "glob stored verbatim",
			req:  domain.ByGlob{Glob: "**/.browserslistrc"},
			want: domain.FileCreatePredicate{Kind: domain.PredicateGlob, Glob: "**/.browserslistrc"},
		},
		{
			name: "exact path made project relative",
			req:  domain.ByExactPath{FilePath: "/proj/babel.config.json"},
			want: domain.FileCreatePredicate{
				Kind:     domain.PredicateFilePath,
				FilePath: domain.NewProjectPath("babel.config.json"),
			},
		},
		{
			name: "above path made project relative",
			req:  domain.ByNameAbovePath{FileName: "x", AboveFilePath: "/proj/a/b"},
			want: domain.FileCreatePredicate{
				Kind:          domain.PredicateAboveFilePath,
				FileName:      "x",
				AboveFilePath: domain.NewProjectPath("a/b"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newHandle(t)

			require.NoError(t, h.InvalidateOnFileCreate(tt.req))

			assert.Equal(t, []domain.FileCreatePredicate{tt.want}, rec.FileCreatePredicates())
		})
	}
}

func TestConfig_InvalidateOnFileCreate_Malformed(t *testing.T) {
	tests := []struct {
		name string
		req  domain.FileCreateInvalidation
	}{
		{name: "nil request", req: nil},
		{name: "empty glob", req: domain.ByGlob{}},
		{name: "empty file path", req: domain.ByExactPath{}},
		{name: "file name without anchor", req: domain.ByNameAbovePath{FileName: "x"}},
		{name: "anchor without file name", req: domain.ByNameAbovePath{AboveFilePath: "/proj/a"}},
		{name: "pointer variant", req: &domain.ByGlob{Glob: "*.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newHandle(t)

			err := h.InvalidateOnFileCreate(tt.req)

			require.Error(t, err)
			require.ErrorIs(t, err, domain.ErrInvariantViolation)
			assert.ErrorContains(t, err, "malformed file-create invalidation")
			assert.Empty(t, rec.FileCreatePredicates())
		})
	}
}

func TestConfig_InvalidateOnStartup_Idempotent(t *testing.T) {
	h, rec := newHandle(t)
	assert.False(t, rec.ShouldInvalidateOnStartup())

	h.InvalidateOnStartup()
	h.InvalidateOnStartup()

	assert.True(t, rec.ShouldInvalidateOnStartup())
	assert.True(t, h.Snapshot().ShouldInvalidateOnStartup)
}
