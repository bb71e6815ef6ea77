package domain_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cfgtrack/internal/core/domain"
)

func newRecord() *domain.ConfigRecord {
	return domain.NewConfigRecord(
		"babel:src",
		domain.Environment{Context: "browser"},
		domain.NewProjectPath("src"),
		true,
	)
}

func TestConfigRecord_IncludedFilesDeduplicated(t *testing.T) {
	rec := newRecord()

	rec.AddIncludedFile(domain.NewProjectPath("src/.babelrc"))
	rec.AddIncludedFile(domain.NewProjectPath("package.json"))
	rec.AddIncludedFile(domain.NewProjectPath("src/.babelrc"))

	assert.Equal(t, []domain.ProjectPath{
		domain.NewProjectPath("src/.babelrc"),
		domain.NewProjectPath("package.json"),
	}, rec.IncludedFiles())
}

func TestConfigRecord_AccessorsReturnCopies(t *testing.T) {
	rec := newRecord()
	rec.AddIncludedFile(domain.NewProjectPath("a.json"))
	rec.AppendDevDep(domain.DevDep{Specifier: "@babel/core", ResolveFrom: domain.NewProjectPath("src")})

	files := rec.IncludedFiles()
	files[0] = domain.NewProjectPath("changed")
	deps := rec.DevDeps()
	deps[0].Specifier = "changed"

	assert.Equal(t, "a.json", rec.IncludedFiles()[0].String())
	assert.Equal(t, "@babel/core", rec.DevDeps()[0].Specifier)
}

func TestConfigRecord_Snapshot(t *testing.T) {
	rec := newRecord()
	rec.SetResult(map[string]any{"presets": []any{"env"}})
	rec.SetResultHash("abc")
	rec.AddIncludedFile(domain.NewProjectPath("src/.babelrc"))
	rec.AppendFileCreatePredicate(domain.FileCreatePredicate{
		Kind:          domain.PredicateAboveFilePath,
		FileName:      ".babelrc",
		AboveFilePath: domain.NewProjectPath("src"),
	})
	rec.MarkInvalidateOnStartup()
	rec.MarkInvalidateOnStartup()

	snap := rec.Snapshot()

	assert.Equal(t, "babel:src", snap.ID)
	assert.Equal(t, domain.Environment{Context: "browser"}.ID(), snap.EnvironmentID)
	assert.Equal(t, "src", snap.SearchPath.String())
	assert.True(t, snap.IsSource)
	assert.Equal(t, "abc", snap.ResultHash)
	assert.Len(t, snap.IncludedFiles, 1)
	require.Len(t, snap.InvalidateOnFileCreate, 1)
	assert.Equal(t, domain.PredicateAboveFilePath, snap.InvalidateOnFileCreate[0].Kind)
	assert.True(t, snap.ShouldInvalidateOnStartup)

	// Later mutation does not leak into the snapshot.
	rec.AddIncludedFile(domain.NewProjectPath("package.json"))
	assert.Len(t, snap.IncludedFiles, 1)
}

func TestConfigRecord_ConcurrentAppend(t *testing.T) {
	rec := newRecord()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.AddIncludedFile(domain.NewProjectPath(fmt.Sprintf("f%d.json", i)))
			rec.AppendDevDep(domain.DevDep{Specifier: fmt.Sprintf("pkg-%d", i)})
			rec.AppendFileCreatePredicate(domain.FileCreatePredicate{Kind: domain.PredicateGlob, Glob: "**/*.json"})
		}()
	}
	wg.Wait()

	assert.Len(t, rec.IncludedFiles(), 50)
	assert.Len(t, rec.DevDeps(), 50)
	assert.Len(t, rec.FileCreatePredicates(), 50)
}
