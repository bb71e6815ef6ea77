package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/cfgtrack/internal/core/domain"
	"go.trai.ch/cfgtrack/internal/ui/output"
	"go.trai.ch/cfgtrack/internal/ui/style"
)

// textWriter renders views as an indented, colored summary.
type textWriter struct {
	r *lipgloss.Renderer
	b strings.Builder
}

func newTextWriter(w io.Writer) *textWriter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return &textWriter{r: r}
}

func (t *textWriter) heading(s string) {
	t.b.WriteString(style.Heading(t.r, s) + "\n")
}

func (t *textWriter) item(icon string, color lipgloss.Color, s string) {
	t.b.WriteString("  " + style.Icon(t.r, icon, color) + " " + s + "\n")
}

func (t *textWriter) field(name, value string) {
	fmt.Fprintf(&t.b, "  %-12s %s\n", name, value)
}

func (t *textWriter) resolve(v resolveView) {
	if v.Found {
		t.b.WriteString(style.Icon(t.r, style.Check, style.Green) + " " + v.Result.FilePath + "\n")
	} else {
		t.b.WriteString(style.Icon(t.r, style.Cross, style.Red) + " no config found\n")
	}
	t.b.WriteString("\n")
	t.record(v.Record)
}

func (t *textWriter) record(snap domain.RecordSnapshot) {
	t.heading("Record " + snap.ID)
	t.field("search path", snap.SearchPath.String())
	if snap.ResultHash != "" {
		t.field("result hash", snap.ResultHash)
	}
	if snap.IsSource {
		t.field("source", "yes")
	} else {
		t.field("source", "no")
	}

	if len(snap.IncludedFiles) > 0 {
		t.heading("Included files")
		for _, f := range snap.IncludedFiles {
			line := f.String()
			if hash, ok := snap.FileHashes[f.String()]; ok {
				line += " " + hash
			}
			t.item(style.Check, style.Green, line)
		}
	}

	if len(snap.InvalidateOnFileCreate) > 0 {
		t.heading("Invalidate on file create")
		for _, p := range snap.InvalidateOnFileCreate {
			t.item(style.Plus, style.Yellow, describePredicate(p))
		}
	}

	if len(snap.DevDeps) > 0 {
		t.heading("Dev dependencies")
		for _, d := range snap.DevDeps {
			line := d.Specifier + " from " + d.ResolveFrom.String()
			if d.Range != "" {
				line += " " + d.Range
			}
			t.item(style.Tilde, style.Muted, line)
		}
	}

	if snap.ShouldInvalidateOnStartup {
		t.heading("Invalidate on startup")
	}
}

func (t *textWriter) flush(w io.Writer) error {
	_, err := io.WriteString(w, t.b.String())
	return err
}

func describePredicate(p domain.FileCreatePredicate) string {
	switch p.Kind {
	case domain.PredicateGlob:
		return p.Glob + " (glob)"
	case domain.PredicateFilePath:
		return p.FilePath.String() + " (path)"
	case domain.PredicateAboveFilePath:
		return p.FileName + " above " + p.AboveFilePath.String()
	default:
		return string(p.Kind)
	}
}
