// Package style holds the colors and icons shared by terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Accent = lipgloss.Color("#8B5CF6")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Plus    = "+"
)

// Heading renders s as a bold accented heading.
func Heading(r *lipgloss.Renderer, s string) string {
	return r.NewStyle().Bold(true).Foreground(Accent).Render(s)
}

// Icon renders icon in color.
func Icon(r *lipgloss.Renderer, icon string, color lipgloss.Color) string {
	return r.NewStyle().Foreground(color).Render(icon)
}
