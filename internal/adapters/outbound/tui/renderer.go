// Package tui renders reports for the terminal. Pure projection: every
// renderer is a function of the domain model and makes no decisions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Bold(true).Foreground(success)
	failStyle     = lipgloss.NewStyle().Bold(true).Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning)
	fixableStyle  = lipgloss.NewStyle().Foreground(success)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// humanizeSource turns a sniff identifier's last segment into words:
// "Generic.WhiteSpace.DisallowTabIndent" -> "Disallow Tab Indent".
func humanizeSource(source string) string {
	parts := strings.Split(source, ".")
	last := parts[len(parts)-1]
	if last == "" {
		return source
	}
	return strings.Join(camelcase.Split(last), " ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
