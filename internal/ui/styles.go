// Package ui renders the console report of a cptask run.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Semantic colors (adaptive light/dark)
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

// Status icons
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// Separators
const (
	SeparatorLight = "────────────────────────────────────────────────────────────"
	SeparatorHeavy = "════════════════════════════════════════════════════════════"
)

// Styles holds the styles of one renderer
type Styles struct {
	Pass   lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
}

// NewStyles builds the styles for r. The renderer decides whether colors are
// emitted, so output to a file or buffer stays plain text.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Pass:   r.NewStyle().Foreground(ColorPass),
		Warn:   r.NewStyle().Foreground(ColorWarn),
		Fail:   r.NewStyle().Foreground(ColorFail),
		Muted:  r.NewStyle().Foreground(ColorMuted),
		Accent: r.NewStyle().Foreground(ColorAccent),
		Title:  r.NewStyle().Bold(true).Foreground(ColorAccent),
		Label:  r.NewStyle().Foreground(ColorMuted),
	}
}
