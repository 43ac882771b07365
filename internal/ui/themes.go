package ui

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/HumanizePro/internal/session"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI colors
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Focus      lipgloss.Color

	// Gauge colors
	Human lipgloss.Color
	AI    lipgloss.Color
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, border, foreground, muted, focus, human, ai string) Theme {
	return Theme{
		Name:       name,
		Primary:    lipgloss.Color(primary),
		Secondary:  lipgloss.Color(secondary),
		Accent:     lipgloss.Color(accent),
		Success:    lipgloss.Color(success),
		Warning:    lipgloss.Color(warning),
		Error:      lipgloss.Color(errorColor),
		Border:     lipgloss.Color(border),
		Foreground: lipgloss.Color(foreground),
		Muted:      lipgloss.Color(muted),
		Focus:      lipgloss.Color(focus),
		Human:      lipgloss.Color(human),
		AI:         lipgloss.Color(ai),
	}
}

// Available themes. The session toggles between them explicitly, so they
// are plain colors instead of terminal-adaptive pairs.
var (
	DarkTheme = buildTheme("dark",
		"#3B82F6", "#9CA3AF", "#A855F7",
		"#10B981", "#F59E0B", "#EF4444",
		"#374151", "#E2E8F0", "#64748B", "#8B5CF6",
		"#3B82F6", "#EC4899")

	LightTheme = buildTheme("light",
		"#1E40AF", "#4B5563", "#7C3AED",
		"#059669", "#D97706", "#DC2626",
		"#CBD5E1", "#1E293B", "#64748B", "#7C3AED",
		"#2563EB", "#DB2777")
)

// ThemeFor returns the theme matching a session preference
func ThemeFor(t session.Theme) Theme {
	if t == session.ThemeLight {
		return LightTheme
	}
	return DarkTheme
}

var colorDisabled atomic.Bool

// SetColorDisabled turns styling off regardless of NO_COLOR
func SetColorDisabled(disabled bool) {
	colorDisabled.Store(disabled)
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled.Load() || os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Error   lipgloss.Style
	Spinner lipgloss.Style

	// Result styles
	Percentage lipgloss.Style
	AIShare    lipgloss.Style

	// Interactive styles
	Key      lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Option   lipgloss.Style

	// Layout styles
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
}

// NewStyles builds the component styles for a theme
func NewStyles(theme Theme) *Styles {
	if IsColorDisabled() {
		return plainStyles(theme)
	}

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Percentage: lipgloss.NewStyle().
			Foreground(theme.Human).
			Bold(true),

		AIShare: lipgloss.NewStyle().
			Foreground(theme.AI).
			Bold(true),

		Key: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Option: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Focus).
			Padding(0, 1),
	}
}

// plainStyles keeps layout (borders, padding) but drops every color
func plainStyles(theme Theme) *Styles {
	bordered := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	plain := lipgloss.NewStyle()

	return &Styles{
		Theme:        theme,
		Title:        plain.Bold(true),
		Subtitle:     plain,
		Header:       plain.Bold(true),
		Body:         plain,
		Muted:        plain,
		Success:      plain.Bold(true),
		Error:        plain.Bold(true),
		Spinner:      plain,
		Percentage:   plain.Bold(true),
		AIShare:      plain.Bold(true),
		Key:          plain.Bold(true),
		Button:       bordered,
		Disabled:     bordered.Faint(true),
		Option:       plain.Bold(true),
		Panel:        bordered,
		FocusedPanel: bordered.BorderStyle(lipgloss.ThickBorder()),
	}
}
