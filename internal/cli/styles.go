package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ymgs-pharma/storefront/pkg/enums"
)

// palette carries the colors for one resolved theme.
type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	muted   lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("#0f4c5c"),
		accent:  lipgloss.Color("#2e8b57"),
		muted:   lipgloss.Color("#6b7280"),
		success: lipgloss.Color("#15803d"),
		warning: lipgloss.Color("#b45309"),
		danger:  lipgloss.Color("#b91c1c"),
	}
	darkPalette = palette{
		primary: lipgloss.Color("#7dd3fc"),
		accent:  lipgloss.Color("#6ee7b7"),
		muted:   lipgloss.Color("#9ca3af"),
		success: lipgloss.Color("#4ade80"),
		warning: lipgloss.Color("#fbbf24"),
		danger:  lipgloss.Color("#f87171"),
	}
)

// styles are the render helpers derived from a palette.
type styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Price   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(resolved enums.Theme) styles {
	p := lightPalette
	if resolved == enums.ThemeDark {
		p = darkPalette
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Muted:   lipgloss.NewStyle().Foreground(p.muted),
		Price:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Success: lipgloss.NewStyle().Foreground(p.success),
		Warning: lipgloss.NewStyle().Foreground(p.warning),
		Error:   lipgloss.NewStyle().Foreground(p.danger),
	}
}
