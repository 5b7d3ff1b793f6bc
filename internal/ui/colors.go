package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/noblex1/moviex/internal/models"
)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	card     lipgloss.Style
	detail   lipgloss.Style
}

// NewPalette builds a palette from title, success, error, warning, help and accent colors.
func NewPalette(t, s, e, w, h, a string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		muted:    NewStyle(h),
		selected: NewBold(a),
		card:     lipgloss.NewStyle().PaddingLeft(2),
		detail:   NewStyle(h).PaddingLeft(6),
	}
}

var (
	lightPalette = NewPalette("#7D56F4", "#04B575", "#D7263D", "#C76E00", "#626262", "#1F6FEB")
	darkPalette  = NewPalette("#B39DFF", "#3DDC97", "#FF6B6B", "#FFB347", "#9E9E9E", "#79C0FF")
)

// PaletteFor returns the palette of a theme.
func PaletteFor(theme models.Theme) *Palette {
	if theme == models.ThemeDark {
		return darkPalette
	}
	return lightPalette
}

// On renders s on a background color.
func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

// As renders s in a foreground color.
func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
