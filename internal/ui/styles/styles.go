// Package styles holds the light and dark palettes shared by every view.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/cache"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Dim        lipgloss.Color
	Surface    lipgloss.Color
	SurfaceAlt lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Like       lipgloss.Color
}

var (
	Light = Palette{
		Accent:     "#000000",
		Text:       "#101010",
		Muted:      "#777777",
		Dim:        "#999999",
		Surface:    "#F5F5F5",
		SurfaceAlt: "#E0E0E0",
		Border:     "#CCCCCC",
		Error:      "#D32F2F",
		Success:    "#2E7D32",
		Like:       "#FF3040",
	}

	Dark = Palette{
		Accent:     "#FFFFFF",
		Text:       "#F3F5F7",
		Muted:      "#777777",
		Dim:        "#555555",
		Surface:    "#181818",
		SurfaceAlt: "#333333",
		Border:     "#444444",
		Error:      "#FF5252",
		Success:    "#66BB6A",
		Like:       "#FF3040",
	}
)

// Styles are the rendered styles for one theme. Views keep a pointer so
// a theme change reaches all of them.
type Styles struct {
	Theme   cache.Theme
	Palette Palette

	Title       lipgloss.Style
	Header      lipgloss.Style
	Meta        lipgloss.Style
	Author      lipgloss.Style
	Body        lipgloss.Style
	Selected    lipgloss.Style
	Liked       lipgloss.Style
	Label       lipgloss.Style
	Focused     lipgloss.Style
	Hint        lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Separator   lipgloss.Style
	Modal       lipgloss.Style
	Quote       lipgloss.Style
	Placeholder lipgloss.Style

	StatusBar   lipgloss.Style
	ActiveTab   lipgloss.Style
	Tab         lipgloss.Style
	User        lipgloss.Style
	StatusText  lipgloss.Style
	StatusError lipgloss.Style
	Badge       lipgloss.Style
}

// New builds the styles for theme.
func New(theme cache.Theme) *Styles {
	s := &Styles{}
	s.Apply(theme)
	return s
}

// Apply rebuilds s in place for theme.
func (s *Styles) Apply(theme cache.Theme) {
	p := Light
	if theme == cache.ThemeDark {
		p = Dark
	}
	*s = Styles{
		Theme:   theme,
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Padding(1, 0),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Padding(0, 1),

		Meta:   lipgloss.NewStyle().Foreground(p.Muted),
		Author: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Body:   lipgloss.NewStyle().Foreground(p.Text),

		Selected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent).
			PaddingLeft(1),

		Liked:     lipgloss.NewStyle().Foreground(p.Like),
		Label:     lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(p.Muted),
		Error:     lipgloss.NewStyle().Foreground(p.Error),
		Success:   lipgloss.NewStyle().Foreground(p.Success),
		Separator: lipgloss.NewStyle().Foreground(p.Border),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),

		Quote: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Border).
			Foreground(p.Muted).
			PaddingLeft(1),

		Placeholder: lipgloss.NewStyle().Foreground(p.Dim).Italic(true),

		StatusBar: lipgloss.NewStyle().
			Background(p.SurfaceAlt).
			Foreground(p.Text),

		ActiveTab: lipgloss.NewStyle().
			Background(p.Accent).
			Foreground(p.Surface).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Background(p.SurfaceAlt).
			Foreground(p.Muted).
			Padding(0, 1),

		User: lipgloss.NewStyle().
			Background(p.SurfaceAlt).
			Foreground(p.Success).
			Padding(0, 1),

		StatusText: lipgloss.NewStyle().
			Background(p.SurfaceAlt).
			Foreground(p.Muted).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Background(p.Error).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Background(p.Like).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1),
	}
}
