package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Plot   lipgloss.Color
	Peak   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

// Available themes
var (
	ThemePhosphor = Theme{
		Name:   "phosphor",
		Header: lipgloss.Color("86"),
		Label:  lipgloss.Color("245"),
		Value:  lipgloss.Color("252"),
		Plot:   lipgloss.Color("49"),
		Peak:   lipgloss.Color("205"),
		Muted:  lipgloss.Color("240"),
		Error:  lipgloss.Color("196"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Header: lipgloss.Color("#00a8cc"),
		Label:  lipgloss.Color("#4488aa"),
		Value:  lipgloss.Color("#e0f0ff"),
		Plot:   lipgloss.Color("#0077be"),
		Peak:   lipgloss.Color("#ffd700"),
		Muted:  lipgloss.Color("#335566"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Header: lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#dddddd"),
		Plot:   lipgloss.Color("#cccccc"),
		Peak:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#555555"),
		Error:  lipgloss.Color("#ffffff"),
	}

	// Default theme
	CurrentTheme = ThemePhosphor

	Themes = []Theme{
		ThemePhosphor,
		ThemeOcean,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePhosphor
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemePhosphor
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
