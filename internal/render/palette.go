package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the colour scheme of the chat TUI
type Palette struct {
	Name        string
	Description string

	Border lipgloss.Color

	// Conversation colours
	User      lipgloss.Color
	Assistant lipgloss.Color
	Indicator lipgloss.Color
	Error     lipgloss.Color

	// Chrome
	Title    lipgloss.Color
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in palettes
var (
	// TokyoNight is the default palette
	TokyoNight = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",
		Border:      lipgloss.Color("#414868"),
		User:        lipgloss.Color("#7aa2f7"),
		Assistant:   lipgloss.Color("#9ece6a"),
		Indicator:   lipgloss.Color("#565f89"),
		Error:       lipgloss.Color("#f7768e"),
		Title:       lipgloss.Color("#bb9af7"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
		TextMute:    lipgloss.Color("#3b4261"),
	}

	CatppuccinMocha = Palette{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm pastels",
		Border:      lipgloss.Color("#45475a"),
		User:        lipgloss.Color("#89b4fa"), // Blue
		Assistant:   lipgloss.Color("#a6e3a1"), // Green
		Indicator:   lipgloss.Color("#6c7086"),
		Error:       lipgloss.Color("#f38ba8"), // Red
		Title:       lipgloss.Color("#cba6f7"), // Mauve
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
		TextMute:    lipgloss.Color("#45475a"),
	}

	Nord = Palette{
		Name:        "nord",
		Description: "Nord - cool arctic tones",
		Border:      lipgloss.Color("#4c566a"),
		User:        lipgloss.Color("#88c0d0"),
		Assistant:   lipgloss.Color("#a3be8c"),
		Indicator:   lipgloss.Color("#7b88a1"),
		Error:       lipgloss.Color("#bf616a"),
		Title:       lipgloss.Color("#b48ead"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
		TextMute:    lipgloss.Color("#4c566a"),
	}

	Dracula = Palette{
		Name:        "dracula",
		Description: "Dracula - vibrant dark",
		Border:      lipgloss.Color("#6272a4"),
		User:        lipgloss.Color("#8be9fd"),
		Assistant:   lipgloss.Color("#50fa7b"),
		Indicator:   lipgloss.Color("#6272a4"),
		Error:       lipgloss.Color("#ff5555"),
		Title:       lipgloss.Color("#ff79c6"),
		Text:        lipgloss.Color("#f8f8f2"),
		TextDim:     lipgloss.Color("#6272a4"),
		TextMute:    lipgloss.Color("#44475a"),
	}

	// Plain mirrors the original web page: dark text, gray italic indicator
	Plain = Palette{
		Name:        "plain",
		Description: "Plain - black text, gray typing indicator",
		Border:      lipgloss.Color("#808080"),
		User:        lipgloss.Color("#000000"),
		Assistant:   lipgloss.Color("#000000"),
		Indicator:   lipgloss.Color("#808080"),
		Error:       lipgloss.Color("#c00000"),
		Title:       lipgloss.Color("#000000"),
		Text:        lipgloss.Color("#000000"),
		TextDim:     lipgloss.Color("#808080"),
		TextMute:    lipgloss.Color("#c0c0c0"),
	}
)

// Palettes returns every built-in palette
func Palettes() []Palette {
	return []Palette{TokyoNight, CatppuccinMocha, Nord, Dracula, Plain}
}

// PaletteByName looks up a built-in palette
func PaletteByName(name string) (Palette, bool) {
	for _, p := range Palettes() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteOrDefault returns the named palette, or TokyoNight when unknown
func PaletteOrDefault(name string) Palette {
	if p, ok := PaletteByName(name); ok {
		return p
	}
	return TokyoNight
}

// PaletteNames returns the names of the built-in palettes
func PaletteNames() []string {
	palettes := Palettes()
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}
