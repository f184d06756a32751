package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a colour scheme for the TUI
type Theme struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Colours     ThemeColours `json:"colours"`
}

// ThemeColours contains all the colour definitions for the TUI
type ThemeColours struct {
	// General UI elements
	Title      string `json:"title"`       // Application title and active filter labels
	Label      string `json:"label"`       // Dim field labels and separators
	Value      string `json:"value"`       // Plain value text
	Section    string `json:"section"`     // Detail view section headings
	Search     string `json:"search"`      // Active search text
	StatusFg   string `json:"status_fg"`   // Status bar mode indicator text
	StatusBg   string `json:"status_bg"`   // Status bar mode indicator background
	SelectedBg string `json:"selected_bg"` // Background colour for the selected row
	RAM        string `json:"ram"`         // RAM figures in the system bar
	GPU        string `json:"gpu"`         // GPU line in the system bar

	// Fit level colours
	FitPerfect  string `json:"fit_perfect"`
	FitGood     string `json:"fit_good"`
	FitMarginal string `json:"fit_marginal"`
	FitTooTight string `json:"fit_too_tight"`

	// Run mode colours
	ModeGPU     string `json:"mode_gpu"`
	ModeOffload string `json:"mode_offload"`
	ModeCPU     string `json:"mode_cpu"`
}

// DarkNeonTheme is the default colour scheme
var DarkNeonTheme = Theme{
	Name:        "dark-neon",
	Description: "Default high-contrast theme for dark terminals",
	Colours: ThemeColours{
		Title:      "#00FF00",
		Label:      "#888888",
		Value:      "#FFFFFF",
		Section:    "#00FFFF",
		Search:     "#FFFF00",
		StatusFg:   "#000000",
		StatusBg:   "#00FF00",
		SelectedBg: "#444444",
		RAM:        "#00FFFF",
		GPU:        "#FFFF00",

		FitPerfect:  "#00FF00",
		FitGood:     "#FFFF00",
		FitMarginal: "#FF00FF",
		FitTooTight: "#FF0000",

		ModeGPU:     "#00FF00",
		ModeOffload: "#FFFF00",
		ModeCPU:     "#888888",
	},
}

// GetThemesDir returns the path to the themes directory
func GetThemesDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "llmfit", "themes")
}

// LoadTheme loads a named theme from the themes directory, falling back to
// the built-in default for an empty name or a theme that cannot be read.
// Missing colours are backfilled from the default so partial theme files work.
func LoadTheme(name string) Theme {
	if name == "" || name == DarkNeonTheme.Name {
		return DarkNeonTheme
	}

	data, err := os.ReadFile(filepath.Join(GetThemesDir(), name+".json"))
	if err != nil {
		return DarkNeonTheme
	}

	var theme Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		return DarkNeonTheme
	}
	theme.Colours.backfill(DarkNeonTheme.Colours)
	return theme
}

// SaveTheme writes a theme into the themes directory, creating it if needed.
func SaveTheme(theme Theme) error {
	if err := os.MkdirAll(GetThemesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create themes directory: %w", err)
	}

	data, err := json.MarshalIndent(theme, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}

	path := filepath.Join(GetThemesDir(), theme.Name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write theme file: %w", err)
	}
	return nil
}

func (c *ThemeColours) backfill(defaults ThemeColours) {
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&c.Title, defaults.Title)
	fill(&c.Label, defaults.Label)
	fill(&c.Value, defaults.Value)
	fill(&c.Section, defaults.Section)
	fill(&c.Search, defaults.Search)
	fill(&c.StatusFg, defaults.StatusFg)
	fill(&c.StatusBg, defaults.StatusBg)
	fill(&c.SelectedBg, defaults.SelectedBg)
	fill(&c.RAM, defaults.RAM)
	fill(&c.GPU, defaults.GPU)
	fill(&c.FitPerfect, defaults.FitPerfect)
	fill(&c.FitGood, defaults.FitGood)
	fill(&c.FitMarginal, defaults.FitMarginal)
	fill(&c.FitTooTight, defaults.FitTooTight)
	fill(&c.ModeGPU, defaults.ModeGPU)
	fill(&c.ModeCPU, defaults.ModeCPU)
	fill(&c.ModeOffload, defaults.ModeOffload)
}

// GetColour converts a theme colour string into a lipgloss colour
func (t *Theme) GetColour(colour string) lipgloss.Color {
	return lipgloss.Color(colour)
}
