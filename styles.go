package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sammcj/llmfit/config"
	"github.com/sammcj/llmfit/fit"
)

var (
	fitColours     map[fit.FitLevel]lipgloss.Color
	runModeColours map[fit.RunMode]lipgloss.Color

	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	ramStyle     lipgloss.Style
	gpuStyle     lipgloss.Style
	sectionStyle lipgloss.Style
	statusStyle  lipgloss.Style
	searchStyle  lipgloss.Style
	selectedBg   lipgloss.Color
)

func init() {
	applyTheme(config.DarkNeonTheme)
}

// applyTheme rebuilds the package style set from a theme's colours.
func applyTheme(theme config.Theme) {
	c := theme.Colours

	fitColours = map[fit.FitLevel]lipgloss.Color{
		fit.FitPerfect:  theme.GetColour(c.FitPerfect),
		fit.FitGood:     theme.GetColour(c.FitGood),
		fit.FitMarginal: theme.GetColour(c.FitMarginal),
		fit.FitTooTight: theme.GetColour(c.FitTooTight),
	}

	runModeColours = map[fit.RunMode]lipgloss.Color{
		fit.RunModeGPU:        theme.GetColour(c.ModeGPU),
		fit.RunModeCPUOffload: theme.GetColour(c.ModeOffload),
		fit.RunModeCPUOnly:    theme.GetColour(c.ModeCPU),
	}

	titleStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.Title)).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.Label))
	valueStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.Value))
	ramStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.RAM))
	gpuStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.GPU))
	sectionStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.Section))
	statusStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.StatusFg)).Background(theme.GetColour(c.StatusBg)).Bold(true)
	searchStyle = lipgloss.NewStyle().Foreground(theme.GetColour(c.Search))
	selectedBg = theme.GetColour(c.SelectedBg)
}

func fitStyle(level fit.FitLevel) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fitColours[level])
}

func runModeStyle(mode fit.RunMode) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(runModeColours[mode])
}

// fitIndicator is the coloured dot shown in the first table column.
const fitIndicator = "●"
