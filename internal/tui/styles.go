package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by pages and modals.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorOrange = lipgloss.Color("214")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("245")
	ColorWhite  = lipgloss.Color("255")
	ColorPink   = lipgloss.Color("205")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	focusedSectionStyle = lipgloss.NewStyle().
				Foreground(ColorPink).
				Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	priceStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	strikeStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Strikethrough(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorBlue).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
)

// sectionTitle renders a section heading, highlighted when focused.
func sectionTitle(title string, focused bool) string {
	if focused {
		return focusedSectionStyle.Render("▸ " + title)
	}
	return sectionStyle.Render("  " + title)
}
