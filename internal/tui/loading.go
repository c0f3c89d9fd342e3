package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// spinnerTickMsg advances the loading spinner of one page.
type spinnerTickMsg struct{ page string }

func (m spinnerTickMsg) targetPage() string { return m.page }

func spinnerTick(page string) tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{page: page}
	})
}

// renderLoading renders an animated loading indicator for the given frame.
func renderLoading(frame int, text string) string {
	glyph := spinnerFrames[frame%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true).
		Render(glyph + " " + text)
}
