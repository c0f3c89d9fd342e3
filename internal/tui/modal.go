package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a self-contained modal that owns its own Update/View lifecycle.
// Modals are managed via a stack on App; the topmost modal receives all
// input and renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// renderModalFrame renders a bordered, centered modal with a header, a
// scrollable content pane and a status bar.
func renderModalFrame(vp *viewport.Model, title, content string, status []string, width, height int) string {
	modalWidth := width - 8   // 4 chars margin on each side
	modalHeight := height - 4 // 2 lines margin top and bottom
	if modalWidth < 24 {
		modalWidth = width
	}
	if modalHeight < 8 {
		modalHeight = height
	}

	contentWidth := max(modalWidth-4, 1)
	contentHeight := max(modalHeight-4, 1) // header + status

	vp.Width = contentWidth
	vp.Height = contentHeight - 2 // pane border
	vp.SetContent(lipgloss.NewStyle().Width(contentWidth - 2).Render(content))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight - 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := mutedStyle.Render(strings.Join(status, " | "))

	body := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// scrollViewport applies the shared modal scroll keys and wheel handling.
// It reports whether msg was consumed.
func scrollViewport(vp *viewport.Model, ctx ModalContext, msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			vp.ScrollUp(1)
			return true
		case "down", "j":
			vp.ScrollDown(1)
			return true
		case "pgup":
			vp.HalfPageUp()
			return true
		case "pgdown":
			vp.HalfPageDown()
			return true
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if ctx.ReverseScrollWheel {
				vp.ScrollDown(1)
			} else {
				vp.ScrollUp(1)
			}
			return true
		case tea.MouseButtonWheelDown:
			if ctx.ReverseScrollWheel {
				vp.ScrollUp(1)
			} else {
				vp.ScrollDown(1)
			}
			return true
		}
	}
	return false
}
