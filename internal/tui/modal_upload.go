package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UploadModal asks for the path of an image to send to the assistant.
type UploadModal struct {
	input textinput.Model
}

func NewUploadModal() *UploadModal {
	input := textinput.New()
	input.Placeholder = "~/Pictures/product.jpg"
	input.Prompt = "Path: "
	input.CharLimit = 512
	input.Focus()
	return &UploadModal{input: input}
}

func (m *UploadModal) ID() string { return "upload" }

func (m *UploadModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return true, nil
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return false, nil
			}
			return true, func() tea.Msg { return uploadRequestMsg{path: path} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return false, cmd
}

func (m *UploadModal) View(width, height int) string {
	boxWidth := min(max(30, width-8), 70)
	m.input.Width = boxWidth - 12

	header := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render("Upload Image")
	hint := mutedStyle.Render("Enter: Upload | ESC: Cancel")
	body := lipgloss.JoinVertical(lipgloss.Left, header, "", m.input.View(), "", hint)

	box := lipgloss.NewStyle().
		Width(boxWidth).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
