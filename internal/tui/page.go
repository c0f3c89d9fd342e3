package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (showcase, assistant).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Unmounter is implemented by pages that own timers or animations. App calls
// Unmount when navigating away; the next Init mounts again.
type Unmounter interface {
	Unmount()
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// pageMsg is implemented by asynchronous results addressed to one page.
// App delivers them to that page even when it is not active.
type pageMsg interface {
	targetPage() string
}
