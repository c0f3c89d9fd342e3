package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// App is the top-level Bubble Tea model that routes between pages and owns
// the modal stack.
type App struct {
	pages      map[string]Page
	activePage string
	modals     []Modal
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		pageMap[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:      pageMap,
		activePage: firstID,
	}
}

// ActivePage returns the ID of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

// TopModal returns the modal on top of the stack, or nil.
func (a *App) TopModal() Modal {
	if len(a.modals) == 0 {
		return nil
	}
	return a.modals[len(a.modals)-1]
}

// PushModal puts m on the stack unless a modal with the same ID is already there.
func (a *App) PushModal(m Modal) {
	for _, existing := range a.modals {
		if existing.ID() == m.ID() {
			return
		}
	}
	a.modals = append(a.modals, m)
}

// PopModal removes the top modal.
func (a *App) PopModal() {
	if len(a.modals) > 0 {
		a.modals = a.modals[:len(a.modals)-1]
	}
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every page tracks dimensions, including inactive ones.
		var cmds []tea.Cmd
		for _, p := range a.pages {
			cmd, _ := p.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case ActionMsg:
		switch msg.Action {
		case ActionPushModal:
			if m, ok := msg.Payload.(Modal); ok {
				a.PushModal(m)
			}
		case ActionQuit:
			return a, tea.Quit
		}
		return a, nil

	case pageMsg:
		p, ok := a.pages[msg.targetPage()]
		if !ok {
			return a, nil
		}
		cmd, nav := p.Update(msg)
		if p.ID() != a.activePage {
			return a, cmd
		}
		return a, a.navigate(cmd, nav)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if modal := a.TopModal(); modal != nil {
			return a, a.updateModal(modal, msg)
		}

	case tea.MouseMsg:
		if modal := a.TopModal(); modal != nil {
			return a, a.updateModal(modal, msg)
		}
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}
	cmd, nav := p.Update(msg)

	// Non-input messages (cursor blink, spinner) also reach the top modal.
	if modal := a.TopModal(); modal != nil {
		cmd = tea.Batch(cmd, a.updateModal(modal, msg))
	}
	return a, a.navigate(cmd, nav)
}

func (a *App) updateModal(modal Modal, msg tea.Msg) tea.Cmd {
	pop, cmd := modal.Update(msg)
	if pop {
		a.PopModal()
	}
	return cmd
}

// navigate switches to nav's page, unmounting the page being left.
func (a *App) navigate(cmd tea.Cmd, nav *PageNav) tea.Cmd {
	if nav == nil || nav.PageID == a.activePage {
		return cmd
	}
	next, exists := a.pages[nav.PageID]
	if !exists {
		return cmd
	}
	if u, ok := a.pages[a.activePage].(Unmounter); ok {
		u.Unmount()
	}
	a.modals = nil
	a.activePage = nav.PageID
	return tea.Batch(cmd, next.Init())
}

func (a *App) View() string {
	if modal := a.TopModal(); modal != nil {
		return modal.View(a.width, a.height)
	}
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
