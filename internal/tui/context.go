package tui

import tea "github.com/charmbracelet/bubbletea"

// ModalContext provides read-only context to modals.
type ModalContext struct {
	ReverseScrollWheel bool
}

// Action identifies what a page wants the App to do.
type Action int

const (
	ActionPushModal Action = iota
	ActionQuit
)

// ActionMsg is returned by pages and modals to communicate with the App
// without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Msg.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}

// pushModal asks the App to put m on top of the modal stack.
func pushModal(m Modal) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionPushModal, Payload: m})
}
