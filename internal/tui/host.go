package tui

import (
	"time"

	"github.com/pharmacare/showcase/internal/carousel"

	tea "github.com/charmbracelet/bubbletea"
)

// hostFrameMsg fires the pending frame callbacks of one teaHost.
type hostFrameMsg struct {
	page string
	gen  uint64
}

func (m hostFrameMsg) targetPage() string { return m.page }

// hostTimerMsg fires one AfterFunc callback.
type hostTimerMsg struct {
	page  string
	token uint64
}

func (m hostTimerMsg) targetPage() string { return m.page }

type frameRequest struct {
	fn        func()
	cancelled bool
}

// teaHost implements carousel.Host on top of the Bubble Tea event loop.
// Frame requests made between two frames share one tea.Tick; timers each
// get their own tick carrying a token. Callbacks run inside the owning
// page's Update, so lanes never see concurrent calls.
type teaHost struct {
	page   string
	period time.Duration
	now    func() time.Time

	frames     []*frameRequest
	frameGen   uint64
	frameArmed bool

	timers    map[uint64]func()
	nextToken uint64

	cmds []tea.Cmd
}

var _ carousel.Host = (*teaHost)(nil)

func newTeaHost(page string, period time.Duration) *teaHost {
	return &teaHost{
		page:   page,
		period: period,
		now:    time.Now,
		timers: make(map[uint64]func()),
	}
}

func (h *teaHost) Now() time.Time { return h.now() }

func (h *teaHost) RequestFrame(fn func()) carousel.Cancel {
	req := &frameRequest{fn: fn}
	h.frames = append(h.frames, req)
	if !h.frameArmed {
		h.frameArmed = true
		h.frameGen++
		msg := hostFrameMsg{page: h.page, gen: h.frameGen}
		h.cmds = append(h.cmds, tea.Tick(h.period, func(time.Time) tea.Msg { return msg }))
	}
	return func() { req.cancelled = true }
}

func (h *teaHost) AfterFunc(d time.Duration, fn func()) carousel.Cancel {
	h.nextToken++
	token := h.nextToken
	h.timers[token] = fn
	msg := hostTimerMsg{page: h.page, token: token}
	h.cmds = append(h.cmds, tea.Tick(d, func(time.Time) tea.Msg { return msg }))
	return func() { delete(h.timers, token) }
}

// Handle runs the callbacks owed to msg and reports whether msg belonged to
// this host. Stale frames and cancelled timers are dropped.
func (h *teaHost) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case hostFrameMsg:
		if msg.page != h.page {
			return false
		}
		if !h.frameArmed || msg.gen != h.frameGen {
			return true
		}
		h.frameArmed = false
		batch := h.frames
		h.frames = nil
		for _, req := range batch {
			if !req.cancelled {
				req.fn()
			}
		}
		return true

	case hostTimerMsg:
		if msg.page != h.page {
			return false
		}
		fn, ok := h.timers[msg.token]
		if !ok {
			return true
		}
		delete(h.timers, msg.token)
		fn()
		return true
	}
	return false
}

// Pending counts live frame requests and timers.
func (h *teaHost) Pending() int {
	n := len(h.timers)
	for _, req := range h.frames {
		if !req.cancelled {
			n++
		}
	}
	return n
}

// Drain returns the ticks scheduled since the last call.
func (h *teaHost) Drain() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(h.cmds...)
	h.cmds = nil
	return cmd
}
