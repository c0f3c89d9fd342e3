package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/carousel"
	"github.com/pharmacare/showcase/internal/catalog"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeAssistant struct {
	queries []assistant.Query
	err     error
}

func (f *fakeAssistant) SubmitQuery(_ context.Context, q assistant.Query) (assistant.Response, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return assistant.Response{}, f.err
	}
	return assistant.Response{
		Message: assistant.NewMessage(assistant.SenderAssistant, "canned reply", false, time.Now()),
	}, nil
}

type fakeCamera struct {
	data []byte
	err  error
}

func (c fakeCamera) Capture(context.Context) ([]byte, error) { return c.data, c.err }

func newTestShowcase(t *testing.T) *ShowcasePage {
	t.Helper()
	mem, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return NewShowcasePage(ShowcaseConfig{
		Catalog:       mem,
		FrameInterval: 10 * time.Millisecond,
		Lane:          carousel.Config{Speed: 1, IdleTimeout: 2 * time.Second},
		LaneSize:      5,
	})
}

func newTestApp(t *testing.T) (*App, *ShowcasePage, *AssistantPage, *fakeAssistant) {
	t.Helper()
	bot := &fakeAssistant{}
	show := newTestShowcase(t)
	chat := NewAssistantPage(AssistantConfig{Assistant: bot})
	app := NewApp(show, chat)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, show, chat, bot
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// actionFrom runs cmd and returns the first ActionMsg it produces. Commands
// under test must not contain ticks.
func actionFrom(t *testing.T, cmd tea.Cmd) ActionMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	switch msg := cmd().(type) {
	case ActionMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if a, ok := c().(ActionMsg); ok {
				return a
			}
		}
	}
	t.Fatal("command produced no ActionMsg")
	return ActionMsg{}
}

func TestApp_NavigationUnmountsAndRemountsLanes(t *testing.T) {
	t.Parallel()

	app, show, _, _ := newTestApp(t)
	if show.Lanes() == nil {
		t.Fatal("lanes not mounted after Init")
	}

	app.Update(keyRunes("a"))
	if got := app.ActivePage(); got != AssistantPageID {
		t.Fatalf("active page = %q, want %q", got, AssistantPageID)
	}
	if show.Lanes() != nil {
		t.Fatal("lanes still mounted after leaving the showcase")
	}
	if got := show.host.Pending(); got != 0 {
		t.Fatalf("pending host callbacks after unmount = %d, want 0", got)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if got := app.ActivePage(); got != ShowcasePageID {
		t.Fatalf("active page = %q, want %q", got, ShowcasePageID)
	}
	lanes := show.Lanes()
	if lanes == nil {
		t.Fatal("lanes not remounted on return")
	}
	if !lanes.A.Mounted() || !lanes.B.Mounted() {
		t.Fatal("remounted lanes are not live")
	}
	if got := lanes.A.State().Offset; got != 0 {
		t.Fatalf("remounted lane offset = %v, want 0", got)
	}
}

func TestApp_ModalStack(t *testing.T) {
	t.Parallel()

	app, _, _, _ := newTestApp(t)

	_, cmd := app.Update(keyRunes("?"))
	app.Update(actionFrom(t, cmd))
	if m := app.TopModal(); m == nil || m.ID() != "help" {
		t.Fatalf("top modal = %v, want help", m)
	}
	if !strings.Contains(app.View(), "Help") {
		t.Fatal("help modal not rendered")
	}

	// Pushing the same modal twice keeps one copy.
	app.PushModal(NewHelpModal(ModalContext{}))
	if len(app.modals) != 1 {
		t.Fatalf("modal stack = %d, want 1", len(app.modals))
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.TopModal() != nil {
		t.Fatal("esc did not close the help modal")
	}
}

func TestApp_DeliversRepliesToInactivePage(t *testing.T) {
	t.Parallel()

	app, _, chat, _ := newTestApp(t)
	if app.ActivePage() != ShowcasePageID {
		t.Fatal("showcase should be the default page")
	}

	chat.loading = true
	app.Update(assistantReplyMsg{
		resp: assistant.Response{Message: assistant.NewMessage(assistant.SenderAssistant, "late reply", false, time.Now())},
	})

	msgs := chat.Messages()
	if len(msgs) != 1 || msgs[0].Text != "late reply" {
		t.Fatalf("messages = %+v, want the late reply", msgs)
	}
	if chat.Loading() {
		t.Fatal("loading flag not cleared")
	}
	if app.ActivePage() != ShowcasePageID {
		t.Fatal("a background reply must not switch pages")
	}
}

func TestApp_StaleFramesAfterUnmountAreHarmless(t *testing.T) {
	t.Parallel()

	app, show, _, _ := newTestApp(t)
	gen := show.host.frameGen
	app.Update(keyRunes("a"))

	before := show.trending.surface.pos
	app.Update(hostFrameMsg{page: ShowcasePageID, gen: gen})
	if show.trending.surface.pos != before {
		t.Fatal("frame after unmount moved the lane")
	}
}
