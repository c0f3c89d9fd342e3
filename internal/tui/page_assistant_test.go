package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pharmacare/showcase/internal/assistant"

	tea "github.com/charmbracelet/bubbletea"
)

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestAssistantPage(t *testing.T, bot *fakeAssistant, cam assistant.Camera) *AssistantPage {
	t.Helper()
	p := NewAssistantPage(AssistantConfig{Assistant: bot, Camera: cam, MaxImageBytes: 1024})
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	p.Init()
	return p
}

func typeText(p *AssistantPage, s string) {
	for _, r := range s {
		p.Update(keyRunes(string(r)))
	}
}

func TestAssistant_SendTypedQuestion(t *testing.T) {
	t.Parallel()

	bot := &fakeAssistant{}
	p := newTestAssistantPage(t, bot, nil)

	typeText(p, "  is this safe for babies?  ")
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	msgs := p.Messages()
	if len(msgs) != 1 || msgs[0].Sender != assistant.SenderUser || msgs[0].Text != "is this safe for babies?" {
		t.Fatalf("messages = %+v, want the trimmed user question", msgs)
	}
	if !p.Loading() {
		t.Fatal("page should be loading while the reply is pending")
	}
	if p.input.Value() != "" {
		t.Fatal("input not cleared after send")
	}

	// A second send while loading is ignored.
	typeText(p, "again")
	if cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("send while loading should be ignored")
	}
	if !strings.Contains(p.View(100, 30), "is typing") {
		t.Fatal("loading indicator not shown")
	}

	resp, _ := bot.SubmitQuery(p.cfg.Context, assistant.Query{Text: "x"})
	p.Update(assistantReplyMsg{resp: resp})
	if p.Loading() {
		t.Fatal("loading not cleared by the reply")
	}
	if got := p.Messages(); len(got) != 2 || got[1].Sender != assistant.SenderAssistant {
		t.Fatalf("messages = %+v, want user + assistant", got)
	}
}

func TestAssistant_BlankInputIgnored(t *testing.T) {
	t.Parallel()

	p := newTestAssistantPage(t, &fakeAssistant{}, nil)
	typeText(p, "   ")
	if cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("blank input produced a command")
	}
	if len(p.Messages()) != 0 {
		t.Fatal("blank input added a message")
	}
}

func TestAssistant_ReplyErrorShowsProcessingError(t *testing.T) {
	t.Parallel()

	p := newTestAssistantPage(t, &fakeAssistant{}, nil)
	p.loading = true
	p.Update(assistantReplyMsg{err: errors.New("boom")})

	msgs := p.Messages()
	if len(msgs) != 1 || !msgs[0].IsError || msgs[0].Text != assistant.MsgProcessingError {
		t.Fatalf("messages = %+v, want processing error", msgs)
	}
}

func TestAssistant_UploadNonImage(t *testing.T) {
	t.Parallel()

	p := newTestAssistantPage(t, &fakeAssistant{}, nil)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("just some text"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd, _ := p.Update(uploadRequestMsg{path: path})
	p.Update(cmd())

	msgs := p.Messages()
	if len(msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(msgs))
	}
	if msgs[0].Sender != assistant.SenderAssistant || !msgs[0].IsError || msgs[0].Text != assistant.MsgNotImage {
		t.Fatalf("message = %+v, want not-image error", msgs[0])
	}
	if p.Loading() {
		t.Fatal("rejected upload must not start loading")
	}
}

func TestAssistant_UploadImage(t *testing.T) {
	t.Parallel()

	bot := &fakeAssistant{}
	p := newTestAssistantPage(t, bot, nil)
	path := filepath.Join(t.TempDir(), "box.png")
	if err := os.WriteFile(path, testPNG, 0o600); err != nil {
		t.Fatal(err)
	}

	cmd, _ := p.Update(uploadRequestMsg{path: path})
	if cmd, _ = p.Update(cmd()); cmd == nil {
		t.Fatal("valid image did not submit")
	}

	msgs := p.Messages()
	if len(msgs) != 1 || msgs[0].Text != assistant.ImagePlaceholder {
		t.Fatalf("messages = %+v, want image placeholder", msgs)
	}
	if !p.Loading() {
		t.Fatal("image upload should start loading")
	}
}

func TestAssistant_CameraDenied(t *testing.T) {
	t.Parallel()

	for name, cam := range map[string]assistant.Camera{
		"no camera":    nil,
		"device error": fakeCamera{err: assistant.ErrCameraDenied},
		"not an image": fakeCamera{data: []byte("raw sensor bytes")},
		"oversized":    fakeCamera{data: append(append([]byte{}, testPNG...), make([]byte, 1024)...)},
	} {
		t.Run(name, func(t *testing.T) {
			p := newTestAssistantPage(t, &fakeAssistant{}, cam)
			cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
			if cmd == nil {
				t.Fatal("ctrl+k produced no command")
			}
			p.Update(cmd())

			msgs := p.Messages()
			if len(msgs) != 1 || !msgs[0].IsError || msgs[0].Text != assistant.MsgCameraDenied {
				t.Fatalf("messages = %+v, want camera denied", msgs)
			}
			if p.Loading() {
				t.Fatal("a failed capture must not submit anything")
			}
		})
	}
}

func TestAssistant_CameraCapture(t *testing.T) {
	t.Parallel()

	p := newTestAssistantPage(t, &fakeAssistant{}, fakeCamera{data: testPNG})
	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	p.Update(cmd())

	msgs := p.Messages()
	if len(msgs) != 1 || msgs[0].Text != assistant.ImagePlaceholder || msgs[0].Sender != assistant.SenderUser {
		t.Fatalf("messages = %+v, want captured image placeholder", msgs)
	}
}

func TestUploadModal_SubmitsPath(t *testing.T) {
	t.Parallel()

	m := NewUploadModal()
	for _, r := range "/tmp/a.png" {
		m.Update(keyRunes(string(r)))
	}
	pop, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop || cmd == nil {
		t.Fatal("enter should close the modal with a request")
	}
	req, ok := cmd().(uploadRequestMsg)
	if !ok || req.path != "/tmp/a.png" {
		t.Fatalf("msg = %+v, want upload request for /tmp/a.png", req)
	}
}

func TestReadImageFile_Limit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.png")
	data := append(append([]byte{}, testPNG...), make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readImageFile(path, 32); err == nil {
		t.Fatal("oversized upload accepted")
	}
	if _, err := readImageFile(path, 1024); err != nil {
		t.Fatalf("readImageFile: %v", err)
	}
	if _, err := readImageFile(filepath.Join(t.TempDir(), "missing.png"), 1024); err == nil {
		t.Fatal("missing file accepted")
	}
}
