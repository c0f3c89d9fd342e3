package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pharmacare/showcase/internal/assistant"
	"github.com/pharmacare/showcase/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Assistant answers chat queries.
type Assistant interface {
	SubmitQuery(ctx context.Context, q assistant.Query) (assistant.Response, error)
}

// AssistantConfig wires the assistant page.
type AssistantConfig struct {
	Context            context.Context
	Assistant          Assistant
	Camera             assistant.Camera
	MaxImageBytes      int64
	ReverseScrollWheel bool
}

type assistantReplyMsg struct {
	resp assistant.Response
	err  error
}

func (assistantReplyMsg) targetPage() string { return AssistantPageID }

// uploadRequestMsg is sent by the upload modal with the chosen path.
type uploadRequestMsg struct{ path string }

func (uploadRequestMsg) targetPage() string { return AssistantPageID }

// imageLoadedMsg carries an uploaded file or a captured frame.
type imageLoadedMsg struct {
	data   []byte
	source assistant.Source
	err    error
}

func (imageLoadedMsg) targetPage() string { return AssistantPageID }

// AssistantPage is the chat panel: conversation log, input line and the
// upload and camera actions.
type AssistantPage struct {
	cfg  AssistantConfig
	keys KeyMap

	conv     *assistant.Conversation
	input    textinput.Model
	viewport viewport.Model

	loading bool
	spinner int

	width  int
	height int
}

func NewAssistantPage(cfg AssistantConfig) *AssistantPage {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = assistant.DefaultMaxImageBytes
	}

	input := textinput.New()
	input.Placeholder = "Ask about a product..."
	input.Prompt = "> "
	input.CharLimit = 500

	return &AssistantPage{
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		conv:     assistant.NewConversation(),
		input:    input,
		viewport: viewport.New(80, 10),
	}
}

func (p *AssistantPage) ID() string { return AssistantPageID }

func (p *AssistantPage) Init() tea.Cmd {
	cmd := p.input.Focus()
	if p.loading {
		return tea.Batch(cmd, spinnerTick(AssistantPageID))
	}
	return cmd
}

// Unmount blurs the input; a reply in flight still lands in the conversation.
func (p *AssistantPage) Unmount() {
	p.input.Blur()
}

// Messages returns the conversation so far.
func (p *AssistantPage) Messages() []model.ChatMessage { return p.conv.Messages() }

// Loading reports whether a reply is pending.
func (p *AssistantPage) Loading() bool { return p.loading }

func (p *AssistantPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return nil, nil

	case spinnerTickMsg:
		if !p.loading {
			return nil, nil
		}
		p.spinner++
		return spinnerTick(AssistantPageID), nil

	case assistantReplyMsg:
		p.loading = false
		switch {
		case errors.Is(msg.err, assistant.ErrNotImage):
			p.conv.Add(assistant.SenderAssistant, assistant.MsgNotImage, true)
		case msg.err != nil:
			p.conv.Add(assistant.SenderAssistant, assistant.MsgProcessingError, true)
		default:
			p.conv.Append(msg.resp.Message)
		}
		p.scrollToBottom()
		return nil, nil

	case uploadRequestMsg:
		return loadImageFile(msg.path, p.cfg.MaxImageBytes), nil

	case imageLoadedMsg:
		return p.handleImage(msg), nil

	case tea.KeyMsg:
		return p.handleKey(msg)

	case tea.MouseMsg:
		scrollViewport(&p.viewport, ModalContext{ReverseScrollWheel: p.cfg.ReverseScrollWheel}, msg)
		return nil, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

func (p *AssistantPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	k := p.keys
	switch {
	case key.Matches(msg, k.Back):
		return nil, &PageNav{PageID: ShowcasePageID}

	case msg.String() == "f1":
		return pushModal(NewHelpModal(ModalContext{ReverseScrollWheel: p.cfg.ReverseScrollWheel})), nil

	case key.Matches(msg, k.PageUp):
		p.viewport.HalfPageUp()
		return nil, nil

	case key.Matches(msg, k.PageDown):
		p.viewport.HalfPageDown()
		return nil, nil

	case key.Matches(msg, k.Upload):
		if p.loading {
			return nil, nil
		}
		return pushModal(NewUploadModal()), nil

	case key.Matches(msg, k.Camera):
		if p.loading {
			return nil, nil
		}
		return p.capture(), nil

	case key.Matches(msg, k.Enter):
		return p.send(), nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

// send submits the typed text. Blank input and sends while a reply is
// pending are ignored.
func (p *AssistantPage) send() tea.Cmd {
	text := strings.TrimSpace(p.input.Value())
	if text == "" || p.loading {
		return nil
	}
	p.conv.Add(assistant.SenderUser, text, false)
	p.input.Reset()
	return p.submit(assistant.Query{Text: text, Source: assistant.SourceTyped})
}

func (p *AssistantPage) handleImage(msg imageLoadedMsg) tea.Cmd {
	if msg.err != nil {
		text := assistant.MsgProcessingError
		switch {
		case msg.source == assistant.SourceCamera:
			text = assistant.MsgCameraDenied
		case errors.Is(msg.err, assistant.ErrNotImage):
			text = assistant.MsgNotImage
		}
		p.conv.Add(assistant.SenderAssistant, text, true)
		p.scrollToBottom()
		return nil
	}
	if p.loading {
		return nil
	}
	p.conv.Add(assistant.SenderUser, assistant.ImagePlaceholder, false)
	return p.submit(assistant.Query{Image: msg.data, Source: msg.source})
}

func (p *AssistantPage) submit(q assistant.Query) tea.Cmd {
	p.loading = true
	p.spinner = 0
	p.scrollToBottom()

	ctx, bot := p.cfg.Context, p.cfg.Assistant
	return tea.Batch(
		func() tea.Msg {
			resp, err := bot.SubmitQuery(ctx, q)
			return assistantReplyMsg{resp: resp, err: err}
		},
		spinnerTick(AssistantPageID),
	)
}

// capture grabs one frame. Anything but a single image within the upload
// limit fails the capture before the conversation is touched.
func (p *AssistantPage) capture() tea.Cmd {
	cam, ctx, limit := p.cfg.Camera, p.cfg.Context, p.cfg.MaxImageBytes
	return func() tea.Msg {
		if cam == nil {
			return imageLoadedMsg{source: assistant.SourceCamera, err: assistant.ErrCameraDenied}
		}
		data, err := cam.Capture(ctx)
		if err == nil {
			err = assistant.CheckFrame(data, limit)
		}
		if err != nil {
			return imageLoadedMsg{source: assistant.SourceCamera, err: err}
		}
		return imageLoadedMsg{data: data, source: assistant.SourceCamera}
	}
}

// loadImageFile reads and sniffs an image chosen in the upload modal.
func loadImageFile(path string, limit int64) tea.Cmd {
	return func() tea.Msg {
		data, err := readImageFile(path, limit)
		return imageLoadedMsg{data: data, source: assistant.SourceUpload, err: err}
	}
}

func readImageFile(path string, limit int64) ([]byte, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("upload exceeds %d bytes", limit)
	}
	if _, err := assistant.ValidateImage(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (p *AssistantPage) scrollToBottom() {
	p.viewport.SetContent(p.renderMessages(max(20, p.viewport.Width)))
	p.viewport.GotoBottom()
}

func (p *AssistantPage) renderMessages(width int) string {
	msgs := p.conv.Messages()
	if len(msgs) == 0 {
		return mutedStyle.Render("Ask about a product, upload a photo (ctrl+u) or take one (ctrl+k).")
	}

	senderUser := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	senderBot := lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	body := lipgloss.NewStyle().Width(max(10, width-2)).PaddingLeft(2)

	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		label := senderBot.Render(m.Sender)
		if m.Sender == assistant.SenderUser {
			label = senderUser.Render(m.Sender)
		}
		fmt.Fprintf(&b, "%s %s\n", label, mutedStyle.Render(m.Timestamp.Format("15:04")))
		text := m.Text
		if m.IsError {
			text = errorStyle.Render(text)
		}
		b.WriteString(body.Render(text))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *AssistantPage) View(width, height int) string {
	if width <= 0 {
		return renderLoading(0, "Loading...")
	}

	header := titleStyle.Render("AI Assistant") + mutedStyle.Render("  esc: back to shop")

	logHeight := max(3, height-6)
	p.viewport.Width = width - 2
	p.viewport.Height = logHeight - 2
	atBottom := p.viewport.AtBottom()
	p.viewport.SetContent(p.renderMessages(width - 4))
	if atBottom {
		p.viewport.GotoBottom()
	}
	log := lipgloss.NewStyle().
		Width(width - 2).
		Height(logHeight - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Render(p.viewport.View())

	indicator := ""
	if p.loading {
		indicator = renderLoading(p.spinner, assistant.SenderAssistant+" is typing...")
	}

	p.input.Width = max(10, width-4)
	status := mutedStyle.Render(ansi.Truncate(
		"enter: send | ctrl+u: upload image | ctrl+k: take photo | pgup/pgdn: scroll | esc: back", width, "…"))

	return lipgloss.JoinVertical(lipgloss.Left, header, log, indicator, p.input.View(), status)
}
