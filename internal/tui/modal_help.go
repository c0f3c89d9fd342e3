package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const helpContent = `PharmaCare Showcase Help

SHOP:
  Tab/Shift+Tab   - Move between sections
  up/down or k/j  - Move selection (product list) or section
  left/right      - Change category, scroll a lane, move in featured
  [ / ]           - Previous/next category
  /               - Search products by name (Esc clears)
  Enter / Click   - Show product details
  i               - Catalog statistics
  a               - Open the AI assistant
  q/Ctrl+C        - Quit

LANES:
  Trending Now scrolls left, Hot Discounts scrolls right.
  Hover the mouse over a lane to slow it down.
  Mouse Wheel or Shift+left/right scrolls a lane by hand; it
  resumes scrolling from there after two seconds without input.

ASSISTANT:
  Enter           - Send the typed question
  Ctrl+U          - Upload a product image from a file path
  Ctrl+K          - Take a photo with the configured camera
  PgUp/PgDn       - Scroll the conversation
  Esc             - Back to the shop

PRODUCT DETAILS:
  Enter/c         - Add to cart
  Esc             - Close
`

// HelpModal displays the help documentation.
type HelpModal struct {
	ctx      ModalContext
	viewport viewport.Model
}

func NewHelpModal(ctx ModalContext) *HelpModal {
	return &HelpModal{
		ctx:      ctx,
		viewport: viewport.New(80, 20),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if scrollViewport(&h.viewport, h.ctx, msg) {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "?", "f1", "esc", "q":
			return true, nil
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	status := []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "?: Toggle Help", "ESC: Close"}
	return renderModalFrame(&h.viewport, "Help", helpContent, status, width, height)
}
