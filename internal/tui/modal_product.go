package tui

import (
	"fmt"
	"strings"

	"github.com/pharmacare/showcase/internal/model"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	ratingBarStyle   = lipgloss.NewStyle().Foreground(ColorOrange).Background(ColorOrange)
	discountBarStyle = lipgloss.NewStyle().Foreground(ColorGreen).Background(ColorGreen)
)

// ProductModal shows the details of one product.
type ProductModal struct {
	ctx      ModalContext
	product  model.Product
	viewport viewport.Model
}

func NewProductModal(p model.Product, ctx ModalContext) *ProductModal {
	return &ProductModal{
		ctx:      ctx,
		product:  p,
		viewport: viewport.New(80, 20),
	}
}

func (m *ProductModal) ID() string { return fmt.Sprintf("product-%d", m.product.ID) }

func (m *ProductModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if scrollViewport(&m.viewport, m.ctx, msg) {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return true, nil
		case "enter", "c":
			p := m.product
			return true, func() tea.Msg { return addedToCartMsg{product: p} }
		}
	}
	return false, nil
}

func (m *ProductModal) View(width, height int) string {
	status := []string{"up/down/Wheel: Scroll", "Enter/c: Add to Cart", "ESC: Close"}
	return renderModalFrame(&m.viewport, m.product.Name, m.content(width-14), status, width, height)
}

func (m *ProductModal) content(width int) string {
	p := m.product
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(p.Category))

	b.WriteString(priceStyle.Render(formatPrice(p.Price)))
	if p.HasDiscount() {
		fmt.Fprintf(&b, "  %s  %s",
			strikeStyle.Render(formatPrice(p.OriginalPrice)),
			badgeStyle.Render(fmt.Sprintf("Save %s (%d%%)", formatPrice(p.Savings()), discountPercent(p))))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n",
		badgeStyle.Render(fmt.Sprintf("★ %.1f", p.Rating)),
		mutedStyle.Render(fmt.Sprintf("(%d reviews)", p.ReviewCount)))

	if p.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(max(20, width)).Render(p.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(renderProductChart(p))
	b.WriteString("\n\n")
	b.WriteString(activeTabStyle.Render("Add to Cart"))
	return b.String()
}

// renderProductChart draws rating (share of five stars) and discount as bars.
func renderProductChart(p model.Product) string {
	const chartHeight = 6

	bc := barchart.New(11, chartHeight,
		barchart.WithBarGap(3),
		barchart.WithBarWidth(4),
		barchart.WithNoAxis(),
	)
	bc.Push(barchart.BarData{
		Label:  "Rating",
		Values: []barchart.BarValue{{Name: "Rating", Value: p.Rating / 5 * 100, Style: ratingBarStyle}},
	})
	bc.Push(barchart.BarData{
		Label:  "Discount",
		Values: []barchart.BarValue{{Name: "Discount", Value: p.Discount() * 100, Style: discountBarStyle}},
	})
	bc.Draw()

	legend := fmt.Sprintf("%s rating %.0f%%   %s discount %d%%",
		ratingBarStyle.Render("  "), p.Rating/5*100,
		discountBarStyle.Render("  "), discountPercent(p))
	return bc.View() + "\n" + legend
}
