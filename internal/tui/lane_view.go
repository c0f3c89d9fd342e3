package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pharmacare/showcase/internal/carousel"
	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Lane geometry in terminal cells. One lane unit is one column.
const (
	cardWidth  = 26
	cardGap    = 2
	cardHeight = 5
	cardStride = cardWidth + cardGap

	wheelScrollStep = 6
)

// laneBadge selects the third line of a card.
type laneBadge int

const (
	badgeRating laneBadge = iota
	badgeDiscount
)

// productCard adapts a product to carousel.Item.
type productCard struct {
	product model.Product
}

func (c productCard) Key() string     { return strconv.Itoa(c.product.ID) }
func (c productCard) Width() float64 { return cardStride }

// laneSurface is the scroll target a lane writes into; the view reads the
// position back when it renders.
type laneSurface struct {
	attached bool
	pos      float64
}

func (s *laneSurface) Attached() bool                { return s.attached }
func (s *laneSurface) SetScrollPosition(pos float64) { s.pos = pos }

// laneView renders one autoscrolling product lane.
type laneView struct {
	title    string
	dir      carousel.Direction
	badge    laneBadge
	provider catalog.Provider

	products []model.Product
	err      error
	surface  *laneSurface
	lane     *carousel.Lane
	hovered  bool

	base []string // one loop of cards, cardHeight lines
}

func newLaneView(title string, dir carousel.Direction, badge laneBadge, provider catalog.Provider) *laneView {
	return &laneView{
		title:    title,
		dir:      dir,
		badge:    badge,
		provider: provider,
		surface:  &laneSurface{},
	}
}

// load refreshes the lane content from its provider.
func (v *laneView) load() {
	products, err := v.provider.GetAllItems()
	v.err = err
	if err != nil {
		products = nil
	}
	v.products = products
	v.base = nil
	if v.lane != nil {
		v.lane.SetItems(v.items())
		v.surface.pos = v.lane.State().Offset
	}
}

func (v *laneView) items() []carousel.Item {
	items := make([]carousel.Item, len(v.products))
	for i, p := range v.products {
		items[i] = productCard{product: p}
	}
	return items
}

// laneSpec prepares a fresh mount; the new lane starts at offset zero.
func (v *laneView) laneSpec() carousel.LaneSpec {
	v.surface.pos = 0
	return carousel.LaneSpec{Surface: v.surface, Items: v.items(), Direction: v.dir}
}

// detach forgets the lane after its DualLane was unmounted.
func (v *laneView) detach() {
	v.lane = nil
	v.hovered = false
}

func (v *laneView) setHover(on bool) {
	if on == v.hovered {
		return
	}
	v.hovered = on
	if v.lane == nil {
		return
	}
	if on {
		v.lane.OnHoverEnter()
	} else {
		v.lane.OnHoverLeave()
	}
}

// scrollBy applies a manual scroll relative to the current offset.
func (v *laneView) scrollBy(delta float64) {
	if v.lane == nil || len(v.products) == 0 {
		return
	}
	v.lane.OnUserScroll(v.lane.State().Offset + delta)
	v.surface.pos = v.lane.State().Offset
}

func (v *laneView) offset() int {
	loop := len(v.products) * cardStride
	if loop == 0 {
		return 0
	}
	off := int(math.Floor(v.surface.pos)) % loop
	if off < 0 {
		off += loop
	}
	return off
}

// productAt returns the product drawn at column col of the visible window.
func (v *laneView) productAt(col int) (model.Product, bool) {
	if len(v.products) == 0 || col < 0 {
		return model.Product{}, false
	}
	idx := ((v.offset() + col) / cardStride) % len(v.products)
	return v.products[idx], true
}

func (v *laneView) status() string {
	arrow := "◀"
	if v.dir == carousel.Rightward {
		arrow = "▶"
	}
	state := "auto"
	if v.lane != nil && v.lane.Mode() == carousel.ModeManual {
		state = "manual"
	} else if v.hovered {
		state = "slow"
	}
	return mutedStyle.Render(fmt.Sprintf(" %s %s", arrow, state))
}

// height is the number of lines render produces.
func (v *laneView) height() int { return 1 + cardHeight }

// render draws the title line and the visible window of the strip.
func (v *laneView) render(width int, focused bool) string {
	title := sectionTitle(v.title, focused) + v.status()

	if v.err != nil {
		return title + "\n" + padLines(errorStyle.Render("  "+v.err.Error()), cardHeight)
	}
	if len(v.products) == 0 || width <= 0 {
		return title + "\n" + padLines(mutedStyle.Render("  Nothing to show"), cardHeight)
	}

	if v.base == nil {
		v.base = renderStrip(v.products, v.badge)
	}
	loop := len(v.products) * cardStride
	copies := width/loop + 2
	off := v.offset()

	lines := make([]string, len(v.base))
	for i, row := range v.base {
		lines[i] = ansi.Cut(strings.Repeat(row, copies), off, off+width)
	}
	return title + "\n" + strings.Join(lines, "\n")
}

// renderStrip lays the cards side by side, each followed by the gap.
func renderStrip(products []model.Product, badge laneBadge) []string {
	rows := make([]string, cardHeight)
	gap := strings.Repeat(" ", cardGap)
	for _, p := range products {
		card := strings.Split(renderCard(p, badge), "\n")
		for r := range rows {
			line := ""
			if r < len(card) {
				line = card[r]
			}
			if w := ansi.StringWidth(line); w < cardWidth {
				line += strings.Repeat(" ", cardWidth-w)
			}
			rows[r] += line + gap
		}
	}
	return rows
}

// renderCard renders a fixed-size product card.
func renderCard(p model.Product, badge laneBadge) string {
	inner := cardWidth - 4

	name := lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(p.Name, inner, "…"))

	price := priceStyle.Render(formatPrice(p.Price))
	if p.HasDiscount() {
		price += " " + strikeStyle.Render(formatPrice(p.OriginalPrice))
	}

	var third string
	switch badge {
	case badgeDiscount:
		third = badgeStyle.Render(fmt.Sprintf("-%d%%", discountPercent(p))) +
			mutedStyle.Render(" save "+formatPrice(p.Savings()))
	default:
		third = badgeStyle.Render(fmt.Sprintf("★ %.1f", p.Rating)) +
			mutedStyle.Render(fmt.Sprintf(" (%d)", p.ReviewCount))
	}

	body := strings.Join([]string{
		name,
		ansi.Truncate(price, inner, ""),
		ansi.Truncate(third, inner, ""),
	}, "\n")

	return lipgloss.NewStyle().
		Width(cardWidth-2).
		Height(cardHeight-2).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Render(body)
}

func formatPrice(v float64) string { return fmt.Sprintf("$%.2f", v) }

func discountPercent(p model.Product) int {
	return int(math.Round(p.Discount() * 100))
}

// padLines pads s with empty lines up to n lines.
func padLines(s string, n int) string {
	lines := strings.Count(s, "\n") + 1
	if lines < n {
		s += strings.Repeat("\n", n-lines)
	}
	return s
}
