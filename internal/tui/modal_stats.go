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

var categoryBarStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(ColorBlue).Background(ColorBlue),
	lipgloss.NewStyle().Foreground(ColorGreen).Background(ColorGreen),
	lipgloss.NewStyle().Foreground(ColorOrange).Background(ColorOrange),
	lipgloss.NewStyle().Foreground(ColorPink).Background(ColorPink),
}

// categoryStat summarizes one category.
type categoryStat struct {
	name      string
	count     int
	avgRating float64
	maxOff    int
}

// StatsModal shows per-category catalog statistics.
type StatsModal struct {
	ctx      ModalContext
	stats    []categoryStat
	total    int
	viewport viewport.Model
}

// NewStatsModal groups products by category, in category bar order.
func NewStatsModal(products []model.Product, categories []string, ctx ModalContext) *StatsModal {
	return &StatsModal{
		ctx:      ctx,
		stats:    categoryStats(products, categories),
		total:    len(products),
		viewport: viewport.New(80, 20),
	}
}

func categoryStats(products []model.Product, categories []string) []categoryStat {
	var stats []categoryStat
	for _, c := range categories {
		if c == model.CategoryAll {
			continue
		}
		s := categoryStat{name: c}
		var ratingSum float64
		for _, p := range products {
			if p.Category != c {
				continue
			}
			s.count++
			ratingSum += p.Rating
			s.maxOff = max(s.maxOff, discountPercent(p))
		}
		if s.count > 0 {
			s.avgRating = ratingSum / float64(s.count)
		}
		stats = append(stats, s)
	}
	return stats
}

func (m *StatsModal) ID() string { return "stats" }

func (m *StatsModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if scrollViewport(&m.viewport, m.ctx, msg) {
		return false, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q", "i":
			return true, nil
		}
	}
	return false, nil
}

func (m *StatsModal) View(width, height int) string {
	status := []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "i: Toggle Stats", "ESC: Close"}
	return renderModalFrame(&m.viewport, "Catalog Statistics", m.content(), status, width, height)
}

func (m *StatsModal) content() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d products in %d categories\n\n", m.total, len(m.stats))

	if len(m.stats) > 0 {
		bc := barchart.New(len(m.stats)*3, 8,
			barchart.WithBarGap(1),
			barchart.WithBarWidth(2),
			barchart.WithNoAxis(),
		)
		for i, s := range m.stats {
			bc.Push(barchart.BarData{
				Label: s.name,
				Values: []barchart.BarValue{
					{Name: s.name, Value: float64(s.count), Style: categoryBarStyles[i%len(categoryBarStyles)]},
				},
			})
		}
		bc.Draw()
		b.WriteString(bc.View())
		b.WriteString("\n\n")
	}

	for i, s := range m.stats {
		swatch := categoryBarStyles[i%len(categoryBarStyles)].Render("  ")
		fmt.Fprintf(&b, "%s %-20s %3d products", swatch, s.name, s.count)
		if s.count > 0 {
			fmt.Fprintf(&b, "   avg ★ %.1f", s.avgRating)
		}
		if s.maxOff > 0 {
			fmt.Fprintf(&b, "   up to %d%% off", s.maxOff)
		}
		b.WriteString("\n")
	}
	return b.String()
}
