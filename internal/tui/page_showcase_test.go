package tui

import (
	"strings"
	"testing"

	"github.com/pharmacare/showcase/internal/carousel"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func mountedShowcase(t *testing.T) *ShowcasePage {
	t.Helper()
	p := newTestShowcase(t)
	p.Init()
	p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	p.View(120, 40)
	return p
}

func TestShowcase_RendersSections(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	view := p.View(120, 40)

	for _, want := range []string{"PharmaCare", "Trending Now", "Hot Discounts", "Featured Products", "Products (10)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestShowcase_LaneContentAndDirections(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	lanes := p.Lanes()

	if got := len(lanes.A.Items()); got != 10 {
		t.Fatalf("trending items = %d, want 10 (5 duplicated)", got)
	}
	if got := lanes.A.State().Direction; got != carousel.Leftward {
		t.Fatalf("trending direction = %v, want leftward", got)
	}
	if got := lanes.B.State().Direction; got != carousel.Rightward {
		t.Fatalf("discounts direction = %v, want rightward", got)
	}
	if first := p.trending.products[0].ID; first != 3 {
		t.Fatalf("top trending product = %d, want 3", first)
	}
	if first := p.discounts.products[0].ID; first != 2 {
		t.Fatalf("top discounted product = %d, want 2", first)
	}

	p.host.fireFrame()
	if got := p.trending.surface.pos; got != 5*cardStride-1 {
		t.Fatalf("trending offset = %v, want %d", got, 5*cardStride-1)
	}
	if got := p.discounts.surface.pos; got != 1 {
		t.Fatalf("discounts offset = %v, want 1", got)
	}
}

func TestShowcase_SearchWithNoMatches(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	p.Update(keyRunes("/"))
	if !p.searching {
		t.Fatal("/ did not start search")
	}
	for _, r := range "zzz" {
		p.Update(keyRunes(string(r)))
	}

	if len(p.results) != 0 {
		t.Fatalf("results = %d, want 0", len(p.results))
	}
	if !strings.Contains(p.View(120, 40), "No products found") {
		t.Fatal("empty state not rendered")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.searching || len(p.results) != 10 {
		t.Fatalf("esc should clear search: searching=%v results=%d", p.searching, len(p.results))
	}
}

func TestShowcase_CategoryCycling(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	p.Update(keyRunes("]"))

	if got := p.activeCategory(); got != p.categories[1] {
		t.Fatalf("category = %q, want %q", got, p.categories[1])
	}
	for _, r := range p.results {
		if r.Category != p.categories[1] {
			t.Fatalf("product %d in %q leaked into %q", r.ID, r.Category, p.categories[1])
		}
	}

	p.Update(keyRunes("["))
	p.Update(keyRunes("["))
	if got := p.activeCategory(); got != p.categories[len(p.categories)-1] {
		t.Fatalf("category wrap = %q, want last", got)
	}
}

func TestShowcase_MouseHoverSlowsOnlyThatLane(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	lanes := p.Lanes()

	p.Update(tea.MouseMsg{X: 10, Y: p.laneRows[0] + 1, Action: tea.MouseActionMotion})
	if got := lanes.A.State().Speed; got != 0.5 {
		t.Fatalf("hovered trending speed = %v, want 0.5", got)
	}
	if got := lanes.B.State().Speed; got != 1 {
		t.Fatalf("discounts speed = %v, want 1", got)
	}

	p.Update(tea.MouseMsg{X: 10, Y: p.laneRows[1], Action: tea.MouseActionMotion})
	if lanes.A.State().Speed != 1 || lanes.B.State().Speed != 0.5 {
		t.Fatalf("hover did not move lanes: A=%v B=%v", lanes.A.State().Speed, lanes.B.State().Speed)
	}

	p.Update(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	if lanes.A.State().Speed != 1 || lanes.B.State().Speed != 1 {
		t.Fatal("leaving both lanes should restore normal speed")
	}
}

func TestShowcase_OpeningModalEndsHover(t *testing.T) {
	t.Parallel()

	app, p, _, _ := newTestApp(t)
	p.View(120, 40)
	lanes := p.Lanes()

	app.Update(tea.MouseMsg{X: 10, Y: p.laneRows[0] + 1, Action: tea.MouseActionMotion})
	if got := lanes.A.State().Speed; got != 0.5 {
		t.Fatalf("hovered trending speed = %v, want 0.5", got)
	}

	_, cmd := app.Update(tea.MouseMsg{X: 10, Y: p.laneRows[0] + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	app.Update(actionFrom(t, cmd))
	if _, ok := app.TopModal().(*ProductModal); !ok {
		t.Fatalf("top modal = %T, want *ProductModal", app.TopModal())
	}
	if got := lanes.A.State().Speed; got != 1 {
		t.Fatalf("trending speed with modal open = %v, want 1", got)
	}

	// The pointer leaves while the modal owns the mouse.
	app.Update(tea.MouseMsg{X: 10, Y: 0, Action: tea.MouseActionMotion})
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.TopModal() != nil {
		t.Fatal("esc should close the product modal")
	}
	if got := lanes.A.State().Speed; got != 1 {
		t.Fatalf("trending speed after modal closed = %v, want 1", got)
	}
}

func TestShowcase_WheelScrollsManually(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	lanes := p.Lanes()

	p.Update(tea.MouseMsg{X: 10, Y: p.laneRows[1], Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if lanes.B.Mode() != carousel.ModeManual {
		t.Fatal("wheel did not take manual control")
	}
	if got := p.discounts.surface.pos; got != wheelScrollStep {
		t.Fatalf("discounts offset = %v, want %d", got, wheelScrollStep)
	}
	if lanes.A.Mode() != carousel.ModeAuto {
		t.Fatal("scrolling one lane changed the other")
	}

	p.host.fireFrame()
	if got := p.discounts.surface.pos; got != wheelScrollStep {
		t.Fatalf("manual lane advanced to %v", got)
	}
}

func TestShowcase_ShiftArrowScrollsFocusedLane(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	p.section = SectionTrending

	p.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	if got := p.Lanes().A.State().Offset; got != cardStride {
		t.Fatalf("trending offset = %v, want %d", got, cardStride)
	}
	if p.Lanes().A.Mode() != carousel.ModeManual {
		t.Fatal("shift+right did not take manual control")
	}
}

func TestShowcase_EnterOpensProductModal(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	p.section = SectionTrending

	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	action := actionFrom(t, cmd)
	modal, ok := action.Payload.(*ProductModal)
	if !ok {
		t.Fatalf("payload = %T, want *ProductModal", action.Payload)
	}
	if modal.product.ID != 3 {
		t.Fatalf("opened product %d, want 3 (first trending card)", modal.product.ID)
	}

	view := modal.View(120, 40)
	for _, want := range []string{modal.product.Name, "Add to Cart", "reviews"} {
		if !strings.Contains(view, want) {
			t.Errorf("product modal missing %q", want)
		}
	}

	pop, cmd := modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !pop {
		t.Fatal("add to cart should close the modal")
	}
	p.Update(cmd())
	if !strings.Contains(p.notice, "Added") {
		t.Fatalf("notice = %q, want cart acknowledgement", p.notice)
	}
}

func TestLaneView_WindowWidth(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	for _, width := range []int{40, 120, 400} {
		out := p.trending.render(width, false)
		lines := strings.Split(out, "\n")
		if len(lines) != p.trending.height() {
			t.Fatalf("width %d: lines = %d, want %d", width, len(lines), p.trending.height())
		}
		for i, l := range lines[1:] {
			if got := ansi.StringWidth(l); got != width {
				t.Fatalf("width %d: strip line %d is %d cells", width, i, got)
			}
		}
	}
}

func TestLaneView_ProductAtFollowsOffset(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	v := p.trending

	v.surface.pos = cardStride + 1
	got, ok := v.productAt(0)
	if !ok || got.ID != v.products[1].ID {
		t.Fatalf("productAt(0) = %d, want %d", got.ID, v.products[1].ID)
	}

	// The last card is followed by the first again.
	v.surface.pos = float64(len(v.products)*cardStride - 1)
	got, _ = v.productAt(1)
	if got.ID != v.products[0].ID {
		t.Fatalf("wrapped productAt = %d, want %d", got.ID, v.products[0].ID)
	}
}

func TestRenderStrip_LoopWidth(t *testing.T) {
	t.Parallel()

	p := mountedShowcase(t)
	rows := renderStrip(p.discounts.products, badgeDiscount)
	if len(rows) != cardHeight {
		t.Fatalf("rows = %d, want %d", len(rows), cardHeight)
	}
	want := len(p.discounts.products) * cardStride
	for i, r := range rows {
		if got := ansi.StringWidth(r); got != want {
			t.Fatalf("row %d width = %d, want %d", i, got, want)
		}
	}
}
