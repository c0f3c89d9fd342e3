package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pharmacare/showcase/internal/carousel"
	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	ShowcasePageID  = "showcase"
	AssistantPageID = "assistant"
)

// Section is a focusable area of the showcase page.
type Section int

const (
	SectionCategories Section = iota
	SectionTrending
	SectionDiscounts
	SectionFeatured
	SectionProducts
	sectionCount
)

// ShowcaseConfig wires the showcase page.
type ShowcaseConfig struct {
	Catalog            model.CatalogQuerier
	FrameInterval      time.Duration
	Lane               carousel.Config
	LaneSize           int
	ReverseScrollWheel bool
}

// addedToCartMsg is sent by the product modal.
type addedToCartMsg struct{ product model.Product }

func (addedToCartMsg) targetPage() string { return ShowcasePageID }

// ShowcasePage is the storefront: search, categories, the two autoscrolling
// lanes, featured products and the filtered product list.
type ShowcasePage struct {
	cfg  ShowcaseConfig
	keys KeyMap
	host *teaHost

	categories []string
	category   int

	search    textinput.Model
	searching bool

	trending  *laneView
	discounts *laneView
	dual      *carousel.DualLane

	featured       []model.Product
	featuredCursor int

	results []model.Product
	cursor  int
	gridTop int

	section Section
	notice  string
	loadErr error

	width    int
	height   int
	laneRows [2]int // first strip row of each lane in the last View
}

func NewShowcasePage(cfg ShowcaseConfig) *ShowcasePage {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = model.DefaultFrameInterval
	}
	if cfg.LaneSize <= 0 {
		cfg.LaneSize = model.DefaultLaneSize
	}

	search := textinput.New()
	search.Placeholder = "Search products..."
	search.Prompt = "/ "
	search.CharLimit = 64

	return &ShowcasePage{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		host:   newTeaHost(ShowcasePageID, cfg.FrameInterval),
		search: search,
		trending: newLaneView("Trending Now", carousel.Leftward, badgeRating,
			catalog.TrendingLane(cfg.Catalog, cfg.LaneSize)),
		discounts: newLaneView("Hot Discounts", carousel.Rightward, badgeDiscount,
			catalog.DiscountLane(cfg.Catalog, cfg.LaneSize)),
		section:  SectionTrending,
		laneRows: [2]int{-1, -1},
	}
}

func (p *ShowcasePage) ID() string { return ShowcasePageID }

// Init loads the catalog and mounts both lanes.
func (p *ShowcasePage) Init() tea.Cmd {
	p.loadErr = nil
	if cats, err := p.cfg.Catalog.Categories(); err != nil {
		p.loadErr = err
	} else {
		p.categories = cats
		if p.category >= len(cats) {
			p.category = 0
		}
	}
	if featured, err := p.cfg.Catalog.Featured(); err != nil {
		p.loadErr = err
	} else {
		p.featured = featured
	}
	p.refilter()

	p.trending.load()
	p.discounts.load()
	p.mountLanes()
	return p.host.Drain()
}

func (p *ShowcasePage) mountLanes() {
	if p.dual != nil {
		return
	}
	dual, err := carousel.MountDual(p.host, p.trending.laneSpec(), p.discounts.laneSpec(), p.cfg.Lane)
	if err != nil {
		p.loadErr = err
		return
	}
	p.dual = dual
	p.trending.lane = dual.A
	p.discounts.lane = dual.B
}

// Unmount tears both lanes down; their pending frames and timers are cancelled.
func (p *ShowcasePage) Unmount() {
	if p.dual != nil {
		p.dual.Unmount()
		p.dual = nil
	}
	p.trending.detach()
	p.discounts.detach()
	p.searching = false
	p.search.Blur()
}

// Lanes exposes the mounted lanes, nil while unmounted.
func (p *ShowcasePage) Lanes() *carousel.DualLane { return p.dual }

func (p *ShowcasePage) activeCategory() string {
	if len(p.categories) == 0 {
		return model.CategoryAll
	}
	return p.categories[p.category]
}

func (p *ShowcasePage) refilter() {
	q := model.ProductQuery{Category: p.activeCategory(), Search: strings.TrimSpace(p.search.Value())}
	results, err := p.cfg.Catalog.Products(q)
	if err != nil {
		p.loadErr = err
		results = nil
	}
	p.results = results
	p.cursor = 0
	p.gridTop = 0
}

func (p *ShowcasePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	if p.host.Handle(msg) {
		return p.host.Drain(), nil
	}

	var cmd tea.Cmd
	var nav *PageNav

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		attached := msg.Width > 0
		p.trending.surface.attached = attached
		p.discounts.surface.attached = attached

	case addedToCartMsg:
		p.notice = fmt.Sprintf("Added %s to cart", msg.product.Name)

	case tea.KeyMsg:
		cmd, nav = p.handleKey(msg)

	case tea.MouseMsg:
		cmd = p.handleMouse(msg)

	default:
		if p.searching {
			p.search, cmd = p.search.Update(msg)
		}
	}

	return tea.Batch(cmd, p.host.Drain()), nav
}

func (p *ShowcasePage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	k := p.keys

	if p.searching {
		switch msg.String() {
		case "esc":
			p.searching = false
			p.search.Blur()
			p.search.SetValue("")
			p.refilter()
			return nil, nil
		case "enter":
			p.searching = false
			p.search.Blur()
			p.section = SectionProducts
			return nil, nil
		}
		before := p.search.Value()
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		if p.search.Value() != before {
			p.refilter()
		}
		return cmd, nil
	}

	p.notice = ""

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit, nil

	case key.Matches(msg, k.Help):
		return p.openModal(NewHelpModal(p.modalContext())), nil

	case key.Matches(msg, k.Stats):
		products, err := p.cfg.Catalog.AllProducts()
		if err != nil {
			p.notice = err.Error()
			return nil, nil
		}
		return p.openModal(NewStatsModal(products, p.categories, p.modalContext())), nil

	case key.Matches(msg, k.Assistant):
		return nil, &PageNav{PageID: AssistantPageID}

	case key.Matches(msg, k.Search):
		p.searching = true
		return p.search.Focus(), nil

	case key.Matches(msg, k.Escape):
		if p.search.Value() != "" {
			p.search.SetValue("")
			p.refilter()
		}

	case key.Matches(msg, k.NextSection):
		p.section = (p.section + 1) % sectionCount

	case key.Matches(msg, k.PrevSection):
		p.section = (p.section + sectionCount - 1) % sectionCount

	case key.Matches(msg, k.PrevCat):
		p.cycleCategory(-1)

	case key.Matches(msg, k.NextCat):
		p.cycleCategory(1)

	case key.Matches(msg, k.ScrollBack):
		if lane := p.focusedLane(); lane != nil {
			lane.scrollBy(-cardStride)
		}

	case key.Matches(msg, k.ScrollAhead):
		if lane := p.focusedLane(); lane != nil {
			lane.scrollBy(cardStride)
		}

	case key.Matches(msg, k.Left):
		p.moveHorizontal(-1)

	case key.Matches(msg, k.Right):
		p.moveHorizontal(1)

	case key.Matches(msg, k.Up):
		p.moveCursor(-1)

	case key.Matches(msg, k.Down):
		p.moveCursor(1)

	case key.Matches(msg, k.PageUp):
		p.moveCursor(-p.gridRows())

	case key.Matches(msg, k.PageDown):
		p.moveCursor(p.gridRows())

	case key.Matches(msg, k.Enter):
		if product, ok := p.selected(); ok {
			return p.openModal(NewProductModal(product, p.modalContext())), nil
		}
	}
	return nil, nil
}

func (p *ShowcasePage) handleMouse(msg tea.MouseMsg) tea.Cmd {
	over := p.laneAt(msg.Y)
	p.trending.setHover(over == p.trending)
	p.discounts.setHover(over == p.discounts)

	if over == nil || msg.Action != tea.MouseActionPress {
		return nil
	}

	step := float64(wheelScrollStep)
	if p.cfg.ReverseScrollWheel {
		step = -step
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		over.scrollBy(-step)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		over.scrollBy(step)
	case tea.MouseButtonLeft:
		if product, ok := over.productAt(msg.X); ok {
			return p.openModal(NewProductModal(product, p.modalContext()))
		}
	}
	return nil
}

// laneAt returns the lane whose strip covers screen row y.
func (p *ShowcasePage) laneAt(y int) *laneView {
	for i, lane := range []*laneView{p.trending, p.discounts} {
		top := p.laneRows[i]
		if top >= 0 && y >= top && y < top+cardHeight {
			return lane
		}
	}
	return nil
}

func (p *ShowcasePage) focusedLane() *laneView {
	switch p.section {
	case SectionTrending:
		return p.trending
	case SectionDiscounts:
		return p.discounts
	}
	return nil
}

func (p *ShowcasePage) cycleCategory(delta int) {
	n := len(p.categories)
	if n == 0 {
		return
	}
	p.category = (p.category + delta + n) % n
	p.refilter()
}

func (p *ShowcasePage) moveHorizontal(delta int) {
	switch p.section {
	case SectionCategories:
		p.cycleCategory(delta)
	case SectionTrending, SectionDiscounts:
		p.focusedLane().scrollBy(float64(delta * cardStride))
	case SectionFeatured:
		if n := len(p.featured); n > 0 {
			p.featuredCursor = (p.featuredCursor + delta + n) % n
		}
	case SectionProducts:
		p.moveCursor(delta)
	}
}

func (p *ShowcasePage) moveCursor(delta int) {
	if p.section != SectionProducts {
		if delta < 0 {
			p.section = (p.section + sectionCount - 1) % sectionCount
		} else {
			p.section = (p.section + 1) % sectionCount
		}
		return
	}
	if len(p.results) == 0 {
		return
	}
	p.cursor = max(0, min(len(p.results)-1, p.cursor+delta))
}

// selected returns the product Enter would open for the focused section.
func (p *ShowcasePage) selected() (model.Product, bool) {
	switch p.section {
	case SectionTrending, SectionDiscounts:
		return p.focusedLane().productAt(0)
	case SectionFeatured:
		if p.featuredCursor < len(p.featured) {
			return p.featured[p.featuredCursor], true
		}
	case SectionProducts:
		if p.cursor < len(p.results) {
			return p.results[p.cursor], true
		}
	}
	return model.Product{}, false
}

// openModal pushes m and ends any lane hover. Mouse events go to the modal
// until it closes, so the page would never see the pointer leave.
func (p *ShowcasePage) openModal(m Modal) tea.Cmd {
	p.trending.setHover(false)
	p.discounts.setHover(false)
	return pushModal(m)
}

func (p *ShowcasePage) modalContext() ModalContext {
	return ModalContext{ReverseScrollWheel: p.cfg.ReverseScrollWheel}
}

// gridRows is the number of product rows that fit below the lanes.
func (p *ShowcasePage) gridRows() int {
	used := 2 + 1 + 2*(1+cardHeight+1) + 3 + 1 + 1
	return max(3, p.height-used)
}

func (p *ShowcasePage) View(width, height int) string {
	if width <= 0 {
		return renderLoading(0, "Loading...")
	}

	var b strings.Builder
	row := 0
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
		row += strings.Count(s, "\n") + 1
	}

	line(p.renderHeader(width))
	line(p.renderCategories(width))
	line("")

	for i, lane := range []*laneView{p.trending, p.discounts} {
		p.laneRows[i] = row + 1
		focused := (i == 0 && p.section == SectionTrending) || (i == 1 && p.section == SectionDiscounts)
		line(lane.render(width, focused))
		line("")
	}

	line(sectionTitle("Featured Products", p.section == SectionFeatured))
	line(p.renderFeatured(width))
	line("")

	line(sectionTitle(fmt.Sprintf("Products (%d)", len(p.results)), p.section == SectionProducts))
	for _, r := range p.renderGrid(width) {
		line(r)
	}

	b.WriteString(p.renderStatus(width))

	return lipgloss.NewStyle().MaxHeight(height).Render(b.String())
}

func (p *ShowcasePage) renderHeader(width int) string {
	title := titleStyle.Render("PharmaCare")
	var search string
	if p.searching || p.search.Value() != "" {
		search = p.search.View()
	} else {
		search = mutedStyle.Render("/ search products")
	}
	assistant := mutedStyle.Render("a: AI assistant")
	gap := max(1, width-ansi.StringWidth(title)-ansi.StringWidth(search)-ansi.StringWidth(assistant)-4)
	return ansi.Truncate(title+"  "+search+strings.Repeat(" ", gap)+assistant, width, "")
}

func (p *ShowcasePage) renderCategories(width int) string {
	tabs := make([]string, len(p.categories))
	for i, c := range p.categories {
		if i == p.category {
			tabs[i] = activeTabStyle.Render(c)
		} else {
			tabs[i] = tabStyle.Render(c)
		}
	}
	marker := "  "
	if p.section == SectionCategories {
		marker = focusedSectionStyle.Render("▸ ")
	}
	return ansi.Truncate(marker+strings.Join(tabs, ""), width, "…")
}

func (p *ShowcasePage) renderFeatured(width int) string {
	if len(p.featured) == 0 {
		return mutedStyle.Render("  No featured products")
	}
	parts := make([]string, len(p.featured))
	for i, f := range p.featured {
		label := fmt.Sprintf(" %s %s ", f.Name, formatPrice(f.Price))
		if p.section == SectionFeatured && i == p.featuredCursor {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return ansi.Truncate("  "+strings.Join(parts, " "), width, "…")
}

func (p *ShowcasePage) renderGrid(width int) []string {
	if len(p.results) == 0 {
		return []string{mutedStyle.Render("  No products found")}
	}

	rows := p.gridRows()
	if p.cursor < p.gridTop {
		p.gridTop = p.cursor
	}
	if p.cursor >= p.gridTop+rows {
		p.gridTop = p.cursor - rows + 1
	}
	end := min(len(p.results), p.gridTop+rows)

	nameWidth := max(12, width-52)
	out := make([]string, 0, end-p.gridTop)
	for i := p.gridTop; i < end; i++ {
		r := p.results[i]
		discount := ""
		if r.HasDiscount() {
			discount = fmt.Sprintf("-%d%%", discountPercent(r))
		}
		text := fmt.Sprintf("%-*s %-14s %9s %5s  ★ %.1f",
			nameWidth, ansi.Truncate(r.Name, nameWidth, "…"),
			ansi.Truncate(r.Category, 14, "…"),
			formatPrice(r.Price), discount, r.Rating)
		if p.section == SectionProducts && i == p.cursor {
			out = append(out, activeTabStyle.Render(ansi.Truncate("▸ "+text, width-2, "")))
		} else {
			out = append(out, "  "+ansi.Truncate(text, width-2, ""))
		}
	}
	return out
}

func (p *ShowcasePage) renderStatus(width int) string {
	switch {
	case p.loadErr != nil:
		return errorStyle.Render(ansi.Truncate("Error: "+p.loadErr.Error(), width, "…"))
	case p.notice != "":
		return lipgloss.NewStyle().Foreground(ColorGreen).Render(ansi.Truncate(p.notice, width, "…"))
	}
	items := []string{"tab: section", "/: search", "[ ]: category", "shift+←/→: scroll lane", "enter: details", "i: stats", "?: help", "q: quit"}
	return mutedStyle.Render(ansi.Truncate(strings.Join(items, " | "), width, "…"))
}
