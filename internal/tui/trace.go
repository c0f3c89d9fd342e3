package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/pharmacare/showcase/internal/carousel"
	"github.com/pharmacare/showcase/internal/catalog"
	"github.com/pharmacare/showcase/internal/model"
)

// TraceLanes runs both showcase lanes on a virtual clock for the given number
// of frames and writes each frame's scroll offsets to w.
func TraceLanes(w io.Writer, q model.CatalogQuerier, cfg carousel.Config, laneSize, frames int, period time.Duration) error {
	if period <= 0 {
		period = model.DefaultFrameInterval
	}
	if laneSize <= 0 {
		laneSize = model.DefaultLaneSize
	}

	trending := newLaneView("Trending Now", carousel.Leftward, badgeRating, catalog.TrendingLane(q, laneSize))
	discounts := newLaneView("Hot Discounts", carousel.Rightward, badgeDiscount, catalog.DiscountLane(q, laneSize))
	for _, v := range []*laneView{trending, discounts} {
		v.load()
		if v.err != nil {
			return fmt.Errorf("loading %s: %w", v.title, v.err)
		}
		v.surface.attached = true
	}

	host := carousel.NewSimHost(time.Unix(0, 0), period)
	dual, err := carousel.MountDual(host, trending.laneSpec(), discounts.laneSpec(), cfg)
	if err != nil {
		return err
	}
	defer dual.Unmount()

	fmt.Fprintf(w, "# trending: %d items, loop %.0f | discounts: %d items, loop %.0f\n",
		len(trending.products), dual.A.LoopLength(), len(discounts.products), dual.B.LoopLength())
	fmt.Fprintln(w, "frame\tms\ttrending\tdiscounts")
	for i := 1; i <= frames; i++ {
		host.AdvanceFrames(1)
		elapsed := host.Now().Sub(time.Unix(0, 0)).Milliseconds()
		if _, err := fmt.Fprintf(w, "%d\t%d\t%.1f\t%.1f\n", i, elapsed, trending.surface.pos, discounts.surface.pos); err != nil {
			return err
		}
	}
	return nil
}
