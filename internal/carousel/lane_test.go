package carousel

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type card struct {
	key   string
	width float64
}

func (c card) Key() string    { return c.key }
func (c card) Width() float64 { return c.width }

type recordingSurface struct {
	attached bool
	pos      float64
	writes   int
}

func (s *recordingSurface) Attached() bool { return s.attached }
func (s *recordingSurface) SetScrollPosition(pos float64) {
	s.pos = pos
	s.writes++
}

func cards(n int, width float64) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = card{key: fmt.Sprintf("p%d", i+1), width: width}
	}
	return items
}

func mountLane(t *testing.T, host Host, dir Direction, loop float64) (*Lane, *recordingSurface) {
	t.Helper()
	surface := &recordingSurface{attached: true}
	lane, err := Mount(host, surface, cards(10, loop/10), dir, Config{Speed: 1, IdleTimeout: 2 * time.Second})
	require.NoError(t, err)
	return lane, surface
}

func TestMount_DuplicatesContentOnce(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Leftward, 1000)

	items := lane.Items()
	require.Len(t, items, 20)
	for i := 0; i < 10; i++ {
		assert.Equal(t, items[i].Key(), items[i+10].Key())
	}
	assert.Equal(t, 1000.0, lane.LoopLength())
	assert.Equal(t, ModeAuto, lane.Mode())
	assert.Equal(t, 0.0, lane.State().Offset)
}

func TestMount_RejectsBadInput(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)

	_, err := Mount(host, &recordingSurface{}, nil, Direction(0), Config{})
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = Mount(nil, &recordingSurface{}, nil, Leftward, Config{})
	assert.ErrorIs(t, err, ErrNilHost)
}

func TestTick_WraparoundInvariant(t *testing.T) {
	for _, dir := range []Direction{Leftward, Rightward} {
		for _, loop := range []float64{1000, 37.5, 3} {
			t.Run(fmt.Sprintf("%s/%v", dir, loop), func(t *testing.T) {
				host := NewSimHost(t0, 10*time.Millisecond)
				lane, surface := mountLane(t, host, dir, loop)

				for frame := 0; frame < 3000; frame++ {
					if frame == 1000 {
						lane.OnHoverEnter()
					}
					if frame == 2000 {
						lane.OnHoverLeave()
					}
					host.AdvanceFrames(1)

					off := lane.State().Offset
					require.GreaterOrEqual(t, off, 0.0, "frame %d", frame)
					require.Less(t, off, lane.LoopLength(), "frame %d", frame)
					require.Equal(t, off, surface.pos)
				}
			})
		}
	}
}

func TestTick_FullLoopReturnsToStart(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, surface := mountLane(t, host, Leftward, 1000)
	start := lane.State().Offset

	host.AdvanceFrames(1)
	assert.Equal(t, 999.0, lane.State().Offset, "leftward lane continues from the end of the first copy")

	host.AdvanceFrames(999)
	assert.Equal(t, start, lane.State().Offset)
	assert.Equal(t, 1000, surface.writes)
}

func TestTick_RightwardWrapsToZero(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Rightward, 100)

	host.AdvanceFrames(99)
	assert.Equal(t, 99.0, lane.State().Offset)
	host.AdvanceFrames(1)
	assert.Equal(t, 0.0, lane.State().Offset)
}

func TestTick_SkipsWithoutMountTarget(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, surface := mountLane(t, host, Rightward, 1000)
	surface.attached = false

	host.AdvanceFrames(50)
	assert.Equal(t, 0, surface.writes)
	assert.Equal(t, 0.0, lane.State().Offset)

	surface.attached = true
	host.AdvanceFrames(5)
	assert.Equal(t, 5, surface.writes)
	assert.Equal(t, 5.0, lane.State().Offset)
}

func TestTick_EmptyContentIsHarmless(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	surface := &recordingSurface{attached: true}
	lane, err := Mount(host, surface, nil, Leftward, Config{})
	require.NoError(t, err)

	host.AdvanceFrames(10)
	assert.Equal(t, 0.0, lane.LoopLength())
	assert.Equal(t, 0, surface.writes)
}

func TestIdleResume_SingleScroll(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Leftward, 1000)

	lane.OnUserScroll(400)
	assert.True(t, lane.State().UserOverride)

	host.Advance(1999 * time.Millisecond)
	assert.True(t, lane.State().UserOverride, "still manual just before the idle timeout")
	assert.Equal(t, 400.0, lane.State().Offset, "driver must not move a manual lane")

	host.Advance(1 * time.Millisecond)
	assert.False(t, lane.State().UserOverride, "auto again at the idle timeout")
	assert.Equal(t, ModeAuto, lane.Mode())
}

func TestIdleResume_LaterScrollResetsClock(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Rightward, 1000)

	lane.OnUserScroll(100)
	host.Advance(1000 * time.Millisecond)
	lane.OnUserScroll(150)

	host.Advance(1500 * time.Millisecond) // t = 2500ms
	assert.Equal(t, ModeManual, lane.Mode())

	host.Advance(499 * time.Millisecond) // t = 2999ms
	assert.Equal(t, ModeManual, lane.Mode())

	host.Advance(1 * time.Millisecond) // t = 3000ms
	assert.Equal(t, ModeAuto, lane.Mode())
}

func TestIdleResume_ContinuesFromUserPosition(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, surface := mountLane(t, host, Rightward, 1000)

	host.Advance(5 * time.Millisecond)
	lane.OnUserScroll(250)

	host.Advance(2000 * time.Millisecond) // idle check at +2005ms
	assert.Equal(t, ModeAuto, lane.Mode())
	assert.Equal(t, 250.0, lane.State().Offset)

	host.Advance(95 * time.Millisecond) // frames at 2010..2100
	assert.Equal(t, 260.0, lane.State().Offset)
	assert.Equal(t, 260.0, surface.pos)
}

func TestOnUserScroll_NormalizesSecondCopy(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Leftward, 1000)

	lane.OnUserScroll(1250)
	assert.Equal(t, 250.0, lane.State().Offset)
}

func TestHover_HalvesSpeed(t *testing.T) {
	for _, dir := range []Direction{Leftward, Rightward} {
		host := NewSimHost(t0, 10*time.Millisecond)
		lane, _ := mountLane(t, host, dir, 1000)

		lane.OnHoverEnter()
		slow := lane.State().Speed
		lane.OnHoverLeave()
		normal := lane.State().Speed

		assert.Equal(t, normal/2, slow, dir.String())
		assert.Equal(t, dir, lane.State().Direction, "hover never flips direction")
	}
}

func TestHover_SlowsAdvance(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Rightward, 1000)

	lane.OnHoverEnter()
	host.AdvanceFrames(10)
	assert.Equal(t, 5.0, lane.State().Offset)

	lane.OnHoverLeave()
	host.AdvanceFrames(10)
	assert.Equal(t, 15.0, lane.State().Offset)
}

func TestUnmount_StopsAllWork(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, surface := mountLane(t, host, Leftward, 1000)

	host.AdvanceFrames(10)
	lane.OnUserScroll(300)
	host.Advance(2 * time.Second)
	writes, pos := surface.writes, surface.pos
	lane.OnUserScroll(500) // arms a fresh idle timer

	lane.Unmount()
	assert.False(t, lane.Mounted())
	assert.Equal(t, 0, host.Pending(), "no frame or timer may survive teardown")

	host.Advance(10 * time.Second)
	assert.Equal(t, writes, surface.writes)
	assert.Equal(t, pos, surface.pos)

	lane.OnUserScroll(10)
	lane.OnHoverEnter()
	lane.Unmount()
	assert.Equal(t, 0, host.Pending())
}

func TestSetItems_RecomputesLoop(t *testing.T) {
	host := NewSimHost(t0, 10*time.Millisecond)
	lane, _ := mountLane(t, host, Rightward, 1000)

	host.AdvanceFrames(700)
	lane.SetItems(cards(5, 100))

	assert.Len(t, lane.Items(), 10)
	assert.Equal(t, 500.0, lane.LoopLength())
	assert.Equal(t, 200.0, lane.State().Offset)
}
