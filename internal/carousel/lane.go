package carousel

import (
	"errors"
	"math"
	"time"
)

// Direction is the fixed travel direction of a lane.
type Direction int

const (
	Leftward  Direction = -1
	Rightward Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Leftward:
		return "leftward"
	case Rightward:
		return "rightward"
	default:
		return "invalid"
	}
}

// Mode is the control state of a lane.
type Mode int

const (
	ModeAuto   Mode = iota // driver owns the offset
	ModeManual             // user owns the offset
)

func (m Mode) String() string {
	if m == ModeManual {
		return "MANUAL"
	}
	return "AUTO"
}

var (
	ErrInvalidDirection = errors.New("carousel: direction must be leftward or rightward")
	ErrNilHost          = errors.New("carousel: host is required")
)

// Item is one display record in a lane. Only identity, order and rendered
// width matter to the scroller.
type Item interface {
	Key() string
	Width() float64
}

// Surface is the visible scroll target of a lane (the mounted container).
type Surface interface {
	// Attached reports whether the container is present; ticks are skipped while it is not.
	Attached() bool
	SetScrollPosition(pos float64)
}

// Config holds per-lane tuning.
type Config struct {
	Speed       float64       // normal per-frame advance; hover halves it
	IdleTimeout time.Duration // manual scrolling hands control back after this much quiet
}

// DefaultConfig returns the stock speed (1 unit per frame) and a 2s idle timeout.
func DefaultConfig() Config {
	return Config{Speed: 1, IdleTimeout: 2000 * time.Millisecond}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	return c
}

// LaneState is the mutable scroll state of one lane.
type LaneState struct {
	Offset            float64
	Speed             float64
	Direction         Direction
	UserOverride      bool
	LastInteractionAt time.Time
}

// Lane couples one LaneState with its driver frame task and interaction
// handlers. All methods must be called from the host's callback thread.
type Lane struct {
	host    Host
	surface Surface
	cfg     Config

	items      []Item // content duplicated once
	loopLength float64
	state      LaneState

	frame      *frameTask
	idleCancel Cancel
	mounted    bool
}

// Mount duplicates items once, creates the lane state in AUTO mode at offset
// zero and starts the per-frame driver on host.
func Mount(host Host, surface Surface, items []Item, dir Direction, cfg Config) (*Lane, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if dir != Leftward && dir != Rightward {
		return nil, ErrInvalidDirection
	}
	cfg = cfg.withDefaults()

	l := &Lane{
		host:    host,
		surface: surface,
		cfg:     cfg,
		state: LaneState{
			Speed:     cfg.Speed,
			Direction: dir,
		},
		mounted: true,
	}
	l.setContent(items)
	l.frame = startFrameTask(host, l.Tick)
	return l, nil
}

// SetItems replaces the lane content after mount: the new sequence is
// duplicated, loopLength recomputed and the offset re-normalized.
func (l *Lane) SetItems(items []Item) {
	if !l.mounted {
		return
	}
	l.setContent(items)
	l.state.Offset = l.normalize(l.state.Offset)
}

func (l *Lane) setContent(items []Item) {
	doubled := make([]Item, 0, len(items)*2)
	doubled = append(doubled, items...)
	doubled = append(doubled, items...)
	l.items = doubled

	var rendered float64
	for _, it := range doubled {
		if w := it.Width(); w > 0 {
			rendered += w
		}
	}
	l.loopLength = rendered / 2
}

// Unmount cancels the frame task and the pending idle check and detaches
// the surface. No further writes reach the surface afterwards.
func (l *Lane) Unmount() {
	if !l.mounted {
		return
	}
	l.mounted = false
	if l.frame != nil {
		l.frame.Stop()
		l.frame = nil
	}
	if l.idleCancel != nil {
		l.idleCancel()
		l.idleCancel = nil
	}
	l.surface = nil
}

// State returns a copy of the lane state.
func (l *Lane) State() LaneState { return l.state }

// Mode derives the control state from the override flag.
func (l *Lane) Mode() Mode {
	if l.state.UserOverride {
		return ModeManual
	}
	return ModeAuto
}

// Items returns the duplicated content sequence.
func (l *Lane) Items() []Item { return l.items }

// LoopLength is the rendered length of one copy of the content.
func (l *Lane) LoopLength() float64 { return l.loopLength }

// Mounted reports whether the lane is still live.
func (l *Lane) Mounted() bool { return l.mounted }

// NormalSpeed is the configured non-hover speed.
func (l *Lane) NormalSpeed() float64 { return l.cfg.Speed }

// normalize maps a position onto [0, loopLength). Positions in the second
// copy show the same content as their counterpart in the first.
func (l *Lane) normalize(pos float64) float64 {
	if l.loopLength <= 0 {
		return math.Max(pos, 0)
	}
	pos = math.Mod(pos, l.loopLength)
	if pos < 0 {
		pos += l.loopLength
	}
	if pos >= l.loopLength {
		pos = 0
	}
	return pos
}
