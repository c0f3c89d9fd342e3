package carousel

import (
	"container/heap"
	"time"
)

// SimHost is a virtual-clock Host. Frames land on multiples of the frame
// period from the start time; Advance runs every due frame and timer in time
// order on the caller's goroutine.
type SimHost struct {
	epoch  time.Time
	now    time.Time
	period time.Duration
	seq    uint64
	queue  simQueue
}

// NewSimHost creates a host whose clock starts at start.
func NewSimHost(start time.Time, framePeriod time.Duration) *SimHost {
	if framePeriod <= 0 {
		framePeriod = 16 * time.Millisecond
	}
	return &SimHost{epoch: start, now: start, period: framePeriod}
}

func (h *SimHost) Now() time.Time { return h.now }

// FramePeriod returns the virtual display refresh interval.
func (h *SimHost) FramePeriod() time.Duration { return h.period }

func (h *SimHost) RequestFrame(fn func()) Cancel {
	elapsed := h.now.Sub(h.epoch)
	next := (elapsed/h.period + 1) * h.period
	return h.push(h.epoch.Add(next), fn)
}

func (h *SimHost) AfterFunc(d time.Duration, fn func()) Cancel {
	if d < 0 {
		d = 0
	}
	return h.push(h.now.Add(d), fn)
}

func (h *SimHost) push(at time.Time, fn func()) Cancel {
	h.seq++
	ev := &simEvent{at: at, seq: h.seq, fn: fn}
	heap.Push(&h.queue, ev)
	return func() { ev.cancelled = true }
}

// Advance moves the clock forward by d, running due callbacks in order.
// Callbacks scheduled while advancing run too if they fall within d.
func (h *SimHost) Advance(d time.Duration) {
	target := h.now.Add(d)
	for h.queue.Len() > 0 {
		ev := h.queue[0]
		if ev.at.After(target) {
			break
		}
		heap.Pop(&h.queue)
		if ev.cancelled {
			continue
		}
		h.now = ev.at
		ev.fn()
	}
	h.now = target
}

// AdvanceFrames advances by n frame periods.
func (h *SimHost) AdvanceFrames(n int) {
	h.Advance(time.Duration(n) * h.period)
}

// Pending counts scheduled callbacks that have not been cancelled.
func (h *SimHost) Pending() int {
	n := 0
	for _, ev := range h.queue {
		if !ev.cancelled {
			n++
		}
	}
	return n
}

type simEvent struct {
	at        time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

type simQueue []*simEvent

func (q simQueue) Len() int { return len(q) }
func (q simQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}
func (q simQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *simQueue) Push(x any)   { *q = append(*q, x.(*simEvent)) }
func (q *simQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}
