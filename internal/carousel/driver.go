package carousel

// Tick advances the lane by one frame. It is a no-op while the user owns the
// offset, after unmount, or while the surface is missing or unmeasured.
func (l *Lane) Tick() {
	if !l.mounted || l.surface == nil || !l.surface.Attached() || l.loopLength <= 0 {
		return
	}
	if l.state.UserOverride {
		return
	}

	next := l.state.Offset + l.state.Speed*float64(l.state.Direction)
	l.state.Offset = l.normalize(next)
	l.surface.SetScrollPosition(l.state.Offset)
}

// frameTask re-requests a frame after every run until stopped.
type frameTask struct {
	host    Host
	fn      func()
	cancel  Cancel
	stopped bool
}

func startFrameTask(host Host, fn func()) *frameTask {
	t := &frameTask{host: host, fn: fn}
	t.schedule()
	return t
}

func (t *frameTask) schedule() {
	if t.stopped {
		return
	}
	t.cancel = t.host.RequestFrame(t.run)
}

func (t *frameTask) run() {
	if t.stopped {
		return
	}
	t.fn()
	t.schedule()
}

// Stop cancels the pending frame; the task never reschedules again.
func (t *frameTask) Stop() {
	t.stopped = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
