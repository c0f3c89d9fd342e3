package carousel

// OnUserScroll hands the lane to the user at pos and (re)arms the idle check.
// Only the check armed by the latest interaction can clear the override.
func (l *Lane) OnUserScroll(pos float64) {
	if !l.mounted {
		return
	}
	l.state.UserOverride = true
	l.state.Offset = l.normalize(pos)
	l.state.LastInteractionAt = l.host.Now()

	if l.idleCancel != nil {
		l.idleCancel()
	}
	l.idleCancel = l.host.AfterFunc(l.cfg.IdleTimeout, l.checkIdle)
}

func (l *Lane) checkIdle() {
	l.idleCancel = nil
	if !l.mounted {
		return
	}
	if l.host.Now().Sub(l.state.LastInteractionAt) >= l.cfg.IdleTimeout {
		l.state.UserOverride = false
	}
}

// OnHoverEnter slows the lane to half its normal speed.
func (l *Lane) OnHoverEnter() {
	if !l.mounted {
		return
	}
	l.state.Speed = l.cfg.Speed / 2
}

// OnHoverLeave restores the normal speed.
func (l *Lane) OnHoverLeave() {
	if !l.mounted {
		return
	}
	l.state.Speed = l.cfg.Speed
}
