package ecs

// Timer calls a function after a delay of accumulated time. A repeating timer restarts after
// every call. Timers are advanced manually with Update, typically with the world delta from a
// system's begin hook.
type Timer struct {
	delay   float64
	repeat  bool
	acc     float64
	done    bool
	stopped bool
	fn      func()
}

// NewTimer creates a running timer. fn may be nil.
func NewTimer(delay float64, repeat bool, fn func()) *Timer {
	return &Timer{delay: delay, repeat: repeat, fn: fn}
}

// Update advances the timer by delta and calls the function when the delay elapses. A one-shot
// timer is done after the call. A repeating timer starts over from zero and drops any overshoot
// past the delay.
func (t *Timer) Update(delta float64) {
	if t.done || t.stopped {
		return
	}

	t.acc += delta
	if t.acc < t.delay {
		return
	}

	if t.repeat {
		t.Reset()
	} else {
		t.done = true
	}
	if t.fn != nil {
		t.fn()
	}
}

// Reset restarts the countdown and clears the done and stopped states.
func (t *Timer) Reset() {
	t.stopped = false
	t.done = false
	t.acc = 0
}

// Stop pauses the timer until Reset.
func (t *Timer) Stop() {
	t.stopped = true
}

func (t *Timer) IsDone() bool {
	return t.done
}

// IsRunning reports whether the timer is counting down.
func (t *Timer) IsRunning() bool {
	return !t.done && !t.stopped && t.acc < t.delay
}

func (t *Timer) SetDelay(delay float64) {
	t.delay = delay
}

func (t *Timer) Delay() float64 {
	return t.delay
}

// Progress returns the elapsed fraction of the delay, in [0, 1]. A done timer reports 1 and a
// stopped timer reports 0.
func (t *Timer) Progress() float64 {
	switch {
	case t.done:
		return 1
	case t.stopped:
		return 0
	case t.delay <= 0:
		return 1
	default:
		return t.acc / t.delay
	}
}
