package attrsync

import (
	"sync"
	"time"
)

// Throttle rate-limits a generic named setter to one outgoing update per
// interval per attribute. The first call in a quiet period fires immediately;
// further calls inside the window are coalesced into a single trailing emit
// carrying the most recent value. Used for color-picker updates and slider
// drags so continuous gestures don't flood the store.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	emit     func(name string, value any)
	lastFire map[string]time.Time
	pending  map[string]any
	timers   map[string]*time.Timer
	stopped  bool
}

func NewThrottle(interval time.Duration, emit func(name string, value any)) *Throttle {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Throttle{
		interval: interval,
		emit:     emit,
		lastFire: make(map[string]time.Time),
		pending:  make(map[string]any),
		timers:   make(map[string]*time.Timer),
	}
}

// Set requests an update. Last value wins within a window.
func (t *Throttle) Set(name string, value any) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	now := time.Now()
	elapsed := now.Sub(t.lastFire[name])
	if elapsed >= t.interval && t.timers[name] == nil {
		t.lastFire[name] = now
		t.mu.Unlock()
		t.emit(name, value)
		return
	}
	t.pending[name] = value
	if t.timers[name] == nil {
		delay := t.interval - elapsed
		if delay <= 0 {
			delay = t.interval
		}
		t.timers[name] = time.AfterFunc(delay, func() { t.fire(name) })
	}
	t.mu.Unlock()
}

// Pending returns the not-yet-emitted value for an attribute, letting the UI
// render the user's latest intent ahead of the trailing emit.
func (t *Throttle) Pending(name string) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.pending[name]
	return v, ok
}

// Flush emits every pending value immediately.
func (t *Throttle) Flush() {
	t.mu.Lock()
	names := make([]string, 0, len(t.pending))
	for name := range t.pending {
		names = append(names, name)
	}
	t.mu.Unlock()
	for _, name := range names {
		t.fire(name)
	}
}

// Stop cancels pending timers and drops queued values.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for name, timer := range t.timers {
		timer.Stop()
		delete(t.timers, name)
	}
	t.pending = make(map[string]any)
}

func (t *Throttle) fire(name string) {
	t.mu.Lock()
	if timer, ok := t.timers[name]; ok {
		timer.Stop()
		delete(t.timers, name)
	}
	value, ok := t.pending[name]
	if !ok || t.stopped {
		t.mu.Unlock()
		return
	}
	delete(t.pending, name)
	t.lastFire[name] = time.Now()
	t.mu.Unlock()
	t.emit(name, value)
}
