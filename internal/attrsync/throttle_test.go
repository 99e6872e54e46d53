package attrsync

import (
	"sync"
	"testing"
	"time"
)

type emitRecorder struct {
	mu    sync.Mutex
	calls []struct {
		name  string
		value any
	}
}

func (r *emitRecorder) emit(name string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, struct {
		name  string
		value any
	}{name, value})
}

func (r *emitRecorder) snapshot() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.value
	}
	return out
}

func TestThrottleLeadingEdgeFiresImmediately(t *testing.T) {
	var rec emitRecorder
	th := NewThrottle(50*time.Millisecond, rec.emit)
	defer th.Stop()

	th.Set("line_width", 2.0)
	if got := rec.snapshot(); len(got) != 1 || got[0] != 2.0 {
		t.Fatalf("emits = %v, want immediate [2]", got)
	}
}

func TestThrottleCoalescesToMostRecent(t *testing.T) {
	var rec emitRecorder
	th := NewThrottle(40*time.Millisecond, rec.emit)
	defer th.Stop()

	// A burst faster than the interval: leading value then trailing latest.
	th.Set("line_width", 1.0)
	th.Set("line_width", 2.0)
	th.Set("line_width", 3.0)
	th.Set("line_width", 4.0)

	if v, ok := th.Pending("line_width"); !ok || v != 4.0 {
		t.Fatalf("pending = %v (%v), want 4", v, ok)
	}

	deadline := time.After(time.Second)
	for {
		if got := rec.snapshot(); len(got) == 2 {
			if got[0] != 1.0 || got[1] != 4.0 {
				t.Fatalf("emits = %v, want [1 4]", got)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatalf("trailing emit never arrived; emits = %v", rec.snapshot())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, ok := th.Pending("line_width"); ok {
		t.Fatal("pending value survived the trailing emit")
	}
}

func TestThrottleIndependentPerName(t *testing.T) {
	var rec emitRecorder
	th := NewThrottle(100*time.Millisecond, rec.emit)
	defer th.Stop()

	th.Set("line_width", 1.0)
	th.Set("line_opacity", 0.5)

	got := rec.snapshot()
	if len(got) != 2 {
		t.Fatalf("emits = %v, want one leading edge per name", got)
	}
}

func TestThrottleFlushDeliversPending(t *testing.T) {
	var rec emitRecorder
	th := NewThrottle(time.Minute, rec.emit)
	defer th.Stop()

	th.Set("line_width", 1.0)
	th.Set("line_width", 2.0)
	th.Set("line_width", 3.0)

	th.Flush()
	if got := rec.snapshot(); len(got) != 2 || got[1] != 3.0 {
		t.Fatalf("emits after flush = %v, want [1 3]", got)
	}
}

func TestThrottleStopDropsPending(t *testing.T) {
	var rec emitRecorder
	th := NewThrottle(time.Minute, rec.emit)

	th.Set("line_width", 1.0)
	th.Set("line_width", 2.0)
	th.Stop()

	time.Sleep(10 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("emits after stop = %v, want only the leading edge", got)
	}

	th.Set("line_width", 9.0)
	if got := rec.snapshot(); len(got) != 1 {
		t.Fatalf("stopped throttle still emits: %v", got)
	}
}
