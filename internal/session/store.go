// Package session holds the shared visualization state the plot options
// panel binds to: viewers, layers, and their named plot attributes. It is
// the in-process stand-in for the plotting engine's state store, exposing
// get/set/subscribe per named attribute and nothing about rendering.
package session

import (
	"fmt"
	"sync"
)

// Target is a viewer or a layer hosted by a viewer.
type Target struct {
	ID       string
	Name     string
	Kind     TargetKind
	ViewerID string // parent viewer; empty for viewers themselves
}

// Change describes one attribute mutation, delivered to subscribers.
type Change struct {
	TargetID string
	Attr     string
	Value    any
}

// Store owns all targets and their attribute values. Methods are safe for
// concurrent use; throttle timers mutate the store off the UI goroutine.
type Store struct {
	mu      sync.RWMutex
	targets map[string]Target
	order   []string
	values  map[string]map[string]any
	subs    map[int]chan Change
	nextSub int
}

func NewStore() *Store {
	return &Store{
		targets: make(map[string]Target),
		values:  make(map[string]map[string]any),
		subs:    make(map[int]chan Change),
	}
}

// AddTarget registers a target and initializes every applicable attribute to
// its registry default.
func (s *Store) AddTarget(t Target) error {
	if t.ID == "" {
		return fmt.Errorf("add target: id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.targets[t.ID]; exists {
		return fmt.Errorf("add target: duplicate id %q", t.ID)
	}
	if t.Kind != TargetViewer {
		if _, ok := s.targets[t.ViewerID]; !ok {
			return fmt.Errorf("add target %q: unknown viewer %q", t.ID, t.ViewerID)
		}
	}
	s.targets[t.ID] = t
	s.order = append(s.order, t.ID)
	attrs := make(map[string]any)
	for _, d := range attrDefs {
		if !d.AppliesToKind(t.Kind) {
			continue
		}
		v, err := d.Normalize(d.Default)
		if err != nil {
			return fmt.Errorf("add target %q: default for %s: %w", t.ID, d.Name, err)
		}
		attrs[d.Name] = v
	}
	s.values[t.ID] = attrs
	return nil
}

// Target returns the target with the given id.
func (s *Store) Target(id string) (Target, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.targets[id]
	return t, ok
}

// Viewers returns all viewer targets in registration order.
func (s *Store) Viewers() []Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Target
	for _, id := range s.order {
		if t := s.targets[id]; t.Kind == TargetViewer {
			out = append(out, t)
		}
	}
	return out
}

// LayersOf returns the layers hosted by the given viewer, in registration order.
func (s *Store) LayersOf(viewerID string) []Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Target
	for _, id := range s.order {
		if t := s.targets[id]; t.Kind != TargetViewer && t.ViewerID == viewerID {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the current value of an attribute on a target. Level lists are
// copied so callers cannot mutate store state in place.
func (s *Store) Get(targetID, attr string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attrs, ok := s.values[targetID]
	if !ok {
		return nil, false
	}
	v, ok := attrs[attr]
	if !ok {
		return nil, false
	}
	if levels, isLevels := v.([]float64); isLevels {
		return append([]float64(nil), levels...), true
	}
	return v, true
}

// Set validates the value against the registry, stores it, and notifies
// subscribers. Setting an attribute to its current value is a no-op and
// publishes nothing.
func (s *Store) Set(targetID, attr string, raw any) error {
	def, ok := DefFor(attr)
	if !ok {
		return fmt.Errorf("set %s: unknown attribute", attr)
	}
	s.mu.Lock()
	attrs, ok := s.values[targetID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("set %s: unknown target %q", attr, targetID)
	}
	t := s.targets[targetID]
	if !def.AppliesToKind(t.Kind) {
		s.mu.Unlock()
		return fmt.Errorf("set %s: not applicable to %s %q", attr, t.Kind, targetID)
	}
	v, err := def.Normalize(raw)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if ValuesEqual(attrs[attr], v) {
		s.mu.Unlock()
		return nil
	}
	attrs[attr] = v
	subs := make([]chan Change, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	ev := Change{TargetID: targetID, Attr: attr, Value: v}
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is far behind; the UI re-reads current values on
			// every event, so dropping here only coalesces refreshes.
		}
	}
	return nil
}

// Subscribe returns a buffered change channel and an unsubscribe func.
func (s *Store) Subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Change, 128)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
