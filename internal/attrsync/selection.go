// Package attrsync synchronizes plot attributes across a multi-selection of
// viewers and layers. It is the explicit rewrite of the panel's reactive
// binding layer: a Selection exposes per-attribute views (value, choices,
// relevance, uniform-or-mixed), fans writes out across the selected targets,
// and collapses mixed attributes on request.
package attrsync

import (
	"fmt"
	"sync"

	"github.com/astoria-viz/plotopts/internal/session"
)

// SyncState tags a synchronized attribute as the design note's variant:
// Uniform(value) or Mixed(distinct values). Unset means no selected target
// carries the attribute.
type SyncState int

const (
	StateUnset SyncState = iota
	StateUniform
	StateMixed
)

// AttrView is the read side of one synchronized attribute.
type AttrView struct {
	Def      session.AttrDef
	Relevant bool
	State    SyncState
	// Value is the uniform value, or the first selected target's value when
	// mixed (the value Unmix would propagate).
	Value any
	// Values holds the distinct values across the selection, in selection
	// order, when State is StateMixed.
	Values []any
}

// Selection is one viewer plus one or more of its layers. The UI goroutine
// changes the selection while throttle timers fan out writes through it, so
// the selected ids are guarded.
type Selection struct {
	store *session.Store

	mu       sync.RWMutex
	viewerID string
	layerIDs []string
}

// NewSelection selects the store's first viewer and all of its layers.
func NewSelection(store *session.Store) *Selection {
	sel := &Selection{store: store}
	if viewers := store.Viewers(); len(viewers) > 0 {
		sel.SetViewer(viewers[0].ID)
	}
	return sel
}

// SetViewer switches the selected viewer and reselects all of its layers.
func (sel *Selection) SetViewer(id string) {
	layers := sel.store.LayersOf(id)
	sel.mu.Lock()
	defer sel.mu.Unlock()
	sel.viewerID = id
	sel.layerIDs = sel.layerIDs[:0]
	for _, l := range layers {
		sel.layerIDs = append(sel.layerIDs, l.ID)
	}
}

// SetLayers replaces the layer selection, keeping only layers that belong to
// the selected viewer. An empty result leaves the selection unchanged.
func (sel *Selection) SetLayers(ids []string) {
	viewerID := sel.ViewerID()
	var kept []string
	for _, id := range ids {
		if t, ok := sel.store.Target(id); ok && t.ViewerID == viewerID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return
	}
	sel.mu.Lock()
	defer sel.mu.Unlock()
	sel.layerIDs = kept
}

// ViewerID returns the selected viewer's id.
func (sel *Selection) ViewerID() string {
	sel.mu.RLock()
	defer sel.mu.RUnlock()
	return sel.viewerID
}

// Viewer returns the selected viewer target.
func (sel *Selection) Viewer() (session.Target, bool) {
	return sel.store.Target(sel.ViewerID())
}

// Layers returns the selected layers in selection order.
func (sel *Selection) Layers() []session.Target {
	ids := sel.LayerIDs()
	out := make([]session.Target, 0, len(ids))
	for _, id := range ids {
		if t, ok := sel.store.Target(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// LayerIDs returns the selected layer ids.
func (sel *Selection) LayerIDs() []string {
	sel.mu.RLock()
	defer sel.mu.RUnlock()
	return append([]string(nil), sel.layerIDs...)
}

// targetsFor returns the selected targets an attribute applies to: the viewer
// for viewer attributes, the matching selected layers otherwise.
func (sel *Selection) targetsFor(def session.AttrDef) []session.Target {
	var out []session.Target
	if v, ok := sel.Viewer(); ok && def.AppliesToKind(v.Kind) {
		out = append(out, v)
	}
	for _, l := range sel.Layers() {
		if def.AppliesToKind(l.Kind) {
			out = append(out, l)
		}
	}
	return out
}

// Attr builds the synchronized view of one attribute over the selection.
func (sel *Selection) Attr(name string) AttrView {
	def, ok := session.DefFor(name)
	if !ok {
		return AttrView{}
	}
	view := AttrView{Def: def}
	targets := sel.targetsFor(def)
	if len(targets) == 0 {
		return view
	}
	view.Relevant = true
	for _, t := range targets {
		v, ok := sel.store.Get(t.ID, name)
		if !ok {
			continue
		}
		distinct := true
		for _, seen := range view.Values {
			if session.ValuesEqual(seen, v) {
				distinct = false
				break
			}
		}
		if distinct {
			view.Values = append(view.Values, v)
		}
	}
	switch len(view.Values) {
	case 0:
		view.State = StateUnset
	case 1:
		view.State = StateUniform
		view.Value = view.Values[0]
		view.Values = nil
	default:
		view.State = StateMixed
		view.Value = view.Values[0]
	}
	return view
}

// Set writes one value to every selected target the attribute applies to.
func (sel *Selection) Set(name string, value any) error {
	def, ok := session.DefFor(name)
	if !ok {
		return fmt.Errorf("sync set %s: unknown attribute", name)
	}
	targets := sel.targetsFor(def)
	if len(targets) == 0 {
		return fmt.Errorf("sync set %s: no selected target carries it", name)
	}
	for _, t := range targets {
		if err := sel.store.Set(t.ID, name, value); err != nil {
			return err
		}
	}
	return nil
}

// Unmix collapses a mixed attribute to the first selected target's value,
// propagating it across the selection. Uniform or unset attributes are left
// alone.
func (sel *Selection) Unmix(name string) error {
	view := sel.Attr(name)
	if view.State != StateMixed {
		return nil
	}
	return sel.Set(name, view.Value)
}
