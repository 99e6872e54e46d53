package main

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/config"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestModel(t *testing.T) model {
	t.Helper()
	store := session.NewStore()
	if err := session.SeedDemo(store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// A long interval keeps the trailing timer from firing mid-test; tests
	// flush explicitly when they want the coalesced value delivered.
	cfg := config.Config{}
	cfg.Plot.ThrottleMs = 200
	cfg.UI.ShowSwatches = true
	m := newModel(cfg, store, nil)
	m.width = 100
	m.height = 32
	return m
}

func cursorToAttr(t *testing.T, m *model, attr string) {
	t.Helper()
	idx := rowIndexForAttr(m.rows, attr)
	if idx < 0 {
		t.Fatalf("no row for attribute %q in %v", attr, m.rows)
	}
	m.cursor = idx
}

func mustGet(t *testing.T, m model, targetID, attr string) any {
	t.Helper()
	v, ok := m.store.Get(targetID, attr)
	if !ok {
		t.Fatalf("store.Get(%q, %q): missing", targetID, attr)
	}
	return v
}

// ---------------------------------------------------------------------------
// Selection-driven rows
// ---------------------------------------------------------------------------

func TestRowsFollowViewerKind(t *testing.T) {
	m := newTestModel(t)

	// Seeded selection: image viewer with two image layers.
	if rowIndexForAttr(m.rows, session.AttrImageColormap) < 0 {
		t.Fatal("image viewer selection should expose the colormap row")
	}
	if rowIndexForAttr(m.rows, session.AttrLineColor) >= 0 {
		t.Fatal("image viewer selection should not expose line rows")
	}

	m.sel.SetViewer("viewer-spectrum")
	m.rebuildRows()

	if rowIndexForAttr(m.rows, session.AttrLineColor) < 0 {
		t.Fatal("spectrum viewer selection should expose the line color row")
	}
	if rowIndexForAttr(m.rows, session.AttrImageColormap) >= 0 {
		t.Fatal("spectrum viewer selection should not expose image rows")
	}
}

// ---------------------------------------------------------------------------
// Fan-out writes and mixed state
// ---------------------------------------------------------------------------

func TestToggleFansOutAcrossSelection(t *testing.T) {
	m := newTestModel(t)
	cursorToAttr(t, &m, session.AttrImageVisible)

	m.toggleCurrentRow()

	for _, id := range []string{"layer-m51-sci", "layer-m51-wht"} {
		if v := mustGet(t, m, id, session.AttrImageVisible); v != false {
			t.Fatalf("%s image_visible = %v, want false", id, v)
		}
	}
}

func TestMixedAttributeUnmix(t *testing.T) {
	m := newTestModel(t)

	// Seeded: sci layer uses Viridis, wht layer keeps the Gray default.
	view := m.sel.Attr(session.AttrImageColormap)
	if view.State != attrsync.StateMixed {
		t.Fatalf("colormap state = %v, want mixed", view.State)
	}
	if len(view.Values) != 2 {
		t.Fatalf("distinct values = %v, want 2", view.Values)
	}

	cursorToAttr(t, &m, session.AttrImageColormap)
	m.unmixCurrentRow()

	// First selected layer's value wins.
	for _, id := range []string{"layer-m51-sci", "layer-m51-wht"} {
		if v := mustGet(t, m, id, session.AttrImageColormap); v != "Viridis" {
			t.Fatalf("%s colormap = %v, want Viridis", id, v)
		}
	}
	if got := m.sel.Attr(session.AttrImageColormap).State; got != attrsync.StateUniform {
		t.Fatalf("state after unmix = %v, want uniform", got)
	}
}

func TestUnmixIgnoresUniformAttribute(t *testing.T) {
	m := newTestModel(t)
	cursorToAttr(t, &m, session.AttrImageVisible)
	m.unmixCurrentRow()
	if v := mustGet(t, m, "layer-m51-sci", session.AttrImageVisible); v != true {
		t.Fatalf("image_visible = %v, want untouched true", v)
	}
}

// ---------------------------------------------------------------------------
// Throttled slider adjustment
// ---------------------------------------------------------------------------

func TestSliderAdjustCoalescesThroughThrottle(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetLayers([]string{"layer-m51-sci"})
	m.rebuildRows()
	cursorToAttr(t, &m, session.AttrStretchVmin)

	// Leading edge fires immediately.
	m.adjustCurrentRow(-1)
	if v := mustGet(t, m, "layer-m51-sci", session.AttrStretchVmin); v != -1.0 {
		t.Fatalf("vmin after first nudge = %v, want -1", v)
	}

	// Rapid follow-ups queue; the display tracks the pending value while the
	// store still holds the last emitted one.
	m.adjustCurrentRow(-1)
	m.adjustCurrentRow(-1)
	if pending, ok := m.throttle.Pending(session.AttrStretchVmin); !ok || pending != -3.0 {
		t.Fatalf("pending = %v (%v), want -3", pending, ok)
	}
	if v := mustGet(t, m, "layer-m51-sci", session.AttrStretchVmin); v != -1.0 {
		t.Fatalf("vmin mid-gesture = %v, want -1", v)
	}

	// Flush delivers only the most recent value.
	m.throttle.Flush()
	if v := mustGet(t, m, "layer-m51-sci", session.AttrStretchVmin); v != -3.0 {
		t.Fatalf("vmin after flush = %v, want -3", v)
	}
}

func TestSliderAdjustClampsAtBounds(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetLayers([]string{"layer-m51-sci"})
	m.rebuildRows()
	cursorToAttr(t, &m, session.AttrImageOpacity)

	m.adjustCurrentRow(1)
	m.throttle.Flush()
	if v := mustGet(t, m, "layer-m51-sci", session.AttrImageOpacity); v != 1.0 {
		t.Fatalf("opacity above max = %v, want clamped 1.0", v)
	}
}

// ---------------------------------------------------------------------------
// Contour levels editing against the live store
// ---------------------------------------------------------------------------

func TestLevelsCommitAppliesParsedList(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetLayers([]string{"layer-m51-sci"})
	m.rebuildRows()
	cursorToAttr(t, &m, session.AttrContourLevels)

	next, _ := m.activateCurrentRow()
	m = next.(model)
	if !m.levels.editing {
		t.Fatal("enter on levels row should start editing")
	}

	m.levels.field.set("1, abc, 3")
	next, _ = m.updateLevelsInput("enter")
	m = next.(model)

	got := mustGet(t, m, "layer-m51-sci", session.AttrContourLevels)
	if !reflect.DeepEqual(got, []float64{1, 3}) {
		t.Fatalf("levels after commit = %v, want [1 3]", got)
	}
	if m.levels.editing {
		t.Fatal("field should blur on enter")
	}
	if m.levels.field.Value != "1, 3" {
		t.Fatalf("display after commit = %q, want %q", m.levels.field.Value, "1, 3")
	}
}

func TestLevelsPublishWhileTyping(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetLayers([]string{"layer-m51-sci"})
	m.rebuildRows()
	cursorToAttr(t, &m, session.AttrContourLevels)

	next, _ := m.activateCurrentRow()
	m = next.(model)
	m.levels.field.set("")

	// The first buffer change publishes immediately on the throttle's leading
	// edge; the rest coalesce behind it.
	next, _ = m.updateLevelsInput("4")
	m = next.(model)
	got := mustGet(t, m, "layer-m51-sci", session.AttrContourLevels)
	if !reflect.DeepEqual(got, []float64{4}) {
		t.Fatalf("levels after first keystroke = %v, want [4]", got)
	}

	for _, key := range []string{",", "8"} {
		next, _ = m.updateLevelsInput(key)
		m = next.(model)
	}
	m.throttle.Flush()

	got = mustGet(t, m, "layer-m51-sci", session.AttrContourLevels)
	if !reflect.DeepEqual(got, []float64{4, 8}) {
		t.Fatalf("levels while typing = %v, want [4 8]", got)
	}
	if !m.levels.editing {
		t.Fatal("field should stay focused while typing")
	}
}

func TestExternalLevelsChangeDeferredWhileEditing(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetLayers([]string{"layer-m51-sci"})
	m.rebuildRows()
	cursorToAttr(t, &m, session.AttrContourLevels)

	next, _ := m.activateCurrentRow()
	m = next.(model)
	typed := m.levels.field.Value

	if err := m.store.Set("layer-m51-sci", session.AttrContourLevels, []float64{7}); err != nil {
		t.Fatalf("external set: %v", err)
	}
	next, _ = m.Update(storeChangedMsg{change: session.Change{
		TargetID: "layer-m51-sci", Attr: session.AttrContourLevels, Value: []float64{7},
	}})
	m = next.(model)

	if m.levels.field.Value != typed {
		t.Fatalf("text changed under the user: %q -> %q", typed, m.levels.field.Value)
	}

	// After blur the display re-derives from what the user committed.
	next, _ = m.updateLevelsInput("esc")
	m = next.(model)
	if m.levels.editing {
		t.Fatal("esc should blur the field")
	}
}

// ---------------------------------------------------------------------------
// Pickers wired through the update loop
// ---------------------------------------------------------------------------

func TestViewerPickerSwitchesSelection(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 0 // viewer row

	next, _ := m.activateCurrentRow()
	m = next.(model)
	if m.picker == nil || m.pickerKind != pickerViewer {
		t.Fatal("enter on viewer row should open the viewer picker")
	}

	m.picker.CursorTo("viewer-spectrum")
	next, _ = m.updatePicker("enter")
	m = next.(model)

	if m.picker != nil {
		t.Fatal("picker should close after selection")
	}
	if got := m.sel.ViewerID(); got != "viewer-spectrum" {
		t.Fatalf("viewer = %q, want viewer-spectrum", got)
	}
	if len(m.sel.LayerIDs()) != 3 {
		t.Fatalf("layers = %v, want all three spectrum layers", m.sel.LayerIDs())
	}
}

func TestLayerPickerRejectsEmptySelection(t *testing.T) {
	m := newTestModel(t)
	m.openLayerPicker()
	for _, id := range m.sel.LayerIDs() {
		m.picker.CursorTo(id)
		m.picker.HandleKey("space") // deselect everything
	}

	next, _ := m.updatePicker("enter")
	m = next.(model)
	if m.picker == nil {
		t.Fatal("picker should stay open when nothing is selected")
	}
	if len(m.sel.LayerIDs()) != 2 {
		t.Fatalf("selection changed to %v, want untouched", m.sel.LayerIDs())
	}
}

func TestColorPickerCustomHex(t *testing.T) {
	m := newTestModel(t)
	m.sel.SetViewer("viewer-spectrum")
	m.rebuildRows()
	m.openColorPicker(session.AttrLineColor)

	for _, ch := range "#AB12CD" {
		m.picker.HandleKey(string(ch))
	}
	next, _ := m.updatePicker("enter")
	m = next.(model)
	m.throttle.Flush()

	if m.picker != nil {
		t.Fatal("picker should close after a valid hex")
	}
	// Colors normalize to lowercase on write.
	if v := mustGet(t, m, "layer-m51-nuc", session.AttrLineColor); v != "#ab12cd" {
		t.Fatalf("line color = %v, want #ab12cd", v)
	}
}

// ---------------------------------------------------------------------------
// Dispatch and rendering
// ---------------------------------------------------------------------------

func TestOverlayPrecedencePickerBeatsLevels(t *testing.T) {
	m := newTestModel(t)
	m.levels.editing = true
	if got := m.activeOverlayScope(); got != scopeLevelsInput {
		t.Fatalf("scope = %q, want %q", got, scopeLevelsInput)
	}
	m.openViewerPicker()
	if got := m.activeOverlayScope(); got != scopeViewerPicker {
		t.Fatalf("scope with picker open = %q, want %q", got, scopeViewerPicker)
	}
}

func TestSwatchToggleSavesPreferences(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("PLOTOPTS_CONFIG", cfgPath)

	m := newTestModel(t)
	if !m.cfg.UI.ShowSwatches {
		t.Fatal("swatches should start enabled")
	}

	next, cmd := m.updateOptions("w")
	m = next.(model)
	if m.cfg.UI.ShowSwatches {
		t.Fatal("w should turn swatches off")
	}
	if cmd == nil {
		t.Fatal("toggle should persist preferences")
	}
	if msg, ok := cmd().(configSavedMsg); !ok || msg.err != nil {
		t.Fatalf("save config: %v", msg)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if saved.UI.ShowSwatches {
		t.Fatal("saved config should carry swatches off")
	}
}

func TestViewShowsMixedMarker(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Plot Options") {
		t.Fatal("view missing options section title")
	}
	if !strings.Contains(out, "mixed") {
		t.Fatal("view should flag the mixed colormap across the two image layers")
	}
}
