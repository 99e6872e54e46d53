package session

import (
	"reflect"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	if err := SeedDemo(s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestAddTargetInitializesDefaults(t *testing.T) {
	s := NewStore()
	if err := s.AddTarget(Target{ID: "v", Name: "Viewer", Kind: TargetViewer}); err != nil {
		t.Fatalf("add viewer: %v", err)
	}
	if err := s.AddTarget(Target{ID: "l", Name: "Layer", Kind: TargetImageLayer, ViewerID: "v"}); err != nil {
		t.Fatalf("add layer: %v", err)
	}

	if v, ok := s.Get("v", AttrShowAxes); !ok || v != true {
		t.Fatalf("viewer show_axes = %v (%v), want default true", v, ok)
	}
	if v, ok := s.Get("l", AttrImageColormap); !ok || v != "Gray" {
		t.Fatalf("layer colormap = %v (%v), want default Gray", v, ok)
	}
	// Layer attributes never attach to viewers and vice versa.
	if _, ok := s.Get("v", AttrImageColormap); ok {
		t.Fatal("viewer carries a layer attribute")
	}
	if _, ok := s.Get("l", AttrShowAxes); ok {
		t.Fatal("layer carries a viewer attribute")
	}
}

func TestAddTargetValidation(t *testing.T) {
	s := NewStore()
	if err := s.AddTarget(Target{Kind: TargetViewer}); err == nil {
		t.Fatal("empty id accepted")
	}
	if err := s.AddTarget(Target{ID: "l", Kind: TargetImageLayer, ViewerID: "nope"}); err == nil {
		t.Fatal("layer with unknown viewer accepted")
	}
	if err := s.AddTarget(Target{ID: "v", Kind: TargetViewer}); err != nil {
		t.Fatalf("add viewer: %v", err)
	}
	if err := s.AddTarget(Target{ID: "v", Kind: TargetViewer}); err == nil {
		t.Fatal("duplicate id accepted")
	}
}

func TestViewersAndLayersOrder(t *testing.T) {
	s := newTestStore(t)

	viewers := s.Viewers()
	if len(viewers) != 2 || viewers[0].ID != "viewer-image" || viewers[1].ID != "viewer-spectrum" {
		t.Fatalf("viewers = %v, want registration order", viewers)
	}

	layers := s.LayersOf("viewer-spectrum")
	if len(layers) != 3 {
		t.Fatalf("spectrum layers = %d, want 3", len(layers))
	}
	if layers[0].ID != "layer-m51-nuc" {
		t.Fatalf("first spectrum layer = %q, want layer-m51-nuc", layers[0].ID)
	}
}

func TestSetValidatesAndNotifies(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	defer cancel()

	if err := s.Set("layer-m51-wht", AttrImageOpacity, 0.7); err != nil {
		t.Fatalf("set: %v", err)
	}
	ev := <-ch
	if ev.TargetID != "layer-m51-wht" || ev.Attr != AttrImageOpacity || ev.Value != 0.7 {
		t.Fatalf("change = %+v", ev)
	}

	if err := s.Set("layer-m51-wht", "nope", 1); err == nil {
		t.Fatal("unknown attribute accepted")
	}
	if err := s.Set("viewer-image", AttrImageOpacity, 0.7); err == nil {
		t.Fatal("layer attribute accepted on a viewer")
	}
	if err := s.Set("ghost", AttrImageOpacity, 0.7); err == nil {
		t.Fatal("unknown target accepted")
	}
}

func TestSetNoOpPublishesNothing(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	defer cancel()

	if err := s.Set("layer-m51-sci", AttrImageColormap, "Viridis"); err != nil {
		t.Fatalf("set: %v", err)
	}
	select {
	case ev := <-ch:
		t.Fatalf("no-op write published %+v", ev)
	default:
	}
}

func TestGetCopiesLevels(t *testing.T) {
	s := newTestStore(t)

	v, ok := s.Get("layer-m51-sci", AttrContourLevels)
	if !ok {
		t.Fatal("levels missing")
	}
	levels := v.([]float64)
	if !reflect.DeepEqual(levels, []float64{10, 50, 100, 250}) {
		t.Fatalf("seeded levels = %v", levels)
	}

	levels[0] = -1
	again, _ := s.Get("layer-m51-sci", AttrContourLevels)
	if again.([]float64)[0] != 10 {
		t.Fatal("Get returned an aliasing slice")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	cancel()

	if err := s.Set("layer-m51-wht", AttrImageOpacity, 0.9); err != nil {
		t.Fatalf("set: %v", err)
	}
	select {
	case ev := <-ch:
		t.Fatalf("received %+v after unsubscribe", ev)
	default:
	}
}
