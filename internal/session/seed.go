package session

// SeedDemo populates a store with a small two-viewer survey session so the
// panel is usable without an attached plotting engine: an image viewer with
// science and weight frames, and a spectrum viewer with three profiles.
func SeedDemo(s *Store) error {
	targets := []Target{
		{ID: "viewer-image", Name: "Image Viewer", Kind: TargetViewer},
		{ID: "layer-m51-sci", Name: "m51[SCI,1]", Kind: TargetImageLayer, ViewerID: "viewer-image"},
		{ID: "layer-m51-wht", Name: "m51[WHT,1]", Kind: TargetImageLayer, ViewerID: "viewer-image"},
		{ID: "viewer-spectrum", Name: "Spectrum Viewer", Kind: TargetViewer},
		{ID: "layer-m51-nuc", Name: "m51 nucleus", Kind: TargetProfileLayer, ViewerID: "viewer-spectrum"},
		{ID: "layer-m51-arm", Name: "m51 spiral arm", Kind: TargetProfileLayer, ViewerID: "viewer-spectrum"},
		{ID: "layer-sky-bg", Name: "sky background", Kind: TargetProfileLayer, ViewerID: "viewer-spectrum"},
	}
	for _, t := range targets {
		if err := s.AddTarget(t); err != nil {
			return err
		}
	}

	// Non-default styling so the panel shows mixed state out of the box when
	// several layers are selected.
	seedValues := []struct {
		target, attr string
		value        any
	}{
		{"layer-m51-sci", AttrImageColormap, "Viridis"},
		{"layer-m51-sci", AttrStretchFunction, "arcsinh"},
		{"layer-m51-sci", AttrStretchVmax, 4500.0},
		{"layer-m51-sci", AttrContourVisible, true},
		{"layer-m51-sci", AttrContourLevels, []float64{10, 50, 100, 250}},
		{"layer-m51-wht", AttrImageOpacity, 0.4},
		{"layer-m51-nuc", AttrLineColor, "#89b4fa"},
		{"layer-m51-arm", AttrLineColor, "#a6e3a1"},
		{"layer-m51-arm", AttrLineWidth, 2.0},
		{"layer-sky-bg", AttrLineColor, "#6c7086"},
		{"layer-sky-bg", AttrLineAsSteps, true},
	}
	for _, sv := range seedValues {
		if err := s.Set(sv.target, sv.attr, sv.value); err != nil {
			return err
		}
	}
	return nil
}
