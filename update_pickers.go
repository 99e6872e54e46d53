package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Picker overlays: viewer select, layer multi-select, choice, color
// ---------------------------------------------------------------------------

func (m *model) openViewerPicker() {
	items := make([]pickerItem, 0, 4)
	for _, v := range m.store.Viewers() {
		items = append(items, pickerItem{ID: v.ID, Label: v.Name, Meta: layerCountMeta(len(m.store.LayersOf(v.ID)))})
	}
	p := newPicker("Select Viewer", items, false, "")
	p.CursorTo(m.sel.ViewerID())
	m.picker = p
	m.pickerKind = pickerViewer
	m.pickerAttr = ""
}

func (m *model) openLayerPicker() {
	viewerID := m.sel.ViewerID()
	items := make([]pickerItem, 0, 8)
	for _, l := range m.store.LayersOf(viewerID) {
		it := pickerItem{ID: l.ID, Label: l.Name, Meta: l.Kind.String()}
		if l.Kind == session.TargetProfileLayer {
			if c, ok := m.store.Get(l.ID, session.AttrLineColor); ok {
				it.Color, _ = c.(string)
			}
		}
		items = append(items, it)
	}
	p := newPicker("Select Layers", items, true, "")
	p.Preselect(m.sel.LayerIDs())
	m.picker = p
	m.pickerKind = pickerLayers
	m.pickerAttr = ""
}

func (m *model) openChoicePicker(attr string) {
	view := m.sel.Attr(attr)
	if len(view.Def.Choices) == 0 {
		return
	}
	items := make([]pickerItem, 0, len(view.Def.Choices))
	for _, c := range view.Def.Choices {
		items = append(items, pickerItem{ID: c, Label: c})
	}
	p := newPicker(view.Def.Label, items, false, "")
	if cur, ok := view.Value.(string); ok {
		p.CursorTo(cur)
	}
	m.picker = p
	m.pickerKind = pickerChoice
	m.pickerAttr = attr
}

func (m *model) openColorPicker(attr string) {
	view := m.sel.Attr(attr)
	palette := lineColorPalette()
	items := make([]pickerItem, 0, len(palette))
	for _, c := range palette {
		items = append(items, pickerItem{ID: c.hex, Label: c.name, Color: c.hex})
	}
	p := newPicker(view.Def.Label, items, false, "use hex")
	if cur, ok := m.attrValue(view).(string); ok {
		p.CursorTo(cur)
	}
	m.picker = p
	m.pickerKind = pickerColor
	m.pickerAttr = attr
}

func (m *model) closePicker() {
	m.picker = nil
	m.pickerKind = pickerNone
	m.pickerAttr = ""
}

// updatePicker routes a key into the open picker and applies its result.
func (m model) updatePicker(keyName string) (tea.Model, tea.Cmd) {
	if m.picker == nil {
		return m, nil
	}
	res := m.picker.HandleKey(keyName)

	switch res.Action {
	case pickerActionCancelled:
		m.closePicker()
		return m, nil

	case pickerActionSelected:
		switch m.pickerKind {
		case pickerViewer:
			m.sel.SetViewer(res.ItemID)
			m.rebuildRows()
		case pickerChoice:
			if err := m.sel.Set(m.pickerAttr, res.ItemID); err != nil {
				m.setError(err.Error())
			}
		case pickerColor:
			m.throttle.Set(m.pickerAttr, res.ItemID)
		}
		m.closePicker()
		return m, nil

	case pickerActionSubmitted:
		if m.pickerKind == pickerLayers {
			if len(res.SelectedIDs) == 0 {
				m.setError("keep at least one layer selected")
				return m, nil
			}
			m.sel.SetLayers(res.SelectedIDs)
			m.rebuildRows()
		}
		m.closePicker()
		return m, nil

	case pickerActionCustom:
		if m.pickerKind == pickerColor {
			hex := strings.TrimSpace(res.CustomQuery)
			if !strings.HasPrefix(hex, "#") {
				hex = "#" + hex
			}
			def, _ := session.DefFor(m.pickerAttr)
			if _, err := def.Normalize(hex); err != nil {
				m.setError(err.Error())
				return m, nil
			}
			m.throttle.Set(m.pickerAttr, hex)
			m.closePicker()
		}
		return m, nil
	}
	return m, nil
}

func layerCountMeta(n int) string {
	if n == 1 {
		return "1 layer"
	}
	return strconv.Itoa(n) + " layers"
}
