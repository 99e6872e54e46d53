package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Options tab: key handling
// ---------------------------------------------------------------------------

func (m model) updateOptions(keyName string) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopeOptions, actionNavigate, keyName):
		m.moveCursor(navDeltaFromKeyName(keyName))
		return m, nil

	case m.isAction(scopeOptions, actionJumpTop, keyName):
		m.cursor = 0
		m.clampScroll()
		return m, nil

	case m.isAction(scopeOptions, actionJumpBottom, keyName):
		m.cursor = len(m.rows) - 1
		m.clampScroll()
		return m, nil

	case m.isAction(scopeOptions, actionAdjust, keyName):
		m.adjustCurrentRow(navDeltaFromKeyName(keyName))
		return m, nil

	case m.isAction(scopeOptions, actionToggle, keyName):
		m.toggleCurrentRow()
		return m, nil

	case m.isAction(scopeOptions, actionSelect, keyName):
		return m.activateCurrentRow()

	case m.isAction(scopeOptions, actionUnmix, keyName):
		m.unmixCurrentRow()
		return m, nil

	case m.isAction(scopeOptions, actionSavePreset, keyName):
		m.presetNaming = true
		m.presetName.set("")
		return m, nil

	case m.isAction(scopeOptions, actionSwatches, keyName):
		m.cfg.UI.ShowSwatches = !m.cfg.UI.ShowSwatches
		if m.cfg.UI.ShowSwatches {
			m.setStatus("colormap swatches on")
		} else {
			m.setStatus("colormap swatches off")
		}
		return m, m.saveConfigCmd()
	}
	return m, nil
}

func (m *model) moveCursor(delta int) {
	if delta == 0 || len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.clampScroll()
}

func (m model) currentRow() (controlRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return controlRow{}, false
	}
	return m.rows[m.cursor], true
}

// adjustCurrentRow nudges the row's value left or right. Sliders go through
// the throttle so held-down keys coalesce; choices cycle directly since each
// press is a discrete change.
func (m *model) adjustCurrentRow(delta int) {
	row, ok := m.currentRow()
	if !ok || delta == 0 {
		return
	}
	switch row.kind {
	case controlSlider:
		view := m.sel.Attr(row.attr)
		cur, _ := m.attrValue(view).(float64)
		step := view.Def.Step
		if step == 0 {
			step = 1
		}
		next := cur + float64(delta)*step
		if !view.Def.Unbounded {
			if next < view.Def.Min {
				next = view.Def.Min
			}
			if next > view.Def.Max {
				next = view.Def.Max
			}
		}
		m.throttle.Set(row.attr, next)
	case controlChoice:
		view := m.sel.Attr(row.attr)
		choices := view.Def.Choices
		if len(choices) == 0 {
			return
		}
		cur, _ := view.Value.(string)
		idx := 0
		for i, c := range choices {
			if c == cur {
				idx = i
				break
			}
		}
		idx = (idx + delta + len(choices)) % len(choices)
		if err := m.sel.Set(row.attr, choices[idx]); err != nil {
			m.setError(err.Error())
		}
	case controlToggle:
		m.toggleCurrentRow()
	}
}

// toggleCurrentRow flips a bool row. A mixed toggle collapses to the negation
// of the first selected target's value, which also unmixes it.
func (m *model) toggleCurrentRow() {
	row, ok := m.currentRow()
	if !ok || row.kind != controlToggle {
		return
	}
	view := m.sel.Attr(row.attr)
	cur, _ := view.Value.(bool)
	if err := m.sel.Set(row.attr, !cur); err != nil {
		m.setError(err.Error())
	}
}

// activateCurrentRow handles enter: pickers for viewer/layers/choice/color,
// edit mode for the levels field, a flip for toggles.
func (m model) activateCurrentRow() (tea.Model, tea.Cmd) {
	row, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	switch row.kind {
	case controlViewer:
		m.openViewerPicker()
	case controlLayers:
		m.openLayerPicker()
	case controlChoice:
		m.openChoicePicker(row.attr)
	case controlColor:
		m.openColorPicker(row.attr)
	case controlLevels:
		view := m.sel.Attr(row.attr)
		levels, _ := m.attrValue(view).([]float64)
		m.levels.beginEdit(levels)
	case controlToggle:
		m.toggleCurrentRow()
	}
	return m, nil
}

func (m *model) unmixCurrentRow() {
	row, ok := m.currentRow()
	if !ok || row.attr == "" {
		return
	}
	if m.sel.Attr(row.attr).State != attrsync.StateMixed {
		return
	}
	if err := m.sel.Unmix(row.attr); err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("unmixed " + row.label)
	m.refreshLevels()
}

// ---------------------------------------------------------------------------
// Contour levels text entry
// ---------------------------------------------------------------------------

// updateLevelsInput runs while the levels field is focused. Every keystroke
// that changes the buffer re-parses it best-effort and publishes the list
// across the selection through the throttle, so the plot tracks the field as
// the user types. Enter and esc both blur the field: the final text is
// applied directly and the display re-derived from what the store accepted.
func (m model) updateLevelsInput(keyName string) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopeLevelsInput, actionConfirm, keyName),
		m.isAction(scopeLevelsInput, actionCancel, keyName):
		parsed := parseLevels(m.levels.field.Value)
		if err := m.sel.Set(session.AttrContourLevels, parsed); err != nil {
			m.setError(err.Error())
		}
		view := m.sel.Attr(session.AttrContourLevels)
		levels, _ := view.Value.([]float64)
		m.levels.endEdit(levels)
		return m, nil
	}
	if m.levels.handleKey(keyName) {
		m.throttle.Set(session.AttrContourLevels, parseLevels(m.levels.field.Value))
	}
	return m, nil
}
