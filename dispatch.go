package main

// ---------------------------------------------------------------------------
// Shared dispatch table: single source of truth for overlay priority
// ---------------------------------------------------------------------------
//
// Two consumers read this table:
//   - handleKey (model.go)      — finds the active handler for a key
//   - footerBindings (layout.go) — finds the active scope for footer hints
//
// Adding a new overlay: add one entry in the correct priority position and
// both consumers stay in sync.

import tea "github.com/charmbracelet/bubbletea"

// overlayEntry defines one level in the overlay precedence chain.
// Guard returns true when this overlay is active.
// Scope is the keybinding scope for this overlay.
// Handler dispatches a normalized key name to the overlay's update function.
type overlayEntry struct {
	name    string
	guard   func(m model) bool
	scope   func(m model) string
	handler func(m model, keyName string) (tea.Model, tea.Cmd)
}

// overlayPrecedence returns the authoritative overlay priority table, ordered
// highest to lowest. The first matching guard wins.
func overlayPrecedence() []overlayEntry {
	return []overlayEntry{
		{
			name:  "picker",
			guard: func(m model) bool { return m.picker != nil },
			scope: func(m model) string {
				switch m.pickerKind {
				case pickerViewer:
					return scopeViewerPicker
				case pickerLayers:
					return scopeLayerPicker
				case pickerColor:
					return scopeColorPicker
				}
				return scopeChoicePicker
			},
			handler: func(m model, keyName string) (tea.Model, tea.Cmd) { return m.updatePicker(keyName) },
		},
		{
			name:    "presetName",
			guard:   func(m model) bool { return m.presetNaming },
			scope:   func(m model) string { return scopePresetName },
			handler: func(m model, keyName string) (tea.Model, tea.Cmd) { return m.updatePresetName(keyName) },
		},
		{
			name:    "presetConfirm",
			guard:   func(m model) bool { return m.confirmDeleteID != "" },
			scope:   func(m model) string { return scopePresetConfirm },
			handler: func(m model, keyName string) (tea.Model, tea.Cmd) { return m.updatePresetConfirm(keyName) },
		},
		{
			name:    "levelsInput",
			guard:   func(m model) bool { return m.levels.editing },
			scope:   func(m model) string { return scopeLevelsInput },
			handler: func(m model, keyName string) (tea.Model, tea.Cmd) { return m.updateLevelsInput(keyName) },
		},
	}
}

// dispatchOverlayKey finds the first matching overlay and dispatches the key.
// Returns (model, cmd, true) if an overlay handled it, or (model, nil, false)
// if no overlay matched and the caller should continue with tab-level dispatch.
func (m model) dispatchOverlayKey(keyName string) (tea.Model, tea.Cmd, bool) {
	for _, entry := range overlayPrecedence() {
		if entry.guard(m) {
			result, cmd := entry.handler(m, keyName)
			return result, cmd, true
		}
	}
	return m, nil, false
}

// activeOverlayScope returns the scope of the highest-priority active overlay,
// or "" if no overlay is active.
func (m model) activeOverlayScope() string {
	for _, entry := range overlayPrecedence() {
		if entry.guard(m) {
			return entry.scope(m)
		}
	}
	return ""
}

// tabScope resolves the active scope for tab-level dispatch (no overlay
// active). Feeds the footer hints.
func (m model) tabScope() string {
	switch m.activeTab {
	case tabPresets:
		return scopePresets
	default:
		return scopeOptions
	}
}
