package main

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/database"
	"github.com/astoria-viz/plotopts/internal/preset"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Presets tab: key handling
// ---------------------------------------------------------------------------

func (m model) updatePresets(keyName string) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopePresets, actionNavigate, keyName):
		if delta := navDeltaFromKeyName(keyName); delta != 0 && len(m.presets) > 0 {
			m.presetCursor += delta
			if m.presetCursor < 0 {
				m.presetCursor = 0
			}
			if m.presetCursor >= len(m.presets) {
				m.presetCursor = len(m.presets) - 1
			}
		}
		return m, nil

	case m.isAction(scopePresets, actionApply, keyName):
		if p, ok := m.currentPreset(); ok {
			m.applyPreset(p)
		}
		return m, nil

	case m.isAction(scopePresets, actionAdd, keyName):
		m.presetNaming = true
		m.presetName.set("")
		return m, nil

	case m.isAction(scopePresets, actionDelete, keyName):
		if p, ok := m.currentPreset(); ok {
			m.confirmDeleteID = p.ID
			m.confirmDeleteName = p.Name
		}
		return m, nil

	case m.isAction(scopePresets, actionExport, keyName):
		return m, m.exportPresetsCmd()

	case m.isAction(scopePresets, actionImport, keyName):
		return m, m.importPresetsCmd()
	}
	return m, nil
}

func (m model) currentPreset() (database.Preset, bool) {
	if m.presetCursor < 0 || m.presetCursor >= len(m.presets) {
		return database.Preset{}, false
	}
	return m.presets[m.presetCursor], true
}

// applyPreset fans each stored value out over the current selection. Attributes
// the selection doesn't carry are skipped rather than reported, so an image
// preset applies cleanly to a profile viewer and vice versa.
func (m *model) applyPreset(p database.Preset) {
	applied := 0
	for _, def := range session.Defs() {
		v, ok := p.Values[def.Name]
		if !ok {
			continue
		}
		if err := m.sel.Set(def.Name, v); err != nil {
			continue
		}
		applied++
	}
	m.refreshLevels()
	if applied == 0 {
		m.setStatus("preset " + p.Name + ": nothing applies to this selection")
		return
	}
	m.setStatus("applied preset " + p.Name)
}

// snapshotValues collects the selection's current uniform values. Mixed
// attributes are left out so a preset never bakes in an ambiguous state.
func (m model) snapshotValues() map[string]any {
	out := make(map[string]any)
	for _, def := range session.Defs() {
		view := m.sel.Attr(def.Name)
		if !view.Relevant || view.State != attrsync.StateUniform {
			continue
		}
		out[def.Name] = view.Value
	}
	return out
}

// ---------------------------------------------------------------------------
// Preset name entry and delete confirmation
// ---------------------------------------------------------------------------

func (m model) updatePresetName(keyName string) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopePresetName, actionConfirm, keyName):
		name := strings.TrimSpace(m.presetName.Value)
		if name == "" {
			m.setError("preset name is required")
			return m, nil
		}
		m.presetNaming = false
		return m, m.savePresetCmd(name, m.snapshotValues())

	case m.isAction(scopePresetName, actionCancel, keyName):
		m.presetNaming = false
		return m, nil
	}
	m.presetName.handleKey(keyName)
	return m, nil
}

func (m model) updatePresetConfirm(keyName string) (tea.Model, tea.Cmd) {
	switch {
	case m.isAction(scopePresetConfirm, actionConfirm, keyName):
		id, name := m.confirmDeleteID, m.confirmDeleteName
		m.confirmDeleteID = ""
		m.confirmDeleteName = ""
		return m, m.deletePresetCmd(id, name)

	case m.isAction(scopePresetConfirm, actionCancel, keyName):
		m.confirmDeleteID = ""
		m.confirmDeleteName = ""
		return m, nil
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Async preset commands
// ---------------------------------------------------------------------------

func (m model) loadPresetsCmd() tea.Cmd {
	store := m.presetStore
	return func() tea.Msg {
		presets, err := store.List()
		return presetsLoadedMsg{presets: presets, err: err}
	}
}

func (m model) savePresetCmd(name string, values map[string]any) tea.Cmd {
	store := m.presetStore
	return func() tea.Msg {
		p, err := store.Save(name, values)
		return presetSavedMsg{preset: p, err: err}
	}
}

func (m model) deletePresetCmd(id, name string) tea.Cmd {
	store := m.presetStore
	return func() tea.Msg {
		return presetDeletedMsg{name: name, err: store.Delete(id)}
	}
}

// presetFilePath is where export writes and import reads, next to the preset
// database.
func (m model) presetFilePath() string {
	return filepath.Join(filepath.Dir(m.cfg.Database.Path), "presets.toml")
}

func (m model) exportPresetsCmd() tea.Cmd {
	store := m.presetStore
	path := m.presetFilePath()
	return func() tea.Msg {
		presets, err := store.List()
		if err != nil {
			return presetsExportedMsg{err: err}
		}
		if err := preset.Export(path, presets); err != nil {
			return presetsExportedMsg{err: err}
		}
		return presetsExportedMsg{path: path, count: len(presets)}
	}
}

func (m model) importPresetsCmd() tea.Cmd {
	store := m.presetStore
	path := m.presetFilePath()
	return func() tea.Msg {
		imported, err := preset.Import(path)
		if err != nil {
			return presetsImportedMsg{err: err}
		}
		applied, skipped := 0, 0
		for _, imp := range imported {
			skipped += len(imp.Skipped)
			if _, err := store.Save(imp.Name, imp.Values); err != nil {
				return presetsImportedMsg{err: err}
			}
			applied++
		}
		return presetsImportedMsg{applied: applied, skipped: skipped}
	}
}
