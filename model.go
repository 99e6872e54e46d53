package main

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/config"
	"github.com/astoria-viz/plotopts/internal/database"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

const (
	tabOptions = iota
	tabPresets
	tabCount
)

var tabNames = []string{"Options", "Presets"}

type pickerKind int

const (
	pickerNone pickerKind = iota
	pickerViewer
	pickerLayers
	pickerChoice
	pickerColor
)

type model struct {
	cfg         config.Config
	store       *session.Store
	sel         *attrsync.Selection
	throttle    *attrsync.Throttle
	presetStore *database.PresetStore

	keys      *KeyRegistry
	activeTab int
	width     int
	height    int
	status    string
	statusErr bool

	// Options tab.
	rows   []controlRow
	cursor int
	topRow int
	levels levelsField

	// Overlay picker (viewer, layers, choice, color).
	picker     *pickerState
	pickerKind pickerKind
	pickerAttr string

	// Presets tab.
	presets           []database.Preset
	presetCursor      int
	presetNaming      bool
	presetName        textField
	confirmDeleteID   string
	confirmDeleteName string

	changes     <-chan session.Change
	unsubscribe func()
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

type storeChangedMsg struct {
	change session.Change
}

type presetsLoadedMsg struct {
	presets []database.Preset
	err     error
}

type presetSavedMsg struct {
	preset database.Preset
	err    error
}

type presetDeletedMsg struct {
	name string
	err  error
}

type presetsExportedMsg struct {
	path  string
	count int
	err   error
}

type presetsImportedMsg struct {
	applied int
	skipped int
	err     error
}

type configSavedMsg struct {
	err error
}

// ---------------------------------------------------------------------------
// Construction and lifecycle
// ---------------------------------------------------------------------------

func newModel(cfg config.Config, store *session.Store, presetStore *database.PresetStore) model {
	sel := attrsync.NewSelection(store)
	throttle := attrsync.NewThrottle(
		time.Duration(cfg.Plot.ThrottleMs)*time.Millisecond,
		func(name string, value any) {
			// Errors here mean the selection changed under a trailing emit;
			// the write is simply stale and safe to drop.
			_ = sel.Set(name, value)
		},
	)
	changes, unsubscribe := store.Subscribe()

	m := model{
		cfg:         cfg,
		store:       store,
		sel:         sel,
		throttle:    throttle,
		presetStore: presetStore,
		keys:        NewKeyRegistry(),
		activeTab:   tabOptions,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
	m.rebuildRows()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.loadPresetsCmd())
}

// waitForChange bridges the store's subscription channel into the update loop.
// Re-issued after every delivery so the loop keeps draining.
func (m model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{change: change}
	}
}

// rebuildRows recomputes the visible control rows for the current selection
// and clamps the cursor. Keeps the cursor on the same attribute when it
// survives the rebuild.
func (m *model) rebuildRows() {
	var keepAttr string
	var keepKind controlKind
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		keepAttr = m.rows[m.cursor].attr
		keepKind = m.rows[m.cursor].kind
	}

	m.rows = buildControlRows(m.sel)

	if idx := rowIndexForAttr(m.rows, keepAttr); idx >= 0 {
		m.cursor = idx
	} else if keepKind == controlViewer || keepKind == controlLayers {
		for i, row := range m.rows {
			if row.kind == keepKind {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.refreshLevels()
}

// refreshLevels re-derives the contour text field from the store. No-op while
// the user is typing in it.
func (m *model) refreshLevels() {
	view := m.sel.Attr(session.AttrContourLevels)
	if !view.Relevant {
		return
	}
	levels, _ := view.Value.([]float64)
	m.levels.syncFromStore(levels)
}

// attrValue is the value to render for an attribute: the throttle's pending
// value when one is queued, otherwise the synchronized store view's value.
func (m model) attrValue(view attrsync.AttrView) any {
	if v, ok := m.throttle.Pending(view.Def.Name); ok {
		return v
	}
	return view.Value
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case storeChangedMsg:
		if msg.change.Attr == session.AttrContourLevels {
			m.refreshLevels()
		}
		return m, m.waitForChange()

	case presetsLoadedMsg:
		if msg.err != nil {
			m.setError("presets: " + msg.err.Error())
			return m, nil
		}
		m.presets = msg.presets
		if m.presetCursor >= len(m.presets) {
			m.presetCursor = len(m.presets) - 1
		}
		if m.presetCursor < 0 {
			m.presetCursor = 0
		}
		return m, nil

	case presetSavedMsg:
		if msg.err != nil {
			m.setError("save preset: " + msg.err.Error())
			return m, nil
		}
		m.setStatus("saved preset " + msg.preset.Name)
		return m, m.loadPresetsCmd()

	case presetDeletedMsg:
		if msg.err != nil {
			m.setError("delete preset: " + msg.err.Error())
			return m, nil
		}
		m.setStatus("deleted preset " + msg.name)
		return m, m.loadPresetsCmd()

	case presetsExportedMsg:
		if msg.err != nil {
			m.setError("export: " + msg.err.Error())
			return m, nil
		}
		m.setStatus(pluralPresets(msg.count) + " exported to " + msg.path)
		return m, nil

	case presetsImportedMsg:
		if msg.err != nil {
			m.setError("import: " + msg.err.Error())
			return m, nil
		}
		s := pluralPresets(msg.applied) + " imported"
		if msg.skipped > 0 {
			s += " (" + strconv.Itoa(msg.skipped) + " attrs skipped)"
		}
		m.setStatus(s)
		return m, m.loadPresetsCmd()

	case configSavedMsg:
		if msg.err != nil {
			m.setError("save config: " + msg.err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := normalizeKeyName(msg.String())

	// Overlays swallow keys before tab-level handling.
	if next, cmd, handled := m.dispatchOverlayKey(keyName); handled {
		return next, cmd
	}

	// Global chrome.
	switch {
	case m.isAction(scopeGlobal, actionQuit, keyName):
		return m.quit()
	case m.isAction(scopeGlobal, actionNextTab, keyName):
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case m.isAction(scopeGlobal, actionPrevTab, keyName):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil
	case m.isAction(scopeGlobal, actionGoOptions, keyName):
		m.activeTab = tabOptions
		return m, nil
	case m.isAction(scopeGlobal, actionGoPresets, keyName):
		m.activeTab = tabPresets
		return m, nil
	}

	switch m.activeTab {
	case tabOptions:
		return m.updateOptions(keyName)
	case tabPresets:
		return m.updatePresets(keyName)
	}
	return m, nil
}

// saveConfigCmd persists the current preferences to the config file.
func (m model) saveConfigCmd() tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: config.Save(cfg)}
	}
}

// quit flushes any throttled writes so the last gesture lands, then tears
// down the subscription.
func (m model) quit() (tea.Model, tea.Cmd) {
	m.throttle.Flush()
	m.throttle.Stop()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func pluralPresets(n int) string {
	if n == 1 {
		return "1 preset"
	}
	return strconv.Itoa(n) + " presets"
}
