package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps (scope, key) to actions and feeds the footer hints.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal        = "global"
	scopeOptions       = "options"
	scopeLevelsInput   = "levels_input"
	scopeViewerPicker  = "viewer_picker"
	scopeLayerPicker   = "layer_picker"
	scopeChoicePicker  = "choice_picker"
	scopeColorPicker   = "color_picker"
	scopePresets       = "presets"
	scopePresetName    = "preset_name"
	scopePresetConfirm = "preset_confirm"
)

const (
	actionQuit       Action = "quit"
	actionNextTab    Action = "next_tab"
	actionPrevTab    Action = "prev_tab"
	actionGoOptions  Action = "go_options"
	actionGoPresets  Action = "go_presets"
	actionNavigate   Action = "navigate"
	actionAdjust     Action = "adjust"
	actionSelect     Action = "select"
	actionToggle     Action = "toggle_select"
	actionUnmix      Action = "unmix"
	actionJumpTop    Action = "jump_top"
	actionJumpBottom Action = "jump_bottom"
	actionSavePreset Action = "save_preset"
	actionSwatches   Action = "swatches"
	actionApply      Action = "apply"
	actionAdd        Action = "add"
	actionDelete     Action = "delete"
	actionExport     Action = "export"
	actionImport     Action = "import"
	actionConfirm    Action = "confirm"
	actionCancel     Action = "cancel"
	actionClose      Action = "close"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup.
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionNextTab, []string{"tab"}, "next tab")
	reg(scopeGlobal, actionPrevTab, []string{"shift+tab"}, "prev tab")
	reg(scopeGlobal, actionGoOptions, []string{"1"}, "options")
	reg(scopeGlobal, actionGoPresets, []string{"2"}, "presets")

	// Options panel footer.
	reg(scopeOptions, actionNavigate, []string{"j/k", "j", "k", "up", "down", "ctrl+p", "ctrl+n"}, "navigate")
	reg(scopeOptions, actionAdjust, []string{"h/l", "h", "left", "l", "right"}, "adjust")
	reg(scopeOptions, actionToggle, []string{"space"}, "toggle")
	reg(scopeOptions, actionSelect, []string{"enter"}, "edit")
	reg(scopeOptions, actionUnmix, []string{"u"}, "unmix")
	reg(scopeOptions, actionSavePreset, []string{"s"}, "save preset")
	reg(scopeOptions, actionSwatches, []string{"w"}, "swatches")
	reg(scopeOptions, actionJumpTop, []string{"g"}, "top")
	reg(scopeOptions, actionJumpBottom, []string{"G"}, "bottom")
	reg(scopeOptions, actionQuit, []string{"q", "ctrl+c"}, "quit")

	// Contour levels text entry.
	reg(scopeLevelsInput, actionConfirm, []string{"enter"}, "done")
	reg(scopeLevelsInput, actionCancel, []string{"esc"}, "done")

	// Picker overlays.
	reg(scopeViewerPicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeViewerPicker, actionSelect, []string{"enter"}, "select")
	reg(scopeViewerPicker, actionClose, []string{"esc"}, "cancel")
	reg(scopeLayerPicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeLayerPicker, actionToggle, []string{"space"}, "toggle")
	reg(scopeLayerPicker, actionSelect, []string{"enter"}, "apply")
	reg(scopeLayerPicker, actionClose, []string{"esc"}, "cancel")
	reg(scopeChoicePicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeChoicePicker, actionSelect, []string{"enter"}, "apply")
	reg(scopeChoicePicker, actionClose, []string{"esc"}, "cancel")
	reg(scopeColorPicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeColorPicker, actionSelect, []string{"enter"}, "apply")
	reg(scopeColorPicker, actionClose, []string{"esc"}, "cancel")

	// Presets tab footer.
	reg(scopePresets, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopePresets, actionApply, []string{"enter"}, "apply")
	reg(scopePresets, actionAdd, []string{"n"}, "new")
	reg(scopePresets, actionDelete, []string{"d"}, "delete")
	reg(scopePresets, actionExport, []string{"e"}, "export")
	reg(scopePresets, actionImport, []string{"i"}, "import")
	reg(scopePresets, actionNextTab, []string{"tab"}, "next tab")
	reg(scopePresets, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePresetName, actionConfirm, []string{"enter"}, "save")
	reg(scopePresetName, actionCancel, []string{"esc"}, "cancel")
	reg(scopePresetConfirm, actionConfirm, []string{"y"}, "delete")
	reg(scopePresetConfirm, actionCancel, []string{"esc", "n"}, "keep")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.bindingsByScope[scope]; !ok {
			r.bindingsByScope[scope] = nil
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup finds the binding for a key in a scope, falling back to the global
// scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		helpKey := b.Keys[0]
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// navDeltaFromKeyName translates a navigation key to a direction.
func navDeltaFromKeyName(keyName string) int {
	switch keyName {
	case "j", "down", "ctrl+n", "l", "right":
		return 1
	case "k", "up", "ctrl+p", "h", "left":
		return -1
	}
	return 0
}

// isAction reports whether msg triggers the given action in scope.
func (m model) isAction(scope string, action Action, keyName string) bool {
	b := m.keys.Lookup(keyName, scope)
	return b != nil && b.Action == action
}
