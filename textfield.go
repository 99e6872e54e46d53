package main

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Cursor-aware single-line ASCII text field
// ---------------------------------------------------------------------------
// Attribute names, hex colors, preset names, and contour level lists are all
// plain ASCII, so the field works on bytes and keeps cursor math trivial.

type textField struct {
	Value  string
	Cursor int
}

// handleKey processes a single key event. Returns true if the key was
// consumed (printable input, backspace, or cursor movement).
func (f *textField) handleKey(keyName string) bool {
	switch keyName {
	case "backspace":
		if f.Cursor > 0 && f.Cursor <= len(f.Value) {
			f.Value = f.Value[:f.Cursor-1] + f.Value[f.Cursor:]
			f.Cursor--
		}
		return true
	case "left":
		if f.Cursor > 0 {
			f.Cursor--
		}
		return true
	case "right":
		if f.Cursor < len(f.Value) {
			f.Cursor++
		}
		return true
	case "home", "ctrl+a":
		f.Cursor = 0
		return true
	case "end", "ctrl+e":
		f.Cursor = len(f.Value)
		return true
	case "space":
		return f.insert(" ")
	default:
		return f.insert(keyName)
	}
}

func (f *textField) insert(s string) bool {
	if !isPrintableASCIIKey(s) {
		return false
	}
	if f.Cursor < 0 {
		f.Cursor = 0
	}
	if f.Cursor > len(f.Value) {
		f.Cursor = len(f.Value)
	}
	f.Value = f.Value[:f.Cursor] + s + f.Value[f.Cursor:]
	f.Cursor += len(s)
	return true
}

// set replaces the value and places the cursor at the end.
func (f *textField) set(value string) {
	f.Value = value
	f.Cursor = len(value)
}

// render returns the text with a block cursor at the current position.
func (f *textField) render() string {
	cursorBlock := lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	if f.Cursor >= len(f.Value) {
		return f.Value + cursorBlock.Render(" ")
	}
	pos := f.Cursor
	if pos < 0 {
		pos = 0
	}
	return f.Value[:pos] + cursorBlock.Render(string(f.Value[pos])) + f.Value[pos+1:]
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
