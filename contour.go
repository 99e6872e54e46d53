package main

import (
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Contour levels field
// ---------------------------------------------------------------------------
// Adapts an ordered []float64 against a single editable text line. While the
// field is being edited, store-side changes must not clobber in-progress
// typing; on blur the text is re-derived from the current list.

type levelsField struct {
	field   textField
	editing bool
}

// beginEdit focuses the field, seeding the buffer from the current list.
func (lf *levelsField) beginEdit(levels []float64) {
	lf.editing = true
	lf.field.set(formatLevels(levels))
}

// endEdit blurs the field and re-synchronizes the text from the list.
func (lf *levelsField) endEdit(levels []float64) {
	lf.editing = false
	lf.field.set(formatLevels(levels))
}

// syncFromStore updates the display text from an external change. Ignored
// while the user is typing.
func (lf *levelsField) syncFromStore(levels []float64) {
	if lf.editing {
		return
	}
	lf.field.set(formatLevels(levels))
}

// handleKey feeds one key into the buffer and reports whether the buffer
// changed.
func (lf *levelsField) handleKey(keyName string) bool {
	before := lf.field.Value
	if !lf.field.handleKey(keyName) {
		return false
	}
	return lf.field.Value != before
}

// parseLevels converts a comma-separated string to an ordered level list.
// Tokens are trimmed; empty and non-numeric tokens are silently dropped.
// Order and duplicates are preserved, so a well-formed list round-trips
// through formatLevels unchanged.
func parseLevels(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// formatLevels renders a level list as a comma-and-space-joined string.
func formatLevels(levels []float64) string {
	parts := make([]string, len(levels))
	for i, v := range levels {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
