package main

import (
	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Control-row catalog
// ---------------------------------------------------------------------------
// The options panel is a flat cursor-navigable list of rows derived from the
// attribute registry and the current selection. Rows for attributes that
// aren't relevant to any selected target are omitted, so switching from an
// image viewer to a spectrum viewer swaps the Image/Contour sections for the
// Line section without special cases.

type controlKind int

const (
	controlViewer controlKind = iota
	controlLayers
	controlToggle
	controlSlider
	controlChoice
	controlColor
	controlLevels
)

type controlRow struct {
	kind    controlKind
	attr    string // empty for the viewer/layers rows
	label   string
	section string
}

// buildControlRows assembles the visible rows for the current selection.
func buildControlRows(sel *attrsync.Selection) []controlRow {
	rows := []controlRow{
		{kind: controlViewer, label: "Viewer", section: "Selection"},
		{kind: controlLayers, label: "Layers", section: "Selection"},
	}
	for _, def := range session.Defs() {
		view := sel.Attr(def.Name)
		if !view.Relevant {
			continue
		}
		row := controlRow{attr: def.Name, label: def.Label, section: def.Section}
		switch def.Kind {
		case session.AttrBool:
			row.kind = controlToggle
		case session.AttrFloat:
			row.kind = controlSlider
		case session.AttrChoice:
			row.kind = controlChoice
		case session.AttrColor:
			row.kind = controlColor
		case session.AttrLevels:
			row.kind = controlLevels
		}
		rows = append(rows, row)
	}
	return rows
}

// rowIndexForAttr locates the row bound to an attribute, or -1.
func rowIndexForAttr(rows []controlRow, attr string) int {
	if attr == "" {
		return -1
	}
	for i, row := range rows {
		if row.attr == attr {
			return i
		}
	}
	return -1
}
