package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/astoria-viz/plotopts/internal/attrsync"
	"github.com/astoria-viz/plotopts/internal/session"
)

// ---------------------------------------------------------------------------
// Styles — Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	// Section titles
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	// Header bar (spans full width)
	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	// App name in header
	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	// Tab styles
	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorOverlay1).
				Background(colorMantle).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(colorOverlay0).
			Background(colorMantle)

	// Footer bar
	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	// Status bar (above footer)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSubtext1).
			Background(colorSurface0).
			Padding(0, 2)

	// Section containers
	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	// Modal overlay
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	// Help key styling
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	labelStyle      = lipgloss.NewStyle().Foreground(colorSubtext1)
	valueStyle      = lipgloss.NewStyle().Foreground(colorText)
	mixedStyle      = lipgloss.NewStyle().Foreground(colorMixed).Italic(true)
	dimStyle        = lipgloss.NewStyle().Foreground(colorOverlay1)
	sliderBarStyle  = lipgloss.NewStyle().Foreground(colorSurface2)
	sliderKnobStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func renderHeader(appName string, activeTab, width int) string {
	name := headerAppStyle.Render(appName)

	var tabs []string
	for i, tab := range tabNames {
		if i == activeTab {
			tabs = append(tabs, activeTabStyle.Render(tab))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab))
		}
	}
	tabBar := tabSepStyle.Render(" ") + strings.Join(tabs, tabSepStyle.Render("│"))

	line := name + "  " + tabBar
	if width <= 0 {
		return headerBarStyle.Render(line)
	}
	return headerBarStyle.Width(width).Render(line)
}

func (m model) renderFooter(bindings []key.Binding) string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)

	if m.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(m.width).Render(content)
}

func (m model) renderStatus() string {
	text := m.status
	if text == "" {
		text = m.selectionSummary()
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	style := statusBarStyle
	if m.statusErr {
		style = style.Foreground(colorError)
	}
	if m.width == 0 {
		return style.Render(flat)
	}
	return style.Width(m.width).Render(flat)
}

func (m model) selectionSummary() string {
	v, ok := m.sel.Viewer()
	if !ok {
		return "no viewer selected"
	}
	layers := m.sel.Layers()
	all := m.store.LayersOf(v.ID)
	if len(layers) == len(all) {
		return fmt.Sprintf("%s · all %d layers", v.Name, len(all))
	}
	return fmt.Sprintf("%s · %d of %d layers", v.Name, len(layers), len(all))
}

func (m model) renderSection(title, content string) string {
	contentWidth := m.contentWidth() - listBoxStyle.GetHorizontalFrameSize()
	if contentWidth < 20 {
		contentWidth = 20
	}
	header := padRight(titleStyle.Render(title), contentWidth)
	sepStyle := lipgloss.NewStyle().Foreground(colorSurface2)
	separator := sepStyle.Render(strings.Repeat("─", contentWidth))
	sectionContent := header + "\n" + separator + "\n" + content
	section := listBoxStyle.Width(m.contentWidth()).Render(sectionContent)
	if m.width == 0 {
		return section
	}
	return lipgloss.Place(m.width, lipgloss.Height(section), lipgloss.Center, lipgloss.Top, section)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m model) View() string {
	header := renderHeader("plotopts", m.activeTab, m.width)

	var body string
	switch m.activeTab {
	case tabPresets:
		body = m.renderPresetsTab()
	default:
		body = m.renderOptionsTab()
	}
	base := header + "\n\n" + body
	statusLine := m.renderStatus()
	footer := m.renderFooter(m.footerBindings())

	switch {
	case m.picker != nil:
		return m.composeOverlay(base, statusLine, footer, renderPicker(m.picker, min(52, m.contentWidth())))
	case m.presetNaming:
		return m.composeOverlay(base, statusLine, footer, m.renderPresetNameModal())
	case m.confirmDeleteID != "":
		return m.composeOverlay(base, statusLine, footer, m.renderConfirmDeleteModal())
	}
	return m.placeWithFooter(base, statusLine, footer)
}

// ---------------------------------------------------------------------------
// Options tab
// ---------------------------------------------------------------------------

const optionLabelWidth = 14

func (m model) renderOptionsTab() string {
	if len(m.rows) == 0 {
		return m.renderSection("Plot Options", dimStyle.Render("no targets in session"))
	}

	visible := m.visibleRows()
	end := m.topRow + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	var lines []string
	lastSection := ""
	for i := m.topRow; i < end; i++ {
		row := m.rows[i]
		if row.section != lastSection {
			if lastSection != "" && !m.cfg.UI.CompactRows {
				lines = append(lines, "")
			}
			lines = append(lines, titleStyle.Render(row.section))
			lastSection = row.section
		}
		lines = append(lines, m.renderControlRow(row, i == m.cursor))
	}

	if len(m.rows) > visible {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("── %d-%d of %d ──", m.topRow+1, end, len(m.rows))))
	}
	return m.renderSection("Plot Options", strings.Join(lines, "\n"))
}

func (m model) renderControlRow(row controlRow, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = cursorStyle.Render("> ")
	}
	label := padRight(labelStyle.Render(row.label), optionLabelWidth)

	var value string
	switch row.kind {
	case controlViewer:
		if v, ok := m.sel.Viewer(); ok {
			value = valueStyle.Render(v.Name) + dimStyle.Render("  (enter to switch)")
		} else {
			value = dimStyle.Render("none")
		}
	case controlLayers:
		value = m.renderLayersValue()
	default:
		value = m.renderAttrValue(m.sel.Attr(row.attr), isCursor)
	}
	return prefix + label + " " + value
}

func (m model) renderLayersValue() string {
	layers := m.sel.Layers()
	all := m.store.LayersOf(m.sel.ViewerID())
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, l.Name)
	}
	joined := truncate(strings.Join(names, ", "), 40)
	if len(layers) == len(all) {
		return valueStyle.Render(fmt.Sprintf("all (%d)", len(all))) + dimStyle.Render("  "+joined)
	}
	return valueStyle.Render(fmt.Sprintf("%d of %d", len(layers), len(all))) + dimStyle.Render("  "+joined)
}

// renderAttrValue renders one attribute's synchronized value. Mixed state
// shows the distinct values rather than pretending there is one.
func (m model) renderAttrValue(view attrsync.AttrView, isCursor bool) string {
	if view.State == attrsync.StateMixed && view.Def.Kind != session.AttrLevels {
		return m.renderMixedValue(view)
	}

	switch view.Def.Kind {
	case session.AttrBool:
		v, _ := view.Value.(bool)
		if v {
			return valueStyle.Render("[x]")
		}
		return valueStyle.Render("[ ]")

	case session.AttrFloat:
		v, _ := m.attrValue(view).(float64)
		return renderSlider(view.Def, v)

	case session.AttrChoice:
		v, _ := view.Value.(string)
		out := valueStyle.Render("‹ " + v + " ›")
		if m.cfg.UI.ShowSwatches && view.Def.Name == session.AttrImageColormap {
			if sw := colormapSwatch(v); sw != "" {
				out += "  " + sw
			}
		}
		return out

	case session.AttrColor:
		v, _ := m.attrValue(view).(string)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(v)).Render("██")
		return swatch + " " + valueStyle.Render(v)

	case session.AttrLevels:
		return m.renderLevelsValue(view, isCursor)
	}
	return dimStyle.Render("?")
}

func (m model) renderMixedValue(view attrsync.AttrView) string {
	parts := make([]string, 0, len(view.Values))
	for _, v := range view.Values {
		parts = append(parts, formatAttrScalar(view.Def, v))
	}
	summary := truncate(strings.Join(parts, " | "), 36)
	return mixedStyle.Render("mixed") + dimStyle.Render("  "+summary+"  (u to unify)")
}

func (m model) renderLevelsValue(view attrsync.AttrView, isCursor bool) string {
	if m.levels.editing && isCursor {
		return m.levels.field.render()
	}
	if view.State == attrsync.StateMixed {
		return mixedStyle.Render("mixed") + dimStyle.Render("  (u to unify, enter to edit)")
	}
	levels, _ := view.Value.([]float64)
	text := formatLevels(levels)
	if text == "" {
		return dimStyle.Render("(none — enter to add)")
	}
	return valueStyle.Render(text)
}

func formatAttrScalar(def session.AttrDef, v any) string {
	switch def.Kind {
	case session.AttrBool:
		if b, _ := v.(bool); b {
			return "on"
		}
		return "off"
	case session.AttrFloat:
		f, _ := v.(float64)
		return formatFloat(f)
	case session.AttrLevels:
		levels, _ := v.([]float64)
		return formatLevels(levels)
	}
	s, _ := v.(string)
	return s
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

const sliderBarWidth = 16

// renderSlider draws a horizontal track with a knob for bounded floats, or a
// plain number with nudge hints for unbounded ones.
func renderSlider(def session.AttrDef, v float64) string {
	num := padRight(formatFloat(v), 7)
	if def.Unbounded {
		return valueStyle.Render(num) + dimStyle.Render(fmt.Sprintf(" (h/l ±%s)", formatFloat(def.Step)))
	}
	span := def.Max - def.Min
	frac := 0.0
	if span > 0 {
		frac = (v - def.Min) / span
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	knob := int(frac * float64(sliderBarWidth-1))
	bar := ""
	for i := 0; i < sliderBarWidth; i++ {
		if i == knob {
			bar += sliderKnobStyle.Render("●")
		} else {
			bar += sliderBarStyle.Render("─")
		}
	}
	return valueStyle.Render(num) + " " + bar
}

// ---------------------------------------------------------------------------
// Presets tab
// ---------------------------------------------------------------------------

func (m model) renderPresetsTab() string {
	if len(m.presets) == 0 {
		empty := dimStyle.Render("no presets yet — press n to capture the current options")
		return m.renderSection("Presets", empty)
	}

	var lines []string
	for i, p := range m.presets {
		prefix := "  "
		name := valueStyle.Render(p.Name)
		if i == m.presetCursor {
			prefix = cursorStyle.Render("> ")
			name = cursorStyle.Render(p.Name)
		}
		meta := dimStyle.Render(fmt.Sprintf("  %d attrs · %s", len(p.Values), p.CreatedAt.Format("2006-01-02")))
		lines = append(lines, prefix+name+meta)
	}
	return m.renderSection("Presets", strings.Join(lines, "\n"))
}

func (m model) renderPresetNameModal() string {
	title := titleStyle.Render("Save Preset")
	hint := dimStyle.Render("uniform options across the current selection")
	return title + "\n\n" + labelStyle.Render("Name: ") + m.presetName.render() + "\n" + hint
}

func (m model) renderConfirmDeleteModal() string {
	title := titleStyle.Render("Delete Preset")
	body := valueStyle.Render(m.confirmDeleteName)
	hint := dimStyle.Render("y to delete, n to keep")
	return title + "\n\n" + body + "\n" + hint
}
