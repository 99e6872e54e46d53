package main

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Generic filterable picker overlay
// ---------------------------------------------------------------------------
// Backs the viewer select, the layer multi-select, dropdown choices, and the
// color palette. Items are filtered by fuzzy subsequence match as the user
// types; the color picker additionally accepts a custom row that submits the
// raw query (a hex color).

type pickerItem struct {
	ID    string
	Label string
	Color string
	Meta  string
}

type pickerState struct {
	items       []pickerItem
	filtered    []pickerItem
	query       string
	cursor      int
	selected    map[string]bool
	multiSelect bool
	title       string
	customLabel string // non-empty enables the "submit query as value" row
}

type pickerAction int

const (
	pickerActionNone pickerAction = iota
	pickerActionMoved
	pickerActionToggled
	pickerActionSelected
	pickerActionSubmitted
	pickerActionCustom
	pickerActionCancelled
)

type pickerResult struct {
	Action      pickerAction
	ItemID      string
	ItemLabel   string
	CustomQuery string
	SelectedIDs []string
}

type pickerRow struct {
	item     *pickerItem
	isCustom bool
}

type scoredPickerItem struct {
	item  pickerItem
	score int
}

func newPicker(title string, items []pickerItem, multiSelect bool, customLabel string) *pickerState {
	p := &pickerState{
		selected:    make(map[string]bool),
		multiSelect: multiSelect,
		title:       title,
		customLabel: strings.TrimSpace(customLabel),
	}
	p.SetItems(items)
	return p
}

func (p *pickerState) SetItems(items []pickerItem) {
	if p == nil {
		return
	}
	p.items = append([]pickerItem(nil), items...)
	p.rebuildFiltered()
}

func (p *pickerState) SetQuery(q string) {
	if p == nil {
		return
	}
	p.query = q
	p.rebuildFiltered()
}

// Preselect marks items as selected before the picker opens (multi-select).
func (p *pickerState) Preselect(ids []string) {
	if p == nil || !p.multiSelect {
		return
	}
	for _, id := range ids {
		p.selected[id] = true
	}
}

// CursorTo places the cursor on the item with the given id, if visible.
func (p *pickerState) CursorTo(id string) {
	if p == nil {
		return
	}
	for i := range p.filtered {
		if p.filtered[i].ID == id {
			p.cursor = i
			return
		}
	}
}

func (p *pickerState) Selected() []string {
	if p == nil || len(p.selected) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.selected))
	for id := range p.selected {
		if p.selected[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (p *pickerState) HandleKey(keyName string) pickerResult {
	if p == nil {
		return pickerResult{Action: pickerActionNone}
	}

	switch keyName {
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "j", "down":
		if maxIdx := p.maxCursorIndex(); p.cursor < maxIdx {
			p.cursor++
			return pickerResult{Action: pickerActionMoved}
		}
		return pickerResult{Action: pickerActionNone}
	case "space", " ":
		if !p.multiSelect {
			return pickerResult{Action: pickerActionNone}
		}
		row := p.currentRow()
		if row.item == nil {
			return pickerResult{Action: pickerActionNone}
		}
		if p.selected[row.item.ID] {
			delete(p.selected, row.item.ID)
		} else {
			p.selected[row.item.ID] = true
		}
		return pickerResult{
			Action:      pickerActionToggled,
			ItemID:      row.item.ID,
			ItemLabel:   row.item.Label,
			SelectedIDs: p.Selected(),
		}
	case "enter":
		row := p.currentRow()
		if row.isCustom {
			return pickerResult{
				Action:      pickerActionCustom,
				CustomQuery: strings.TrimSpace(p.query),
			}
		}
		if p.multiSelect {
			return pickerResult{
				Action:      pickerActionSubmitted,
				SelectedIDs: p.Selected(),
			}
		}
		if row.item != nil {
			return pickerResult{
				Action:    pickerActionSelected,
				ItemID:    row.item.ID,
				ItemLabel: row.item.Label,
			}
		}
		return pickerResult{Action: pickerActionNone}
	case "esc":
		return pickerResult{Action: pickerActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
		return pickerResult{Action: pickerActionNone}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return pickerResult{Action: pickerActionNone}
	}
}

func (p *pickerState) rebuildFiltered() {
	if p == nil {
		return
	}
	q := strings.TrimSpace(p.query)
	scored := make([]scoredPickerItem, 0, len(p.items))
	for _, it := range p.items {
		matched, score := fuzzyMatchScore(it.Label, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredPickerItem{item: it, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]pickerItem, 0, len(scored))
	for i := range scored {
		out = append(out, scored[i].item)
	}
	p.filtered = out

	maxIdx := p.maxCursorIndex()
	if maxIdx < 0 {
		p.cursor = 0
	} else if p.cursor > maxIdx {
		p.cursor = maxIdx
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *pickerState) showCustomRow() bool {
	return p != nil && p.customLabel != "" && strings.TrimSpace(p.query) != ""
}

func (p *pickerState) maxCursorIndex() int {
	if p == nil {
		return -1
	}
	count := len(p.filtered)
	if p.showCustomRow() {
		count++
	}
	return count - 1
}

func (p *pickerState) currentRow() pickerRow {
	if p == nil {
		return pickerRow{}
	}
	idx := p.cursor
	if idx < 0 {
		idx = 0
	}
	if idx < len(p.filtered) {
		return pickerRow{item: &p.filtered[idx]}
	}
	if p.showCustomRow() && idx == len(p.filtered) {
		return pickerRow{isCustom: true}
	}
	if n := len(p.filtered); n > 0 {
		return pickerRow{item: &p.filtered[n-1]}
	}
	return pickerRow{}
}

// fuzzyMatchScore matches query as a subsequence of label, rewarding prefix
// and adjacency.
func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	searchFrom := 0
	for i := 0; i < len(queryLower); i++ {
		ch := queryLower[i]
		found := false
		for j := searchFrom; j < len(labelLower); j++ {
			if labelLower[j] == ch {
				matchIdx = append(matchIdx, j)
				searchFrom = j + 1
				found = true
				break
			}
		}
		if !found {
			return false, 0
		}
	}

	score := len(queryLower)
	if len(matchIdx) > 0 && matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), strings.TrimSpace(query)) {
		score += 20
	}
	return true, score
}

// ---------------------------------------------------------------------------
// Picker rendering
// ---------------------------------------------------------------------------

func renderPicker(p *pickerState, width int) string {
	if p == nil {
		return ""
	}
	var lines []string
	query := strings.TrimSpace(p.query)
	searchValue := lipgloss.NewStyle().Foreground(colorOverlay1).Render("(type to filter)")
	if query != "" {
		searchValue = lipgloss.NewStyle().Foreground(colorText).Render(query)
	}
	searchLine := lipgloss.NewStyle().Foreground(colorSubtext0).Render("Filter: ") + searchValue
	if width > 0 {
		searchLine = padStyledLine(searchLine, width)
	}
	lines = append(lines, searchLine, "")

	for i := range p.filtered {
		it := p.filtered[i]
		isCursor := p.cursor == i
		isSelected := p.multiSelect && p.selected[it.ID]

		selectMark := "   "
		if p.multiSelect {
			if isSelected {
				selectMark = "[x]"
			} else {
				selectMark = "[ ]"
			}
		}

		labelStyle := lipgloss.NewStyle().Foreground(colorText)
		swatch := ""
		if strings.TrimSpace(it.Color) != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(it.Color)).Render("██") + " "
		}
		label := labelStyle.Render(it.Label)

		meta := ""
		if strings.TrimSpace(it.Meta) != "" {
			meta = lipgloss.NewStyle().Foreground(colorSubtext0).Render("  " + strings.TrimSpace(it.Meta))
		}

		row := "  " + selectMark + " " + swatch + label + meta
		lines = append(lines, stylePickerRow(row, isSelected, isCursor, width))
	}

	if p.showCustomRow() {
		isCursor := p.cursor == len(p.filtered)
		label := lipgloss.NewStyle().Foreground(colorPeach).Render(p.customLabel + ` "` + strings.TrimSpace(p.query) + `"`)
		lines = append(lines, stylePickerRow("      "+label, false, isCursor, width))
	}

	title := titleStyle.Render(p.title)
	return title + "\n" + strings.Join(lines, "\n")
}

func stylePickerRow(content string, selected, isCursor bool, width int) string {
	style := lipgloss.NewStyle()
	if isCursor {
		style = style.Background(colorSurface1).Bold(true)
	} else if selected {
		style = style.Background(colorSurface0)
	}
	if width > 0 {
		return style.Render(padStyledLine(content, width))
	}
	return style.Render(content)
}

func padStyledLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
