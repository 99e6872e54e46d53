package main

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorRosewater lipgloss.Color = "#f5e0dc"
	colorFlamingo  lipgloss.Color = "#f2cdcd"
	colorPink      lipgloss.Color = "#f5c2e7"
	colorMauve     lipgloss.Color = "#cba6f7"
	colorRed       lipgloss.Color = "#f38ba8"
	colorMaroon    lipgloss.Color = "#eba0ac"
	colorPeach     lipgloss.Color = "#fab387"
	colorYellow    lipgloss.Color = "#f9e2af"
	colorGreen     lipgloss.Color = "#a6e3a1"
	colorTeal      lipgloss.Color = "#94e2d5"
	colorSky       lipgloss.Color = "#89dceb"
	colorSapphire  lipgloss.Color = "#74c7ec"
	colorBlue      lipgloss.Color = "#89b4fa"
	colorLavender  lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay2 lipgloss.Color = "#9399b2"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorMauve
	colorBrand   = colorMauve
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
	colorMixed   = colorYellow
)

// ---------------------------------------------------------------------------
// Line color palette (for the color picker)
// ---------------------------------------------------------------------------

type namedColor struct {
	name string
	hex  string
}

// lineColorPalette is the set of colors offered for line styling, in display
// order. Hex values double as the stored attribute values.
func lineColorPalette() []namedColor {
	return []namedColor{
		{"Text", string(colorText)},
		{"Blue", string(colorBlue)},
		{"Sapphire", string(colorSapphire)},
		{"Sky", string(colorSky)},
		{"Teal", string(colorTeal)},
		{"Green", string(colorGreen)},
		{"Yellow", string(colorYellow)},
		{"Peach", string(colorPeach)},
		{"Maroon", string(colorMaroon)},
		{"Red", string(colorRed)},
		{"Pink", string(colorPink)},
		{"Mauve", string(colorMauve)},
		{"Lavender", string(colorLavender)},
		{"Gray", string(colorOverlay0)},
	}
}

// ---------------------------------------------------------------------------
// Colormap swatch ramps
// ---------------------------------------------------------------------------

// colormapRamps approximates each supported colormap with a few true-color
// stops, enough for a one-line swatch next to the dropdown.
var colormapRamps = map[string][]lipgloss.Color{
	"Gray":             {"#000000", "#2a2a2a", "#555555", "#808080", "#aaaaaa", "#d4d4d4", "#ffffff"},
	"Viridis":          {"#440154", "#46327e", "#365c8d", "#277f8e", "#1fa187", "#4ac16d", "#a0da39", "#fde725"},
	"Magma":            {"#000004", "#2c115f", "#721f81", "#b73779", "#f1605d", "#feae77", "#fcfdbf"},
	"Inferno":          {"#000004", "#320a5e", "#781c6d", "#bc3754", "#ed6925", "#fcb519", "#fcffa4"},
	"Plasma":           {"#0d0887", "#6a00a8", "#b12a90", "#e16462", "#fca636", "#f0f921"},
	"Rainbow":          {"#6e40aa", "#417de0", "#1ac7c2", "#40f373", "#d2c934", "#ff8c38", "#ff4040"},
	"Reversed Rainbow": {"#ff4040", "#ff8c38", "#d2c934", "#40f373", "#1ac7c2", "#417de0", "#6e40aa"},
}

// colormapSwatch renders a compact ramp preview, or "" for unknown maps.
func colormapSwatch(name string) string {
	ramp, ok := colormapRamps[name]
	if !ok {
		return ""
	}
	out := ""
	for _, stop := range ramp {
		out += lipgloss.NewStyle().Foreground(stop).Render("█")
	}
	return out
}
