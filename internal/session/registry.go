package session

import (
	"fmt"
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Attribute registry: the fixed catalog of plot-state attributes
// ---------------------------------------------------------------------------

// TargetKind distinguishes the things a plot attribute can attach to.
type TargetKind int

const (
	TargetViewer TargetKind = iota
	TargetImageLayer
	TargetProfileLayer
)

func (k TargetKind) String() string {
	switch k {
	case TargetViewer:
		return "viewer"
	case TargetImageLayer:
		return "image layer"
	case TargetProfileLayer:
		return "profile layer"
	}
	return "unknown"
}

// AttrKind is the value shape of an attribute.
type AttrKind int

const (
	AttrBool AttrKind = iota
	AttrFloat
	AttrColor
	AttrChoice
	AttrLevels
)

// Attribute names. These are the wire names used by Set/Get, presets, and
// exported TOML files, so they are stable identifiers, not display labels.
const (
	AttrLineVisible     = "line_visible"
	AttrLineColor       = "line_color"
	AttrLineWidth       = "line_width"
	AttrLineOpacity     = "line_opacity"
	AttrLineAsSteps     = "line_as_steps"
	AttrImageVisible    = "image_visible"
	AttrImageColormap   = "image_colormap"
	AttrImageOpacity    = "image_opacity"
	AttrStretchFunction = "stretch_function"
	AttrStretchVmin     = "stretch_vmin"
	AttrStretchVmax     = "stretch_vmax"
	AttrContourVisible  = "contour_visible"
	AttrContourLevels   = "contour_levels"
	AttrShowAxes        = "show_axes"
)

// AttrDef describes one attribute: its value shape, where it applies, and the
// constraints Normalize enforces.
type AttrDef struct {
	Name    string
	Label   string
	Section string
	Kind    AttrKind

	// Choice attributes.
	Choices []string

	// Float attributes. Unbounded floats ignore Min/Max but keep Step for
	// slider adjustment.
	Min       float64
	Max       float64
	Step      float64
	Unbounded bool

	AppliesTo []TargetKind
	Default   any
}

// AppliesToKind reports whether the attribute is defined for targets of kind k.
func (d AttrDef) AppliesToKind(k TargetKind) bool {
	for _, ak := range d.AppliesTo {
		if ak == k {
			return true
		}
	}
	return false
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Normalize validates and canonicalizes a raw value for this attribute.
// Floats are clamped into range, colors lowercased, choices matched
// case-insensitively against the canonical spelling, and level lists copied
// so callers cannot alias store-internal slices. Level lists may come in as
// []float64 or as []any of numbers (the shape JSON decoding produces).
func (d AttrDef) Normalize(raw any) (any, error) {
	switch d.Kind {
	case AttrBool:
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("attr %s: want bool, got %T", d.Name, raw)
		}
		return v, nil
	case AttrFloat:
		v, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("attr %s: want float, got %T", d.Name, raw)
		}
		if !d.Unbounded {
			if v < d.Min {
				v = d.Min
			}
			if v > d.Max {
				v = d.Max
			}
		}
		return v, nil
	case AttrColor:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("attr %s: want hex color string, got %T", d.Name, raw)
		}
		v = strings.TrimSpace(v)
		if !hexColorRe.MatchString(v) {
			return nil, fmt.Errorf("attr %s: %q is not a #rrggbb color", d.Name, v)
		}
		return strings.ToLower(v), nil
	case AttrChoice:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("attr %s: want choice string, got %T", d.Name, raw)
		}
		for _, c := range d.Choices {
			if strings.EqualFold(strings.TrimSpace(v), c) {
				return c, nil
			}
		}
		return nil, fmt.Errorf("attr %s: %q is not one of %v", d.Name, v, d.Choices)
	case AttrLevels:
		switch vs := raw.(type) {
		case []float64:
			return append([]float64(nil), vs...), nil
		case []any:
			out := make([]float64, 0, len(vs))
			for _, item := range vs {
				f, ok := toFloat(item)
				if !ok {
					return nil, fmt.Errorf("attr %s: level %v (%T) is not numeric", d.Name, item, item)
				}
				out = append(out, f)
			}
			return out, nil
		case nil:
			return []float64{}, nil
		default:
			return nil, fmt.Errorf("attr %s: want []float64, got %T", d.Name, raw)
		}
	}
	return nil, fmt.Errorf("attr %s: unknown kind %d", d.Name, d.Kind)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// ValuesEqual compares two normalized attribute values, treating level lists
// element-wise.
func ValuesEqual(a, b any) bool {
	la, aOK := a.([]float64)
	lb, bOK := b.([]float64)
	if aOK || bOK {
		if !aOK || !bOK || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}

var attrDefs = []AttrDef{
	{
		Name: AttrLineVisible, Label: "Visible", Section: "Line", Kind: AttrBool,
		AppliesTo: []TargetKind{TargetProfileLayer}, Default: true,
	},
	{
		Name: AttrLineColor, Label: "Color", Section: "Line", Kind: AttrColor,
		AppliesTo: []TargetKind{TargetProfileLayer}, Default: "#cdd6f4",
	},
	{
		Name: AttrLineWidth, Label: "Width", Section: "Line", Kind: AttrFloat,
		Min: 0.5, Max: 10, Step: 0.5,
		AppliesTo: []TargetKind{TargetProfileLayer}, Default: 1.0,
	},
	{
		Name: AttrLineOpacity, Label: "Opacity", Section: "Line", Kind: AttrFloat,
		Min: 0, Max: 1, Step: 0.05,
		AppliesTo: []TargetKind{TargetProfileLayer}, Default: 1.0,
	},
	{
		Name: AttrLineAsSteps, Label: "Plot as steps", Section: "Line", Kind: AttrBool,
		AppliesTo: []TargetKind{TargetProfileLayer}, Default: false,
	},
	{
		Name: AttrImageVisible, Label: "Visible", Section: "Image", Kind: AttrBool,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: true,
	},
	{
		Name: AttrImageColormap, Label: "Colormap", Section: "Image", Kind: AttrChoice,
		Choices:   []string{"Gray", "Viridis", "Magma", "Inferno", "Plasma", "Rainbow", "Reversed Rainbow"},
		AppliesTo: []TargetKind{TargetImageLayer}, Default: "Gray",
	},
	{
		Name: AttrImageOpacity, Label: "Opacity", Section: "Image", Kind: AttrFloat,
		Min: 0, Max: 1, Step: 0.05,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: 1.0,
	},
	{
		Name: AttrStretchFunction, Label: "Stretch", Section: "Image", Kind: AttrChoice,
		Choices:   []string{"linear", "sqrt", "arcsinh", "log"},
		AppliesTo: []TargetKind{TargetImageLayer}, Default: "linear",
	},
	{
		Name: AttrStretchVmin, Label: "Stretch min", Section: "Image", Kind: AttrFloat,
		Step: 1, Unbounded: true,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: 0.0,
	},
	{
		Name: AttrStretchVmax, Label: "Stretch max", Section: "Image", Kind: AttrFloat,
		Step: 1, Unbounded: true,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: 1000.0,
	},
	{
		Name: AttrContourVisible, Label: "Contours", Section: "Contour", Kind: AttrBool,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: false,
	},
	{
		// Levels are kept exactly as entered: order preserved, duplicates
		// allowed, empty list allowed.
		Name: AttrContourLevels, Label: "Levels", Section: "Contour", Kind: AttrLevels,
		AppliesTo: []TargetKind{TargetImageLayer}, Default: []float64{},
	},
	{
		Name: AttrShowAxes, Label: "Show axes", Section: "Viewer", Kind: AttrBool,
		AppliesTo: []TargetKind{TargetViewer}, Default: true,
	},
}

// Defs returns the attribute catalog in panel display order.
func Defs() []AttrDef {
	return append([]AttrDef(nil), attrDefs...)
}

// DefFor looks up an attribute definition by wire name.
func DefFor(name string) (AttrDef, bool) {
	for _, d := range attrDefs {
		if d.Name == name {
			return d, true
		}
	}
	return AttrDef{}, false
}
