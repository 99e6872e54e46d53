// Package preset moves styling presets between the database and TOML files
// so they can be shared between machines and checked into analysis repos.
package preset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/astoria-viz/plotopts/internal/database"
	"github.com/astoria-viz/plotopts/internal/session"
)

type presetFile struct {
	Preset []fileEntry `toml:"preset"`
}

type fileEntry struct {
	Name  string         `toml:"name"`
	Attrs map[string]any `toml:"attrs"`
}

// Export writes presets to a TOML file, creating parent directories.
func Export(path string, presets []database.Preset) error {
	out := presetFile{}
	for _, p := range presets {
		out.Preset = append(out.Preset, fileEntry{Name: p.Name, Attrs: p.Values})
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// Imported is one preset read from a file, with values already normalized.
type Imported struct {
	Name   string
	Values map[string]any
	// Skipped lists attributes dropped during import (unknown names, values
	// that failed normalization, choices with no close match).
	Skipped []string
}

// Import reads presets from a TOML file. Unknown attributes and unusable
// values are skipped per entry rather than failing the whole file; choice
// values that don't match a known choice exactly are resolved to the nearest
// one by edit distance when the match is close enough.
func Import(path string) ([]Imported, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var f presetFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	var out []Imported
	for i, entry := range f.Preset {
		if entry.Name == "" {
			return nil, fmt.Errorf("parse presets: preset[%d]: name is required", i)
		}
		imp := Imported{Name: entry.Name, Values: make(map[string]any)}
		for attr, raw := range entry.Attrs {
			def, ok := session.DefFor(attr)
			if !ok {
				imp.Skipped = append(imp.Skipped, attr)
				continue
			}
			if def.Kind == session.AttrChoice {
				if s, isStr := raw.(string); isStr {
					resolved, ok := ResolveChoice(def.Choices, s)
					if !ok {
						imp.Skipped = append(imp.Skipped, attr)
						continue
					}
					raw = resolved
				}
			}
			v, err := def.Normalize(raw)
			if err != nil {
				imp.Skipped = append(imp.Skipped, attr)
				continue
			}
			imp.Values[attr] = v
		}
		out = append(out, imp)
	}
	return out, nil
}
