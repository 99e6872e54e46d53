package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/astoria-viz/plotopts/internal/session"
)

// Preset is a named snapshot of plot attribute values.
type Preset struct {
	ID        string
	Name      string
	Values    map[string]any
	CreatedAt time.Time
}

// PresetStore reads and writes presets.
type PresetStore struct {
	db *sql.DB
}

func NewPresetStore(db *sql.DB) *PresetStore {
	return &PresetStore{db: db}
}

// Save inserts a preset, or replaces the values of an existing preset with the
// same name. Values are filtered to known attributes and normalized before
// storage so the database never holds out-of-range state.
func (ps *PresetStore) Save(name string, values map[string]any) (Preset, error) {
	if name == "" {
		return Preset{}, fmt.Errorf("save preset: name is required")
	}
	clean := make(map[string]any, len(values))
	for attr, raw := range values {
		def, ok := session.DefFor(attr)
		if !ok {
			continue
		}
		v, err := def.Normalize(raw)
		if err != nil {
			return Preset{}, fmt.Errorf("save preset %q: %w", name, err)
		}
		clean[attr] = v
	}
	blob, err := json.Marshal(clean)
	if err != nil {
		return Preset{}, fmt.Errorf("save preset %q: encode: %w", name, err)
	}

	p := Preset{ID: uuid.NewString(), Name: name, Values: clean, CreatedAt: Now()}
	err = WithTx(ps.db, func(tx *sql.Tx) error {
		var existingID string
		row := tx.QueryRow(`SELECT id FROM presets WHERE name = ?`, name)
		switch err := row.Scan(&existingID); err {
		case nil:
			p.ID = existingID
			_, err2 := tx.Exec(`UPDATE presets SET attrs = ? WHERE id = ?`, string(blob), existingID)
			return err2
		case sql.ErrNoRows:
			_, err2 := tx.Exec(
				`INSERT INTO presets (id, name, attrs, created_at) VALUES (?, ?, ?, ?)`,
				p.ID, p.Name, string(blob), p.CreatedAt,
			)
			return err2
		default:
			return err
		}
	})
	if err != nil {
		return Preset{}, fmt.Errorf("save preset %q: %w", name, err)
	}
	return p, nil
}

// List returns all presets ordered by name.
func (ps *PresetStore) List() ([]Preset, error) {
	rows, err := ps.db.Query(`SELECT id, name, attrs, created_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns one preset by id.
func (ps *PresetStore) Get(id string) (Preset, error) {
	row := ps.db.QueryRow(`SELECT id, name, attrs, created_at FROM presets WHERE id = ?`, id)
	p, err := scanPreset(row)
	if err == sql.ErrNoRows {
		return Preset{}, fmt.Errorf("preset %s: not found", id)
	}
	return p, err
}

// Delete removes a preset by id.
func (ps *PresetStore) Delete(id string) error {
	res, err := ps.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete preset %s: not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (Preset, error) {
	var p Preset
	var blob string
	if err := row.Scan(&p.ID, &p.Name, &blob, &p.CreatedAt); err != nil {
		return Preset{}, err
	}
	raw := make(map[string]any)
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return Preset{}, fmt.Errorf("preset %s: decode attrs: %w", p.ID, err)
	}
	// JSON turns level lists into []any; renormalize to registry shapes.
	p.Values = make(map[string]any, len(raw))
	for attr, v := range raw {
		def, ok := session.DefFor(attr)
		if !ok {
			continue
		}
		norm, err := def.Normalize(v)
		if err != nil {
			continue
		}
		p.Values[attr] = norm
	}
	return p, nil
}
