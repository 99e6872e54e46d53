package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astoria-viz/plotopts/internal/config"
	"github.com/astoria-viz/plotopts/internal/database"
	"github.com/astoria-viz/plotopts/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "plotopts:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	store := session.NewStore()
	if err := session.SeedDemo(store); err != nil {
		return fmt.Errorf("seed session: %w", err)
	}
	if err := applyPlotDefaults(store, cfg); err != nil {
		return fmt.Errorf("apply configured defaults: %w", err)
	}

	m := newModel(cfg, store, database.NewPresetStore(db))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// applyPlotDefaults restyles image layers that still carry catalog defaults
// with the configured colormap and stretch. Layers the seed already styled
// keep their values.
func applyPlotDefaults(store *session.Store, cfg config.Config) error {
	overrides := map[string]string{
		session.AttrImageColormap:   cfg.Plot.DefaultColormap,
		session.AttrStretchFunction: cfg.Plot.DefaultStretch,
	}
	for _, v := range store.Viewers() {
		for _, l := range store.LayersOf(v.ID) {
			if l.Kind != session.TargetImageLayer {
				continue
			}
			for attr, want := range overrides {
				if want == "" {
					continue
				}
				def, ok := session.DefFor(attr)
				if !ok {
					continue
				}
				cur, ok := store.Get(l.ID, attr)
				if !ok || cur != def.Default {
					continue
				}
				if err := store.Set(l.ID, attr, want); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
