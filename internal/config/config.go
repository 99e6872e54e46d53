package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Plot     PlotConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings for the preset store.
type DatabaseConfig struct {
	Path string
}

// PlotConfig holds plotting-state defaults and update pacing.
type PlotConfig struct {
	DefaultColormap string
	DefaultStretch  string
	ThrottleMs      int
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowSwatches bool
	CompactRows  bool
}

// Load reads configuration from file and env. Env var overrides use prefix PLOTOPTS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "plotopts", "plotopts.db"))
	v.SetDefault("plot.default_colormap", "Gray")
	v.SetDefault("plot.default_stretch", "linear")
	v.SetDefault("plot.throttle_ms", 100)
	v.SetDefault("ui.show_swatches", true)
	v.SetDefault("ui.compact_rows", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("PLOTOPTS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "plotopts"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PLOTOPTS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

func normalize(c Config) Config {
	if c.Plot.ThrottleMs < 10 || c.Plot.ThrottleMs > 1000 {
		c.Plot.ThrottleMs = 100
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = filepath.Join(os.Getenv("HOME"), ".local", "share", "plotopts", "plotopts.db")
	}
	return c
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the TUI to persist non-sensitive preferences between sessions.
func Save(cfg Config) error {
	path := os.Getenv("PLOTOPTS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "plotopts", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("plot.default_colormap", cfg.Plot.DefaultColormap)
	v.Set("plot.default_stretch", cfg.Plot.DefaultStretch)
	v.Set("plot.throttle_ms", cfg.Plot.ThrottleMs)
	v.Set("ui.show_swatches", cfg.UI.ShowSwatches)
	v.Set("ui.compact_rows", cfg.UI.CompactRows)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
