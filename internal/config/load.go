package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoModel is returned by Validate when no model path is configured.
var ErrNoModel = errors.New("no model specified (use -model or viewer.model)")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg, flag.Args())

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Viewer.Model == "" {
		return ErrNoModel
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinZoom <= 0 {
		return fmt.Errorf("camera.min_zoom must be positive, got %v", c.Camera.MinZoom)
	}
	if c.Camera.MaxZoom != 0 && c.Camera.MaxZoom < c.Camera.MinZoom {
		return fmt.Errorf("camera.max_zoom %v is below min_zoom %v", c.Camera.MaxZoom, c.Camera.MinZoom)
	}
	return nil
}

// expandPaths resolves a leading ~ in user-supplied paths.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Viewer.Model, &c.Viewer.Texture, &c.Viewer.ScreenshotDir, &c.Logging.LogFile} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expanding %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	dir := ConfigDir()
	candidates := []string{
		"./config.yaml",
		"./config.yml",
		"./config.toml",
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.toml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		home = os.TempDir()
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "objview")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "objview")
		}
		return filepath.Join(home, "AppData", "Roaming", "objview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "objview")
		}
		return filepath.Join(home, ".config", "objview")
	}
}

// loadFromFile loads config from a YAML or TOML file, merging with
// existing values. The format is chosen by extension.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}
