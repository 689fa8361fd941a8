package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up from the working directory
const FileName = ".assetsym.yaml"

// Config is read from the YAML file, then overridden by ASSETSYM_*
// environment variables
type Config struct {
	// Paths are relative to the directory holding the config file
	Catalog string `yaml:"catalog" env:"ASSETSYM_CATALOG"`
	Output  string `yaml:"output"  env:"ASSETSYM_OUTPUT"`

	// Emitter Settings
	Format        string `yaml:"format"         env:"ASSETSYM_FORMAT"`
	Package       string `yaml:"package"        env:"ASSETSYM_PACKAGE"`
	ObjCNamespace string `yaml:"objc_namespace" env:"ASSETSYM_OBJC_NAMESPACE"`

	// Naming
	ImagePrefix string `yaml:"image_prefix" env:"ASSETSYM_IMAGE_PREFIX"`
	ColorPrefix string `yaml:"color_prefix" env:"ASSETSYM_COLOR_PREFIX"`
	Visibility  string `yaml:"visibility"   env:"ASSETSYM_VISIBILITY"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms" env:"ASSETSYM_WATCH_DEBOUNCE_MS"`

	// UI Settings
	ColorTheme string `yaml:"color_theme" env:"ASSETSYM_COLOR_THEME"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Catalog:         "Assets.xcassets",
		Output:          "assets_gen.go",
		Format:          "go",
		Package:         "assets",
		ObjCNamespace:   "AC",
		ImagePrefix:     "ImageName",
		ColorPrefix:     "ColorName",
		Visibility:      "exported",
		WatchDebounceMS: 300,
		ColorTheme:      "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// A missing file is not an error: defaults apply
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills empty fields and resets invalid enum values
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Catalog == "" {
		c.Catalog = def.Catalog
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Package == "" {
		c.Package = def.Package
	}
	if c.ObjCNamespace == "" {
		c.ObjCNamespace = def.ObjCNamespace
	}
	if c.ImagePrefix == "" {
		c.ImagePrefix = def.ImagePrefix
	}
	if c.ColorPrefix == "" {
		c.ColorPrefix = def.ColorPrefix
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = def.WatchDebounceMS
	}

	if !isValid(c.Format, "go", "objc") {
		c.Format = def.Format
	}
	if !isValid(c.Visibility, "exported", "unexported") {
		c.Visibility = def.Visibility
	}
	if !isValid(c.ColorTheme, "auto", "dark", "light") {
		c.ColorTheme = def.ColorTheme
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValid(value string, valid ...string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
