package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application settings.
type Config struct {
	WindowTitle  string `koanf:"window_title"`
	WindowWidth  int    `koanf:"window_width"`
	WindowHeight int    `koanf:"window_height"`
	LogEnabled   bool   `koanf:"log_enabled"`
	LogDir       string `koanf:"log_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	exePath, _ := os.Executable()
	return &Config{
		WindowTitle:  "Calculator - Blue & White",
		WindowWidth:  340,
		WindowHeight: 480,
		LogEnabled:   true,
		LogDir:       filepath.Join(filepath.Dir(exePath), "logs"),
	}
}

// findConfigFile returns the config file to use: an explicit path wins,
// otherwise calculator.yaml/.yml next to the working directory, otherwise
// none.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"calculator.yaml", "calculator.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// LoadConfig loads configuration with precedence (highest to lowest):
// environment variables (CALC_ prefix) > config file > defaults.
func LoadConfig(cfgFile string) (*Config, error) {
	k := koanf.New(".")

	def := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"window_title":  def.WindowTitle,
		"window_width":  def.WindowWidth,
		"window_height": def.WindowHeight,
		"log_enabled":   def.LogEnabled,
		"log_dir":       def.LogDir,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// CALC_WINDOW_TITLE -> window_title
	if err := k.Load(env.Provider("CALC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CALC_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EnsureDirectories creates the directories the application writes to.
func (c *Config) EnsureDirectories() error {
	if !c.LogEnabled {
		return nil
	}
	if err := os.MkdirAll(c.LogDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.LogDir, err)
	}
	return nil
}
