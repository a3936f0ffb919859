package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fpsandbox/internal/graphics/shaders"
)

// DefaultPath is where the settings file is looked up when -config is not given
const DefaultPath = "game_config/settings.yaml"

// Load loads configuration with priority: defaults < file < flags
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile merges a YAML file over the existing values
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate rejects settings the engine cannot start with
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Textures.Width <= 0 || c.Textures.Height <= 0 || c.Textures.Capacity <= 0 {
		return fmt.Errorf("invalid texture array %dx%dx%d", c.Textures.Width, c.Textures.Height, c.Textures.Capacity)
	}
	if c.Textures.Capacity > shaders.MaxTextureSlots {
		return fmt.Errorf("texture capacity %d exceeds shader limit %d", c.Textures.Capacity, shaders.MaxTextureSlots)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Movement.Gravity > 0 {
		return fmt.Errorf("gravity must be negative, got %v", c.Movement.Gravity)
	}
	return nil
}
