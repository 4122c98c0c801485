package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WorldFile is the config file name looked up in each search location.
const WorldFile = "world.yaml"

// LoadWorld loads the world configuration.
// Search order: customPath -> ~/.snakeworld/world.yaml -> ./configs/world.yaml -> embedded default
//
// Missing keys keep their default values, so a file may override a single setting.
func LoadWorld(customPath string) (WorldConfig, error) {
	cfg := DefaultWorldConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(WorldFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", WorldFile)); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	var embedded WorldConfig
	if err := yaml.Unmarshal(defaultWorldYAML, &embedded); err != nil {
		return DefaultWorldConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Unreadable or malformed files are skipped.
func tryLoad(path string) (WorldConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldConfig{}, false
	}
	cfg := DefaultWorldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorldConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakeworld", filename)
}
