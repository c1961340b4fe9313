package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFruitDrop loads the game configuration.
// Search order: customPath -> ~/.fruitdrop/configs/fruitdrop.yaml -> ./configs/fruitdrop.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets. The result is validated; an explicit customPath that fails
// to read, parse or validate is an error, while a broken user or local file
// falls through to the next candidate.
func LoadFruitDrop(customPath string) (FruitDropConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FruitDropConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FruitDropConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/fruitdrop.yaml"}
	if userCfgPath := userConfigPath("fruitdrop.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultFruitDropYAML)
	if err != nil {
		return DefaultFruitDropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (FruitDropConfig, error) {
	cfg := DefaultFruitDropConfig()
	// ranks and weights replace rather than merge element-wise
	cfg.Ranks = nil
	cfg.Spawn.Weights = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FruitDropConfig{}, fmt.Errorf("parse: %w", err)
	}

	def := DefaultFruitDropConfig()
	if len(cfg.Ranks) == 0 {
		cfg.Ranks = def.Ranks
	}
	if len(cfg.Spawn.Weights) == 0 {
		cfg.Spawn.Weights = def.Spawn.Weights
	}

	if err := cfg.Validate(); err != nil {
		return FruitDropConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML, for `fruitdrop ranks --yaml`.
func Marshal(cfg FruitDropConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fruitdrop", "configs", filename)
}
