package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BreakoutFile is the file name looked up in the config directories.
const BreakoutFile = "breakout.yaml"

// LoadBreakout reads the breakout tuning. The first file found wins:
// customPath, ~/.arkanoid/configs/breakout.yaml, ./configs/breakout.yaml.
// Without a file the embedded default is used.
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it sets. A file that exists but cannot be read or parsed yields the
// defaults together with the error.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	path := ResolveBreakoutPath(customPath)
	if path == "" {
		return embeddedBreakout(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultBreakoutConfig(), fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultBreakoutConfig(), fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

func embeddedBreakout() BreakoutConfig {
	cfg := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(defaultBreakoutYAML, &cfg); err != nil {
		return DefaultBreakoutConfig()
	}
	return cfg
}

// ResolveBreakoutPath returns the file LoadBreakout reads, or "" when it
// falls back to the embedded default. An explicit customPath is returned
// even if it does not exist.
func ResolveBreakoutPath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(BreakoutFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", BreakoutFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arkanoid", "configs", filename)
}

// ApplyBreakoutPreset adjusts lives, paddle width and per-level speed growth.
// Unknown presets leave cfg untouched.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	p, ok := breakoutPresets[preset]
	if !ok {
		return
	}
	cfg.Difficulty.Enabled = true
	if p.speedPerLevel > 0 {
		cfg.Difficulty.SpeedPerLevel = p.speedPerLevel
	}
	if p.lives > 0 {
		cfg.Session.Lives = p.lives
	}
	if p.paddleWidth > 0 {
		cfg.Paddle.Width = p.paddleWidth
	}
}

// Zero fields keep the configured value.
var breakoutPresets = map[DifficultyPreset]struct {
	speedPerLevel float64
	lives         int
	paddleWidth   float64
}{
	DifficultyEasy:   {speedPerLevel: 0.005, lives: 15, paddleWidth: 140},
	DifficultyNormal: {},
	DifficultyHard:   {speedPerLevel: 0.012, lives: 5, paddleWidth: 100},
}
