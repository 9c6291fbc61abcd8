package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const blastFile = "blast.yaml"

// LoadBlast loads Blast configuration.
// Search order: customPath -> ~/.blast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the fields it
// cares about.
func LoadBlast(customPath string) (BlastConfig, error) {
	cfg := embeddedBlast()

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
	if userCfgPath := userConfigPath(blastFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath, cfg); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", blastFile), cfg); ok {
		return loaded, nil
	}

	return cfg, nil
}

// tryLoad decodes path over base. Unreadable or malformed files are skipped
// so the next location in the search order is used.
func tryLoad(path string, base BlastConfig) (BlastConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	return cfg, true
}

// embeddedBlast parses the embedded default YAML.
func embeddedBlast() BlastConfig {
	cfg := DefaultBlastConfig()
	if err := yaml.Unmarshal(defaultBlastYAML, &cfg); err != nil {
		return DefaultBlastConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// SaveBlast writes cfg as YAML, creating parent directories as needed.
func SaveBlast(path string, cfg BlastConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: failed to encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns where the user-level Blast config lives, or empty
// if the home directory is unavailable.
func UserConfigPath() string {
	return userConfigPath(blastFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blast", "configs", filename)
}
