package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the per-project configuration directory
	ConfigDirName = ".codecat"
	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"
	// ConfigEnvVar names a config file that overrides discovery
	ConfigEnvVar = "CODECAT_CONFIG"
)

// ResolveConfigPath returns the configuration file to load
// Priority order:
//  1. explicit path (the --config flag), which must exist
//  2. CODECAT_CONFIG environment variable (if set), which must exist
//  3. nearest .codecat/config.yaml from the working directory upward
//
// An empty path with a nil error means no configuration file was found
// and defaults apply.
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	if env := os.Getenv(ConfigEnvVar); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", fmt.Errorf("config file %s from %s: %w", env, ConfigEnvVar, err)
		}
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	return findConfigUpward(cwd), nil
}

// findConfigUpward walks from start toward the filesystem root and returns
// the first .codecat/config.yaml it finds, or "" when there is none
func findConfigUpward(start string) string {
	current := start
	for {
		candidate := filepath.Join(current, ConfigDirName, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// Load resolves and loads the configuration file, falling back to defaults
// when none is found
func Load(explicit string) (*Config, string, error) {
	path, err := ResolveConfigPath(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, path, nil
}
