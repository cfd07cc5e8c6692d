// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for backlog-seeder with
// support for multiple configuration sources and a well-defined precedence
// order. It lets teams share a checked-in configuration file while keeping
// per-machine flexibility through environment variables and command-line
// overrides.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .backlog-seeder.yaml (current directory)
//   - .backlog-seeder.yml (current directory)
//   - ~/.backlog-seeder/config.yaml
//   - ~/.backlog-seeder/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is performed
// on the credentials file path.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".backlog-seeder.yaml",
			".backlog-seeder.yml",
			filepath.Join(os.Getenv("HOME"), ".backlog-seeder", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".backlog-seeder", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Keyring.File = expandPath(cfg.Keyring.File)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// API settings
	if base := os.Getenv("BACKLOG_API_BASE"); base != "" {
		cfg.API.BaseURL = base
	}
	if timeout := os.Getenv("BACKLOG_API_TIMEOUT"); timeout != "" {
		if seconds, err := parsePositiveInt(timeout); err == nil {
			cfg.API.TimeoutSeconds = seconds
		}
	}

	// Keyring settings
	if backend := os.Getenv("BACKLOG_KEYRING_BACKEND"); backend != "" {
		cfg.Keyring.Backend = backend
	}
	if file := os.Getenv("BACKLOG_KEYRING_FILE"); file != "" {
		cfg.Keyring.File = file
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// the API timeout is positive, the key environment variable has a name,
// and the keyring backend is one the keystore knows. This should be called
// after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api timeout must be positive, got: %d", c.API.TimeoutSeconds)
	}
	if c.API.KeyEnv == "" {
		return fmt.Errorf("api key environment variable name cannot be empty")
	}
	switch c.Keyring.Backend {
	case "auto", "system", "file":
	default:
		return fmt.Errorf("unknown keyring backend %q (expected auto, system, or file)", c.Keyring.Backend)
	}
	return nil
}
