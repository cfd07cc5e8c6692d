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

// Package config types define the configuration structures used throughout
// backlog-seeder. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for backlog-seeder.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Keyring KeyringConfig `yaml:"keyring"`
}

// APIConfig contains Backlog API settings. BaseURL is normally derived from
// the template's space domain; setting it here or via BACKLOG_API_BASE
// redirects every request, which is useful for proxies and test servers.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	KeyEnv         string `yaml:"key_env"`
}

// KeyringConfig controls where API credentials are stored. Backend selects
// between the OS-native secret store and a plain file for headless machines;
// File overrides the default credentials file location.
type KeyringConfig struct {
	Backend string `yaml:"backend"`
	File    string `yaml:"file"`
}

// Timeout returns the API timeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. The defaults talk to the space named in the template and keep
// credentials in the OS secret store when one is available.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: 30,
			KeyEnv:         "BACKLOG_API_KEY",
		},
		Keyring: KeyringConfig{
			Backend: "auto",
			File:    "~/.backlog-seeder/credentials.json",
		},
	}
}
