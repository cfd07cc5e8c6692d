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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test API defaults
	if cfg.API.BaseURL != "" {
		t.Errorf("BaseURL = %s, want empty (derived from template)", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.API.TimeoutSeconds)
	}
	if cfg.API.KeyEnv != "BACKLOG_API_KEY" {
		t.Errorf("KeyEnv = %s, want BACKLOG_API_KEY", cfg.API.KeyEnv)
	}

	// Test keyring defaults
	if cfg.Keyring.Backend != "auto" {
		t.Errorf("Backend = %s, want auto", cfg.Keyring.Backend)
	}
	if cfg.Keyring.File != "~/.backlog-seeder/credentials.json" {
		t.Errorf("File = %s, want ~/.backlog-seeder/credentials.json", cfg.Keyring.File)
	}

	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", cfg.Timeout())
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write test config
	configContent := `
api:
  base_url: https://backlog.example.com
  timeout_seconds: 10
  key_env: TEAM_BACKLOG_KEY

keyring:
  backend: file
  file: /custom/credentials.json
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Load config
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify API settings
	if cfg.API.BaseURL != "https://backlog.example.com" {
		t.Errorf("BaseURL = %s, want https://backlog.example.com", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want 10", cfg.API.TimeoutSeconds)
	}
	if cfg.API.KeyEnv != "TEAM_BACKLOG_KEY" {
		t.Errorf("KeyEnv = %s, want TEAM_BACKLOG_KEY", cfg.API.KeyEnv)
	}

	// Verify keyring settings
	if cfg.Keyring.Backend != "file" {
		t.Errorf("Backend = %s, want file", cfg.Keyring.Backend)
	}
	if cfg.Keyring.File != "/custom/credentials.json" {
		t.Errorf("File = %s, want /custom/credentials.json", cfg.Keyring.File)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// A file that only sets the timeout keeps every other default.
	configContent := `
api:
  timeout_seconds: 5
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.API.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.API.TimeoutSeconds)
	}
	if cfg.API.KeyEnv != "BACKLOG_API_KEY" {
		t.Errorf("KeyEnv = %s, want default BACKLOG_API_KEY", cfg.API.KeyEnv)
	}
	if cfg.Keyring.Backend != "auto" {
		t.Errorf("Backend = %s, want default auto", cfg.Keyring.Backend)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	// Set environment variables
	os.Setenv("BACKLOG_API_BASE", "http://127.0.0.1:8080")
	os.Setenv("BACKLOG_API_TIMEOUT", "60")
	os.Setenv("BACKLOG_KEYRING_BACKEND", "file")
	os.Setenv("BACKLOG_KEYRING_FILE", "/env/credentials.json")

	defer func() {
		os.Unsetenv("BACKLOG_API_BASE")
		os.Unsetenv("BACKLOG_API_TIMEOUT")
		os.Unsetenv("BACKLOG_KEYRING_BACKEND")
		os.Unsetenv("BACKLOG_KEYRING_FILE")
	}()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	// Verify environment overrides
	if cfg.API.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("BaseURL = %s, want http://127.0.0.1:8080", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.API.TimeoutSeconds)
	}
	if cfg.Keyring.Backend != "file" {
		t.Errorf("Backend = %s, want file", cfg.Keyring.Backend)
	}
	if cfg.Keyring.File != "/env/credentials.json" {
		t.Errorf("File = %s, want /env/credentials.json", cfg.Keyring.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: "",
		},
		{
			name: "negative timeout",
			config: &Config{
				API:     APIConfig{TimeoutSeconds: -1, KeyEnv: "BACKLOG_API_KEY"},
				Keyring: KeyringConfig{Backend: "auto"},
			},
			wantErr: "timeout must be positive",
		},
		{
			name: "empty key env",
			config: &Config{
				API:     APIConfig{TimeoutSeconds: 30, KeyEnv: ""},
				Keyring: KeyringConfig{Backend: "auto"},
			},
			wantErr: "key environment variable name cannot be empty",
		},
		{
			name: "unknown keyring backend",
			config: &Config{
				API:     APIConfig{TimeoutSeconds: 30, KeyEnv: "BACKLOG_API_KEY"},
				Keyring: KeyringConfig{Backend: "vault"},
			},
			wantErr: `unknown keyring backend "vault"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"50", 50, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parsePositiveInt(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePositiveInt(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePositiveInt(%s) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
