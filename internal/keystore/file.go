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

package keystore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// DefaultFilePath returns the standard location of the file-backend
// credentials file: ~/.backlog-seeder/credentials.json.
func DefaultFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home directory is not accessible
		homeDir = "."
	}
	return filepath.Join(homeDir, ".backlog-seeder", "credentials.json")
}

// FileStore keeps credentials in a mode-0600 JSON file mapping space
// domains to API keys.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path, or at
// DefaultFilePath when path is empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultFilePath()
	}
	return &FileStore{path: path}
}

// Path returns the location of the credentials file.
func (s *FileStore) Path() string {
	return s.path
}

// Save stores or replaces the key for domain.
func (s *FileStore) Save(domain, key string) error {
	creds, err := s.read()
	if err != nil {
		return err
	}
	creds[domain] = key
	return s.write(creds)
}

// Load returns the key stored for domain.
func (s *FileStore) Load(domain string) (string, error) {
	creds, err := s.read()
	if err != nil {
		return "", err
	}
	key, ok := creds[domain]
	if !ok {
		return "", fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
	}
	return key, nil
}

// Delete removes the key stored for domain.
func (s *FileStore) Delete(domain string) error {
	creds, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := creds[domain]; !ok {
		return fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
	}
	delete(creds, domain)
	return s.write(creds)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials file %s: %w", s.path, err)
	}

	creds := map[string]string{}
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("credentials file %s is corrupted (invalid JSON): %w", s.path, err)
	}
	return creds, nil
}

// write saves the credentials atomically with a write-to-temp-and-rename
// pattern so a crash never leaves a half-written file behind.
func (s *FileStore) write(creds map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	// Write to temporary file with restricted permissions
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary credentials file: %w", err)
	}

	// Sync to ensure data is flushed to disk
	file, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, s.path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
