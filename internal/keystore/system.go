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
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// SystemStore keeps credentials in the OS-native secret store.
type SystemStore struct{}

// NewSystemStore creates a store backed by the OS secret store.
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Save stores or replaces the key for domain in the OS secret store.
func (s *SystemStore) Save(domain, key string) error {
	if err := keyring.Set(service, domain, key); err != nil {
		return fmt.Errorf("failed to store key for %s: %w", domain, err)
	}
	return nil
}

// Load returns the key stored for domain.
func (s *SystemStore) Load(domain string) (string, error) {
	key, err := keyring.Get(service, domain)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
		}
		return "", fmt.Errorf("failed to read key for %s: %w", domain, err)
	}
	return key, nil
}

// Delete removes the key stored for domain.
func (s *SystemStore) Delete(domain string) error {
	if err := keyring.Delete(service, domain); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
		}
		return fmt.Errorf("failed to delete key for %s: %w", domain, err)
	}
	return nil
}
