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
	"fmt"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	creds map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{creds: map[string]string{}}
}

// Save stores or replaces the key for domain.
func (s *MemStore) Save(domain, key string) error {
	s.creds[domain] = key
	return nil
}

// Load returns the key stored for domain.
func (s *MemStore) Load(domain string) (string, error) {
	key, ok := s.creds[domain]
	if !ok {
		return "", fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
	}
	return key, nil
}

// Delete removes the key stored for domain.
func (s *MemStore) Delete(domain string) error {
	if _, ok := s.creds[domain]; !ok {
		return fmt.Errorf("no key stored for %s: %w", domain, seedererrors.ErrCredentialNotFound)
	}
	delete(s.creds, domain)
	return nil
}
