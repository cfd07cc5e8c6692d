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
)

// service is the name backlog-seeder registers under in the OS secret store.
const service = "backlog-seeder"

// Backends selectable via configuration or the --keyring flag.
const (
	BackendAuto   = "auto"
	BackendSystem = "system"
	BackendFile   = "file"
)

// Store persists one API key per Backlog space domain.
type Store interface {
	// Save stores or replaces the key for domain.
	Save(domain, key string) error

	// Load returns the key stored for domain. It fails with
	// ErrCredentialNotFound when no key is stored.
	Load(domain string) (string, error)

	// Delete removes the key stored for domain. It fails with
	// ErrCredentialNotFound when no key is stored.
	Delete(domain string) error
}

// Open returns the credential store for the configured backend.
// filePath is only used by the file backend; empty means the default
// path under the user's home directory.
func Open(backend, filePath string) (Store, error) {
	switch backend {
	case BackendSystem:
		return NewSystemStore(), nil
	case BackendFile:
		return NewFileStore(filePath), nil
	case BackendAuto, "":
		if systemAvailable() {
			return NewSystemStore(), nil
		}
		return NewFileStore(filePath), nil
	default:
		return nil, fmt.Errorf("unknown keyring backend %q (expected auto, system or file)", backend)
	}
}

// systemAvailable probes the OS secret store with a throwaway read.
// ErrNotFound still means the store answered; anything else (no D-Bus
// session, unsupported platform) rules it out.
func systemAvailable() bool {
	_, err := keyring.Get(service, "__probe__")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
