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

// Package keystore persists Backlog API keys, one per space domain.
//
// The system backend uses the OS-native secret store (Keychain on
// macOS, wincred on Windows, Secret Service on Linux). The file backend
// keeps a 0600 JSON file under the user's home directory for
// environments without a keychain service, such as headless CI. The
// auto backend probes the system store once and falls back to the file
// store when none is available.
package keystore
