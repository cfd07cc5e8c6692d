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

// Package main implements the backlog-seeder command-line interface.
// This tool reads a TOML template describing issues (with optional child
// issues), resolves placeholders and relative due dates, and posts the
// issues to a Backlog project in declaration order, parents before their
// children.
//
// The CLI supports:
//   - Posting a template with per-issue success/failure reporting
//   - Machine-readable NDJSON results with the --results flag
//   - Credential management in the OS secret store (file fallback)
//   - A doctor command that verifies stored credentials against the API
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	backlog-seeder post <template.toml> [flags]
//	backlog-seeder managekey <space-domain> [flags]
//	backlog-seeder doctor <space-domain> [flags]
//
// Example:
//
//	backlog-seeder managekey example.backlog.com
//	backlog-seeder post sprint-42.toml --results results.ndjson
//
// Exit codes:
//   - 0: Success
//   - 1: General error (template errors, partial posting failures)
//   - 2: Credential/authorization error
//   - 3: Network error
package main
