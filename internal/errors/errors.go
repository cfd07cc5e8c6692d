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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidAPIKey indicates Backlog rejected the API key.
	// Maps to exit code 2.
	ErrInvalidAPIKey = errors.New("invalid backlog api key")

	// ErrCredentialNotFound indicates no API key is stored for the requested space domain.
	// Maps to exit code 2.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrProjectNotFound indicates the specified project does not exist or is not accessible.
	// Maps to exit code 2.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates the Backlog API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("backlog rate limit exceeded")

	// ErrInvalidTemplate indicates the template file could not be parsed:
	// malformed TOML, unknown keys, a missing [target] section, or issues
	// nested more than one level deep.
	// Maps to exit code 1.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrUnresolvedPlaceholder indicates a {KEY} placeholder has no entry
	// in the template's replacement map.
	// Maps to exit code 1.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")

	// ErrMissingBaseDate indicates a relative due date was used without
	// config.basedate set in the template.
	// Maps to exit code 1.
	ErrMissingBaseDate = errors.New("missing base date")

	// ErrInvalidDate indicates a due date that is neither an absolute
	// timestamp nor a well-formed time delta.
	// Maps to exit code 1.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMissingField indicates an issue entry is missing one of the
	// mandatory keys: summary, issueType or priority.
	// Maps to exit code 1.
	ErrMissingField = errors.New("missing required field")

	// ErrNameNotFound indicates an issue type, priority, version, milestone
	// or assignee name does not exist in the target project.
	// Maps to exit code 1.
	ErrNameNotFound = errors.New("name not found in project")

	// ErrIssuesFailed indicates one or more issues could not be posted.
	// Maps to exit code 1.
	ErrIssuesFailed = errors.New("some issues failed")
)
