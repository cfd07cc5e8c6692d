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

package backlog

import "context"

// Client defines the interface for interacting with the Backlog API.
// This interface allows for easy mocking in tests.
type Client interface {
	// Myself returns the account that owns the API key. Used to verify
	// that a credential is valid and the space is reachable.
	Myself(ctx context.Context) (*User, error)

	// ProjectCatalog retrieves the project identified by projectKey
	// together with its name lookup tables: issue types, priorities,
	// versions (which double as milestones) and project members.
	ProjectCatalog(ctx context.Context, projectKey string) (*Catalog, error)

	// CreateIssue posts one issue and returns it with its
	// server-assigned id and issue key.
	CreateIssue(ctx context.Context, req CreateIssueRequest) (*Issue, error)
}

// SpaceURL returns the API base URL for a Backlog space domain.
func SpaceURL(domain string) string {
	return "https://" + domain
}
