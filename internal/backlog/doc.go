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

// Package backlog provides a client for the Backlog REST API v2, scoped
// to what seeding a project needs: verifying a credential, loading a
// project's name lookup tables, and creating issues.
//
// The package includes:
//   - A Client interface for the API operations the tool performs
//   - A REST implementation authenticating via the apiKey query parameter
//   - A Catalog that resolves template names (issue type, priority,
//     version, milestone, assignee) to Backlog ids
//   - Mock client for testing
//
// Basic usage:
//
//	client := backlog.NewRESTClient("https://demo.backlog.com", "your-api-key", 30*time.Second)
//	catalog, err := client.ProjectCatalog(ctx, "DEMO")
//	if err != nil {
//	    // Handle error
//	}
//	req, err := catalog.Resolve(backlog.IssueInput{
//	    Summary:   "Set up CI",
//	    IssueType: "Task",
//	    Priority:  "Normal",
//	})
//	if err != nil {
//	    // Handle error
//	}
//	issue, err := client.CreateIssue(ctx, req)
package backlog
