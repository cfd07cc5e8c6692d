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

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirseerhq/backlog-seeder/internal/apierror"
	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
	"github.com/sirseerhq/backlog-seeder/pkg/version"
)

// apiBasePath prefixes every endpoint of the Backlog REST API v2.
const apiBasePath = "/api/v2"

// maxResponseSize caps API response bodies at 1MB. The largest response
// this tool ever reads is a project member list.
const maxResponseSize = 1 << 20

// RESTClient implements the Backlog Client interface using the REST API v2.
// It authenticates every request via the apiKey query parameter and
// applies safety limits on response sizes.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	inspector  apierror.Inspector
}

// NewRESTClient creates a Backlog API client for the space at baseURL,
// e.g. https://demo.backlog.com. timeout bounds each individual request;
// the tool posts issues one at a time, so a run has no overall deadline.
func NewRESTClient(baseURL, apiKey string, timeout time.Duration) *RESTClient {
	// Create optimized transport with connection pooling
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				apiKey: apiKey,
				base:   transport,
			},
		},
		inspector: apierror.NewErrorChainInspector(apierror.NewInspector()),
	}
}

// Myself returns the account that owns the API key.
func (c *RESTClient) Myself(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/myself", &user); err != nil {
		return nil, c.mapError(err, "")
	}
	return &user, nil
}

// ProjectCatalog retrieves the project and the lookup tables needed to
// resolve template names to ids. Versions double as milestones; project
// members are keyed by display name.
func (c *RESTClient) ProjectCatalog(ctx context.Context, projectKey string) (*Catalog, error) {
	catalog := &Catalog{
		IssueTypes: make(map[string]int),
		Priorities: make(map[string]int),
		Versions:   make(map[string]int),
		Users:      make(map[string]int),
	}

	if err := c.get(ctx, "/projects/"+url.PathEscape(projectKey), &catalog.Project); err != nil {
		return nil, c.mapError(err, projectKey)
	}

	var issueTypes []IssueType
	if err := c.get(ctx, fmt.Sprintf("/projects/%d/issueTypes", catalog.Project.ID), &issueTypes); err != nil {
		return nil, c.mapError(err, projectKey)
	}
	for _, it := range issueTypes {
		catalog.IssueTypes[it.Name] = it.ID
	}

	// Priorities are space-wide, not per project.
	var priorities []Priority
	if err := c.get(ctx, "/priorities", &priorities); err != nil {
		return nil, c.mapError(err, projectKey)
	}
	for _, p := range priorities {
		catalog.Priorities[p.Name] = p.ID
	}

	var versions []Version
	if err := c.get(ctx, fmt.Sprintf("/projects/%d/versions", catalog.Project.ID), &versions); err != nil {
		return nil, c.mapError(err, projectKey)
	}
	for _, v := range versions {
		catalog.Versions[v.Name] = v.ID
	}

	var users []User
	if err := c.get(ctx, fmt.Sprintf("/projects/%d/users", catalog.Project.ID), &users); err != nil {
		return nil, c.mapError(err, projectKey)
	}
	for _, u := range users {
		catalog.Users[u.Name] = u.ID
	}

	return catalog, nil
}

// CreateIssue posts one issue as a form-encoded request.
func (c *RESTClient) CreateIssue(ctx context.Context, req CreateIssueRequest) (*Issue, error) {
	form := url.Values{}
	form.Set("projectId", strconv.Itoa(req.ProjectID))
	form.Set("summary", req.Summary)
	form.Set("issueTypeId", strconv.Itoa(req.IssueTypeID))
	form.Set("priorityId", strconv.Itoa(req.PriorityID))
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.ParentIssueID != 0 {
		form.Set("parentIssueId", strconv.Itoa(req.ParentIssueID))
	}
	if req.DueDate != "" {
		form.Set("dueDate", req.DueDate)
	}
	if req.VersionID != 0 {
		form.Set("versionId[]", strconv.Itoa(req.VersionID))
	}
	if req.MilestoneID != 0 {
		form.Set("milestoneId[]", strconv.Itoa(req.MilestoneID))
	}
	if req.AssigneeID != 0 {
		form.Set("assigneeId", strconv.Itoa(req.AssigneeID))
	}

	var issue Issue
	if err := c.postForm(ctx, "/issues", form, &issue); err != nil {
		return nil, c.mapError(err, "")
	}
	return &issue, nil
}

func (c *RESTClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *RESTClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, form, out)
}

// do executes one API request and decodes the JSON response into out.
// Non-2xx responses come back as *APIError.
func (c *RESTClient) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiBasePath+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// mapError maps transport and API errors to domain errors with actionable messages.
// projectKey qualifies not-found errors; it is empty for endpoints that
// cannot miss a project.
func (c *RESTClient) mapError(err error, projectKey string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("backlog API rate limit exceeded. Please wait before retrying: %w", seedererrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("backlog API authentication failed. Run 'backlog-seeder managekey <domain>' to store a valid key: %w", seedererrors.ErrInvalidAPIKey)
	}

	if projectKey != "" && c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("project %q not found. Please check the project key and your access permissions: %w", projectKey, seedererrors.ErrProjectNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to the Backlog API. Please check your connection and the space domain: %w", seedererrors.ErrNetworkFailure)
	}

	// Generic API errors keep their status and message for reporting.
	return err
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	// Calculate how much we can read
	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds the apiKey query parameter and safety limits to API requests.
type authTransport struct {
	apiKey string
	base   http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	// Backlog authenticates via the apiKey query parameter
	q := req.URL.Query()
	q.Set("apiKey", t.apiKey)
	req.URL.RawQuery = q.Encode()

	// Add user agent for identification
	req.Header.Set("User-Agent", fmt.Sprintf("backlog-seeder/%s", version.Version))

	// Execute the request
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseSize,
		}
	}

	return resp, nil
}
