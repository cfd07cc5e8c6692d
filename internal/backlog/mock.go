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
	"fmt"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// MockClient is a mock implementation of the Backlog Client interface for testing.
type MockClient struct {
	// Catalog to return from ProjectCatalog
	Catalog *Catalog

	// Error to return from any call
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// FailCreateOn makes the nth CreateIssue call (1-based) fail with
	// CreateError. Zero disables it.
	FailCreateOn int
	CreateError  error

	// Track calls for verification
	MyselfCalls    int
	CatalogCalls   int
	CreateCalls    int
	LastProjectKey string
	CreatedIssues  []CreateIssueRequest

	nextID int
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Catalog: generateTestCatalog(),
		nextID:  1000,
	}
}

// Myself implements the Client interface
func (m *MockClient) Myself(ctx context.Context) (*User, error) {
	m.MyselfCalls++

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.commonFailure(); err != nil {
		return nil, err
	}

	return &User{ID: 1, UserID: "admin", Name: "Admin", MailAddress: "admin@example.com"}, nil
}

// ProjectCatalog implements the Client interface
func (m *MockClient) ProjectCatalog(ctx context.Context, projectKey string) (*Catalog, error) {
	m.CatalogCalls++
	m.LastProjectKey = projectKey

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.commonFailure(); err != nil {
		return nil, err
	}
	if m.ShouldFailNotFound || projectKey == "NOSUCH" {
		return nil, fmt.Errorf("project %q not found: %w", projectKey, seedererrors.ErrProjectNotFound)
	}

	return m.Catalog, nil
}

// CreateIssue implements the Client interface
func (m *MockClient) CreateIssue(ctx context.Context, req CreateIssueRequest) (*Issue, error) {
	m.CreateCalls++

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.commonFailure(); err != nil {
		return nil, err
	}
	if m.FailCreateOn != 0 && m.CreateCalls == m.FailCreateOn {
		if m.CreateError != nil {
			return nil, m.CreateError
		}
		return nil, &APIError{StatusCode: 400, Messages: []string{"mock create failure"}}
	}

	m.CreatedIssues = append(m.CreatedIssues, req)
	m.nextID++
	return &Issue{
		ID:       m.nextID,
		IssueKey: fmt.Sprintf("%s-%d", m.Catalog.Project.ProjectKey, m.nextID),
		Summary:  req.Summary,
	}, nil
}

// commonFailure simulates the error conditions shared by all calls.
func (m *MockClient) commonFailure() error {
	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", seedererrors.ErrInvalidAPIKey)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", seedererrors.ErrNetworkFailure)
	}
	return m.Error
}

// generateTestCatalog creates sample project data for testing
func generateTestCatalog() *Catalog {
	return &Catalog{
		Project: Project{ID: 100, ProjectKey: "DEMO", Name: "Demo Project"},
		IssueTypes: map[string]int{
			"Task": 1,
			"Bug":  2,
		},
		Priorities: map[string]int{
			"High":   2,
			"Normal": 3,
			"Low":    4,
		},
		Versions: map[string]int{
			"v1.0":     10,
			"Sprint 1": 11,
		},
		Users: map[string]int{
			"alice": 501,
			"bob":   502,
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithCatalog sets the catalog returned by ProjectCatalog
func WithCatalog(catalog *Catalog) MockClientOption {
	return func(m *MockClient) {
		m.Catalog = catalog
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// WithCreateFailureOn makes the nth CreateIssue call fail with err
func WithCreateFailureOn(n int, err error) MockClientOption {
	return func(m *MockClient) {
		m.FailCreateOn = n
		m.CreateError = err
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
