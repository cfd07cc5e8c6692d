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

// Package testutil provides common test helpers for backlog-seeder
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// TestAPIKey is the key mock spaces expect by default.
const TestAPIKey = "test-key"

// MockSpace is an in-process Backlog space for integration tests. It serves
// the project catalog endpoints the seeder reads and captures every issue
// POST so tests can assert on order, parent links and form fields.
type MockSpace struct {
	*httptest.Server

	// WantAPIKey rejects requests carrying a different apiKey query
	// parameter with 401. Empty disables the check.
	WantAPIKey string

	// FailCreateOn makes the nth issue POST (1-based) fail with FailStatus
	// (500 when unset). Zero disables it.
	FailCreateOn int
	FailStatus   int

	ProjectKey string
	ProjectID  int

	mu           sync.Mutex
	requestCount int32
	createSeen   int
	nextID       int
	created      []CreatedIssue
}

// CreatedIssue is one captured issue POST: the form the client sent and the
// id and key the space assigned.
type CreatedIssue struct {
	Form     url.Values
	ID       int
	IssueKey string
}

// NewMockSpace creates a space with one project (DEMO, id 100), the Task and
// Bug issue types, three priorities, two versions and two users. The apiKey
// check is enabled with TestAPIKey.
func NewMockSpace(t *testing.T) *MockSpace {
	t.Helper()

	space := &MockSpace{
		WantAPIKey: TestAPIKey,
		ProjectKey: "DEMO",
		ProjectID:  100,
		nextID:     1000,
	}
	space.Server = httptest.NewServer(http.HandlerFunc(space.handle))
	t.Cleanup(space.Close)
	return space
}

// NewErrorSpace creates a space that answers every request with the given
// status code and a Backlog-style error body.
func NewErrorSpace(t *testing.T, statusCode int) *MockSpace {
	t.Helper()

	space := &MockSpace{}
	space.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&space.requestCount, 1)
		writeAPIError(w, statusCode, http.StatusText(statusCode))
	}))
	t.Cleanup(space.Close)
	return space
}

// Requests returns the total number of requests the space has served.
func (s *MockSpace) Requests() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// CreateAttempts returns how many issue POSTs were received, including
// failed ones.
func (s *MockSpace) CreateAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createSeen
}

// CreatedIssues returns the successfully created issues in POST order.
func (s *MockSpace) CreatedIssues() []CreatedIssue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CreatedIssue(nil), s.created...)
}

func (s *MockSpace) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.requestCount, 1)

	if s.WantAPIKey != "" && r.URL.Query().Get("apiKey") != s.WantAPIKey {
		writeAPIError(w, http.StatusUnauthorized, "Authentication failure.")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v2")
	switch {
	case path == "/users/myself":
		writeJSON(w, map[string]any{
			"id": 1, "userId": "admin", "name": "Admin", "mailAddress": "admin@example.com",
		})
	case path == "/priorities":
		writeJSON(w, []map[string]any{
			{"id": 2, "name": "High"},
			{"id": 3, "name": "Normal"},
			{"id": 4, "name": "Low"},
		})
	case path == "/issues" && r.Method == http.MethodPost:
		s.createIssue(w, r)
	case strings.HasPrefix(path, "/projects/"):
		s.serveProject(w, strings.TrimPrefix(path, "/projects/"))
	default:
		writeAPIError(w, http.StatusNotFound, "No such resource.")
	}
}

func (s *MockSpace) serveProject(w http.ResponseWriter, rest string) {
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] != s.ProjectKey && parts[0] != strconv.Itoa(s.ProjectID) {
		writeAPIError(w, http.StatusNotFound, "No project.")
		return
	}

	if len(parts) == 1 {
		writeJSON(w, map[string]any{
			"id": s.ProjectID, "projectKey": s.ProjectKey, "name": "Demo Project",
		})
		return
	}

	switch parts[1] {
	case "issueTypes":
		writeJSON(w, []map[string]any{
			{"id": 1, "name": "Task"},
			{"id": 2, "name": "Bug"},
		})
	case "versions":
		writeJSON(w, []map[string]any{
			{"id": 10, "name": "v1.0"},
			{"id": 11, "name": "Sprint 1"},
		})
	case "users":
		writeJSON(w, []map[string]any{
			{"id": 501, "userId": "alice", "name": "alice", "mailAddress": "alice@example.com"},
			{"id": 502, "userId": "bob", "name": "bob", "mailAddress": "bob@example.com"},
		})
	default:
		writeAPIError(w, http.StatusNotFound, "No such resource.")
	}
}

func (s *MockSpace) createIssue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAPIError(w, http.StatusBadRequest, "Malformed form body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.createSeen++
	if s.FailCreateOn != 0 && s.createSeen == s.FailCreateOn {
		status := s.FailStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		writeAPIError(w, status, "Simulated create failure.")
		return
	}

	// PostForm holds only body fields, so the captured form never carries
	// the apiKey query parameter.
	form := url.Values{}
	for k, v := range r.PostForm {
		form[k] = append([]string(nil), v...)
	}

	s.nextID++
	created := CreatedIssue{
		Form:     form,
		ID:       s.nextID,
		IssueKey: fmt.Sprintf("%s-%d", s.ProjectKey, s.nextID),
	}
	s.created = append(s.created, created)

	writeJSON(w, map[string]any{
		"id":       created.ID,
		"issueKey": created.IssueKey,
		"summary":  form.Get("summary"),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]any{
			{"message": message, "code": 0, "moreInfo": ""},
		},
	})
}
