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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// User is a Backlog user account.
type User struct {
	ID          int    `json:"id"`
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	MailAddress string `json:"mailAddress"`
}

// Project is a Backlog project.
type Project struct {
	ID         int    `json:"id"`
	ProjectKey string `json:"projectKey"`
	Name       string `json:"name"`
}

// IssueType is one entry of a project's issue type list.
type IssueType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Priority is one entry of the space-wide priority list.
type Priority struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Version is one entry of a project's version/milestone list. Backlog
// serves both from the same endpoint.
type Version struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Issue is the subset of a created issue the tool reports on.
type Issue struct {
	ID       int    `json:"id"`
	IssueKey string `json:"issueKey"`
	Summary  string `json:"summary"`
}

// CreateIssueRequest carries the resolved ids for one issue POST.
// Zero-valued optional fields are omitted from the request.
type CreateIssueRequest struct {
	ProjectID     int
	Summary       string
	IssueTypeID   int
	PriorityID    int
	Description   string
	ParentIssueID int    // 0 means top-level
	DueDate       string // yyyy-MM-dd
	VersionID     int
	MilestoneID   int
	AssigneeID    int
}

// apiErrorBody is the error response shape of the Backlog API.
type apiErrorBody struct {
	Errors []struct {
		Message  string `json:"message"`
		Code     int    `json:"code"`
		MoreInfo string `json:"moreInfo"`
	} `json:"errors"`
}

// APIError is a non-2xx response from the Backlog API.
type APIError struct {
	StatusCode int
	Messages   []string
}

// newAPIError builds an APIError from a response status and body,
// extracting Backlog's error messages when the body carries them.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, e := range parsed.Errors {
			if e.Message != "" {
				apiErr.Messages = append(apiErr.Messages, e.Message)
			}
		}
	}
	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("backlog api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backlog api error: status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// IsAuthError reports whether the response was an auth failure. It
// feeds the apierror chain inspector.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFoundError reports whether the requested resource was missing.
func (e *APIError) IsNotFoundError() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsRateLimitError reports whether the request was rate limited.
func (e *APIError) IsRateLimitError() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
