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
	"fmt"
	"time"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// Catalog bundles a project with the name lookup tables needed to turn
// template names into the ids the issues endpoint expects.
type Catalog struct {
	Project    Project
	IssueTypes map[string]int
	Priorities map[string]int
	Versions   map[string]int // serves both version and milestone fields
	Users      map[string]int // keyed by display name
}

// IssueInput is one issue with names not yet resolved against a project.
type IssueInput struct {
	Summary     string
	IssueType   string
	Priority    string
	Description string
	Milestone   string
	Version     string
	Assignee    string
	DueDate     string // RFC-3339 or yyyy-MM-dd
	ParentID    int    // 0 means top-level
}

// Resolve maps every name in the input through the catalog and returns
// a request ready to post. A name with no entry in the project fails
// with ErrNameNotFound, naming the field and the value.
func (c *Catalog) Resolve(in IssueInput) (CreateIssueRequest, error) {
	req := CreateIssueRequest{
		ProjectID:     c.Project.ID,
		Summary:       in.Summary,
		Description:   in.Description,
		ParentIssueID: in.ParentID,
	}

	var ok bool
	if req.IssueTypeID, ok = c.IssueTypes[in.IssueType]; !ok {
		return req, c.nameError("issue type", in.IssueType)
	}
	if req.PriorityID, ok = c.Priorities[in.Priority]; !ok {
		return req, c.nameError("priority", in.Priority)
	}
	if in.Version != "" {
		if req.VersionID, ok = c.Versions[in.Version]; !ok {
			return req, c.nameError("version", in.Version)
		}
	}
	if in.Milestone != "" {
		if req.MilestoneID, ok = c.Versions[in.Milestone]; !ok {
			return req, c.nameError("milestone", in.Milestone)
		}
	}
	if in.Assignee != "" {
		if req.AssigneeID, ok = c.Users[in.Assignee]; !ok {
			return req, c.nameError("assignee", in.Assignee)
		}
	}
	if in.DueDate != "" {
		due, err := wireDate(in.DueDate)
		if err != nil {
			return req, err
		}
		req.DueDate = due
	}
	return req, nil
}

func (c *Catalog) nameError(field, value string) error {
	return fmt.Errorf("%s %q not found in project %s: %w",
		field, value, c.Project.ProjectKey, seedererrors.ErrNameNotFound)
}

// wireDate normalizes a resolved date string to the yyyy-MM-dd form the
// issues endpoint expects.
func wireDate(s string) (string, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", s); err == nil {
		return s, nil
	}
	return "", fmt.Errorf("%q is not a recognized timestamp: %w", s, seedererrors.ErrInvalidDate)
}
