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
	"errors"
	"strings"
	"testing"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

func testCatalog() *Catalog {
	return &Catalog{
		Project:    Project{ID: 100, ProjectKey: "DEMO", Name: "Demo Project"},
		IssueTypes: map[string]int{"Task": 1, "Bug": 2},
		Priorities: map[string]int{"High": 2, "Normal": 3, "Low": 4},
		Versions:   map[string]int{"v1.0": 10, "Sprint 1": 11},
		Users:      map[string]int{"alice": 501, "bob": 502},
	}
}

func TestCatalogResolve(t *testing.T) {
	catalog := testCatalog()

	req, err := catalog.Resolve(IssueInput{
		Summary:   "Set up CI",
		IssueType: "Task",
		Priority:  "High",
		Milestone: "Sprint 1",
		Version:   "v1.0",
		Assignee:  "alice",
		DueDate:   "2020-01-08T00:00:00Z",
		ParentID:  4000,
	})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	want := CreateIssueRequest{
		ProjectID:     100,
		Summary:       "Set up CI",
		IssueTypeID:   1,
		PriorityID:    2,
		ParentIssueID: 4000,
		DueDate:       "2020-01-08",
		VersionID:     10,
		MilestoneID:   11,
		AssigneeID:    501,
	}
	if req != want {
		t.Errorf("Resolve() = %+v, want %+v", req, want)
	}
}

func TestCatalogResolveMinimal(t *testing.T) {
	catalog := testCatalog()

	req, err := catalog.Resolve(IssueInput{
		Summary:   "Just a task",
		IssueType: "Bug",
		Priority:  "Low",
	})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if req.VersionID != 0 || req.MilestoneID != 0 || req.AssigneeID != 0 {
		t.Errorf("optional ids should stay zero, got %+v", req)
	}
	if req.DueDate != "" {
		t.Errorf("DueDate = %q, want empty", req.DueDate)
	}
}

func TestCatalogResolveUnknownNames(t *testing.T) {
	catalog := testCatalog()

	base := IssueInput{Summary: "x", IssueType: "Task", Priority: "Normal"}

	tests := []struct {
		name   string
		mutate func(*IssueInput)
		want   string
	}{
		{
			name:   "unknown issue type",
			mutate: func(in *IssueInput) { in.IssueType = "Epic" },
			want:   `issue type "Epic" not found`,
		},
		{
			name:   "unknown priority",
			mutate: func(in *IssueInput) { in.Priority = "Urgent" },
			want:   `priority "Urgent" not found`,
		},
		{
			name:   "unknown milestone",
			mutate: func(in *IssueInput) { in.Milestone = "Sprint 99" },
			want:   `milestone "Sprint 99" not found`,
		},
		{
			name:   "unknown version",
			mutate: func(in *IssueInput) { in.Version = "v9.9" },
			want:   `version "v9.9" not found`,
		},
		{
			name:   "unknown assignee",
			mutate: func(in *IssueInput) { in.Assignee = "mallory" },
			want:   `assignee "mallory" not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := catalog.Resolve(in)
			if !errors.Is(err, seedererrors.ErrNameNotFound) {
				t.Fatalf("error = %v, want ErrNameNotFound", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "DEMO") {
				t.Errorf("error %q should name the project", err)
			}
		})
	}
}

func TestWireDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "rfc3339 truncated to date", input: "2020-01-08T15:30:00Z", want: "2020-01-08"},
		{name: "rfc3339 with offset", input: "2020-01-08T00:00:00+09:00", want: "2020-01-08"},
		{name: "date only passes through", input: "2020-01-08", want: "2020-01-08"},
		{name: "garbage rejected", input: "next tuesday", wantErr: true},
		{name: "partial date rejected", input: "2020-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wireDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, seedererrors.ErrInvalidDate) {
					t.Fatalf("error = %v, want ErrInvalidDate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("wireDate(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("wireDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
