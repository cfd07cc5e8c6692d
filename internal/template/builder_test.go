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

package template

import (
	"errors"
	"strings"
	"testing"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

func TestBuildResolvesIssues(t *testing.T) {
	entries := Build(mustParse(t, validTemplate))

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Err != nil {
		t.Fatalf("unexpected build error: %v", e.Err)
	}
	if e.Path != "issues[0]" {
		t.Errorf("Path = %q, want issues[0]", e.Path)
	}
	if got, want := e.Issue.Summary, "Set up CI for alice"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
	if got, want := e.Issue.Description, "Pipeline owned by alice"; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
	if got, want := e.Issue.DueDate, "2020-01-08T00:00:00Z"; got != want {
		t.Errorf("DueDate = %q, want %q", got, want)
	}

	if len(e.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(e.Children))
	}
	c := e.Children[0]
	if c.Err != nil {
		t.Fatalf("unexpected child build error: %v", c.Err)
	}
	if c.Path != "issues[0].children[0]" {
		t.Errorf("child Path = %q, want issues[0].children[0]", c.Path)
	}
	if c.Issue.Summary != "Add lint stage" {
		t.Errorf("child Summary = %q", c.Issue.Summary)
	}
	if c.Issue.DueDate != "" {
		t.Errorf("child DueDate = %q, want empty", c.Issue.DueDate)
	}
}

func TestBuildMissingFieldSkipsOnlyThatIssue(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"

[[issues]]
summary = "first"
issueType = "Task"
priority = "Normal"

[[issues]]
summary = "second"
issueType = "Task"

[[issues]]
summary = "third"
issueType = "Task"
priority = "Normal"
`))

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if entries[0].Err != nil || entries[0].Issue == nil {
		t.Errorf("entries[0] should have built, got err %v", entries[0].Err)
	}
	if !errors.Is(entries[1].Err, seedererrors.ErrMissingField) {
		t.Errorf("entries[1].Err = %v, want ErrMissingField", entries[1].Err)
	}
	if !strings.Contains(entries[1].Err.Error(), "issues[1]") ||
		!strings.Contains(entries[1].Err.Error(), "priority") {
		t.Errorf("error %q should name the entry and the missing key", entries[1].Err)
	}
	if entries[2].Err != nil || entries[2].Issue == nil {
		t.Errorf("entries[2] should have built, got err %v", entries[2].Err)
	}
}

func TestBuildParentFailureSkipsChildren(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"

[[issues]]
summary = "needs {UNDEFINED}"
issueType = "Task"
priority = "Normal"

[[issues.children]]
summary = "child one"
issueType = "Task"
priority = "Normal"

[[issues.children]]
summary = "child two"
issueType = "Task"
priority = "Normal"
`))

	e := entries[0]
	if !errors.Is(e.Err, seedererrors.ErrUnresolvedPlaceholder) {
		t.Fatalf("Err = %v, want ErrUnresolvedPlaceholder", e.Err)
	}
	if !strings.Contains(e.Err.Error(), "UNDEFINED") {
		t.Errorf("error %q should name the placeholder key", e.Err)
	}
	if len(e.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(e.Children))
	}
	for i, c := range e.Children {
		if c.Issue != nil || c.Err != nil {
			t.Errorf("Children[%d] should be skipped, got issue=%v err=%v", i, c.Issue, c.Err)
		}
		if c.Summary == "" {
			t.Errorf("Children[%d] should keep its raw summary for reporting", i)
		}
	}
}

func TestBuildChildFailureIsConfined(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"

[config]
basedate = 2020-01-01T00:00:00Z

[[issues]]
summary = "parent"
issueType = "Task"
priority = "Normal"

[[issues.children]]
summary = "bad child"
issueType = "Task"
priority = "Normal"
dueDate = { sols = 3 }

[[issues.children]]
summary = "good child"
issueType = "Task"
priority = "Normal"
dueDate = { days = -3 }
`))

	e := entries[0]
	if e.Err != nil {
		t.Fatalf("parent should have built, got %v", e.Err)
	}
	if !errors.Is(e.Children[0].Err, seedererrors.ErrInvalidDate) {
		t.Errorf("Children[0].Err = %v, want ErrInvalidDate", e.Children[0].Err)
	}
	if e.Children[1].Err != nil || e.Children[1].Issue == nil {
		t.Fatalf("Children[1] should have built, got err %v", e.Children[1].Err)
	}
	if got, want := e.Children[1].Issue.DueDate, "2019-12-29T00:00:00Z"; got != want {
		t.Errorf("Children[1].DueDate = %q, want %q", got, want)
	}
}

func TestBuildDeltaWithoutBaseDate(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"

[[issues]]
summary = "a"
issueType = "Task"
priority = "Normal"
dueDate = { days = -3 }
`))

	if !errors.Is(entries[0].Err, seedererrors.ErrMissingBaseDate) {
		t.Errorf("Err = %v, want ErrMissingBaseDate", entries[0].Err)
	}
}

func TestBuildAbsoluteDueDateWithoutBaseDate(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"

[[issues]]
summary = "a"
issueType = "Task"
priority = "Normal"
dueDate = "2020-02-02T00:00:00Z"
`))

	if entries[0].Err != nil {
		t.Fatalf("unexpected error: %v", entries[0].Err)
	}
	if got, want := entries[0].Issue.DueDate, "2020-02-02T00:00:00Z"; got != want {
		t.Errorf("DueDate = %q, want %q", got, want)
	}
}

func TestBuildEmptyTemplate(t *testing.T) {
	entries := Build(mustParse(t, `
[target]
SPACE_DOMAIN = "demo.backlog.com"
PROJECT_KEY = "DEMO"
`))

	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}
