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
	"fmt"
	"time"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// ResolvedIssue is one issue with all placeholders and dates resolved,
// ready to be posted. DueDate is an RFC-3339 or yyyy-MM-dd string, empty
// when the issue has none.
type ResolvedIssue struct {
	Path        string
	Summary     string
	IssueType   string
	Priority    string
	Description string
	Milestone   string
	Version     string
	Assignee    string
	DueDate     string
}

// ChildEntry pairs one child issue with its build outcome. When the
// parent build failed, both Issue and Err are nil: the child was never
// attempted.
type ChildEntry struct {
	Path    string
	Summary string
	Issue   *ResolvedIssue
	Err     error
}

// Entry pairs one top-level template issue with its build outcome.
// Summary holds the raw template summary so failed entries can still be
// located in reports.
type Entry struct {
	Path     string
	Summary  string
	Issue    *ResolvedIssue
	Err      error
	Children []ChildEntry
}

// Build resolves every issue in the template, in declaration order. A
// failure in one top-level issue skips that issue and its children but
// never the entries after it; a failure in a child is confined to that
// child.
func Build(t *Template) []Entry {
	entries := make([]Entry, 0, len(t.Issues))
	for i := range t.Issues {
		entries = append(entries, buildEntry(&t.Issues[i], i, t.Config.Repl, t.baseDate))
	}
	return entries
}

func buildEntry(is *Issue, idx int, repl map[string]string, base *time.Time) Entry {
	path := fmt.Sprintf("issues[%d]", idx)
	e := Entry{Path: path, Summary: is.Summary}

	resolved, err := buildIssue(is, path, repl, base)
	if err != nil {
		e.Err = err
		// Children are skipped, not failed. Record them so reports can
		// account for every template entry.
		for j := range is.Children {
			e.Children = append(e.Children, ChildEntry{
				Path:    childPath(path, j),
				Summary: is.Children[j].Summary,
			})
		}
		return e
	}
	e.Issue = resolved

	for j := range is.Children {
		ce := ChildEntry{Path: childPath(path, j), Summary: is.Children[j].Summary}
		child, err := buildIssue(&is.Children[j], ce.Path, repl, base)
		if err != nil {
			ce.Err = err
		} else {
			ce.Issue = child
		}
		e.Children = append(e.Children, ce)
	}
	return e
}

func childPath(parent string, idx int) string {
	return fmt.Sprintf("%s.children[%d]", parent, idx)
}

// buildIssue validates mandatory fields, then resolves placeholders and
// the due date for a single issue.
func buildIssue(is *Issue, path string, repl map[string]string, base *time.Time) (*ResolvedIssue, error) {
	for _, f := range []struct {
		name, value string
	}{
		{"summary", is.Summary},
		{"issueType", is.IssueType},
		{"priority", is.Priority},
	} {
		if f.value == "" {
			return nil, fmt.Errorf("%s: missing required key %q: %w", path, f.name, seedererrors.ErrMissingField)
		}
	}

	out := &ResolvedIssue{Path: path}
	for _, f := range []struct {
		name string
		src  string
		dst  *string
	}{
		{"summary", is.Summary, &out.Summary},
		{"issueType", is.IssueType, &out.IssueType},
		{"priority", is.Priority, &out.Priority},
		{"description", is.Description, &out.Description},
		{"milestone", is.Milestone, &out.Milestone},
		{"version", is.Version, &out.Version},
		{"assignee", is.Assignee, &out.Assignee},
	} {
		resolved, err := Resolve(f.src, repl)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, f.name, err)
		}
		*f.dst = resolved
	}

	due, err := resolveDueDate(is.DueDate, repl, base)
	if err != nil {
		return nil, fmt.Errorf("%s.dueDate: %w", path, err)
	}
	out.DueDate = due
	return out, nil
}
