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

package testutil

import (
	"fmt"
	"strings"
)

// TemplateBuilder provides a fluent API for creating issue template TOML
type TemplateBuilder struct {
	domain     string
	projectKey string
	baseDate   string
	replKeys   []string
	replValues map[string]string
	issues     []*issueSpec
}

type issueSpec struct {
	summary     string
	issueType   string
	priority    string
	description string
	milestone   string
	version     string
	assignee    string
	dueDate     string
	dueDays     *int
	children    []*issueSpec
}

// IssueOption configures one issue entry
type IssueOption func(*issueSpec)

// WithDescription sets the issue description
func WithDescription(desc string) IssueOption {
	return func(is *issueSpec) { is.description = desc }
}

// WithMilestone sets the issue milestone name
func WithMilestone(name string) IssueOption {
	return func(is *issueSpec) { is.milestone = name }
}

// WithVersion sets the issue version name
func WithVersion(name string) IssueOption {
	return func(is *issueSpec) { is.version = name }
}

// WithAssignee sets the issue assignee display name
func WithAssignee(name string) IssueOption {
	return func(is *issueSpec) { is.assignee = name }
}

// WithDueDate sets an absolute due date string
func WithDueDate(value string) IssueOption {
	return func(is *issueSpec) { is.dueDate = value }
}

// WithDueDateDays sets a relative due date of the given number of days
func WithDueDateDays(days int) IssueOption {
	return func(is *issueSpec) { is.dueDays = &days }
}

// NewTemplateBuilder creates a builder targeting the given space and project
func NewTemplateBuilder(domain, projectKey string) *TemplateBuilder {
	return &TemplateBuilder{
		domain:     domain,
		projectKey: projectKey,
		replValues: map[string]string{},
	}
}

// WithBaseDate sets config.basedate
func (b *TemplateBuilder) WithBaseDate(date string) *TemplateBuilder {
	b.baseDate = date
	return b
}

// WithRepl adds one placeholder replacement
func (b *TemplateBuilder) WithRepl(key, value string) *TemplateBuilder {
	if _, seen := b.replValues[key]; !seen {
		b.replKeys = append(b.replKeys, key)
	}
	b.replValues[key] = value
	return b
}

// AddIssue appends a top-level issue
func (b *TemplateBuilder) AddIssue(summary, issueType, priority string, opts ...IssueOption) *TemplateBuilder {
	is := &issueSpec{summary: summary, issueType: issueType, priority: priority}
	for _, opt := range opts {
		opt(is)
	}
	b.issues = append(b.issues, is)
	return b
}

// AddChild appends a child to the most recently added issue
func (b *TemplateBuilder) AddChild(summary, issueType, priority string, opts ...IssueOption) *TemplateBuilder {
	if len(b.issues) == 0 {
		panic("testutil: AddChild before AddIssue")
	}
	is := &issueSpec{summary: summary, issueType: issueType, priority: priority}
	for _, opt := range opts {
		opt(is)
	}
	last := b.issues[len(b.issues)-1]
	last.children = append(last.children, is)
	return b
}

// Build renders the template as TOML
func (b *TemplateBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("[target]\n")
	fmt.Fprintf(&sb, "SPACE_DOMAIN = %q\n", b.domain)
	fmt.Fprintf(&sb, "PROJECT_KEY = %q\n", b.projectKey)

	if b.baseDate != "" {
		sb.WriteString("\n[config]\n")
		fmt.Fprintf(&sb, "basedate = %q\n", b.baseDate)
	}
	if len(b.replKeys) > 0 {
		sb.WriteString("\n[config.repl]\n")
		for _, key := range b.replKeys {
			fmt.Fprintf(&sb, "%s = %q\n", key, b.replValues[key])
		}
	}

	for _, is := range b.issues {
		sb.WriteString("\n[[issues]]\n")
		writeIssueFields(&sb, is)
		for _, child := range is.children {
			sb.WriteString("\n[[issues.children]]\n")
			writeIssueFields(&sb, child)
		}
	}

	return sb.String()
}

func writeIssueFields(sb *strings.Builder, is *issueSpec) {
	fmt.Fprintf(sb, "summary = %q\n", is.summary)
	fmt.Fprintf(sb, "issueType = %q\n", is.issueType)
	fmt.Fprintf(sb, "priority = %q\n", is.priority)
	if is.description != "" {
		fmt.Fprintf(sb, "description = %q\n", is.description)
	}
	if is.milestone != "" {
		fmt.Fprintf(sb, "milestone = %q\n", is.milestone)
	}
	if is.version != "" {
		fmt.Fprintf(sb, "version = %q\n", is.version)
	}
	if is.assignee != "" {
		fmt.Fprintf(sb, "assignee = %q\n", is.assignee)
	}
	if is.dueDate != "" {
		fmt.Fprintf(sb, "dueDate = %q\n", is.dueDate)
	}
	if is.dueDays != nil {
		fmt.Fprintf(sb, "dueDate = { days = %d }\n", *is.dueDays)
	}
}

// GenerateLargeTemplate builds a template with the given number of top-level
// issues, each with childrenPer children. Summaries are unique so captured
// POSTs can be matched back to positions.
func GenerateLargeTemplate(issues, childrenPer int) string {
	b := NewTemplateBuilder("demo.backlog.com", "DEMO").WithBaseDate("2020-01-01")

	priorities := []string{"High", "Normal", "Low"}
	for i := 0; i < issues; i++ {
		b.AddIssue(
			fmt.Sprintf("Issue %03d", i),
			"Task",
			priorities[i%len(priorities)],
			WithDueDateDays(i+1),
		)
		for j := 0; j < childrenPer; j++ {
			b.AddChild(fmt.Sprintf("Issue %03d subtask %d", i, j), "Task", "Normal")
		}
	}

	return b.Build()
}
