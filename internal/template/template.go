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
	"os"
	"time"

	"github.com/BurntSushi/toml"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// Template is a parsed issue template.
type Template struct {
	Target Target  `toml:"target"`
	Config Config  `toml:"config"`
	Issues []Issue `toml:"issues"`

	// baseDate is Config.BaseDate validated and normalized by Parse.
	// Nil when the template sets no base date.
	baseDate *time.Time
}

// Target identifies the Backlog space and project the template posts into.
type Target struct {
	SpaceDomain string `toml:"SPACE_DOMAIN"`
	ProjectKey  string `toml:"PROJECT_KEY"`
}

// Config carries run-wide template settings: the base date that anchors
// relative due dates and the replacement map for {KEY} placeholders.
type Config struct {
	BaseDate DateValue         `toml:"basedate"`
	Repl     map[string]string `toml:"repl"`
}

// Issue is a single issue entry in a template. Summary, issue type and
// priority are mandatory; everything else is optional. Children are
// posted after their parent with a parent link and cannot carry
// children of their own.
type Issue struct {
	Summary     string    `toml:"summary"`
	IssueType   string    `toml:"issueType"`
	Priority    string    `toml:"priority"`
	Description string    `toml:"description"`
	Milestone   string    `toml:"milestone"`
	Version     string    `toml:"version"`
	DueDate     DateValue `toml:"dueDate"`
	Assignee    string    `toml:"assignee"`
	Children    []Issue   `toml:"children"`
}

// ParseFile reads and parses the template at path.
func ParseFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(data)
}

// Parse parses TOML template data and validates its structure. Per-issue
// problems (placeholders, dates, missing fields) are not detected here;
// they surface from Build so that one bad issue does not fail the rest.
func Parse(data []byte) (*Template, error) {
	var t Template
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %v: %w", err, seedererrors.ErrInvalidTemplate)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in template: %w", undecoded[0].String(), seedererrors.ErrInvalidTemplate)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	base, err := resolveBase(t.Config.BaseDate)
	if err != nil {
		return nil, err
	}
	t.baseDate = base
	return &t, nil
}

// BaseDate returns the validated base date, or nil if the template does
// not set one.
func (t *Template) BaseDate() *time.Time {
	return t.baseDate
}

func (t *Template) validate() error {
	if t.Target.SpaceDomain == "" {
		return fmt.Errorf("target.SPACE_DOMAIN is required: %w", seedererrors.ErrInvalidTemplate)
	}
	if t.Target.ProjectKey == "" {
		return fmt.Errorf("target.PROJECT_KEY is required: %w", seedererrors.ErrInvalidTemplate)
	}
	for i := range t.Issues {
		for j := range t.Issues[i].Children {
			if len(t.Issues[i].Children[j].Children) > 0 {
				return fmt.Errorf("issues[%d].children[%d]: children of child issues are not supported: %w",
					i, j, seedererrors.ErrInvalidTemplate)
			}
		}
	}
	return nil
}
