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
	"regexp"

	seedererrors "github.com/sirseerhq/backlog-seeder/internal/errors"
)

// placeholderPattern matches a {KEY} span. Key characters are limited to
// ASCII letters, digits and underscore; anything else between braces is
// left untouched so literal braces survive resolution.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Resolve replaces every {KEY} span in s with its value from repl.
// Replacement is a single pass: values substituted in are not scanned
// again. A key with no entry in repl fails with ErrUnresolvedPlaceholder
// naming that key.
func Resolve(s string, repl map[string]string) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := m[1 : len(m)-1]
		val, ok := repl[key]
		if !ok {
			if missing == "" {
				missing = key
			}
			return m
		}
		return val
	})
	if missing != "" {
		return "", fmt.Errorf("no replacement for {%s}: %w", missing, seedererrors.ErrUnresolvedPlaceholder)
	}
	return out, nil
}
