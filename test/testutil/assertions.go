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
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// ResultRecord is one parsed line of a results stream
type ResultRecord struct {
	Index          string `json:"index"`
	Summary        string `json:"summary"`
	IssueKey       string `json:"issueKey"`
	ID             int    `json:"id"`
	ParentIssueKey string `json:"parentIssueKey"`
	Status         string `json:"status"`
	Error          string `json:"error"`
}

// ReadResults parses an NDJSON results file into records, in file order
func ReadResults(t *testing.T, path string) []ResultRecord {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open results file: %v", err)
	}
	defer file.Close()

	var records []ResultRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var rec ResultRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("Line %d: invalid JSON: %v", len(records)+1, err)
		}
		if rec.Index == "" || rec.Status == "" {
			t.Errorf("Line %d: missing index or status: %s", len(records)+1, line)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("Error reading results file: %v", err)
	}

	return records
}

// AssertResultStatuses checks the status column of a results file, in order
func AssertResultStatuses(t *testing.T, path string, want ...string) {
	t.Helper()

	records := ReadResults(t, path)
	if len(records) != len(want) {
		t.Fatalf("Expected %d result records, got %d", len(want), len(records))
	}
	for i, rec := range records {
		if rec.Status != want[i] {
			t.Errorf("Record %d (%s): status %q, want %q", i, rec.Index, rec.Status, want[i])
		}
	}
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}
