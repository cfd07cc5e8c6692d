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

// Package report provides functionality for accumulating and rendering the
// outcome of a posting run. It records what happened to every issue in the
// template (created, failed, or skipped because its parent failed), counts
// API calls, and renders the result as a human-readable table.
//
// The report serves several purposes:
//   - Gives an at-a-glance view of which issues made it into the project
//   - Keeps failure details next to the issue they belong to
//   - Records API usage and elapsed time for troubleshooting
//
// Tables render to stderr so stdout stays reserved for the machine-readable
// results stream.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sirseerhq/backlog-seeder/internal/output"
)

// Recorder collects per-issue outcomes during a posting run. Create a new
// recorder at the start of the run and call its methods as issues are
// attempted; render the table once the run is over.
type Recorder struct {
	startTime time.Time
	apiCalls  int
	records   []output.Record
}

// New creates a new recorder and initializes it with the current time.
// Call this at the beginning of a posting run to start tracking.
func New() *Recorder {
	return &Recorder{
		startTime: time.Now(),
	}
}

// Record adds the outcome of a single issue attempt. Records are kept in
// the order they arrive, which for a posting run is template order.
func (r *Recorder) Record(rec output.Record) {
	r.records = append(r.records, rec)
}

// IncrementAPICall records that an API call was made. Call this after each
// Backlog API request to maintain accurate usage statistics.
func (r *Recorder) IncrementAPICall() {
	r.apiCalls++
}

// Records returns the recorded outcomes in arrival order.
func (r *Recorder) Records() []output.Record {
	return r.records
}

// Summary aggregates the recorded outcomes into run statistics.
func (r *Recorder) Summary() Summary {
	s := Summary{
		Total:    len(r.records),
		APICalls: r.apiCalls,
		Elapsed:  time.Since(r.startTime),
	}
	for _, rec := range r.records {
		switch rec.Status {
		case output.StatusCreated:
			s.Created++
		case output.StatusFailed:
			s.Failed++
		case output.StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// RenderTable writes the per-issue outcome table followed by a summary line
// to w. The table has one row per attempted issue in template order.
func (r *Recorder) RenderTable(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Index", "Summary", "Key", "Status", "Error"})
	for _, rec := range r.records {
		tw.AppendRow(table.Row{rec.Index, rec.Summary, rec.IssueKey, rec.Status, rec.Error})
	}
	tw.Render()

	s := r.Summary()
	fmt.Fprintf(w, "%d created, %d failed, %d skipped in %s (%d api calls)\n",
		s.Created, s.Failed, s.Skipped, s.Elapsed.Round(time.Millisecond), s.APICalls)
}

// RenderChecks writes doctor verification results as a PASS/FAIL table to w.
func RenderChecks(w io.Writer, checks []Check) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Check", "Status", "Detail"})
	for _, c := range checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		tw.AppendRow(table.Row{c.Name, status, c.Detail})
	}
	tw.Render()
}
