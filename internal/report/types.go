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

// Package report types define the structures used for summarizing a posting
// run or a doctor probe. These types capture what happened to each issue so
// the run can be reviewed after the fact.
package report

import "time"

// Summary contains the aggregate statistics of a completed posting run.
// It counts outcomes per status and tracks API usage and elapsed time,
// which is what operators look at first when a run misbehaves.
type Summary struct {
	Total    int
	Created  int
	Failed   int
	Skipped  int
	APICalls int
	Elapsed  time.Duration
}

// Check is a single doctor verification step. Passed decides the PASS/FAIL
// column; Detail carries the evidence (the authenticated user, the error
// message, the store backend).
type Check struct {
	Name   string
	Passed bool
	Detail string
}
