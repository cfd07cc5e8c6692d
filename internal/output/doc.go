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

// Package output provides utilities for writing per-issue results in NDJSON
// (Newline Delimited JSON) format. Each line is one JSON object describing
// the outcome of a single issue attempt, which makes the stream easy to
// post-process with jq or to load into a spreadsheet.
//
// The primary type is Writer, which provides thread-safe writing of result
// records to an io.Writer or file. Records are flushed line by line, so a
// partial run still leaves a usable results file.
//
// Example usage:
//
//	// Write to a file ("-" selects stdout)
//	w, err := output.Open("results.ndjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	// Write records
//	for _, rec := range records {
//	    if err := w.Write(rec); err != nil {
//	        log.Printf("Failed to write record: %v", err)
//	    }
//	}
//
//	fmt.Printf("Wrote %d records\n", w.Count())
package output
