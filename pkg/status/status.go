// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"sort"
	"sync"
	"time"
)

// 📊 Outcome is the terminal state of one file
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess         // uploaded and confirmed
	OutcomeSkipped         // ignored by pattern or dry run
	OutcomeFailed          // upload failed or the file step panicked
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeSkipped:
		return "SKIPPED"
	case OutcomeFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// 📄 FileResult records what happened to one file
type FileResult struct {
	Path       string            // path as found in the directory
	FinalPath  string            // path after a rename, equal to Path otherwise
	Outcome    Outcome           // terminal state
	DocumentID string            // id returned by the service
	Tags       map[string]string // resolved tag name to id
	Renamed    bool              // file was moved to FinalPath
	Deleted    bool              // local file was removed after upload
	Reason     string            // why a file was skipped
	Warnings   []string          // non-fatal problems (rename or delete failures)
	Err        error             // upload failure or recovered panic
}

// TagNames returns the resolved tag names sorted
func (r FileResult) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for name := range r.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 📋 Report collects the results of one import run in processing order
type Report struct {
	SessionID string
	Dir       string
	DryRun    bool
	Started   time.Time
	Finished  time.Time

	mu      sync.RWMutex
	results []FileResult
}

// 🏭 NewReport starts a report for dir
func NewReport(sessionID, dir string, dryRun bool) *Report {
	return &Report{
		SessionID: sessionID,
		Dir:       dir,
		DryRun:    dryRun,
		Started:   time.Now(),
	}
}

// Add appends a result
func (r *Report) Add(res FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Finish stamps the end time
func (r *Report) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Finished = time.Now()
}

// Results returns a copy of all results
func (r *Report) Results() []FileResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FileResult, len(r.results))
	copy(out, r.results)
	return out
}

// Count returns how many files ended in outcome
func (r *Report) Count(outcome Outcome) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, res := range r.results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Total returns the number of recorded files
func (r *Report) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.results)
}

// Deleted returns how many local files were removed
func (r *Report) Deleted() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, res := range r.results {
		if res.Deleted {
			n++
		}
	}
	return n
}

// Duration returns the run time, or the time so far while unfinished
func (r *Report) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Finished.IsZero() {
		return time.Since(r.Started)
	}
	return r.Finished.Sub(r.Started)
}
