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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeSuccess, "SUCCESS"},
		{OutcomeSkipped, "SKIPPED"},
		{OutcomeFailed, "FAILED"},
		{OutcomeUnknown, "UNKNOWN"},
		{Outcome(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.String(), "outcome string should match")
		})
	}
}

func TestReport(t *testing.T) {
	r := NewReport("session-1", "/docs", false)

	r.Add(FileResult{Path: "/docs/a.pdf", Outcome: OutcomeSuccess, DocumentID: "1", Deleted: true})
	r.Add(FileResult{Path: "/docs/b.pdf", Outcome: OutcomeFailed})
	r.Add(FileResult{Path: "/docs/.DS_Store", Outcome: OutcomeSkipped, Reason: "ignored"})
	r.Add(FileResult{Path: "/docs/c.pdf", Outcome: OutcomeSuccess, DocumentID: "2"})
	r.Finish()

	assert.Equal(t, 4, r.Total(), "total should count every result")
	assert.Equal(t, 2, r.Count(OutcomeSuccess), "success count should match")
	assert.Equal(t, 1, r.Count(OutcomeFailed), "failed count should match")
	assert.Equal(t, 1, r.Count(OutcomeSkipped), "skipped count should match")
	assert.Equal(t, 1, r.Deleted(), "deleted count should match")
	assert.GreaterOrEqual(t, int64(r.Duration()), int64(0), "duration should not be negative")

	results := r.Results()
	require.Len(t, results, 4, "results should be returned")
	assert.Equal(t, "/docs/a.pdf", results[0].Path, "order should be preserved")
	assert.Equal(t, "/docs/c.pdf", results[3].Path, "order should be preserved")

	results[0].Path = "mutated"
	assert.Equal(t, "/docs/a.pdf", r.Results()[0].Path, "results should be a copy")
}

func TestReportConcurrentAdd(t *testing.T) {
	r := NewReport("s", "/d", false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(FileResult{Outcome: OutcomeSuccess})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Count(OutcomeSuccess), "every concurrent add should be recorded")
}

func TestTagNames(t *testing.T) {
	res := FileResult{Tags: map[string]string{"zeta": "3", "alpha": "1", "mid": "2"}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, res.TagNames(), "tag names should be sorted")
	assert.Empty(t, FileResult{}.TagNames(), "no tags should give an empty list")
}
