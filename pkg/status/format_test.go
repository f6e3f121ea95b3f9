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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSummary(t *testing.T) {
	r := NewReport("s", "/d", false)
	r.Add(FileResult{Outcome: OutcomeSuccess, Deleted: true})
	r.Add(FileResult{Outcome: OutcomeSuccess})
	r.Add(FileResult{Outcome: OutcomeFailed})
	assert.Equal(t, "2 uploaded, 0 skipped, 1 failed, 1 deleted", FormatSummary(r), "summary should match")

	dry := NewReport("s", "/d", true)
	dry.Add(FileResult{Outcome: OutcomeSkipped})
	assert.Equal(t, "dry run: 0 uploaded, 1 skipped, 0 failed", FormatSummary(dry), "dry run summary should match")
}
