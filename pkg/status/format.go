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
	"fmt"
	"strings"
)

// FormatSummary formats a one-line run summary
func FormatSummary(r *Report) string {
	parts := []string{
		fmt.Sprintf("%d uploaded", r.Count(OutcomeSuccess)),
		fmt.Sprintf("%d skipped", r.Count(OutcomeSkipped)),
		fmt.Sprintf("%d failed", r.Count(OutcomeFailed)),
	}
	if n := r.Deleted(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", n))
	}
	prefix := ""
	if r.DryRun {
		prefix = "dry run: "
	}
	return prefix + strings.Join(parts, ", ")
}
