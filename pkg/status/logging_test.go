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
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFormatResultRow(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		res  FileResult
		want string
	}{
		{
			name: "success_with_tags",
			res: FileResult{
				Path:       "/d/a.pdf",
				FinalPath:  "/d/a.pdf",
				Outcome:    OutcomeSuccess,
				DocumentID: "12",
				Tags:       map[string]string{"home": "2", "bills": "1"},
			},
			want: fmt.Sprintf("    ✓ %-40s %-9s %-12s %s", "a.pdf", "SUCCESS", "12", "bills,home"),
		},
		{
			name: "renamed",
			res: FileResult{
				Path:       "/d/invoice_2023-03-05_final.pdf",
				FinalPath:  "/d/2023-03-05 - Invoice.pdf",
				Outcome:    OutcomeSuccess,
				DocumentID: "7",
				Renamed:    true,
			},
			want: fmt.Sprintf("    ✓ %-40s %-9s %s", "invoice_2023-03-05_final.pdf → 2023-03-05 - Invoice.pdf", "SUCCESS", "7"),
		},
		{
			name: "skipped",
			res:  FileResult{Path: "/d/.DS_Store", Outcome: OutcomeSkipped},
			want: fmt.Sprintf("    - %-40s %s", ".DS_Store", "SKIPPED"),
		},
		{
			name: "failed",
			res:  FileResult{Path: "/d/b.pdf", FinalPath: "/d/b.pdf", Outcome: OutcomeFailed},
			want: fmt.Sprintf("    ✗ %-40s %s", "b.pdf", "FAILED"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResultRow(tt.res), "row should match")
		})
	}
}
