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

package datename

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{
			name:     "year_month_day_embedded",
			fileName: "invoice_2023-03-05_final.pdf",
			want:     "2023-03-05",
		},
		{
			name:     "year_month_day_with_directory",
			fileName: "/scans/inbox/report 2021-11-30.txt",
			want:     "2021-11-30",
		},
		{
			name:     "day_month_year_unambiguous",
			fileName: "scan 25.12.2022.jpg",
			want:     "2022-12-25",
		},
		{
			name:     "ambiguous_prefers_day_first",
			fileName: "letter_03-05-2023.pdf",
			want:     "2023-05-03",
		},
		{
			name:     "month_day_year_when_day_first_impossible",
			fileName: "receipt 12-25-2022.pdf",
			want:     "2022-12-25",
		},
		{
			name:     "invalid_calendar_day_falls_through_to_next_match",
			fileName: "31-02-2023_and_15-06-2023.pdf",
			want:     "2023-06-15",
		},
		{
			name:     "invalid_calendar_day_without_alternative",
			fileName: "2023-02-30 notes.md",
			want:     "2023-02-30-notes",
		},
		{
			name:     "no_date_returns_normalized_stem",
			fileName: "holiday photo_final.JPG",
			want:     "holiday-photo-final",
		},
		{
			name:     "compact_date_is_not_a_variant",
			fileName: "scan20230305.pdf",
			want:     "scan20230305",
		},
		{
			name:     "date_glued_to_letters",
			fileName: "scan2023-03-05.pdf",
			want:     "2023-03-05",
		},
		{
			name:     "date_followed_by_time",
			fileName: "2023-03-05T1030.pdf",
			want:     "2023-03-05",
		},
		{
			name:     "longer_digit_run_is_not_a_year",
			fileName: "id12023-03-05.pdf",
			want:     "id12023-03-05",
		},
		{
			name:     "adjacent_dates_after_invalid_one",
			fileName: "31-02-2023-15-06-2023.pdf",
			want:     "2023-06-15",
		},
		{
			name:     "already_renamed_file",
			fileName: "2023-03-05 - Invoice.pdf",
			want:     "2023-03-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.fileName)
			assert.Equal(t, tt.want, got, "extracted stem should match")
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	inputs := []string{
		"invoice_2023-03-05_final.pdf",
		"scan 25.12.2022.jpg",
		"letter_03-05-2023.pdf",
		"receipt 12-25-2022.pdf",
	}

	for _, in := range inputs {
		first := Extract(in)
		assert.Equal(t, first, Extract(first), "extracting %q twice should be stable", in)
	}
}

func TestExtractKeepsCanonicalSubstring(t *testing.T) {
	for _, date := range []string{"1999-01-01", "2020-02-29", "2024-12-31"} {
		for _, wrap := range []string{"%s", "a_%s_b", "x %s.pdf", "prefix-%s-suffix.tar", "scan%s", "%sT1030", "v%sz"} {
			name := fmt.Sprintf(wrap, date)
			assert.Equal(t, date, Extract(name), "date in %q should be kept as is", name)
		}
	}
}

func TestExtractDayAboveTwelve(t *testing.T) {
	for day := 13; day <= 28; day++ {
		name := fmt.Sprintf("doc_%02d-07-2021.pdf", day)
		assert.Equal(t, fmt.Sprintf("2021-07-%02d", day), Extract(name), "day-first date in %q should be reordered", name)
	}
}

func TestExtractCustom(t *testing.T) {
	tests := []struct {
		name         string
		fileName     string
		pattern      string
		inputFormat  string
		outputFormat string
		want         string
		wantNoDate   bool
		wantErr      bool
	}{
		{
			name:         "slash_date_to_year_month",
			fileName:     "05/03/2023-report.txt",
			pattern:      `\d{2}/\d{2}/\d{4}`,
			outputFormat: "YYYY-MM",
			want:         "2023-03",
		},
		{
			name:         "explicit_input_format",
			fileName:     "05/03/2023-report.txt",
			pattern:      `\d{2}/\d{2}/\d{4}`,
			inputFormat:  "MM/DD/YYYY",
			outputFormat: "YYYY-MM-DD",
			want:         "2023-05-03",
		},
		{
			name:     "default_output_is_canonical",
			fileName: "statement 20220131.pdf",
			pattern:  `\d{8}`,
			want:     "2022-01-31",
		},
		{
			name:         "go_layout_output",
			fileName:     "bill-2021.07.04.pdf",
			pattern:      `\d{4}\.\d{2}\.\d{2}`,
			outputFormat: "Jan 2006",
			want:         "Jul 2021",
		},
		{
			name:         "pattern_does_not_match",
			fileName:     "report.txt",
			pattern:      `\d{2}/\d{2}/\d{4}`,
			outputFormat: "YYYY-MM",
			wantNoDate:   true,
		},
		{
			name:         "matched_text_is_not_a_date",
			fileName:     "99/99/2023-report.txt",
			pattern:      `\d{2}/\d{2}/\d{4}`,
			outputFormat: "YYYY-MM",
			wantNoDate:   true,
		},
		{
			name:        "input_format_mismatch",
			fileName:    "2023_03_05.txt",
			pattern:     `\d{4}_\d{2}_\d{2}`,
			inputFormat: "DD/MM/YYYY",
			wantNoDate:  true,
		},
		{
			name:     "invalid_pattern",
			fileName: "x.txt",
			pattern:  `(\d`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractCustom(tt.fileName, tt.pattern, tt.inputFormat, tt.outputFormat)
			switch {
			case tt.wantNoDate:
				require.Error(t, err, "extraction should fail")
				assert.True(t, errors.Is(err, ErrNoDate), "error should be ErrNoDate, got %v", err)
				assert.Empty(t, got, "no stem should be returned")
			case tt.wantErr:
				require.Error(t, err, "extraction should fail")
				assert.False(t, errors.Is(err, ErrNoDate), "error should not be ErrNoDate")
			default:
				require.NoError(t, err, "extraction should succeed")
				assert.Equal(t, tt.want, got, "formatted date should match")
			}
		})
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"DD/MM/YYYY", "02/01/2006"},
		{"YYYY-MM", "2006-01"},
		{"yyyy-MM-dd", "2006-01-02"},
		{"MMMM d, yyyy", "January 2, 2006"},
		{"D.M.YY", "2.1.06"},
		{"MMM YYYY", "Jan 2006"},
		{"2006.01", "2006.01"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, Layout(tt.format), "layout should match")
		})
	}
}

func TestStemAndNormalize(t *testing.T) {
	assert.Equal(t, "my file_v1.2", Stem("/tmp/my file_v1.2.pdf"), "stem should drop directory and last extension")
	assert.Equal(t, "my-file-v1-2", Normalize("/tmp/my file_v1.2.pdf"), "normalize should dash separators")
	assert.Equal(t, "noext", Stem("noext"), "stem of a name without extension is the name")
}
