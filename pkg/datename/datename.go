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

// Package datename pulls a date out of a filename and returns it in a
// canonical form suitable for use as a new filename stem.
package datename

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrNoDate is returned by ExtractCustom when the pattern does not match or
// the matched text is not a calendar date.
var ErrNoDate = errors.Base("no date found")

const canonicalLayout = "2006-01-02"

// 📅 Variant is one embedded date shape tried by Extract
type Variant struct {
	Name string
	// Pattern is unanchored; a match touching another digit on either side is ignored
	Pattern *regexp.Regexp
	// Reorder maps submatches (index 0 is the full match) to year, month, day
	Reorder func(groups []string) (year, month, day string)
}

const (
	dayGroup   = `(0[1-9]|[12]\d|3[01])`
	monthGroup = `(0[1-9]|1[0-2])`
)

// Variants are tried in order; the first valid calendar date wins.
// Day-month-year comes before month-day-year.
var Variants = []Variant{
	{
		Name:    "year-month-day",
		Pattern: regexp.MustCompile(`(\d{4})-` + monthGroup + `-` + dayGroup),
		Reorder: func(g []string) (string, string, string) { return g[1], g[2], g[3] },
	},
	{
		Name:    "day-month-year",
		Pattern: regexp.MustCompile(dayGroup + `-` + monthGroup + `-(\d{4})`),
		Reorder: func(g []string) (string, string, string) { return g[3], g[2], g[1] },
	},
	{
		Name:    "month-day-year",
		Pattern: regexp.MustCompile(monthGroup + `-` + dayGroup + `-(\d{4})`),
		Reorder: func(g []string) (string, string, string) { return g[3], g[1], g[2] },
	},
}

var separatorReplacer = strings.NewReplacer("_", "-", ".", "-", " ", "-")

// Stem returns the filename without directory and extension
func Stem(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Normalize replaces underscores, periods and spaces in the stem with dashes
func Normalize(fileName string) string {
	return separatorReplacer.Replace(Stem(fileName))
}

// 🔍 Extract returns the first embedded date of fileName as YYYY-MM-DD.
// When no variant matches it returns the normalized stem; that is not an error.
func Extract(fileName string) string {
	normalized := Normalize(fileName)

	if d, ok := match(normalized, Variants); ok {
		return d
	}

	return normalized
}

func match(s string, variants []Variant) (string, bool) {
	for _, v := range variants {
		for _, groups := range digitBounded(v.Pattern, s) {
			y, m, d := v.Reorder(groups)
			if date, ok := calendarDate(y, m, d); ok {
				return date.Format(canonicalLayout), true
			}
		}
	}
	return "", false
}

// digitBounded returns every match of re in s, overlapping ones included,
// that is not directly preceded or followed by a digit
func digitBounded(re *regexp.Regexp, s string) [][]string {
	var out [][]string
	for pos := 0; pos < len(s); {
		loc := re.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !isDigitAt(s, start-1) && !isDigitAt(s, end) {
			groups := make([]string, len(loc)/2)
			for i := range groups {
				if loc[2*i] >= 0 {
					groups[i] = s[pos+loc[2*i] : pos+loc[2*i+1]]
				}
			}
			out = append(out, groups)
		}
		pos = start + 1
	}
	return out
}

func isDigitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// calendarDate rejects components that time.Date would silently normalize
func calendarDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// candidate layouts for matched text when no input format is configured
var fallbackLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"20060102",
	"2006-01",
	"01-2006",
	"02-01-06",
}

var dateSeparatorReplacer = strings.NewReplacer("/", "-", ".", "-", "_", "-", " ", "-")

// 🎯 ExtractCustom matches pattern against the raw fileName, parses the match
// as a date and formats it with outputFormat. inputFormat may be empty.
func ExtractCustom(fileName, pattern, inputFormat, outputFormat string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", errors.Errorf("compiling date pattern %q: %w", pattern, err)
	}

	matched := re.FindString(fileName)
	if matched == "" {
		return "", errors.Errorf("pattern %q does not match %q: %w", pattern, fileName, ErrNoDate)
	}

	t, err := parseMatched(matched, inputFormat)
	if err != nil {
		return "", errors.Errorf("parsing %q: %w", matched, err)
	}

	layout := canonicalLayout
	if outputFormat != "" {
		layout = Layout(outputFormat)
	}

	return t.Format(layout), nil
}

func parseMatched(matched, inputFormat string) (time.Time, error) {
	if inputFormat != "" {
		t, err := time.Parse(Layout(inputFormat), matched)
		if err != nil {
			return time.Time{}, errors.Errorf("%w: %s", ErrNoDate, err.Error())
		}
		return t, nil
	}

	normalized := dateSeparatorReplacer.Replace(matched)
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.WithStack(ErrNoDate)
}
