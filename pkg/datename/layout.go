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

import "strings"

// longest tokens first so "MMMM" never reads as "MM" twice
var tokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"yyyy", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"yy", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"dd", "02"},
	{"M", "1"},
	{"D", "2"},
	{"d", "2"},
}

// 🔄 Layout converts a token date format such as "DD/MM/YYYY" into a Go
// time layout. A format that already contains "2006" is returned as is.
func Layout(format string) string {
	if strings.Contains(format, "2006") {
		return format
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, t := range tokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.layout)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}

	return b.String()
}
