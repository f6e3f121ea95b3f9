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
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	nameWidth     = 40 // width for the final filename
	outcomeWidth  = 9  // width for the outcome text
	documentWidth = 12 // width for the document id
)

// 🎯 FormatResultRow formats a file result as an aligned, colored row
func FormatResultRow(res FileResult) string {
	var prefix, outcome string
	switch res.Outcome {
	case OutcomeSuccess:
		prefix = color.GreenString("✓")
		outcome = color.GreenString("%-*s", outcomeWidth, res.Outcome)
	case OutcomeSkipped:
		prefix = color.HiBlackString("-")
		outcome = color.HiBlackString("%-*s", outcomeWidth, res.Outcome)
	case OutcomeFailed:
		prefix = color.RedString("✗")
		outcome = color.RedString("%-*s", outcomeWidth, res.Outcome)
	default:
		prefix = color.YellowString("?")
		outcome = color.YellowString("%-*s", outcomeWidth, res.Outcome)
	}

	path := res.FinalPath
	if path == "" {
		path = res.Path
	}
	name := filepath.Base(path)
	if res.Renamed {
		name = filepath.Base(res.Path) + " → " + name
	}

	namePart := fmt.Sprintf("%-*s", nameWidth, name)
	docPart := fmt.Sprintf("%-*s", documentWidth, res.DocumentID)
	tagPart := strings.Join(res.TagNames(), ",")

	return strings.TrimRight(fmt.Sprintf("%s%s %s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		outcome,
		docPart,
		tagPart,
	), " ")
}
