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

package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// version is set with -ldflags "-X main.version=v1.2.3" by release builds
var version = ""

// BuildInfo describes the running binary
type BuildInfo struct {
	Version  string `json:"version"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Dirty    bool   `json:"dirty"`
}

// ReadBuildInfo collects version data from ldflags and the embedded module info
func ReadBuildInfo() BuildInfo {
	bi := BuildInfo{
		Version:  version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		if bi.Version == "" {
			bi.Version = "dev"
		}
		return bi
	}

	if bi.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		bi.Version = info.Main.Version
	}
	if bi.Version == "" {
		bi.Version = "dev"
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			bi.Commit = s.Value
		case "vcs.time":
			bi.Date = s.Value
		case "vcs.modified":
			bi.Dirty = s.Value == "true"
		}
	}

	return bi
}

// ShortCommit returns the first 12 characters of the commit hash
func (b BuildInfo) ShortCommit() string {
	if len(b.Commit) > 12 {
		return b.Commit[:12]
	}
	return b.Commit
}

// FormatVersion renders the build info for `pll version`
func FormatVersion() string {
	b := ReadBuildInfo()

	var sb strings.Builder
	fmt.Fprintf(&sb, "🚀 pll %s\n", b.Version)
	if b.Commit != "" {
		dirty := ""
		if b.Dirty {
			dirty = " (dirty)"
		}
		fmt.Fprintf(&sb, "   commit:   %s%s\n", b.ShortCommit(), dirty)
	}
	if b.Date != "" {
		fmt.Fprintf(&sb, "   built:    %s\n", b.Date)
	}
	fmt.Fprintf(&sb, "   go:       %s\n", b.Go)
	fmt.Fprintf(&sb, "   platform: %s\n", b.Platform)
	return sb.String()
}
