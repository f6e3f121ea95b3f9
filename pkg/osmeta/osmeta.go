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

// Package osmeta reads tag names stored in platform file metadata.
package osmeta

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

// 🏷️ Reader returns the OS-level tags of a file. Failures yield an empty list.
type Reader interface {
	Read(ctx context.Context, path string) []string
}

// Runner executes a command and returns its standard output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// 🍎 MacReader reads Finder tags through mdls
type MacReader struct {
	run  Runner
	goos string
}

// MacOption configures a MacReader
type MacOption func(*MacReader)

// WithRunner replaces the command runner
func WithRunner(r Runner) MacOption {
	return func(m *MacReader) {
		m.run = r
	}
}

// WithGOOS overrides the detected operating system
func WithGOOS(goos string) MacOption {
	return func(m *MacReader) {
		m.goos = goos
	}
}

// 🏭 NewMacReader creates a reader that shells out to mdls
func NewMacReader(opts ...MacOption) *MacReader {
	m := &MacReader{
		run:  execRunner,
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Reader = (*MacReader)(nil)

// Read implements Reader
func (m *MacReader) Read(ctx context.Context, path string) []string {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	if m.goos != "darwin" {
		logger.Debug().Str("goos", m.goos).Msg("os tags are only available on darwin")
		return nil
	}

	out, err := m.run(ctx, "mdls", "-raw", "-name", "kMDItemUserTags", path)
	if err != nil {
		logger.Debug().Err(err).Msg("reading os tags")
		return nil
	}

	tags := ParseUserTags(string(out))
	logger.Debug().Strs("tags", tags).Msg("read os tags")
	return tags
}

// 🔍 ParseUserTags parses mdls output such as
//
//	(
//	    "Important\n6",
//	    Work
//	)
//
// into []string{"Important", "Work"}. "(null)" and malformed output yield nil.
func ParseUserTags(out string) []string {
	out = strings.TrimSpace(out)

	start := strings.Index(out, "(")
	end := strings.LastIndex(out, ")")
	if start < 0 || end <= start {
		return nil
	}

	body := out[start+1 : end]
	if strings.TrimSpace(body) == "" || strings.TrimSpace(body) == "null" {
		return nil
	}

	var tags []string
	for _, item := range strings.Split(body, ",") {
		item = strings.TrimSpace(item)
		item = strings.Trim(item, `"`)
		item = stripColor(item)
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tags = append(tags, item)
	}

	return tags
}

// stripColor drops the Finder color label suffix, e.g. "Work\n6"
func stripColor(tag string) string {
	for _, sep := range []string{`\n`, "\n"} {
		if i := strings.LastIndex(tag, sep); i >= 0 {
			suffix := tag[i+len(sep):]
			if len(suffix) == 1 && suffix[0] >= '0' && suffix[0] <= '7' {
				return tag[:i]
			}
		}
	}
	return tag
}

// 🚫 NopReader never finds tags
type NopReader struct{}

// Read implements Reader
func (NopReader) Read(context.Context, string) []string {
	return nil
}
