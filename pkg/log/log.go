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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/remote"
	"github.com/walteh/pll/pkg/status"
)

// 📦 RunInfo describes an import run for the console header
type RunInfo struct {
	SessionID string // run session id
	Dir       string // directory being imported
	Profile   string // profile name, empty for ad-hoc runs
	DryRun    bool   // nothing is renamed, uploaded or deleted
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 StartRun prints the run header
func (l *Logger) StartRun(ctx context.Context, info RunInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "[importing %s]\n",
		color.New(color.FgCyan).Sprint(info.Dir))

	mode := "ad-hoc"
	if info.Profile != "" {
		mode = "profile " + info.Profile
	}
	if info.DryRun {
		mode += " (dry run)"
	}

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(mode),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(info.SessionID))

	l.zlog.Info().
		Str("session", info.SessionID).
		Str("dir", info.Dir).
		Str("profile", info.Profile).
		Bool("dry_run", info.DryRun).
		Msg("starting import run")
}

// 📝 LogResult prints one file result row followed by its warnings
func (l *Logger) LogResult(ctx context.Context, res status.FileResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, status.FormatResultRow(res))
	for _, w := range res.Warnings {
		fmt.Fprintf(l.console, "      %s %s\n", color.YellowString("⚠"), w)
	}
	if res.Err != nil {
		fmt.Fprintf(l.console, "      %s %v\n", color.RedString("↳"), res.Err)
	}

	ev := l.zlog.Info()
	if res.Outcome == status.OutcomeFailed {
		ev = l.zlog.Error().Err(res.Err)
	}
	ev.Str("file", res.Path).
		Str("final_path", res.FinalPath).
		Str("outcome", res.Outcome.String()).
		Str("document_id", res.DocumentID).
		Strs("tags", res.TagNames()).
		Bool("renamed", res.Renamed).
		Bool("deleted", res.Deleted).
		Msg("file processed")
}

// 📝 EndRun prints the summary table of a finished run
func (l *Logger) EndRun(ctx context.Context, report *status.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{
		{"Outcome", "Files"},
		{status.OutcomeSuccess.String(), fmt.Sprint(report.Count(status.OutcomeSuccess))},
		{status.OutcomeSkipped.String(), fmt.Sprint(report.Count(status.OutcomeSkipped))},
		{status.OutcomeFailed.String(), fmt.Sprint(report.Count(status.OutcomeFailed))},
		{"deleted", fmt.Sprint(report.Deleted())},
	}
	l.renderTable(data)
	fmt.Fprintln(l.console, status.FormatSummary(report))

	l.zlog.Info().
		Str("session", report.SessionID).
		Int("files", report.Total()).
		Int("success", report.Count(status.OutcomeSuccess)).
		Int("skipped", report.Count(status.OutcomeSkipped)).
		Int("failed", report.Count(status.OutcomeFailed)).
		Dur("duration", report.Duration()).
		Msg("import run complete")
}

// 📋 TagTable prints the tags as an id/name table
func (l *Logger) TagTable(tags []remote.Tag) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{"ID", "Name"}}
	for _, t := range tags {
		data = append(data, []string{t.ID.String(), t.Name})
	}
	l.renderTable(data)
	l.zlog.Debug().Int("tags", len(tags)).Msg("listed tags")
}

// 📋 Table prints arbitrary rows; the first row is the header
func (l *Logger) Table(data [][]string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.renderTable(pterm.TableData(data))
}

// renderTable writes a pterm table; the caller holds l.mu
func (l *Logger) renderTable(data pterm.TableData) {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Error().Err(err).Msg("rendering table")
		return
	}
	fmt.Fprintln(l.console, out)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
