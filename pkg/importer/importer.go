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

package importer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/config"
	"github.com/walteh/pll/pkg/log"
	"github.com/walteh/pll/pkg/osmeta"
	"github.com/walteh/pll/pkg/status"
	"github.com/walteh/pll/pkg/upload"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrLocked is returned when another run holds the directory lock
	ErrLocked = errors.Base("another import is running for this directory")

	// ErrConflictingTagSources is returned when a profile is combined with OS tags
	ErrConflictingTagSources = errors.Base("profile tags and os tags cannot be combined")
)

// 🏷️ TagResolver resolves tag names to remote ids
type TagResolver interface {
	EnsurePopulated(ctx context.Context) error
	ResolveAll(ctx context.Context, names []string) (map[string]string, error)
	ID(name string) (string, bool)
}

// 📤 Uploader sends a single file
type Uploader interface {
	Upload(ctx context.Context, path string, tagIDs []string) upload.Result
}

// 🔧 Options contains the collaborators of an Importer
type Options struct {
	// Tags is the session tag directory
	Tags TagResolver
	// Uploader posts documents
	Uploader Uploader
	// OSTags reads platform tags; defaults to a reader that finds none
	OSTags osmeta.Reader
	// Console receives human-readable progress; optional
	Console *log.Logger
	// IgnorePatterns apply to every run, in addition to profile patterns
	IgnorePatterns []string
	// LockDir holds session lock files; defaults to the OS temp dir
	LockDir string
}

// 📥 Request is one import invocation
type Request struct {
	Dir          string          // directory whose direct children are imported
	Profile      *config.Profile // profile mode when set
	Tags         []string        // extra static tags for ad-hoc runs
	AppendString string          // rename suffix, overrides the profile's
	Rename       bool
	Delete       bool
	UseOSTags    bool // read tags from file metadata
	DryRun       bool
}

// 🎯 Importer runs import requests
type Importer struct {
	tags     TagResolver
	uploader Uploader
	osTags   osmeta.Reader
	console  *log.Logger
	ignore   []string
	lockDir  string
}

// 🏭 New creates a new importer with the given options
func New(opts Options) (*Importer, error) {
	if opts.Tags == nil {
		return nil, errors.Errorf("tag resolver is required")
	}
	if opts.Uploader == nil {
		return nil, errors.Errorf("uploader is required")
	}

	im := &Importer{
		tags:     opts.Tags,
		uploader: opts.Uploader,
		osTags:   opts.OSTags,
		console:  opts.Console,
		ignore:   opts.IgnorePatterns,
		lockDir:  opts.LockDir,
	}
	if im.osTags == nil {
		im.osTags = osmeta.NopReader{}
	}
	if im.lockDir == "" {
		im.lockDir = os.TempDir()
	}

	return im, nil
}

// 🚀 Run imports every direct file of req.Dir. Per-file failures are recorded
// in the report; only run-level failures are returned as errors.
func (im *Importer) Run(ctx context.Context, req Request) (*status.Report, error) {
	if req.Profile != nil && req.UseOSTags {
		return nil, errors.WithStack(ErrConflictingTagSources)
	}
	if req.Dir == "" {
		return nil, errors.Errorf("directory is required")
	}

	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return nil, errors.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory", dir)
	}

	lock, err := acquireLock(im.lockDir, dir)
	if err != nil {
		return nil, err
	}
	defer lock.release(ctx)

	sessionID := uuid.New().String()
	logger := zerolog.Ctx(ctx).With().Str("session", sessionID).Str("dir", dir).Logger()
	ctx = logger.WithContext(ctx)

	profileName := ""
	if req.Profile != nil {
		profileName = req.Profile.Name
	}
	if im.console != nil {
		im.console.StartRun(ctx, log.RunInfo{SessionID: sessionID, Dir: dir, Profile: profileName, DryRun: req.DryRun})
	}

	if err := im.tags.EnsurePopulated(ctx); err != nil {
		return nil, errors.Errorf("loading remote tags: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("listing directory: %w", err)
	}

	report := status.NewReport(sessionID, dir, req.DryRun)
	patterns := im.patterns(req)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.Finish()
			return report, errors.Errorf("import interrupted: %w", err)
		}

		path := filepath.Join(dir, entry.Name())
		if isDir(entry, path) {
			continue
		}

		var res status.FileResult
		if pattern, ok := matchIgnore(patterns, entry.Name()); ok {
			res = status.FileResult{
				Path:      path,
				FinalPath: path,
				Outcome:   status.OutcomeSkipped,
				Reason:    "matches " + pattern,
			}
		} else {
			res = im.processFile(ctx, req, path)
		}

		report.Add(res)
		if im.console != nil {
			im.console.LogResult(ctx, res)
		}
	}

	report.Finish()
	if im.console != nil {
		im.console.EndRun(ctx, report)
	}

	return report, nil
}

func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(path)
		return err == nil && info.IsDir()
	}
	return false
}

func (im *Importer) patterns(req Request) []string {
	out := append([]string{}, im.ignore...)
	if req.Profile != nil {
		out = append(out, req.Profile.IgnorePatterns...)
	}
	return out
}
