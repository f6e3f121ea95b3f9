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
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/datename"
	"github.com/walteh/pll/pkg/status"
	"github.com/walteh/pll/pkg/tags"
	"gitlab.com/tozd/go/errors"
)

const renameSeparator = " - "

// matchIgnore returns the first pattern matching the base name
func matchIgnore(patterns []string, name string) (string, bool) {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}

// processFile runs one file through the pipeline. A panic inside any step
// becomes a FAILED result.
func (im *Importer) processFile(ctx context.Context, req Request, path string) (res status.FileResult) {
	// upload and osmeta add the file field themselves
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	res = status.FileResult{Path: path, FinalPath: path}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("recovered while processing file")
			res.Outcome = status.OutcomeFailed
			res.Err = errors.Errorf("panic while processing %s: %v", filepath.Base(path), r)
		}
	}()

	if req.Rename {
		im.rename(ctx, req, &res)
	}

	names := im.collectTags(ctx, req, res.FinalPath)

	if req.DryRun {
		res.Tags = make(map[string]string, len(names))
		for _, name := range names {
			id, _ := im.tags.ID(name)
			res.Tags[name] = id
		}
		res.Outcome = status.OutcomeSkipped
		res.Reason = "dry run"
		logger.Info().Strs("tags", names).Str("target", res.FinalPath).Msg("dry run")
		return res
	}

	resolved, err := im.tags.ResolveAll(ctx, names)
	if err != nil {
		res.Outcome = status.OutcomeFailed
		res.Err = errors.Errorf("resolving tags: %w", err)
		return res
	}
	res.Tags = resolved

	ids := make([]string, 0, len(resolved))
	for _, id := range resolved {
		ids = append(ids, id)
	}

	up := im.uploader.Upload(ctx, res.FinalPath, ids)
	if !up.OK() {
		res.Outcome = status.OutcomeFailed
		res.Err = up.Err
		if res.Err == nil {
			res.Err = errors.New("upload was not confirmed")
		}
		return res
	}

	res.Outcome = status.OutcomeSuccess
	res.DocumentID = up.DocumentID

	if req.Delete {
		if err := os.Remove(res.FinalPath); err != nil {
			logger.Warn().Err(err).Msg("deleting uploaded file")
			res.Warnings = append(res.Warnings, fmt.Sprintf("could not delete: %v", err))
		} else {
			res.Deleted = true
		}
	}

	return res
}

// rename moves the file to "<stem> - <suffix><ext>". Failures leave the file
// where it was and add a warning.
func (im *Importer) rename(ctx context.Context, req Request, res *status.FileResult) {
	logger := zerolog.Ctx(ctx).With().Str("file", res.Path).Logger()

	target, ok, err := renameTarget(req, res.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("computing new name")
		res.Warnings = append(res.Warnings, fmt.Sprintf("not renamed: %v", err))
		return
	}
	if !ok || target == res.Path {
		return
	}

	if _, err := os.Lstat(target); err == nil {
		logger.Warn().Str("target", target).Msg("rename target exists")
		res.Warnings = append(res.Warnings, fmt.Sprintf("not renamed: %s already exists", filepath.Base(target)))
		return
	}

	if req.DryRun {
		res.FinalPath = target
		res.Renamed = true
		return
	}

	if err := os.Rename(res.Path, target); err != nil {
		logger.Warn().Err(err).Str("target", target).Msg("renaming file")
		res.Warnings = append(res.Warnings, fmt.Sprintf("not renamed: %v", err))
		return
	}

	logger.Debug().Str("target", target).Msg("renamed file")
	res.FinalPath = target
	res.Renamed = true
}

// renameTarget computes the new path. ok is false when the name should stay.
func renameTarget(req Request, path string) (string, bool, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	original := datename.Stem(base)

	var stem string
	if req.Profile != nil && req.Profile.HasCustomDate() {
		date, err := datename.ExtractCustom(base, req.Profile.InputDateRegex, req.Profile.InputDateFormat, req.Profile.OutputDateFormat)
		if errors.Is(err, datename.ErrNoDate) {
			return "", false, nil
		}
		if err != nil {
			return "", false, err
		}
		stem = date
	} else {
		stem = datename.Extract(base)
	}

	suffix := req.AppendString
	if suffix == "" && req.Profile != nil {
		suffix = req.Profile.AppendString
	}
	if suffix == "" {
		suffix = original
	}

	name := stem + renameSeparator + suffix + ext
	if strings.ContainsRune(name, filepath.Separator) {
		return "", false, errors.Errorf("new name %q contains a path separator", name)
	}

	return filepath.Join(filepath.Dir(path), name), true, nil
}

// collectTags gathers tag names from the profile, the request and, when
// asked, the file's OS metadata. Order is kept and duplicates dropped.
func (im *Importer) collectTags(ctx context.Context, req Request, path string) []string {
	var sources [][]string
	if req.Profile != nil {
		sources = append(sources, req.Profile.Tags)
	}
	sources = append(sources, req.Tags)
	if req.UseOSTags {
		sources = append(sources, im.osTags.Read(ctx, path))
	}

	seen := map[string]struct{}{}
	var names []string
	for _, src := range sources {
		for _, name := range src {
			key := tags.NormalizeName(name)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, key)
		}
	}
	return names
}
