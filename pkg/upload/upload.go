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

// Package upload sends one local file to the document service.
package upload

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

// 📦 Result is the outcome of one upload attempt.
// An empty DocumentID means the service did not confirm receipt.
type Result struct {
	DocumentID string
	Err        error
}

// OK reports whether the service confirmed the upload
func (r Result) OK() bool {
	return r.DocumentID != ""
}

// 📤 Uploader posts documents with their tag ids
type Uploader struct {
	svc remote.DocumentService
}

// 🏭 New creates an uploader
func New(svc remote.DocumentService) *Uploader {
	return &Uploader{svc: svc}
}

// 🎯 Upload reads path and posts it once. Errors never escape; they are
// logged and returned inside the Result.
func (u *Uploader) Upload(ctx context.Context, path string, tagIDs []string) Result {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	if u.svc == nil {
		err := errors.New("no document service configured")
		logger.Error().Err(err).Msg("upload failed")
		return Result{Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Errorf("reading %s: %w", path, err)
		logger.Error().Err(err).Msg("upload failed")
		return Result{Err: err}
	}

	ids := sortedIDs(tagIDs)

	id, err := u.svc.PostDocument(ctx, remote.Document{
		FileName: filepath.Base(path),
		Content:  bytes.NewReader(data),
		TagIDs:   ids,
	})
	if err != nil {
		logger.Error().Err(err).Msg("upload failed")
		return Result{Err: err}
	}
	if id == "" {
		err := errors.Errorf("service returned no document id for %s", path)
		logger.Error().Err(err).Msg("upload failed")
		return Result{Err: err}
	}

	logger.Info().Str("document_id", id).Int("tags", len(ids)).Msg("uploaded document")
	return Result{DocumentID: id}
}

func sortedIDs(in []string) []remote.TagID {
	seen := make(map[string]struct{}, len(in))
	uniq := make([]string, 0, len(in))
	for _, id := range in {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	sort.Strings(uniq)

	out := make([]remote.TagID, len(uniq))
	for i, id := range uniq {
		out[i] = remote.TagID(id)
	}
	return out
}
