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

// Package remote defines the contract between the import pipeline and the
// document-management service it feeds.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Tag is a named label on the remote service
type Tag struct {
	ID   TagID  `json:"id"`
	Name string `json:"name"`
}

// 🔑 TagID is the remote-assigned identifier of a tag.
// The service sends numbers, older exports send strings; both decode here.
type TagID string

func (id *TagID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Errorf("decoding tag id: %w", err)
		}
		*id = TagID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("decoding tag id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return errors.Errorf("tag id %s is not an integer", n.String())
	}
	*id = TagID(n.String())
	return nil
}

func (id TagID) String() string {
	return string(id)
}

// 📄 TagPage is one page of the paginated tag listing
type TagPage struct {
	Results []Tag  `json:"results"`
	Next    string `json:"next"`
}

// 📤 Document is a single file to post to the service
type Document struct {
	FileName string    // name reported to the service
	Content  io.Reader // full file content
	TagIDs   []TagID   // one multipart field per id
}

// TagService lists and creates tags
type TagService interface {
	// ListTagPage fetches one page. An empty pageURL means the first page.
	ListTagPage(ctx context.Context, pageURL string) (*TagPage, error)
	// CreateTag creates a tag and returns it with its new id.
	CreateTag(ctx context.Context, name string) (*Tag, error)
}

// DocumentService accepts uploaded documents
type DocumentService interface {
	// PostDocument uploads one document and returns the id the service assigned.
	PostDocument(ctx context.Context, doc Document) (string, error)
}

// Service is everything the importer needs from the remote side
type Service interface {
	TagService
	DocumentService
}
