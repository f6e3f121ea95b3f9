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

package paperless

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/remote"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/time/rate"
)

const (
	tagsPath     = "/api/tags/"
	documentPath = "/api/documents/post_document/"

	documentField = "document"
	tagsField     = "tags"

	// error messages quote at most this much of a response body
	bodyExcerptLen = 256
)

// HTTPClient is the part of *http.Client the client uses
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// 🔧 Options configures a Client
type Options struct {
	BaseURL           string        // server root, e.g. https://paperless.example.com
	Token             string        // API token sent as "Token <token>"
	HTTPClient        HTTPClient    // defaults to a plain *http.Client
	Timeout           time.Duration // only applied to the default client
	RequestsPerSecond float64       // 0 disables throttling
}

// 🎯 Client talks to a Paperless-ngx compatible API
type Client struct {
	base    *url.URL
	token   string
	http    HTTPClient
	limiter *rate.Limiter
}

var _ remote.Service = (*Client)(nil)

// 🏭 New creates a new client
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base url is required")
	}
	if opts.Token == "" {
		return nil, errors.New("token is required")
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, errors.Errorf("parsing base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Errorf("base url %q must be http or https", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		base:  base,
		token: opts.Token,
		http:  httpClient,
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return c, nil
}

// BaseURL returns the server root the client was built with
func (c *Client) BaseURL() string {
	return c.base.String()
}

// 📋 ListTagPage fetches one page of the tag listing
func (c *Client) ListTagPage(ctx context.Context, pageURL string) (*remote.TagPage, error) {
	target, err := c.resolve(pageURL, tagsPath)
	if err != nil {
		return nil, errors.Errorf("resolving page url: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("url", target).Msg("listing tags")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, errors.Errorf("listing tags: %w", err)
	}

	var page remote.TagPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Errorf("parsing tag page: %w", err)
	}

	return &page, nil
}

// ✨ CreateTag creates a new tag with the given name
func (c *Client) CreateTag(ctx context.Context, name string) (*remote.Tag, error) {
	target, err := c.resolve("", tagsPath)
	if err != nil {
		return nil, errors.Errorf("resolving url: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("tag", name).Msg("creating tag")

	form := url.Values{}
	form.Set("name", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, errors.Errorf("creating tag %q: %w", name, err)
	}

	var tag remote.Tag
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, errors.Errorf("parsing created tag: %w", err)
	}
	if tag.ID == "" {
		return nil, errors.Errorf("server returned no id for tag %q", name)
	}
	if tag.Name == "" {
		tag.Name = name
	}

	return &tag, nil
}

// 📤 PostDocument uploads a document as multipart form data
func (c *Client) PostDocument(ctx context.Context, doc remote.Document) (string, error) {
	target, err := c.resolve("", documentPath)
	if err != nil {
		return "", errors.Errorf("resolving url: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(documentField, doc.FileName)
	if err != nil {
		return "", errors.Errorf("creating document part: %w", err)
	}
	if _, err := io.Copy(part, doc.Content); err != nil {
		return "", errors.Errorf("writing document part: %w", err)
	}

	for _, id := range doc.TagIDs {
		if err := mw.WriteField(tagsField, id.String()); err != nil {
			return "", errors.Errorf("writing tag field: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", errors.Errorf("closing multipart writer: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("document", doc.FileName).
		Int("tags", len(doc.TagIDs)).
		Int("bytes", buf.Len()).
		Msg("posting document")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return "", errors.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(ctx, req)
	if err != nil {
		return "", errors.Errorf("posting document %s: %w", doc.FileName, err)
	}

	id := parseDocumentID(body)
	if id == "" {
		return "", errors.Errorf("server returned an empty document id for %s", doc.FileName)
	}

	return id, nil
}

// 🔁 do sends the request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status code %d: %s", resp.StatusCode, excerpt(body))
	}

	return body, nil
}

// 🔗 resolve turns a next-page link or a fixed API path into an absolute url
func (c *Client) resolve(link, path string) (string, error) {
	if link == "" {
		return c.base.String() + path, nil
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", errors.Errorf("parsing %q: %w", link, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	endpoint, err := url.Parse(c.base.String() + path)
	if err != nil {
		return "", errors.Errorf("parsing endpoint: %w", err)
	}

	return endpoint.ResolveReference(u).String(), nil
}

// parseDocumentID accepts a bare id or a JSON string
func parseDocumentID(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			return strings.TrimSpace(s)
		}
	}
	return raw
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodyExcerptLen {
		return s[:bodyExcerptLen] + "..."
	}
	if s == "" {
		return "<empty body>"
	}
	return s
}
