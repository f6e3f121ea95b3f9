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

// Package tags keeps the session cache of remote tag names and ids.
//
// The directory is filled from the full paginated listing once, then kept
// current by the tags it creates itself. It never expires or refreshes.
package tags

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/pll/pkg/remote"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"
)

// 📚 Directory maps tag names to remote ids and back
type Directory struct {
	svc      remote.TagService
	maxPages int

	mu        sync.RWMutex
	byName    map[string]string
	byID      map[string]string
	populated bool

	populate singleflight.Group
	create   singleflight.Group
}

// Option configures a Directory
type Option func(*Directory)

// WithMaxPages bounds the number of listing pages followed; 0 means no bound
func WithMaxPages(n int) Option {
	return func(d *Directory) {
		d.maxPages = n
	}
}

// 🏭 New creates an empty directory backed by svc
func New(svc remote.TagService, opts ...Option) *Directory {
	d := &Directory{
		svc:    svc,
		byName: make(map[string]string),
		byID:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NormalizeName trims whitespace and applies Unicode NFC
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// 📥 EnsurePopulated drains the remote listing on first use.
// A failed page discards everything fetched so far.
func (d *Directory) EnsurePopulated(ctx context.Context) error {
	d.mu.RLock()
	done := d.populated
	d.mu.RUnlock()
	if done {
		return nil
	}

	_, err, _ := d.populate.Do("populate", func() (interface{}, error) {
		d.mu.RLock()
		done := d.populated
		d.mu.RUnlock()
		if done {
			return nil, nil
		}

		fetched, err := d.listAll(ctx)
		if err != nil {
			return nil, err
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		for _, t := range fetched {
			d.insertLocked(t.Name, t.ID.String())
		}
		d.populated = true
		return nil, nil
	})
	return err
}

func (d *Directory) listAll(ctx context.Context) ([]remote.Tag, error) {
	logger := zerolog.Ctx(ctx)

	var all []remote.Tag
	next := ""
	for page := 1; ; page++ {
		if d.maxPages > 0 && page > d.maxPages {
			return nil, errors.Errorf("tag listing exceeded %d pages", d.maxPages)
		}

		p, err := d.svc.ListTagPage(ctx, next)
		if err != nil {
			return nil, errors.Errorf("listing tag page %d: %w", page, err)
		}

		logger.Debug().Int("page", page).Int("tags", len(p.Results)).Msg("fetched tag page")
		all = append(all, p.Results...)

		if p.Next == "" {
			break
		}
		next = p.Next
	}

	return all, nil
}

// insertLocked records a name/id pair; the caller holds d.mu
func (d *Directory) insertLocked(name, id string) {
	key := NormalizeName(name)
	if key == "" || id == "" {
		return
	}
	if old, ok := d.byName[key]; ok && old != id {
		delete(d.byID, old)
	}
	d.byName[key] = id
	d.byID[id] = key
}

// 🏷️ GetOrCreate returns the id for name, creating the tag remotely on a miss.
// Concurrent misses on the same name share a single create call.
func (d *Directory) GetOrCreate(ctx context.Context, name string) (string, error) {
	key := NormalizeName(name)
	if key == "" {
		return "", errors.New("tag name is empty")
	}

	if err := d.EnsurePopulated(ctx); err != nil {
		return "", errors.Errorf("populating tag directory: %w", err)
	}

	if id, ok := d.ID(key); ok {
		return id, nil
	}

	v, err, _ := d.create.Do(key, func() (interface{}, error) {
		if id, ok := d.ID(key); ok {
			return id, nil
		}

		tag, err := d.svc.CreateTag(ctx, key)
		if err != nil {
			return "", err
		}

		id := tag.ID.String()
		d.mu.Lock()
		d.insertLocked(key, id)
		d.mu.Unlock()

		zerolog.Ctx(ctx).Info().Str("tag", key).Str("tag_id", id).Msg("created tag")
		return id, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

// 🎯 ResolveAll maps every resolvable name to its id. Names whose creation
// fails are logged and left out. Only a failed listing returns an error.
func (d *Directory) ResolveAll(ctx context.Context, names []string) (map[string]string, error) {
	if err := d.EnsurePopulated(ctx); err != nil {
		return nil, errors.Errorf("populating tag directory: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	resolved := make(map[string]string, len(names))
	for _, name := range names {
		key := NormalizeName(name)
		if key == "" {
			continue
		}
		if _, ok := resolved[key]; ok {
			continue
		}

		id, err := d.GetOrCreate(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("tag", key).Msg("skipping unresolvable tag")
			continue
		}
		resolved[key] = id
	}

	return resolved, nil
}

// ID looks up the id of a cached name
func (d *Directory) ID(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byName[NormalizeName(name)]
	return id, ok
}

// Name looks up the cached name of an id
func (d *Directory) Name(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.byID[id]
	return name, ok
}

// Populated reports whether the listing has been loaded
func (d *Directory) Populated() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.populated
}

// Len returns the number of cached tags
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byName)
}

// 📋 Tags returns a snapshot of the cache sorted by name
func (d *Directory) Tags() []remote.Tag {
	d.mu.RLock()
	out := make([]remote.Tag, 0, len(d.byName))
	for name, id := range d.byName {
		out = append(out, remote.Tag{ID: remote.TagID(id), Name: name})
	}
	d.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
