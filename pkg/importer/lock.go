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
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// sessionLock guards one directory against concurrent imports
type sessionLock struct {
	fl *flock.Flock
}

// LockPath returns the lock file used for dir
func LockPath(lockDir, dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return filepath.Join(lockDir, "pll-"+hex.EncodeToString(sum[:])[:16]+".lock")
}

func acquireLock(lockDir, dir string) (*sessionLock, error) {
	fl := flock.New(LockPath(lockDir, dir))

	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Errorf("acquiring session lock: %w", err)
	}
	if !locked {
		return nil, errors.Errorf("%s: %w", dir, ErrLocked)
	}

	return &sessionLock{fl: fl}, nil
}

func (l *sessionLock) release(ctx context.Context) {
	if err := l.fl.Unlock(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("lock", l.fl.Path()).Msg("releasing session lock")
	}
}
