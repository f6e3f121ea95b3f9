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

package opts

import (
	"context"
	"sync"

	"github.com/spf13/viper"
	"github.com/walteh/pll/pkg/config"
	"github.com/walteh/pll/pkg/remote/paperless"
	"github.com/walteh/pll/pkg/tags"
	"gitlab.com/tozd/go/errors"
)

// viper keys shared by the root command and subcommands
const (
	KeyConfig  = "config"
	KeyEnvFile = "env_file"
	KeyDebug   = "debug"
	KeyLockDir = "lock_dir"
)

// RootOpts carries what every subcommand needs. The config and the remote
// collaborators are built on first use so that `version` works without a config.
type RootOpts struct {
	Viper *viper.Viper

	mu     sync.Mutex
	cfg    *config.Config
	client *paperless.Client
	tags   *tags.Directory
}

// New creates root options
func New(v *viper.Viper) *RootOpts {
	return &RootOpts{Viper: v}
}

// Config loads and validates the configuration once
func (o *RootOpts) Config(ctx context.Context) (*config.Config, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.configLocked(ctx)
}

func (o *RootOpts) configLocked(ctx context.Context) (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	path := o.Viper.GetString(KeyConfig)
	if path == "" {
		def, err := config.DefaultPath()
		if err != nil {
			return nil, errors.Errorf("locating config: %w", err)
		}
		path = def
	}

	envFile := o.Viper.GetString(KeyEnvFile)
	required := o.Viper.IsSet(KeyEnvFile) && envFile != config.DefaultEnvFile
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}

	cfg, err := config.Load(ctx, path, config.LoadOptions{
		EnvFile:        envFile,
		RequireEnvFile: required,
	})
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	o.cfg = cfg
	return cfg, nil
}

// Client returns the document service client for the configured server
func (o *RootOpts) Client(ctx context.Context) (*paperless.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clientLocked(ctx)
}

func (o *RootOpts) clientLocked(ctx context.Context) (*paperless.Client, error) {
	if o.client != nil {
		return o.client, nil
	}

	cfg, err := o.configLocked(ctx)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	client, err := paperless.New(paperless.Options{
		BaseURL:           cfg.Server.APIURL,
		Token:             cfg.Server.Token,
		Timeout:           timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
	})
	if err != nil {
		return nil, errors.Errorf("creating client: %w", err)
	}

	o.client = client
	return client, nil
}

// Tags returns the tag directory shared by the whole invocation
func (o *RootOpts) Tags(ctx context.Context) (*tags.Directory, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.tags != nil {
		return o.tags, nil
	}

	client, err := o.clientLocked(ctx)
	if err != nil {
		return nil, err
	}

	o.tags = tags.New(client)
	return o.tags, nil
}

// LockDir is where import session locks live; empty means the OS temp dir
func (o *RootOpts) LockDir() string {
	return o.Viper.GetString(KeyLockDir)
}
