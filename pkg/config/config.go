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

package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrProfileNotFound is returned when a named profile is not configured
var ErrProfileNotFound = errors.Base("profile not found")

const (
	appDir         = "pll"
	configFileName = "config.yml"
)

// 🌐 Server holds the document service connection settings
type Server struct {
	APIURL            string  `json:"api_url" yaml:"api_url"`
	Token             string  `json:"token" yaml:"token"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"` // 0 disables throttling
	Timeout           string  `json:"timeout,omitempty" yaml:"timeout,omitempty"`                         // Go duration, empty means none
}

// 📦 Profile is a named bundle of import behavior. It is never mutated by the pipeline.
type Profile struct {
	Name             string   `json:"name" yaml:"name"`
	AppendString     string   `json:"append_string,omitempty" yaml:"append_string,omitempty"`         // rename suffix
	Tags             []string `json:"tags,omitempty" yaml:"tags,omitempty"`                           // static tags for every file
	InputDateRegex   string   `json:"input_date_regex,omitempty" yaml:"input_date_regex,omitempty"`   // custom date pattern, raw filename
	InputDateFormat  string   `json:"input_date_format,omitempty" yaml:"input_date_format,omitempty"` // how to read the matched text
	OutputDateFormat string   `json:"output_date_format,omitempty" yaml:"output_date_format,omitempty"`
	IgnorePatterns   []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
}

// HasCustomDate reports whether the profile overrides date extraction
func (p *Profile) HasCustomDate() bool {
	return p.InputDateRegex != ""
}

// 📚 Config represents the complete configuration
type Config struct {
	Server         Server    `json:"server" yaml:"server"`
	IgnorePatterns []string  `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	Profiles       []Profile `json:"profiles,omitempty" yaml:"profiles,omitempty"`

	location string
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("finding user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, configFileName), nil
}

// 🎯 Load reads the config file, overlays the environment and validates the result.
// A missing file is tolerated only when the environment supplies the server settings.
func Load(ctx context.Context, path string, opts LoadOptions) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	env, err := opts.environment(ctx)
	if err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}

	cfg, err := loadFile(ctx, path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || !env.hasServer() {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("config file missing, using environment only")
		cfg = &Config{}
	}
	cfg.location = path

	env.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadFile(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	cfg.Server.APIURL = strings.TrimSpace(cfg.Server.APIURL)
	cfg.Server.Token = strings.TrimSpace(cfg.Server.Token)

	if cfg.Server.APIURL == "" {
		return errors.Errorf("server.api_url is required")
	}
	u, err := url.Parse(cfg.Server.APIURL)
	if err != nil {
		return errors.Errorf("server.api_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("server.api_url %q must be an http or https url", cfg.Server.APIURL)
	}
	if cfg.Server.Token == "" {
		return errors.Errorf("server.token is required")
	}
	if cfg.Server.RequestsPerSecond < 0 {
		return errors.Errorf("server.requests_per_second must not be negative")
	}
	if _, err := cfg.TimeoutDuration(); err != nil {
		return err
	}

	if err := validatePatterns("ignore_patterns", cfg.IgnorePatterns); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.Profiles))
	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return errors.Errorf("profiles[%d].name is required", i)
		}
		if seen[p.Name] {
			return errors.Errorf("profile %q is defined more than once", p.Name)
		}
		seen[p.Name] = true

		if err := p.validate(); err != nil {
			return errors.Errorf("profile %q: %w", p.Name, err)
		}
	}

	return nil
}

func (p *Profile) validate() error {
	if p.InputDateRegex != "" {
		if _, err := regexp.Compile(p.InputDateRegex); err != nil {
			return errors.Errorf("input_date_regex: %w", err)
		}
	} else if p.InputDateFormat != "" || p.OutputDateFormat != "" {
		return errors.Errorf("input_date_format and output_date_format require input_date_regex")
	}
	return validatePatterns("ignore_patterns", p.IgnorePatterns)
}

func validatePatterns(field string, patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return errors.Errorf("%s: invalid pattern %q", field, pat)
		}
	}
	return nil
}

// TimeoutDuration parses server.timeout; empty means no timeout
func (cfg *Config) TimeoutDuration() (time.Duration, error) {
	if cfg.Server.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Server.Timeout)
	if err != nil {
		return 0, errors.Errorf("server.timeout: %w", err)
	}
	if d < 0 {
		return 0, errors.Errorf("server.timeout must not be negative")
	}
	return d, nil
}

// 🔎 Profile returns the named profile
func (cfg *Config) Profile(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	for i := range cfg.Profiles {
		if cfg.Profiles[i].Name == name {
			return &cfg.Profiles[i], nil
		}
	}
	return nil, errors.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (%d profiles)", cfg.Server.APIURL, len(cfg.Profiles))
}
