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
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = "config.env"

// keys consulted for each server setting, highest priority first.
// The unprefixed keys are only read from the env file.
var (
	apiURLEnvKey = "PLL_API_URL"
	tokenEnvKey  = "PLL_TOKEN"

	apiURLFileKeys = []string{apiURLEnvKey, "APIURL"}
	tokenFileKeys  = []string{tokenEnvKey, "TOKEN"}
)

// 🔧 LoadOptions controls where Load looks for environment overrides
type LoadOptions struct {
	EnvFile        string                          // dotenv file; empty disables it
	RequireEnvFile bool                            // a missing EnvFile is an error
	LookupEnv      func(key string) (string, bool) // defaults to os.LookupEnv
}

// overrides holds server settings found outside the config file
type overrides struct {
	apiURL string
	token  string
}

func (o overrides) hasServer() bool {
	return o.apiURL != "" && o.token != ""
}

func (o overrides) apply(cfg *Config) {
	if o.apiURL != "" {
		cfg.Server.APIURL = o.apiURL
	}
	if o.token != "" {
		cfg.Server.Token = o.token
	}
}

// 🌱 environment merges the dotenv file and the process environment.
// The process environment wins over the file but only its PLL_ keys count.
func (opts LoadOptions) environment(ctx context.Context) (overrides, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	fileVals := map[string]string{}
	if opts.EnvFile != "" {
		vals, err := godotenv.Read(opts.EnvFile)
		switch {
		case err == nil:
			fileVals = vals
			zerolog.Ctx(ctx).Debug().Str("path", opts.EnvFile).Int("keys", len(vals)).Msg("read env file")
		case errors.Is(err, os.ErrNotExist) && !opts.RequireEnvFile:
			zerolog.Ctx(ctx).Debug().Str("path", opts.EnvFile).Msg("no env file")
		default:
			return overrides{}, errors.Errorf("reading env file %s: %w", opts.EnvFile, err)
		}
	}

	pick := func(envKey string, fileKeys []string) string {
		if v, ok := lookup(envKey); ok && v != "" {
			return v
		}
		for _, k := range fileKeys {
			if v := fileVals[k]; v != "" {
				return v
			}
		}
		return ""
	}

	return overrides{
		apiURL: pick(apiURLEnvKey, apiURLFileKeys),
		token:  pick(tokenEnvKey, tokenFileKeys),
	}, nil
}
