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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL.
// Profiles are labeled blocks and env.NAME reads the process environment.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	// Define HCL schema
	type hclConfig struct {
		Server *struct {
			APIURL            string   `hcl:"api_url,optional"`
			Token             string   `hcl:"token,optional"`
			RequestsPerSecond *float64 `hcl:"requests_per_second,optional"`
			Timeout           string   `hcl:"timeout,optional"`
		} `hcl:"server,block"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
		Profiles       []struct {
			Name             string   `hcl:"name,label"`
			AppendString     string   `hcl:"append_string,optional"`
			Tags             []string `hcl:"tags,optional"`
			InputDateRegex   string   `hcl:"input_date_regex,optional"`
			InputDateFormat  string   `hcl:"input_date_format,optional"`
			OutputDateFormat string   `hcl:"output_date_format,optional"`
			IgnorePatterns   []string `hcl:"ignore_patterns,optional"`
		} `hcl:"profile,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		IgnorePatterns: hclCfg.IgnorePatterns,
	}

	if hclCfg.Server != nil {
		cfg.Server = Server{
			APIURL:  hclCfg.Server.APIURL,
			Token:   hclCfg.Server.Token,
			Timeout: hclCfg.Server.Timeout,
		}
		if hclCfg.Server.RequestsPerSecond != nil {
			cfg.Server.RequestsPerSecond = *hclCfg.Server.RequestsPerSecond
		}
	}

	for _, prof := range hclCfg.Profiles {
		cfg.Profiles = append(cfg.Profiles, Profile{
			Name:             prof.Name,
			AppendString:     prof.AppendString,
			Tags:             prof.Tags,
			InputDateRegex:   prof.InputDateRegex,
			InputDateFormat:  prof.InputDateFormat,
			OutputDateFormat: prof.OutputDateFormat,
			IgnorePatterns:   prof.IgnorePatterns,
		})
	}

	return cfg, nil
}

func envObject() cty.Value {
	vals := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vals[k] = cty.StringVal(v)
	}
	if len(vals) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vals)
}
