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

package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/pll/cmd/pll/opts"
	"github.com/walteh/pll/pkg/log"
)

// NewProfilesCmd lists the configured profiles
func NewProfilesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured import profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.Config(ctx)
			if err != nil {
				return err
			}

			if len(cfg.Profiles) == 0 {
				log.FromContext(ctx).Infof("no profiles in %s", cfg.Location())
				return nil
			}

			data := [][]string{{"Name", "Append", "Tags", "Date pattern", "Output format", "Ignore"}}
			for _, p := range cfg.Profiles {
				data = append(data, []string{
					p.Name,
					p.AppendString,
					strings.Join(p.Tags, ", "),
					p.InputDateRegex,
					p.OutputDateFormat,
					strings.Join(p.IgnorePatterns, ", "),
				})
			}
			log.FromContext(ctx).Table(data)
			return nil
		},
	}
}
