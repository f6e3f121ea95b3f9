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
	"github.com/spf13/cobra"
	"github.com/walteh/pll/cmd/pll/opts"
	"github.com/walteh/pll/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// NewTagsCmd groups the tag subcommands
func NewTagsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Inspect and create remote tags",
	}

	cmd.AddCommand(
		newTagsListCmd(opts),
		newTagsCreateCmd(opts),
	)

	return cmd
}

func newTagsListCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tag known to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := opts.Tags(ctx)
			if err != nil {
				return err
			}

			if err := dir.EnsurePopulated(ctx); err != nil {
				return errors.Errorf("listing tags: %w", err)
			}

			log.FromContext(ctx).TagTable(dir.Tags())
			return nil
		},
	}
}

func newTagsCreateCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME...",
		Short: "Create tags that do not exist yet",
		Long: `Create resolves each name against the server's tag listing and creates
the ones that are missing. Existing tags are reported with their id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := opts.Tags(ctx)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			failed := 0
			for _, name := range args {
				id, err := dir.GetOrCreate(ctx, name)
				if err != nil {
					console.Errorf("%s: %v", name, err)
					failed++
					continue
				}
				console.Successf("🏷️  %s → %s", name, id)
			}

			if failed > 0 {
				return errors.Errorf("%d of %d tags could not be created", failed, len(args))
			}
			return nil
		},
	}
}
