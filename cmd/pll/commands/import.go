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
	"github.com/walteh/pll/pkg/importer"
	"github.com/walteh/pll/pkg/log"
	"github.com/walteh/pll/pkg/osmeta"
	"github.com/walteh/pll/pkg/upload"
	"gitlab.com/tozd/go/errors"
)

// NewImportCmd groups the import modes
func NewImportCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upload a directory of files",
		Long: `Import uploads every file directly inside a directory. For each file it will:
1. Skip it when it matches an ignore pattern
2. Optionally rename it to "<date> - <suffix><ext>"
3. Resolve its tags, creating missing ones on the server
4. Upload it once
5. Optionally delete it, only after the server confirmed the upload

Failed files are reported and left in place; the command still exits 0.`,
	}

	cmd.AddCommand(
		newImportDirCmd(opts),
		newImportProfileCmd(opts),
	)

	return cmd
}

type importFlags struct {
	tags      []string
	appendStr string
	rename    bool
	delete    bool
	osTags    bool
	dryRun    bool
}

func newImportDirCmd(opts *opts.RootOpts) *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "dir PATH",
		Short: "Import a directory with ad-hoc settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts, importer.Request{
				Dir:          args[0],
				Tags:         f.tags,
				AppendString: f.appendStr,
				Rename:       f.rename,
				Delete:       f.delete,
				UseOSTags:    f.osTags,
				DryRun:       f.dryRun,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&f.tags, "tag", "t", nil, "tag to apply to every file (repeatable)")
	cmd.Flags().StringVarP(&f.appendStr, "append", "a", "", "suffix for renamed files")
	cmd.Flags().BoolVar(&f.rename, "rename", false, "rename files to \"<date> - <suffix><ext>\"")
	cmd.Flags().BoolVar(&f.delete, "delete", false, "delete files after a confirmed upload")
	cmd.Flags().BoolVar(&f.osTags, "os-tags", false, "also read tags from file metadata (macOS)")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would happen without changing anything")

	return cmd
}

func newImportProfileCmd(opts *opts.RootOpts) *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "profile NAME PATH",
		Short: "Import a directory using a configured profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.Config(cmd.Context())
			if err != nil {
				return err
			}

			profile, err := cfg.Profile(args[0])
			if err != nil {
				return err
			}

			return runImport(cmd, opts, importer.Request{
				Dir:          args[1],
				Profile:      profile,
				AppendString: f.appendStr,
				Rename:       f.rename,
				Delete:       f.delete,
				DryRun:       f.dryRun,
			})
		},
	}

	cmd.Flags().StringVarP(&f.appendStr, "append", "a", "", "override the profile's rename suffix")
	cmd.Flags().BoolVar(&f.rename, "rename", true, "rename files to \"<date> - <suffix><ext>\"")
	cmd.Flags().BoolVar(&f.delete, "delete", false, "delete files after a confirmed upload")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "show what would happen without changing anything")

	return cmd
}

func runImport(cmd *cobra.Command, opts *opts.RootOpts, req importer.Request) error {
	ctx := cmd.Context()

	cfg, err := opts.Config(ctx)
	if err != nil {
		return err
	}

	client, err := opts.Client(ctx)
	if err != nil {
		return err
	}

	dir, err := opts.Tags(ctx)
	if err != nil {
		return err
	}

	im, err := importer.New(importer.Options{
		Tags:           dir,
		Uploader:       upload.New(client),
		OSTags:         osmeta.NewMacReader(),
		Console:        log.FromContext(ctx),
		IgnorePatterns: cfg.IgnorePatterns,
		LockDir:        opts.LockDir(),
	})
	if err != nil {
		return errors.Errorf("creating importer: %w", err)
	}

	if _, err := im.Run(ctx, req); err != nil {
		return errors.Errorf("importing %s: %w", req.Dir, err)
	}

	return nil
}
