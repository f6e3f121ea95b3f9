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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/walteh/pll/cmd/pll/commands"
	"github.com/walteh/pll/cmd/pll/opts"
	"github.com/walteh/pll/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const envPrefix = "PLL"

// NewRootCmd builds the pll command tree writing human output to stdout
// and structured logs to stderr
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootOpts := opts.New(v)

	rootCmd := &cobra.Command{
		Use:   "pll",
		Short: "Bulk-load local files into Paperless",
		Long: `pll uploads a directory of files to a Paperless-ngx server. It can rename
files from the date embedded in their name, resolve or create tags, and delete
local files once the server has confirmed the upload.

Settings come from the config file (default $XDG_CONFIG_HOME/pll/config.yml),
a config.env file and PLL_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(stderr, v.GetBool(opts.KeyDebug))

			ctx := logger.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(stdout, logger))
			cmd.SetContext(ctx)
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := addRootFlags(rootCmd, v); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		commands.NewTagsCmd(rootOpts),
		commands.NewImportCmd(rootOpts),
		commands.NewProfilesCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

func addRootFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file path (default $XDG_CONFIG_HOME/pll/config.yml)")
	flags.String("env-file", "", "dotenv file with APIURL and TOKEN (default ./config.env)")
	flags.BoolP("debug", "d", false, "enable debug logging")
	flags.String("lock-dir", "", "directory for import session locks (default OS temp dir)")
	_ = flags.MarkHidden("lock-dir")

	for key, flag := range map[string]string{
		opts.KeyConfig:  "config",
		opts.KeyEnvFile: "env-file",
		opts.KeyDebug:   "debug",
		opts.KeyLockDir: "lock-dir",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return errors.Errorf("binding flag %s: %w", flag, err)
		}
	}

	return nil
}

func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
			return err
		},
	}
}
