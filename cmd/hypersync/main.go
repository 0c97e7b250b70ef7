//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/hypersync"
	"go.uber.org/zap"
)

type rootFlags struct {
	configPath        string
	dataRoot          string
	url               string
	archiveName       string
	logLevel          string
	inactivityTimeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "hypersync",
		Short:         "Bootstrap a node data directory from a chain-state snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "node configuration file (TOML or YAML)")
	pf.StringVar(&flags.dataRoot, "data-root", "", "node chain data directory, overrides server.db_root")
	pf.StringVar(&flags.url, "url", "", "snapshot archive URL")
	pf.StringVar(&flags.archiveName, "archive-name", "", "snapshot archive file name")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.DurationVar(&flags.inactivityTimeout, "inactivity-timeout", 0, "abort the download after this long without data (0 disables)")

	root.AddCommand(newRunCmd(flags), newStatusCmd(flags))
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.Development = false
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// options builds the bootstrap options from the configuration file and the
// command line. A configuration that cannot be loaded is fatal.
func (f *rootFlags) options(log *zap.Logger) (hypersync.Options, error) {
	var opts hypersync.Options
	if f.configPath != "" {
		cfg, err := hypersync.LoadNodeConfig(f.configPath)
		if err != nil {
			return opts, err
		}
		opts = cfg.Options()
	}
	if f.dataRoot != "" {
		opts.DataRoot = f.dataRoot
	}
	if f.url != "" {
		opts.URL = f.url
	}
	if f.archiveName != "" {
		opts.ArchiveName = f.archiveName
	}
	if f.inactivityTimeout != 0 {
		opts.Download.InactivityTimeout = f.inactivityTimeout
	}
	if opts.DataRoot == "" {
		return opts, fmt.Errorf("no data root: use --config or --data-root")
	}
	opts.Logger = log
	return opts, nil
}
