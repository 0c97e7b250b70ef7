//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.bug.st/hypersync"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download and extract the snapshot if the data directory needs it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(flags.logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts, err := flags.options(log)
			if err != nil {
				return err
			}

			ctx := context.Background()
			b := hypersync.New(opts)
			if !strict {
				b.Try(ctx)
				return nil
			}
			if !hypersync.Supported() {
				log.Info("Hyper-sync not supported on this architecture")
				return nil
			}
			_, err = b.Run(ctx)
			return err
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error if any stage fails")
	return cmd
}
