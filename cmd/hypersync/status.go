//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.bug.st/hypersync"
)

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the bootstrap state of the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(flags.logLevel)
			if err != nil {
				return err
			}
			opts, err := flags.options(log)
			if err != nil {
				return err
			}
			b := hypersync.New(opts)
			archive, err := b.ArchivePath()
			if err != nil {
				return err
			}
			state, err := b.State()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "data root: %s\narchive:   %s\nstate:     %s\n", opts.DataRoot, archive, state)
			return nil
		},
	}
}
