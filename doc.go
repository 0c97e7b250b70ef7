//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package hypersync bootstraps a node data directory from a pre-built
// chain-state snapshot.
//
// The bootstrap is split in three stages: the state of the data directory
// is evaluated from filesystem evidence, the snapshot archive is downloaded
// (resuming a partial file if one is present) and finally the archive is
// extracted into the data directory. Every stage reports errors to the
// caller; Bootstrapper.Try is the single place where failures are logged
// and ignored so that the node can fall back to a normal sync.
package hypersync
