//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"os"
	"path/filepath"
)

// State is the bootstrap stage still needed by a data directory.
type State int

const (
	// NeedsDownload means neither the chain state nor the archive is present.
	NeedsDownload State = iota
	// NeedsExtract means the archive is present (maybe partially) but the
	// chain state has not been materialized.
	NeedsExtract
	// NotNeeded means the chain state is already present.
	NotNeeded
)

func (s State) String() string {
	switch s {
	case NeedsDownload:
		return "needs-download"
	case NeedsExtract:
		return "needs-extract"
	case NotNeeded:
		return "not-needed"
	default:
		return "unknown"
	}
}

// MarkerFile is the path, relative to the data root, of the file whose
// presence proves that the chain state has been materialized.
var MarkerFile = filepath.Join("header", "header_head", "pmmr_data.bin")

// MarkerPath returns the marker file path inside dataRoot.
func MarkerPath(dataRoot string) string {
	return filepath.Join(dataRoot, MarkerFile)
}

// Evaluate returns the bootstrap state of dataRoot. It only probes the
// filesystem and is safe to call any number of times.
//
// Errors other than non-existence while probing the marker (for example a
// permission error) are treated as if the marker was missing.
func Evaluate(dataRoot, archivePath string) State {
	if info, err := os.Stat(MarkerPath(dataRoot)); err == nil && info.Mode().IsRegular() {
		return NotNeeded
	}
	if f, err := os.Open(archivePath); err == nil {
		_ = f.Close()
		return NeedsExtract
	}
	return NeedsDownload
}
