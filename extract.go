//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"os"
)

// IncludeFunc decides if an archive entry, identified by its slash
// separated name, must be extracted.
type IncludeFunc func(name string) bool

// IncludeAll approves every archive entry.
func IncludeAll(string) bool {
	return true
}

// Decompressor unpacks an archive into a directory.
type Decompressor interface {
	Decompress(archive *os.File, targetDir string, include IncludeFunc) error
}

// Extract opens archivePath and hands it to d, extracting into targetDir
// the entries approved by include. A nil include extracts everything.
func Extract(archivePath, targetDir string, include IncludeFunc, d Decompressor) error {
	if include == nil {
		include = IncludeAll
	}
	f, err := os.Open(archivePath)
	if err != nil {
		return newError(ErrFileOpen, err, "opening %s for extraction", archivePath)
	}
	defer f.Close()

	if err := d.Decompress(f, targetDir, include); err != nil {
		return newError(ErrExtraction, err, "decompressing %s", archivePath)
	}
	return nil
}
