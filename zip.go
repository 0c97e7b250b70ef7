//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// ZipDecompressor extracts zip archives.
type ZipDecompressor struct{}

// Decompress implements Decompressor
func (ZipDecompressor) Decompress(archive *os.File, targetDir string, include IncludeFunc) error {
	info, err := archive.Stat()
	if err != nil {
		return errors.Wrap(err, "reading archive size")
	}
	reader, err := zip.NewReader(archive, info.Size())
	if err != nil {
		return errors.Wrap(err, "reading zip directory")
	}

	targetDir, err = filepath.Abs(targetDir)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return errors.Wrapf(err, "creating %s", targetDir)
	}

	// The marker is written last, so that an interrupted extraction is
	// retried on the next start.
	var marker *zip.File
	for _, f := range reader.File {
		if !include(f.Name) {
			continue
		}
		if strings.TrimPrefix(f.Name, "./") == filepath.ToSlash(MarkerFile) {
			marker = f
			continue
		}
		if err := unzipFile(f, targetDir); err != nil {
			return errors.Wrapf(err, "extracting %s", f.Name)
		}
	}
	if marker != nil {
		if err := unzipFile(marker, targetDir); err != nil {
			return errors.Wrapf(err, "extracting %s", marker.Name)
		}
	}
	return nil
}

func unzipFile(f *zip.File, destination string) error {
	filePath := filepath.Join(destination, f.Name)
	if filePath == filepath.Clean(destination) {
		// Entries like "./" name the target directory, which already exists
		return nil
	}
	if !strings.HasPrefix(filePath, filepath.Clean(destination)+string(os.PathSeparator)) {
		return errors.Errorf("invalid file path: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(filePath, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
