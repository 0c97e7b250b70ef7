//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"github.com/pkg/errors"
)

// Error kinds reported by the bootstrap stages. Use errors.Is to match them.
var (
	ErrURLParse          = errors.New("invalid snapshot URL")
	ErrNetwork           = errors.New("network error")
	ErrSizeUnknown       = errors.New("remote size unknown")
	ErrFileOpen          = errors.New("cannot open file")
	ErrExtraction        = errors.New("extraction failed")
	ErrPathResolution    = errors.New("cannot resolve path")
	ErrRangeNotSupported = errors.New("server does not support range requests")
	ErrLocalFileLarger   = errors.New("local file is larger than remote file")
	ErrDownloadRejected  = errors.New("download rejected")
)

// stageError tags a wrapped cause with one of the error kinds above.
type stageError struct {
	kind error
	err  error
}

func (e *stageError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *stageError) Unwrap() error {
	return e.err
}

func (e *stageError) Is(target error) bool {
	return target == e.kind
}

// newError returns an error of the given kind carrying cause annotated
// with the formatted message. A nil cause produces a plain message.
func newError(kind, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return &stageError{kind: kind, err: errors.Errorf(format, args...)}
	}
	return &stageError{kind: kind, err: errors.Wrapf(cause, format, args...)}
}
