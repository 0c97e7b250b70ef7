//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"context"
	"io"
	"os"
	"time"
)

type watchdog struct {
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

// newWatchdog returns a context that is cancelled with os.ErrDeadlineExceeded
// if Kick is not called at least every timeout. A zero timeout disables it.
func newWatchdog(parent context.Context, timeout time.Duration) (context.Context, *watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	var timer *time.Timer
	if timeout > 0 {
		timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return ctx, &watchdog{
		cancel:  cancel,
		timer:   timer,
		timeout: timeout,
	}
}

func (wd *watchdog) Kick() {
	if wd.timeout > 0 {
		wd.timer.Reset(wd.timeout)
	}
}

func (wd *watchdog) Cancel() {
	if wd.timeout > 0 {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}

// kickReader kicks the watchdog on every successful read.
type kickReader struct {
	in io.Reader
	wd *watchdog
}

func (k kickReader) Read(buf []byte) (int, error) {
	n, err := k.in.Read(buf)
	if n > 0 {
		k.wd.Kick()
	}
	return n, err
}
