//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"io"
)

// ProgressStep is the minimum increase, in percentage points, between two
// progress notifications.
const ProgressStep = 10.0

// Progress is a snapshot of a running download.
type Progress struct {
	URL       string
	Path      string
	Completed int64
	// Total is the size of the remote file, or -1 if unknown.
	Total int64
	// Percent is zero when Total is unknown.
	Percent float64
	// Done is set on the notification sent after the transfer completed.
	Done bool
}

// ProgressFunc receives progress notifications.
type ProgressFunc func(Progress)

// ProgressReader is a pass-through io.Reader that counts the bytes read
// and notifies a ProgressFunc every time the completion percentage grows
// by more than ProgressStep points.
type ProgressReader struct {
	in          io.Reader
	notify      ProgressFunc
	completed   int64
	total       int64
	lastPercent float64
}

// NewProgressReader wraps in. The counter starts at offset, so that a
// resumed download reports the progress of the whole file. If total is not
// positive no notification is ever sent.
func NewProgressReader(in io.Reader, offset, total int64, notify ProgressFunc) *ProgressReader {
	return &ProgressReader{
		in:        in,
		notify:    notify,
		completed: offset,
		total:     total,
	}
}

// Read implements io.Reader
func (p *ProgressReader) Read(buf []byte) (int, error) {
	n, err := p.in.Read(buf)
	if n > 0 {
		p.completed += int64(n)
		p.check()
	}
	return n, err
}

// Completed returns the bytes read so far, including the initial offset.
func (p *ProgressReader) Completed() int64 {
	return p.completed
}

// Percent returns the completion percentage, or 0 if the total is unknown.
func (p *ProgressReader) Percent() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.completed) / float64(p.total) * 100
}

func (p *ProgressReader) check() {
	if p.total <= 0 || p.notify == nil {
		return
	}
	percent := p.Percent()
	if percent-p.lastPercent <= ProgressStep {
		return
	}
	p.lastPercent = percent
	p.notify(Progress{
		Completed: p.completed,
		Total:     p.total,
		Percent:   percent,
	})
}
