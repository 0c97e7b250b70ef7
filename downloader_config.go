//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config contains the configuration for the downloader
type Config struct {
	// HttpClient to use to perform HTTP requests. If nil http.DefaultClient
	// is used; no request timeout is applied unless the client sets one.
	HttpClient *http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called
	// when the HTTP HEAD request is done, before starting the download.
	// If the function returns an error, the download is aborted.
	// It is not called if the HEAD request failed.
	AcceptFunc func(head *http.Response) error
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// Progress receives the progress notifications. If nil, progress is
	// logged on Logger.
	Progress ProgressFunc
	// Logger used to report the download status. If nil nothing is logged.
	Logger *zap.Logger
}

func (c Config) client() *http.Client {
	if c.HttpClient != nil {
		return c.HttpClient
	}
	return http.DefaultClient
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c Config) progressFunc() ProgressFunc {
	if c.Progress != nil {
		return c.Progress
	}
	log := c.logger()
	return func(p Progress) {
		if p.Done {
			log.Info("Hyper-sync download completed",
				zap.String("path", p.Path),
				zap.Int64("bytes", p.Completed))
			return
		}
		log.Info("Hyper-sync downloading chain state",
			zap.Float64("percent", p.Percent),
			zap.Int64("completed", p.Completed),
			zap.Int64("total", p.Total))
	}
}

func (c Config) setHeaders(req *http.Request) {
	for k, v := range c.ExtraHeaders {
		req.Header.Set(k, v)
	}
}
