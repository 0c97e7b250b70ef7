//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Session describes a single download of the snapshot archive.
type Session struct {
	URL  string
	Path string
	// Size is the remote size as reported by the HEAD request, or -1 if
	// unknown.
	Size int64
	// Offset is the length of the local file before the transfer started.
	Offset int64
	// Completed is the length of the local file after the transfer.
	Completed int64
}

// Download downloads reqURL into file. If file is already present its
// content is kept and the download is resumed from its current length.
//
// The size of the remote file is requested with a HEAD call; if that fails
// the download is attempted anyway without progress percentages.
func Download(ctx context.Context, reqURL, file string, config Config) (*Session, error) {
	log := config.logger().With(zap.String("url", reqURL), zap.String("path", file))

	u, err := url.Parse(reqURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, newError(ErrURLParse, err, "parsing %q", reqURL)
	}

	s := &Session{URL: u.String(), Path: file, Size: -1}
	if head, err := headRequest(ctx, s.URL, config); err != nil {
		log.Warn("Hyper-sync cannot get remote size", zap.Error(err))
	} else {
		if config.AcceptFunc != nil {
			if err := config.AcceptFunc(head); err != nil {
				return s, newError(ErrDownloadRejected, err, "HEAD %s", s.URL)
			}
		}
		s.Size = head.ContentLength
	}

	// Gather information about local file
	if info, err := os.Stat(file); err == nil {
		s.Offset = info.Size()
	}
	s.Completed = s.Offset

	if s.Size > 0 {
		if s.Offset == s.Size {
			log.Info("Hyper-sync archive already downloaded", zap.Int64("size", s.Size))
			return s, nil
		}
		if s.Offset > s.Size {
			return s, newError(ErrLocalFileLarger, nil, "%s has %d bytes, remote has %d", file, s.Offset, s.Size)
		}
	}

	ctx, wd := newWatchdog(ctx, config.InactivityTimeout)
	defer wd.Cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return s, newError(ErrURLParse, err, "setting up GET request")
	}
	config.setHeaders(req)
	resume := s.Offset > 0
	if resume {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", s.Offset))
		log.Info("Hyper-sync resuming download", zap.Int64("offset", s.Offset))
	}

	resp, err := config.client().Do(req)
	if err != nil {
		return s, newError(ErrNetwork, err, "performing GET request")
	}
	defer resp.Body.Close()

	switch {
	case resume && (resp.StatusCode == http.StatusPartialContent ||
		resp.StatusCode == http.StatusOK && resp.Header.Get("Content-Range") != ""):
		// Only a body starting exactly at the local length can be appended
		if start := contentRangeStart(resp.Header.Get("Content-Range")); start != s.Offset {
			return s, newError(ErrRangeNotSupported, nil, "GET with offset %d: server sent range starting at %d", s.Offset, start)
		}
	case resume && resp.StatusCode == http.StatusRequestedRangeNotSatisfiable &&
		unsatisfiedRangeSize(resp.Header.Get("Content-Range")) == s.Offset:
		// The server reports that the local file is already complete
		log.Info("Hyper-sync archive already downloaded", zap.Int64("size", s.Offset))
		s.Size = s.Offset
		return s, nil
	case resume && (resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusRequestedRangeNotSatisfiable):
		return s, newError(ErrRangeNotSupported, nil, "GET with offset %d: %s", s.Offset, resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return s, newError(ErrNetwork, nil, "GET: %s", resp.Status)
	}

	// Never truncate: a partial file is only ever continued
	out, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return s, newError(ErrFileOpen, err, "opening %s for writing", file)
	}

	notify := config.progressFunc()
	progress := NewProgressReader(kickReader{in: resp.Body, wd: wd}, s.Offset, s.Size, func(p Progress) {
		p.URL, p.Path = s.URL, s.Path
		notify(p)
	})
	_, copyErr := io.Copy(out, progress)
	closeErr := out.Close()
	s.Completed = progress.Completed()

	if copyErr != nil {
		if cause := context.Cause(ctx); cause != nil {
			copyErr = cause
		}
		return s, newError(ErrNetwork, copyErr, "downloading after %d bytes", s.Completed)
	}
	if closeErr != nil {
		return s, newError(ErrFileOpen, closeErr, "closing %s", file)
	}

	notify(Progress{
		URL:       s.URL,
		Path:      s.Path,
		Completed: s.Completed,
		Total:     s.Size,
		Percent:   progress.Percent(),
		Done:      true,
	})
	return s, nil
}

// headRequest performs a HEAD call. The returned response has its body
// already closed; a non-2xx status is reported as ErrSizeUnknown.
func headRequest(ctx context.Context, reqURL string, config Config) (*http.Response, error) {
	headReq, err := http.NewRequestWithContext(ctx, http.MethodHead, reqURL, nil)
	if err != nil {
		return nil, newError(ErrSizeUnknown, err, "setting up HEAD request")
	}
	config.setHeaders(headReq)
	headResp, err := config.client().Do(headReq)
	if err != nil {
		return nil, newError(ErrSizeUnknown, err, "performing HEAD request")
	}
	_, _ = io.Copy(io.Discard, headResp.Body)
	_ = headResp.Body.Close()

	if headResp.StatusCode < 200 || headResp.StatusCode > 299 {
		return nil, newError(ErrSizeUnknown, nil, "HEAD: %s", headResp.Status)
	}
	return headResp, nil
}

// unsatisfiedRangeSize parses the "bytes */<size>" Content-Range sent with
// a 416 response. It returns -1 if the header is missing or malformed.
func unsatisfiedRangeSize(contentRange string) int64 {
	size, found := strings.CutPrefix(contentRange, "bytes */")
	if !found {
		return -1
	}
	n, err := strconv.ParseInt(size, 10, 64)
	if err != nil {
		return -1
	}
	return n
}

// contentRangeStart parses the first byte position of a
// "bytes <start>-<end>/<size>" Content-Range. It returns -1 if the header is
// missing or malformed.
func contentRangeStart(contentRange string) int64 {
	spec, found := strings.CutPrefix(contentRange, "bytes ")
	if !found {
		return -1
	}
	start, _, found := strings.Cut(spec, "-")
	if !found {
		return -1
	}
	n, err := strconv.ParseInt(start, 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
