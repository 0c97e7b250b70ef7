//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// snapshotServer serves a file with HEAD and Range support and records
// the requests it receives.
type snapshotServer struct {
	*httptest.Server
	content []byte

	// noHead makes HEAD requests fail with 405.
	noHead bool
	// ignoreRange makes GET requests always return the whole file.
	ignoreRange bool

	mu     sync.Mutex
	gets   int
	ranges []string
}

type serverOption func(*snapshotServer)

func withoutHead(s *snapshotServer)   { s.noHead = true }
func withoutRanges(s *snapshotServer) { s.ignoreRange = true }

func newSnapshotServer(t *testing.T, content []byte, opts ...serverOption) *snapshotServer {
	s := &snapshotServer{content: content}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *snapshotServer) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead && s.noHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.Method == http.MethodGet {
		s.mu.Lock()
		s.gets++
		s.ranges = append(s.ranges, r.Header.Get("Range"))
		s.mu.Unlock()
		if s.ignoreRange {
			r.Header.Del("Range")
		}
	}
	http.ServeContent(w, r, "snapshot.zip", time.Time{}, bytes.NewReader(s.content))
}

func (s *snapshotServer) requests() (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, append([]string(nil), s.ranges...)
}

func (s *snapshotServer) url() string {
	return s.URL + "/bg_chain_data.zip"
}

// makeZip builds a zip archive containing the given files, in order.
func makeZip(t *testing.T, files ...[2]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.Create(f[0])
		require.NoError(t, err)
		_, err = fw.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func makeContent(size int) []byte {
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 251)
	}
	return content
}
