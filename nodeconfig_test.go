//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadNodeConfigTOML(t *testing.T) {
	path := writeConfig(t, "grin-server.toml", `
[server]
db_root = "/node/chain_data"
api_http_addr = "127.0.0.1:8513"

[hypersync]
url = "https://example.com/snapshot.zip"
inactivity_timeout = "30s"
`)
	cfg, err := LoadNodeConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/node/chain_data", cfg.DataRoot())
	require.Equal(t, "https://example.com/snapshot.zip", cfg.HyperSync.URL)
	require.Equal(t, 30*time.Second, cfg.HyperSync.InactivityTimeout.Duration)

	opts := cfg.Options()
	require.Equal(t, "/node/chain_data", opts.DataRoot)
	require.Equal(t, "https://example.com/snapshot.zip", opts.URL)
	require.Empty(t, opts.ArchiveName)
	require.Equal(t, 30*time.Second, opts.Download.InactivityTimeout)
}

func TestLoadNodeConfigYAML(t *testing.T) {
	path := writeConfig(t, "node.yaml", `
server:
  db_root: /node/chain_data
hypersync:
  archive_name: snap.zip
  inactivity_timeout: 1m
`)
	cfg, err := LoadNodeConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/node/chain_data", cfg.DataRoot())
	require.Equal(t, "snap.zip", cfg.HyperSync.ArchiveName)
	require.Equal(t, time.Minute, cfg.HyperSync.InactivityTimeout.Duration)
}

func TestLoadNodeConfigErrors(t *testing.T) {
	_, err := LoadNodeConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	_, err = LoadNodeConfig(writeConfig(t, "bad.toml", "[server\ndb_root ="))
	require.Error(t, err)

	_, err = LoadNodeConfig(writeConfig(t, "empty.toml", "[server]\n"))
	require.ErrorIs(t, err, ErrPathResolution)

	_, err = LoadNodeConfig(writeConfig(t, "bad-duration.yml", "server:\n  db_root: /x\nhypersync:\n  inactivity_timeout: soon\n"))
	require.Error(t, err)
}
