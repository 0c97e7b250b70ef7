//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NodeConfig is the subset of the node configuration read by hyper-sync.
// It is never modified.
type NodeConfig struct {
	Server    ServerConfig    `toml:"server" yaml:"server"`
	HyperSync HyperSyncConfig `toml:"hypersync" yaml:"hypersync"`
}

// ServerConfig contains the node server settings.
type ServerConfig struct {
	DBRoot string `toml:"db_root" yaml:"db_root"`
}

// HyperSyncConfig contains the optional hyper-sync settings.
type HyperSyncConfig struct {
	URL               string   `toml:"url" yaml:"url"`
	ArchiveName       string   `toml:"archive_name" yaml:"archive_name"`
	InactivityTimeout Duration `toml:"inactivity_timeout" yaml:"inactivity_timeout"`
}

// Duration is a time.Duration written as a string ("30s") in configuration
// files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadNodeConfig reads the node configuration from path. Files ending in
// .yaml or .yml are decoded as YAML, anything else as TOML.
func LoadNodeConfig(path string) (NodeConfig, error) {
	var cfg NodeConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading node configuration")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "parsing %s", path)
	}
	if cfg.Server.DBRoot == "" {
		return cfg, newError(ErrPathResolution, nil, "%s: server.db_root is not set", path)
	}
	return cfg, nil
}

// DataRoot returns the node chain data directory.
func (c NodeConfig) DataRoot() string {
	return c.Server.DBRoot
}

// Options returns the Bootstrapper options described by the configuration.
func (c NodeConfig) Options() Options {
	return Options{
		DataRoot:    c.DataRoot(),
		URL:         c.HyperSync.URL,
		ArchiveName: c.HyperSync.ArchiveName,
		Download: Config{
			InactivityTimeout: c.HyperSync.InactivityTimeout.Duration,
		},
	}
}
