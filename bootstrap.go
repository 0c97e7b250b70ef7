//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package hypersync

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

const (
	// DefaultURL is the location of the chain-state snapshot.
	DefaultURL = "https://d1joz5daoz8ntk.cloudfront.net/bg_chain_data07282019.zip"
	// DefaultArchiveName is the name of the downloaded archive, stored in
	// the parent directory of the data root.
	DefaultArchiveName = "bg_chain_data2.zip"
)

// Hyper-sync is not available on this architecture.
const unsupportedArch = "arm"

// Options configures a Bootstrapper.
type Options struct {
	// DataRoot is the node chain data directory.
	DataRoot string
	// URL of the snapshot archive. Defaults to DefaultURL.
	URL string
	// ArchiveName defaults to DefaultArchiveName.
	ArchiveName string
	// Download is the downloader configuration. Its Logger defaults to
	// the Bootstrapper one.
	Download Config
	// Decompressor defaults to ZipDecompressor.
	Decompressor Decompressor
	// Include selects the archive entries to extract. Defaults to
	// IncludeAll.
	Include IncludeFunc
	Logger  *zap.Logger
}

// Report describes what a bootstrap run did.
type Report struct {
	// State is the state evaluated before running.
	State   State
	Archive string
	// Session is set if a download was attempted.
	Session   *Session
	Extracted bool
	// Skipped is set if hyper-sync is not supported on this machine.
	Skipped bool
}

// Bootstrapper drives the bootstrap stages for a data directory.
type Bootstrapper struct {
	opts Options
	log  *zap.Logger
}

// New returns a Bootstrapper with the given options, filling in defaults.
func New(opts Options) *Bootstrapper {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.ArchiveName == "" {
		opts.ArchiveName = DefaultArchiveName
	}
	if opts.Decompressor == nil {
		opts.Decompressor = ZipDecompressor{}
	}
	if opts.Include == nil {
		opts.Include = IncludeAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Download.Logger == nil {
		opts.Download.Logger = opts.Logger
	}
	return &Bootstrapper{
		opts: opts,
		log:  opts.Logger.Named("hypersync"),
	}
}

// ArchivePath returns the location of the snapshot archive: a file named
// name in the parent directory of dataRoot.
func ArchivePath(dataRoot, name string) (string, error) {
	if dataRoot == "" {
		return "", newError(ErrPathResolution, nil, "data root not configured")
	}
	root := filepath.Clean(dataRoot)
	parent := filepath.Dir(root)
	if parent == root {
		return "", newError(ErrPathResolution, nil, "data root %s has no parent directory", dataRoot)
	}
	return filepath.Join(parent, name), nil
}

// ArchivePath returns the location of the snapshot archive.
func (b *Bootstrapper) ArchivePath() (string, error) {
	return ArchivePath(b.opts.DataRoot, b.opts.ArchiveName)
}

// State evaluates the current bootstrap state.
func (b *Bootstrapper) State() (State, error) {
	archive, err := b.ArchivePath()
	if err != nil {
		return NeedsDownload, err
	}
	return Evaluate(b.opts.DataRoot, archive), nil
}

// Run performs the stages needed by the data root. The first failing stage
// stops the run and its error is returned: a failed download is never
// followed by an extraction. If an archive already on disk cannot be
// extracted, its download is resumed and the extraction retried once.
func (b *Bootstrapper) Run(ctx context.Context) (*Report, error) {
	archive, err := b.ArchivePath()
	if err != nil {
		return &Report{}, err
	}
	report := &Report{
		State:   Evaluate(b.opts.DataRoot, archive),
		Archive: archive,
	}
	log := b.log.With(zap.Stringer("state", report.State), zap.String("archive", archive))

	switch report.State {
	case NotNeeded:
		log.Debug("Hyper-sync not needed")
		return report, nil
	case NeedsDownload:
		log.Info("Starting hyper-sync...", zap.String("url", b.opts.URL))
		if err := b.download(ctx, report); err != nil {
			return report, err
		}
	}

	err = b.extract(log, report)
	if report.State == NeedsExtract && errors.Is(err, ErrExtraction) {
		// The archive may be the leftover of an interrupted download
		log.Warn("Hyper-sync cannot extract archive, resuming download", zap.Error(err))
		if err := b.download(ctx, report); err != nil {
			return report, err
		}
		err = b.extract(log, report)
	}
	return report, err
}

func (b *Bootstrapper) download(ctx context.Context, report *Report) error {
	session, err := Download(ctx, b.opts.URL, report.Archive, b.opts.Download)
	report.Session = session
	return err
}

func (b *Bootstrapper) extract(log *zap.Logger, report *Report) error {
	log.Info("Hyper-sync extracting chain state", zap.String("target", b.opts.DataRoot))
	if err := Extract(report.Archive, b.opts.DataRoot, b.opts.Include, b.opts.Decompressor); err != nil {
		return err
	}
	report.Extracted = true
	log.Info("Hyper-sync extraction completed")
	return nil
}

// Try runs the bootstrap on a best-effort basis: errors are logged and
// never returned, so that the node can continue with a normal sync.
// Nothing is done on unsupported architectures.
func (b *Bootstrapper) Try(ctx context.Context) *Report {
	if !Supported() {
		b.log.Info("Hyper-sync not supported on this architecture", zap.String("arch", runtime.GOARCH))
		return &Report{Skipped: true}
	}
	report, err := b.Run(ctx)
	if err != nil {
		b.log.Warn("Hyper-sync failed, continuing with normal sync", zap.Error(err))
	}
	return report
}

// Supported reports whether hyper-sync can run on this machine.
func Supported() bool {
	return supportedArch(runtime.GOARCH)
}

func supportedArch(goarch string) bool {
	return goarch != unsupportedArch
}
