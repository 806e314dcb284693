// Package iofetch acquires the source dataset and converts it to
// ingestion records. The default source is the NCBI taxonomy dump
// (taxdump.tar.gz); any archive with the same names.dmp/nodes.dmp
// layout works, local or remote.
// This is an impure I/O package that implements contracts defined
// in pkg/.
package iofetch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/gntree/pkg/config"
	"github.com/gnames/gntree/pkg/lifecycle"
	"github.com/gnames/gntree/pkg/taxa"
	"github.com/hashicorp/go-getter"
)

// fetcher implements the lifecycle.Fetcher interface.
type fetcher struct {
	cfg *config.Config
}

// New creates a new Fetcher.
func New(cfg *config.Config) lifecycle.Fetcher {
	return &fetcher{cfg: cfg}
}

// Fetch downloads (or locates) the dump archive, extracts it, and
// streams one record per taxon to fn. Records keep the source order of
// nodes.dmp; parent ids may reference taxa that appear later.
func (f *fetcher) Fetch(
	ctx context.Context,
	src string,
	fn func(rec taxa.Record) error,
) error {
	dumpDir, cleanup, err := f.dumpDir()
	if err != nil {
		return err
	}
	defer cleanup()

	if err = fetchDump(ctx, src, dumpDir); err != nil {
		return DownloadError(src, err)
	}

	names, err := parseNames(filepath.Join(dumpDir, "names.dmp"))
	if err != nil {
		return err
	}
	slog.Info("Parsed scientific names", "count", len(names))

	return parseNodes(filepath.Join(dumpDir, "nodes.dmp"), names, fn)
}

// dumpDir returns the directory the archive is unpacked into. With a
// configured cache directory extracted files persist between runs;
// otherwise a temporary directory is used and removed afterwards.
func (f *fetcher) dumpDir() (string, func(), error) {
	if dir := f.cfg.Fetch.CacheDir; dir != "" {
		dumpDir := filepath.Join(dir, "taxdump")
		if err := gnsys.MakeDir(dumpDir); err != nil {
			return "", nil, CacheDirError(dumpDir, err)
		}
		return dumpDir, func() {}, nil
	}

	tempDir, err := os.MkdirTemp("", "gntree-taxdump-*")
	if err != nil {
		return "", nil, CacheDirError("", err)
	}
	return tempDir, func() { os.RemoveAll(tempDir) }, nil
}

// fetchDump resolves src with go-getter, which handles local paths,
// http(s) and ftp URLs alike and unpacks tar.gz archives into dst.
func fetchDump(ctx context.Context, src, dst string) error {
	slog.Info("Fetching taxonomy dump", "source", src)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     src,
		Dst:     dst,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	return client.Get()
}
