package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/compress"
	"github.com/arloliu/pcmap/format"
	"github.com/arloliu/pcmap/internal/listing"
)

type buildParams struct {
	listing            string
	output             string
	addressCompression string
	originCompression  string
	bigEndian          bool
}

func runBuild(logger log.Logger, params buildParams) error {
	l, err := readListing(params.listing)
	if err != nil {
		return err
	}

	var mapOpts []codemap.MapOption
	if params.bigEndian {
		mapOpts = append(mapOpts, codemap.WithBigEndian())
	}

	m, frames, err := l.Build(mapOpts...)
	if err != nil {
		return fmt.Errorf("build map from %s: %w", params.listing, err)
	}

	addressCompression, err := parseCompression(params.addressCompression)
	if err != nil {
		return err
	}
	originCompression, err := parseCompression(params.originCompression)
	if err != nil {
		return err
	}

	data, err := m.Snapshot(
		codemap.WithAddressCompression(addressCompression),
		codemap.WithOriginCompression(originCompression),
	)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	if err := os.WriteFile(params.output, data, 0o644); err != nil { //nolint:gosec
		return err
	}

	ranges := 0
	for range m.Ranges() {
		ranges++
	}

	stats := compress.CompressionStats{
		OriginalSize:   int64(m.MemorySize()),
		CompressedSize: int64(len(data)),
	}
	_ = level.Info(logger).Log("msg", "wrote snapshot", "file", params.output,
		"entries", len(l.Entries), "ranges", ranges, "frames", frames.Len(),
		"map_bytes", m.MemorySize(), "snapshot_bytes", len(data),
		"ratio", fmt.Sprintf("%.2f", stats.CompressionRatio()))

	return nil
}

func readListing(path string) (*listing.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := listing.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return l, nil
}

func parseCompression(name string) (format.CompressionType, error) {
	c, ok := format.ParseCompressionType(name)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q", name)
	}

	return c, nil
}
