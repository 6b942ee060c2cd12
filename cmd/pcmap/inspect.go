package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/origin"
	"github.com/arloliu/pcmap/section"
)

type lookupParams struct {
	snapshot  string
	listing   string
	addresses []string
}

type dumpParams struct {
	snapshot string
	listing  string
}

func runLookup(logger log.Logger, params lookupParams, w io.Writer) error {
	m, err := readSnapshot(logger, params.snapshot)
	if err != nil {
		return err
	}
	frames, err := readFrames(params.listing)
	if err != nil {
		return err
	}

	for _, s := range params.addresses {
		addr, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", s, err)
		}

		o, ok := m.FindOrigin(addr)
		if !ok {
			fmt.Fprintf(w, "%#x\tnot found\n", addr)
			continue
		}
		fmt.Fprintf(w, "%#x\t%s\n", addr, frames.Describe(o))
	}

	return nil
}

func runDump(logger log.Logger, params dumpParams, w io.Writer) error {
	m, err := readSnapshot(logger, params.snapshot)
	if err != nil {
		return err
	}
	frames, err := readFrames(params.listing)
	if err != nil {
		return err
	}

	if m.IsEmpty() {
		fmt.Fprintln(w, "empty map")
		return nil
	}

	fmt.Fprintf(w, "range:   [%#x, %#x]\n", m.RangeStart(), m.RangeEnd())
	fmt.Fprintf(w, "entries: %d\n", m.Len())
	fmt.Fprintf(w, "bytes:   %d\n", m.MemorySize())
	for r := range m.Ranges() {
		fmt.Fprintf(w, "%#x-%#x\t%s\n", r.Start, r.End, frames.Describe(r.Origin))
	}

	return nil
}

func readSnapshot(logger log.Logger, path string) (*codemap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	h, err := section.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	_ = level.Debug(logger).Log("msg", "read snapshot", "file", path, "bytes", len(data),
		"entries", h.EntryCount, "big_endian", h.Flag.IsBigEndian(),
		"address_compression", h.Flag.AddressCompression(), "origin_compression", h.Flag.OriginCompression(), "raw_bytes", h.RawSize())

	m, err := codemap.Restore(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// readFrames rebuilds the frame names of a listing. Without a listing,
// frames are printed by identity.
func readFrames(path string) (*origin.FrameTable, error) {
	if path == "" {
		return origin.NewFrameTable(), nil
	}

	l, err := readListing(path)
	if err != nil {
		return nil, err
	}

	frames := origin.NewFrameTable()
	for i, e := range l.Entries {
		if _, err := e.Origin(frames); err != nil {
			return nil, fmt.Errorf("%s: entry %d: %w", path, i, err)
		}
	}

	return frames, nil
}
