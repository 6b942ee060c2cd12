package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/format"
	"github.com/arloliu/pcmap/section"
)

const testListing = `base: 0x400000
entries:
  - label: 0x0
    index: 5
  - label: 0x10
    index: 9
    frame: inlined.callee
  - label: 0x20
`

func writeListing(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "listing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testListing), 0o600))

	return path
}

func buildSnapshot(t *testing.T, params buildParams) string {
	t.Helper()

	params.listing = writeListing(t)
	params.output = filepath.Join(t.TempDir(), "map.bin")
	if params.addressCompression == "" {
		params.addressCompression = "none"
	}
	if params.originCompression == "" {
		params.originCompression = "none"
	}

	var logs bytes.Buffer
	require.NoError(t, runBuild(log.NewLogfmtLogger(&logs), params))
	require.Contains(t, logs.String(), `msg="wrote snapshot"`)
	require.Contains(t, logs.String(), "ranges=2")

	return params.output
}

func TestBuild(t *testing.T) {
	path := buildSnapshot(t, buildParams{
		addressCompression: "s2",
		originCompression:  "zstd",
		bigEndian:          true,
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	h, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.True(t, h.Flag.IsBigEndian())
	require.Equal(t, format.CompressionS2, h.Flag.AddressCompression())
	require.Equal(t, format.CompressionZstd, h.Flag.OriginCompression())
	require.Equal(t, uint64(0x400000), h.RangeStart)
	require.Equal(t, uint64(0x40001f), h.RangeEnd)
}

func TestBuild_Errors(t *testing.T) {
	params := buildParams{
		listing:            writeListing(t),
		output:             filepath.Join(t.TempDir(), "map.bin"),
		addressCompression: "brotli",
		originCompression:  "none",
	}
	require.ErrorContains(t, runBuild(log.NewNopLogger(), params), "unknown compression")

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("entries: []\n"), 0o600))
	params.listing = empty
	require.ErrorIs(t, runBuild(log.NewNopLogger(), params), errs.ErrEmptyListing)
}

func TestLookup(t *testing.T) {
	snapshot := buildSnapshot(t, buildParams{originCompression: "lz4"})

	var out bytes.Buffer
	err := runLookup(log.NewNopLogger(), lookupParams{
		snapshot:  snapshot,
		listing:   writeListing(t),
		addresses: []string{"0x400004", "4194324", "0x400020"},
	}, &out)
	require.NoError(t, err)
	require.Equal(t, "0x400004\tbc#5\n0x400014\tbc#9@inlined.callee\n0x400020\tnot found\n", out.String())

	out.Reset()
	err = runLookup(log.NewNopLogger(), lookupParams{snapshot: snapshot, addresses: []string{"0x400014"}}, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "bc#9@frame:0x")

	err = runLookup(log.NewNopLogger(), lookupParams{snapshot: snapshot, addresses: []string{"pc"}}, &out)
	require.ErrorContains(t, err, `invalid address "pc"`)
}

func TestDump(t *testing.T) {
	snapshot := buildSnapshot(t, buildParams{addressCompression: "zstd"})

	var out, logs bytes.Buffer
	err := runDump(log.NewLogfmtLogger(&logs), dumpParams{snapshot: snapshot, listing: writeListing(t)}, &out)
	require.NoError(t, err)
	require.Equal(t, "range:   [0x400000, 0x40001f]\n"+
		"entries: 3\n"+
		"bytes:   41\n"+
		"0x400000-0x40000f\tbc#5\n"+
		"0x400010-0x40001f\tbc#9@inlined.callee\n", out.String())
	require.Contains(t, logs.String(), "address_compression=Zstd")
}

func TestDump_CorruptSnapshot(t *testing.T) {
	snapshot := buildSnapshot(t, buildParams{})

	data, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(snapshot, data, 0o600))

	err = runDump(log.NewNopLogger(), dumpParams{snapshot: snapshot}, &bytes.Buffer{})
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestCheckError(t *testing.T) {
	require.Equal(t, 0, checkError(nil))
	require.Equal(t, 1, checkError(errs.ErrEmptyListing))
}
