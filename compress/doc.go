// Package compress provides compression and decompression codecs for code map
// snapshot payloads.
//
// A snapshot stores the two delta-encoded streams of a map (addresses and
// origins). Each stream may be compressed independently with one of:
//   - None: No compression (fastest, largest)
//   - Zstd: Best compression ratio, moderate speed
//   - S2: Balanced compression and speed
//   - LZ4: Fast decompression, moderate compression
//
// The delta encoding already removes most redundancy from address streams, so
// they gain little from compression. Origin streams repeat frame identifiers
// for every inlined range and usually compress well with Zstd.
//
// # Payload sizes
//
// Decompress takes the uncompressed size recorded in the snapshot header. Each
// codec allocates its output once at that size and returns errs.ErrPayloadSize
// when the data decodes to a different length. Corrupt input is an error and
// never a panic.
//
// # Zstandard implementations
//
// The Zstd codec uses the pure Go github.com/klauspost/compress/zstd by
// default. Building with cgo enabled and the gozstd tag switches to the
// libzstd binding github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both produce standard zstd frames, so snapshots written by one can be read
// by the other.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use.
package compress
