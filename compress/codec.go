package compress

import (
	"fmt"

	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/format"
)

// maxDecompressedSize bounds the output of a single decompression.
const maxDecompressedSize = 1 << 30

// Compressor compresses a complete snapshot payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// An empty input compresses to nil. The returned slice is owned by the
	// caller, except for the no-op codec which returns the input as-is.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decodes data into exactly size bytes.
	//
	// The snapshot header records every payload's uncompressed size, so the
	// output is allocated once. Payloads come from untrusted input:
	// implementations return errs.ErrPayloadSize when data decodes to any
	// other length, and never panic on malformed data.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the effect of compressing one payload.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType
	// OriginalSize is the size of input data before compression
	OriginalSize int64
	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for an
// empty payload. Values below 1.0 mean the payload shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared codec for compressionType. Codecs are stateless
// and safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// CompressWithStats compresses data with the codec for compressionType and
// reports the size change.
//
// Parameters:
//   - compressionType: Codec to use
//   - data: Uncompressed payload
//
// Returns:
//   - []byte: Stored payload (nil for empty input)
//   - CompressionStats: Original and compressed sizes
//   - error: Unsupported compression type or codec failure
func CompressWithStats(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, CompressionStats{}, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, CompressionStats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return compressed, CompressionStats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}, nil
}

// emptyPayload applies the size bounds shared by every codec. done is true
// when the codec has nothing to decode, with err set unless data and size
// are both empty.
func emptyPayload(data []byte, size int) (done bool, err error) {
	if size < 0 || size > maxDecompressedSize {
		return true, fmt.Errorf("%w: expected size %d out of range", errs.ErrPayloadSize, size)
	}
	if len(data) == 0 && size == 0 {
		return true, nil
	}
	if len(data) == 0 || size == 0 {
		return true, fmt.Errorf("%w: %d stored bytes for %d expected", errs.ErrPayloadSize, len(data), size)
	}

	return false, nil
}

// checkSize compares a decoded length with the expected one.
func checkSize(n, size int) error {
	if n != size {
		return fmt.Errorf("%w: decoded %d bytes, expected %d", errs.ErrPayloadSize, n, size)
	}

	return nil
}
