package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressors holds block compressors, whose hash tables are worth reusing.
var lz4Compressors = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor stores payloads as a single raw LZ4 block.
//
// LZ4 blocks do not carry their decoded length; the snapshot header does.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as one LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}

	return dst[:n], nil
}

// Decompress decodes one LZ4 block into a buffer of exactly size bytes.
//
// A block that needs more room fails inside the decoder, and one that
// fills less returns errs.ErrPayloadSize.
func (c LZ4Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := emptyPayload(data, size); done {
		return nil, err
	}

	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}
	if err := checkSize(n, size); err != nil {
		return nil, err
	}

	return dst, nil
}
