//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const zstdCompressionLevel = 3

// Compress encodes data as one zstd frame with libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdCompressionLevel), nil
}

// Decompress decodes one zstd frame into exactly size bytes with libzstd.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := emptyPayload(data, size); done {
		return nil, err
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("zstd frame: %w", err)
	}
	if err := checkSize(len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
