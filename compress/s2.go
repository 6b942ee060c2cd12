package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores payloads as S2 blocks.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 block codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as one S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block of exactly size bytes.
//
// The block's own length prefix is checked against size before anything is
// allocated.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := emptyPayload(data, size); done {
		return nil, err
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 block: %w", err)
	}
	if err := checkSize(n, size); err != nil {
		return nil, err
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 block: %w", err)
	}

	return out, nil
}
