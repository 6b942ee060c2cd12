//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Decoders and encoders are expensive to create and allocation-free once
// warm, so both are pooled. EncodeAll and DecodeAll keep no state between
// calls.
var (
	zstdDecoders = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(maxDecompressedSize),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd decoder options: %v", err))
			}

			return decoder
		},
	}

	zstdEncoders = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderConcurrency(1),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd encoder options: %v", err))
			}

			return encoder
		},
	}
)

// Compress encodes data as one zstd frame. The frame records its content
// size.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoders.Get().(*zstd.Encoder)
	defer zstdEncoders.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes one zstd frame into exactly size bytes.
//
// A frame whose header declares a different content size is rejected before
// decoding.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := emptyPayload(data, size); done {
		return nil, err
	}

	var fh zstd.Header
	if err := fh.Decode(data); err != nil {
		return nil, fmt.Errorf("zstd frame header: %w", err)
	}
	if fh.HasFCS {
		if err := checkSize(int(min(fh.FrameContentSize, maxDecompressedSize+1)), size); err != nil { //nolint:gosec
			return nil, err
		}
	}

	decoder, _ := zstdDecoders.Get().(*zstd.Decoder)
	defer zstdDecoders.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd frame: %w", err)
	}
	if err := checkSize(len(out), size); err != nil {
		return nil, err
	}

	return out, nil
}
