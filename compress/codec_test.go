package compress

import (
	"bytes"
	"testing"

	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/format"
	"github.com/stretchr/testify/require"
)

// originLikePayload mimics an origin stream: small index deltas followed by
// repeated frame identifiers.
func originLikePayload(entries int) []byte {
	frame := []byte{1, 0x15, 0x7c, 0x4a, 0x7f, 0xb9, 0x79, 0x37, 0x9e}
	var buf bytes.Buffer
	for i := range entries {
		buf.WriteByte(byte(i%5 + 1))
		if i%3 == 0 {
			buf.Write(frame)
		} else {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}

func allCompressionTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	incompressible := make([]byte, 4096)
	for i := range incompressible {
		incompressible[i] = byte((i*31 + i*i*7 + i*i*i*3) % 256)
	}

	payloads := map[string][]byte{
		"single byte":    {0x04},
		"address-like":   bytes.Repeat([]byte{4, 8, 2, 16}, 256),
		"origin-like":    originLikePayload(2000),
		"incompressible": incompressible,
	}

	for _, ct := range allCompressionTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed, len(payload))
				require.NoError(t, err)
				require.Equal(t, payload, restored)
			})
		}
	}
}

func TestCodec_EmptyInput(t *testing.T) {
	for _, ct := range allCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			restored, err := codec.Decompress(nil, 0)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestCodec_CorruptInput(t *testing.T) {
	garbage := []byte{0xff, 0xfe, 0xfd, 0xfc, 0xfb, 0xfa, 0xf9, 0xf8}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage, 64)
			require.Error(t, err)
		})
	}
}

func TestNoOpCompressor_SharesInput(t *testing.T) {
	data := []byte{1, 2, 3}
	compressed, err := NewNoOpCompressor().Compress(data)
	require.NoError(t, err)
	require.Same(t, &data[0], &compressed[0])
}

func TestGetCodec(t *testing.T) {
	for _, ct := range allCompressionTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x0F))
	require.ErrorContains(t, err, "unsupported compression type")
	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCodec_SizeMismatch(t *testing.T) {
	payload := originLikePayload(500)

	for _, ct := range allCompressionTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)

		t.Run(ct.String()+"/larger than decoded", func(t *testing.T) {
			_, err := codec.Decompress(compressed, len(payload)+1)
			require.ErrorIs(t, err, errs.ErrPayloadSize)
		})

		t.Run(ct.String()+"/smaller than decoded", func(t *testing.T) {
			_, err := codec.Decompress(compressed, len(payload)-1)
			require.Error(t, err)
		})

		t.Run(ct.String()+"/empty expected", func(t *testing.T) {
			_, err := codec.Decompress(compressed, 0)
			require.ErrorIs(t, err, errs.ErrPayloadSize)
		})

		t.Run(ct.String()+"/empty stored", func(t *testing.T) {
			_, err := codec.Decompress(nil, len(payload))
			require.ErrorIs(t, err, errs.ErrPayloadSize)
		})

		t.Run(ct.String()+"/negative size", func(t *testing.T) {
			_, err := codec.Decompress(compressed, -1)
			require.ErrorIs(t, err, errs.ErrPayloadSize)
		})
	}
}

func TestCodec_DecompressAllocatesExactSize(t *testing.T) {
	payload := originLikePayload(1000)

	for _, ct := range allCompressionTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed, len(payload))
			require.NoError(t, err)
			require.Len(t, restored, len(payload))
			if ct != format.CompressionNone {
				require.Equal(t, len(payload), cap(restored))
			}
		})
	}
}

func TestCompressWithStats(t *testing.T) {
	payload := originLikePayload(4000)

	compressed, stats, err := CompressWithStats(format.CompressionZstd, payload)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(payload)), stats.OriginalSize)
	require.Equal(t, int64(len(compressed)), stats.CompressedSize)
	require.Less(t, stats.CompressionRatio(), 1.0)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	_, stats, err = CompressWithStats(format.CompressionNone, nil)
	require.NoError(t, err)
	require.Zero(t, stats.CompressionRatio())
	require.Zero(t, stats.SpaceSavings())

	_, _, err = CompressWithStats(format.CompressionType(9), payload)
	require.Error(t, err)
}
