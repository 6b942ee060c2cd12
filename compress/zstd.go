package compress

// ZstdCompressor stores payloads as single zstd frames.
//
// The pure Go and libzstd implementations are chosen by build tags and
// produce interchangeable frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
