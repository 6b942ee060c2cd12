package compress

// NoOpCompressor stores payloads as encoded.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates the identity codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself after checking that it is size bytes long.
// The result aliases data.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if done, err := emptyPayload(data, size); done {
		return nil, err
	}
	if err := checkSize(len(data), size); err != nil {
		return nil, err
	}

	return data, nil
}
