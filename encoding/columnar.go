package encoding

// ColumnarEncoder appends values of type T to a single delta-compressed stream.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded stream so far.
	// The returned slice aliases pooled memory and is only valid until Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Finish returns the encoder's arena to the pool. Any later call panics.
	Finish()

	// Write encodes a single value.
	Write(value T)

	// Detach returns an exact-size copy of the stream and finishes the encoder.
	Detach() []byte
}
