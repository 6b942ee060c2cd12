package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/pcmap/endian"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/internal/pool"
)

// AddressDeltaEncoder encodes a strictly increasing sequence of code
// addresses as unsigned deltas with a one-byte common case.
//
// Internal state:
//   - prev: the last written address (0 before the first write)
//   - limit: arena capacity in bytes, fixed at construction
type AddressDeltaEncoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
	prev   uint64
	limit  int
	count  int
}

var _ ColumnarEncoder[uint64] = (*AddressDeltaEncoder)(nil)

// NewAddressDeltaEncoder creates an encoder with room for maxEntries addresses.
//
// The arena is taken from the stream buffer pool and sized for the worst
// case of every entry being escaped, so the encoder never reallocates.
//
// Parameters:
//   - engine: Byte order of escaped full-width deltas
//   - maxEntries: Number of addresses that will be written
//
// Returns:
//   - *AddressDeltaEncoder: Encoder positioned before the first address (previous address 0)
func NewAddressDeltaEncoder(engine endian.EndianEngine, maxEntries int) *AddressDeltaEncoder {
	limit := maxEntries * MaxAddressEntrySize

	return &AddressDeltaEncoder{
		engine: engine,
		buf:    pool.GetStreamBuffer(limit),
		limit:  limit,
	}
}

// Write encodes address.
//
// Panics if address is not strictly greater than the previous address (the
// first address must be non-zero), if the arena capacity would be exceeded,
// or if Finish has been called.
func (e *AddressDeltaEncoder) Write(address uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if address <= e.prev {
		panic(fmt.Sprintf("pcmap: code address %#x does not increase past %#x", address, e.prev))
	}

	delta := address - e.prev
	e.prev = address
	e.count++

	if delta > math.MaxUint8 {
		e.reserve(MaxAddressEntrySize)
		e.buf.B = append(e.buf.B, SentinelAddressDelta)
		e.buf.B = e.engine.AppendUint64(e.buf.B, delta)

		return
	}

	e.reserve(1)
	e.buf.B = append(e.buf.B, byte(delta))
}

func (e *AddressDeltaEncoder) reserve(n int) {
	if e.buf.Len()+n > e.limit {
		panic(fmt.Sprintf("pcmap: address stream exceeds preallocated capacity of %d bytes", e.limit))
	}
}

// Bytes returns the encoded stream. See ColumnarEncoder.Bytes.
func (e *AddressDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded addresses.
func (e *AddressDeltaEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *AddressDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Detach returns an exact-size copy of the stream and finishes the encoder.
func (e *AddressDeltaEncoder) Detach() []byte {
	out := e.buf.Clone()
	e.Finish()

	return out
}

// Finish returns the arena to the pool.
func (e *AddressDeltaEncoder) Finish() {
	if e.buf == nil {
		return
	}
	pool.PutStreamBuffer(e.buf)
	e.buf = nil
}

// AddressReader decodes an address stream one entry at a time.
//
// The zero value is not usable; create readers with NewAddressReader.
type AddressReader struct {
	engine endian.EndianEngine
	data   []byte
	off    int
	cur    uint64
}

// NewAddressReader creates a reader positioned before the first entry.
func NewAddressReader(engine endian.EndianEngine, data []byte) AddressReader {
	return AddressReader{engine: engine, data: data}
}

// Next decodes one entry and returns the resulting absolute address.
//
// Returns errs.ErrTruncatedStream at the end of data and errs.ErrCorruptStream
// for an escaped zero delta or an address that overflows.
func (r *AddressReader) Next() (uint64, error) {
	if r.off >= len(r.data) {
		return 0, errs.ErrTruncatedStream
	}

	value := r.data[r.off]
	r.off++

	delta := uint64(value)
	if value == SentinelAddressDelta {
		if r.off+FullWidthSize > len(r.data) {
			return 0, errs.ErrTruncatedStream
		}
		delta = r.engine.Uint64(r.data[r.off:])
		r.off += FullWidthSize

		if delta == 0 {
			return 0, errs.ErrCorruptStream
		}
	}

	next := r.cur + delta
	if next < r.cur {
		return 0, errs.ErrCorruptStream
	}
	r.cur = next

	return next, nil
}

// Current returns the last decoded address, or 0 before the first Next.
func (r *AddressReader) Current() uint64 {
	return r.cur
}

// Remaining returns the number of undecoded bytes.
func (r *AddressReader) Remaining() int {
	return len(r.data) - r.off
}
