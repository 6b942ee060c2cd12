package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/pcmap/endian"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/internal/pool"
	"github.com/arloliu/pcmap/origin"
)

// OriginDeltaEncoder encodes a sequence of origins as signed bytecode index
// deltas, each followed by the origin's inline frame presence and identity.
//
// The delta is computed on the bytecode index only; the inline frame is
// written explicitly for every entry so a decoded origin never inherits a
// stale frame from an earlier entry.
type OriginDeltaEncoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
	prev   origin.BytecodeIndex
	limit  int
	count  int
}

var _ ColumnarEncoder[origin.Origin] = (*OriginDeltaEncoder)(nil)

// NewOriginDeltaEncoder creates an encoder with room for maxEntries origins.
//
// The arena holds MaxOriginEntrySize bytes per entry: an escaped index delta
// plus an inline frame identifier.
//
// Parameters:
//   - engine: Byte order of escaped deltas and frame identifiers
//   - maxEntries: Number of origins that will be written
//
// Returns:
//   - *OriginDeltaEncoder: Encoder whose previous bytecode index starts at 0
func NewOriginDeltaEncoder(engine endian.EndianEngine, maxEntries int) *OriginDeltaEncoder {
	limit := maxEntries * MaxOriginEntrySize

	return &OriginDeltaEncoder{
		engine: engine,
		buf:    pool.GetStreamBuffer(limit),
		limit:  limit,
	}
}

// Write encodes o.
//
// Index arithmetic wraps, so any pair of indices, including the empty
// origin's InvalidBytecodeIndex, round-trips exactly.
//
// Panics if the arena capacity would be exceeded or Finish has been called.
func (e *OriginDeltaEncoder) Write(o origin.Origin) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	delta := int64(o.Index) - int64(e.prev)
	e.prev = o.Index
	e.count++

	if delta > math.MaxInt8 || delta < math.MinInt8 || delta == int64(SentinelIndexDelta) {
		e.reserve(1 + FullWidthSize)
		e.buf.B = append(e.buf.B, byte(SentinelIndexDelta))
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(delta)) //nolint:gosec
	} else {
		e.reserve(1)
		e.buf.B = append(e.buf.B, byte(int8(delta)))
	}

	if !o.IsInlined() {
		e.reserve(1)
		e.buf.B = append(e.buf.B, frameAbsent)

		return
	}

	e.reserve(1 + FullWidthSize)
	e.buf.B = append(e.buf.B, framePresent)
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(o.Frame))
}

func (e *OriginDeltaEncoder) reserve(n int) {
	if e.buf.Len()+n > e.limit {
		panic(fmt.Sprintf("pcmap: origin stream exceeds preallocated capacity of %d bytes", e.limit))
	}
}

// Bytes returns the encoded stream. See ColumnarEncoder.Bytes.
func (e *OriginDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded origins.
func (e *OriginDeltaEncoder) Len() int {
	return e.count
}

// Size returns the number of encoded bytes.
func (e *OriginDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Detach returns an exact-size copy of the stream and finishes the encoder.
func (e *OriginDeltaEncoder) Detach() []byte {
	out := e.buf.Clone()
	e.Finish()

	return out
}

// Finish returns the arena to the pool.
func (e *OriginDeltaEncoder) Finish() {
	if e.buf == nil {
		return
	}
	pool.PutStreamBuffer(e.buf)
	e.buf = nil
}

// OriginReader decodes an origin stream one entry at a time, starting from
// origin.Default().
type OriginReader struct {
	engine endian.EndianEngine
	data   []byte
	off    int
	cur    origin.Origin
}

// NewOriginReader creates a reader positioned before the first entry.
func NewOriginReader(engine endian.EndianEngine, data []byte) OriginReader {
	return OriginReader{engine: engine, data: data}
}

// Next decodes one entry and returns the resulting origin.
//
// Returns errs.ErrTruncatedStream at the end of data and errs.ErrCorruptStream
// when the frame presence byte is neither 0 nor 1.
func (r *OriginReader) Next() (origin.Origin, error) {
	if r.off >= len(r.data) {
		return origin.Origin{}, errs.ErrTruncatedStream
	}

	value := int8(r.data[r.off])
	r.off++

	delta := int64(value)
	if value == SentinelIndexDelta {
		if r.off+FullWidthSize > len(r.data) {
			return origin.Origin{}, errs.ErrTruncatedStream
		}
		delta = int64(r.engine.Uint64(r.data[r.off:])) //nolint:gosec
		r.off += FullWidthSize
	}

	if r.off >= len(r.data) {
		return origin.Origin{}, errs.ErrTruncatedStream
	}
	hasFrame := r.data[r.off]
	r.off++

	next := origin.Origin{Index: origin.BytecodeIndex(int64(r.cur.Index) + delta)}

	switch hasFrame {
	case frameAbsent:
	case framePresent:
		if r.off+FullWidthSize > len(r.data) {
			return origin.Origin{}, errs.ErrTruncatedStream
		}
		next.Frame = origin.FrameID(r.engine.Uint64(r.data[r.off:]))
		r.off += FullWidthSize
	default:
		return origin.Origin{}, errs.ErrCorruptStream
	}

	r.cur = next

	return next, nil
}

// Current returns the last decoded origin, or origin.Default() before the first Next.
func (r *OriginReader) Current() origin.Origin {
	return r.cur
}

// Remaining returns the number of undecoded bytes.
func (r *OriginReader) Remaining() int {
	return len(r.data) - r.off
}
