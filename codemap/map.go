package codemap

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/pcmap/encoding"
	"github.com/arloliu/pcmap/endian"
	"github.com/arloliu/pcmap/internal/options"
	"github.com/arloliu/pcmap/origin"
)

// Map is an immutable, compressed mapping from machine-code addresses to the
// origins that produced them.
//
// A Map is safe for concurrent use by multiple goroutines without
// synchronization.
type Map struct {
	engine     endian.EndianEngine
	addresses  []byte
	origins    []byte
	rangeStart uint64
	rangeEnd   uint64
	count      int
}

// Range is a decoded map entry: every address in [Start, End] belongs to Origin.
type Range struct {
	Start  uint64
	End    uint64
	Origin origin.Origin
}

type mapConfig struct {
	engine endian.EndianEngine
}

// MapOption configures NewMap.
type MapOption = options.Option[*mapConfig]

// WithEndian selects the byte order of full-width escape values.
// A nil engine selects little-endian.
func WithEndian(engine endian.EndianEngine) MapOption {
	return options.NoError(func(c *mapConfig) {
		c.engine = endian.Normalize(engine)
	})
}

// WithLittleEndian writes full-width escape values in little-endian order.
// This is the default.
func WithLittleEndian() MapOption {
	return WithEndian(endian.GetLittleEndianEngine())
}

// WithBigEndian writes full-width escape values in big-endian order.
func WithBigEndian() MapOption {
	return WithEndian(endian.GetBigEndianEngine())
}

func newEmptyMap(engine endian.EndianEngine) *Map {
	return &Map{
		engine:     engine,
		rangeStart: math.MaxUint64,
		rangeEnd:   math.MaxUint64,
	}
}

// NewMap consumes the ranges recorded by b, resolves their labels with r and
// encodes them into a Map. The builder is reset afterwards.
//
// A nil or disabled builder, or one without ranges, yields an empty map.
// Otherwise a terminating entry repeating the last range's end and origin is
// appended unless the last range is already zero-width.
//
// Parameters:
//   - b: Builder holding the ranges of the linked code
//   - r: Resolver from labels to final code addresses
//   - opts: Map options such as WithEndian
//
// Returns:
//   - *Map: Encoded map with exact-size streams
//   - error: Invalid option
//
// Panics when resolved start addresses do not strictly increase, or when a
// range's resolved end differs from the next range's resolved start. Both
// mean the code generator or the resolver is broken.
func NewMap(b *Builder, r Resolver, opts ...MapOption) (*Map, error) {
	cfg := &mapConfig{engine: endian.GetLittleEndianEngine()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	m := newEmptyMap(cfg.engine)
	if b == nil || !b.enabled {
		return m, nil
	}

	ranges := b.take()
	if len(ranges) == 0 {
		return m, nil
	}

	// Terminate the last range so that every covered address has a
	// successor entry. A zero-width last range already serves as one.
	if last := ranges[len(ranges)-1]; last.Start != last.End {
		ranges = append(ranges, CodeRange{Start: last.End, End: last.End, Origin: last.Origin})
	}

	addrEnc := encoding.NewAddressDeltaEncoder(cfg.engine, len(ranges))
	originEnc := encoding.NewOriginDeltaEncoder(cfg.engine, len(ranges))

	for i, cr := range ranges {
		start := r.Resolve(cr.Start)
		if i > 0 {
			if end := r.Resolve(ranges[i-1].End); end != start {
				addrEnc.Finish()
				originEnc.Finish()
				panic(fmt.Sprintf("pcmap: range %d ends at %#x but range %d starts at %#x", i-1, end, i, start))
			}
		}
		addrEnc.Write(start)
		originEnc.Write(cr.Origin)
	}

	m.count = len(ranges)
	m.addresses = addrEnc.Detach()
	m.origins = originEnc.Detach()
	m.rangeStart = r.Resolve(ranges[0].Start)
	m.rangeEnd = r.Resolve(ranges[len(ranges)-1].End) - 1

	return m, nil
}

// FindOrigin returns the origin of the code at addr.
//
// Addresses outside [RangeStart, RangeEnd] are rejected without decoding.
// Otherwise both streams are decoded in lockstep until the first entry whose
// address exceeds addr; the origin of the entry before it is the result.
//
// Parameters:
//   - addr: Machine-code address to look up
//
// Returns:
//   - origin.Origin: Origin of the covering range, origin.Empty() when not found
//   - bool: false when addr is outside the map or the covering range has no known origin
//
// FindOrigin panics if the encoded streams end before an address within the
// map bounds is covered, since that means the map itself is malformed.
func (m *Map) FindOrigin(addr uint64) (origin.Origin, bool) {
	if m.count == 0 || addr < m.rangeStart || addr > m.rangeEnd {
		return origin.Empty(), false
	}

	addrs := encoding.NewAddressReader(m.engine, m.addresses)
	origins := encoding.NewOriginReader(m.engine, m.origins)

	var prevPC uint64
	prevOrigin := origin.Default()

	for {
		pc, err := addrs.Next()
		if err != nil {
			panic(fmt.Sprintf("pcmap: address %#x within [%#x, %#x] not covered: %v", addr, m.rangeStart, m.rangeEnd, err))
		}
		o, err := origins.Next()
		if err != nil {
			panic(fmt.Sprintf("pcmap: origin stream ended before address %#x: %v", addr, err))
		}

		if prevPC != 0 && addr >= prevPC && addr < pc {
			if prevOrigin.IsEmpty() {
				return origin.Empty(), false
			}

			return prevOrigin, true
		}

		prevPC = pc
		prevOrigin = o
	}
}

// RangeStart returns the lowest covered address, or math.MaxUint64 for an empty map.
func (m *Map) RangeStart() uint64 {
	return m.rangeStart
}

// RangeEnd returns the highest covered address, or math.MaxUint64 for an empty map.
func (m *Map) RangeEnd() uint64 {
	return m.rangeEnd
}

// IsEmpty reports whether the map covers no addresses.
func (m *Map) IsEmpty() bool {
	return m.count == 0 || m.rangeEnd < m.rangeStart
}

// Len returns the number of encoded entries, including the terminating entry.
func (m *Map) Len() int {
	return m.count
}

// MemorySize returns the number of bytes held by the encoded streams.
func (m *Map) MemorySize() int {
	return len(m.addresses) + len(m.origins)
}

// Endian returns the byte order of full-width escape values.
func (m *Map) Endian() endian.EndianEngine {
	return m.engine
}

// Ranges iterates over the decoded ranges in address order. The terminating
// entry is not yielded.
func (m *Map) Ranges() iter.Seq[Range] {
	return func(yield func(Range) bool) {
		addrs := encoding.NewAddressReader(m.engine, m.addresses)
		origins := encoding.NewOriginReader(m.engine, m.origins)

		var prev Range
		for i := range m.count {
			pc, err := addrs.Next()
			if err != nil {
				return
			}
			o, err := origins.Next()
			if err != nil {
				return
			}

			if i > 0 {
				prev.End = pc - 1
				if !yield(prev) {
					return
				}
			}
			prev = Range{Start: pc, Origin: o}
		}
	}
}
