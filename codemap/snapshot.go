package codemap

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/pcmap/compress"
	"github.com/arloliu/pcmap/encoding"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/format"
	"github.com/arloliu/pcmap/internal/hash"
	"github.com/arloliu/pcmap/internal/options"
	"github.com/arloliu/pcmap/internal/pool"
	"github.com/arloliu/pcmap/section"
)

type snapshotConfig struct {
	addressCompression format.CompressionType
	originCompression  format.CompressionType
}

// SnapshotOption configures Map.Snapshot.
type SnapshotOption = options.Option[*snapshotConfig]

func validCompression(c format.CompressionType) error {
	if !c.IsValid() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, c)
	}

	return nil
}

// WithAddressCompression compresses the address payload with c.
func WithAddressCompression(c format.CompressionType) SnapshotOption {
	return options.New(func(cfg *snapshotConfig) error {
		if err := validCompression(c); err != nil {
			return err
		}
		cfg.addressCompression = c

		return nil
	}).Named("address compression")
}

// WithOriginCompression compresses the origin payload with c.
func WithOriginCompression(c format.CompressionType) SnapshotOption {
	return options.New(func(cfg *snapshotConfig) error {
		if err := validCompression(c); err != nil {
			return err
		}
		cfg.originCompression = c

		return nil
	}).Named("origin compression")
}

// WithCompression compresses both payloads with c.
func WithCompression(c format.CompressionType) SnapshotOption {
	return options.New(func(cfg *snapshotConfig) error {
		if err := validCompression(c); err != nil {
			return err
		}
		cfg.addressCompression = c
		cfg.originCompression = c

		return nil
	}).Named("compression")
}

// Snapshot serializes the map into a self-describing byte slice that Restore
// can read back, possibly in another process.
//
// The header records both the stored and the uncompressed size of each
// payload, plus an xxHash64 of the uncompressed bytes.
//
// Parameters:
//   - opts: Payload compression options (both payloads are stored uncompressed by default)
//
// Returns:
//   - []byte: Header followed by the address and origin payloads
//   - error: Invalid option, codec failure, or errs.ErrPayloadTooLarge
func (m *Map) Snapshot(opts ...SnapshotOption) ([]byte, error) {
	cfg := &snapshotConfig{
		addressCompression: format.CompressionNone,
		originCompression:  format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	addrPayload, _, err := compress.CompressWithStats(cfg.addressCompression, m.addresses)
	if err != nil {
		return nil, fmt.Errorf("address payload: %w", err)
	}
	originPayload, _, err := compress.CompressWithStats(cfg.originCompression, m.origins)
	if err != nil {
		return nil, fmt.Errorf("origin payload: %w", err)
	}
	if len(addrPayload) > section.MaxPayloadSize || len(originPayload) > section.MaxPayloadSize {
		return nil, errs.ErrPayloadTooLarge
	}

	h := section.NewHeader(m.engine)
	h.Flag.SetAddressCompression(cfg.addressCompression)
	h.Flag.SetOriginCompression(cfg.originCompression)
	h.EntryCount = uint32(m.count) //nolint:gosec
	h.RangeStart = m.rangeStart
	h.RangeEnd = m.rangeEnd
	h.AddressPayloadSize = uint32(len(addrPayload))  //nolint:gosec
	h.OriginPayloadSize = uint32(len(originPayload)) //nolint:gosec
	h.AddressRawSize = uint32(len(m.addresses))      //nolint:gosec
	h.OriginRawSize = uint32(len(m.origins))         //nolint:gosec
	h.Checksum = hash.Payloads(m.addresses, m.origins)

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.Grow(section.HeaderSize + len(addrPayload) + len(originPayload))
	_, _ = buf.Write(h.Bytes())
	_, _ = buf.Write(addrPayload)
	_, _ = buf.Write(originPayload)

	return buf.Clone(), nil
}

// MarshalBinary implements encoding.BinaryMarshaler with uncompressed payloads.
func (m *Map) MarshalBinary() ([]byte, error) {
	return m.Snapshot()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. See Restore.
func (m *Map) UnmarshalBinary(data []byte) error {
	restored, err := Restore(data)
	if err != nil {
		return err
	}
	*m = *restored

	return nil
}

// Restore rebuilds a Map from a snapshot produced by Map.Snapshot.
//
// The input is treated as untrusted: the header, checksum and both delta
// streams are validated, so lookups on the returned map never hit the
// malformed-map panic of FindOrigin. The returned map does not retain data.
//
// Parameters:
//   - data: Complete snapshot, header included, with nothing after the origin payload
//
// Returns:
//   - *Map: Restored map, nil on error
//   - error: errs.ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidHeaderFlags
//     or ErrInvalidCompression for a bad header; ErrPayloadTooLarge for sizes over
//     the limits; ErrTruncatedPayload or ErrCorruptStream when the length does not
//     match the header; ErrChecksumMismatch; ErrTruncatedStream or ErrCorruptStream
//     when a payload or stream fails to decode
func Restore(data []byte) (*Map, error) {
	h, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if h.EntryCount > section.MaxEntryCount ||
		h.AddressPayloadSize > section.MaxPayloadSize ||
		h.OriginPayloadSize > section.MaxPayloadSize ||
		h.AddressRawSize > section.MaxPayloadSize ||
		h.OriginRawSize > section.MaxPayloadSize {
		return nil, errs.ErrPayloadTooLarge
	}

	want := section.HeaderSize + h.PayloadSize()
	if len(data) < want {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncatedPayload, want, len(data))
	}
	if len(data) > want {
		return nil, fmt.Errorf("%w: %d trailing bytes after payloads", errs.ErrCorruptStream, len(data)-want)
	}

	addrStart := section.PayloadOffset
	originStart := addrStart + int(h.AddressPayloadSize)

	addresses, err := decompressPayload(h.Flag.AddressCompression(), data[addrStart:originStart], int(h.AddressRawSize))
	if err != nil {
		return nil, fmt.Errorf("address payload: %w", err)
	}
	origins, err := decompressPayload(h.Flag.OriginCompression(), data[originStart:want], int(h.OriginRawSize))
	if err != nil {
		return nil, fmt.Errorf("origin payload: %w", err)
	}

	if sum := hash.Payloads(addresses, origins); sum != h.Checksum {
		return nil, fmt.Errorf("%w: header %#x, payloads %#x", errs.ErrChecksumMismatch, h.Checksum, sum)
	}

	m := &Map{
		engine:     h.Flag.GetEndianEngine(),
		addresses:  addresses,
		origins:    origins,
		rangeStart: h.RangeStart,
		rangeEnd:   h.RangeEnd,
		count:      int(h.EntryCount),
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// decompressPayload decodes a stored payload into exactly rawSize bytes that
// do not alias payload.
func decompressPayload(c format.CompressionType, payload []byte, rawSize int) ([]byte, error) {
	codec, err := compress.GetCodec(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	out, err := codec.Decompress(payload, rawSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptStream, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	if c == format.CompressionNone {
		out = bytes.Clone(out)
	}

	return out, nil
}

// validate checks that the streams decode to exactly count strictly
// increasing addresses and count origins, and that the bounds match them.
func (m *Map) validate() error {
	if m.count == 0 {
		if len(m.addresses) != 0 || len(m.origins) != 0 {
			return fmt.Errorf("%w: empty map carries payload bytes", errs.ErrCorruptStream)
		}
		if m.rangeStart != math.MaxUint64 || m.rangeEnd != math.MaxUint64 {
			return fmt.Errorf("%w: empty map bounds [%#x, %#x]", errs.ErrCorruptStream, m.rangeStart, m.rangeEnd)
		}

		return nil
	}

	addrs := encoding.NewAddressReader(m.engine, m.addresses)
	origins := encoding.NewOriginReader(m.engine, m.origins)

	var first, last uint64
	for i := range m.count {
		pc, err := addrs.Next()
		if err != nil {
			return fmt.Errorf("address entry %d: %w", i, err)
		}
		if _, err := origins.Next(); err != nil {
			return fmt.Errorf("origin entry %d: %w", i, err)
		}
		if i == 0 {
			first = pc
		}
		last = pc
	}

	if addrs.Remaining() != 0 || origins.Remaining() != 0 {
		return fmt.Errorf("%w: %d address and %d origin bytes beyond %d entries",
			errs.ErrCorruptStream, addrs.Remaining(), origins.Remaining(), m.count)
	}
	if m.rangeStart != first || m.rangeEnd != last-1 {
		return fmt.Errorf("%w: bounds [%#x, %#x] do not match entries [%#x, %#x)",
			errs.ErrCorruptStream, m.rangeStart, m.rangeEnd, first, last)
	}

	return nil
}
