package section

import (
	"fmt"

	"github.com/arloliu/pcmap/endian"
	"github.com/arloliu/pcmap/errs"
)

// Header represents the fixed-size header section at the start of a code map snapshot.
type Header struct {
	// Flag is a packed field for the options, magic number and compression.
	Flag Flag // byte offset 0-2, byte 3 is reserved
	// EntryCount is the number of encoded entries, including the terminating entry.
	EntryCount uint32 // byte offset 4-7
	// RangeStart is the lowest covered code address.
	RangeStart uint64 // byte offset 8-15
	// RangeEnd is the highest covered code address.
	RangeEnd uint64 // byte offset 16-23
	// AddressPayloadSize is the stored (possibly compressed) size of the address payload.
	AddressPayloadSize uint32 // byte offset 24-27
	// OriginPayloadSize is the stored (possibly compressed) size of the origin payload.
	// The origin payload starts right after the address payload.
	OriginPayloadSize uint32 // byte offset 28-31
	// AddressRawSize is the uncompressed size of the address payload.
	AddressRawSize uint32 // byte offset 32-35
	// OriginRawSize is the uncompressed size of the origin payload.
	OriginRawSize uint32 // byte offset 36-39
	// Checksum is the xxHash64 of the uncompressed address payload followed by
	// the uncompressed origin payload.
	Checksum uint64 // byte offset 40-47
}

// NewHeader creates a new Header using the byte order of engine.
// Counts, bounds, sizes and checksum are set when the snapshot is written.
func NewHeader(engine endian.EndianEngine) *Header {
	h := &Header{Flag: NewFlag()}
	h.Flag.WithEndian(endian.Normalize(engine))

	return h
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 48 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 48 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian; it carries the byte order of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = data[2]

	if err := h.Flag.Validate(); err != nil {
		return err
	}
	if data[3] != 0 {
		return fmt.Errorf("%w: reserved byte is %#x", errs.ErrInvalidHeaderFlags, data[3])
	}

	engine := h.Flag.GetEndianEngine()

	h.EntryCount = engine.Uint32(data[4:8])
	h.RangeStart = engine.Uint64(data[8:16])
	h.RangeEnd = engine.Uint64(data[16:24])
	h.AddressPayloadSize = engine.Uint32(data[24:28])
	h.OriginPayloadSize = engine.Uint32(data[28:32])
	h.AddressRawSize = engine.Uint32(data[32:36])
	h.OriginRawSize = engine.Uint32(data[36:40])
	h.Checksum = engine.Uint64(data[40:48])

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	engine.PutUint32(b[4:8], h.EntryCount)
	engine.PutUint64(b[8:16], h.RangeStart)
	engine.PutUint64(b[16:24], h.RangeEnd)
	engine.PutUint32(b[24:28], h.AddressPayloadSize)
	engine.PutUint32(b[28:32], h.OriginPayloadSize)
	engine.PutUint32(b[32:36], h.AddressRawSize)
	engine.PutUint32(b[36:40], h.OriginRawSize)
	engine.PutUint64(b[40:48], h.Checksum)

	return b
}

// PayloadSize returns the total stored size of both payloads.
func (h *Header) PayloadSize() int {
	return int(h.AddressPayloadSize) + int(h.OriginPayloadSize)
}

// RawSize returns the total uncompressed size of both payloads.
func (h *Header) RawSize() int {
	return int(h.AddressRawSize) + int(h.OriginRawSize)
}

// ParseHeader parses a Header from the start of a snapshot.
//
// Parameters:
//   - data: Byte slice containing the snapshot (must be at least 48 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
