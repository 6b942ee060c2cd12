package section

import (
	"github.com/arloliu/pcmap/endian"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/format"
)

// Flag represents the packed flag word at the start of a snapshot header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is reserved, must be set to 0.
	// Bit 1 is endianness flag of the full-width values in the delta streams
	// and of the header fields after the flag word, 0 means little-endian,
	// 1 means big-endian.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the snapshot format:
	//   - 0xC0D0 (0b1100_0000_1101_0000): code map snapshot v1
	Options uint16

	// CompressionType is an enum indicating the compression used for the payloads.
	// bit 0-3 for address payload compression, bit 4-7 for origin payload compression.
	CompressionType uint8
}

// NewFlag creates a new Flag with default settings: little-endian and
// uncompressed payloads.
func NewFlag() Flag {
	flag := Flag{
		Options:         MagicCodeMapV1Opt,
		CompressionType: AddressCompressionNone | OriginCompressionNone,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the data is little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithEndian sets the byte order matching engine.
func (f *Flag) WithEndian(engine endian.EndianEngine) {
	if endian.IsBigEndian(engine) {
		f.WithBigEndian()
	} else {
		f.WithLittleEndian()
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// AddressCompression returns the address payload compression from bits 0-3 of CompressionType.
func (f Flag) AddressCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

// SetAddressCompression sets the address payload compression in bits 0-3 of CompressionType.
func (f *Flag) SetAddressCompression(compression format.CompressionType) {
	f.CompressionType &^= 0x0F // Clear bits 0-3
	f.CompressionType |= (uint8(compression) & 0x0F)
}

// OriginCompression returns the origin payload compression from bits 4-7 of CompressionType.
func (f Flag) OriginCompression() format.CompressionType {
	return format.CompressionType((f.CompressionType >> 4) & 0x0F)
}

// SetOriginCompression sets the origin payload compression in bits 4-7 of CompressionType.
func (f *Flag) SetOriginCompression(compression format.CompressionType) {
	f.CompressionType &^= 0xF0 // Clear bits 4-7
	f.CompressionType |= (uint8(compression) & 0x0F) << 4
}

// IsValidMagicNumber checks if the magic number is valid.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicCodeMapV1Opt
}

// IsValidCompression checks if the compression types are valid.
func (f Flag) IsValidCompression() bool {
	return f.AddressCompression().IsValid() && f.OriginCompression().IsValid()
}

// Validate checks if the flag word contains valid values.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return errs.ErrInvalidMagicNumber
	}

	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.IsValidCompression() {
		return errs.ErrInvalidCompression
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
