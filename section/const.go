package section

import (
	"github.com/arloliu/pcmap/format"
)

const (
	// Bit masks of the Options word
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicCodeMapV1Opt = 0xC0D0 // MagicCodeMapV1Opt is the version 1 magic number for code map snapshots.

	// Address payload compression (bits 0-3) - using format package constants
	AddressCompressionNone = uint8(format.CompressionNone) // AddressCompressionNone represents no compression for addresses.
	AddressCompressionZstd = uint8(format.CompressionZstd) // AddressCompressionZstd represents Zstandard compression for addresses.
	AddressCompressionS2   = uint8(format.CompressionS2)   // AddressCompressionS2 represents S2 compression for addresses.
	AddressCompressionLZ4  = uint8(format.CompressionLZ4)  // AddressCompressionLZ4 represents LZ4 compression for addresses.

	// Origin payload compression (bits 4-7) - using format package constants
	OriginCompressionNone = uint8(format.CompressionNone) << 4 // OriginCompressionNone represents no compression for origins.
	OriginCompressionZstd = uint8(format.CompressionZstd) << 4 // OriginCompressionZstd represents Zstandard compression for origins.
	OriginCompressionS2   = uint8(format.CompressionS2) << 4   // OriginCompressionS2 represents S2 compression for origins.
	OriginCompressionLZ4  = uint8(format.CompressionLZ4) << 4  // OriginCompressionLZ4 represents LZ4 compression for origins.
)

// offsets and section sizes in the snapshot
const (
	HeaderSize     = 48         // fixed header size in bytes
	PayloadOffset  = HeaderSize // byte offset where the address payload starts
	MaxPayloadSize = 1 << 30    // upper bound for a single stored or decompressed payload
	MaxEntryCount  = 1 << 28    // upper bound for the entry count of a restored map
)
