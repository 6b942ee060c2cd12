// Package section defines the low-level binary structures and constants of the
// code map snapshot format.
//
// A snapshot is a fixed-size header followed by the two delta-encoded streams
// of a map, each optionally compressed:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (48 bytes, fixed)                                │
//	│  - Flag (3 bytes) + reserved byte                       │
//	│  - EntryCount (4 bytes)                                 │
//	│  - RangeStart, RangeEnd (16 bytes)                      │
//	│  - Stored and raw payload sizes (16 bytes)              │
//	│  - Checksum (8 bytes)                                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Address Payload (variable)                              │
//	├─────────────────────────────────────────────────────────┤
//	│ Origin Payload (variable)                               │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field              | Type   | Description
//	-------|--------------------|--------|----------------------------------
//	0-1    | Options            | uint16 | Endianness, magic number (always LE)
//	2      | CompressionType    | uint8  | Address (bits 0-3), origin (bits 4-7)
//	3      | Reserved           | uint8  | Must be 0
//	4-7    | EntryCount         | uint32 | Encoded entries incl. terminator
//	8-15   | RangeStart         | uint64 | Lowest covered address
//	16-23  | RangeEnd           | uint64 | Highest covered address
//	24-27  | AddressPayloadSize | uint32 | Stored address payload size
//	28-31  | OriginPayloadSize  | uint32 | Stored origin payload size
//	32-35  | AddressRawSize     | uint32 | Uncompressed address payload size
//	36-39  | OriginRawSize      | uint32 | Uncompressed origin payload size
//	40-47  | Checksum           | uint64 | xxHash64 of both raw payloads
//
// # Flag Format
//
//	Byte 0-1 (Options, 16 bits):
//	  Bit 0: Reserved (must be 0)
//	  Bit 1: Endianness (0=little-endian, 1=big-endian)
//	  Bits 2-3: Reserved (must be 0)
//	  Bits 4-15: Magic number (0xC0D0)
//
//	Byte 2 (CompressionType, 8 bits):
//	  Bits 0-3: Address compression (0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4)
//	  Bits 4-7: Origin compression (0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4)
//
// The raw sizes let a reader allocate each decompressed payload exactly once
// and reject a payload that decodes to any other length.
//
// The endianness bit applies to every header field after the flag word and to
// the full-width escape values inside the streams.
package section
