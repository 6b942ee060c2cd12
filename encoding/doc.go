// Package encoding implements the two delta streams of a code map.
//
// A code map stores one entry per code range in two parallel streams, both
// decoded sequentially from the start:
//
// Address stream (AddressDeltaEncoder / AddressReader):
//
//	delta = address - previousAddress     (previousAddress starts at 0)
//	0 < delta <= 255:  [delta]            1 byte
//	otherwise:         [0x00][delta u64]  9 bytes
//
// Addresses must strictly increase, so a zero delta can never occur and the
// byte 0x00 is free to act as the escape.
//
// Origin stream (OriginDeltaEncoder / OriginReader):
//
//	delta = index - previousIndex         (previousIndex starts at 0)
//	delta in [-128,127] and != 0:  [int8(delta)]
//	otherwise:                     [0x00][delta i64]
//	then:                          [0x00]                  no inline frame
//	                               [0x01][frame u64]       inline frame
//
// A zero bytecode delta is legal in the origin stream (two ranges with the
// same index in different inline frames) and therefore always takes the
// escape path.
//
// Full-width values are 8 bytes in the byte order of the EndianEngine given
// to the encoder; the matching reader must use the same engine.
//
// # Capacity
//
// Encoders are created for a known number of entries and write into a
// pooled arena of MaxAddressEntrySize or MaxOriginEntrySize bytes per entry.
// Writing past that capacity, or writing a non-increasing address, panics:
// both mean the caller computed the layout incorrectly and the stream would
// be wrong.
//
// # Thread Safety
//
// Encoders are not safe for concurrent use. Readers hold their own cursor;
// any number of readers may decode the same immutable byte slice concurrently.
package encoding
