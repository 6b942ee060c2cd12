// Package endian provides the byte order used for the full-width values of a
// code map's delta streams.
//
// Most stream entries are a single byte and have no byte order. Escaped
// entries (large address deltas, large bytecode deltas, and inline frame
// identifiers) are written as 8-byte values through an EndianEngine. The
// default is little-endian, which writes the least significant byte first.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, delta)
//
// The engine is recorded in a snapshot's header so that a map written on one
// host can be restored on another.
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian, binary.BigEndian and binary.NativeEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var probe [2]byte
	engine.PutUint16(probe[:], 0x0100)

	return probe[0] == 0x01
}

// IsNativeBigEndian reports whether the host stores integers most significant byte first.
func IsNativeBigEndian() bool {
	return IsBigEndian(binary.NativeEndian)
}

// Normalize maps any engine onto one of the two canonical engines so that
// engines compare equal by value.
func Normalize(engine EndianEngine) EndianEngine {
	if engine == nil {
		return GetLittleEndianEngine()
	}
	if IsBigEndian(engine) {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
