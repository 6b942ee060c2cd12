// Package codemap maps machine-code addresses back to the logical origin
// (bytecode index and inline frame) that generated them.
//
// # Workflow
//
// A code generator records origins while it emits instructions, links the
// code, and then compresses the recording into an immutable Map:
//
//	b, _ := codemap.NewBuilder()
//	b.Append(codemap.Label(asm.Offset()), origin.New(5))
//	// ... emit more code, appending as the origin changes ...
//
//	m, _ := codemap.NewMap(b, codemap.LinkedResolver{Base: entryAddress})
//	o, ok := m.FindOrigin(pc)
//
// Append is cheap when the builder is disabled, so it can stay on the emission
// hot path unconditionally.
//
// # Encoding
//
// A Map stores two parallel byte streams, one entry per range start plus a
// terminating entry:
//
//   - addresses: unsigned deltas from the previous address, one byte when the
//     delta is in [1, 255], otherwise a zero byte followed by the full 8-byte
//     delta.
//   - origins: signed bytecode index deltas, one byte when the delta is in
//     [-128, 127] and non-zero, otherwise a zero byte followed by the full
//     8-byte delta; then a frame presence byte and, if present, the 8-byte
//     frame identity.
//
// FindOrigin decodes both streams in lockstep from the start, so a lookup
// costs O(entries) with no allocation and no index. Addresses outside
// [RangeStart, RangeEnd] are rejected in O(1).
//
// # Snapshots
//
// Snapshot and Restore move a finished map between processes using the
// layout defined in package section, optionally compressing each stream.
package codemap
