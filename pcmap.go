// Package pcmap records which logical origin (bytecode index and inline frame)
// produced each span of generated machine code, and answers "which origin is
// running at this instruction address?" from a compact, immutable map.
//
// pcmap targets code generators such as JIT compilers: the map is built once
// per compiled block, kept for the lifetime of the code, and queried by stack
// walkers, profilers and crash reporters.
//
// # Core Features
//
//   - Near-zero recording cost when disabled (a single inlinable branch)
//   - Coalescing of consecutive instructions sharing an origin
//   - Two delta-encoded byte streams with a one-byte common case
//   - Allocation-free lookups safe for concurrent readers
//   - Portable snapshots with optional compression (None, Zstd, S2, LZ4)
//   - A registry resolving addresses across many code blocks
//
// # Basic Usage
//
// Recording origins while emitting code:
//
//	import "github.com/arloliu/pcmap"
//
//	b, _ := pcmap.NewBuilder()
//	b.Append(codemap.Label(0x00), origin.New(5))
//	b.Append(codemap.Label(0x10), origin.New(5))   // extends the range
//	b.Append(codemap.Label(0x10), origin.New(9))   // starts a new range
//	b.Append(codemap.Label(0x20), origin.New(9))
//
// Compressing once the code has been linked at base:
//
//	m, _ := pcmap.NewLinkedMap(b, base)
//	o, ok := m.FindOrigin(base + 0x14) // bc#9, true
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codemap and
// registry packages. For fine-grained control, use those packages directly.
package pcmap

import (
	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/internal/hash"
	"github.com/arloliu/pcmap/origin"
	"github.com/arloliu/pcmap/registry"
)

// NewBuilder creates an enabled builder.
//
// Available options:
//   - codemap.WithEnabled(true|false)
//   - codemap.WithStrictOrdering()
//   - codemap.WithInitialCapacity(n)
func NewBuilder(opts ...codemap.BuilderOption) (*codemap.Builder, error) {
	return codemap.NewBuilder(opts...)
}

// NewDisabledBuilder creates a builder that records nothing. Maps built from
// it are empty.
func NewDisabledBuilder() *codemap.Builder {
	b, _ := codemap.NewBuilder(codemap.WithEnabled(false))
	return b
}

// NewMap compresses the ranges recorded by b, resolving labels with r.
//
// Available options:
//   - codemap.WithLittleEndian() / codemap.WithBigEndian()
//   - codemap.WithEndian(engine)
func NewMap(b *codemap.Builder, r codemap.Resolver, opts ...codemap.MapOption) (*codemap.Map, error) {
	return codemap.NewMap(b, r, opts...)
}

// NewLinkedMap compresses the ranges recorded by b, treating labels as offsets
// from the address the code was linked at.
func NewLinkedMap(b *codemap.Builder, base uint64, opts ...codemap.MapOption) (*codemap.Map, error) {
	return codemap.NewMap(b, codemap.LinkedResolver{Base: base}, opts...)
}

// Restore rebuilds a map from a snapshot produced by codemap.Map.Snapshot.
func Restore(data []byte) (*codemap.Map, error) {
	return codemap.Restore(data)
}

// NewRegistry creates a registry resolving addresses across code blocks.
//
// Available options:
//   - registry.WithLogger(logger)
//   - registry.WithRegisterer(registerer)
//   - registry.WithCacheSize(n)
func NewRegistry(opts ...registry.Option) (*registry.Registry, error) {
	return registry.New(opts...)
}

// FrameID returns the identity origin.FrameTable assigns to an inline frame
// name. It lets separate processes agree on frame identities without sharing
// a table.
func FrameID(name string) origin.FrameID {
	return origin.FrameID(hash.NonZeroID(name))
}
