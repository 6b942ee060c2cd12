// Package origin defines the logical source location attached to a span of
// generated machine code.
//
// An Origin is a bytecode index plus an optional inline frame. The inline
// frame identifies which inlined call produced the code; FrameID 0 means the
// code belongs to the top (non-inlined) frame. Origins compare structurally
// with ==.
//
// Two origins are special:
//   - Default(), the zero value: bytecode index 0 in the top frame. Delta
//     streams start from it.
//   - Empty(): no origin is known. A builder treats it as "keep the current
//     origin" and lookups never report it as a match.
package origin

import (
	"fmt"
	"math"
)

// BytecodeIndex is a signed offset into a bytecode stream.
type BytecodeIndex int64

// InvalidBytecodeIndex marks the empty origin.
const InvalidBytecodeIndex BytecodeIndex = math.MinInt64

// FrameID is an opaque, pointer-sized inline frame identity. Zero means none.
type FrameID uint64

// NoFrame is the FrameID of code that was not inlined.
const NoFrame FrameID = 0

// Origin is the logical source location of a span of generated code.
type Origin struct {
	Index BytecodeIndex
	Frame FrameID
}

// New returns an origin in the top frame.
func New(index BytecodeIndex) Origin {
	return Origin{Index: index}
}

// NewInlined returns an origin inside the given inline frame.
func NewInlined(index BytecodeIndex, frame FrameID) Origin {
	return Origin{Index: index, Frame: frame}
}

// Default returns bytecode index 0 in the top frame.
func Default() Origin {
	return Origin{}
}

// Empty returns the "no origin" sentinel.
func Empty() Origin {
	return Origin{Index: InvalidBytecodeIndex}
}

// IsEmpty reports whether o is the empty sentinel.
func (o Origin) IsEmpty() bool {
	return o.Index == InvalidBytecodeIndex
}

// IsInlined reports whether o carries an inline frame reference.
func (o Origin) IsInlined() bool {
	return o.Frame != NoFrame
}

func (o Origin) String() string {
	switch {
	case o.IsEmpty():
		return "<empty>"
	case o.IsInlined():
		return fmt.Sprintf("bc#%d@frame:%#x", o.Index, uint64(o.Frame))
	default:
		return fmt.Sprintf("bc#%d", o.Index)
	}
}

func (o Origin) withFrameName(name string) string {
	return fmt.Sprintf("bc#%d@%s", o.Index, name)
}
