package codemap

import (
	"fmt"
	"iter"

	"github.com/arloliu/pcmap/internal/options"
	"github.com/arloliu/pcmap/origin"
)

// Label is an abstract code position recorded during emission, such as an
// offset into an assembler buffer. A Resolver turns it into an address once
// the code has been linked.
type Label uint64

// CodeRange is the pre-link span [Start, End) of emitted code attributed to Origin.
type CodeRange struct {
	Start  Label
	End    Label
	Origin origin.Origin
}

// OriginRange is one entry of an upstream per-instruction origin table, as
// consumed by Builder.AppendRanges. A nil Origin means the upstream compiler
// had no origin for the instruction.
type OriginRange struct {
	Label  Label
	Origin *origin.Origin
}

type builderState uint8

const (
	// stateNoRange: nothing recorded yet.
	stateNoRange builderState = iota
	// stateOpenRange: the last element of ranges is open and may be extended.
	stateOpenRange
)

const defaultInitialRanges = 64

// Builder records (label, origin) pairs while code is emitted and coalesces
// them into a minimal list of code ranges.
//
// A Builder has a single writer: the goroutine generating the code. It is
// consumed by NewMap once the code has been linked.
type Builder struct {
	ranges  []CodeRange
	state   builderState
	enabled bool
	strict  bool
}

type builderConfig struct {
	enabled         bool
	strict          bool
	initialCapacity int
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*builderConfig]

// WithEnabled turns recording on or off. Builders are enabled by default;
// a disabled builder ignores every Append.
func WithEnabled(enabled bool) BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.enabled = enabled
	})
}

// WithStrictOrdering makes Append panic when labels go backwards.
func WithStrictOrdering() BuilderOption {
	return options.NoError(func(c *builderConfig) {
		c.strict = true
	})
}

// WithInitialCapacity preallocates room for n ranges.
func WithInitialCapacity(n int) BuilderOption {
	return options.New(func(c *builderConfig) error {
		if n < 0 {
			return fmt.Errorf("initial capacity must not be negative, got %d", n)
		}
		c.initialCapacity = n

		return nil
	}).Named("initial capacity")
}

// NewBuilder creates a Builder.
//
// Returns an error if an option is invalid.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	cfg := &builderConfig{
		enabled:         true,
		initialCapacity: defaultInitialRanges,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := &Builder{
		enabled: cfg.enabled,
		strict:  cfg.strict,
	}
	if b.enabled {
		b.ranges = make([]CodeRange, 0, cfg.initialCapacity)
	}

	return b, nil
}

// Enabled reports whether the builder records anything.
func (b *Builder) Enabled() bool {
	return b.enabled
}

// Append records that code emitted from label onwards belongs to o.
//
// Labels must not decrease between calls. Append is called for every emitted
// instruction, so the disabled case is a single inlinable branch.
func (b *Builder) Append(label Label, o origin.Origin) {
	if !b.enabled {
		return
	}
	b.appendSlow(label, o)
}

func (b *Builder) appendSlow(label Label, o origin.Origin) {
	if b.state == stateNoRange {
		b.ranges = append(b.ranges, CodeRange{Start: label, End: label, Origin: o})
		b.state = stateOpenRange

		return
	}

	last := &b.ranges[len(b.ranges)-1]
	if b.strict && label < last.End {
		panic(fmt.Sprintf("pcmap: label %#x precedes the open range end %#x", uint64(label), uint64(last.End)))
	}

	sameOrigin := o.IsEmpty() || o == last.Origin

	if label == last.End {
		switch {
		case sameOrigin:
		case last.Start == last.End:
			// Nothing has been emitted for the open range yet; the newer
			// origin replaces it.
			last.Origin = o
		default:
			b.ranges = append(b.ranges, CodeRange{Start: label, End: label, Origin: o})
		}

		return
	}

	last.End = label
	if sameOrigin {
		return
	}
	b.ranges = append(b.ranges, CodeRange{Start: label, End: label, Origin: o})
}

// AppendRanges appends an upstream origin table in order. Entries without an
// origin are recorded as origin.Default().
func (b *Builder) AppendRanges(ranges iter.Seq[OriginRange]) {
	if !b.enabled {
		return
	}

	for r := range ranges {
		o := origin.Default()
		if r.Origin != nil {
			o = *r.Origin
		}
		b.appendSlow(r.Label, o)
	}
}

// Len returns the number of recorded ranges.
func (b *Builder) Len() int {
	return len(b.ranges)
}

// Ranges returns a copy of the recorded ranges.
func (b *Builder) Ranges() []CodeRange {
	out := make([]CodeRange, len(b.ranges))
	copy(out, b.ranges)

	return out
}

// take hands the recorded ranges to the caller and resets the builder.
func (b *Builder) take() []CodeRange {
	ranges := b.ranges
	b.ranges = nil
	b.state = stateNoRange

	return ranges
}
