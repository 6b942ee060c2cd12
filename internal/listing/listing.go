// Package listing reads emission listings: YAML descriptions of the labels
// and origins a code generator recorded for one block of code.
//
//	base: 0x400000
//	entries:
//	  - label: 0x0
//	    index: 5
//	  - label: 0x10
//	    index: 9
//	    frame: inlined.callee
//	  - label: 0x20   # no index: empty origin
package listing

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/errs"
	"github.com/arloliu/pcmap/origin"
)

// Entry is one recorded (label, origin) pair.
type Entry struct {
	Label uint64 `yaml:"label"`
	// Index is the bytecode index; nil records the empty origin.
	Index *int64 `yaml:"index,omitempty"`
	// Frame names the inline frame, empty for the top frame.
	Frame string `yaml:"frame,omitempty"`
}

// Listing is a parsed emission listing.
type Listing struct {
	// Base is the address the block was linked at; labels are offsets from it.
	Base    uint64  `yaml:"base"`
	Entries []Entry `yaml:"entries"`
}

// Parse decodes and validates a listing. Unknown fields are rejected.
func Parse(r io.Reader) (*Listing, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var l Listing
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.ErrEmptyListing
		}

		return nil, fmt.Errorf("decode listing: %w", err)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &l, nil
}

// Validate checks that the listing has entries in emission order that
// resolve to non-zero addresses without overflow.
func (l *Listing) Validate() error {
	if len(l.Entries) == 0 {
		return errs.ErrEmptyListing
	}

	for i, e := range l.Entries {
		if i > 0 && e.Label < l.Entries[i-1].Label {
			return fmt.Errorf("%w: entry %d label %#x after %#x", errs.ErrUnorderedListing, i, e.Label, l.Entries[i-1].Label)
		}
		if e.Label > math.MaxUint64-l.Base {
			return fmt.Errorf("%w: entry %d label %#x", errs.ErrListingOutOfRange, i, e.Label)
		}
		if e.Index == nil && e.Frame != "" {
			return fmt.Errorf("entry %d: frame %q without a bytecode index", i, e.Frame)
		}
	}

	if l.Base+l.Entries[0].Label == 0 {
		return fmt.Errorf("%w: first entry resolves to address 0", errs.ErrListingOutOfRange)
	}

	return nil
}

// Origin returns the origin of e, interning its frame name in frames.
func (e Entry) Origin(frames *origin.FrameTable) (origin.Origin, error) {
	if e.Index == nil {
		return origin.Empty(), nil
	}

	o := origin.New(origin.BytecodeIndex(*e.Index))
	if e.Frame == "" {
		return o, nil
	}

	id, err := frames.Intern(e.Frame)
	if err != nil {
		return origin.Origin{}, err
	}
	o.Frame = id

	return o, nil
}

// Record appends every entry to b and returns the frame names it interned.
func (l *Listing) Record(b *codemap.Builder) (*origin.FrameTable, error) {
	frames := origin.NewFrameTable()

	for i, e := range l.Entries {
		o, err := e.Origin(frames)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		b.Append(codemap.Label(e.Label), o)
	}

	return frames, nil
}

// Resolver resolves the listing's labels against its base address.
func (l *Listing) Resolver() codemap.Resolver {
	return codemap.LinkedResolver{Base: l.Base}
}

// Build records the listing into a fresh builder and compresses it.
func (l *Listing) Build(opts ...codemap.MapOption) (*codemap.Map, *origin.FrameTable, error) {
	b, err := codemap.NewBuilder(codemap.WithInitialCapacity(len(l.Entries)))
	if err != nil {
		return nil, nil, err
	}

	frames, err := l.Record(b)
	if err != nil {
		return nil, nil, err
	}

	m, err := codemap.NewMap(b, l.Resolver(), opts...)
	if err != nil {
		return nil, nil, err
	}

	return m, frames, nil
}
