package origin

import (
	"github.com/arloliu/pcmap/internal/collision"
	"github.com/arloliu/pcmap/internal/hash"
)

// FrameTable interns inline frame names into FrameIDs.
//
// IDs are the xxHash64 of the name (never zero), so the same name yields the
// same ID in every process and a snapshot written by one tool can be named
// by another holding the same table. Two names hashing to the same ID are
// rejected.
//
// A FrameTable is not safe for concurrent use.
type FrameTable struct {
	tracker *collision.Tracker
}

// NewFrameTable creates an empty frame table.
func NewFrameTable() *FrameTable {
	return &FrameTable{tracker: collision.NewTracker()}
}

// Intern returns the FrameID for name, recording it on first use.
//
// Returns errs.ErrInvalidFrameName for an empty name and
// errs.ErrFrameHashCollision when another name already owns the hash.
func (ft *FrameTable) Intern(name string) (FrameID, error) {
	id := hash.NonZeroID(name)
	if _, err := ft.tracker.Track(name, id); err != nil {
		return NoFrame, err
	}

	return FrameID(id), nil
}

// Name returns the name interned under id.
func (ft *FrameTable) Name(id FrameID) (string, bool) {
	return ft.tracker.Lookup(uint64(id))
}

// Names returns the interned names in first-interned order.
func (ft *FrameTable) Names() []string {
	return ft.tracker.Names()
}

// Len returns the number of interned names.
func (ft *FrameTable) Len() int {
	return ft.tracker.Count()
}

// Describe formats o using the frame's name when it is known.
func (ft *FrameTable) Describe(o Origin) string {
	if o.IsInlined() {
		if name, ok := ft.Name(o.Frame); ok {
			return o.withFrameName(name)
		}
	}

	return o.String()
}
