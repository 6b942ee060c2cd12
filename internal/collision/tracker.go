package collision

import (
	"github.com/arloliu/pcmap/errs"
)

// Tracker records inline frame names by their 64-bit hash and rejects two
// distinct names that hash to the same value.
//
// Frame hashes are used as inline frame identities inside code maps, so a
// collision cannot be resolved after the fact the way a name payload could;
// it is reported to the caller instead.
type Tracker struct {
	names     map[uint64]string // hash → name
	namesList []string          // in first-tracked order
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:     make(map[uint64]string),
		namesList: make([]string, 0),
	}
}

// Track records name under hash.
//
// Tracking the same name twice is not an error; the second call reports
// existed=true. Returns:
//   - errs.ErrInvalidFrameName if name is empty
//   - errs.ErrFrameHashCollision if a different name already owns hash
func (t *Tracker) Track(name string, hash uint64) (existed bool, err error) {
	if name == "" {
		return false, errs.ErrInvalidFrameName
	}

	if existing, ok := t.names[hash]; ok {
		if existing != name {
			return false, errs.ErrFrameHashCollision
		}

		return true, nil
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return false, nil
}

// Lookup returns the name tracked under hash.
func (t *Tracker) Lookup(hash uint64) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Names returns the tracked names in the order they were first tracked.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.namesList)
}
