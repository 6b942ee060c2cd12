package collision

import (
	"testing"

	"github.com/arloliu/pcmap/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	existed, err := tracker.Track("Array.prototype.map", 0x1234567890abcdef)
	require.NoError(t, err)
	require.False(t, existed)

	existed, err = tracker.Track("callback", 0xfedcba0987654321)
	require.NoError(t, err)
	require.False(t, existed)

	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"Array.prototype.map", "callback"}, tracker.Names())

	name, ok := tracker.Lookup(0xfedcba0987654321)
	require.True(t, ok)
	require.Equal(t, "callback", name)

	_, ok = tracker.Lookup(0x1)
	require.False(t, ok)
}

func TestTracker_Track_SameNameTwice(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("callback", 0xabc)
	require.NoError(t, err)

	existed, err := tracker.Track("callback", 0xabc)
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("", 0x1234567890abcdef)

	require.ErrorIs(t, err, errs.ErrInvalidFrameName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Collision(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("first", 0x42)
	require.NoError(t, err)

	_, err = tracker.Track("second", 0x42)
	require.ErrorIs(t, err, errs.ErrFrameHashCollision)

	require.Equal(t, 1, tracker.Count())
	name, _ := tracker.Lookup(0x42)
	require.Equal(t, "first", name)
}
