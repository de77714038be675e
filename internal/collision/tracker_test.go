package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/msbt/errs"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.Equal(t, 0, tracker.UsedBuckets())
	require.Equal(t, 0, tracker.Collisions())
	require.Equal(t, 0, tracker.Busiest())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("A", 65))
	require.NoError(t, tracker.Track("AB", 63))
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, 0, tracker.Collisions())
	require.Equal(t, 1, tracker.Busiest())

	// Different name, same bucket
	require.NoError(t, tracker.Track("Other", 65))
	require.Equal(t, 3, tracker.Count())
	require.Equal(t, 2, tracker.UsedBuckets())
	require.Equal(t, 1, tracker.Collisions())
	require.Equal(t, 2, tracker.Busiest())
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("Hello", 25))
	err := tracker.Track("Hello", 25)
	require.ErrorIs(t, err, errs.ErrDuplicateLabel)
	require.Equal(t, 1, tracker.Count())
	require.Equal(t, 1, tracker.Busiest())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Track("A", 0))
	require.NoError(t, tracker.Track("B", 0))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.Equal(t, 0, tracker.UsedBuckets())
	require.Equal(t, 0, tracker.Busiest())
	require.NoError(t, tracker.Track("A", 0))
}
