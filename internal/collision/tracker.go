package collision

import (
	"fmt"

	"github.com/arloliu/msbt/errs"
)

// Tracker tracks label names and the hash bucket each one selects.
// It reports duplicate names and measures how evenly the labels spread over
// the buckets of a label table.
type Tracker struct {
	names   map[string]uint32 // name → bucket
	buckets map[uint32]int    // bucket → label count
	busiest int
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:   make(map[string]uint32),
		buckets: make(map[uint32]int),
	}
}

// Track records name in bucket.
// Returns errs.ErrDuplicateLabel if the same name was tracked before.
func (t *Tracker) Track(name string, bucket uint32) error {
	if _, exists := t.names[name]; exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateLabel, name)
	}

	t.names[name] = bucket
	t.buckets[bucket]++
	t.busiest = max(t.busiest, t.buckets[bucket])

	return nil
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// UsedBuckets returns the number of buckets holding at least one name.
func (t *Tracker) UsedBuckets() int {
	return len(t.buckets)
}

// Collisions returns the number of names that share a bucket with an earlier name.
func (t *Tracker) Collisions() int {
	return len(t.names) - len(t.buckets)
}

// Busiest returns the label count of the fullest bucket.
func (t *Tracker) Busiest() int {
	return t.busiest
}

// Reset clears all tracked names.
func (t *Tracker) Reset() {
	clear(t.names)
	clear(t.buckets)
	t.busiest = 0
}
