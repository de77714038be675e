package section

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/collision"
	"github.com/arloliu/msbt/internal/hash"
)

// Group is one bucket of the on-disk label hash table.
type Group struct {
	// LabelCount is the number of labels whose checksum selects this bucket.
	LabelCount uint32 // 4 bytes
	// Offset is the payload offset of the first label of the bucket.
	Offset uint32 // 4 bytes
}

// LabelTable is the LBL1 section: a disk-resident hash table binding label
// names to the index space shared with the string table and global IDs.
//
// The authoritative content is the dense labels array, addressed by index.
// The bucket list is derived metadata: on write the labels are emitted sorted by
// checksum and the bucket list is emitted as stored, so the two agree only after
// the bucket list has been rebuilt from the current names. LabelEditor.Release
// performs that rebuild.
type LabelTable struct {
	base
	groups []Group
	labels []string
}

var _ Section = (*LabelTable)(nil)

// NewLabelTable creates an empty label table with groupCount buckets.
func NewLabelTable(groupCount int) *LabelTable {
	if groupCount < 1 {
		groupCount = DefaultLabelGroups
	}

	return &LabelTable{groups: make([]Group, groupCount)}
}

// ParseLabelTable decodes an LBL1 payload.
//
// Labels are read bucket by bucket, but each one is stored at the index recorded
// next to its name, not at its position in the scan. Every index in
// [0, total label count) must be assigned exactly once.
func ParseLabelTable(env Envelope, payload []byte, engine endian.EndianEngine) (*LabelTable, error) {
	t := &LabelTable{base: base{reserved: env.Reserved}}

	if len(payload) < countSize {
		return nil, fmt.Errorf("%w: LBL1 bucket count", errs.ErrTruncated)
	}
	groupCount := engine.Uint32(payload)
	if uint64(groupCount) > uint64(len(payload)-countSize)/labelGroupSize {
		return nil, fmt.Errorf("%w: LBL1 declares %d buckets in %d bytes", errs.ErrTruncated, groupCount, len(payload))
	}

	off := countSize
	total := 0
	t.groups = make([]Group, groupCount)
	for i := range t.groups {
		t.groups[i] = Group{
			LabelCount: engine.Uint32(payload[off:]),
			Offset:     engine.Uint32(payload[off+4:]),
		}
		total += int(t.groups[i].LabelCount)
		off += labelGroupSize
	}

	// Each label takes at least its length byte and index.
	if total > (len(payload)-off)/(1+labelIndexSize) {
		return nil, fmt.Errorf("%w: LBL1 declares %d labels in %d bytes", errs.ErrTruncated, total, len(payload))
	}

	t.labels = make([]string, total)
	assigned := make([]bool, total)
	for _, g := range t.groups {
		for range g.LabelCount {
			name, n, err := encoding.ReadVarString(payload[off:])
			if err != nil {
				return nil, fmt.Errorf("LBL1 label at offset 0x%X: %w", off, err)
			}
			off += n

			if len(payload)-off < labelIndexSize {
				return nil, fmt.Errorf("%w: LBL1 index of label %q", errs.ErrTruncated, name)
			}
			index := engine.Uint32(payload[off:])
			off += labelIndexSize

			if uint64(index) >= uint64(total) {
				return nil, fmt.Errorf("%w: label %q has index %d of %d", errs.ErrLabelIndexOutOfRange, name, index, total)
			}
			if assigned[index] {
				return nil, fmt.Errorf("%w: index %d (label %q)", errs.ErrDuplicateLabelIndex, index, name)
			}
			assigned[index] = true
			t.labels[index] = name
		}
	}

	// Bytes after the last label would be lost on write.
	if off != len(payload) {
		return nil, fmt.Errorf("%w: LBL1 has %d bytes after the last label at offset 0x%X", errs.ErrTrailingData, len(payload)-off, off)
	}

	return t, nil
}

// Tag implements Section.
func (t *LabelTable) Tag() format.SectionTag {
	return format.TagLBL1
}

// Len returns the number of labels.
func (t *LabelTable) Len() int {
	return len(t.labels)
}

// Name returns the label at index.
func (t *LabelTable) Name(index int) (string, bool) {
	if index < 0 || index >= len(t.labels) {
		return "", false
	}

	return t.labels[index], true
}

// Names returns a copy of all labels in index order.
func (t *LabelTable) Names() []string {
	return slices.Clone(t.labels)
}

// Index returns the index bound to name.
func (t *LabelTable) Index(name string) (int, bool) {
	i := slices.Index(t.labels, name)
	return i, i >= 0
}

// Groups returns a copy of the bucket list.
func (t *LabelTable) Groups() []Group {
	return slices.Clone(t.groups)
}

// Checksum returns the bucket selected by name for the current bucket count.
func (t *LabelTable) Checksum(name string) uint32 {
	return hash.LabelChecksum(name, uint32(len(t.groups))) //nolint:gosec
}

// Consistent reports whether the bucket list matches the checksum-sorted label
// stream, i.e. whether a reader that trusts the bucket layout finds every label.
func (t *LabelTable) Consistent() bool {
	if len(t.groups) == 0 {
		return len(t.labels) == 0
	}

	return slices.Equal(t.groups, t.computeGroups())
}

// PayloadSize implements Section.
func (t *LabelTable) PayloadSize() int {
	size := countSize + labelGroupSize*len(t.groups)
	for _, name := range t.labels {
		size += encoding.VarStringSize(name) + labelIndexSize
	}

	return size
}

// AppendPayload implements Section. Labels are emitted as (name, index) pairs in
// ascending checksum order; labels with equal checksums keep index order.
func (t *LabelTable) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	dst = engine.AppendUint32(dst, uint32(len(t.groups))) //nolint:gosec
	for _, g := range t.groups {
		dst = engine.AppendUint32(dst, g.LabelCount)
		dst = engine.AppendUint32(dst, g.Offset)
	}

	var err error
	for _, index := range t.sortedIndices() {
		if dst, err = encoding.AppendVarString(dst, t.labels[index]); err != nil {
			return dst, err
		}
		dst = engine.AppendUint32(dst, uint32(index)) //nolint:gosec
	}

	return dst, nil
}

// sortedIndices returns label indices stably sorted by checksum.
func (t *LabelTable) sortedIndices() []int {
	sums := make([]uint32, len(t.labels))
	indices := make([]int, len(t.labels))
	for i, name := range t.labels {
		sums[i] = t.Checksum(name)
		indices[i] = i
	}

	slices.SortStableFunc(indices, func(a, b int) int {
		return cmp.Compare(sums[a], sums[b])
	})

	return indices
}

// computeGroups derives the bucket list from the current names.
// The bucket count is kept and must not be zero.
func (t *LabelTable) computeGroups() []Group {
	groups := make([]Group, len(t.groups))
	for _, name := range t.labels {
		groups[t.Checksum(name)].LabelCount++
	}

	offset := countSize + labelGroupSize*len(groups)
	sizes := make([]int, len(groups))
	for _, name := range t.labels {
		sizes[t.Checksum(name)] += encoding.VarStringSize(name) + labelIndexSize
	}
	for i := range groups {
		groups[i].Offset = uint32(offset) //nolint:gosec
		offset += sizes[i]
	}

	return groups
}

// rehash rebuilds the bucket list from the current names. A table holding labels
// always has at least one bucket.
func (t *LabelTable) rehash() {
	if len(t.groups) == 0 {
		if len(t.labels) == 0 {
			return
		}
		t.groups = make([]Group, DefaultLabelGroups)
	}
	t.groups = t.computeGroups()
}

// BucketStats summarizes how the labels spread over the buckets.
type BucketStats struct {
	Labels     int // number of labels
	Buckets    int // bucket count
	Used       int // buckets holding at least one label
	Collisions int // labels sharing a bucket with an earlier label
	Busiest    int // label count of the fullest bucket
	Duplicates int // labels whose name repeats an earlier label
}

// BucketStats reports the bucket occupancy of the current names.
func (t *LabelTable) BucketStats() BucketStats {
	tracker := collision.NewTracker()
	stats := BucketStats{Labels: len(t.labels), Buckets: len(t.groups)}
	for _, name := range t.labels {
		if err := tracker.Track(name, t.Checksum(name)); err != nil {
			stats.Duplicates++
		}
	}
	stats.Used = tracker.UsedBuckets()
	stats.Collisions = tracker.Collisions()
	stats.Busiest = tracker.Busiest()

	return stats
}
