package section

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// GlobalID binds a numeric message ID to a message index.
type GlobalID struct {
	ID    uint32
	Index uint32
}

// GlobalIDTable is the NLI1 section: a map from global ID to message index.
//
// The table is always written in ascending ID order. An empty payload has no
// count field; a payload declaring zero entries keeps its count field on write.
type GlobalIDTable struct {
	base
	ids      map[uint32]uint32
	hasCount bool
}

var _ Section = (*GlobalIDTable)(nil)

// NewGlobalIDTable creates an empty global ID table.
func NewGlobalIDTable() *GlobalIDTable {
	return &GlobalIDTable{ids: make(map[uint32]uint32)}
}

// ParseGlobalIDTable decodes an NLI1 payload of (index, id) pairs.
// A later pair for an ID already seen replaces the earlier binding.
func ParseGlobalIDTable(env Envelope, payload []byte, engine endian.EndianEngine) (*GlobalIDTable, error) {
	t := &GlobalIDTable{base: base{reserved: env.Reserved}, ids: make(map[uint32]uint32)}
	if len(payload) == 0 {
		return t, nil
	}

	if len(payload) < countSize {
		return nil, fmt.Errorf("%w: NLI1 entry count", errs.ErrTruncated)
	}
	t.hasCount = true
	count := engine.Uint32(payload)
	if uint64(count) > uint64(len(payload)-countSize)/globalIDEntrySize {
		return nil, fmt.Errorf("%w: NLI1 declares %d entries in %d bytes", errs.ErrTruncated, count, len(payload))
	}

	off := countSize
	for range count {
		index := engine.Uint32(payload[off:])
		id := engine.Uint32(payload[off+4:])
		t.ids[id] = index
		off += globalIDEntrySize
	}

	return t, nil
}

// Tag implements Section.
func (t *GlobalIDTable) Tag() format.SectionTag {
	return format.TagNLI1
}

// Len returns the number of bindings.
func (t *GlobalIDTable) Len() int {
	return len(t.ids)
}

// Index returns the message index bound to id.
func (t *GlobalIDTable) Index(id uint32) (uint32, bool) {
	index, ok := t.ids[id]
	return index, ok
}

// IDOf returns the smallest global ID bound to index.
func (t *GlobalIDTable) IDOf(index uint32) (uint32, bool) {
	var (
		best  uint32
		found bool
	)
	for id, i := range t.ids {
		if i == index && (!found || id < best) {
			best, found = id, true
		}
	}

	return best, found
}

// Entries returns all bindings in ascending ID order.
func (t *GlobalIDTable) Entries() []GlobalID {
	entries := make([]GlobalID, 0, len(t.ids))
	for _, id := range slices.Sorted(maps.Keys(t.ids)) {
		entries = append(entries, GlobalID{ID: id, Index: t.ids[id]})
	}

	return entries
}

// PayloadSize implements Section.
func (t *GlobalIDTable) PayloadSize() int {
	if len(t.ids) == 0 && !t.hasCount {
		return 0
	}

	return countSize + globalIDEntrySize*len(t.ids)
}

// AppendPayload implements Section.
func (t *GlobalIDTable) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	if len(t.ids) == 0 && !t.hasCount {
		return dst, nil
	}

	entries := t.Entries()
	dst = engine.AppendUint32(dst, uint32(len(entries))) //nolint:gosec
	for _, e := range entries {
		dst = engine.AppendUint32(dst, e.Index)
		dst = engine.AppendUint32(dst, e.ID)
	}

	return dst, nil
}
