package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// StringTable is the TXT2 section: one element sequence per message index.
//
// Entry offsets are never stored; they are derived from the encoded entries on write.
// sizes[i] is the encoded length of entries[i], fixed when the entry is stored.
type StringTable struct {
	base
	codec   encoding.TextCodec
	entries [][]encoding.Element
	sizes   []int
}

var _ Section = (*StringTable)(nil)

// NewStringTable creates an empty string table whose entries are encoded with codec.
func NewStringTable(codec encoding.TextCodec) *StringTable {
	return &StringTable{codec: codec}
}

// ParseStringTable decodes a TXT2 payload.
//
// Offsets are relative to the payload start. Entry i spans
// [offsets[i], offsets[i+1]), the last entry ends at the payload end. The first
// entry must start right after the offset array, since bytes in between could
// not be written back.
func ParseStringTable(env Envelope, payload []byte, codec encoding.TextCodec, engine endian.EndianEngine) (*StringTable, error) {
	t := &StringTable{base: base{reserved: env.Reserved}, codec: codec}

	if len(payload) < countSize {
		return nil, fmt.Errorf("%w: TXT2 entry count", errs.ErrTruncated)
	}
	count := engine.Uint32(payload)
	if uint64(count) > uint64(len(payload)-countSize)/offsetSize {
		return nil, fmt.Errorf("%w: TXT2 declares %d entries in %d bytes", errs.ErrTruncated, count, len(payload))
	}

	n := int(count)
	baseline := countSize + offsetSize*n
	offsets := make([]int, n+1)
	for i := range n {
		offsets[i] = int(engine.Uint32(payload[countSize+offsetSize*i:]))
	}
	offsets[n] = len(payload)
	if offsets[0] != baseline {
		return nil, fmt.Errorf("%w: first entry at 0x%X, offset array ends at 0x%X", errs.ErrInvalidStringOffsets, offsets[0], baseline)
	}

	t.entries = make([][]encoding.Element, n)
	t.sizes = make([]int, n)
	for i := range n {
		start, end := offsets[i], offsets[i+1]
		if start < baseline || start > end || end > len(payload) {
			return nil, fmt.Errorf("%w: entry %d spans [0x%X, 0x%X) in %d bytes", errs.ErrInvalidStringOffsets, i, start, end, len(payload))
		}
		t.entries[i] = codec.Decode(payload[start:end])
		t.sizes[i] = end - start
	}

	return t, nil
}

// Tag implements Section.
func (t *StringTable) Tag() format.SectionTag {
	return format.TagTXT2
}

// Codec returns the text codec of the table.
func (t *StringTable) Codec() encoding.TextCodec {
	return t.codec
}

// Len returns the number of entries.
func (t *StringTable) Len() int {
	return len(t.entries)
}

// Entry returns a copy of the elements of entry i.
func (t *StringTable) Entry(i int) ([]encoding.Element, bool) {
	if i < 0 || i >= len(t.entries) {
		return nil, false
	}

	return slices.Clone(t.entries[i]), true
}

// PayloadSize implements Section.
func (t *StringTable) PayloadSize() int {
	size := countSize + offsetSize*len(t.entries)
	for _, n := range t.sizes {
		size += n
	}

	return size
}

// AppendPayload implements Section.
func (t *StringTable) AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error) {
	start := len(dst)
	dst = engine.AppendUint32(dst, uint32(len(t.entries))) //nolint:gosec

	// Reserve the offset array and fill it while the entries are appended.
	table := len(dst)
	dst = append(dst, make([]byte, offsetSize*len(t.entries))...)

	var err error
	for i, elems := range t.entries {
		engine.PutUint32(dst[table+offsetSize*i:], uint32(len(dst)-start)) //nolint:gosec
		if dst, err = t.codec.Append(dst, elems); err != nil {
			return dst, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return dst, nil
}
