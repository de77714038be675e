package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/errs"
)

// StringEditor is the scoped mutation handle of a StringTable.
//
// Every stored entry is checked against the table codec, so a table edited only
// through a StringEditor always encodes.
type StringEditor struct {
	handle
	t *StringTable
}

// Edit returns an editor for t. onRelease, if not nil, runs on release.
func (t *StringTable) Edit(onRelease func()) *StringEditor {
	return &StringEditor{handle: handle{onRelease: onRelease}, t: t}
}

// Len returns the current number of entries.
func (e *StringEditor) Len() int {
	return len(e.t.entries)
}

// Set replaces entry i.
func (e *StringEditor) Set(i int, elems []encoding.Element) error {
	size, err := e.prepare(i, len(e.t.entries)-1, elems)
	if err != nil {
		return err
	}
	e.t.entries[i] = slices.Clone(elems)
	e.t.sizes[i] = size

	return nil
}

// SetText replaces entry i with s followed by a NUL terminator.
func (e *StringEditor) SetText(i int, s string) error {
	return e.Set(i, encoding.FromText(s))
}

// Insert places a new entry at i, shifting later entries up by one.
func (e *StringEditor) Insert(i int, elems []encoding.Element) error {
	size, err := e.prepare(i, len(e.t.entries), elems)
	if err != nil {
		return err
	}
	e.t.entries = slices.Insert(e.t.entries, i, slices.Clone(elems))
	e.t.sizes = slices.Insert(e.t.sizes, i, size)

	return nil
}

// Append adds an entry at the end and returns its index.
func (e *StringEditor) Append(elems []encoding.Element) (int, error) {
	i := len(e.t.entries)
	if err := e.Insert(i, elems); err != nil {
		return 0, err
	}

	return i, nil
}

// Remove deletes entry i, shifting later entries down by one.
func (e *StringEditor) Remove(i int) error {
	if err := e.check(); err != nil {
		return err
	}
	if i < 0 || i >= len(e.t.entries) {
		return fmt.Errorf("%w: entry %d of %d", errs.ErrIndexOutOfRange, i, len(e.t.entries))
	}
	e.t.entries = slices.Delete(e.t.entries, i, i+1)
	e.t.sizes = slices.Delete(e.t.sizes, i, i+1)

	return nil
}

// Release runs the owner's release hook. Offsets need no rebuild.
func (e *StringEditor) Release() {
	e.release(func() {})
}

// prepare validates an entry stored at i and returns its encoded length.
func (e *StringEditor) prepare(i, maxIndex int, elems []encoding.Element) (int, error) {
	if err := e.check(); err != nil {
		return 0, err
	}
	if i < 0 || i > maxIndex {
		return 0, fmt.Errorf("%w: entry %d of %d", errs.ErrIndexOutOfRange, i, len(e.t.entries))
	}

	return e.t.codec.EncodedLen(elems)
}
