package section

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/errs"
)

// LabelEditor is the scoped mutation handle of a LabelTable.
//
// Releasing the editor rebuilds the bucket list from the current names so that
// the table is again a valid hash table.
//
// Note: LabelEditor is NOT thread-safe and owns the table exclusively until released.
type LabelEditor struct {
	handle
	t *LabelTable
}

// Edit returns an editor for t. onRelease, if not nil, runs after the table has
// been made consistent.
func (t *LabelTable) Edit(onRelease func()) *LabelEditor {
	return &LabelEditor{handle: handle{onRelease: onRelease}, t: t}
}

// Len returns the current number of labels.
func (e *LabelEditor) Len() int {
	return len(e.t.labels)
}

// SetName renames the label at index.
func (e *LabelEditor) SetName(index int, name string) error {
	if err := e.check(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.t.labels) {
		return fmt.Errorf("%w: label %d of %d", errs.ErrIndexOutOfRange, index, len(e.t.labels))
	}
	if err := e.validate(name, index); err != nil {
		return err
	}

	e.t.labels[index] = name

	return nil
}

// Add appends a label bound to the next free index and returns that index.
func (e *LabelEditor) Add(name string) (int, error) {
	if err := e.check(); err != nil {
		return 0, err
	}
	if err := e.validate(name, -1); err != nil {
		return 0, err
	}

	e.t.labels = append(e.t.labels, name)

	return len(e.t.labels) - 1, nil
}

// Remove deletes the label at index. Labels above index move down by one.
func (e *LabelEditor) Remove(index int) error {
	if err := e.check(); err != nil {
		return err
	}
	if index < 0 || index >= len(e.t.labels) {
		return fmt.Errorf("%w: label %d of %d", errs.ErrIndexOutOfRange, index, len(e.t.labels))
	}

	e.t.labels = slices.Delete(e.t.labels, index, index+1)

	return nil
}

// SetGroupCount changes the number of hash buckets.
func (e *LabelEditor) SetGroupCount(n int) error {
	if err := e.check(); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: bucket count %d", errs.ErrIndexOutOfRange, n)
	}

	e.t.groups = make([]Group, n)

	return nil
}

// Release rebuilds the bucket list and runs the owner's release hook.
func (e *LabelEditor) Release() {
	e.release(e.t.rehash)
}

// validate checks name for use at index; index -1 means a new label.
func (e *LabelEditor) validate(name string, index int) error {
	return e.t.checkName(name, index)
}

// CheckName reports whether name could be added to t.
func (t *LabelTable) CheckName(name string) error {
	return t.checkName(name, -1)
}

// checkName validates name for the label at index, or for a new label when
// index is -1.
func (t *LabelTable) checkName(name string, index int) error {
	if len(name) == 0 || len(name) > encoding.MaxLabelLength {
		return fmt.Errorf("%w: length %d", errs.ErrInvalidLabelName, len(name))
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidLabelEncoding, name)
	}
	if i, ok := t.Index(name); ok && i != index {
		return fmt.Errorf("%w: %q is bound to index %d", errs.ErrDuplicateLabel, name, i)
	}

	return nil
}
