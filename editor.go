package msbt

import (
	"fmt"
	"slices"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/section"
)

// EditLabels returns an editor for the label table. Releasing it rebuilds the
// label buckets and refreshes the container header.
func (m *Msbt) EditLabels() (*section.LabelEditor, error) {
	if m.labels == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotPresent, format.TagLBL1)
	}

	return m.labels.Edit(m.refresh), nil
}

// EditStrings returns an editor for the string table. Releasing it refreshes the
// container header.
func (m *Msbt) EditStrings() (*section.StringEditor, error) {
	if m.strings == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotPresent, format.TagTXT2)
	}

	return m.strings.Edit(m.refresh), nil
}

// EditGlobalIDs returns an editor for the global ID table. Releasing it
// refreshes the container header.
func (m *Msbt) EditGlobalIDs() (*section.GlobalIDEditor, error) {
	if m.globalIDs == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrSectionNotPresent, format.TagNLI1)
	}

	return m.globalIDs.Edit(m.refresh), nil
}

// UpdateLabels runs fn with a label editor that is released when fn returns.
// Edits made before an error are kept.
func (m *Msbt) UpdateLabels(fn func(ed *section.LabelEditor) error) error {
	ed, err := m.EditLabels()
	if err != nil {
		return err
	}
	defer ed.Release()

	return fn(ed)
}

// UpdateStrings runs fn with a string editor that is released when fn returns.
func (m *Msbt) UpdateStrings(fn func(ed *section.StringEditor) error) error {
	ed, err := m.EditStrings()
	if err != nil {
		return err
	}
	defer ed.Release()

	return fn(ed)
}

// UpdateGlobalIDs runs fn with a global ID editor that is released when fn returns.
func (m *Msbt) UpdateGlobalIDs(fn func(ed *section.GlobalIDEditor) error) error {
	ed, err := m.EditGlobalIDs()
	if err != nil {
		return err
	}
	defer ed.Release()

	return fn(ed)
}

// SetOpaque stores data as the ATO1, ATR1 or TSY1 section. A new section is
// inserted before the first present section that follows it in canonical order.
func (m *Msbt) SetOpaque(tag format.SectionTag, data []byte) error {
	s, err := section.NewOpaque(tag, data)
	if err != nil {
		return err
	}

	m.insert(s)
	m.refresh()

	return nil
}

// RemoveSection drops the section named by tag.
func (m *Msbt) RemoveSection(tag format.SectionTag) error {
	i := slices.Index(m.order, tag)
	if i < 0 {
		return fmt.Errorf("%w: %s", errs.ErrSectionNotPresent, tag)
	}

	m.order = slices.Delete(m.order, i, i+1)
	switch tag {
	case format.TagLBL1:
		m.labels = nil
	case format.TagNLI1:
		m.globalIDs = nil
	case format.TagTXT2:
		m.strings = nil
	default:
		if p := m.opaqueSlot(tag); p != nil {
			*p = nil
		}
	}
	m.refresh()

	return nil
}

// AddMessage appends a message: label and entry are bound to the same new index,
// which is returned. Missing label or string tables are created. On failure the
// container is left unchanged.
func (m *Msbt) AddMessage(label string, elems []encoding.Element) (int, error) {
	labels, strs := m.labels, m.strings
	if labels == nil {
		labels = section.NewLabelTable(section.DefaultLabelGroups)
	}
	if strs == nil {
		strs = section.NewStringTable(encoding.NewTextCodec(m.header.Encoding, m.header.Engine()))
	}

	if labels.Len() != strs.Len() {
		return 0, fmt.Errorf("%w: %d labels and %d strings", errs.ErrInvalidSection, labels.Len(), strs.Len())
	}
	if err := labels.CheckName(label); err != nil {
		return 0, err
	}
	if _, err := strs.Codec().EncodedLen(elems); err != nil {
		return 0, err
	}

	// Both edits were validated above and cannot fail.
	led := labels.Edit(nil)
	index, err := led.Add(label)
	led.Release()
	if err != nil {
		return 0, err
	}

	sed := strs.Edit(nil)
	_, err = sed.Append(elems)
	sed.Release()
	if err != nil {
		return 0, err
	}

	if m.labels == nil {
		m.insert(labels)
	}
	if m.strings == nil {
		m.insert(strs)
	}
	m.refresh()

	return index, nil
}

// RemoveMessage deletes the label, the string entry and every global ID of index.
// Higher indices move down by one in all three sections.
func (m *Msbt) RemoveMessage(index int) error {
	count := 0
	if m.labels != nil {
		count = max(count, m.labels.Len())
	}
	if m.strings != nil {
		count = max(count, m.strings.Len())
	}
	if index < 0 || index >= count {
		return fmt.Errorf("%w: message %d of %d", errs.ErrIndexOutOfRange, index, count)
	}

	if m.labels != nil && index < m.labels.Len() {
		ed := m.labels.Edit(nil)
		err := ed.Remove(index)
		ed.Release()
		if err != nil {
			return err
		}
	}
	if m.strings != nil && index < m.strings.Len() {
		ed := m.strings.Edit(nil)
		err := ed.Remove(index)
		ed.Release()
		if err != nil {
			return err
		}
	}
	if m.globalIDs != nil {
		ed := m.globalIDs.Edit(nil)
		err := ed.DropIndex(uint32(index)) //nolint:gosec
		ed.Release()
		if err != nil {
			return err
		}
	}
	m.refresh()

	return nil
}

func (m *Msbt) ensureMessageSections() {
	if m.labels == nil {
		m.insert(section.NewLabelTable(section.DefaultLabelGroups))
	}
	if m.strings == nil {
		m.insert(section.NewStringTable(encoding.NewTextCodec(m.header.Encoding, m.header.Engine())))
	}
}

func (m *Msbt) ensureGlobalIDs() *section.GlobalIDTable {
	if m.globalIDs == nil {
		m.insert(section.NewGlobalIDTable())
	}

	return m.globalIDs
}

// insert stores s and places a new tag at its canonical position.
func (m *Msbt) insert(s section.Section) {
	m.store(s)

	tag := s.Tag()
	if slices.Contains(m.order, tag) {
		return
	}
	i := slices.IndexFunc(m.order, func(t format.SectionTag) bool { return t > tag })
	if i < 0 {
		i = len(m.order)
	}
	m.order = slices.Insert(m.order, i, tag)
}
