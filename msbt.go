// Package msbt reads, edits and writes MsgStdBn message table containers.
//
// A container is a 32-byte header followed by up to six sections. Three of them
// share one message index space: the LBL1 label table names every message, the
// TXT2 string table holds its text and the NLI1 table maps numeric global IDs to
// message indices. ATO1, ATR1 and TSY1 are carried as raw bytes.
//
// # Core Features
//
//   - Byte-identical round trip of unmodified files
//   - Big and little endian files, UTF-8 and UTF-16 text
//   - Lossless inline tag lexing of string table entries
//   - Scoped editors that keep label buckets, offsets and sizes consistent
//   - Optional zstd, s2 or lz4 compression of the whole file
//
// # Basic Usage
//
// Reading a file and looking up a message:
//
//	m, err := msbt.ReadFile("Common.msbt")
//	if err != nil {
//	    return err
//	}
//	elems, ok := m.Message("TalkMessage_00_Start")
//	if ok {
//	    fmt.Println(encoding.PlainText(elems))
//	}
//
// Renaming a label and writing the result:
//
//	err = m.UpdateLabels(func(ed *section.LabelEditor) error {
//	    return ed.SetName(0, "Greeting")
//	})
//	if err != nil {
//	    return err
//	}
//	err = m.WriteFile("Common.msbt")
//
// Building a container from scratch:
//
//	b, _ := msbt.NewBuilder(msbt.WithEncoding(format.EncodingUTF16))
//	b.AddText("Greeting", "Hello")
//	m, err := b.Build()
package msbt

import (
	"slices"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/hash"
	"github.com/arloliu/msbt/section"
)

// Msbt is an in-memory message table container.
//
// Each section kind appears at most once. The header section count and file size
// are kept current by every edit that goes through the container and are always
// recomputed on write.
//
// Msbt is not safe for concurrent use.
type Msbt struct {
	header    section.Header
	order     []format.SectionTag
	labels    *section.LabelTable
	globalIDs *section.GlobalIDTable
	ato1      *section.Opaque
	atr1      *section.Opaque
	tsy1      *section.Opaque
	strings   *section.StringTable
	padByte   byte
}

// Header returns the container header.
func (m *Msbt) Header() section.Header {
	return m.header
}

// SectionOrder returns the section kinds in file order.
func (m *Msbt) SectionOrder() []format.SectionTag {
	return slices.Clone(m.order)
}

// Labels returns the LBL1 section, or nil when the container has none.
func (m *Msbt) Labels() *section.LabelTable {
	return m.labels
}

// GlobalIDs returns the NLI1 section, or nil when the container has none.
func (m *Msbt) GlobalIDs() *section.GlobalIDTable {
	return m.globalIDs
}

// Strings returns the TXT2 section, or nil when the container has none.
func (m *Msbt) Strings() *section.StringTable {
	return m.strings
}

// Opaque returns the raw section named by tag, or nil when it is absent or tag
// does not name a raw section.
func (m *Msbt) Opaque(tag format.SectionTag) *section.Opaque {
	if p := m.opaqueSlot(tag); p != nil {
		return *p
	}

	return nil
}

// Section returns the section named by tag, or nil when it is absent.
func (m *Msbt) Section(tag format.SectionTag) section.Section {
	return m.lookup(tag)
}

// PadByte returns the value written into alignment gaps.
func (m *Msbt) PadByte() byte {
	return m.padByte
}

// SetPadByte changes the value written into alignment gaps.
func (m *Msbt) SetPadByte(b byte) {
	m.padByte = b
}

// Size returns the length of the serialized container.
func (m *Msbt) Size() int {
	size := section.HeaderSize
	for _, s := range m.sections() {
		size += section.AlignedSize(section.Size(s))
	}

	return size
}

// Fingerprint returns the xxHash64 digest of the serialized container.
func (m *Msbt) Fingerprint() (uint64, error) {
	data, err := m.Bytes()
	if err != nil {
		return 0, err
	}

	return hash.Fingerprint(data), nil
}

// Message returns the string table entry bound to label.
func (m *Msbt) Message(label string) ([]encoding.Element, bool) {
	if m.labels == nil || m.strings == nil {
		return nil, false
	}

	index, ok := m.labels.Index(label)
	if !ok {
		return nil, false
	}

	return m.strings.Entry(index)
}

// LabelOf returns the label bound to index.
func (m *Msbt) LabelOf(index int) (string, bool) {
	if m.labels == nil {
		return "", false
	}

	return m.labels.Name(index)
}

// GlobalIDOf returns the smallest global ID bound to index.
func (m *Msbt) GlobalIDOf(index int) (uint32, bool) {
	if m.globalIDs == nil || index < 0 {
		return 0, false
	}

	return m.globalIDs.IDOf(uint32(index)) //nolint:gosec
}

// sections returns the present sections in file order.
func (m *Msbt) sections() []section.Section {
	out := make([]section.Section, 0, len(m.order))
	for _, tag := range m.order {
		if s := m.lookup(tag); s != nil {
			out = append(out, s)
		}
	}

	return out
}

// lookup returns the section stored for tag as a section.Section, keeping the
// interface nil for absent sections.
func (m *Msbt) lookup(tag format.SectionTag) section.Section {
	switch tag {
	case format.TagLBL1:
		if m.labels != nil {
			return m.labels
		}
	case format.TagNLI1:
		if m.globalIDs != nil {
			return m.globalIDs
		}
	case format.TagTXT2:
		if m.strings != nil {
			return m.strings
		}
	default:
		if s := m.Opaque(tag); s != nil {
			return s
		}
	}

	return nil
}

// store places s in its slot. The section order is not touched.
func (m *Msbt) store(s section.Section) {
	switch v := s.(type) {
	case *section.LabelTable:
		m.labels = v
	case *section.GlobalIDTable:
		m.globalIDs = v
	case *section.StringTable:
		m.strings = v
	case *section.Opaque:
		if p := m.opaqueSlot(v.Tag()); p != nil {
			*p = v
		}
	}
}

func (m *Msbt) opaqueSlot(tag format.SectionTag) **section.Opaque {
	switch tag {
	case format.TagATO1:
		return &m.ato1
	case format.TagATR1:
		return &m.atr1
	case format.TagTSY1:
		return &m.tsy1
	default:
		return nil
	}
}

// refresh restores the derived header fields.
func (m *Msbt) refresh() {
	m.header.SectionCount = uint16(len(m.order)) //nolint:gosec
	m.header.FileSize = uint32(m.Size())       //nolint:gosec
}
