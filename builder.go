package msbt

import (
	"fmt"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/section"
)

// Builder assembles a container without a source file.
//
// Sections are laid out in canonical order (LBL1, NLI1, ATO1, ATR1, TSY1, TXT2);
// a section that receives no content is left out, except that LBL1 and TXT2 are
// always present.
//
// Example:
//
//	b, err := msbt.NewBuilder(msbt.WithBigEndian())
//	if err != nil {
//	    return err
//	}
//	index, _ := b.AddText("Greeting", "Hello")
//	b.SetGlobalID(1000, uint32(index))
//	m, err := b.Build()
type Builder struct {
	m *Msbt
}

// NewBuilder creates a builder. Defaults: little endian, UTF-16 text,
// section.DefaultLabelGroups buckets and DefaultPadByte.
func NewBuilder(opts ...BuilderOption) (*Builder, error) {
	cfg, err := newBuilderConfig(opts)
	if err != nil {
		return nil, err
	}

	m := &Msbt{
		header:  section.NewHeader(cfg.bigEndian, cfg.encoding),
		padByte: cfg.padByte,
	}
	m.insert(section.NewLabelTable(cfg.labelGroups))
	m.ensureMessageSections()

	return &Builder{m: m}, nil
}

// AddMessage appends a message and returns its index.
func (b *Builder) AddMessage(label string, elems ...encoding.Element) (int, error) {
	if b.m == nil {
		return 0, errs.ErrBuilderFinished
	}

	return b.m.AddMessage(label, elems)
}

// AddText appends a message holding text followed by a NUL terminator.
func (b *Builder) AddText(label, text string) (int, error) {
	return b.AddMessage(label, encoding.FromText(text)...)
}

// SetGlobalID binds id to the message at index. The index is checked by Build.
func (b *Builder) SetGlobalID(id, index uint32) error {
	if b.m == nil {
		return errs.ErrBuilderFinished
	}

	ed := b.m.ensureGlobalIDs().Edit(nil)
	defer ed.Release()

	return ed.Set(id, index)
}

// SetOpaque stores data as the ATO1, ATR1 or TSY1 section.
func (b *Builder) SetOpaque(tag format.SectionTag, data []byte) error {
	if b.m == nil {
		return errs.ErrBuilderFinished
	}

	return b.m.SetOpaque(tag, data)
}

// Build returns the container. The builder cannot be used afterwards.
func (b *Builder) Build() (*Msbt, error) {
	m := b.m
	if m == nil {
		return nil, errs.ErrBuilderFinished
	}

	if m.globalIDs != nil {
		for _, e := range m.globalIDs.Entries() {
			if int64(e.Index) >= int64(m.labels.Len()) {
				return nil, fmt.Errorf("%w: global ID %d points at message %d of %d",
					errs.ErrIndexOutOfRange, e.ID, e.Index, m.labels.Len())
			}
		}
	}

	b.m = nil
	m.refresh()

	return m, nil
}
