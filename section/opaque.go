package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// Opaque is a section whose payload is carried as raw bytes: ATO1, ATR1 or TSY1.
type Opaque struct {
	base
	tag  format.SectionTag
	data []byte
}

var _ Section = (*Opaque)(nil)

// NewOpaque creates an opaque section holding a copy of data.
func NewOpaque(tag format.SectionTag, data []byte) (*Opaque, error) {
	if !tag.IsOpaque() {
		return nil, fmt.Errorf("%w: %s is not an opaque section", errs.ErrInvalidSection, tag)
	}

	return &Opaque{tag: tag, data: slices.Clone(data)}, nil
}

// ParseOpaque wraps a copy of payload.
func ParseOpaque(tag format.SectionTag, env Envelope, payload []byte) (*Opaque, error) {
	s, err := NewOpaque(tag, payload)
	if err != nil {
		return nil, err
	}
	s.reserved = env.Reserved

	return s, nil
}

// Tag implements Section.
func (s *Opaque) Tag() format.SectionTag {
	return s.tag
}

// Len returns the payload length.
func (s *Opaque) Len() int {
	return len(s.data)
}

// Bytes returns a copy of the payload.
func (s *Opaque) Bytes() []byte {
	return slices.Clone(s.data)
}

// PayloadSize implements Section.
func (s *Opaque) PayloadSize() int {
	return len(s.data)
}

// AppendPayload implements Section.
func (s *Opaque) AppendPayload(dst []byte, _ endian.EndianEngine) ([]byte, error) {
	return append(dst, s.data...), nil
}
