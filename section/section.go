package section

import (
	"fmt"
	"math"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// Section is the payload codec of one section kind.
//
// PayloadSize is always derived from the current content and equals the length
// of the bytes AppendPayload produces.
type Section interface {
	Tag() format.SectionTag
	Reserved() [8]byte
	PayloadSize() int
	AppendPayload(dst []byte, engine endian.EndianEngine) ([]byte, error)
}

// base carries the envelope bytes that are preserved verbatim.
type base struct {
	reserved [8]byte
}

// Reserved returns the 8 reserved envelope bytes.
func (b *base) Reserved() [8]byte {
	return b.reserved
}

// Parse decodes the payload of the section framed by env.
// The header supplies the byte order and, for the string table, the text encoding.
func Parse(env Envelope, payload []byte, h Header) (Section, error) {
	tag, ok := env.Tag()
	if !ok {
		return nil, &errs.SectionTagError{Tag: env.Magic}
	}

	engine := h.Engine()
	switch tag {
	case format.TagLBL1:
		return ParseLabelTable(env, payload, engine)
	case format.TagNLI1:
		return ParseGlobalIDTable(env, payload, engine)
	case format.TagTXT2:
		return ParseStringTable(env, payload, encoding.NewTextCodec(h.Encoding, engine), engine)
	default:
		return ParseOpaque(tag, env, payload)
	}
}

// Size returns the framed size of s without trailing padding.
func Size(s Section) int {
	return EnvelopeSize + s.PayloadSize()
}

// AppendSection appends the envelope and payload of s to dst.
// The envelope size field is taken from the payload actually produced.
func AppendSection(dst []byte, s Section, engine endian.EndianEngine) ([]byte, error) {
	start := len(dst)
	env := Envelope{Magic: s.Tag().Magic(), Reserved: s.Reserved()}
	dst = env.AppendTo(dst, engine)

	dst, err := s.AppendPayload(dst, engine)
	if err != nil {
		return dst, fmt.Errorf("encode %s: %w", s.Tag(), err)
	}

	size := len(dst) - start - EnvelopeSize
	if uint64(size) > math.MaxUint32 {
		return dst, fmt.Errorf("encode %s: %w", s.Tag(), errs.ErrPayloadTooLarge)
	}
	engine.PutUint32(dst[start+4:start+8], uint32(size))

	return dst, nil
}
