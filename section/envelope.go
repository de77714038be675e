package section

import (
	"fmt"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// Envelope is the 16-byte frame in front of every section payload.
//
// Size is authoritative only for delimiting the payload on read; the writer
// derives it from the encoded payload.
type Envelope struct {
	Magic    [4]byte // 4 bytes, offset 0-3
	Size     uint32  // 4 bytes, offset 4-7
	Reserved [8]byte // 8 bytes, offset 8-15
}

// ParseEnvelope parses the envelope from the start of data.
func ParseEnvelope(data []byte, engine endian.EndianEngine) (Envelope, error) {
	var e Envelope
	if len(data) < EnvelopeSize {
		return e, fmt.Errorf("%w: section envelope needs %d bytes, have %d", errs.ErrTruncated, EnvelopeSize, len(data))
	}

	copy(e.Magic[:], data[0:4])
	e.Size = engine.Uint32(data[4:8])
	copy(e.Reserved[:], data[8:16])

	return e, nil
}

// Tag returns the section kind named by the envelope magic.
func (e Envelope) Tag() (format.SectionTag, bool) {
	return format.ParseSectionTag(e.Magic)
}

// AppendTo appends the EnvelopeSize bytes of the envelope to dst.
func (e Envelope) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = append(dst, e.Magic[:]...)
	dst = engine.AppendUint32(dst, e.Size)

	return append(dst, e.Reserved[:]...)
}
