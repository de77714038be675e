package encoding

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

const (
	// TagOpen is the code unit that introduces an open tag.
	TagOpen = 0x0E
	// TagClose is the code unit that introduces a close tag.
	TagClose = 0x0F

	// MaxTagParams is the largest parameter block a tag can carry.
	MaxTagParams = 0xFFFF

	tagHeaderSize    = 6 // group, type, param size
	tagEndHeaderSize = 4 // group, type
)

// TextCodec converts between string-table entry bytes and Elements for one
// text encoding and byte order.
type TextCodec struct {
	enc    format.Encoding
	engine endian.EndianEngine
}

// NewTextCodec creates a codec for the given encoding and byte order.
func NewTextCodec(enc format.Encoding, engine endian.EndianEngine) TextCodec {
	return TextCodec{enc: enc, engine: engine}
}

// Encoding returns the text encoding handled by the codec.
func (c TextCodec) Encoding() format.Encoding {
	return c.enc
}

// Decode lexes one entry into elements. It never fails: bytes that cannot be
// decoded are returned as Raw elements. Adjacent characters are merged into a
// single Text and adjacent undecodable bytes into a single Raw.
func (c TextCodec) Decode(data []byte) []Element {
	d := textDecoder{codec: c, data: data}
	d.run()

	return d.elems
}

// Encode returns the bytes of elems.
func (c TextCodec) Encode(elems []Element) ([]byte, error) {
	size, err := c.EncodedLen(elems)
	if err != nil {
		return nil, err
	}

	return c.Append(make([]byte, 0, size), elems)
}

// Append appends the bytes of elems to dst.
func (c TextCodec) Append(dst []byte, elems []Element) ([]byte, error) {
	for _, el := range elems {
		switch v := el.(type) {
		case Text:
			dst = c.appendText(dst, string(v))
		case Tag:
			if len(v.Params) > MaxTagParams {
				return dst, fmt.Errorf("%w: tag %d.%d has %d bytes", errs.ErrTagParamsTooLong, v.Group, v.Type, len(v.Params))
			}
			dst = c.appendUnit(dst, TagOpen)
			dst = c.engine.AppendUint16(dst, v.Group)
			dst = c.engine.AppendUint16(dst, v.Type)
			dst = c.engine.AppendUint16(dst, uint16(len(v.Params))) //nolint:gosec
			dst = append(dst, v.Params...)
		case TagEnd:
			dst = c.appendUnit(dst, TagClose)
			dst = c.engine.AppendUint16(dst, v.Group)
			dst = c.engine.AppendUint16(dst, v.Type)
		case Raw:
			dst = append(dst, v...)
		}
	}

	return dst, nil
}

// EncodedLen returns the number of bytes Append would produce for elems.
func (c TextCodec) EncodedLen(elems []Element) (int, error) {
	unit := c.enc.UnitSize()
	n := 0
	for _, el := range elems {
		switch v := el.(type) {
		case Text:
			n += c.textLen(string(v))
		case Tag:
			if len(v.Params) > MaxTagParams {
				return 0, fmt.Errorf("%w: tag %d.%d has %d bytes", errs.ErrTagParamsTooLong, v.Group, v.Type, len(v.Params))
			}
			n += unit + tagHeaderSize + len(v.Params)
		case TagEnd:
			n += unit + tagEndHeaderSize
		case Raw:
			n += len(v)
		}
	}

	return n, nil
}

func (c TextCodec) appendUnit(dst []byte, u uint16) []byte {
	if c.enc == format.EncodingUTF16 {
		return c.engine.AppendUint16(dst, u)
	}

	return append(dst, byte(u))
}

func (c TextCodec) appendText(dst []byte, s string) []byte {
	if c.enc != format.EncodingUTF16 {
		return append(dst, s...)
	}

	for _, r := range s {
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			dst = c.engine.AppendUint16(dst, uint16(r1))
			dst = c.engine.AppendUint16(dst, uint16(r2))

			continue
		}
		dst = c.engine.AppendUint16(dst, uint16(r)) //nolint:gosec
	}

	return dst
}

func (c TextCodec) textLen(s string) int {
	if c.enc != format.EncodingUTF16 {
		return len(s)
	}

	n := 0
	for _, r := range s {
		n += 2 * utf16.RuneLen(r)
	}

	return n
}

// textDecoder holds the state of one Decode call.
type textDecoder struct {
	codec TextCodec
	data  []byte
	pos   int
	text  strings.Builder
	elems []Element
}

func (d *textDecoder) run() {
	unit := d.codec.enc.UnitSize()

	for d.pos < len(d.data) {
		if len(d.data)-d.pos < unit {
			d.raw(len(d.data) - d.pos)
			break
		}

		switch d.unitAt(d.pos) {
		case TagOpen:
			if !d.openTag(unit) {
				d.raw(len(d.data) - d.pos)
			}
		case TagClose:
			if !d.closeTag(unit) {
				d.raw(len(d.data) - d.pos)
			}
		default:
			d.char()
		}
	}
	d.flushText()
}

func (d *textDecoder) unitAt(pos int) uint16 {
	if d.codec.enc == format.EncodingUTF16 {
		return d.codec.engine.Uint16(d.data[pos:])
	}

	return uint16(d.data[pos])
}

func (d *textDecoder) openTag(unit int) bool {
	hdr := d.pos + unit
	if len(d.data)-hdr < tagHeaderSize {
		return false
	}

	engine := d.codec.engine
	group := engine.Uint16(d.data[hdr:])
	typ := engine.Uint16(d.data[hdr+2:])
	size := int(engine.Uint16(d.data[hdr+4:]))

	start := hdr + tagHeaderSize
	if len(d.data)-start < size {
		return false
	}

	d.flushText()
	params := make([]byte, size)
	copy(params, d.data[start:start+size])
	d.elems = append(d.elems, Tag{Group: group, Type: typ, Params: params})
	d.pos = start + size

	return true
}

func (d *textDecoder) closeTag(unit int) bool {
	hdr := d.pos + unit
	if len(d.data)-hdr < tagEndHeaderSize {
		return false
	}

	engine := d.codec.engine
	d.flushText()
	d.elems = append(d.elems, TagEnd{
		Group: engine.Uint16(d.data[hdr:]),
		Type:  engine.Uint16(d.data[hdr+2:]),
	})
	d.pos = hdr + tagEndHeaderSize

	return true
}

// char decodes one character at pos, or emits its bytes as Raw when invalid.
func (d *textDecoder) char() {
	if d.codec.enc != format.EncodingUTF16 {
		r, size := utf8.DecodeRune(d.data[d.pos:])
		if r == utf8.RuneError && size == 1 {
			d.raw(1)
			return
		}
		d.text.WriteRune(r)
		d.pos += size

		return
	}

	u := d.unitAt(d.pos)
	switch {
	case utf16.IsSurrogate(rune(u)) && u < 0xDC00:
		if len(d.data)-d.pos >= 4 {
			r := utf16.DecodeRune(rune(u), rune(d.unitAt(d.pos+2)))
			if r != utf8.RuneError {
				d.text.WriteRune(r)
				d.pos += 4

				return
			}
		}
		d.raw(2)
	case utf16.IsSurrogate(rune(u)):
		d.raw(2)
	default:
		d.text.WriteRune(rune(u))
		d.pos += 2
	}
}

// raw moves n bytes at pos into a Raw element, merging with a preceding Raw.
func (d *textDecoder) raw(n int) {
	d.flushText()

	chunk := d.data[d.pos : d.pos+n]
	d.pos += n

	if last := len(d.elems) - 1; last >= 0 {
		if prev, ok := d.elems[last].(Raw); ok {
			d.elems[last] = append(prev, chunk...)
			return
		}
	}

	d.elems = append(d.elems, Raw(append([]byte(nil), chunk...)))
}

func (d *textDecoder) flushText() {
	if d.text.Len() == 0 {
		return
	}

	d.elems = append(d.elems, Text(d.text.String()))
	d.text.Reset()
}
