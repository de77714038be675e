package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
)

// Header represents the fixed 32-byte file header.
//
// The reserved fields are not interpreted; they are kept so that an unmodified
// file is written back byte for byte. SectionCount and FileSize are derived
// values: the writer always substitutes the current section count and total
// size instead of trusting what was read.
type Header struct {
	// Magic is the file magic, always HeaderMagic for a parsed header.
	Magic [8]byte // 8 bytes, offset 0-7

	// BigEndian selects the byte order of every multi-byte field in the file.
	// It is stored on disk as the byte order mark FE FF (big) or FF FE (little).
	BigEndian bool // 2 bytes, offset 8-9

	Reserved1 uint16 // 2 bytes, offset 10-11

	// Encoding selects the code unit width of string-table text.
	Encoding format.Encoding // 1 byte, offset 12

	Reserved2 uint8 // 1 byte, offset 13

	// SectionCount is the number of sections following the header.
	SectionCount uint16 // 2 bytes, offset 14-15

	Reserved3 uint16 // 2 bytes, offset 16-17

	// FileSize is the total file size in bytes.
	FileSize uint32 // 4 bytes, offset 18-21

	Padding [10]byte // 10 bytes, offset 22-31
}

// NewHeader creates a header for a file without sections.
func NewHeader(bigEndian bool, enc format.Encoding) Header {
	return Header{
		Magic:     HeaderMagic,
		BigEndian: bigEndian,
		Encoding:  enc,
		Reserved2: 3,
		FileSize:  HeaderSize,
	}
}

// ParseHeader parses the header from the first HeaderSize bytes of data.
//
// Fields are validated in file order: the magic first, then the byte order
// mark, then the encoding selector.
func ParseHeader(data []byte) (Header, error) {
	var h Header

	if len(data) >= len(h.Magic) && !bytes.Equal(data[:len(h.Magic)], HeaderMagic[:]) {
		return h, &errs.MagicError{Got: append([]byte(nil), data[:len(h.Magic)]...)}
	}
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: need %d bytes, have %d", errs.ErrInvalidHeaderSize, HeaderSize, len(data))
	}

	copy(h.Magic[:], data[0:8])

	engine, err := endian.FromBOM([2]byte{data[8], data[9]})
	if err != nil {
		return h, err
	}
	h.BigEndian = endian.IsBigEndian(engine)

	h.Reserved1 = engine.Uint16(data[10:12])

	h.Encoding = format.Encoding(data[12])
	if !h.Encoding.IsValid() {
		return h, &errs.EncodingError{Value: data[12]}
	}

	h.Reserved2 = data[13]
	h.SectionCount = engine.Uint16(data[14:16])
	h.Reserved3 = engine.Uint16(data[16:18])
	h.FileSize = engine.Uint32(data[18:22])
	copy(h.Padding[:], data[22:32])

	return h, nil
}

// Engine returns the byte order engine selected by the header.
func (h Header) Engine() endian.EndianEngine {
	return endian.GetEngine(h.BigEndian)
}

// AppendTo appends the HeaderSize bytes of the header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	engine := h.Engine()
	bom := endian.BOM(engine)

	dst = append(dst, h.Magic[:]...)
	dst = append(dst, bom[:]...)
	dst = engine.AppendUint16(dst, h.Reserved1)
	dst = append(dst, byte(h.Encoding), h.Reserved2)
	dst = engine.AppendUint16(dst, h.SectionCount)
	dst = engine.AppendUint16(dst, h.Reserved3)
	dst = engine.AppendUint32(dst, h.FileSize)

	return append(dst, h.Padding[:]...)
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}
