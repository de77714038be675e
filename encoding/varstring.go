package encoding

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/msbt/errs"
)

// MaxLabelLength is the maximum length of a label name in bytes.
// The name is prefixed by a uint8 length, so 255 is the hard limit.
const MaxLabelLength = 255

// VarStringSize returns the encoded size of s: 1 length byte plus the string bytes.
func VarStringSize(s string) int {
	return 1 + len(s)
}

// AppendVarString appends s to dst with a uint8 length prefix.
func AppendVarString(dst []byte, s string) ([]byte, error) {
	if len(s) > MaxLabelLength {
		return dst, fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrInvalidLabelName, len(s), MaxLabelLength)
	}

	dst = append(dst, uint8(len(s))) //nolint:gosec

	return append(dst, s...), nil
}

// ReadVarString decodes a length-prefixed name from the start of data and
// returns it with the number of bytes consumed. The name must be valid UTF-8.
func ReadVarString(data []byte) (string, int, error) {
	if len(data) < 1 {
		return "", 0, fmt.Errorf("%w: missing label length", errs.ErrTruncated)
	}

	n := int(data[0])
	if len(data) < 1+n {
		return "", 0, fmt.Errorf("%w: label needs %d bytes, have %d", errs.ErrTruncated, n, len(data)-1)
	}

	raw := data[1 : 1+n]
	if !utf8.Valid(raw) {
		return "", 0, fmt.Errorf("%w: % X", errs.ErrInvalidLabelEncoding, raw)
	}

	return string(raw), 1 + n, nil
}
