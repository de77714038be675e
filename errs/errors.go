// Package errs defines the errors returned by the msbt packages.
//
// Every failure maps to a sentinel error that can be matched with errors.Is.
// Failures that must identify the offending bytes are reported through typed
// errors (MagicError, EncodingError, SectionTagError) that unwrap to their
// sentinel and can be inspected with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// Header errors.
var (
	ErrInvalidHeaderSize = errors.New("invalid header size")
	ErrInvalidMagic      = errors.New("invalid file magic")
	ErrInvalidBOM        = errors.New("invalid byte order mark")
	ErrInvalidEncoding   = errors.New("invalid text encoding")
)

// Framing errors.
var (
	ErrTruncated         = errors.New("unexpected end of data")
	ErrUnknownSection    = errors.New("unknown section tag")
	ErrDuplicateSection  = errors.New("duplicate section")
	ErrSectionOverflow   = errors.New("section size exceeds remaining data")
	ErrSectionNotPresent = errors.New("section not present")
	ErrMixedPadding      = errors.New("padding byte differs from file pad byte")
)

// Payload errors.
var (
	ErrInvalidLabelEncoding = errors.New("label name is not valid UTF-8")
	ErrLabelIndexOutOfRange = errors.New("label index out of range")
	ErrDuplicateLabelIndex  = errors.New("label index assigned twice")
	ErrInvalidStringOffsets = errors.New("invalid string table offsets")
	ErrTagParamsTooLong     = errors.New("tag parameters exceed 65535 bytes")
	ErrPayloadTooLarge      = errors.New("payload exceeds 4 GiB")
	ErrTrailingData         = errors.New("unused bytes after section content")
)

// Edit errors.
var (
	ErrInvalidLabelName = errors.New("invalid label name")
	ErrDuplicateLabel   = errors.New("duplicate label name")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrEditorReleased   = errors.New("editor already released")
	ErrInvalidSection   = errors.New("invalid section")
	ErrBuilderFinished  = errors.New("builder already built")
)

// MagicError reports a file magic that does not match the expected value.
type MagicError struct {
	Got []byte
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("%s: got %q", ErrInvalidMagic, e.Got)
}

func (e *MagicError) Unwrap() error {
	return ErrInvalidMagic
}

// BOMError reports a byte order mark that is neither FE FF nor FF FE.
type BOMError struct {
	Got [2]byte
}

func (e *BOMError) Error() string {
	return fmt.Sprintf("%s: got % X", ErrInvalidBOM, e.Got[:])
}

func (e *BOMError) Unwrap() error {
	return ErrInvalidBOM
}

// EncodingError reports an encoding selector byte outside the two legal values.
type EncodingError struct {
	Value byte
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: 0x%02X", ErrInvalidEncoding, e.Value)
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// SectionTagError reports an unrecognized section tag with its raw bytes.
type SectionTagError struct {
	Tag    [4]byte
	Offset int64
}

func (e *SectionTagError) Error() string {
	return fmt.Sprintf("%s %q (% X) at offset 0x%X", ErrUnknownSection, e.Tag[:], e.Tag[:], e.Offset)
}

func (e *SectionTagError) Unwrap() error {
	return ErrUnknownSection
}
