// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface,
// and maps engines to and from the 2-byte byte order mark stored in a message
// file header.
//
// # Basic Usage
//
//	engine, err := endian.FromBOM([2]byte{0xFF, 0xFE}) // little endian
//	count := engine.Uint32(payload[0:4])
//	buf = engine.AppendUint32(buf, count)
//
// A file selects its byte order once, when the header is parsed, and every
// multi-byte field in the file uses that engine.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"

	"github.com/arloliu/msbt/errs"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var (
	bomBig    = [2]byte{0xFE, 0xFF}
	bomLittle = [2]byte{0xFF, 0xFE}
)

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine when bigEndian is set, otherwise the little-endian one.
func GetEngine(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromBOM selects the engine encoded by a byte order mark.
// FE FF selects big endian, FF FE selects little endian; any other value fails
// with *errs.BOMError.
func FromBOM(bom [2]byte) (EndianEngine, error) {
	switch bom {
	case bomBig:
		return binary.BigEndian, nil
	case bomLittle:
		return binary.LittleEndian, nil
	default:
		return nil, &errs.BOMError{Got: bom}
	}
}

// BOM returns the byte order mark written for engine.
func BOM(engine EndianEngine) [2]byte {
	if IsBigEndian(engine) {
		return bomBig
	}

	return bomLittle
}
