package compress

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arloliu/msbt/format"
)

// Compressor compresses a complete file image.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a complete file image produced by the matching Compressor.
//
// An error is returned when data is corrupted or was produced by another algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	s2Magic   = []byte("\xff\x06\x00\x00S2sTwO")
)

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

var extensions = map[string]format.CompressionType{
	".zs":  format.CompressionZstd,
	".zst": format.CompressionZstd,
	".s2":  format.CompressionS2,
	".lz4": format.CompressionLZ4,
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Detect identifies the compression of data by its leading frame magic.
// Data without a recognized magic is reported as format.CompressionNone.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, s2Magic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// ForPath maps the suffix of path to a compression type.
// The second result is false when the suffix carries no compression meaning.
func ForPath(path string) (format.CompressionType, bool) {
	ct, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return format.CompressionNone, false
	}

	return ct, true
}
