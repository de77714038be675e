package format

type (
	Encoding        uint8
	CompressionType uint8
)

const (
	EncodingUTF8  Encoding = 0x0 // EncodingUTF8 stores text as UTF-8 code units.
	EncodingUTF16 Encoding = 0x1 // EncodingUTF16 stores text as UTF-16 code units in file byte order.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

// IsValid reports whether e is one of the two encoding selectors defined by the format.
func (e Encoding) IsValid() bool {
	return e == EncodingUTF8 || e == EncodingUTF16
}

// UnitSize returns the size in bytes of one code unit.
func (e Encoding) UnitSize() int {
	if e == EncodingUTF16 {
		return 2
	}

	return 1
}

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16:
		return "UTF-16"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
