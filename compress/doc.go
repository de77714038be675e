// Package compress provides the codecs used to wrap whole message files.
//
// Message files are frequently shipped compressed inside game archives, most
// commonly as Zstandard frames with a ".zs" suffix. The codecs here are applied
// around the complete container bytes: a file is decompressed before the header
// is parsed and compressed after the last section is written. They never touch
// individual sections.
//
// # Supported Algorithms
//
//   - None: bytes are passed through unchanged
//   - Zstd: Zstandard frames (klauspost/compress/zstd)
//   - S2: S2 stream format (klauspost/compress/s2)
//   - LZ4: LZ4 frame format (pierrec/lz4/v4)
//
// # Detection
//
// Detect inspects the leading frame magic of each stream format, and
// ForPath maps the usual file suffixes:
//
//	ct := compress.Detect(data)
//	if ct == format.CompressionNone {
//	    ct, _ = compress.ForPath(path)
//	}
//	codec, err := compress.GetCodec(ct)
//	raw, err := codec.Decompress(data)
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and decoders and are
// safe for concurrent use.
package compress
