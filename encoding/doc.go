// Package encoding provides the codecs for variable-length content inside
// message file sections.
//
// # Text Elements
//
// A string-table entry is stored as raw code units in the file's text encoding
// (UTF-8 or UTF-16 in file byte order). Inline formatting directives are
// embedded in the same stream, introduced by reserved marker code units:
//
//	0x0E group(u16) type(u16) size(u16) params[size]   open tag
//	0x0F group(u16) type(u16)                           close tag
//
// The marker is one code unit wide (1 byte for UTF-8, 2 bytes for UTF-16); the
// fields that follow are binary and use the file byte order.
//
// TextCodec lexes an entry into a sequence of Elements and encodes it back:
//
//	codec := encoding.NewTextCodec(format.EncodingUTF16, endian.GetLittleEndianEngine())
//	elems := codec.Decode(entryBytes)
//	for _, el := range elems {
//	    switch v := el.(type) {
//	    case encoding.Text:
//	        fmt.Print(string(v))
//	    case encoding.Tag:
//	        fmt.Printf("<%d.%d % X>", v.Group, v.Type, v.Params)
//	    }
//	}
//	restored, err := codec.Encode(elems) // byte-identical to entryBytes
//
// Decoding is lossless for any byte string. Code units that do not form a valid
// character (invalid UTF-8, unpaired surrogates, a trailing odd byte) and tags
// truncated by the end of the entry are kept as Raw elements and re-emitted
// verbatim.
//
// # Label Names
//
// Label names are stored with a 1-byte length prefix and hold at most
// MaxLabelLength bytes of UTF-8. AppendVarString and ReadVarString implement
// that layout.
package encoding
