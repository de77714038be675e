package encoding

import (
	"bytes"
	"testing"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/stretchr/testify/require"
)

var (
	utf16LE = NewTextCodec(format.EncodingUTF16, endian.GetLittleEndianEngine())
	utf16BE = NewTextCodec(format.EncodingUTF16, endian.GetBigEndianEngine())
	utf8LE  = NewTextCodec(format.EncodingUTF8, endian.GetLittleEndianEngine())
	utf8BE  = NewTextCodec(format.EncodingUTF8, endian.GetBigEndianEngine())
)

func TestTextCodec_Decode(t *testing.T) {
	tests := []struct {
		name  string
		codec TextCodec
		data  []byte
		want  []Element
	}{
		{
			name:  "empty entry",
			codec: utf16LE,
			data:  []byte{},
			want:  nil,
		},
		{
			name:  "utf16 le literal with terminator",
			codec: utf16LE,
			data:  []byte{'H', 0, 'i', 0, 0, 0},
			want:  []Element{Text("Hi\x00")},
		},
		{
			name:  "utf16 be tag abutting text",
			codec: utf16BE,
			data:  []byte{0x00, 0x0E, 0x00, 0x01, 0x00, 0x02, 0x00, 0x02, 0xAA, 0xBB, 0x00, 'A'},
			want: []Element{
				Tag{Group: 1, Type: 2, Params: []byte{0xAA, 0xBB}},
				Text("A"),
			},
		},
		{
			name:  "utf16 le open and close around text",
			codec: utf16LE,
			data: []byte{
				0x0E, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00,
				'O', 0, 'K', 0,
				0x0F, 0x00, 0x00, 0x00, 0x03, 0x00,
			},
			want: []Element{
				Tag{Group: 0, Type: 3, Params: []byte{}},
				Text("OK"),
				TagEnd{Group: 0, Type: 3},
			},
		},
		{
			name:  "adjacent tags without separator",
			codec: utf16LE,
			data: []byte{
				0x0E, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x0E, 0x00, 0x02, 0x00, 0x07, 0x00, 0x01, 0x00, 0x09,
			},
			want: []Element{
				Tag{Group: 1, Type: 0, Params: []byte{}},
				Tag{Group: 2, Type: 7, Params: []byte{0x09}},
			},
		},
		{
			name:  "utf16 surrogate pair stays whole",
			codec: utf16LE,
			data:  []byte{0x3D, 0xD8, 0x00, 0xDE, '!', 0},
			want:  []Element{Text("\U0001F600!")},
		},
		{
			name:  "utf16 unpaired high surrogate",
			codec: utf16LE,
			data:  []byte{0x3D, 0xD8, 'A', 0},
			want:  []Element{Raw{0x3D, 0xD8}, Text("A")},
		},
		{
			name:  "utf16 lone low surrogate",
			codec: utf16BE,
			data:  []byte{0xDC, 0x00, 0xDC, 0x01},
			want:  []Element{Raw{0xDC, 0x00, 0xDC, 0x01}},
		},
		{
			name:  "utf16 odd trailing byte",
			codec: utf16LE,
			data:  []byte{'A', 0, 'B'},
			want:  []Element{Text("A"), Raw{'B'}},
		},
		{
			name:  "truncated tag header",
			codec: utf16LE,
			data:  []byte{'x', 0, 0x0E, 0x00, 0x01, 0x00},
			want:  []Element{Text("x"), Raw{0x0E, 0x00, 0x01, 0x00}},
		},
		{
			name:  "truncated tag params",
			codec: utf16LE,
			data:  []byte{0x0E, 0x00, 0x01, 0x00, 0x02, 0x00, 0x05, 0x00, 0xAA},
			want:  []Element{Raw{0x0E, 0x00, 0x01, 0x00, 0x02, 0x00, 0x05, 0x00, 0xAA}},
		},
		{
			name:  "truncated close tag",
			codec: utf16BE,
			data:  []byte{0x00, 0x0F, 0x00},
			want:  []Element{Raw{0x00, 0x0F, 0x00}},
		},
		{
			name:  "utf8 multibyte and tag",
			codec: utf8LE,
			data:  []byte{0xC3, 0xA9, 0x0E, 0x01, 0x00, 0x02, 0x00, 0x01, 0x00, 0xFF, 'x', 0x0F, 0x01, 0x00, 0x02, 0x00},
			want: []Element{
				Text("é"),
				Tag{Group: 1, Type: 2, Params: []byte{0xFF}},
				Text("x"),
				TagEnd{Group: 1, Type: 2},
			},
		},
		{
			name:  "utf8 big endian tag fields",
			codec: utf8BE,
			data:  []byte{0x0E, 0x00, 0x04, 0x00, 0x01, 0x00, 0x00},
			want:  []Element{Tag{Group: 4, Type: 1, Params: []byte{}}},
		},
		{
			name:  "utf8 invalid bytes merge into one raw",
			codec: utf8LE,
			data:  []byte{'a', 0xFF, 0xFE, 'b'},
			want:  []Element{Text("a"), Raw{0xFF, 0xFE}, Text("b")},
		},
		{
			name:  "utf8 split multibyte sequence",
			codec: utf8LE,
			data:  []byte{'a', 0xE3, 0x81},
			want:  []Element{Text("a"), Raw{0xE3, 0x81}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.codec.Decode(tt.data)
			require.Equal(t, tt.want, got)

			encoded, err := tt.codec.Encode(got)
			require.NoError(t, err)
			require.Equal(t, tt.data, encoded, "decode/encode must be lossless")

			size, err := tt.codec.EncodedLen(got)
			require.NoError(t, err)
			require.Len(t, tt.data, size)
		})
	}
}

func TestTextCodec_Encode(t *testing.T) {
	t.Run("utf16 supplementary plane", func(t *testing.T) {
		out, err := utf16BE.Encode([]Element{Text("\U0001F600")})
		require.NoError(t, err)
		require.Equal(t, []byte{0xD8, 0x3D, 0xDE, 0x00}, out)
	})

	t.Run("utf8 text is copied", func(t *testing.T) {
		out, err := utf8LE.Encode(FromText("こんにちは"))
		require.NoError(t, err)
		require.Equal(t, append([]byte("こんにちは"), 0), out)
	})

	t.Run("append keeps prefix", func(t *testing.T) {
		out, err := utf16LE.Append([]byte{0x01}, []Element{TagEnd{Group: 2, Type: 3}})
		require.NoError(t, err)
		require.Equal(t, []byte{0x01, 0x0F, 0x00, 0x02, 0x00, 0x03, 0x00}, out)
	})

	t.Run("params too long", func(t *testing.T) {
		elems := []Element{Tag{Group: 1, Type: 1, Params: make([]byte, MaxTagParams+1)}}

		_, err := utf16LE.Encode(elems)
		require.ErrorIs(t, err, errs.ErrTagParamsTooLong)

		_, err = utf16LE.Append(nil, elems)
		require.ErrorIs(t, err, errs.ErrTagParamsTooLong)
	})

	t.Run("encoding accessor", func(t *testing.T) {
		require.Equal(t, format.EncodingUTF16, utf16LE.Encoding())
		require.Equal(t, format.EncodingUTF8, utf8BE.Encoding())
	})
}

func TestTextCodec_DecodeCopiesParams(t *testing.T) {
	data := []byte{0x0E, 0x00, 0x01, 0x00, 0x01, 0x00, 0x02, 0x00, 0x10, 0x20}
	elems := utf16LE.Decode(data)

	data[8] = 0xFF
	tag, ok := elems[0].(Tag)
	require.True(t, ok)
	require.Equal(t, []byte{0x10, 0x20}, tag.Params)
}

func TestTextCodec_RoundTripMixed(t *testing.T) {
	elems := []Element{
		Text("Line one\n"),
		Tag{Group: 0, Type: 0, Params: []byte{0x00, 0x00, 0x10, 0x00}},
		Text("ルビ"),
		TagEnd{Group: 0, Type: 0},
		Text("\x00"),
	}

	for _, codec := range []TextCodec{utf16LE, utf16BE, utf8LE, utf8BE} {
		encoded, err := codec.Encode(elems)
		require.NoError(t, err)
		require.Equal(t, elems, codec.Decode(encoded))

		again, err := codec.Encode(codec.Decode(encoded))
		require.NoError(t, err)
		require.True(t, bytes.Equal(encoded, again))
	}
}
