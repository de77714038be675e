package msbt

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/msbt/encoding"
	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
	"github.com/arloliu/msbt/format"
	"github.com/arloliu/msbt/internal/hash"
	"github.com/arloliu/msbt/section"
)

// rawSection frames payload in little endian order and pads it with pad.
func rawSection(magic string, payload []byte, pad byte) []byte {
	engine := endian.GetLittleEndianEngine()

	data := append([]byte(magic), 0, 0, 0, 0)
	engine.PutUint32(data[4:], uint32(len(payload))) //nolint:gosec
	data = append(data, 0, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, payload...)
	for len(data)%section.Alignment != 0 {
		data = append(data, pad)
	}

	return data
}

// rawFile prepends a little endian UTF-16 header with matching count and size.
func rawFile(sections ...[]byte) []byte {
	h := section.NewHeader(false, format.EncodingUTF16)
	h.SectionCount = uint16(len(sections)) //nolint:gosec
	size := section.HeaderSize
	for _, s := range sections {
		size += len(s)
	}
	h.FileSize = uint32(size) //nolint:gosec

	return append(h.Bytes(), bytes.Join(sections, nil)...)
}

var (
	fixtureLBL1 = []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00, 0x0C, 0x00, 0x00, 0x00,
		0x01, 'B', 0x00, 0x00, 0x00, 0x00,
		0x01, 'A', 0x01, 0x00, 0x00, 0x00,
	}
	fixtureNLI1 = []byte{
		0x02, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x14, 0x00, 0x00, 0x00,
	}
	fixtureATR1 = []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	fixtureTXT2 = []byte{
		0x02, 0x00, 0x00, 0x00,
		0x0C, 0x00, 0x00, 0x00,
		0x12, 0x00, 0x00, 0x00,
		'H', 0x00, 'i', 0x00, 0x00, 0x00,
		0x0E, 0x00, 0x00, 0x00, 0x03, 0x00, 0x02, 0x00, 0xFF, 0x00, 'A', 0x00, 0x00, 0x00,
	}
	fixtureTSY1 = []byte{0x09, 0x08, 0x07, 0x06}
)

// fixture is a little endian UTF-16 file with TSY1 after TXT2 and pad byte 0xAB.
func fixture() []byte {
	return rawFile(
		rawSection("LBL1", fixtureLBL1, 0xAB),
		rawSection("NLI1", fixtureNLI1, 0xAB),
		rawSection("ATR1", fixtureATR1, 0xAB),
		rawSection("TXT2", fixtureTXT2, 0xAB),
		rawSection("TSY1", fixtureTSY1, 0xAB),
	)
}

func TestDecode(t *testing.T) {
	t.Run("Round trip is byte identical", func(t *testing.T) {
		data := fixture()
		m, err := Decode(data)
		require.NoError(t, err)

		out, err := m.Bytes()
		require.NoError(t, err)
		require.Equal(t, data, out)
		require.Equal(t, len(data), m.Size())
	})

	t.Run("Content", func(t *testing.T) {
		m, err := Decode(fixture())
		require.NoError(t, err)

		require.Equal(t, []format.SectionTag{
			format.TagLBL1, format.TagNLI1, format.TagATR1, format.TagTXT2, format.TagTSY1,
		}, m.SectionOrder())
		require.Equal(t, byte(0xAB), m.PadByte())
		require.Equal(t, uint16(5), m.Header().SectionCount)
		require.Equal(t, format.EncodingUTF16, m.Header().Encoding)

		require.Equal(t, []string{"B", "A"}, m.Labels().Names())

		elems, ok := m.Message("A")
		require.True(t, ok)
		require.Equal(t, []encoding.Element{
			encoding.Tag{Group: 0, Type: 3, Params: []byte{0xFF, 0x00}},
			encoding.Text("A\x00"),
		}, elems)

		elems, ok = m.Message("B")
		require.True(t, ok)
		require.Equal(t, "Hi", encoding.PlainText(elems))

		_, ok = m.Message("C")
		require.False(t, ok)

		label, ok := m.LabelOf(1)
		require.True(t, ok)
		require.Equal(t, "A", label)

		id, ok := m.GlobalIDOf(1)
		require.True(t, ok)
		require.Equal(t, uint32(20), id)

		_, ok = m.GlobalIDOf(-1)
		require.False(t, ok)

		require.Equal(t, fixtureATR1, m.Opaque(format.TagATR1).Bytes())
		require.Equal(t, fixtureTSY1, m.Opaque(format.TagTSY1).Bytes())
		require.Nil(t, m.Opaque(format.TagATO1))
		require.Nil(t, m.Opaque(format.TagTXT2))
	})

	t.Run("Header only", func(t *testing.T) {
		data := section.NewHeader(true, format.EncodingUTF16).Bytes()
		m, err := Decode(data)
		require.NoError(t, err)

		require.True(t, m.Header().BigEndian)
		require.Empty(t, m.SectionOrder())
		require.Equal(t, section.HeaderSize, m.Size())

		out, err := m.Bytes()
		require.NoError(t, err)
		require.Equal(t, data, out)
		require.Equal(t, uint16(0), m.Header().SectionCount)
		require.Equal(t, uint32(section.HeaderSize), m.Header().FileSize)
	})

	t.Run("Unknown section tag", func(t *testing.T) {
		data := rawFile(
			rawSection("LBL1", []byte{0, 0, 0, 0}, 0xAB),
			rawSection("XYZ1", []byte{1, 2, 3}, 0xAB),
		)

		m, err := Decode(data)
		require.Nil(t, m)
		require.ErrorIs(t, err, errs.ErrUnknownSection)

		var tagErr *errs.SectionTagError
		require.True(t, errors.As(err, &tagErr))
		require.Equal(t, [4]byte{'X', 'Y', 'Z', '1'}, tagErr.Tag)
		require.Equal(t, int64(0x40), tagErr.Offset)
	})

	t.Run("Duplicate section", func(t *testing.T) {
		data := rawFile(
			rawSection("ATO1", []byte{1}, 0),
			rawSection("ATO1", []byte{2}, 0),
		)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrDuplicateSection)
	})

	t.Run("Section size beyond data", func(t *testing.T) {
		data := rawFile(rawSection("ATO1", []byte{1, 2, 3}, 0))
		endian.GetLittleEndianEngine().PutUint32(data[section.HeaderSize+4:], 0x1000)

		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrSectionOverflow)
	})

	t.Run("Truncated envelope", func(t *testing.T) {
		data := append(rawFile(), "TXT2\x04\x00"...)
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Partial trailing tag", func(t *testing.T) {
		data := append(rawFile(rawSection("ATO1", []byte{1}, 0)), 'L', 'B')
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("Malformed payload", func(t *testing.T) {
		data := rawFile(rawSection("TXT2", []byte{1, 0, 0, 0, 2, 0, 0, 0}, 0))
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidStringOffsets)
	})

	t.Run("Invalid magic", func(t *testing.T) {
		data := fixture()
		data[0] = 'X'
		_, err := Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})

	t.Run("Short input", func(t *testing.T) {
		_, err := Decode([]byte("MsgStdBn\xff\xfe"))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})
}

func TestDecode_Padding(t *testing.T) {
	t.Run("Stream ending inside padding", func(t *testing.T) {
		data := fixture()
		data = data[:len(data)-5] // TSY1 gap is 12 bytes

		m, err := Decode(data)
		require.NoError(t, err)
		require.Len(t, m.SectionOrder(), 5)

		out, err := m.Bytes()
		require.NoError(t, err)
		require.Equal(t, fixture(), out)
	})

	t.Run("No gaps keeps zero pad byte", func(t *testing.T) {
		data := rawFile(rawSection("ATO1", make([]byte, 16), 0xAB))
		m, err := Decode(data)
		require.NoError(t, err)
		require.Equal(t, byte(0), m.PadByte())
	})

	t.Run("Mixed pad bytes", func(t *testing.T) {
		data := rawFile(
			rawSection("ATO1", []byte{1}, 0xAB),
			rawSection("ATR1", []byte{1}, 0x00),
		)

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
		m, err := Decode(data, WithLogger(logger))
		require.NoError(t, err)
		require.Equal(t, byte(0xAB), m.PadByte())
		require.Contains(t, logs.String(), "mixed pad bytes")
		require.Contains(t, logs.String(), "section parsed")

		_, err = Decode(data, WithStrictPadding(true))
		require.ErrorIs(t, err, errs.ErrMixedPadding)
	})
}

func TestRead_Offsets(t *testing.T) {
	data := append([]byte("prefix.."), fixture()...)
	r := bytes.NewReader(data)
	_, err := r.Seek(8, io.SeekStart)
	require.NoError(t, err)

	m, err := Read(r)
	require.NoError(t, err)

	out, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, fixture(), out)
}

func TestMsbt_WriteTo(t *testing.T) {
	m, err := Decode(fixture())
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.Equal(t, fixture(), buf.Bytes())
}

func TestMsbt_Alignment(t *testing.T) {
	b, err := NewBuilder(WithPadByte(0x5A))
	require.NoError(t, err)
	for _, label := range []string{"one", "two", "three"} {
		_, err := b.AddText(label, "text of "+label)
		require.NoError(t, err)
	}
	require.NoError(t, b.SetOpaque(format.TagATR1, []byte{1, 2, 3}))
	m, err := b.Build()
	require.NoError(t, err)

	data, err := m.Bytes()
	require.NoError(t, err)

	engine := m.Header().Engine()
	off := section.HeaderSize
	for off < len(data) {
		require.Zero(t, off%section.Alignment, "section at 0x%X", off)
		env, err := section.ParseEnvelope(data[off:], engine)
		require.NoError(t, err)

		end := off + section.EnvelopeSize + int(env.Size)
		next := section.AlignedSize(end)
		for _, p := range data[end:next] {
			require.Equal(t, byte(0x5A), p)
		}
		off = next
	}
	require.Equal(t, len(data), off)
}

func TestMsbt_Fingerprint(t *testing.T) {
	m, err := Decode(fixture())
	require.NoError(t, err)

	fp, err := m.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, hash.Fingerprint(fixture()), fp)

	require.NoError(t, m.UpdateStrings(func(ed *section.StringEditor) error {
		return ed.SetText(0, "Ho")
	}))
	changed, err := m.Fingerprint()
	require.NoError(t, err)
	require.NotEqual(t, fp, changed)
}
