package pool

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSectionBuffer_Pad(t *testing.T) {
	sb := &SectionBuffer{}
	sb.B = append(sb.B, "TXT2"...)

	sb.Pad(3, 0xAB)
	require.Equal(t, []byte{'T', 'X', 'T', '2', 0xAB, 0xAB, 0xAB}, sb.B)

	sb.Pad(0, 0xFF)
	require.Equal(t, 7, sb.Len())
}

func TestSectionBuffer_Reserve(t *testing.T) {
	sb := &SectionBuffer{B: make([]byte, 0, 2)}
	sb.B = append(sb.B, 0xAA)

	sb.Reserve(1)
	require.Equal(t, 2, cap(sb.B), "sufficient capacity must not reallocate")

	sb.Reserve(10)
	require.GreaterOrEqual(t, cap(sb.B)-sb.Len(), 10)
	require.Equal(t, []byte{0xAA}, sb.B, "content must survive growth")
}

func TestSectionBuffer_Flush(t *testing.T) {
	sb := &SectionBuffer{}
	sb.B = append(sb.B, "LBL1"...)
	capBefore := cap(sb.B)

	var out bytes.Buffer
	n, err := sb.Flush(&out)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, "LBL1", out.String())
	require.Equal(t, 0, sb.Len())
	require.Equal(t, capBefore, cap(sb.B))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestSectionBuffer_FlushError(t *testing.T) {
	sb := &SectionBuffer{B: []byte("x")}
	_, err := sb.Flush(failingWriter{})
	require.EqualError(t, err, "boom")

	sb.B = append(sb.B, "abcd"...)
	n, err := sb.Flush(shortWriter{})
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Equal(t, int64(2), n)
}

func TestSectionPool(t *testing.T) {
	t.Run("reused buffers come back empty", func(t *testing.T) {
		sb := GetSectionBuffer()
		require.NotNil(t, sb)
		require.Equal(t, 0, sb.Len())
		sb.B = append(sb.B, "data"...)
		PutSectionBuffer(sb)

		again := GetSectionBuffer()
		require.Equal(t, 0, again.Len())
		PutSectionBuffer(again)
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		sb := &SectionBuffer{B: make([]byte, 0, sectionBufferRetain+1)}
		sb.B = append(sb.B, 1)
		PutSectionBuffer(sb)
		require.Equal(t, 1, sb.Len(), "dropped buffer is not reset")
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		require.NotPanics(t, func() { PutSectionBuffer(nil) })
	})
}
