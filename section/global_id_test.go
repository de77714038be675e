package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/msbt/endian"
	"github.com/arloliu/msbt/errs"
)

func TestParseGlobalIDTable(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	t.Run("Empty payload has no count", func(t *testing.T) {
		table, err := ParseGlobalIDTable(Envelope{}, nil, engine)
		require.NoError(t, err)
		require.Equal(t, 0, table.Len())
		require.Equal(t, 0, table.PayloadSize())

		out, err := table.AppendPayload(nil, engine)
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("Zero count is kept", func(t *testing.T) {
		table, err := ParseGlobalIDTable(Envelope{}, []byte{0, 0, 0, 0}, engine)
		require.NoError(t, err)
		require.Equal(t, 0, table.Len())

		out, err := table.AppendPayload(nil, engine)
		require.NoError(t, err)
		require.Equal(t, []byte{0, 0, 0, 0}, out)
	})

	t.Run("Entries written ascending by id", func(t *testing.T) {
		payload := []byte{
			0, 0, 0, 3,
			0, 0, 0, 0, 0, 0, 0, 30, // index 0, id 30
			0, 0, 0, 1, 0, 0, 0, 10, // index 1, id 10
			0, 0, 0, 2, 0, 0, 0, 20, // index 2, id 20
		}
		table, err := ParseGlobalIDTable(Envelope{}, payload, engine)
		require.NoError(t, err)
		require.Equal(t, 3, table.Len())

		index, ok := table.Index(30)
		require.True(t, ok)
		require.Equal(t, uint32(0), index)

		id, ok := table.IDOf(2)
		require.True(t, ok)
		require.Equal(t, uint32(20), id)

		_, ok = table.IDOf(9)
		require.False(t, ok)

		require.Equal(t, []GlobalID{{ID: 10, Index: 1}, {ID: 20, Index: 2}, {ID: 30, Index: 0}}, table.Entries())

		out, err := table.AppendPayload(nil, engine)
		require.NoError(t, err)
		require.Len(t, out, table.PayloadSize())
		require.Equal(t, []byte{
			0, 0, 0, 3,
			0, 0, 0, 1, 0, 0, 0, 10,
			0, 0, 0, 2, 0, 0, 0, 20,
			0, 0, 0, 0, 0, 0, 0, 30,
		}, out)
	})

	t.Run("Later duplicate id wins", func(t *testing.T) {
		payload := []byte{
			0, 0, 0, 2,
			0, 0, 0, 0, 0, 0, 0, 7,
			0, 0, 0, 4, 0, 0, 0, 7,
		}
		table, err := ParseGlobalIDTable(Envelope{}, payload, engine)
		require.NoError(t, err)
		require.Equal(t, 1, table.Len())

		index, ok := table.Index(7)
		require.True(t, ok)
		require.Equal(t, uint32(4), index)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := ParseGlobalIDTable(Envelope{}, []byte{0, 0}, engine)
		require.ErrorIs(t, err, errs.ErrTruncated)

		_, err = ParseGlobalIDTable(Envelope{}, []byte{0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 1}, engine)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})
}

func TestGlobalIDEditor(t *testing.T) {
	table := NewGlobalIDTable()
	released := 0
	ed := table.Edit(func() { released++ })

	require.NoError(t, ed.Set(100, 0))
	require.NoError(t, ed.Set(200, 1))
	require.NoError(t, ed.Set(300, 2))
	require.NoError(t, ed.Set(301, 2))
	require.Equal(t, 4, ed.Len())

	ok, err := ed.Delete(100)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ed.Delete(100)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, ed.DropIndex(1))
	require.Equal(t, []GlobalID{{ID: 300, Index: 1}, {ID: 301, Index: 1}}, table.Entries())

	ed.Release()
	ed.Release()
	require.Equal(t, 1, released)

	require.ErrorIs(t, ed.Set(1, 1), errs.ErrEditorReleased)
	_, err = ed.Delete(300)
	require.ErrorIs(t, err, errs.ErrEditorReleased)
	require.ErrorIs(t, ed.DropIndex(0), errs.ErrEditorReleased)
}
