package endian

import (
	"encoding/binary"
	"testing"

	"github.com/arloliu/msbt/errs"
	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
	require.Equal(t, binary.BigEndian, GetEngine(true))
	require.Equal(t, binary.LittleEndian, GetEngine(false))

	require.True(t, IsBigEndian(GetBigEndianEngine()))
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
}

func TestFromBOM(t *testing.T) {
	t.Run("big endian", func(t *testing.T) {
		engine, err := FromBOM([2]byte{0xFE, 0xFF})
		require.NoError(t, err)
		require.True(t, IsBigEndian(engine))
		require.Equal(t, uint16(0x0102), engine.Uint16([]byte{0x01, 0x02}))
	})

	t.Run("little endian", func(t *testing.T) {
		engine, err := FromBOM([2]byte{0xFF, 0xFE})
		require.NoError(t, err)
		require.False(t, IsBigEndian(engine))
		require.Equal(t, uint16(0x0201), engine.Uint16([]byte{0x01, 0x02}))
	})

	t.Run("invalid", func(t *testing.T) {
		for _, bom := range [][2]byte{{0, 0}, {0xFE, 0xFE}, {0xFF, 0xFF}, {0x12, 0x34}} {
			engine, err := FromBOM(bom)
			require.ErrorIs(t, err, errs.ErrInvalidBOM)
			require.Nil(t, engine)

			var bomErr *errs.BOMError
			require.ErrorAs(t, err, &bomErr)
			require.Equal(t, bom, bomErr.Got)
		}
	})
}

func TestBOMRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetBigEndianEngine(), GetLittleEndianEngine()} {
		parsed, err := FromBOM(BOM(engine))
		require.NoError(t, err)
		require.Equal(t, engine, parsed)
	}
}

func TestEngineAppend(t *testing.T) {
	buf := GetBigEndianEngine().AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)

	buf = GetLittleEndianEngine().AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)
}
