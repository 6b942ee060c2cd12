package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf)
	require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	buf := engine.AppendUint64(nil, 0x0102030405060708)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf)
}

func TestIsBigEndian(t *testing.T) {
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
	require.True(t, IsBigEndian(GetBigEndianEngine()))
	require.Equal(t, IsNativeBigEndian(), IsBigEndian(binary.NativeEndian))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, GetLittleEndianEngine(), Normalize(nil))
	require.Equal(t, GetLittleEndianEngine(), Normalize(binary.LittleEndian))
	require.Equal(t, GetBigEndianEngine(), Normalize(binary.BigEndian))

	if IsNativeBigEndian() {
		require.Equal(t, GetBigEndianEngine(), Normalize(binary.NativeEndian))
	} else {
		require.Equal(t, GetLittleEndianEngine(), Normalize(binary.NativeEndian))
	}
}
