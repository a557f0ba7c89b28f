package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEngines(t *testing.T) {
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), binary.ByteOrder(GetLittleEndianEngine()))
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), binary.ByteOrder(GetBigEndianEngine()))
}

func TestCheckEndianness(t *testing.T) {
	native := CheckEndianness()
	if IsNativeLittleEndian() {
		assert.Equal(t, binary.ByteOrder(binary.LittleEndian), native)
		assert.False(t, IsNativeBigEndian())
	} else {
		assert.Equal(t, binary.ByteOrder(binary.BigEndian), native)
		assert.True(t, IsNativeBigEndian())
	}
}

func TestAppendRoundTrip(t *testing.T) {
	engine := GetLittleEndianEngine()

	buf := engine.AppendUint64(nil, 0xdeadbeefcafe)
	assert.Len(t, buf, 8)
	assert.Equal(t, uint64(0xdeadbeefcafe), engine.Uint64(buf))

	buf = engine.AppendUint32(nil, 0xfeed)
	assert.Equal(t, uint32(0xfeed), engine.Uint32(buf))

	buf = engine.AppendUint16(nil, 0xbe)
	assert.Equal(t, uint16(0xbe), engine.Uint16(buf))
}
