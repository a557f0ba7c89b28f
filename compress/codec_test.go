package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tablePayload builds a payload resembling a serialized float64 column:
// long runs of similar bytes that every codec can shrink.
func tablePayload(n int) []byte {
	data := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		data = append(data, byte(i%16), 0, 0, 0, 0, 0, 0x3f, 0xf0)
	}

	return data
}

func TestCodecRoundTrip(t *testing.T) {
	payload := tablePayload(512)

	tests := []struct {
		name  string
		ctype Type
	}{
		{"none", TypeNone},
		{"zstd", TypeZstd},
		{"s2", TypeS2},
		{"lz4", TypeLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.ctype)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(payload, restored), "round trip must be lossless")
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ctype := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		assert.Empty(t, restored)
	}
}

func TestGetCodecUnknownType(t *testing.T) {
	_, err := GetCodec(Type(0xff))
	assert.Error(t, err)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "None", TypeNone.String())
	assert.Equal(t, "Zstd", TypeZstd.String())
	assert.Equal(t, "S2", TypeS2.String())
	assert.Equal(t, "LZ4", TypeLZ4.String())
	assert.Equal(t, "Unknown", Type(0).String())
}

func TestCompressionReducesSize(t *testing.T) {
	payload := tablePayload(4096)
	for _, ctype := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		codec, err := GetCodec(ctype)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		assert.Less(t, len(compressed), len(payload), "%s should compress repetitive column data", ctype)
	}
}
