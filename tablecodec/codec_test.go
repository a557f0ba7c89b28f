package tablecodec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statkit/insight/compress"
	"github.com/statkit/insight/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()

	tbl, err := table.New(
		table.NewIntColumn("Row", []int64{0, 1, 2, 3}),
		table.NewStringColumn("Response", []string{"low", "low", "high", "high"}),
		table.NewFloatColumn("Predicted", []float64{0.25, 0.75, math.Pi, -1.5}),
		table.NewNullableFloatColumn("SE", []float64{0.1, 0, 0.3, 0.4}, []bool{true, false, true, true}),
	)
	require.NoError(t, err)

	return tbl
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	types := []compress.Type{
		compress.TypeNone,
		compress.TypeZstd,
		compress.TypeS2,
		compress.TypeLZ4,
	}

	orig := sampleTable(t)
	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := Encode(orig, WithCompression(ct))
			require.NoError(t, err)
			require.Greater(t, len(data), headerSize)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.True(t, orig.Equal(decoded))
		})
	}
}

func TestEncodeDefaultCompression(t *testing.T) {
	orig := sampleTable(t)

	data, err := Encode(orig)
	require.NoError(t, err)
	assert.Equal(t, byte(compress.TypeNone), data[5])

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, orig.Equal(decoded))
}

func TestEncodeEmptyTable(t *testing.T) {
	orig, err := table.New(
		table.NewFloatColumn("Predicted", nil),
		table.NewIntColumn("Row", nil),
	)
	require.NoError(t, err)

	data, err := Encode(orig)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.NumRows())
	assert.Equal(t, []string{"Predicted", "Row"}, decoded.Names())
}

func TestEncodeNilTable(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}

func TestEncodeUnknownCompression(t *testing.T) {
	_, err := Encode(sampleTable(t), WithCompression(compress.Type(0xFF)))
	assert.Error(t, err)
}

func TestDecodeInvalidMagic(t *testing.T) {
	data, err := Encode(sampleTable(t))
	require.NoError(t, err)

	data[0] ^= 0xFF
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data, err := Encode(sampleTable(t))
	require.NoError(t, err)

	data[4] = codecVersion + 1
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeTruncated(t *testing.T) {
	data, err := Encode(sampleTable(t))
	require.NoError(t, err)

	for _, cut := range []int{0, headerSize - 1, headerSize + 3, len(data) - 1} {
		_, err = Decode(data[:cut])
		assert.ErrorIs(t, err, ErrTruncatedPayload, "cut at %d", cut)
	}
}

func TestDecodeSchemaMismatch(t *testing.T) {
	data, err := Encode(sampleTable(t))
	require.NoError(t, err)

	// Flip a bit in the uncompressed body: the first column name starts
	// right after the header, so this renames "Row" without truncating.
	data[headerSize+2] ^= 0x01
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestCompressionShrinksRepetitivePayload(t *testing.T) {
	values := make([]float64, 2048)
	for i := range values {
		values[i] = float64(i % 4)
	}
	tbl, err := table.New(table.NewFloatColumn("Predicted", values))
	require.NoError(t, err)

	plain, err := Encode(tbl)
	require.NoError(t, err)
	packed, err := Encode(tbl, WithCompression(compress.TypeZstd))
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))
}
