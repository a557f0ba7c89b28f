package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestSchema(t *testing.T) {
	a := Schema([]string{"Row", "Response", "Predicted"})
	b := Schema([]string{"Row", "Response", "Predicted"})
	assert.Equal(t, a, b, "schema hash must be deterministic")

	c := Schema([]string{"Row", "ResponsePredicted"})
	assert.NotEqual(t, a, c, "joined names must not collide across boundaries")

	d := Schema([]string{"Response", "Row", "Predicted"})
	assert.NotEqual(t, a, d, "schema hash is order sensitive")
}
