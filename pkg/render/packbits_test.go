package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBitsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Single", []byte{0xAA}},
		{"Run2", []byte{0xAA, 0xAA}},
		{"Literal", []byte{0x01, 0x02, 0x03}},
		{"Mixed", []byte{0x00, 0x00, 0x00, 0x01, 0x02, 0xFF, 0xFF}},
		{"LongRun", repeat(0xFF, 300)},
		{"LongLiteral", sequence(300)},
		{"MaxRun", repeat(0x00, 128)},
		{"MaxLiteralPlus1", sequence(129)},
		{"ClampedRamp", append(append(repeat(0, 100), sequence(56)...), repeat(255, 100)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := packBits(tt.data)
			back, err := unpackBits(packed, len(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.data, back)
		})
	}

	assert.Less(t, len(packBits(repeat(0, 4096))), 100)
}

func TestUnpackBits_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		size  int
		msg   string
	}{
		{"TruncatedLiteral", []byte{0x02, 0x01}, 3, "literal"},
		{"TruncatedRepeat", []byte{0xFE}, 3, "repeat truncated"},
		{"Short", []byte{0x00, 0x01}, 4, "decoded 1 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := unpackBits(tt.input, tt.size)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func repeat(v byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func sequence(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
