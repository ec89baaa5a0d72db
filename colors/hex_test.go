package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGB
	}{
		{"black", "#000000", RGB{0, 0, 0}},
		{"white", "#ffffff", RGB{255, 255, 255}},
		{"uppercase", "#7F66FF", RGB{127, 102, 255}},
		{"mixed case", "#FfFfFf", RGB{255, 255, 255}},
		{"short form", "#0fc", RGB{0, 255, 204}},
		{"short form uppercase", "#ABC", RGB{170, 187, 204}},
		{"long form of short", "#00ffcc", RGB{0, 255, 204}},
		{"no hash", "ff0000", RGB{255, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeShortEqualsLong(t *testing.T) {
	short, err := Decode("#0fc")
	require.NoError(t, err)
	long, err := Decode("#00ffcc")
	require.NoError(t, err)

	assert.Equal(t, long, short)
	assert.Equal(t, RGB{R: 0, G: 255, B: 204}, short)
}

func TestDecodeInvalid(t *testing.T) {
	inputs := []string{
		"",
		"#",
		"#ff",
		"#ffff",
		"#12345",
		"#1234567",
		"#gggggg",
		"#0x1234",
		"#+12345",
		"#-12345",
		"# fffff",
		"#ff_fff",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Decode(input)
			assert.ErrorIs(t, err, ErrInvalidHex)
		})
	}
}

func TestRGBHex(t *testing.T) {
	assert.Equal(t, "#00FFCC", RGB{0, 255, 204}.Hex())
	assert.Equal(t, "#7F66FF", RGB{127, 102, 255}.Hex())
}

func TestIsValidHex(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#ffffff", true},
		{"#FFF", true},
		{"  #abc  ", true},
		{"#7F66FF", true},
		{"ffffff", false},
		{"#ff", false},
		{"#fffffff", false},
		{"#ggg", false},
		{"", false},
		{"#", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidHex(tt.input), "IsValidHex(%q)", tt.input)
	}
}

func TestNormalizeHex(t *testing.T) {
	assert.Equal(t, "#00ffcc", NormalizeHex("#0fc"))
	assert.Equal(t, "#FFFFFF", NormalizeHex(" #FFF "))
	assert.Equal(t, "#7F66FF", NormalizeHex("#7F66FF"))
	assert.Equal(t, "abc", NormalizeHex("abc"))
}
