package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex color")

// RGB is an opaque color with each channel in [0, 255]
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex renders the color as #RRGGBB
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Decode converts a #RRGGBB or #RGB string into an RGB triple.
// The leading '#' is stripped; a three digit value has each digit doubled.
func Decode(hex string) (RGB, error) {
	digits := expandShort(strings.TrimPrefix(hex, "#"))
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}

	return RGB{
		R: int(value>>16) & 0xFF,
		G: int(value>>8) & 0xFF,
		B: int(value) & 0xFF,
	}, nil
}

func expandShort(digits string) string {
	if len(digits) != 3 {
		return digits
	}
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		b.WriteByte(digits[i])
		b.WriteByte(digits[i])
	}
	return b.String()
}

// IsValidHex reports whether s is '#' followed by 3 or 6 hex digits,
// ignoring surrounding whitespace
func IsValidHex(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return false
	}
	digits := s[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return false
	}
	_, err := strconv.ParseUint(digits, 16, 32)
	return err == nil
}

// NormalizeHex trims whitespace and expands #RGB to #RRGGBB.
// Other input is returned trimmed but otherwise untouched.
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		return "#" + expandShort(s[1:])
	}
	return s
}
