package sgview

import (
	"errors"
	"fmt"
	"image/color"
)

// ErrInvalidColor is returned by ParseHex for malformed input.
var ErrInvalidColor = errors.New("sgview: invalid hex color")

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB" or "#RRGGBBAA" (the leading
// '#' is optional) into a non-premultiplied color.
func ParseHex(s string) (color.NRGBA, error) {
	hex := s
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v [4]uint8
	v[3] = 0xff
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			d, ok := hexDigit(hex[i])
			if !ok {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			hi, ok1 := hexDigit(hex[i])
			lo, ok2 := hexDigit(hex[i+1])
			if !ok1 || !ok2 {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
