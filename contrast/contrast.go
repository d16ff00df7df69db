// Package contrast picks a legible text color for a card background.
package contrast

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	Black = "#000000"
	White = "#FFFFFF"
)

// ErrInvalidHex is returned for anything but #RGB or #RRGGBB hex colors.
var ErrInvalidHex = errors.New("contrast: invalid hex color")

// Parse reads "#RGB" or "#RRGGBB"; the leading '#' is optional and hex
// digits are case-insensitive.
func Parse(s string) (colorful.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if (len(hex) != 3 && len(hex) != 6) || !isHex(hex) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex("#" + strings.ToLower(hex))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidHex, s, err)
	}
	return c, nil
}

// Luminance returns (0.299R + 0.587G + 0.114B) / 255 over 8-bit channels.
func Luminance(s string) (float64, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	r, g, b := c.RGB255()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, nil
}

// TextColor returns Black for light backgrounds (luminance > 0.5) and White
// otherwise. Unparseable input yields Black.
func TextColor(background string) string {
	l, err := Luminance(background)
	if err != nil || l > 0.5 {
		return Black
	}
	return White
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
