// Package palette parses and normalizes the hex colors attached to trips
// and destinations.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned for strings that are not #RGB or #RRGGBB.
var ErrInvalidHex = errors.New("invalid hex color")

// Default is the color given to trips created without one.
const Default = "#3AA99F"

// Presets are the colors offered when creating a trip.
var Presets = []string{
	"#3AA99F", // teal
	"#4385BE", // blue
	"#879A39", // green
	"#D0A215", // yellow
	"#DA702C", // orange
	"#D14D41", // red
	"#CE5D97", // magenta
	"#8B7EC8", // purple
}

// Parse normalizes a hex color to uppercase "#RRGGBB".
// The leading '#' is optional and 3-digit shorthand is expanded.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 3 && len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return "", fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return strings.ToUpper(c.Hex()), nil
}

// OrDefault returns the normalized color, or fallback when s is empty or invalid.
func OrDefault(s, fallback string) string {
	if c, err := Parse(s); err == nil {
		return c
	}
	return fallback
}

// Foreground returns a text color readable on top of the given background.
func Foreground(bg string) string {
	c, err := colorful.Hex(OrDefault(bg, Default))
	if err != nil {
		return "#FFFCF0"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#100F0F"
	}
	return "#FFFCF0"
}

// Blend mixes a toward b by t in [0,1]. Used to dim colors for
// days outside the current selection.
func Blend(a, b string, t float64) string {
	ca, errA := colorful.Hex(OrDefault(a, Default))
	cb, errB := colorful.Hex(OrDefault(b, Default))
	switch {
	case errA != nil || errB != nil:
		return OrDefault(a, Default)
	case t <= 0:
		return strings.ToUpper(ca.Hex())
	case t >= 1:
		return strings.ToUpper(cb.Hex())
	}
	return strings.ToUpper(ca.BlendLab(cb, t).Clamped().Hex())
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
