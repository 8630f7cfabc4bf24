package motion

import (
	"strings"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
)

// Color selects the ground and grabbable mask rows
type Color uint8

const (
	Green Color = iota
	Blue
	Pink
	Red
)

// ColorCount is the number of colours, Next wraps modulo this
const ColorCount = 4

// Valid reports whether c indexes the mask tables
func (c Color) Valid() bool {
	return c < ColorCount
}

// Next returns the following colour, wrapping Red to Green
func (c Color) Next() Color {
	return (c + 1) % ColorCount
}

func (c Color) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return parameter.ColorNames[c]
}

// ParseColor maps a colour name to its value, case-insensitive
func ParseColor(name string) (Color, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range parameter.ColorNames {
		if n == name {
			return Color(i), true
		}
	}
	return Green, false
}

// MaskTable maps each colour to a collision mask
type MaskTable [ColorCount]physics.Mask

// For returns the mask for c, MaskAll with ok false when c is out of range
func (t MaskTable) For(c Color) (physics.Mask, bool) {
	if !c.Valid() {
		return physics.MaskAll, false
	}
	return t[c], true
}
