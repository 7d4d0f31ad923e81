package art

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB value, 0xRRGGBB.
type Color uint32

const (
	Black    Color = 0x000000
	White    Color = 0xffffff
	MaxColor Color = 0xffffff
)

// String formats c as lowercase #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// ParseColor parses "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return 0, newError(KindRange, RuleColorRange, fmt.Sprintf("color %q must be 6 hex digits", s))
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, newError(KindRange, RuleColorRange, fmt.Sprintf("color %q is not hex", s))
	}
	return Color(v), nil
}

// Point is a coordinate pair. Encodable points lie in the int16 range.
type Point struct {
	X, Y int
}

// Object is the decoded form of a drawable shape.
//
// Point order is significant and survives encode/decode unchanged.
type Object struct {
	Shape  Shape
	Color  Color
	Stroke int
	Points []Point
}

// Equal reports whether o and other describe the same object.
func (o Object) Equal(other Object) bool {
	if o.Shape != other.Shape || o.Color != other.Color || o.Stroke != other.Stroke {
		return false
	}
	if len(o.Points) != len(other.Points) {
		return false
	}
	for i := range o.Points {
		if o.Points[i] != other.Points[i] {
			return false
		}
	}
	return true
}

// IsBucketFill reports whether o is a zero-stroke Rect. Bucket fills are
// permitted on every token regardless of its trait shapes.
func (o Object) IsBucketFill() bool {
	return o.Shape == Rect && o.Stroke == 0
}
