package art

import (
	"fmt"
	"strings"
)

// Shape is the drawable primitive of an object. Numeric values are part of
// the wire format.
type Shape uint8

const (
	Rect Shape = iota
	Line
	Ellipse
	Polyline
	Polygon
	Path
)

// NumShapes is the number of defined shapes. Tags at or above it are invalid.
const NumShapes = 6

var shapeNames = [NumShapes]string{"Rect", "Line", "Ellipse", "Polyline", "Polygon", "Path"}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool { return s < NumShapes }

func (s Shape) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// Tag returns the SVG element name for s.
func (s Shape) Tag() string {
	return strings.ToLower(s.String())
}

// ParseShape parses a shape name (case-insensitive) or its SVG tag.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Shape(i), nil
		}
	}
	return 0, newError(KindInvalidShape, RuleShapeDefined, fmt.Sprintf("unknown shape %q", name))
}

// PolygonName returns the attribute name for a polygon arity.
func PolygonName(n int) string {
	switch n {
	case 3:
		return "Triangle"
	case 5:
		return "Pentagon"
	case 6:
		return "Hexagon"
	default:
		return fmt.Sprintf("Polygon(%d)", n)
	}
}
