package art

import "fmt"

// NumTraitColors is the number of palette slots a trait carries.
const NumTraitColors = 5

// Trait is the immutable permission record assigned to a token at mint.
type Trait struct {
	Colors  [NumTraitColors]Color
	Shape0  Shape
	Shape1  Shape
	Polygon int
}

// NewTrait returns a Trait after checking that every field is representable.
func NewTrait(colors [NumTraitColors]Color, shape0, shape1 Shape, polygon int) (Trait, error) {
	t := Trait{Colors: colors, Shape0: shape0, Shape1: shape1, Polygon: polygon}
	if err := t.Validate(); err != nil {
		return Trait{}, err
	}
	return t, nil
}

// Validate checks the trait's fields.
func (t Trait) Validate() error {
	switch t.Polygon {
	case 3, 5, 6:
	default:
		return newError(KindInvalidPoints, RuleTraitArity, fmt.Sprintf("trait polygon arity %d not in {3,5,6}", t.Polygon))
	}
	if !t.Shape0.Valid() || !t.Shape1.Valid() {
		return newError(KindInvalidShape, RuleTraitShapes, fmt.Sprintf("trait shapes %s/%s must be defined", t.Shape0, t.Shape1))
	}
	for i, c := range t.Colors {
		if c > MaxColor {
			return newError(KindRange, RuleTraitColors, fmt.Sprintf("trait color%d %#x exceeds 24 bits", i, uint32(c)))
		}
	}
	return nil
}

// Capabilities is the permission set a trait grants. It makes the
// always-allowed exceptions explicit:
//
//	colors = trait colors ∪ {black, white}
//	shapes = trait shapes ∪ {Polygon, Path} ∪ {zero-stroke Rect}
type Capabilities struct {
	colors map[Color]struct{}
	shapes [NumShapes]bool

	// PolygonPoints is the exact point count required of Polygon objects.
	PolygonPoints int
}

// Capabilities returns the permission set for t.
func (t Trait) Capabilities() Capabilities {
	c := Capabilities{colors: make(map[Color]struct{}, NumTraitColors+2), PolygonPoints: t.Polygon}
	c.colors[Black] = struct{}{}
	c.colors[White] = struct{}{}
	for _, col := range t.Colors {
		c.colors[col] = struct{}{}
	}
	c.shapes[Polygon] = true
	c.shapes[Path] = true
	if t.Shape0.Valid() {
		c.shapes[t.Shape0] = true
	}
	if t.Shape1.Valid() {
		c.shapes[t.Shape1] = true
	}
	return c
}

// AllowsColor reports whether col is in the palette.
func (c Capabilities) AllowsColor(col Color) bool {
	_, ok := c.colors[col]
	return ok
}

// AllowsShape reports whether o's shape is permitted, including the
// bucket-fill exception.
func (c Capabilities) AllowsShape(o Object) bool {
	if o.IsBucketFill() {
		return true
	}
	return o.Shape.Valid() && c.shapes[o.Shape]
}
