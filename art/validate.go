package art

import "fmt"

// StructureRules are the trait-independent checks, in evaluation order.
var StructureRules = []Rule{
	{ID: RuleShapeDefined, Apply: checkShapeDefined},
	{ID: RuleShapePoints, Apply: checkShapePoints},
	{ID: RuleShapeStroke, Apply: checkShapeStroke},
}

// ValidateStructure checks that o is a well-formed drawing object.
// The first violated rule is reported.
//
// Polygon arity depends on the token's trait and is checked by Authorize;
// here a Polygon only needs two points.
func ValidateStructure(o Object) error {
	return ValidateRules(o, StructureRules)
}

func checkShapeDefined(o Object) error {
	if !o.Shape.Valid() {
		return newError(KindInvalidShape, RuleShapeDefined, fmt.Sprintf("undefined shape tag %d", uint8(o.Shape)))
	}
	return nil
}

func checkShapePoints(o Object) error {
	n := len(o.Points)
	switch o.Shape {
	case Rect, Line, Ellipse:
		if n != 2 {
			return newError(KindInvalidPoints, RuleShapePoints, fmt.Sprintf("%s needs exactly 2 points, got %d", o.Shape, n))
		}
	case Polyline, Path, Polygon:
		if n < 2 {
			return newError(KindInvalidPoints, RuleShapePoints, fmt.Sprintf("%s needs at least 2 points, got %d", o.Shape, n))
		}
	}
	return nil
}

func checkShapeStroke(o Object) error {
	switch o.Shape {
	case Line, Polyline, Path:
		if o.Stroke <= 0 {
			return newError(KindInvalidStroke, RuleShapeStroke, fmt.Sprintf("%s needs a positive stroke", o.Shape))
		}
	}
	return nil
}
