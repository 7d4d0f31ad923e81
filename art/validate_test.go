package art

import (
	"errors"
	"testing"
)

func scenarioTrait() Trait {
	return Trait{
		Colors:  [NumTraitColors]Color{0xff0000, 0x00ff00, 0x0000ff, 0x123456, 0xabcdef},
		Shape0:  Rect,
		Shape1:  Line,
		Polygon: 3,
	}
}

func TestValidateStructure_RuleOrder(t *testing.T) {
	// Undefined shape, no points and zero stroke: the shape rule wins.
	err := ValidateStructure(Object{Shape: 6})
	if RuleID(err) != RuleShapeDefined {
		t.Fatalf("expected %s, got %v", RuleShapeDefined, err)
	}

	// Wrong point count and zero stroke: the points rule wins.
	err = ValidateStructure(Object{Shape: Line, Points: []Point{{0, 0}}})
	if RuleID(err) != RuleShapePoints {
		t.Fatalf("expected %s, got %v", RuleShapePoints, err)
	}

	err = ValidateStructure(Object{Shape: Line, Points: []Point{{0, 0}, {1, 1}}})
	if !IsKind(err, KindInvalidStroke) {
		t.Fatalf("expected InvalidStroke, got %v", err)
	}
}

func TestValidateStructure_PointCounts(t *testing.T) {
	three := []Point{{0, 0}, {1, 1}, {2, 2}}
	for _, s := range []Shape{Rect, Line, Ellipse} {
		err := ValidateStructure(Object{Shape: s, Stroke: 1, Points: three})
		if !IsKind(err, KindInvalidPoints) {
			t.Fatalf("%s with 3 points: expected InvalidPoints, got %v", s, err)
		}
	}
	for _, s := range []Shape{Polyline, Path, Polygon} {
		if err := ValidateStructure(Object{Shape: s, Stroke: 1, Points: three}); err != nil {
			t.Fatalf("%s with 3 points: %v", s, err)
		}
		err := ValidateStructure(Object{Shape: s, Stroke: 1, Points: three[:1]})
		if !IsKind(err, KindInvalidPoints) {
			t.Fatalf("%s with 1 point: expected InvalidPoints, got %v", s, err)
		}
	}
}

func TestValidateStructure_StrokeIgnoredForFilledShapes(t *testing.T) {
	two := []Point{{0, 0}, {1, 1}}
	for _, s := range []Shape{Rect, Ellipse, Polygon} {
		if err := ValidateStructure(Object{Shape: s, Stroke: 0, Points: two}); err != nil {
			t.Fatalf("%s with zero stroke: %v", s, err)
		}
		if err := ValidateStructure(Object{Shape: s, Stroke: 255, Points: two}); err != nil {
			t.Fatalf("%s with stroke 255: %v", s, err)
		}
	}
}

func TestAuthorize_ScenarioRectAccepted(t *testing.T) {
	o := Object{Shape: Rect, Color: 0xff0000, Stroke: 0, Points: []Point{{10, 10}, {50, 50}}}
	if err := Validate(o, scenarioTrait()); err != nil {
		t.Fatalf("expected accepted, got %v", err)
	}
}

func TestAuthorize_ScenarioEllipseRejected(t *testing.T) {
	o := Object{Shape: Ellipse, Color: 0xff0000, Stroke: 0, Points: []Point{{0, 0}, {10, 10}}}
	err := Validate(o, scenarioTrait())
	if !IsKind(err, KindInvalidShape) {
		t.Fatalf("expected InvalidShape, got %v", err)
	}
	if RuleID(err) != RuleTraitShape {
		t.Fatalf("expected %s, got %s", RuleTraitShape, RuleID(err))
	}
}

func TestAuthorize_BucketFillBoundary(t *testing.T) {
	tr := scenarioTrait()
	tr.Shape0, tr.Shape1 = Line, Ellipse

	fill := Object{Shape: Rect, Color: White, Stroke: 0, Points: []Point{{0, 0}, {100, 100}}}
	if err := Validate(fill, tr); err != nil {
		t.Fatalf("zero-stroke rect must always be accepted: %v", err)
	}

	stroked := fill
	stroked.Stroke = 1
	if err := Validate(stroked, tr); !IsKind(err, KindInvalidShape) {
		t.Fatalf("expected InvalidShape for stroked rect, got %v", err)
	}

	tr.Shape1 = Rect
	if err := Validate(stroked, tr); err != nil {
		t.Fatalf("stroked rect with Rect trait shape: %v", err)
	}
}

func TestAuthorize_PolygonArity(t *testing.T) {
	tr := scenarioTrait()
	tri := Object{Shape: Polygon, Color: 0x0000ff, Points: []Point{{0, 0}, {10, 0}, {5, 5}}}
	if err := Validate(tri, tr); err != nil {
		t.Fatalf("triangle for arity 3: %v", err)
	}

	quad := tri
	quad.Points = append(append([]Point(nil), tri.Points...), Point{0, 5})
	err := Validate(quad, tr)
	if !IsKind(err, KindInvalidPoints) || RuleID(err) != RuleTraitPolygon {
		t.Fatalf("expected %s, got %v", RuleTraitPolygon, err)
	}

	tr.Polygon = 6
	if err := Validate(tri, tr); !IsKind(err, KindInvalidPoints) {
		t.Fatalf("triangle for arity 6: expected InvalidPoints, got %v", err)
	}
}

func TestAuthorize_AlwaysAllowedColorsAndShapes(t *testing.T) {
	tr := scenarioTrait()
	for _, c := range []Color{Black, White} {
		o := Object{Shape: Path, Color: c, Stroke: 1, Points: []Point{{0, 0}, {1, 1}}}
		if err := Validate(o, tr); err != nil {
			t.Fatalf("color %s: %v", c, err)
		}
	}
	o := Object{Shape: Line, Color: 0x010101, Stroke: 1, Points: []Point{{0, 0}, {1, 1}}}
	err := Validate(o, tr)
	if !IsKind(err, KindInvalidColor) {
		t.Fatalf("expected InvalidColor, got %v", err)
	}
}

func TestAuthorize_ColorCheckedBeforeShape(t *testing.T) {
	o := Object{Shape: Ellipse, Color: 0x010101, Points: []Point{{0, 0}, {1, 1}}}
	if err := Validate(o, scenarioTrait()); RuleID(err) != RuleTraitColor {
		t.Fatalf("expected %s, got %v", RuleTraitColor, err)
	}
}

func TestCheck_ReportsAllViolations(t *testing.T) {
	o := Object{Shape: Ellipse, Color: 0x010101, Points: []Point{{0, 0}}}
	errs := Check(o, scenarioTrait())
	var ids []string
	for _, err := range errs {
		ids = append(ids, RuleID(err))
	}
	want := []string{RuleShapePoints, RuleTraitColor, RuleTraitShape}
	if len(ids) != len(want) {
		t.Fatalf("violations: got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("violations: got %v want %v", ids, want)
		}
	}
}

func TestAcceptAll_AllOrNothing(t *testing.T) {
	tr := scenarioTrait()
	good, err := Encode(Object{Shape: Rect, Color: 0xff0000, Points: []Point{{0, 0}, {1, 1}}})
	if err != nil {
		t.Fatalf("Encode good: %v", err)
	}
	bad, err := Encode(Object{Shape: Ellipse, Color: 0xff0000, Points: []Point{{0, 0}, {1, 1}}})
	if err != nil {
		t.Fatalf("Encode bad: %v", err)
	}

	objs, err := AcceptAll([]Packed{good, bad, good}, tr)
	if objs != nil {
		t.Fatalf("expected no objects on failure")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected structured *art.Error, got %T", err)
	}
	if e.Kind != KindInvalidShape || e.RuleID != RuleTraitShape {
		t.Fatalf("expected InvalidShape/%s, got %s/%s", RuleTraitShape, e.Kind, e.RuleID)
	}

	objs, err = AcceptAll([]Packed{good, good}, tr)
	if err != nil {
		t.Fatalf("AcceptAll: %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(objs))
	}
}

func TestNewTrait_Validation(t *testing.T) {
	var colors [NumTraitColors]Color
	if _, err := NewTrait(colors, Rect, Line, 4); RuleID(err) != RuleTraitArity {
		t.Fatalf("expected %s, got %v", RuleTraitArity, err)
	}
	if _, err := NewTrait(colors, Rect, 6, 3); RuleID(err) != RuleTraitShapes {
		t.Fatalf("expected %s, got %v", RuleTraitShapes, err)
	}
	colors[2] = 0x1000000
	if _, err := NewTrait(colors, Rect, Line, 5); RuleID(err) != RuleTraitColors {
		t.Fatalf("expected %s, got %v", RuleTraitColors, err)
	}
}
