package art

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"testing"
)

func TestEncode_OverflowBoundary_SixPointsInline(t *testing.T) {
	o := Object{Shape: Polyline, Color: 0x102030, Stroke: 2}
	for i := 0; i < InlinePoints; i++ {
		o.Points = append(o.Points, Point{X: i * 10, Y: -i})
	}
	p, err := Encode(o)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(p.AdditionalPoints) != 0 {
		t.Fatalf("expected empty overflow, got %x", p.AdditionalPoints)
	}
}

func TestEncode_OverflowBoundary_SeventhPointBigEndian(t *testing.T) {
	o := Object{Shape: Path, Color: 0x102030, Stroke: 2}
	for i := 0; i < InlinePoints; i++ {
		o.Points = append(o.Points, Point{X: i, Y: i})
	}
	o.Points = append(o.Points, Point{X: -2, Y: 0x1234})

	p, err := Encode(o)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0xff, 0xfe, 0x12, 0x34}
	if !bytes.Equal(p.AdditionalPoints, want) {
		t.Fatalf("overflow mismatch: got %x want %x", p.AdditionalPoints, want)
	}
}

func TestEncode_LineExtremesRoundTrip(t *testing.T) {
	o := Object{Shape: Line, Color: Black, Stroke: 1, Points: []Point{{-32768, -32768}, {32767, 32767}}}
	p, err := Encode(o)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(o) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, o)
	}
}

func TestEncodeDecode_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		o := Object{
			Shape:  Shape(rng.Intn(NumShapes)),
			Color:  Color(rng.Intn(int(MaxColor) + 1)),
			Stroke: rng.Intn(MaxStroke + 1),
		}
		count := 2 + rng.Intn(19)
		for i := 0; i < count; i++ {
			o.Points = append(o.Points, Point{X: rng.Intn(65536) - 32768, Y: rng.Intn(65536) - 32768})
		}
		p, err := Encode(o)
		if err != nil {
			t.Fatalf("Encode(%d): %v", n, err)
		}
		got, err := Decode(p)
		if err != nil {
			t.Fatalf("Decode(%d): %v", n, err)
		}
		if !got.Equal(o) {
			t.Fatalf("round trip %d mismatch:\n got %+v\nwant %+v", n, got, o)
		}
		wantOverflow := 0
		if count > InlinePoints {
			wantOverflow = (count - InlinePoints) * OverflowPointSize
		}
		if len(p.AdditionalPoints) != wantOverflow {
			t.Fatalf("object %d: overflow %d bytes, want %d", n, len(p.AdditionalPoints), wantOverflow)
		}
	}
}

func TestEncode_RangeErrors(t *testing.T) {
	two := []Point{{0, 0}, {1, 1}}
	cases := []struct {
		name string
		obj  Object
		rule string
	}{
		{"coordinate high", Object{Shape: Line, Stroke: 1, Points: []Point{{0, 0}, {32768, 0}}}, RuleCoordinateRange},
		{"coordinate low", Object{Shape: Line, Stroke: 1, Points: []Point{{0, -32769}, {0, 0}}}, RuleCoordinateRange},
		{"color", Object{Shape: Rect, Color: 0x1000000, Points: two}, RuleColorRange},
		{"stroke high", Object{Shape: Line, Stroke: 256, Points: two}, RuleStrokeRange},
		{"stroke negative", Object{Shape: Line, Stroke: -1, Points: two}, RuleStrokeRange},
		{"point count", Object{Shape: Path, Stroke: 1, Points: make([]Point, MaxPoints+1)}, RulePointCountRange},
		{"shape tag 8", Object{Shape: MaxShapeTag + 1, Points: two}, RuleShapeRange},
		{"shape tag 9", Object{Shape: Shape(9), Stroke: 1, Points: two}, RuleShapeRange},
	}
	for _, tc := range cases {
		_, err := Encode(tc.obj)
		if !IsKind(err, KindRange) {
			t.Fatalf("%s: expected KindRange, got %v", tc.name, err)
		}
		if RuleID(err) != tc.rule {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.rule, RuleID(err))
		}
	}
}

func TestDecode_UndefinedShapeTagIsTotal(t *testing.T) {
	p, err := Encode(Object{Shape: Rect, Points: []Point{{1, 2}, {3, 4}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Force shape bits to 7.
	setField(&p.Base, shapeOffset, 7)

	o, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode should be total over the base word: %v", err)
	}
	if o.Shape != 7 {
		t.Fatalf("expected shape tag 7, got %d", o.Shape)
	}
	if err := ValidateStructure(o); !IsKind(err, KindInvalidShape) {
		t.Fatalf("expected InvalidShape from validation, got %v", err)
	}
}

func TestDecode_OverflowLengthMismatch(t *testing.T) {
	o := Object{Shape: Path, Stroke: 1}
	for i := 0; i < 8; i++ {
		o.Points = append(o.Points, Point{X: i, Y: i})
	}
	p, err := Encode(o)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p.AdditionalPoints = p.AdditionalPoints[:len(p.AdditionalPoints)-1]
	_, err = Decode(p)
	if RuleID(err) != RuleOverflowLength {
		t.Fatalf("expected %s, got %v", RuleOverflowLength, err)
	}
	if !IsKind(err, KindInvalidPoints) {
		t.Fatalf("expected KindInvalidPoints, got %v", err)
	}
}

func TestParseBaseHex(t *testing.T) {
	p, err := Encode(Object{Shape: Rect, Color: 0xff0000, Points: []Point{{10, 10}, {50, 50}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := p.BaseHex()
	if len(s) != 66 {
		t.Fatalf("expected 0x + 64 digits, got %q", s)
	}
	w, err := ParseBaseHex(s)
	if err != nil {
		t.Fatalf("ParseBaseHex: %v", err)
	}
	if !w.Eq(&p.Base) {
		t.Fatalf("base mismatch after hex round trip")
	}
	if _, err := ParseBaseHex("0x" + hex.EncodeToString(make([]byte, 33))); err == nil {
		t.Fatalf("expected error for 66 hex digits")
	}
	if _, err := ParseBaseHex("0xzz"); err == nil {
		t.Fatalf("expected error for non-hex input")
	}
}
