package art

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/holiman/uint256"
)

// Bit layout of the base word, low bit first.
const (
	shapeOffset  = 0
	shapeBits    = 3
	colorOffset  = 3
	colorBits    = 24
	strokeOffset = 27
	strokeBits   = 8
	countOffset  = 35
	countBits    = 16
	pointsOffset = 51
	pointBits    = 32

	// InlinePoints is the number of points carried in the base word. Points
	// at index InlinePoints and above live in the overflow buffer. The split
	// does not vary by shape.
	InlinePoints = 6

	// OverflowPointSize is the size of one overflow entry: x and y as
	// big-endian int16.
	OverflowPointSize = 4

	// MaxPoints is the largest point count the 16-bit count field can carry.
	MaxPoints = 1<<countBits - 1

	MaxStroke = 1<<strokeBits - 1

	// MaxShapeTag is the largest tag the shape field can carry. Tags between
	// NumShapes and MaxShapeTag encode but fail ValidateStructure.
	MaxShapeTag Shape = 1<<shapeBits - 1
)

// Packed is the wire and storage form of an object.
type Packed struct {
	Base             uint256.Int
	AdditionalPoints []byte
}

// Equal reports whether p and other are bit-identical.
func (p Packed) Equal(other Packed) bool {
	return p.Base.Eq(&other.Base) && string(p.AdditionalPoints) == string(other.AdditionalPoints)
}

// BaseHex formats the base word as 0x followed by 64 lowercase hex digits.
func (p Packed) BaseHex() string {
	b := p.Base.Bytes32()
	return "0x" + hex.EncodeToString(b[:])
}

// ParseBaseHex parses a base word written as up to 64 hex digits with an
// optional 0x prefix.
func ParseBaseHex(s string) (uint256.Int, error) {
	var w uint256.Int
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if h == "" || len(h) > 64 {
		return w, fmt.Errorf("art: base word must be 1..64 hex digits")
	}
	if len(h)%2 == 1 {
		h = "0" + h
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return w, fmt.Errorf("art: base word: %w", err)
	}
	w.SetBytes(b)
	return w, nil
}

// Encode packs o into its wire form.
//
// It fails with KindRange when a value does not fit its bit field. Encode does
// not validate shape rules; see ValidateStructure.
func Encode(o Object) (Packed, error) {
	if o.Shape > MaxShapeTag {
		return Packed{}, newError(KindRange, RuleShapeRange, fmt.Sprintf("shape tag %d exceeds %d bits", uint8(o.Shape), shapeBits))
	}
	if o.Color > MaxColor {
		return Packed{}, newError(KindRange, RuleColorRange, fmt.Sprintf("color %#x exceeds 24 bits", uint32(o.Color)))
	}
	if o.Stroke < 0 || o.Stroke > MaxStroke {
		return Packed{}, newError(KindRange, RuleStrokeRange, fmt.Sprintf("stroke %d outside 0..%d", o.Stroke, MaxStroke))
	}
	if len(o.Points) > MaxPoints {
		return Packed{}, newError(KindRange, RulePointCountRange, fmt.Sprintf("%d points exceed %d", len(o.Points), MaxPoints))
	}
	for i, pt := range o.Points {
		if !inInt16(pt.X) || !inInt16(pt.Y) {
			return Packed{}, newError(KindRange, RuleCoordinateRange, fmt.Sprintf("point %d (%d,%d) outside int16 range", i, pt.X, pt.Y))
		}
	}

	var p Packed
	setField(&p.Base, shapeOffset, uint64(o.Shape))
	setField(&p.Base, colorOffset, uint64(o.Color))
	setField(&p.Base, strokeOffset, uint64(o.Stroke))
	setField(&p.Base, countOffset, uint64(len(o.Points)))

	for i, pt := range o.Points {
		if i < InlinePoints {
			slot := uint64(uint16(int16(pt.X))) | uint64(uint16(int16(pt.Y)))<<16
			setField(&p.Base, uint(pointsOffset+pointBits*i), slot)
			continue
		}
		var entry [OverflowPointSize]byte
		binary.BigEndian.PutUint16(entry[0:2], uint16(int16(pt.X)))
		binary.BigEndian.PutUint16(entry[2:4], uint16(int16(pt.Y)))
		p.AdditionalPoints = append(p.AdditionalPoints, entry[:]...)
	}
	return p, nil
}

// Decode unpacks p.
//
// Decode is total over the base word: undefined shape tags (6 and 7) decode
// as-is and are rejected by ValidateStructure. The only failure is an overflow
// buffer whose length disagrees with the point count.
func Decode(p Packed) (Object, error) {
	count := int(field(&p.Base, countOffset, countBits))
	overflow := 0
	if count > InlinePoints {
		overflow = count - InlinePoints
	}
	if len(p.AdditionalPoints) != overflow*OverflowPointSize {
		return Object{}, newError(KindInvalidPoints, RuleOverflowLength,
			fmt.Sprintf("overflow buffer has %d bytes, point count %d needs %d", len(p.AdditionalPoints), count, overflow*OverflowPointSize))
	}

	o := Object{
		Shape:  Shape(field(&p.Base, shapeOffset, shapeBits)),
		Color:  Color(field(&p.Base, colorOffset, colorBits)),
		Stroke: int(field(&p.Base, strokeOffset, strokeBits)),
		Points: make([]Point, 0, count),
	}
	for i := 0; i < count && i < InlinePoints; i++ {
		slot := field(&p.Base, uint(pointsOffset+pointBits*i), pointBits)
		o.Points = append(o.Points, Point{
			X: int(int16(uint16(slot))),
			Y: int(int16(uint16(slot >> 16))),
		})
	}
	for off := 0; off < len(p.AdditionalPoints); off += OverflowPointSize {
		e := p.AdditionalPoints[off : off+OverflowPointSize]
		o.Points = append(o.Points, Point{
			X: int(int16(binary.BigEndian.Uint16(e[0:2]))),
			Y: int(int16(binary.BigEndian.Uint16(e[2:4]))),
		})
	}
	return o, nil
}

// EncodeAll packs every object, failing on the first error.
func EncodeAll(objs []Object) ([]Packed, error) {
	out := make([]Packed, 0, len(objs))
	for i, o := range objs {
		p, err := Encode(o)
		if err != nil {
			return nil, wrapError(fmt.Sprintf("object %d", i), err)
		}
		out = append(out, p)
	}
	return out, nil
}

// DecodeAll unpacks every object, failing on the first error.
func DecodeAll(ps []Packed) ([]Object, error) {
	out := make([]Object, 0, len(ps))
	for i, p := range ps {
		o, err := Decode(p)
		if err != nil {
			return nil, wrapError(fmt.Sprintf("object %d", i), err)
		}
		out = append(out, o)
	}
	return out, nil
}

func inInt16(v int) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}

func setField(w *uint256.Int, offset uint, v uint64) {
	var t uint256.Int
	t.SetUint64(v)
	t.Lsh(&t, offset)
	w.Or(w, &t)
}

func field(w *uint256.Int, offset, width uint) uint64 {
	var t uint256.Int
	t.Rsh(w, offset)
	return t.Uint64() & (1<<width - 1)
}
