package model

import (
	"encoding/hex"
	"fmt"
	"strings"

	"xdao.co/paint/art"
)

func FromPacked(p art.Packed) PackedObject {
	return PackedObject{Base: p.BaseHex(), AdditionalPoints: hex.EncodeToString(p.AdditionalPoints)}
}

func (p PackedObject) ToPacked() (art.Packed, error) {
	base, err := art.ParseBaseHex(p.Base)
	if err != nil {
		return art.Packed{}, NewError(ErrInvalidRequest, err.Error())
	}
	var extra []byte
	if s := strings.TrimPrefix(p.AdditionalPoints, "0x"); s != "" {
		if extra, err = hex.DecodeString(s); err != nil {
			return art.Packed{}, NewError(ErrInvalidRequest, "additionalPoints: "+err.Error())
		}
	}
	return art.Packed{Base: base, AdditionalPoints: extra}, nil
}

// Packed converts every request object; the first malformed one fails.
func (r ArtRequest) Packed() ([]art.Packed, error) {
	out := make([]art.Packed, 0, len(r.Objects))
	for i, o := range r.Objects {
		p, err := o.ToPacked()
		if err != nil {
			return nil, NewError(ErrInvalidRequest, fmt.Sprintf("object %d: %s", i, err.(*CodedError).Message))
		}
		out = append(out, p)
	}
	return out, nil
}

func FromObject(o art.Object) Object {
	pts := make([][2]int, len(o.Points))
	for i, p := range o.Points {
		pts[i] = [2]int{p.X, p.Y}
	}
	return Object{Shape: o.Shape.String(), Color: o.Color.String(), Stroke: o.Stroke, Points: pts}
}

func FromObjects(objs []art.Object) []Object {
	out := make([]Object, 0, len(objs))
	for _, o := range objs {
		out = append(out, FromObject(o))
	}
	return out
}

func (o Object) ToObject() (art.Object, error) {
	shape, err := art.ParseShape(o.Shape)
	if err != nil {
		return art.Object{}, NewError(ErrInvalidRequest, err.Error())
	}
	color, err := art.ParseColor(o.Color)
	if err != nil {
		return art.Object{}, NewError(ErrInvalidRequest, err.Error())
	}
	pts := make([]art.Point, len(o.Points))
	for i, p := range o.Points {
		pts[i] = art.Point{X: p[0], Y: p[1]}
	}
	return art.Object{Shape: shape, Color: color, Stroke: o.Stroke, Points: pts}, nil
}

func FromTrait(t art.Trait) Trait {
	colors := make([]string, 0, art.NumTraitColors)
	for _, c := range t.Colors {
		colors = append(colors, c.String())
	}
	return Trait{Colors: colors, Shape0: t.Shape0.String(), Shape1: t.Shape1.String(), Polygon: t.Polygon}
}

func (t Trait) ToTrait() (art.Trait, error) {
	if len(t.Colors) != art.NumTraitColors {
		return art.Trait{}, NewError(ErrInvalidRequest, fmt.Sprintf("trait needs %d colors, got %d", art.NumTraitColors, len(t.Colors)))
	}
	var colors [art.NumTraitColors]art.Color
	for i, s := range t.Colors {
		c, err := art.ParseColor(s)
		if err != nil {
			return art.Trait{}, NewError(ErrInvalidRequest, err.Error())
		}
		colors[i] = c
	}
	s0, err := art.ParseShape(t.Shape0)
	if err != nil {
		return art.Trait{}, NewError(ErrInvalidRequest, err.Error())
	}
	s1, err := art.ParseShape(t.Shape1)
	if err != nil {
		return art.Trait{}, NewError(ErrInvalidRequest, err.Error())
	}
	tr, err := art.NewTrait(colors, s0, s1, t.Polygon)
	if err != nil {
		return art.Trait{}, NewError(ErrInvalidRequest, err.Error())
	}
	return tr, nil
}

// Lint runs the diagnostic checks over every packed object against t.
func Lint(ps []art.Packed, t art.Trait) LintResponse {
	resp := LintResponse{Valid: true, Violations: []Violation{}}
	for i, p := range ps {
		o, err := art.Decode(p)
		if err != nil {
			resp.Violations = append(resp.Violations, violation(i, err))
			continue
		}
		for _, err := range art.Check(o, t) {
			resp.Violations = append(resp.Violations, violation(i, err))
		}
	}
	resp.Valid = len(resp.Violations) == 0
	return resp
}

func violation(i int, err error) Violation {
	return Violation{Index: i, Kind: string(art.KindOf(err)), Rule: art.RuleID(err), Message: err.Error()}
}
