// Package render turns authorized paint objects and token traits into SVG
// fragments.
//
// Output is part of the compatibility surface: element names, attribute order,
// and number/color formatting are fixed. Renderers are total over authorized
// input and never re-validate.
package render

import (
	"strconv"
	"strings"

	"xdao.co/paint/art"
)

// Objects renders objs in order. An empty slice renders to empty bytes, not
// to an empty group.
func Objects(objs []art.Object) []byte {
	if len(objs) == 0 {
		return []byte{}
	}
	var sb strings.Builder
	for _, o := range objs {
		writeObject(&sb, o)
	}
	return []byte(sb.String())
}

// Object renders a single object.
func Object(o art.Object) []byte {
	var sb strings.Builder
	writeObject(&sb, o)
	return []byte(sb.String())
}

// Trait renders the token's palette swatches and tool indicators.
func Trait(t art.Trait) []byte {
	var sb strings.Builder
	for i, c := range t.Colors {
		sb.WriteString(`<rect id="swatch-`)
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(`" class="swatch" fill="`)
		sb.WriteString(c.String())
		sb.WriteString(`"/>`)
	}
	writeTool(&sb, t.Shape0.Tag())
	writeTool(&sb, t.Shape1.Tag())
	writeTool(&sb, "polygon-"+strconv.Itoa(t.Polygon))
	return []byte(sb.String())
}

func writeTool(sb *strings.Builder, name string) {
	sb.WriteString(`<use class="tool" href="#`)
	sb.WriteString(name)
	sb.WriteString(`"/>`)
}

func writeObject(sb *strings.Builder, o art.Object) {
	switch o.Shape {
	case art.Rect:
		p0, p1 := o.Points[0], o.Points[1]
		sb.WriteString("<rect")
		attr(sb, "x", min(p0.X, p1.X))
		attr(sb, "y", min(p0.Y, p1.Y))
		attr(sb, "width", abs(p1.X-p0.X))
		attr(sb, "height", abs(p1.Y-p0.Y))
		attrString(sb, "fill", o.Color.String())
		sb.WriteString("/>")
	case art.Line:
		p0, p1 := o.Points[0], o.Points[1]
		sb.WriteString("<line")
		attr(sb, "x1", p0.X)
		attr(sb, "y1", p0.Y)
		attr(sb, "x2", p1.X)
		attr(sb, "y2", p1.Y)
		stroke(sb, o)
		sb.WriteString("/>")
	case art.Ellipse:
		c, r := o.Points[0], o.Points[1]
		sb.WriteString("<ellipse")
		attr(sb, "cx", c.X)
		attr(sb, "cy", c.Y)
		attr(sb, "rx", abs(r.X))
		attr(sb, "ry", abs(r.Y))
		attrString(sb, "fill", o.Color.String())
		sb.WriteString("/>")
	case art.Polyline:
		sb.WriteString(`<polyline points="`)
		for _, p := range o.Points {
			writePair(sb, p)
			sb.WriteByte(' ')
		}
		sb.WriteByte('"')
		stroke(sb, o)
		sb.WriteString("/>")
	case art.Polygon:
		sb.WriteString(`<polygon points="`)
		for i, p := range o.Points {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writePair(sb, p)
		}
		sb.WriteByte('"')
		attrString(sb, "fill", o.Color.String())
		sb.WriteString("/>")
	case art.Path:
		sb.WriteString(`<path d="`)
		for i, p := range o.Points {
			if i == 0 {
				sb.WriteString("M ")
			} else {
				sb.WriteString(" L ")
			}
			sb.WriteString(strconv.Itoa(p.X))
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.Y))
		}
		sb.WriteByte('"')
		stroke(sb, o)
		sb.WriteString("/>")
	}
}

func stroke(sb *strings.Builder, o art.Object) {
	attrString(sb, "stroke", o.Color.String())
	attr(sb, "stroke-width", o.Stroke)
}

func attr(sb *strings.Builder, name string, v int) {
	attrString(sb, name, strconv.Itoa(v))
}

func attrString(sb *strings.Builder, name, v string) {
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(v)
	sb.WriteByte('"')
}

func writePair(sb *strings.Builder, p art.Point) {
	sb.WriteString(strconv.Itoa(p.X))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(p.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
