package raster

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"xdao.co/paint/art"
)

func near(c color.Color, r, g, b uint8) bool {
	cr, cg, cb, _ := c.RGBA()
	d := func(a uint32, want uint8) bool {
		v := int(a>>8) - int(want)
		return v >= -8 && v <= 8
	}
	return d(cr, r) && d(cg, g) && d(cb, b)
}

func TestPreview_WrapsRenderedObjects(t *testing.T) {
	o := art.Object{Shape: art.Rect, Color: 0xff0000, Points: []art.Point{{X: 10, Y: 10}, {X: 50, Y: 50}}}
	svg := string(Preview([]art.Object{o}))
	if !strings.Contains(svg, `<g fill="none"><rect x="10" y="10" width="40" height="40" fill="#ff0000"/></g>`) {
		t.Fatalf("unexpected preview: %s", svg)
	}
	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"`) {
		t.Fatalf("unexpected preview header: %s", svg)
	}
}

func TestRasterize_FillsRect(t *testing.T) {
	objs := []art.Object{
		{Shape: art.Rect, Color: 0xff0000, Points: []art.Point{{X: 0, Y: 0}, {X: 500, Y: 1000}}},
		{Shape: art.Polyline, Color: art.Black, Stroke: 4, Points: []art.Point{{X: 600, Y: 100}, {X: 900, Y: 100}, {X: 900, Y: 400}}},
	}
	img, err := Rasterize(Preview(objs), 100)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
	if c := img.At(20, 50); !near(c, 0xff, 0, 0) {
		t.Fatalf("left half should be red, got %v", c)
	}
	if c := img.At(80, 80); !near(c, 0xff, 0xff, 0xff) {
		t.Fatalf("right half should be white, got %v", c)
	}
	// Inside the polyline's open corner: stroked shapes must not fill.
	if c := img.At(75, 25); !near(c, 0xff, 0xff, 0xff) {
		t.Fatalf("polyline interior should stay white, got %v", c)
	}
}

func TestPNG_EncodesAndRejectsBadSize(t *testing.T) {
	b, err := PNG(Preview(nil), 64)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Fatalf("width = %d", img.Bounds().Dx())
	}
	if _, err := PNG(Preview(nil), MaxSize+1); !errors.Is(err, ErrSize) {
		t.Fatalf("expected ErrSize, got %v", err)
	}
}

func TestFit(t *testing.T) {
	if w, h := fit(1000, 1080, 540); w != 500 || h != 540 {
		t.Fatalf("fit = %dx%d", w, h)
	}
	if w, h := fit(1000, 500, 0); w != 1000 || h != 500 {
		t.Fatalf("fit native = %dx%d", w, h)
	}
}
