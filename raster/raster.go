// Package raster turns SVG documents into PNG previews.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"xdao.co/paint/art"
	"xdao.co/paint/render"
)

// CanvasSize is the side of the square drawing area previews cover.
const CanvasSize = 1000

// MaxSize bounds the requested output side.
const MaxSize = 4096

// supersample is the oversampling factor applied before the final downscale.
const supersample = 2

var ErrSize = errors.New("raster: size out of range")

// Preview returns a self-contained SVG of objs on a white canvas. It carries
// no template styling, so stroked shapes get an explicit fill="none" group.
func Preview(objs []art.Object) []byte {
	var b bytes.Buffer
	side := strconv.Itoa(CanvasSize)
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 ` + side + ` ` + side + `" width="` + side + `" height="` + side + `">`)
	b.WriteString(`<rect width="` + side + `" height="` + side + `" fill="#ffffff"/>`)
	b.WriteString(`<g fill="none">`)
	b.Write(render.Objects(objs))
	b.WriteString(`</g></svg>`)
	return b.Bytes()
}

// Rasterize draws svg into an RGBA image whose longer side is size pixels,
// or the view box size when size is 0.
func Rasterize(svg []byte, size int) (*image.RGBA, error) {
	if size < 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("raster: parse svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errors.New("raster: svg has no view box")
	}
	w, h := fit(vw, vh, size)
	if w > MaxSize || h > MaxSize {
		return nil, fmt.Errorf("%w: view box %gx%g", ErrSize, vw, vh)
	}

	sw, sh := w*supersample, h*supersample
	big := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.Draw(big, big.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	icon.SetTarget(0, 0, float64(sw), float64(sh))
	scanner := rasterx.NewScannerGV(sw, sh, big, big.Bounds())
	icon.Draw(rasterx.NewDasher(sw, sh, scanner), 1)

	return Thumbnail(big, w, h), nil
}

// Thumbnail scales src to w x h with Catmull-Rom resampling.
func Thumbnail(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// PNG rasterizes svg and encodes the result as PNG.
func PNG(svg []byte, size int) ([]byte, error) {
	img, err := Rasterize(svg, size)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func fit(vw, vh float64, size int) (int, int) {
	if size == 0 {
		return int(math.Ceil(vw)), int(math.Ceil(vh))
	}
	if vw >= vh {
		return size, max(1, int(math.Round(float64(size)*vh/vw)))
	}
	return max(1, int(math.Round(float64(size)*vw/vh))), size
}
