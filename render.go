package sskel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/vector"
)

// Diagnostic rendering of a completed skeleton: SVG for inspection in a
// browser, PNG for quick visual diffing. Contour edges draw dark, bisectors
// draw accented. Both renderers are pure functions over the finished graph.

type segment struct {
	a, b     Point
	bisector bool
}

func (s *Skeleton) segments() []segment {
	var segs []segment
	for h := range s.g.edges {
		e := &s.g.edges[h]
		if e.erased || h > e.twin {
			continue
		}
		src := s.g.source(h)
		dst := e.vertex
		if src == nilIdx || dst == nilIdx {
			continue
		}
		segs = append(segs, segment{
			a:        s.g.verts[src].point,
			b:        s.g.verts[dst].point,
			bisector: !e.border,
		})
	}
	return segs
}

func (s *Skeleton) bounds() (min, max Point) {
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for i := range s.g.verts {
		if s.g.verts[i].erased {
			continue
		}
		p := s.g.verts[i].point
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// SVG renders the contour and skeleton edges as an SVG document.
func (s *Skeleton) SVG() string {
	min, max := s.bounds()
	w := max.X - min.X
	h := max.Y - min.Y
	margin := 0.05 * math.Max(w, h)
	if margin == 0 {
		margin = 1
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		fmtFloat(min.X-margin), fmtFloat(min.Y-margin),
		fmtFloat(w+2*margin), fmtFloat(h+2*margin)))
	b.WriteString("\n")

	for _, seg := range s.segments() {
		stroke := "#1a1a1a"
		width := 0.012 * math.Max(w, h)
		if seg.bisector {
			stroke = "#d04a35"
			width *= 0.75
		}
		b.WriteString(fmt.Sprintf(
			`  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`,
			fmtFloat(seg.a.X), fmtFloat(seg.a.Y),
			fmtFloat(seg.b.X), fmtFloat(seg.b.Y),
			stroke, fmtFloat(width)))
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func fmtFloat(f float64) string {
	out := fmt.Sprintf("%.6f", f)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}

// WritePNG rasterizes the contour and skeleton edges into a PNG of the given
// size. The drawing is scaled to fit, preserving aspect ratio, with the
// y-axis flipped so larger y draws upward.
func (s *Skeleton) WritePNG(w io.Writer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("sskel: invalid image size %dx%d", width, height)
	}

	min, max := s.bounds()
	spanX := max.X - min.X
	spanY := max.Y - min.Y
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	margin := 0.05 * math.Max(float64(width), float64(height))
	scale := math.Min((float64(width)-2*margin)/spanX, (float64(height)-2*margin)/spanY)

	toImage := func(p Point) (float32, float32) {
		x := margin + (p.X-min.X)*scale
		y := float64(height) - margin - (p.Y-min.Y)*scale
		return float32(x), float32(y)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	segs := s.segments()
	strokeClass := func(bisector bool, col color.Color, lw float32) {
		r := vector.NewRasterizer(width, height)
		for _, seg := range segs {
			if seg.bisector != bisector {
				continue
			}
			ax, ay := toImage(seg.a)
			bx, by := toImage(seg.b)
			strokeQuad(r, ax, ay, bx, by, lw)
		}
		r.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
	}

	strokeClass(false, color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}, 2)
	strokeClass(true, color.RGBA{R: 0xd0, G: 0x4a, B: 0x35, A: 0xff}, 1.5)

	return png.Encode(w, dst)
}

// strokeQuad adds a line segment to the rasterizer as a thin filled quad.
func strokeQuad(r *vector.Rasterizer, ax, ay, bx, by, lw float32) {
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	// Perpendicular half-width offset.
	ox := -dy / length * lw / 2
	oy := dx / length * lw / 2

	r.MoveTo(ax+ox, ay+oy)
	r.LineTo(bx+ox, by+oy)
	r.LineTo(bx-ox, by-oy)
	r.LineTo(ax-ox, ay-oy)
	r.ClosePath()
}
