// Package render draws trial frames onto an offscreen ebiten image.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ellipseSegments is the number of polygon edges in a stroked ellipse.
const ellipseSegments = 96

// Canvas implements rdk.Surface on an offscreen image. The game copies the
// image to the screen in Draw, so a frame drawn during Update is shown as is.
type Canvas struct {
	img       *ebiten.Image
	antialias bool
}

// NewCanvas allocates a width x height canvas.
func NewCanvas(width, height int, antialias bool) *Canvas {
	return &Canvas{img: ebiten.NewImage(width, height), antialias: antialias}
}

// Image returns the backing image.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Clear(bg color.RGBA) {
	c.img.Fill(bg)
}

func (c *Canvas) FillCircle(cx, cy, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r), clr, c.antialias)
}

func (c *Canvas) FillRect(x, y, w, h float64, clr color.RGBA) {
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(w), float32(h), clr, c.antialias)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.RGBA) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, c.antialias)
}

func (c *Canvas) StrokeRect(x, y, w, h, width float64, clr color.RGBA) {
	vector.StrokeRect(c.img, float32(x), float32(y), float32(w), float32(h), float32(width), clr, c.antialias)
}

// StrokeEllipse strokes the outline as one closed path so adjacent segments
// are mitred rather than overlapping.
func (c *Canvas) StrokeEllipse(cx, cy, rx, ry, width float64, clr color.RGBA) {
	strokeOp := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinMiter}
	drawOp := &vector.DrawPathOptions{AntiAlias: c.antialias}
	drawOp.ColorScale.ScaleWithColor(clr)
	vector.StrokePath(c.img, ellipsePath(cx, cy, rx, ry, ellipseSegments), strokeOp, drawOp)
}

// ellipsePath builds a closed polygon through EllipsePoints.
func ellipsePath(cx, cy, rx, ry float64, n int) *vector.Path {
	pts := EllipsePoints(cx, cy, rx, ry, n)
	var path vector.Path
	path.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1 : len(pts)-1] {
		path.LineTo(float32(p[0]), float32(p[1]))
	}
	path.Close()
	return &path
}

// EllipsePoints returns n+1 points around the ellipse; the last repeats the
// first.
func EllipsePoints(cx, cy, rx, ry float64, n int) [][2]float64 {
	if n < 3 {
		n = 3
	}
	pts := make([][2]float64, n+1)
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i%n) / float64(n)
		pts[i] = [2]float64{cx + rx*math.Cos(theta), cy + ry*math.Sin(theta)}
	}
	return pts
}
