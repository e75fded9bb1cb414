package rdk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testColumn returns the default broadcast column for an 800x600 canvas.
func testColumn(t *testing.T) apertureParams {
	t.Helper()
	cols, err := broadcastParams(DefaultParams().withCanvasCenter(800, 600))
	require.NoError(t, err)
	return cols[0]
}

func testAperture(t *testing.T, edit func(*apertureParams)) *Aperture {
	t.Helper()
	p := testColumn(t)
	if edit != nil {
		edit(&p)
	}
	a, err := newAperture(0, p, 7)
	require.NoError(t, err)
	a.populate()
	return a
}

func TestContains_Ellipse(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.shape = int(Ellipse)
		p.centerX, p.centerY = 0, 0
		p.width, p.height = 200, 100
	})

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 0, 0, true},
		{"right vertex", 100, 0, true},
		{"top vertex", 0, -50, true},
		{"past right vertex", 101, 0, false},
		{"past bottom vertex", 0, 51, false},
		{"inside bounding box corner", 90, 45, false},
		{"inside near diagonal", 60, 30, true},
		{"outside bounding box", 150, 80, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Contains(tt.x, tt.y))
		})
	}
}

func TestContains_Rectangle(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.shape = int(Rectangle)
		p.centerX, p.centerY = 0, 0
		p.width, p.height = 200, 100
	})
	assert.True(t, a.Contains(90, 45))
	assert.True(t, a.Contains(-100, 50))
	assert.False(t, a.Contains(100.5, 0))
	assert.False(t, a.Contains(0, -50.5))
}

func TestCircleAndSquareIgnoreHeight(t *testing.T) {
	for _, shape := range []Shape{Circle, Square} {
		a := testAperture(t, func(p *apertureParams) {
			p.shape = int(shape)
			p.width, p.height = 300, 10
		})
		assert.Equal(t, 150.0, a.HorizontalAxis, shape.String())
		assert.Equal(t, 150.0, a.VerticalAxis, shape.String())
		assert.Equal(t, 300.0, a.Height, shape.String())
	}
}

func TestResetLocation_StaysInside(t *testing.T) {
	for _, shape := range []Shape{Circle, Ellipse, Square, Rectangle} {
		t.Run(shape.String(), func(t *testing.T) {
			a := testAperture(t, func(p *apertureParams) { p.shape = int(shape) })
			var d Dot
			for i := 0; i < 2000; i++ {
				a.resetLocation(&d)
				require.True(t, a.Contains(d.X, d.Y), "(%g, %g)", d.X, d.Y)
			}
		})
	}
}

func TestReflect_Involution(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) { p.shape = int(Circle) })

	x0, y0 := a.CenterX+120, a.CenterY-40
	d := Dot{X: x0 + 3, Y: y0 - 4, LatestXMove: 3, LatestYMove: -4}

	a.reflect(&d)
	assert.InDelta(t, 2*a.CenterX-x0, d.X, 1e-9)
	assert.InDelta(t, 2*a.CenterY-y0, d.Y, 1e-9)

	d.LatestXMove, d.LatestYMove = 0, 0
	a.reflect(&d)
	assert.InDelta(t, x0, d.X, 1e-9)
	assert.InDelta(t, y0, d.Y, 1e-9)
}

func TestReinsertOnEdge_LandsOnBoundary(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.shape = int(Rectangle)
		p.width, p.height = 400, 200
	})
	left, right := a.CenterX-a.HorizontalAxis, a.CenterX+a.HorizontalAxis
	top, bottom := a.CenterY-a.VerticalAxis, a.CenterY+a.VerticalAxis

	for i := 0; i < 1000; i++ {
		theta := a.between(-math.Pi, math.Pi)
		d := Dot{LatestXMove: math.Cos(theta), LatestYMove: -math.Sin(theta)}
		a.reinsertOnEdge(&d)

		onVertical := (d.X == left || d.X == right) && d.Y >= top && d.Y <= bottom
		onHorizontal := (d.Y == top || d.Y == bottom) && d.X >= left && d.X <= right
		require.True(t, onVertical || onHorizontal, "(%g, %g) not on the boundary", d.X, d.Y)
	}
}

func TestReinsertOnEdge_OppositeSide(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) { p.shape = int(Square) })

	d := Dot{LatestXMove: -2}
	a.reinsertOnEdge(&d)
	assert.Equal(t, a.CenterX+a.HorizontalAxis, d.X, "moving left enters from the right")

	d = Dot{LatestXMove: 2}
	a.reinsertOnEdge(&d)
	assert.Equal(t, a.CenterX-a.HorizontalAxis, d.X, "moving right enters from the left")

	d = Dot{LatestYMove: -2}
	a.reinsertOnEdge(&d)
	assert.Equal(t, a.CenterY+a.VerticalAxis, d.Y, "moving up enters from the bottom")

	d = Dot{LatestYMove: 2}
	a.reinsertOnEdge(&d)
	assert.Equal(t, a.CenterY-a.VerticalAxis, d.Y, "moving down enters from the top")
}

func TestNewAperture_ValidationErrors(t *testing.T) {
	p := testColumn(t)
	p.shape = 9
	p.rdkType = 0
	p.reinsert = 3
	p.nSets = 0
	p.dotColor = "nope"
	p.dotShape = "triangle"
	p.coherence = 1.5

	_, err := newAperture(0, p, 1)
	require.Error(t, err)
	for _, want := range []string{"aperture_type", "RDK_type", "reinsert_type", "number_of_sets", "dot_color", "dot_shape", "coherence"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestJump(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.direction = 90
		p.move = 2
	})
	assert.InDelta(t, 0, a.JumpX, 1e-9)
	assert.InDelta(t, -2, a.JumpY, 1e-9, "90 degrees moves up the screen")
}

func TestNewAperture_CSSColorForms(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.dotColor = "hsl(0, 100%, 50%)"
		p.borderColor = "rgb(0 0 255)"
		p.fixationColor = "rgba(0, 255, 0, 100%)"
	})
	assert.Equal(t, uint8(255), a.DotColor.R)
	assert.Equal(t, uint8(255), a.BorderColor.B)
	assert.Equal(t, uint8(255), a.fixation.color.G)
	assert.Equal(t, uint8(255), a.fixation.color.A)
}
