package rdk

// draw renders the displayed dot set and, if enabled, the border.
func (a *Aperture) draw(s Surface) {
	dots := a.Dots()
	if a.DotShape == dotShapeSquare {
		side := a.DotSideLength
		half := side / 2
		for _, d := range dots {
			s.FillRect(d.X-half, d.Y-half, side, side, a.DotColor)
		}
	} else {
		for _, d := range dots {
			s.FillCircle(d.X, d.Y, a.DotRadius, a.DotColor)
		}
	}

	if !a.Border {
		return
	}
	t := a.BorderThickness
	if a.Shape.elliptical() {
		s.StrokeEllipse(a.CenterX, a.CenterY, a.HorizontalAxis+t/2, a.VerticalAxis+t/2, t, a.BorderColor)
		return
	}
	s.StrokeRect(
		a.CenterX-a.HorizontalAxis-t/2,
		a.CenterY-a.VerticalAxis-t/2,
		a.HorizontalAxis*2+t,
		a.VerticalAxis*2+t,
		t, a.BorderColor)
}

// drawFixation strokes a cross at the canvas center.
func drawFixation(s Surface, f fixationCross, canvasW, canvasH float64) {
	cx, cy := canvasW/2, canvasH/2
	s.StrokeLine(cx-f.width, cy, cx+f.width, cy, f.thickness, f.color)
	s.StrokeLine(cx, cy-f.height, cx, cy+f.height, f.thickness, f.color)
}
