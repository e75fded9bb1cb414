package rdk

import "math"

// Contains reports whether (x, y) lies inside the aperture. Points on the
// boundary are inside.
func (a *Aperture) Contains(x, y float64) bool {
	dx := x - a.CenterX
	dy := y - a.CenterY
	h, v := a.HorizontalAxis, a.VerticalAxis
	if math.Abs(dx) > h || math.Abs(dy) > v {
		return false
	}
	if !a.Shape.elliptical() {
		return true
	}
	yBound := v * math.Sqrt(1-dx*dx/(h*h))
	xBound := h * math.Sqrt(1-dy*dy/(v*v))
	return math.Abs(dy) <= yBound && math.Abs(dx) <= xBound
}

// resetLocation moves d to a uniformly random point inside the aperture.
func (a *Aperture) resetLocation(d *Dot) {
	if a.Shape.elliptical() {
		phi := a.between(-math.Pi, math.Pi)
		rho := a.rng.Float64()
		r := math.Sqrt(rho)
		d.X = r*math.Cos(phi)*a.HorizontalAxis + a.CenterX
		d.Y = r*math.Sin(phi)*a.VerticalAxis + a.CenterY
		return
	}
	d.X = a.between(a.CenterX-a.HorizontalAxis, a.CenterX+a.HorizontalAxis)
	d.Y = a.between(a.CenterY-a.VerticalAxis, a.CenterY+a.VerticalAxis)
}

// reinsert applies the aperture's reinsert policy to a dot that left it.
func (a *Aperture) reinsert(d *Dot) {
	switch a.Reinsert {
	case ReinsertRandom:
		a.resetLocation(d)
	case ReinsertOppositeEdge:
		if a.Shape.elliptical() {
			a.reflect(d)
		} else {
			a.reinsertOnEdge(d)
		}
	}
}

// reflect undoes the last move and mirrors d through the aperture center.
func (a *Aperture) reflect(d *Dot) {
	x := d.X - d.LatestXMove
	y := d.Y - d.LatestYMove
	d.X = 2*a.CenterX - x
	d.Y = 2*a.CenterY - y
}

// reinsertOnEdge puts d on the edge it would enter from, picking a vertical
// or horizontal edge with odds weighted by edge length and direction of
// travel.
func (a *Aperture) reinsertOnEdge(d *Dot) {
	h, v := a.HorizontalAxis, a.VerticalAxis
	absX := math.Abs(d.LatestXMove)
	absY := math.Abs(d.LatestYMove)

	var wVertical, wHorizontal float64
	if sum := absX + absY; sum > 0 {
		wVertical = v / (v + h) * (absX / sum)
		wHorizontal = h / (v + h) * (absY / sum)
	}

	if wVertical > (wVertical+wHorizontal)*a.rng.Float64() {
		if d.LatestXMove < 0 {
			d.X = a.CenterX + h
		} else {
			d.X = a.CenterX - h
		}
		d.Y = a.between(a.CenterY-v, a.CenterY+v)
		return
	}
	if d.LatestYMove < 0 {
		d.Y = a.CenterY + v
	} else {
		d.Y = a.CenterY - v
	}
	d.X = a.between(a.CenterX-h, a.CenterX+h)
}
