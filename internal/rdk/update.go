package rdk

import "math"

// BoundsTester evaluates a whole dot set against an aperture boundary,
// setting out[i] when dots[i] lies outside.
type BoundsTester interface {
	OutOfBounds(a *Aperture, dots []Dot, out []bool) error
}

// CPUBounds tests dots one at a time with Aperture.Contains.
type CPUBounds struct{}

func (CPUBounds) OutOfBounds(a *Aperture, dots []Dot, out []bool) error {
	for i := range dots {
		out[i] = !a.Contains(dots[i].X, dots[i].Y)
	}
	return nil
}

// advance shows the next dot set and moves each of its dots one frame. flip is
// +1 or -1 and scales constant-direction moves only.
func (a *Aperture) advance(flip float64) {
	if len(a.sets) == 0 {
		return
	}
	a.current = (a.current + 1) % a.NSets
	dots := a.sets[a.current]
	for i := range dots {
		d := &dots[i]
		a.move(d, flip)
		d.LifeCount++
		if a.lifeEnded(d) {
			a.resetLocation(d)
		}
	}
}

// reinsertStrays applies the reinsert policy to every displayed dot that is
// outside the aperture. A failing tester falls back to CPUBounds.
func (a *Aperture) reinsertStrays(tester BoundsTester) {
	dots := a.Dots()
	if len(dots) == 0 {
		return
	}
	if cap(a.outside) < len(dots) {
		a.outside = make([]bool, len(dots))
	}
	out := a.outside[:len(dots)]
	if err := tester.OutOfBounds(a, dots, out); err != nil {
		Logf("rdk: aperture %d: bounds test failed, using CPU: %v", a.Index, err)
		_ = CPUBounds{}.OutOfBounds(a, dots, out)
	}
	for i := range dots {
		if out[i] {
			a.reinsert(&dots[i])
		}
	}
}

func (a *Aperture) move(d *Dot, flip float64) {
	switch d.Policy {
	case Constant:
		constantStep(d, flip)
	case Opposite:
		oppositeStep(d)
	case RandomPosition:
		a.resetLocation(d)
	case RandomWalk:
		a.walkStep(d)
	case RandomDirection:
		altStep(d)
	case MixedRandomPosition, MixedRandomWalk, MixedRandomDirection:
		r := a.rng.Float64()
		switch {
		case r < a.Coherence:
			constantStep(d, flip)
		case r < a.Coherence+a.OppositeCoherence:
			oppositeStep(d)
		case d.Policy == MixedRandomPosition:
			a.resetLocation(d)
		case d.Policy == MixedRandomWalk:
			a.walkStep(d)
		default:
			altStep(d)
		}
	}
}

// lifeEnded reports whether d has reached its finite lifetime and restarts
// its count. Infinite lives (negative DotLife) keep the count at zero.
func (a *Aperture) lifeEnded(d *Dot) bool {
	if a.DotLife < 0 {
		d.LifeCount = 0
		return false
	}
	if d.LifeCount >= a.DotLife {
		d.LifeCount = 0
		return true
	}
	return false
}

func constantStep(d *Dot, flip float64) {
	d.LatestXMove = d.VX * flip
	d.LatestYMove = d.VY * flip
	d.X += d.LatestXMove
	d.Y += d.LatestYMove
}

// oppositeStep ignores the flip state.
func oppositeStep(d *Dot) {
	d.LatestXMove = -d.VX
	d.LatestYMove = -d.VY
	d.X += d.LatestXMove
	d.Y += d.LatestYMove
}

func (a *Aperture) walkStep(d *Dot) {
	theta := a.between(-math.Pi, math.Pi)
	d.LatestXMove = math.Cos(theta) * a.MoveDistance
	d.LatestYMove = -math.Sin(theta) * a.MoveDistance
	d.X += d.LatestXMove
	d.Y += d.LatestYMove
}

func altStep(d *Dot) {
	d.LatestXMove = d.VX2
	d.LatestYMove = d.VY2
	d.X += d.LatestXMove
	d.Y += d.LatestYMove
}
