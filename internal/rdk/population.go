package rdk

import (
	"fmt"
	"math"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Policy selects how a dot moves each frame.
type Policy uint8

const (
	Constant Policy = iota
	Opposite
	RandomPosition
	RandomWalk
	RandomDirection
	// Mixed policies draw constant, opposite or the noise rule anew every
	// frame, weighted by coherence and opposite coherence.
	MixedRandomPosition
	MixedRandomWalk
	MixedRandomDirection
)

func (p Policy) String() string {
	switch p {
	case Constant:
		return "constant direction"
	case Opposite:
		return "opposite direction"
	case RandomPosition:
		return "random position"
	case RandomWalk:
		return "random walk"
	case RandomDirection:
		return "random direction"
	case MixedRandomPosition:
		return "constant direction or opposite direction or random position"
	case MixedRandomWalk:
		return "constant direction or opposite direction or random walk"
	case MixedRandomDirection:
		return "constant direction or opposite direction or random direction"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

// Dot is one moving point.
type Dot struct {
	X, Y float64
	// Coherent velocity.
	VX, VY float64
	// Fixed alternate velocity for the random-direction rules.
	VX2, VY2 float64
	// Displacement applied by the last move.
	LatestXMove, LatestYMove float64
	LifeCount                int
	Policy                   Policy
}

// roleCounts returns how many dots of an nDots population take the coherent
// and opposite roles under a same-assignment kind.
func roleCounts(nDots int, coherence, opposite float64) (nCoherent, nOpposite int) {
	nCoherent = int(math.Floor(float64(nDots) * coherence))
	nOpposite = int(math.Floor(float64(nDots) * opposite))
	if nCoherent > nDots {
		nCoherent = nDots
	}
	if nCoherent+nOpposite > nDots {
		nOpposite = nDots - nCoherent
	}
	return nCoherent, nOpposite
}

// policyFor assigns the policy of dot i.
func policyFor(k Kind, i, nCoherent, nOpposite int) Policy {
	switch k {
	case DifferentRandomPosition:
		return MixedRandomPosition
	case DifferentRandomWalk:
		return MixedRandomWalk
	case DifferentRandomDirection:
		return MixedRandomDirection
	}
	switch {
	case i < nCoherent:
		return Constant
	case i < nCoherent+nOpposite:
		return Opposite
	}
	switch k {
	case SameRandomPosition:
		return RandomPosition
	case SameRandomWalk:
		return RandomWalk
	}
	return RandomDirection
}

// populate fills the aperture's NSets dot sets, each drawn independently.
func (a *Aperture) populate() {
	a.sets = make([][]Dot, a.NSets)
	for s := range a.sets {
		a.sets[s] = a.makeDots()
	}
	a.current = 0
	a.outside = make([]bool, a.NDots)
}

func (a *Aperture) makeDots() []Dot {
	nCoherent, nOpposite := roleCounts(a.NDots, a.Coherence, a.OppositeCoherence)
	dots := make([]Dot, a.NDots)
	for i := range dots {
		d := &dots[i]
		if a.DotLife > 0 {
			d.LifeCount = int(math.Floor(a.between(0, float64(a.DotLife))))
		}
		a.resetLocation(d)

		d.Policy = policyFor(a.Kind, i, nCoherent, nOpposite)
		switch d.Policy {
		case Constant, Opposite, MixedRandomPosition, MixedRandomWalk:
			d.VX, d.VY = a.JumpX, a.JumpY
		case RandomDirection:
			a.setAltVelocity(d)
		case MixedRandomDirection:
			d.VX, d.VY = a.JumpX, a.JumpY
			a.setAltVelocity(d)
		}
	}
	return dots
}

// setAltVelocity gives d a random fixed direction at the aperture's speed.
func (a *Aperture) setAltVelocity(d *Dot) {
	theta := a.between(-math.Pi, math.Pi)
	d.VX2 = math.Cos(theta) * a.MoveDistance
	d.VY2 = -math.Sin(theta) * a.MoveDistance
}

// buildApertures validates every aperture, then fills their dot sets in
// parallel. Aperture i draws from its own source seeded with seed+i.
func buildApertures(params []apertureParams, seed int64) ([]*Aperture, error) {
	apertures := make([]*Aperture, len(params))
	var errs []error
	for i, p := range params {
		a, err := newAperture(i, p, seed+int64(i))
		if err != nil {
			errs = append(errs, fmt.Errorf("aperture %d: %w", i, err))
			continue
		}
		apertures[i] = a
	}
	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}

	var g errgroup.Group
	for _, a := range apertures {
		g.Go(func() error {
			a.populate()
			return nil
		})
	}
	_ = g.Wait()
	return apertures, nil
}
