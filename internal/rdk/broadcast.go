package rdk

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrApertureCount is returned when a per-aperture sequence does not have one
// value per aperture.
var ErrApertureCount = errors.New("sequence length does not match number_of_apertures")

// Broadcast expands p to exactly n values. A sequence of length n is returned
// as is and shares its backing array with p; a scalar or a single-element
// sequence is replicated.
func Broadcast[T any](name string, p PerAperture[T], n int) ([]T, error) {
	vs := p.Values()
	switch {
	case !p.IsScalar() && len(vs) == n:
		return vs, nil
	case len(vs) == 1:
		out := make([]T, n)
		for i := range out {
			out[i] = vs[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%s: got %d values for %d apertures: %w", name, len(vs), n, ErrApertureCount)
}

// apertureParams is one column of the broadcast parameter table.
type apertureParams struct {
	nDots, nSets, dotLife          int
	rdkType, shape, reinsert       int
	direction, coherence, opposite float64
	dotRadius, dotSide, move       float64
	width, height                  float64
	centerX, centerY               float64
	dotColor, dotShape             string

	fixation                             bool
	fixationW, fixationH, fixationStroke float64
	fixationColor                        string
	border                               bool
	borderThickness                      float64
	borderColor                          string
}

// broadcaster accumulates broadcast errors so every bad parameter is reported
// at once.
type broadcaster struct {
	n   int
	err error
}

func bcast[T any](b *broadcaster, name string, p PerAperture[T]) []T {
	vs, err := Broadcast(name, p, b.n)
	if err != nil {
		b.err = multierr.Append(b.err, err)
		return make([]T, b.n)
	}
	return vs
}

// broadcastParams expands every per-aperture parameter and returns one
// apertureParams per aperture.
func broadcastParams(p Params) ([]apertureParams, error) {
	if p.NumberOfApertures < 1 {
		return nil, fmt.Errorf("number_of_apertures must be at least 1, got %d", p.NumberOfApertures)
	}
	b := &broadcaster{n: p.NumberOfApertures}

	nDots := bcast(b, "number_of_dots", p.NumberOfDots)
	nSets := bcast(b, "number_of_sets", p.NumberOfSets)
	direction := bcast(b, "coherent_direction", p.CoherentDirection)
	coherence := bcast(b, "coherence", p.Coherence)
	opposite := bcast(b, "opposite_coherence", p.OppositeCoherence)
	dotRadius := bcast(b, "dot_radius", p.DotRadius)
	dotSide := bcast(b, "dot_side_length", p.DotSideLength)
	dotLife := bcast(b, "dot_life", p.DotLife)
	move := bcast(b, "move_distance", p.MoveDistance)
	width := bcast(b, "aperture_width", p.ApertureWidth)
	height := bcast(b, "aperture_height", p.ApertureHeight)
	dotColor := bcast(b, "dot_color", p.DotColor)
	dotShape := bcast(b, "dot_shape", p.DotShape)
	rdkType := bcast(b, "RDK_type", p.RDKType)
	shape := bcast(b, "aperture_type", p.ApertureType)
	reinsert := bcast(b, "reinsert_type", p.ReinsertType)
	centerX := bcast(b, "aperture_center_x", p.ApertureCenterX)
	centerY := bcast(b, "aperture_center_y", p.ApertureCenterY)
	fixation := bcast(b, "fixation_cross", p.FixationCross)
	fixationW := bcast(b, "fixation_cross_width", p.FixationCrossWidth)
	fixationH := bcast(b, "fixation_cross_height", p.FixationCrossHeight)
	fixationColor := bcast(b, "fixation_cross_color", p.FixationCrossColor)
	fixationStroke := bcast(b, "fixation_cross_thickness", p.FixationCrossThickness)
	border := bcast(b, "border", p.Border)
	borderThickness := bcast(b, "border_thickness", p.BorderThickness)
	borderColor := bcast(b, "border_color", p.BorderColor)

	if b.err != nil {
		return nil, b.err
	}

	out := make([]apertureParams, b.n)
	for i := range out {
		out[i] = apertureParams{
			nDots:           nDots[i],
			nSets:           nSets[i],
			dotLife:         dotLife[i],
			rdkType:         rdkType[i],
			shape:           shape[i],
			reinsert:        reinsert[i],
			direction:       direction[i],
			coherence:       coherence[i],
			opposite:        opposite[i],
			dotRadius:       dotRadius[i],
			dotSide:         dotSide[i],
			move:            move[i],
			width:           width[i],
			height:          height[i],
			centerX:         centerX[i],
			centerY:         centerY[i],
			dotColor:        dotColor[i],
			dotShape:        dotShape[i],
			fixation:        fixation[i],
			fixationW:       fixationW[i],
			fixationH:       fixationH[i],
			fixationColor:   fixationColor[i],
			fixationStroke:  fixationStroke[i],
			border:          border[i],
			borderThickness: borderThickness[i],
			borderColor:     borderColor[i],
		}
	}
	return out, nil
}
