package rdk

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"go.uber.org/multierr"

	"RDK/internal/palette"
)

// Shape is the aperture_type parameter.
type Shape int

const (
	Circle Shape = 1 + iota
	Ellipse
	Square
	Rectangle
)

func (s Shape) elliptical() bool { return s == Circle || s == Ellipse }

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Ellipse:
		return "ellipse"
	case Square:
		return "square"
	case Rectangle:
		return "rectangle"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Reinsert is the reinsert_type parameter: what happens to a dot that leaves
// the aperture.
type Reinsert int

const (
	ReinsertRandom Reinsert = 1 + iota
	ReinsertOppositeEdge
)

// Kind is the RDK_type parameter. Kinds 1-3 assign signal dots once; kinds
// 4-6 redraw every dot's role each frame.
type Kind int

const (
	SameRandomPosition Kind = 1 + iota
	SameRandomWalk
	SameRandomDirection
	DifferentRandomPosition
	DifferentRandomWalk
	DifferentRandomDirection
)

const (
	dotShapeCircle = "circle"
	dotShapeSquare = "square"

	// maxDotsPerAperture bounds nDots*nSets for a single aperture.
	maxDotsPerAperture = 1 << 22
)

type fixationCross struct {
	enabled       bool
	width, height float64
	thickness     float64
	color         color.RGBA
}

// Aperture is one independently configured motion field. Geometry and motion
// parameters are fixed at construction; only the displayed set and the dots
// themselves change.
type Aperture struct {
	Index int

	Shape            Shape
	CenterX, CenterY float64
	Width, Height    float64
	// Semi-axes. Circles and squares use Width/2 for both.
	HorizontalAxis, VerticalAxis float64

	Kind              Kind
	Reinsert          Reinsert
	NDots, NSets      int
	DotLife           int
	Coherence         float64
	OppositeCoherence float64
	MoveDistance      float64
	// Coherent displacement per frame.
	JumpX, JumpY float64

	DotShape      string
	DotRadius     float64
	DotSideLength float64
	DotColor      color.RGBA

	Border          bool
	BorderThickness float64
	BorderColor     color.RGBA

	fixation fixationCross

	sets    [][]Dot
	current int
	rng     *rand.Rand
	outside []bool
}

// newAperture validates one column of broadcast parameters. The dot sets are
// filled separately by populate.
func newAperture(index int, p apertureParams, seed int64) (*Aperture, error) {
	a := &Aperture{
		Index:             index,
		Shape:             Shape(p.shape),
		CenterX:           p.centerX,
		CenterY:           p.centerY,
		Width:             p.width,
		Height:            p.height,
		Kind:              Kind(p.rdkType),
		Reinsert:          Reinsert(p.reinsert),
		NDots:             p.nDots,
		NSets:             p.nSets,
		DotLife:           p.dotLife,
		Coherence:         p.coherence,
		OppositeCoherence: p.opposite,
		MoveDistance:      p.move,
		DotShape:          p.dotShape,
		DotRadius:         p.dotRadius,
		DotSideLength:     p.dotSide,
		Border:            p.border,
		BorderThickness:   p.borderThickness,
		rng:               rand.New(rand.NewSource(seed)),
	}

	var errs error
	switch a.Shape {
	case Circle, Square:
		a.Height = a.Width
		a.HorizontalAxis = a.Width / 2
		a.VerticalAxis = a.Width / 2
	case Ellipse, Rectangle:
		a.HorizontalAxis = a.Width / 2
		a.VerticalAxis = a.Height / 2
	default:
		errs = multierr.Append(errs, fmt.Errorf("aperture_type %d out of range 1-4", p.shape))
	}
	if a.Shape >= Circle && a.Shape <= Rectangle && (a.HorizontalAxis <= 0 || a.VerticalAxis <= 0) {
		errs = multierr.Append(errs, fmt.Errorf("%s aperture needs positive size, got %gx%g", a.Shape, a.Width, a.Height))
	}
	if a.Kind < SameRandomPosition || a.Kind > DifferentRandomDirection {
		errs = multierr.Append(errs, fmt.Errorf("RDK_type %d out of range 1-6", p.rdkType))
	}
	if a.Reinsert != ReinsertRandom && a.Reinsert != ReinsertOppositeEdge {
		errs = multierr.Append(errs, fmt.Errorf("reinsert_type %d out of range 1-2", p.reinsert))
	}
	if a.NDots < 0 {
		errs = multierr.Append(errs, fmt.Errorf("number_of_dots must not be negative, got %d", a.NDots))
	}
	if a.NSets < 1 {
		errs = multierr.Append(errs, fmt.Errorf("number_of_sets must be at least 1, got %d", a.NSets))
	}
	if a.NDots > 0 && a.NSets > 0 && a.NDots > maxDotsPerAperture/a.NSets {
		errs = multierr.Append(errs, fmt.Errorf("%d dots in %d sets exceeds %d", a.NDots, a.NSets, maxDotsPerAperture))
	}
	if a.Coherence < 0 || a.Coherence > 1 {
		errs = multierr.Append(errs, fmt.Errorf("coherence %g out of range 0-1", a.Coherence))
	}
	if a.OppositeCoherence < 0 || a.OppositeCoherence > 1 {
		errs = multierr.Append(errs, fmt.Errorf("opposite_coherence %g out of range 0-1", a.OppositeCoherence))
	}
	if a.Coherence+a.OppositeCoherence > 1+1e-9 {
		errs = multierr.Append(errs, fmt.Errorf("coherence + opposite_coherence = %g exceeds 1", a.Coherence+a.OppositeCoherence))
	}
	if a.DotShape != dotShapeCircle && a.DotShape != dotShapeSquare {
		errs = multierr.Append(errs, fmt.Errorf("dot_shape %q must be %q or %q", a.DotShape, dotShapeCircle, dotShapeSquare))
	}

	var err error
	if a.DotColor, err = palette.Parse(p.dotColor); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("dot_color: %w", err))
	}
	if a.BorderColor, err = palette.Parse(p.borderColor); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("border_color: %w", err))
	}
	a.fixation = fixationCross{
		enabled:   p.fixation,
		width:     p.fixationW,
		height:    p.fixationH,
		thickness: p.fixationStroke,
	}
	if a.fixation.color, err = palette.Parse(p.fixationColor); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("fixation_cross_color: %w", err))
	}
	if errs != nil {
		return nil, errs
	}

	// Screen y grows downwards, so the angle is negated for the y component.
	rad := p.direction * math.Pi / 180
	a.JumpX = a.MoveDistance * math.Cos(rad)
	a.JumpY = a.MoveDistance * math.Sin(-rad)
	return a, nil
}

// Dots returns the currently displayed dot set.
func (a *Aperture) Dots() []Dot {
	if len(a.sets) == 0 {
		return nil
	}
	return a.sets[a.current]
}

// Set returns dot set i.
func (a *Aperture) Set(i int) []Dot { return a.sets[i] }

// CurrentSet is the index of the displayed set.
func (a *Aperture) CurrentSet() int { return a.current }

// between draws uniformly from [lo, hi).
func (a *Aperture) between(lo, hi float64) float64 {
	return lo + a.rng.Float64()*(hi-lo)
}
