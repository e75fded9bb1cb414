package rdk

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPolicies(dots []Dot) map[Policy]int {
	counts := make(map[Policy]int)
	for _, d := range dots {
		counts[d.Policy]++
	}
	return counts
}

func TestPopulate_RoleCountsSumToDots(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		noise     Policy
		nDots     int
		coherence float64
		opposite  float64
	}{
		{"half coherent", SameRandomPosition, RandomPosition, 300, 0.5, 0},
		{"fractional thresholds", SameRandomWalk, RandomWalk, 10, 0.333, 0.333},
		{"no noise", SameRandomDirection, RandomDirection, 7, 0.5, 0.5},
		{"all noise", SameRandomDirection, RandomDirection, 50, 0, 0},
		{"no dots", SameRandomPosition, RandomPosition, 0, 0.5, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAperture(t, func(p *apertureParams) {
				p.rdkType = int(tt.kind)
				p.nDots = tt.nDots
				p.nSets = 2
				p.coherence = tt.coherence
				p.opposite = tt.opposite
			})
			wantCoherent := int(math.Floor(float64(tt.nDots) * tt.coherence))
			wantOpposite := int(math.Floor(float64(tt.nDots) * tt.opposite))

			for s := 0; s < a.NSets; s++ {
				counts := countPolicies(a.Set(s))
				assert.Equal(t, wantCoherent, counts[Constant])
				assert.Equal(t, wantOpposite, counts[Opposite])
				assert.Equal(t, tt.nDots-wantCoherent-wantOpposite, counts[tt.noise])
				assert.Equal(t, tt.nDots, counts[Constant]+counts[Opposite]+counts[tt.noise])
			}
		})
	}
}

func TestPopulate_MixedKindsAssignEveryDot(t *testing.T) {
	for kind, want := range map[Kind]Policy{
		DifferentRandomPosition:  MixedRandomPosition,
		DifferentRandomWalk:      MixedRandomWalk,
		DifferentRandomDirection: MixedRandomDirection,
	} {
		a := testAperture(t, func(p *apertureParams) {
			p.rdkType = int(kind)
			p.nDots = 40
		})
		assert.Equal(t, 40, countPolicies(a.Dots())[want], want.String())
		for _, d := range a.Dots() {
			assert.Equal(t, a.JumpX, d.VX)
			assert.Equal(t, a.JumpY, d.VY)
		}
	}
}

func TestPopulate_AltVelocityLength(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) {
		p.rdkType = int(SameRandomDirection)
		p.coherence = 0
		p.move = 3
	})
	for _, d := range a.Dots() {
		require.Equal(t, RandomDirection, d.Policy)
		assert.InDelta(t, 3, math.Hypot(d.VX2, d.VY2), 1e-9)
	}
}

func TestPopulate_InitialLifeCount(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) { p.dotLife = 10 })
	for _, d := range a.Dots() {
		assert.GreaterOrEqual(t, d.LifeCount, 0)
		assert.Less(t, d.LifeCount, 10)
	}

	inf := testAperture(t, func(p *apertureParams) { p.dotLife = -1 })
	for _, d := range inf.Dots() {
		assert.Zero(t, d.LifeCount)
	}
}

func TestPopulate_SetsAreIndependent(t *testing.T) {
	a := testAperture(t, func(p *apertureParams) { p.nSets = 3 })
	require.Len(t, a.sets, 3)
	assert.NotEqual(t, a.Set(0)[0].X, a.Set(1)[0].X)
}

func TestBuildApertures_DeterministicPerSeed(t *testing.T) {
	p := DefaultParams().withCanvasCenter(800, 600)
	p.NumberOfApertures = 3
	p.ApertureCenterX = Seq(150.0, 400.0, 650.0)
	cols, err := broadcastParams(p)
	require.NoError(t, err)

	first, err := buildApertures(cols, 99)
	require.NoError(t, err)
	second, err := buildApertures(cols, 99)
	require.NoError(t, err)

	for i := range first {
		if diff := cmp.Diff(first[i].Dots(), second[i].Dots()); diff != "" {
			t.Errorf("aperture %d differs between builds (-first +second):\n%s", i, diff)
		}
	}
	assert.NotEqual(t, first[0].Dots()[0].X-first[0].CenterX, first[1].Dots()[0].X-first[1].CenterX,
		"apertures draw from different sources")
}

func TestBuildApertures_ReportsEveryAperture(t *testing.T) {
	p := DefaultParams().withCanvasCenter(800, 600)
	p.NumberOfApertures = 2
	p.DotColor = Seq("bogus", "also bogus")
	cols, err := broadcastParams(p)
	require.NoError(t, err)

	_, err = buildApertures(cols, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aperture 0")
	assert.Contains(t, err.Error(), "aperture 1")
}

func TestBuildApertures_OversizedSetsRejectedBeforePopulating(t *testing.T) {
	p := DefaultParams().withCanvasCenter(800, 600)
	p.NumberOfDots = Scalar(maxDotsPerAperture)
	p.NumberOfSets = Scalar(2)
	cols, err := broadcastParams(p)
	require.NoError(t, err)

	apertures, err := buildApertures(cols, 1)
	require.Error(t, err)
	assert.Nil(t, apertures)
	assert.Contains(t, err.Error(), "exceeds")
}
