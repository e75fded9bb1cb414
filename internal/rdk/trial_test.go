package rdk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RDK/internal/frameloop"
	"RDK/internal/keyboard"
	"RDK/internal/timeutil"
)

const frameInterval = 16 * time.Millisecond

type harness struct {
	start   time.Time
	clock   *timeutil.MockClock
	loop    *frameloop.Loop
	keys    *keyboard.Dispatcher
	surface *Recorder
	results []Result
	trial   *Trial
}

func newHarness(t *testing.T, p Params) *harness {
	t.Helper()
	h := &harness{start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	h.clock = timeutil.NewMockClock(h.start)
	h.loop = frameloop.New(h.clock)
	h.keys = keyboard.NewDispatcher(h.clock)
	h.surface = &Recorder{}

	trial, err := NewTrial(p, Host{
		Scheduler:    h.loop,
		Keyboard:     h.keys,
		Clock:        h.clock,
		Surface:      h.surface,
		Finish:       func(r Result) { h.results = append(h.results, r) },
		CanvasWidth:  800,
		CanvasHeight: 600,
		Seed:         1,
	})
	require.NoError(t, err)
	h.trial = trial
	require.NoError(t, trial.Start())
	return h
}

// frame advances the clock one refresh and runs the loop.
func (h *harness) frame() {
	h.loop.Advance(h.clock.Advance(frameInterval))
}

func (h *harness) pressAt(key string, at time.Duration) {
	now := h.start.Add(at)
	h.clock.Set(now)
	h.keys.Press(key, now)
	h.keys.Release(key)
}

func TestTrial_ResponseEndsTrial(t *testing.T) {
	p := DefaultParams()
	p.TrialDuration = 0
	p.ResponseEndsTrial = true
	p.Choices = keyboard.Keys("f", "j")
	p.CorrectChoice = CorrectKeys("f")

	h := newHarness(t, p)
	for i := 0; i < 3; i++ {
		h.frame()
	}
	h.pressAt("f", 50*time.Millisecond)

	require.Len(t, h.results, 1)
	res := h.results[0]
	assert.InDelta(t, 50, res.RT, 1e-9)
	assert.Equal(t, "f", res.Response)
	assert.True(t, res.Correct)
	assert.Equal(t, []int{16, 16}, res.FrameRateArray)
	assert.Equal(t, 2, res.NumberOfFrames)
	assert.Equal(t, 16.0, res.FrameRate)
	assert.NotEmpty(t, res.TrialID)

	frames, timers := h.loop.Pending()
	assert.Zero(t, frames, "no frame requested after the trial ended")
	assert.Zero(t, timers)
	assert.Zero(t, h.keys.Active())

	drawn := h.surface.Frames
	h.frame()
	h.frame()
	assert.Equal(t, drawn, h.surface.Frames)
	assert.Len(t, h.results, 1)
}

func TestTrial_TimeoutWithoutResponse(t *testing.T) {
	p := DefaultParams()
	p.TrialDuration = 500

	h := newHarness(t, p)
	for i := 0; i < 100 && !h.trial.Finished(); i++ {
		h.frame()
	}

	require.Len(t, h.results, 1)
	res := h.results[0]
	assert.Equal(t, -1.0, res.RT)
	assert.Equal(t, "", res.Response)
	assert.False(t, res.Correct)
	assert.Equal(t, len(res.FrameRateArray), res.NumberOfFrames)
	assert.Equal(t, meanInterval(res.FrameRateArray), res.FrameRate)
	// Frames at 16..512 ms; the timeout armed on the first frame fires at 516.
	assert.Equal(t, 31, res.NumberOfFrames)
	assert.Equal(t, 16.0, res.FrameRate)

	// A late key press reaches neither the listener nor the result.
	h.pressAt("f", 600*time.Millisecond)
	h.trial.onKey(keyboard.KeyPress{Key: "f", RT: 600})
	assert.Len(t, h.results, 1)
	got, ok := h.trial.Result()
	require.True(t, ok)
	assert.Equal(t, "", got.Response)
}

func TestTrial_ResponseRecordedWithoutEndingTrial(t *testing.T) {
	p := DefaultParams()
	p.TrialDuration = 100
	p.ResponseEndsTrial = false

	h := newHarness(t, p)
	h.frame()
	h.pressAt("a", 20*time.Millisecond)
	assert.Empty(t, h.results)
	h.trial.onKey(keyboard.KeyPress{Key: "b", RT: 30})

	for i := 0; i < 20 && !h.trial.Finished(); i++ {
		h.frame()
	}
	require.Len(t, h.results, 1)
	assert.Equal(t, "a", h.results[0].Response, "only the first response is kept")
	assert.InDelta(t, 20, h.results[0].RT, 1e-9)
}

func TestTrial_NoKeys(t *testing.T) {
	p := DefaultParams()
	p.Choices = keyboard.None()
	p.TrialDuration = 50

	h := newHarness(t, p)
	assert.Zero(t, h.keys.Active())
	for i := 0; i < 10 && !h.trial.Finished(); i++ {
		h.frame()
	}
	require.Len(t, h.results, 1)
	assert.Equal(t, -1.0, h.results[0].RT)
}

func TestTrial_NoKeysWithoutKeyboard(t *testing.T) {
	p := DefaultParams()
	p.Choices = keyboard.None()
	clock := timeutil.NewMockClock(time.Now())
	_, err := NewTrial(p, Host{
		Scheduler:    frameloop.New(clock),
		Clock:        clock,
		Surface:      &Recorder{},
		Finish:       func(Result) {},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	assert.NoError(t, err)

	p.Choices = keyboard.All()
	_, err = NewTrial(p, Host{
		Scheduler:    frameloop.New(clock),
		Clock:        clock,
		Surface:      &Recorder{},
		Finish:       func(Result) {},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	assert.Error(t, err)
}

func TestTrial_FlipNegatesConstantMoves(t *testing.T) {
	p := DefaultParams()
	p.TrialDuration = 0
	p.FlipTimestamps = []int{100}
	p.NumberOfApertures = 2
	p.Coherence = Seq(1.0, 0.0)
	p.OppositeCoherence = Seq(0.0, 1.0)
	p.ApertureType = Scalar(int(Rectangle))
	p.ApertureWidth = Scalar(1e9)
	p.ApertureHeight = Scalar(1e9)

	h := newHarness(t, p)
	constant, opposite := h.trial.Apertures()[0], h.trial.Apertures()[1]

	for i := 0; i < 12; i++ {
		h.frame()
		elapsed := h.clock.Since(h.start)
		wantConstant := constant.JumpX
		if elapsed >= 100*time.Millisecond {
			wantConstant = -constant.JumpX
		}
		for _, d := range constant.Dots() {
			require.Equal(t, wantConstant, d.LatestXMove, "constant dot at %v", elapsed)
		}
		for _, d := range opposite.Dots() {
			require.Equal(t, -opposite.JumpX, d.LatestXMove, "opposite dot at %v", elapsed)
		}
	}
	h.trial.Abort()
	require.Len(t, h.results, 1)
}

func TestTrial_StartTwice(t *testing.T) {
	h := newHarness(t, DefaultParams())
	assert.Error(t, h.trial.Start())
}

func TestNewTrial_ConfigurationErrors(t *testing.T) {
	p := DefaultParams()
	p.NumberOfApertures = 2
	p.Coherence = Seq(0.1, 0.2, 0.3)
	clock := timeutil.NewMockClock(time.Now())
	_, err := NewTrial(p, Host{
		Scheduler:    frameloop.New(clock),
		Keyboard:     keyboard.NewDispatcher(clock),
		Clock:        clock,
		Surface:      &Recorder{},
		Finish:       func(Result) {},
		CanvasWidth:  800,
		CanvasHeight: 600,
	})
	assert.ErrorIs(t, err, ErrApertureCount)
}

func TestTrial_DrawPass(t *testing.T) {
	p := DefaultParams()
	p.NumberOfApertures = 2
	p.NumberOfDots = Seq(5, 7)
	p.DotShape = Seq("circle", "square")
	p.DotSideLength = Scalar(4.0)
	p.ApertureType = Seq(int(Ellipse), int(Rectangle))
	p.Border = Scalar(true)
	p.BorderThickness = Scalar(2.0)
	p.FixationCross = Seq(false, true)
	p.BackgroundColor = "black"

	h := newHarness(t, p)
	h.frame()

	rec := h.surface
	assert.Equal(t, 1, rec.Frames)
	assert.Equal(t, uint8(255), rec.Background.A)
	assert.Equal(t, 5, rec.Count("FillCircle"))
	assert.Equal(t, 7, rec.Count("FillRect"))
	assert.Equal(t, 1, rec.Count("StrokeEllipse"))
	assert.Equal(t, 1, rec.Count("StrokeRect"))
	assert.Equal(t, 2, rec.Count("StrokeLine"))

	ellipse := h.trial.Apertures()[0]
	want := Op{
		Name:  "StrokeEllipse",
		Args:  []float64{400, 300, ellipse.HorizontalAxis + 1, ellipse.VerticalAxis + 1, 2},
		Color: ellipse.BorderColor,
	}
	var got Op
	for _, op := range rec.Ops {
		if op.Name == "StrokeEllipse" {
			got = op
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("border (-want +got):\n%s", diff)
	}

	var lines []Op
	for _, op := range rec.Ops {
		if op.Name == "StrokeLine" {
			lines = append(lines, op)
		}
	}
	wantLines := []Op{
		{Name: "StrokeLine", Args: []float64{380, 300, 420, 300, 1}, Color: ellipse.fixation.color},
		{Name: "StrokeLine", Args: []float64{400, 280, 400, 320, 1}, Color: ellipse.fixation.color},
	}
	if diff := cmp.Diff(wantLines, lines); diff != "" {
		t.Errorf("fixation cross (-want +got):\n%s", diff)
	}

	for _, op := range rec.Ops {
		if op.Name == "FillRect" {
			assert.Equal(t, 4.0, op.Args[2])
			assert.Equal(t, 4.0, op.Args[3])
		}
	}
}

func TestResult_JSON(t *testing.T) {
	p := DefaultParams()
	p.TrialDuration = 0
	p.Choices = keyboard.Keys("f")
	p.CorrectChoice = CorrectKeys("f")
	p.NumberOfApertures = 2
	p.Coherence = Seq(0.2, 0.8)

	h := newHarness(t, p)
	h.frame()
	h.pressAt("f", 20*time.Millisecond)
	require.Len(t, h.results, 1)

	raw, err := json.Marshal(h.results[0])
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	want := map[string]any{
		"rt":                  20.0,
		"response":            "f",
		"correct":             true,
		"choices":             []any{"f"},
		"correct_choice":      []any{"f"},
		"trial_duration":      0.0,
		"flip_timestamps":     []any{},
		"number_of_apertures": 2.0,
		"coherence":           []any{0.2, 0.8},
		"number_of_dots":      300.0,
		"RDK_type":            3.0,
		"aperture_center_x":   400.0,
		"aperture_center_y":   300.0,
		"background_color":    "gray",
		"frame_rate":          0.0,
		"frame_rate_array":    []any{},
		"number_of_frames":    0.0,
		"canvas_width":        800.0,
		"canvas_height":       600.0,
	}
	ignore := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, checked := want[k]
		return !checked
	})
	if diff := cmp.Diff(want, got, ignore); diff != "" {
		t.Errorf("result JSON (-want +got):\n%s", diff)
	}
	assert.Contains(t, got, "trial_id")
	assert.Contains(t, got, "fixation_cross_color")
}
