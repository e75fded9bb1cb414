package rdk

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/google/uuid"

	"RDK/internal/frameloop"
	"RDK/internal/keyboard"
	"RDK/internal/palette"
	"RDK/internal/timeutil"
)

// Scheduler delivers refresh-synchronized frames and one-shot timers.
// frameloop.Loop implements it.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) frameloop.Handle
	CancelFrame(id frameloop.Handle)
	AfterFunc(d time.Duration, fn func()) frameloop.Handle
	CancelTimer(id frameloop.Handle) bool
}

// KeyboardHost hands out single key-press listeners. keyboard.Dispatcher
// implements it.
type KeyboardHost interface {
	RequestKeyPress(req keyboard.Request) keyboard.Handle
	CancelKeyPress(id keyboard.Handle)
}

// Host is everything a trial needs from its environment.
type Host struct {
	Scheduler Scheduler
	// Keyboard may be nil when choices is NO_KEYS.
	Keyboard KeyboardHost
	Clock    timeutil.Clock
	Surface  Surface
	// CompareKeys defaults to keyboard.CompareKeys.
	CompareKeys func(expected, actual string) bool
	// Finish receives the result exactly once.
	Finish func(Result)
	// Bounds defaults to CPUBounds.
	Bounds BoundsTester

	CanvasWidth, CanvasHeight int
	// Seed for the dot random sources. Zero picks one from the clock.
	Seed int64
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateFinished
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRunning:
		return "running"
	case stateFinished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Trial runs one RDK presentation from Start until a response or timeout
// ends it. All methods and callbacks run on the scheduler goroutine.
type Trial struct {
	params     Params
	host       Host
	apertures  []*Aperture
	background color.RGBA
	fixation   fixationCross

	state state
	flip  float64

	frame        frameloop.Handle
	timeout      frameloop.Handle
	timerStarted bool
	flips        []frameloop.Handle
	listener     keyboard.Handle
	listening    bool

	resp      response
	onset     time.Time
	lastTick  time.Time
	ticked    bool
	intervals []int
	result    Result
}

// NewTrial validates p, broadcasts it across apertures and builds every dot
// set. Configuration problems are collected and returned together.
func NewTrial(p Params, host Host) (*Trial, error) {
	if err := checkHost(&host, p.Choices); err != nil {
		return nil, err
	}
	p = p.withCanvasCenter(host.CanvasWidth, host.CanvasHeight)

	background, err := palette.Parse(p.BackgroundColor)
	if err != nil {
		err = fmt.Errorf("background_color: %w", err)
		Logf("rdk: %v", err)
		return nil, err
	}

	columns, err := broadcastParams(p)
	if err != nil {
		Logf("rdk: invalid trial parameters: %v", err)
		return nil, err
	}
	apertures, err := buildApertures(columns, host.Seed)
	if err != nil {
		Logf("rdk: invalid trial parameters: %v", err)
		return nil, err
	}

	return &Trial{
		params:     p,
		host:       host,
		apertures:  apertures,
		background: background,
		fixation:   apertures[len(apertures)-1].fixation,
		flip:       1,
		resp:       noResponse(),
		intervals:  []int{},
	}, nil
}

func checkHost(h *Host, choices keyboard.Choices) error {
	switch {
	case h.Scheduler == nil:
		return errors.New("host has no scheduler")
	case h.Surface == nil:
		return errors.New("host has no drawing surface")
	case h.Finish == nil:
		return errors.New("host has no finish callback")
	case h.Keyboard == nil && !choices.IsNone():
		return errors.New("host has no keyboard but choices accepts keys")
	case h.CanvasWidth <= 0 || h.CanvasHeight <= 0:
		return fmt.Errorf("canvas size %dx%d must be positive", h.CanvasWidth, h.CanvasHeight)
	}
	if h.Clock == nil {
		h.Clock = timeutil.RealClock{}
	}
	if h.CompareKeys == nil {
		h.CompareKeys = keyboard.CompareKeys
	}
	if h.Bounds == nil {
		h.Bounds = CPUBounds{}
	}
	if h.Seed == 0 {
		h.Seed = h.Clock.Now().UnixNano()
	}
	return nil
}

// Apertures returns the trial's apertures in configuration order.
func (t *Trial) Apertures() []*Aperture { return t.apertures }

// Params returns the parameters after canvas-center defaults were applied.
func (t *Trial) Params() Params { return t.params }

// Running reports whether the trial has started and not yet finished.
func (t *Trial) Running() bool { return t.state == stateRunning }

// Finished reports whether the result has been delivered.
func (t *Trial) Finished() bool { return t.state == stateFinished }

// Result returns the delivered result. ok is false until the trial finishes.
func (t *Trial) Result() (res Result, ok bool) {
	return t.result, t.state == stateFinished
}

// Onset is when Start was called. Response times are measured from it.
func (t *Trial) Onset() time.Time { return t.onset }

// FrameCount is the number of update and draw passes so far.
func (t *Trial) FrameCount() int {
	if !t.ticked {
		return 0
	}
	return len(t.intervals) + 1
}

// Start enters the running state: it arms the first frame, the key listener
// and the flip timers.
func (t *Trial) Start() error {
	if t.state != stateIdle {
		return fmt.Errorf("trial cannot start: already %s", t.state)
	}
	t.state = stateRunning
	t.onset = t.host.Clock.Now()
	t.frame = t.host.Scheduler.RequestFrame(t.tick)

	if !t.params.Choices.IsNone() {
		t.listener = t.host.Keyboard.RequestKeyPress(keyboard.Request{
			Valid:    t.params.Choices,
			Callback: t.onKey,
			RTMethod: keyboard.RTPerformance,
		})
		t.listening = true
	}

	for _, ms := range t.params.FlipTimestamps {
		id := t.host.Scheduler.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
			t.flip = -t.flip
		})
		t.flips = append(t.flips, id)
	}
	return nil
}

func (t *Trial) tick(time.Time) {
	if t.state != stateRunning {
		t.host.Scheduler.CancelFrame(t.frame)
		return
	}
	t.frame = t.host.Scheduler.RequestFrame(t.tick)

	if !t.timerStarted && t.params.TrialDuration > 0 {
		t.timeout = t.host.Scheduler.AfterFunc(time.Duration(t.params.TrialDuration)*time.Millisecond, t.finish)
		t.timerStarted = true
	}

	t.step()

	now := t.host.Clock.Now()
	if t.ticked {
		ms := float64(now.Sub(t.lastTick)) / float64(time.Millisecond)
		t.intervals = append(t.intervals, int(math.Round(ms)))
	}
	t.lastTick = now
	t.ticked = true
}

// step updates every aperture before drawing any of them.
func (t *Trial) step() {
	for _, a := range t.apertures {
		a.advance(t.flip)
		a.reinsertStrays(t.host.Bounds)
	}

	s := t.host.Surface
	s.Clear(t.background)
	for _, a := range t.apertures {
		a.draw(s)
	}
	if t.fixation.enabled {
		drawFixation(s, t.fixation, float64(t.host.CanvasWidth), float64(t.host.CanvasHeight))
	}
}

func (t *Trial) onKey(kp keyboard.KeyPress) {
	if t.state != stateRunning {
		return
	}
	if !t.resp.recorded {
		t.resp = response{recorded: true, rt: kp.RT, key: kp.Key}
	}
	if t.params.ResponseEndsTrial {
		t.finish()
	}
}

// finish cancels every pending trigger and reports the result. Later calls
// are no-ops.
func (t *Trial) finish() {
	if t.state == stateFinished {
		return
	}
	t.state = stateFinished

	t.host.Scheduler.CancelFrame(t.frame)
	if t.timerStarted {
		t.host.Scheduler.CancelTimer(t.timeout)
	}
	for _, id := range t.flips {
		t.host.Scheduler.CancelTimer(id)
	}
	if t.listening {
		t.host.Keyboard.CancelKeyPress(t.listener)
		t.listening = false
	}

	t.result = Result{
		RT:             t.resp.rt,
		Response:       t.resp.key,
		Correct:        scoreResponse(t.params.CorrectChoice, t.resp.key, t.host.CompareKeys),
		Params:         t.params,
		FrameRate:      meanInterval(t.intervals),
		FrameRateArray: t.intervals,
		NumberOfFrames: len(t.intervals),
		CanvasWidth:    t.host.CanvasWidth,
		CanvasHeight:   t.host.CanvasHeight,
		TrialID:        uuid.NewString(),
	}
	t.host.Finish(t.result)
}

// Abort ends a running trial early, reporting whatever was recorded.
func (t *Trial) Abort() {
	if t.state == stateRunning {
		t.finish()
	}
}
