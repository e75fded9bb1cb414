package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"RDK/internal/frameloop"
	"RDK/internal/keyboard"
	"RDK/internal/rdk"
	"RDK/internal/render"
	"RDK/internal/timeutil"
)

// Game hosts one trial in an ebiten window. Update runs once per display
// refresh and drives the frame loop; Draw presents the canvas the trial drew.
type Game struct {
	clock  timeutil.Clock
	loop   *frameloop.Loop
	keys   *keyboard.Dispatcher
	canvas *render.Canvas
	trial  *rdk.Trial

	width, height int
	started       bool
	done          bool
	result        rdk.Result

	pressed  []ebiten.Key
	released []ebiten.Key
}

// newGame builds the trial against a fresh scheduler, keyboard and canvas.
func newGame(params rdk.Params, bounds rdk.BoundsTester, width, height int) (*Game, error) {
	clock := timeutil.RealClock{}
	g := &Game{
		clock:  clock,
		loop:   frameloop.New(clock),
		keys:   keyboard.NewDispatcher(clock),
		canvas: render.NewCanvas(width, height, *antialiasFlag),
		width:  width,
		height: height,
	}
	trial, err := rdk.NewTrial(params, rdk.Host{
		Scheduler:    g.loop,
		Keyboard:     g.keys,
		Clock:        clock,
		Surface:      g.canvas,
		Finish:       g.finish,
		Bounds:       bounds,
		CanvasWidth:  width,
		CanvasHeight: height,
		Seed:         *seedFlag,
	})
	if err != nil {
		return nil, fmt.Errorf("building trial: %w", err)
	}
	g.trial = trial
	return g, nil
}

func (g *Game) finish(res rdk.Result) {
	g.result = res
	g.done = true
}

// Update starts the trial on the first refresh, delivers key events and
// advances the frame loop.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}
	now := g.clock.Now()
	if !g.started {
		if err := g.trial.Start(); err != nil {
			return err
		}
		g.started = true
	}
	g.pollKeys(now)
	g.loop.Advance(now)
	if g.done {
		return ebiten.Termination
	}
	return nil
}

// Layout pins the logical screen to the canvas size.
func (g *Game) Layout(_, _ int) (int, int) { return g.width, g.height }

// runWindowed shows the trial until it finishes or the window is closed. A
// closed window aborts the trial and still yields a result.
func runWindowed(params rdk.Params, bounds rdk.BoundsTester) (rdk.Result, error) {
	g, err := newGame(params, bounds, *widthFlag, *heightFlag)
	if err != nil {
		return rdk.Result{}, err
	}

	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetFullscreen(*fullscreenFlag)
	if err := ebiten.RunGame(g); err != nil {
		return rdk.Result{}, fmt.Errorf("running window: %w", err)
	}

	if !g.done {
		log.Printf("window closed before the trial ended; aborting")
		g.trial.Abort()
	}
	return g.result, nil
}
