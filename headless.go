package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"

	"RDK/internal/frameloop"
	"RDK/internal/keyboard"
	"RDK/internal/rdk"
	"RDK/internal/timeutil"
)

// headlessRunner drives a trial from a ticker instead of a display. Key
// presses arrive as lines on an io.Reader.
type headlessRunner struct {
	clock    timeutil.Clock
	interval time.Duration
	input    io.Reader
	surface  *rdk.Recorder
}

func runHeadless(ctx context.Context, params rdk.Params, bounds rdk.BoundsTester) (rdk.Result, error) {
	r := headlessRunner{
		clock:    timeutil.RealClock{},
		interval: headlessInterval(*headlessFPSFlag),
		input:    os.Stdin,
		surface:  &rdk.Recorder{},
	}
	res, err := r.run(ctx, params, bounds, *widthFlag, *heightFlag, *seedFlag)
	if err != nil {
		return rdk.Result{}, err
	}
	logFrameSummary(res)
	return res, nil
}

func headlessInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = defaultHeadlessFPS
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < minHeadlessInterval {
		d = minHeadlessInterval
	}
	return d
}

func (r headlessRunner) run(ctx context.Context, params rdk.Params, bounds rdk.BoundsTester, width, height int, seed int64) (rdk.Result, error) {
	loop := frameloop.New(r.clock)
	keys := keyboard.NewDispatcher(r.clock)

	var (
		result rdk.Result
		done   bool
	)
	trial, err := rdk.NewTrial(params, rdk.Host{
		Scheduler: loop,
		Keyboard:  keys,
		Clock:     r.clock,
		Surface:   r.surface,
		Finish: func(res rdk.Result) {
			result = res
			done = true
		},
		Bounds:       bounds,
		CanvasWidth:  width,
		CanvasHeight: height,
		Seed:         seed,
	})
	if err != nil {
		return rdk.Result{}, fmt.Errorf("building trial: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := keyboard.NewLineSource(keyQueueSize)
	// A scanner blocked in Read ignores ctx. Closing a reader the runner
	// was handed unblocks it; stdin is left open and its goroutine ends
	// with the process.
	if c, ok := r.input.(io.Closer); ok && r.input != io.Reader(os.Stdin) {
		defer c.Close()
	}
	go func() {
		err := lines.ReadFrom(ctx, r.input)
		switch {
		case err == nil, errors.Is(err, context.Canceled), errors.Is(err, io.ErrClosedPipe), errors.Is(err, os.ErrClosed):
		default:
			log.Printf("reading keys: %v", err)
		}
	}()

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()
	if err := trial.Start(); err != nil {
		return rdk.Result{}, err
	}
	for !done {
		select {
		case <-ctx.Done():
			log.Printf("interrupted; aborting trial")
			trial.Abort()
		case now := <-ticker.C():
			lines.Drain(keys, now)
			loop.Advance(now)
		}
	}
	return result, nil
}

// logFrameSummary reports frame interval statistics for a finished trial.
func logFrameSummary(res rdk.Result) {
	if len(res.FrameRateArray) == 0 {
		log.Printf("trial %s: no frame intervals recorded", res.TrialID)
		return
	}
	xs := make([]float64, len(res.FrameRateArray))
	for i, v := range res.FrameRateArray {
		xs[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	log.Printf("trial %s: %d intervals, mean %.2f ms, sd %.2f ms, rt %.1f ms, response %q",
		res.TrialID, len(xs), mean, std, res.RT, res.Response)
}
