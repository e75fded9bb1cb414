package main

import "time"

// Host configuration constants. Trial parameters come from the YAML trial file;
// these only shape the window and the headless runner.
const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600
	defaultHeadlessFPS  = 60.0
	keyQueueSize        = 16
	windowTitle         = "Random-Dot Kinematogram"
	resultFileMode      = 0o644
	minHeadlessInterval = time.Millisecond
)
