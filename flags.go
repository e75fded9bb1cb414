package main

import "flag"

// Command-line flags that select the trial, the runner and optional
// diagnostics.
var (
	// trialFlag names the YAML trial file. Every parameter has a default, so it
	// may be left empty.
	trialFlag = flag.String("trial", "", "YAML trial parameter file")

	// outFlag redirects the result JSON from stdout to a file.
	outFlag = flag.String("out", "", "write the trial result JSON to this file instead of stdout")

	widthFlag  = flag.Int("width", defaultCanvasWidth, "canvas width in pixels")
	heightFlag = flag.Int("height", defaultCanvasHeight, "canvas height in pixels")

	// fullscreenFlag presents the canvas fullscreen, the usual setup for a
	// participant session.
	fullscreenFlag = flag.Bool("fullscreen", false, "run the window fullscreen")

	// headlessFlag runs the trial without a window. Key presses are read from
	// stdin, one key name per line.
	headlessFlag = flag.Bool("headless", false, "run without a window, reading key names from stdin")

	// headlessFPSFlag sets the simulated refresh rate of the headless runner.
	headlessFPSFlag = flag.Float64("headless-fps", defaultHeadlessFPS, "refresh rate of the headless runner")

	// seedFlag fixes the dot random sources; zero seeds from the clock.
	seedFlag = flag.Int64("seed", 0, "random seed for dot placement (0 = time based)")

	// openclFlag evaluates aperture bounds on an OpenCL device when the binary
	// was built with -tags opencl.
	openclFlag = flag.Bool("opencl", false, "evaluate aperture bounds with OpenCL (requires -tags opencl)")

	antialiasFlag = flag.Bool("antialias", true, "antialias dots and outlines")

	// debugFlag enables the FPS and frame count overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and frame overlay")

	// cpuProfileFlag writes a CPU profile of the whole run.
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
