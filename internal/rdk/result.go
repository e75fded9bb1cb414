package rdk

import (
	"gonum.org/v1/gonum/stat"
)

// Result is the flat record handed to the host when a trial ends. It echoes
// every parameter next to the measured response and frame timing.
type Result struct {
	RT       float64 `json:"rt"`
	Response string  `json:"response"`
	Correct  bool    `json:"correct"`

	Params

	// FrameRate is the mean inter-frame interval in ms.
	FrameRate      float64 `json:"frame_rate"`
	FrameRateArray []int   `json:"frame_rate_array"`
	NumberOfFrames int     `json:"number_of_frames"`
	CanvasWidth    int     `json:"canvas_width"`
	CanvasHeight   int     `json:"canvas_height"`
	TrialID        string  `json:"trial_id"`
}

// meanInterval returns the mean of intervals, or 0 when none were logged.
func meanInterval(intervals []int) float64 {
	if len(intervals) == 0 {
		return 0
	}
	xs := make([]float64, len(intervals))
	for i, v := range intervals {
		xs[i] = float64(v)
	}
	return stat.Mean(xs, nil)
}
