// Package rdk simulates and draws random-dot kinematograms: fields of moving
// dots where a configurable fraction share a coherent direction, presented in
// one or more apertures while a keyboard response is timed against stimulus
// onset.
package rdk

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"RDK/internal/keyboard"
)

// PerAperture holds a parameter given either as one value shared by every
// aperture or as one value per aperture.
type PerAperture[T any] struct {
	values []T
	scalar bool
}

// Scalar returns a parameter shared by every aperture.
func Scalar[T any](v T) PerAperture[T] {
	return PerAperture[T]{values: []T{v}, scalar: true}
}

// Seq returns a parameter with one value per aperture. The slice is kept, not
// copied.
func Seq[T any](vs ...T) PerAperture[T] {
	if vs == nil {
		vs = []T{}
	}
	return PerAperture[T]{values: vs}
}

// IsSet reports whether a value was provided.
func (p PerAperture[T]) IsSet() bool { return p.scalar || p.values != nil }

// IsScalar reports whether the parameter was given as a single value.
func (p PerAperture[T]) IsScalar() bool { return p.scalar }

// Values returns the underlying values: one element for a scalar.
func (p PerAperture[T]) Values() []T { return p.values }

// UnmarshalYAML accepts a scalar or a sequence.
func (p *PerAperture[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var vs []T
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*p = Seq(vs...)
		return nil
	}
	var v T
	if err := value.Decode(&v); err != nil {
		return err
	}
	*p = Scalar(v)
	return nil
}

// MarshalJSON writes the value in the form it was given.
func (p PerAperture[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !p.IsSet():
		return []byte("null"), nil
	case p.scalar:
		return json.Marshal(p.values[0])
	}
	return json.Marshal(p.values)
}

// CorrectChoice keeps correct_choice exactly as configured; it is validated
// only when a response is scored.
type CorrectChoice struct {
	raw any
	set bool
}

// CorrectKeys returns a correct_choice listing keys.
func CorrectKeys(keys ...string) CorrectChoice {
	raw := make([]any, len(keys))
	for i, k := range keys {
		raw[i] = k
	}
	return CorrectChoice{raw: raw, set: true}
}

// RawCorrectChoice wraps an arbitrary configured value, such as a list of
// numeric key codes.
func RawCorrectChoice(v any) CorrectChoice {
	return CorrectChoice{raw: v, set: true}
}

// UnmarshalYAML stores the decoded node without interpreting it.
func (c *CorrectChoice) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("decoding correct_choice: %w", err)
	}
	*c = CorrectChoice{raw: raw, set: true}
	return nil
}

// MarshalJSON writes the configured value.
func (c CorrectChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.raw)
}

// Params is the full trial configuration. Field names follow the trial file
// keys.
type Params struct {
	Choices           keyboard.Choices `yaml:"choices" json:"choices"`
	CorrectChoice     CorrectChoice    `yaml:"correct_choice" json:"correct_choice"`
	TrialDuration     int              `yaml:"trial_duration" json:"trial_duration"`
	FlipTimestamps    []int            `yaml:"flip_timestamps" json:"flip_timestamps"`
	ResponseEndsTrial bool             `yaml:"response_ends_trial" json:"response_ends_trial"`
	NumberOfApertures int              `yaml:"number_of_apertures" json:"number_of_apertures"`
	BackgroundColor   string           `yaml:"background_color" json:"background_color"`

	NumberOfDots      PerAperture[int]     `yaml:"number_of_dots" json:"number_of_dots"`
	NumberOfSets      PerAperture[int]     `yaml:"number_of_sets" json:"number_of_sets"`
	CoherentDirection PerAperture[float64] `yaml:"coherent_direction" json:"coherent_direction"`
	Coherence         PerAperture[float64] `yaml:"coherence" json:"coherence"`
	OppositeCoherence PerAperture[float64] `yaml:"opposite_coherence" json:"opposite_coherence"`
	DotRadius         PerAperture[float64] `yaml:"dot_radius" json:"dot_radius"`
	DotSideLength     PerAperture[float64] `yaml:"dot_side_length" json:"dot_side_length"`
	DotLife           PerAperture[int]     `yaml:"dot_life" json:"dot_life"`
	MoveDistance      PerAperture[float64] `yaml:"move_distance" json:"move_distance"`
	ApertureWidth     PerAperture[float64] `yaml:"aperture_width" json:"aperture_width"`
	ApertureHeight    PerAperture[float64] `yaml:"aperture_height" json:"aperture_height"`
	DotColor          PerAperture[string]  `yaml:"dot_color" json:"dot_color"`
	DotShape          PerAperture[string]  `yaml:"dot_shape" json:"dot_shape"`
	RDKType           PerAperture[int]     `yaml:"RDK_type" json:"RDK_type"`
	ApertureType      PerAperture[int]     `yaml:"aperture_type" json:"aperture_type"`
	ReinsertType      PerAperture[int]     `yaml:"reinsert_type" json:"reinsert_type"`
	ApertureCenterX   PerAperture[float64] `yaml:"aperture_center_x" json:"aperture_center_x"`
	ApertureCenterY   PerAperture[float64] `yaml:"aperture_center_y" json:"aperture_center_y"`

	FixationCross          PerAperture[bool]    `yaml:"fixation_cross" json:"fixation_cross"`
	FixationCrossWidth     PerAperture[float64] `yaml:"fixation_cross_width" json:"fixation_cross_width"`
	FixationCrossHeight    PerAperture[float64] `yaml:"fixation_cross_height" json:"fixation_cross_height"`
	FixationCrossColor     PerAperture[string]  `yaml:"fixation_cross_color" json:"fixation_cross_color"`
	FixationCrossThickness PerAperture[float64] `yaml:"fixation_cross_thickness" json:"fixation_cross_thickness"`
	Border                 PerAperture[bool]    `yaml:"border" json:"border"`
	BorderThickness        PerAperture[float64] `yaml:"border_thickness" json:"border_thickness"`
	BorderColor            PerAperture[string]  `yaml:"border_color" json:"border_color"`
}

// DefaultParams returns the defaults applied to every parameter a trial file
// leaves out. Aperture centers stay unset and resolve to the canvas center.
func DefaultParams() Params {
	return Params{
		Choices:           keyboard.All(),
		TrialDuration:     500,
		FlipTimestamps:    []int{},
		ResponseEndsTrial: true,
		NumberOfApertures: 1,
		BackgroundColor:   "gray",

		NumberOfDots:      Scalar(300),
		NumberOfSets:      Scalar(1),
		CoherentDirection: Scalar(0.0),
		Coherence:         Scalar(0.5),
		OppositeCoherence: Scalar(0.0),
		DotRadius:         Scalar(2.0),
		DotSideLength:     Scalar(1.0),
		DotLife:           Scalar(-1),
		MoveDistance:      Scalar(1.0),
		ApertureWidth:     Scalar(600.0),
		ApertureHeight:    Scalar(400.0),
		DotColor:          Scalar("white"),
		DotShape:          Scalar("circle"),
		RDKType:           Scalar(3),
		ApertureType:      Scalar(2),
		ReinsertType:      Scalar(2),

		FixationCross:          Scalar(false),
		FixationCrossWidth:     Scalar(20.0),
		FixationCrossHeight:    Scalar(20.0),
		FixationCrossColor:     Scalar("black"),
		FixationCrossThickness: Scalar(1.0),
		Border:                 Scalar(false),
		BorderThickness:        Scalar(1.0),
		BorderColor:            Scalar("black"),
	}
}

// withCanvasCenter fills unset aperture centers with the canvas center.
func (p Params) withCanvasCenter(width, height int) Params {
	if !p.ApertureCenterX.IsSet() {
		p.ApertureCenterX = Scalar(float64(width) / 2)
	}
	if !p.ApertureCenterY.IsSet() {
		p.ApertureCenterY = Scalar(float64(height) / 2)
	}
	return p
}
