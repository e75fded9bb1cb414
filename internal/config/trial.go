// Package config loads trial parameter files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"RDK/internal/rdk"
)

// maxFileSize bounds trial files read from disk.
const maxFileSize = 1 * 1024 * 1024

// Load reads a YAML trial file. Keys the file leaves out keep the values from
// rdk.DefaultParams.
func Load(path string) (rdk.Params, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return rdk.Params{}, fmt.Errorf("trial file must have .yaml or .yml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return rdk.Params{}, fmt.Errorf("failed to stat trial file: %w", err)
	}
	if info.Size() > maxFileSize {
		return rdk.Params{}, fmt.Errorf("trial file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return rdk.Params{}, fmt.Errorf("failed to read trial file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return rdk.Params{}, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return p, nil
}

// Parse decodes trial YAML over the defaults. Unknown keys are rejected so a
// misspelled parameter does not silently fall back to its default.
func Parse(data []byte) (rdk.Params, error) {
	p := rdk.DefaultParams()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return rdk.Params{}, fmt.Errorf("failed to parse trial YAML: %w", err)
	}
	if err := Validate(p); err != nil {
		return rdk.Params{}, fmt.Errorf("invalid trial parameters: %w", err)
	}
	return p, nil
}

// Validate checks the trial-wide parameters. Per-aperture values are checked
// when the trial is built.
func Validate(p rdk.Params) error {
	var errs error
	if p.NumberOfApertures < 1 {
		errs = multierr.Append(errs, fmt.Errorf("number_of_apertures must be at least 1, got %d", p.NumberOfApertures))
	}
	for i, ms := range p.FlipTimestamps {
		if ms < 0 {
			errs = multierr.Append(errs, fmt.Errorf("flip_timestamps[%d] must not be negative, got %d", i, ms))
		}
	}
	if p.BackgroundColor == "" {
		errs = multierr.Append(errs, errors.New("background_color must not be empty"))
	}
	return errs
}
