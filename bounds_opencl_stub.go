//go:build !opencl

package main

import (
	"errors"

	"RDK/internal/rdk"
)

type openCLBounds struct{}

func newOpenCLBounds() (*openCLBounds, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (b *openCLBounds) OutOfBounds(*rdk.Aperture, []rdk.Dot, []bool) error {
	return errors.New("OpenCL bounds unavailable")
}

func (b *openCLBounds) Close() {}

func (b *openCLBounds) DeviceName() string { return "" }
