//go:build opencl

package main

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"RDK/internal/rdk"
)

const boundsKernelSource = `__kernel void aperture_bounds(
    __global const float* pos,
    __global int* outside,
    const float cx,
    const float cy,
    const float h,
    const float v,
    const int elliptical,
    const int count)
{
    int i = get_global_id(0);
    if (i >= count) {
        return;
    }
    float dx = fabs(pos[2 * i] - cx);
    float dy = fabs(pos[2 * i + 1] - cy);
    if (dx > h || dy > v) {
        outside[i] = 1;
        return;
    }
    if (!elliptical) {
        outside[i] = 0;
        return;
    }
    float yb = v * sqrt(1.0f - (dx * dx) / (h * h));
    float xb = h * sqrt(1.0f - (dy * dy) / (v * v));
    outside[i] = (dy > yb || dx > xb) ? 1 : 0;
}`

// openCLBounds evaluates whole dot sets against an aperture on an OpenCL
// device. Positions are uploaded as float32 pairs, so dots within float32
// rounding of the boundary may be classified differently from CPUBounds.
type openCLBounds struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernel     *cl.Kernel
	posBuf     *cl.MemObject
	outBuf     *cl.MemObject
	capacity   int
	deviceName string

	pos []float32
	out []int32
}

func newOpenCLBounds() (*openCLBounds, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	var device *cl.Device
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				device = devices[0]
				break
			}
		}
		if device != nil {
			break
		}
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{boundsKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	kernel, err := program.CreateKernel("aperture_bounds")
	if err != nil {
		program.Release()
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	return &openCLBounds{
		context:    context,
		queue:      queue,
		program:    program,
		kernel:     kernel,
		deviceName: device.Name(),
	}, nil
}

// ensureCapacity grows the device buffers to hold n dots.
func (b *openCLBounds) ensureCapacity(n int) error {
	if n <= b.capacity {
		return nil
	}
	b.releaseBuffers()
	posBuf, err := b.context.CreateEmptyBuffer(cl.MemReadOnly, 2*n*int(unsafe.Sizeof(float32(0))))
	if err != nil {
		return fmt.Errorf("allocating position buffer: %w", err)
	}
	outBuf, err := b.context.CreateEmptyBuffer(cl.MemWriteOnly, n*int(unsafe.Sizeof(int32(0))))
	if err != nil {
		posBuf.Release()
		return fmt.Errorf("allocating result buffer: %w", err)
	}
	b.posBuf, b.outBuf = posBuf, outBuf
	b.capacity = n
	b.pos = make([]float32, 2*n)
	b.out = make([]int32, n)
	return nil
}

func (b *openCLBounds) OutOfBounds(a *rdk.Aperture, dots []rdk.Dot, out []bool) error {
	n := len(dots)
	if n == 0 {
		return nil
	}
	if err := b.ensureCapacity(n); err != nil {
		return err
	}
	for i, d := range dots {
		b.pos[2*i] = float32(d.X)
		b.pos[2*i+1] = float32(d.Y)
	}

	elliptical := int32(0)
	if a.Shape == rdk.Circle || a.Shape == rdk.Ellipse {
		elliptical = 1
	}
	if err := b.kernel.SetArgs(
		b.posBuf,
		b.outBuf,
		float32(a.CenterX),
		float32(a.CenterY),
		float32(a.HorizontalAxis),
		float32(a.VerticalAxis),
		elliptical,
		int32(n),
	); err != nil {
		return fmt.Errorf("setting bounds kernel arguments: %w", err)
	}
	if _, err := b.queue.EnqueueWriteBufferFloat32(b.posBuf, false, 0, b.pos[:2*n], nil); err != nil {
		return fmt.Errorf("uploading positions: %w", err)
	}
	if _, err := b.queue.EnqueueNDRangeKernel(b.kernel, nil, []int{n}, nil, nil); err != nil {
		return fmt.Errorf("running bounds kernel: %w", err)
	}
	byteLen := n * int(unsafe.Sizeof(int32(0)))
	if _, err := b.queue.EnqueueReadBuffer(b.outBuf, true, 0, byteLen, unsafe.Pointer(&b.out[0]), nil); err != nil {
		return fmt.Errorf("reading bounds results: %w", err)
	}
	for i := 0; i < n; i++ {
		out[i] = b.out[i] != 0
	}
	return nil
}

func (b *openCLBounds) releaseBuffers() {
	if b.outBuf != nil {
		b.outBuf.Release()
		b.outBuf = nil
	}
	if b.posBuf != nil {
		b.posBuf.Release()
		b.posBuf = nil
	}
	b.capacity = 0
}

func (b *openCLBounds) Close() {
	b.releaseBuffers()
	if b.kernel != nil {
		b.kernel.Release()
		b.kernel = nil
	}
	if b.program != nil {
		b.program.Release()
		b.program = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.context != nil {
		b.context.Release()
		b.context = nil
	}
}

func (b *openCLBounds) DeviceName() string {
	return b.deviceName
}
