package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"RDK/internal/config"
	"RDK/internal/rdk"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("rdk: %v", err)
	}
}

func run() error {
	stopProfile, err := profileTrial(*cpuProfileFlag)
	if err != nil {
		return err
	}
	defer stopProfile()

	params := rdk.DefaultParams()
	if *trialFlag != "" {
		p, err := config.Load(*trialFlag)
		if err != nil {
			return err
		}
		params = p
	}

	bounds, closeBounds := selectBounds()
	defer closeBounds()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var res rdk.Result
	if *headlessFlag {
		res, err = runHeadless(ctx, params, bounds)
	} else {
		res, err = runWindowed(params, bounds)
	}
	if err != nil {
		return err
	}
	return writeResult(res, *outFlag)
}

// selectBounds returns the OpenCL bounds tester when requested and available,
// otherwise the CPU tester.
func selectBounds() (rdk.BoundsTester, func()) {
	if !*openclFlag {
		return rdk.CPUBounds{}, func() {}
	}
	b, err := newOpenCLBounds()
	if err != nil {
		log.Printf("OpenCL bounds disabled: %v", err)
		return rdk.CPUBounds{}, func() {}
	}
	log.Printf("OpenCL bounds enabled (device: %s)", b.DeviceName())
	return b, b.Close
}

// writeResult encodes res as indented JSON to path, or stdout when path is
// empty.
func writeResult(res rdk.Result, path string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, resultFileMode); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	log.Printf("result written to %s", path)
	return nil
}
