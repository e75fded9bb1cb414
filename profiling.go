package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"sync"
)

// profileTrial records a CPU profile of the trial run to path. An empty path
// disables profiling. The returned stop flushes the profile and may be
// called more than once.
func profileTrial(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trial profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting trial profile: %w", err)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}, nil
}
