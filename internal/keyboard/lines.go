package keyboard

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"
)

// LineSource turns lines of text into key presses, one key per line. It backs
// the headless runner, where responses arrive on stdin.
type LineSource struct {
	keys chan string
}

// NewLineSource returns a source buffering up to size pending keys.
func NewLineSource(size int) *LineSource {
	if size < 1 {
		size = 1
	}
	return &LineSource{keys: make(chan string, size)}
}

// ReadFrom scans r until EOF or ctx is done. Blank lines are skipped and the
// word "space" stands for the space bar.
func (s *LineSource) ReadFrom(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		if strings.EqualFold(key, "space") {
			key = " "
		}
		select {
		case s.keys <- key:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// Drain delivers every queued key to d as a press followed by a release.
func (s *LineSource) Drain(d *Dispatcher, now time.Time) int {
	n := 0
	for {
		select {
		case key := <-s.keys:
			d.Press(key, now)
			d.Release(key)
			n++
		default:
			return n
		}
	}
}
