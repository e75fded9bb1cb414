// Package frameloop drives refresh-synchronized callbacks and one-shot timers
// from a single goroutine.
//
// The host calls Advance once per display refresh. Timers whose deadline has
// passed fire first, in deadline order, followed by every frame callback that
// was requested before the call. Callbacks may request further frames or arm
// timers; those run on a later Advance.
package frameloop

import (
	"sort"
	"time"

	"RDK/internal/timeutil"
)

// Handle identifies a pending frame request or timer. The zero Handle is never
// issued, so it can be used as "none".
type Handle uint64

type frameRequest struct {
	id Handle
	fn func(now time.Time)
}

type timer struct {
	id       Handle
	deadline time.Time
	fn       func()
}

// Loop owns the pending frame requests and timers. It is not safe for
// concurrent use; every method must be called from the loop goroutine.
type Loop struct {
	clock  timeutil.Clock
	nextID Handle
	frames []frameRequest
	timers []timer
}

// New returns a Loop that measures timer deadlines against clock.
func New(clock timeutil.Clock) *Loop {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Loop{clock: clock}
}

func (l *Loop) issue() Handle {
	l.nextID++
	return l.nextID
}

// RequestFrame schedules fn for the next Advance.
func (l *Loop) RequestFrame(fn func(now time.Time)) Handle {
	id := l.issue()
	l.frames = append(l.frames, frameRequest{id: id, fn: fn})
	return id
}

// CancelFrame drops a pending frame request. Unknown handles are ignored.
func (l *Loop) CancelFrame(id Handle) {
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// AfterFunc arms a one-shot timer that runs fn on the first Advance at or after
// now+d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	id := l.issue()
	l.timers = append(l.timers, timer{id: id, deadline: l.clock.Now().Add(d), fn: fn})
	return id
}

// CancelTimer disarms a timer. Returns false if it already fired or was
// cancelled.
func (l *Loop) CancelTimer(id Handle) bool {
	for i, t := range l.timers {
		if t.id == id {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports the number of outstanding frame requests and timers.
func (l *Loop) Pending() (frames, timers int) {
	return len(l.frames), len(l.timers)
}

// Advance fires due timers and then the frame callbacks queued before the call.
func (l *Loop) Advance(now time.Time) {
	l.fireTimers(now)

	if len(l.frames) == 0 {
		return
	}
	batch := l.frames
	l.frames = nil
	for _, f := range batch {
		f.fn(now)
	}
}

func (l *Loop) fireTimers(now time.Time) {
	if len(l.timers) == 0 {
		return
	}
	var due []timer
	for _, t := range l.timers {
		if !now.Before(t.deadline) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		// An earlier callback may have cancelled this one.
		if !l.CancelTimer(t.id) {
			continue
		}
		t.fn()
	}
}
