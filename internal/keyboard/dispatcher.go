package keyboard

import (
	"strings"
	"time"

	"RDK/internal/timeutil"
)

// RTPerformance measures response time against the dispatcher clock.
const RTPerformance = "performance"

// Handle identifies an active key-press request.
type Handle uint64

// KeyPress is delivered to a request callback.
type KeyPress struct {
	Key string
	// RT is the time in milliseconds between the request and the key press.
	RT float64
}

// Request describes which presses a listener wants.
type Request struct {
	Valid    Choices
	Callback func(KeyPress)
	RTMethod string
	// Persist keeps the listener after the first valid press.
	Persist bool
	// AllowHeldKey accepts auto-repeat presses of a key that is still down.
	AllowHeldKey bool
}

type listener struct {
	id    Handle
	req   Request
	start time.Time
}

// Dispatcher fans key events out to listeners. Like frameloop.Loop it is
// driven from a single goroutine: the host polls its input source and calls
// Press/Release on the loop goroutine.
type Dispatcher struct {
	clock     timeutil.Clock
	nextID    Handle
	listeners []*listener
	held      map[string]bool
}

// NewDispatcher returns a dispatcher that timestamps requests with clock.
func NewDispatcher(clock timeutil.Clock) *Dispatcher {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Dispatcher{clock: clock, held: make(map[string]bool)}
}

// RequestKeyPress registers a listener; RT is measured from this call.
func (d *Dispatcher) RequestKeyPress(req Request) Handle {
	d.nextID++
	d.listeners = append(d.listeners, &listener{id: d.nextID, req: req, start: d.clock.Now()})
	return d.nextID
}

// CancelKeyPress removes a listener. Unknown handles are ignored.
func (d *Dispatcher) CancelKeyPress(id Handle) {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Active reports the number of registered listeners.
func (d *Dispatcher) Active() int { return len(d.listeners) }

func (d *Dispatcher) registered(id Handle) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Press delivers a key-down event observed at the given time.
func (d *Dispatcher) Press(key string, at time.Time) {
	norm := strings.ToLower(key)
	repeat := d.held[norm]
	d.held[norm] = true

	snapshot := append([]*listener(nil), d.listeners...)
	for _, l := range snapshot {
		if !d.registered(l.id) {
			continue
		}
		if repeat && !l.req.AllowHeldKey {
			continue
		}
		if !l.req.Valid.Allows(key) {
			continue
		}
		if !l.req.Persist {
			d.CancelKeyPress(l.id)
		}
		rt := float64(at.Sub(l.start)) / float64(time.Millisecond)
		if l.req.Callback != nil {
			l.req.Callback(KeyPress{Key: key, RT: rt})
		}
	}
}

// Release delivers a key-up event.
func (d *Dispatcher) Release(key string) {
	delete(d.held, strings.ToLower(key))
}
