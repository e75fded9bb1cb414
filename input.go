package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollKeys forwards the key transitions of this tick to the dispatcher.
func (g *Game) pollKeys(now time.Time) {
	g.pressed = inpututil.AppendJustPressedKeys(g.pressed[:0])
	for _, k := range g.pressed {
		g.keys.Press(keyName(k), now)
	}
	g.released = inpututil.AppendJustReleasedKeys(g.released[:0])
	for _, k := range g.released {
		g.keys.Release(keyName(k))
	}
}

// keyName maps an ebiten key to the name a trial file uses for it: lower-case
// letters, bare digits, " " for the space bar and ebiten's names otherwise
// (ArrowLeft, Enter, Escape).
func keyName(k ebiten.Key) string {
	name := k.String()
	switch {
	case len(name) == 1:
		return strings.ToLower(name)
	case strings.HasPrefix(name, "Digit") && len(name) == len("Digit")+1:
		return name[len("Digit"):]
	case name == "Space":
		return " "
	}
	return name
}
