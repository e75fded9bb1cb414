package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw presents the frame the trial drew during the last Update.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas.Image(), nil)

	if *debugFlag {
		state := "running"
		switch {
		case !g.started:
			state = "waiting"
		case g.done:
			state = "finished"
		}
		msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nFrames: %d\nTrial: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.trial.FrameCount(), state)
		ebitenutil.DebugPrint(screen, msg)
	}
}
