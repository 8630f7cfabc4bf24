package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slime-launch/motion"
	"github.com/lixenwraith/slime-launch/vmath"
)

// Screen units per terminal cell; cells are roughly twice as tall as wide
const (
	screenUnitsPerCol = 16.0
	screenUnitsPerRow = 32.0
)

// buttonLatch turns held-state updates into one-poll edges
// A press and release between two polls are delivered on consecutive polls
// A press after an undelivered release cancels that release
type buttonLatch struct {
	held     bool
	pressed  bool
	released bool
}

func (b *buttonLatch) set(down bool) {
	switch {
	case down && !b.held:
		b.pressed = true
		b.released = false
	case !down && b.held:
		b.released = true
	}
	b.held = down
}

func (b *buttonLatch) toggle() {
	b.set(!b.held)
}

func (b *buttonLatch) poll() motion.ButtonState {
	if b.pressed {
		b.pressed = false
		return motion.ButtonState{Pressed: true, JustPressed: true}
	}
	if b.released {
		b.released = false
		return motion.ButtonState{JustReleased: true}
	}
	return motion.ButtonState{Pressed: b.held}
}

// terminalInput adapts tcell mouse events to motion.InputSource
// The left button drags; grab is a key toggle
type terminalInput struct {
	pos    vmath.Vec2
	height int
	drag   buttonLatch
	grab   buttonLatch
}

func newTerminalInput(height int) *terminalInput {
	return &terminalInput{height: height}
}

// handleMouse records the pointer in screen units with +Y up
func (in *terminalInput) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	in.pos = cellToScreen(x, y, in.height)
	in.drag.set(ev.Buttons()&tcell.Button1 != 0)
}

func (in *terminalInput) resize(height int) { in.height = height }

func (in *terminalInput) toggleGrab() { in.grab.toggle() }

func (in *terminalInput) Position() vmath.Vec2 { return in.pos }

func (in *terminalInput) DragButton() motion.ButtonState { return in.drag.poll() }

func (in *terminalInput) GrabButton() motion.ButtonState { return in.grab.poll() }

func cellToScreen(x, y, height int) vmath.Vec2 {
	return vmath.V2(float64(x)*screenUnitsPerCol, float64(height-1-y)*screenUnitsPerRow)
}

var _ motion.InputSource = (*terminalInput)(nil)
