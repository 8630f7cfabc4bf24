package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slime-launch/behavior"
	"github.com/lixenwraith/slime-launch/collision"
	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/engine"
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/vmath"
)

var stateGlyphs = [behavior.StateCount]rune{
	behavior.Idle:           'o',
	behavior.WindUp:         'O',
	behavior.Jumping:        '^',
	behavior.JumpingForward: '/',
	behavior.Falling:        'v',
	behavior.FallingForward: '\\',
	behavior.Landing:        '_',
	behavior.SplatWall:      '#',
	behavior.Injured:        'x',
	behavior.Recovering:     '~',
	behavior.Spitting:       '*',
	behavior.Spiking:        '!',
	behavior.Dead:           'X',
}

var colorStyles = map[string]tcell.Color{
	"green": tcell.ColorGreen,
	"blue":  tcell.ColorDodgerBlue,
	"pink":  tcell.ColorHotPink,
	"red":   tcell.ColorRed,
}

var (
	styleBase    = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleNeutral = styleBase.Foreground(tcell.ColorGray)
	styleHUD     = styleBase.Foreground(tcell.ColorSilver)
	styleAlert   = styleBase.Foreground(tcell.ColorYellow).Bold(true)
)

// renderer draws the level, forecast, character and HUD each presentation frame
type renderer struct {
	screen     tcell.Screen
	layerNames map[physics.Mask]string
}

func newRenderer(screen tcell.Screen, cfg *config.Config) *renderer {
	names := make(map[physics.Mask]string, len(cfg.Layers))
	for name := range cfg.Layers {
		names[cfg.Layer(name)] = name
	}
	return &renderer{screen: screen, layerNames: names}
}

// hudState is fed by the machine's frame and transition callbacks
type hudState struct {
	frame      behavior.Frame
	transition string
	paused     bool
	muted      bool
	ticks      uint64
	dropped    uint64
}

// draw renders one frame, alpha interpolates the body between physics ticks
func (r *renderer) draw(c *engine.Character, world *collision.World, hud *hudState, alpha float64) {
	r.screen.Clear()
	w, h := r.screen.Size()
	pos := c.RenderPosition(alpha)
	cam := camera{focus: pos, width: w, height: h}

	world.Bounds(func(col physics.Collider, min, max vmath.Vec2) {
		glyph, style := r.colliderStyle(col)
		x0, y0, x1, y1 := cam.cellRect(min, max)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if cam.visible(x, y) {
					r.screen.SetContent(x, y, glyph, nil, style)
				}
			}
		}
	})

	colorStyle := styleBase.Foreground(colorStyles[c.Controller.Color().String()])

	if path, ok := c.Controller.Forecast(); ok {
		for i, p := range path {
			x, y := cam.toCell(p)
			if !cam.visible(x, y) {
				continue
			}
			glyph := '.'
			if i == len(path)-1 {
				glyph = '+'
			}
			r.screen.SetContent(x, y, glyph, nil, colorStyle.Dim(true))
		}
	}

	x, y := cam.toCell(pos)
	if cam.visible(x, y) {
		r.screen.SetContent(x, y, stateGlyphs[c.Machine.Current()], nil, colorStyle.Bold(true))
	}

	r.drawHUD(c, hud, w, h)
	r.screen.Show()
}

func (r *renderer) drawHUD(c *engine.Character, hud *hudState, w, h int) {
	f := hud.frame
	lock := "-"
	if fl := c.Machine.FallLock(); fl.Locked {
		lock = "fall"
		if fl.Forward {
			lock = "fall-forward"
		}
	}

	line1 := fmt.Sprintf(" %-14s anim=%-11s v=(%+6.2f,%+6.2f) colour=%-5s grounded=%-5t grab=%-5t lock=%s",
		f.State, f.State.AnimationName(), f.VelocityX, f.VelocityY,
		c.Controller.Color(), f.Grounded, f.Grabbing, lock)
	drawText(r.screen, w, h, 0, 0, line1, styleHUD)

	line2 := fmt.Sprintf(" last=%s ticks=%d dropped=%d fall=%.2f", hud.transition, hud.ticks, hud.dropped, c.Fall.FallSpeed)
	drawText(r.screen, w, h, 0, 1, line2, styleHUD)

	var flags []string
	if hud.paused {
		flags = append(flags, "PAUSED")
	}
	if hud.muted {
		flags = append(flags, "MUTED")
	}
	if len(flags) > 0 {
		label := " " + strings.Join(flags, " ") + " "
		drawText(r.screen, w, h, w-len(label), 0, label, styleAlert)
	}

	help := " drag:mouse g:grab c:colour s:spit k:spike d:damage x:die r:respawn p:pause m:mute q:quit "
	drawText(r.screen, w, h, 0, h-1, help, styleNeutral)
}

// colliderStyle picks glyph and colour from the collider's layer
func (r *renderer) colliderStyle(col physics.Collider) (rune, tcell.Style) {
	name := r.layerNames[col.Layer]

	if color, ok := strings.CutPrefix(col.Tag, parameter.PickupTagPrefix); ok {
		return '*', styleBase.Foreground(colorStyles[color]).Bold(true)
	}

	for prefix, glyph := range map[string]rune{"tiles_": '=', "grab_": '#'} {
		if color, ok := strings.CutPrefix(name, prefix); ok {
			return glyph, styleBase.Foreground(colorStyles[color])
		}
	}
	return '█', styleNeutral
}

func drawText(s tcell.Screen, w, h, x, y int, text string, style tcell.Style) {
	if y < 0 || y >= h {
		return
	}
	col := x
	for _, r := range text {
		if col >= 0 && col < w {
			s.SetContent(col, y, r, nil, style)
		}
		col++
	}
}
