// Package motion turns drag and grab input into launches and grabs on a physics body
package motion

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/telemetry"
	"github.com/lixenwraith/slime-launch/vmath"
)

// Settings is the static tuning of a controller
type Settings struct {
	LaunchPower    float64
	FixedStep      float64 // Physics tick interval (s), scales launch velocity
	GrabRadius     float64
	FacingDeadZone float64
	GroundMasks    MaskTable
	GrabMasks      MaskTable
	SpawnColor     Color
}

// SettingsFromConfig extracts controller settings from a validated config
func SettingsFromConfig(cfg *config.Config) Settings {
	spawn, _ := ParseColor(cfg.Motion.SpawnColor)
	return Settings{
		LaunchPower:    cfg.Motion.LaunchPower,
		FixedStep:      cfg.Engine.FixedStep.Seconds(),
		GrabRadius:     cfg.Motion.GrabRadius,
		FacingDeadZone: cfg.Motion.FacingDeadZone,
		GroundMasks:    MaskTable(cfg.GroundMasks),
		GrabMasks:      MaskTable(cfg.GrabbableMasks),
		SpawnColor:     spawn,
	}
}

// Controller owns drag, grab and colour state for one character
// Physics methods run in the fixed tick, the rest in the presentation tick
type Controller struct {
	settings   Settings
	body       Body
	input      InputSource
	query      physics.CollisionQuery
	forecaster *physics.Forecaster
	gravity    *physics.GravityProfile
	fall       *physics.FallState

	color Color

	dragging    bool
	dragOrigin  vmath.Vec2
	dragVector  vmath.Vec2
	path        physics.Path
	pathVisible bool

	grabbing bool
	grabbed  physics.Collider

	facing int

	reported map[string]struct{}
	log      zerolog.Logger
	metrics  *telemetry.Metrics
}

// NewController wires a controller to its body, input and forecaster
// Grab queries use the forecaster's collision query; gravity uses its profile
// fall is the character's fall-speed state, shared with nothing else
func NewController(s Settings, body Body, input InputSource, fc *physics.Forecaster, fall *physics.FallState, log zerolog.Logger, metrics *telemetry.Metrics) *Controller {
	c := &Controller{
		settings:   s,
		body:       body,
		input:      input,
		forecaster: fc,
		fall:       fall,
		facing:     1,
		reported:   make(map[string]struct{}),
		log:        log.With().Str("component", "motion").Logger(),
		metrics:    metrics,
	}
	if fc != nil {
		c.query = fc.Query
		c.gravity = fc.Gravity
	}
	if c.fall == nil {
		c.fall = &physics.FallState{}
	}
	c.color = Green
	c.SetColor(s.SpawnColor)
	return c
}

// --- Physics tick ---

// PhysicsTick applies gravity to the real velocity unless grabbing
func (c *Controller) PhysicsTick(dt float64) {
	if c.grabbing {
		return
	}
	c.body.SetVelocity(physics.StepVelocity(c.body.Velocity(), dt, c.gravity, c.fall))
}

// --- Presentation tick ---

// PollInput maps button edges to drag and grab operations, then refreshes facing
func (c *Controller) PollInput(frameDt float64) {
	if c.input != nil {
		drag := c.input.DragButton()
		switch {
		case drag.JustPressed && !c.dragging:
			c.BeginDrag()
		case drag.JustReleased && c.dragging:
			c.EndDrag()
		case c.dragging:
			c.UpdateDrag(frameDt)
		}

		grab := c.input.GrabButton()
		if grab.JustPressed && !c.grabbing {
			c.TryGrab()
		} else if grab.JustReleased && c.grabbing {
			c.ReleaseGrab()
		}
	}

	c.updateFacing()
}

// BeginDrag records the drag origin and shows a zero-velocity preview
func (c *Controller) BeginDrag() {
	c.dragging = true
	c.dragOrigin = c.pointer()
	c.dragVector = vmath.Zero
	c.forecast(vmath.Zero, 0)
	c.log.Debug().Float64("x", c.dragOrigin[0]).Float64("y", c.dragOrigin[1]).Msg("drag started")
}

// UpdateDrag recomputes the drag vector and the preview from the real position
func (c *Controller) UpdateDrag(frameDt float64) {
	if !c.dragging {
		return
	}
	c.dragVector = c.dragOrigin.Sub(c.pointer())
	c.forecast(c.LaunchVelocity(c.dragVector), frameDt)
}

// EndDrag launches: releases any grab, writes the launch velocity and resets fall speed
// Returns the velocity written
func (c *Controller) EndDrag() vmath.Vec2 {
	if !c.dragging {
		return c.body.Velocity()
	}
	c.dragVector = c.dragOrigin.Sub(c.pointer())
	c.dragging = false

	if c.grabbing {
		c.ReleaseGrab()
	}

	launch := c.LaunchVelocity(c.dragVector)
	c.body.SetVelocity(launch)
	c.fall.Reset()

	c.path = nil
	c.pathVisible = false

	c.log.Debug().Float64("vx", launch[0]).Float64("vy", launch[1]).Msg("launched")
	return launch
}

// LaunchVelocity converts a drag vector: drag * power * fixed step
func (c *Controller) LaunchVelocity(drag vmath.Vec2) vmath.Vec2 {
	return drag.Mul(c.settings.LaunchPower * c.settings.FixedStep)
}

// TryGrab searches the grab radius for a grabbable collider in the colour's grab mask
// On success velocity is zeroed and gravity is suspended until release
func (c *Controller) TryGrab() bool {
	if c.grabbing {
		return true
	}
	if c.query == nil {
		return false
	}

	for _, col := range c.query.OverlapCircle(c.body.Position(), c.settings.GrabRadius, c.GrabMask()) {
		if col.Tag != physics.TagGrabbable {
			continue
		}
		c.grabbing = true
		c.grabbed = col
		c.body.SetVelocity(vmath.Zero)
		c.fall.Reset()
		c.log.Debug().Int("collider", col.ID).Msg("grabbed")
		return true
	}
	return false
}

// ReleaseGrab resumes gravity from the next physics tick
func (c *Controller) ReleaseGrab() {
	if !c.grabbing {
		return
	}
	c.grabbing = false
	c.log.Debug().Int("collider", c.grabbed.ID).Msg("grab released")
	c.grabbed = physics.Collider{}
}

// SetColor selects the mask rows used by ground sensing and grabbing
// Out-of-range values are reported once and ignored
func (c *Controller) SetColor(col Color) {
	if !col.Valid() {
		c.reportOnce("color", "colour out of range, keeping current", int(col))
		return
	}
	if col != c.color {
		c.log.Debug().Stringer("from", c.color).Stringer("to", col).Msg("colour changed")
	}
	c.color = col
}

// CycleColor advances to the next colour
func (c *Controller) CycleColor() {
	c.SetColor(c.color.Next())
}

// ApplyPickup sets the colour named by a pickup tag, reports whether the tag was a pickup
func (c *Controller) ApplyPickup(tag string) bool {
	name, ok := strings.CutPrefix(tag, parameter.PickupTagPrefix)
	if !ok {
		return false
	}
	col, ok := ParseColor(name)
	if !ok {
		c.reportOnce("pickup:"+name, "pickup names unknown colour", -1)
		return false
	}
	c.SetColor(col)
	return true
}

// --- Accessors ---

func (c *Controller) Color() Color { return c.color }

// GroundMask returns the current colour's ground mask
func (c *Controller) GroundMask() physics.Mask {
	m, ok := c.settings.GroundMasks.For(c.color)
	if !ok {
		c.reportOnce("ground_mask", "ground mask lookup out of range, matching everything", int(c.color))
	}
	return m
}

// GrabMask returns the current colour's grabbable mask
func (c *Controller) GrabMask() physics.Mask {
	m, ok := c.settings.GrabMasks.For(c.color)
	if !ok {
		c.reportOnce("grab_mask", "grab mask lookup out of range, matching everything", int(c.color))
	}
	return m
}

func (c *Controller) IsDragging() bool { return c.dragging }
func (c *Controller) IsGrabbing() bool { return c.grabbing }
func (c *Controller) Grabbed() physics.Collider { return c.grabbed }
func (c *Controller) DragVector() vmath.Vec2 { return c.dragVector }
func (c *Controller) FallState() *physics.FallState { return c.fall }

// Forecast returns the current preview and whether it should be drawn
func (c *Controller) Forecast() (physics.Path, bool) {
	return c.path, c.pathVisible
}

// Facing returns -1 or 1, unchanged while |vx| is inside the dead zone
func (c *Controller) Facing() int {
	return c.facing
}

func (c *Controller) updateFacing() {
	vx := c.body.Velocity()[0]
	if vmath.Abs(vx) <= c.settings.FacingDeadZone {
		return
	}
	c.facing = vmath.Sign(vx)
}

func (c *Controller) pointer() vmath.Vec2 {
	if c.input == nil {
		return vmath.Zero
	}
	return c.input.Position()
}

func (c *Controller) forecast(vel vmath.Vec2, frameDt float64) {
	if c.forecaster == nil {
		c.path, c.pathVisible = nil, false
		return
	}
	path, term := c.forecaster.Forecast(c.body.Position(), vel, frameDt)
	c.path = path
	c.pathVisible = true
	c.metrics.Forecast(term.String())
}

// reportOnce logs a configuration problem the first time key is seen
func (c *Controller) reportOnce(key, msg string, value int) {
	if _, seen := c.reported[key]; seen {
		return
	}
	c.reported[key] = struct{}{}
	c.log.Warn().Str("key", key).Int("value", value).Msg(msg)
}
