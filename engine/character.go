package engine

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/behavior"
	"github.com/lixenwraith/slime-launch/config"
	"github.com/lixenwraith/slime-launch/motion"
	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/telemetry"
	"github.com/lixenwraith/slime-launch/vmath"
)

// ColliderRemover is implemented by collision queries whose colliders can be removed
// Consumed pickups are removed when the query supports it
type ColliderRemover interface {
	Remove(id int) bool
}

// Character is the per-character simulation context
// Everything here is owned by one character; nothing is shared between characters
type Character struct {
	Body    *physics.Kinetic
	Gravity physics.GravityProfile
	Fall    physics.FallState
	Ground  physics.GroundState
	Sensor  *physics.GroundSensor
	Probe   physics.GroundProbe

	Forecaster *physics.Forecaster
	Controller *motion.Controller
	Machine    *behavior.Machine

	query      physics.CollisionQuery
	pickupMask physics.Mask
	spawn      vmath.Vec2
	prevPos    vmath.Vec2 // Body position before the latest physics tick
	spawnColor motion.Color

	log zerolog.Logger
}

// NewCharacter wires body, sensor, forecaster, controller and machine from a validated config
func NewCharacter(cfg *config.Config, spawn vmath.Vec2, input motion.InputSource, query physics.CollisionQuery, log zerolog.Logger, metrics *telemetry.Metrics) *Character {
	c := &Character{
		Body:       physics.NewKinetic(spawn),
		Gravity:    cfg.GravityProfile(),
		Sensor:     physics.NewGroundSensor(cfg.GroundProfile()),
		Probe:      cfg.GroundProbe(),
		query:      query,
		pickupMask: cfg.Layer("pickup"),
		spawn:      spawn,
		prevPos:    spawn,
		log:        log.With().Str("component", "character").Logger(),
	}

	fc := physics.NewForecaster(&c.Gravity, query, physics.MaskAll)
	fc.MaxSteps = cfg.Forecast.MaxSteps
	fc.MinHitDistance = cfg.Forecast.MinHitDistance
	fc.Mode = cfg.StepMode()
	fc.FixedStep = cfg.Engine.FixedStep.Seconds()
	fc.UseShapeCast = cfg.Forecast.UseShapeCast
	fc.ShapeHalfExtents = c.Body.HalfExtents
	fc.StartOffset = vmath.V2(0, c.Body.HalfExtents[1]+cfg.Forecast.StartOffsetY)
	c.Forecaster = fc

	settings := motion.SettingsFromConfig(cfg)
	c.spawnColor = settings.SpawnColor
	c.Controller = motion.NewController(settings, c.Body, input, fc, &c.Fall, log, metrics)
	c.Forecaster.Mask = c.Controller.GroundMask()

	c.Machine = behavior.NewMachine(behavior.SettingsFromConfig(cfg), c.Body, log, metrics)
	if err := c.Machine.Validate(); err != nil {
		c.log.Error().Err(err).Msg("behavior table incomplete")
	}
	return c
}

// PhysicsTick runs one fixed step: gravity, movement, ground sensing, pickups
func (c *Character) PhysicsTick(dt float64) {
	c.prevPos = c.Body.Pos
	c.Controller.PhysicsTick(dt)

	mask := c.Controller.GroundMask()
	if !c.Controller.IsGrabbing() {
		c.Body.Step(dt, c.query, mask)
	}

	contact := c.Probe.Contact(c.query, c.Body.Pos, mask)
	c.Sensor.Sense(&c.Ground, contact, dt, c.Body.Vel[1])

	c.collectPickups()
}

// PresentationTick polls input then advances the behavior machine
func (c *Character) PresentationTick(dt float64) {
	c.Forecaster.Mask = c.Controller.GroundMask()
	c.Controller.PollInput(dt)

	c.Machine.Update(dt, behavior.Inputs{
		Grounded: c.Ground.Grounded(),
		Dragging: c.Controller.IsDragging(),
		Grabbing: c.Controller.IsGrabbing(),
		Velocity: c.Body.Vel,
		Facing:   c.Controller.Facing(),
	})
}

// Respawn returns the character to its spawn point, colour and Idle
func (c *Character) Respawn() {
	c.Controller.ReleaseGrab()
	c.Body.SetPosition(c.spawn)
	c.prevPos = c.spawn
	c.Body.SetVelocity(vmath.Zero)
	c.Fall.Reset()
	c.Ground.Reset()
	c.Controller.SetColor(c.spawnColor)
	c.Machine.Respawn()
	c.log.Info().Float64("x", c.spawn[0]).Float64("y", c.spawn[1]).Msg("respawned")
}

// RenderPosition interpolates the body between the last two physics ticks
// alpha is the scheduler's leftover step fraction, clamped to [0, 1]
func (c *Character) RenderPosition(alpha float64) vmath.Vec2 {
	a := vmath.Clamp(alpha, 0, 1)
	return vmath.V2(
		vmath.Lerp(c.prevPos[0], c.Body.Pos[0], a),
		vmath.Lerp(c.prevPos[1], c.Body.Pos[1], a),
	)
}

// Spawn returns the respawn position
func (c *Character) Spawn() vmath.Vec2 { return c.spawn }

func (c *Character) collectPickups() {
	if c.query == nil || c.pickupMask == physics.MaskNone {
		return
	}
	for _, col := range c.query.OverlapCircle(c.Body.Pos, parameter.PickupRadius, c.pickupMask) {
		if !strings.HasPrefix(col.Tag, parameter.PickupTagPrefix) {
			continue
		}
		if !c.Controller.ApplyPickup(col.Tag) {
			continue
		}
		c.log.Debug().Str("tag", col.Tag).Int("collider", col.ID).Msg("pickup collected")
		if r, ok := c.query.(ColliderRemover); ok {
			r.Remove(col.ID)
		}
	}
}
