package config

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
)

// Issue is a non-fatal configuration problem, the value was replaced with a default
type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

type validator struct {
	issues []Issue
}

func (v *validator) add(key, format string, args ...any) {
	v.issues = append(v.issues, Issue{Key: key, Message: fmt.Sprintf(format, args...)})
}

// positive rewrites *f to def unless it is > 0
func (v *validator) positive(key string, f *float64, def float64) {
	if *f <= 0 {
		v.add(key, "must be positive, got %g, using %g", *f, def)
		*f = def
	}
}

// nonNegative rewrites *f to def when it is < 0
func (v *validator) nonNegative(key string, f *float64, def float64) {
	if *f < 0 {
		v.add(key, "must not be negative, got %g, using %g", *f, def)
		*f = def
	}
}

// Validate checks numeric ranges and enumerations, rewriting bad values to defaults
// Returns the issues found; never fails
func (c *Config) Validate() []Issue {
	var v validator

	p := &c.Physics
	v.positive("physics.gravity", &p.Gravity, parameter.GravityAcceleration)
	v.positive("physics.max_fall_speed", &p.MaxFallSpeed, parameter.MaxFallSpeed)
	if p.AscentMultiplier <= 0 || p.AscentMultiplier >= 1 {
		v.add("physics.ascent_multiplier", "must be in (0,1), got %g, using %g", p.AscentMultiplier, parameter.AscentGravityMultiplier)
		p.AscentMultiplier = parameter.AscentGravityMultiplier
	}
	v.nonNegative("physics.linear_damping", &p.LinearDamping, parameter.LinearDamping)

	g := &c.Ground
	v.nonNegative("ground.enter_debounce", &g.EnterDebounce, parameter.GroundEnterDebounce)
	v.nonNegative("ground.exit_debounce", &g.ExitDebounce, parameter.GroundExitDebounce)
	v.nonNegative("ground.grounded_threshold", &g.GroundedThreshold, parameter.GroundedThreshold)
	v.nonNegative("ground.override_margin", &g.OverrideMargin, parameter.GroundedOverrideMargin)
	v.positive("ground.probe_width", &g.ProbeWidth, parameter.GroundProbeWidth)
	v.positive("ground.probe_height", &g.ProbeHeight, parameter.GroundProbeHeight)

	b := &c.Behavior
	v.nonNegative("behavior.forward_threshold", &b.ForwardThreshold, parameter.ForwardEnterVX)
	if b.ForwardExitRatio < 0 || b.ForwardExitRatio > 1 {
		v.add("behavior.forward_exit_ratio", "must be in [0,1], got %g, using %g", b.ForwardExitRatio, parameter.ForwardExitRatio)
		b.ForwardExitRatio = parameter.ForwardExitRatio
	}
	if b.FallingThreshold > 0 {
		v.add("behavior.falling_threshold", "must not be positive, got %g, using %g", b.FallingThreshold, parameter.FallingThreshold)
		b.FallingThreshold = parameter.FallingThreshold
	}
	v.nonNegative("behavior.jumping_threshold", &b.JumpingThreshold, parameter.JumpingThreshold)
	if b.LandingVelocityThreshold > 0 {
		v.add("behavior.landing_velocity_threshold", "must not be positive, got %g, using %g", b.LandingVelocityThreshold, parameter.LandingVelocityThreshold)
		b.LandingVelocityThreshold = parameter.LandingVelocityThreshold
	}
	v.nonNegative("behavior.cooldown", &b.Cooldown, parameter.StateChangeCooldown)
	v.nonNegative("behavior.landing_duration", &b.LandingDuration, parameter.LandingDuration)
	v.nonNegative("behavior.injured_duration", &b.InjuredDuration, parameter.InjuredDuration)
	v.nonNegative("behavior.recovering_duration", &b.RecoveringDuration, parameter.RecoveringDuration)
	v.nonNegative("behavior.action_duration", &b.ActionDuration, parameter.ActionDuration)

	f := &c.Forecast
	if f.MaxSteps < 2 {
		v.add("forecast.max_steps", "must be at least 2, got %d, using %d", f.MaxSteps, parameter.ArcSteps)
		f.MaxSteps = parameter.ArcSteps
	}
	if f.StepMode != "fixed" && f.StepMode != "variable" {
		v.add("forecast.step_mode", "must be fixed or variable, got %q, using fixed", f.StepMode)
		f.StepMode = "fixed"
	}
	v.nonNegative("forecast.min_hit_distance", &f.MinHitDistance, parameter.MinHitDistance)

	m := &c.Motion
	v.positive("motion.launch_power", &m.LaunchPower, parameter.LaunchPower)
	v.nonNegative("motion.grab_radius", &m.GrabRadius, parameter.GrabRadius)
	v.nonNegative("motion.facing_dead_zone", &m.FacingDeadZone, parameter.FacingDeadZone)
	if colorIndex(m.SpawnColor) < 0 {
		v.add("motion.spawn_color", "unknown colour %q, using %s", m.SpawnColor, parameter.SpawnColor)
		m.SpawnColor = parameter.SpawnColor
	}

	e := &c.Engine
	if e.FixedStep <= 0 {
		v.add("engine.fixed_step", "must be positive, got %s, using %s", e.FixedStep, parameter.FixedStep)
		e.FixedStep = parameter.FixedStep
	}
	if e.FrameInterval <= 0 {
		v.add("engine.frame_interval", "must be positive, got %s, using %s", e.FrameInterval, parameter.FrameUpdateInterval)
		e.FrameInterval = parameter.FrameUpdateInterval
	}
	if e.MaxCatchUp < 1 {
		v.add("engine.max_catch_up", "must be at least 1, got %d, using %d", e.MaxCatchUp, parameter.MaxCatchUpTicks)
		e.MaxCatchUp = parameter.MaxCatchUpTicks
	}

	return v.issues
}

// MaskTables resolves the per-colour layer name lists into mask tables
// A missing colour entry or an unknown layer yields MaskAll for that entry and an issue
func (c *Config) MaskTables() (ground, grabbable [4]physics.Mask, issues []Issue) {
	var v validator
	ground = c.resolveTable(&v, "masks.ground", c.Masks.Ground)
	grabbable = c.resolveTable(&v, "masks.grabbable", c.Masks.Grabbable)
	return ground, grabbable, v.issues
}

func (c *Config) resolveTable(v *validator, prefix string, table map[string][]string) [4]physics.Mask {
	var out [4]physics.Mask
	for i, color := range parameter.ColorNames {
		key := prefix + "." + color
		out[i] = physics.MaskAll

		names, ok := table[color]
		if !ok || len(names) == 0 {
			v.add(key, "missing entry, matching every layer")
			continue
		}

		mask, bad := c.resolveLayers(names)
		if bad != "" {
			v.add(key, "unknown or out of range layer %q, matching every layer", bad)
			continue
		}
		out[i] = mask
	}

	// Entries for colours that do not exist are reported but harmless
	extra := make([]string, 0)
	for color := range table {
		if colorIndex(color) < 0 {
			extra = append(extra, color)
		}
	}
	sort.Strings(extra)
	for _, color := range extra {
		v.add(prefix+"."+color, "unknown colour, entry ignored")
	}
	return out
}

// resolveLayers ORs the named layer bits, returns the first bad name on failure
func (c *Config) resolveLayers(names []string) (physics.Mask, string) {
	var mask physics.Mask
	for _, name := range names {
		bit, ok := c.Layers[name]
		if !ok {
			return physics.MaskNone, name
		}
		m := physics.LayerMask(bit)
		if m == physics.MaskNone {
			return physics.MaskNone, name
		}
		mask |= m
	}
	return mask, ""
}

// Layer returns the mask for a named layer, MaskNone when unknown
func (c *Config) Layer(name string) physics.Mask {
	bit, ok := c.Layers[name]
	if !ok {
		return physics.MaskNone
	}
	return physics.LayerMask(bit)
}

func colorIndex(name string) int {
	for i, n := range parameter.ColorNames {
		if n == name {
			return i
		}
	}
	return -1
}

// reportIssues logs each distinct issue once at warn level
func reportIssues(log zerolog.Logger, issues []Issue) {
	seen := make(map[Issue]struct{}, len(issues))
	for _, is := range issues {
		if _, dup := seen[is]; dup {
			continue
		}
		seen[is] = struct{}{}
		log.Warn().
			Str("component", "config").
			Str("key", is.Key).
			Str("issue", is.Message).
			Msg("configuration issue, using default")
	}
}
