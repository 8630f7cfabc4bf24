// Package config loads and validates the static tuning surface
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/vmath"
)

// EnvPrefix prefixes environment overrides, SLIME_PHYSICS_GRAVITY=30
const EnvPrefix = "SLIME"

type PhysicsConfig struct {
	Gravity          float64 `mapstructure:"gravity"`
	MaxFallSpeed     float64 `mapstructure:"max_fall_speed"`
	AscentMultiplier float64 `mapstructure:"ascent_multiplier"`
	FallingEpsilon   float64 `mapstructure:"falling_epsilon"`
	LinearDamping    float64 `mapstructure:"linear_damping"`
	UseDamping       bool    `mapstructure:"use_damping"`
}

type GroundConfig struct {
	EnterDebounce     float64 `mapstructure:"enter_debounce"`
	ExitDebounce      float64 `mapstructure:"exit_debounce"`
	GroundedThreshold float64 `mapstructure:"grounded_threshold"`
	OverrideMargin    float64 `mapstructure:"override_margin"`
	ProbeOffsetY      float64 `mapstructure:"probe_offset_y"`
	ProbeWidth        float64 `mapstructure:"probe_width"`
	ProbeHeight       float64 `mapstructure:"probe_height"`
}

type BehaviorConfig struct {
	FallingThreshold         float64 `mapstructure:"falling_threshold"`
	JumpingThreshold         float64 `mapstructure:"jumping_threshold"`
	LandingVelocityThreshold float64 `mapstructure:"landing_velocity_threshold"`
	ForwardThreshold         float64 `mapstructure:"forward_threshold"`
	ForwardExitRatio         float64 `mapstructure:"forward_exit_ratio"`
	Cooldown                 float64 `mapstructure:"cooldown"`
	LandingDuration          float64 `mapstructure:"landing_duration"`
	InjuredDuration          float64 `mapstructure:"injured_duration"`
	RecoveringDuration       float64 `mapstructure:"recovering_duration"`
	ActionDuration           float64 `mapstructure:"action_duration"`
}

type ForecastConfig struct {
	MaxSteps       int     `mapstructure:"max_steps"`
	StepMode       string  `mapstructure:"step_mode"` // fixed | variable
	MinHitDistance float64 `mapstructure:"min_hit_distance"`
	StartOffsetY   float64 `mapstructure:"start_offset_y"`
	UseShapeCast   bool    `mapstructure:"use_shape_cast"`
}

type MotionConfig struct {
	LaunchPower    float64 `mapstructure:"launch_power"`
	GrabRadius     float64 `mapstructure:"grab_radius"`
	FacingDeadZone float64 `mapstructure:"facing_dead_zone"`
	SpawnColor     string  `mapstructure:"spawn_color"`
}

type EngineConfig struct {
	FixedStep     time.Duration `mapstructure:"fixed_step"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	MaxCatchUp    int           `mapstructure:"max_catch_up"`
}

// MaskConfig lists layer names per colour name
type MaskConfig struct {
	Ground    map[string][]string `mapstructure:"ground"`
	Grabbable map[string][]string `mapstructure:"grabbable"`
}

// Config is the full validated configuration
type Config struct {
	Physics  PhysicsConfig  `mapstructure:"physics"`
	Ground   GroundConfig   `mapstructure:"ground"`
	Behavior BehaviorConfig `mapstructure:"behavior"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Motion   MotionConfig   `mapstructure:"motion"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Layers   map[string]int `mapstructure:"layers"`
	Masks    MaskConfig     `mapstructure:"masks"`

	// Resolved per-colour tables, indexed by colour value
	GroundMasks    [4]physics.Mask `mapstructure:"-"`
	GrabbableMasks [4]physics.Mask `mapstructure:"-"`
}

// setDefaults registers every key so env overrides and Unmarshal see them
func setDefaults(v *viper.Viper) {
	v.SetDefault("physics.gravity", parameter.GravityAcceleration)
	v.SetDefault("physics.max_fall_speed", parameter.MaxFallSpeed)
	v.SetDefault("physics.ascent_multiplier", parameter.AscentGravityMultiplier)
	v.SetDefault("physics.falling_epsilon", parameter.FallingStartEpsilon)
	v.SetDefault("physics.linear_damping", parameter.LinearDamping)
	v.SetDefault("physics.use_damping", parameter.UseLinearDamping)

	v.SetDefault("ground.enter_debounce", parameter.GroundEnterDebounce)
	v.SetDefault("ground.exit_debounce", parameter.GroundExitDebounce)
	v.SetDefault("ground.grounded_threshold", parameter.GroundedThreshold)
	v.SetDefault("ground.override_margin", parameter.GroundedOverrideMargin)
	v.SetDefault("ground.probe_offset_y", parameter.GroundProbeOffsetY)
	v.SetDefault("ground.probe_width", parameter.GroundProbeWidth)
	v.SetDefault("ground.probe_height", parameter.GroundProbeHeight)

	v.SetDefault("behavior.falling_threshold", parameter.FallingThreshold)
	v.SetDefault("behavior.jumping_threshold", parameter.JumpingThreshold)
	v.SetDefault("behavior.landing_velocity_threshold", parameter.LandingVelocityThreshold)
	v.SetDefault("behavior.forward_threshold", parameter.ForwardEnterVX)
	v.SetDefault("behavior.forward_exit_ratio", parameter.ForwardExitRatio)
	v.SetDefault("behavior.cooldown", parameter.StateChangeCooldown)
	v.SetDefault("behavior.landing_duration", parameter.LandingDuration)
	v.SetDefault("behavior.injured_duration", parameter.InjuredDuration)
	v.SetDefault("behavior.recovering_duration", parameter.RecoveringDuration)
	v.SetDefault("behavior.action_duration", parameter.ActionDuration)

	stepMode := "fixed"
	if !parameter.ForecastUseFixedStep {
		stepMode = "variable"
	}
	v.SetDefault("forecast.max_steps", parameter.ArcSteps)
	v.SetDefault("forecast.step_mode", stepMode)
	v.SetDefault("forecast.min_hit_distance", parameter.MinHitDistance)
	v.SetDefault("forecast.start_offset_y", parameter.ArcStartYOffset)
	v.SetDefault("forecast.use_shape_cast", parameter.ForecastUseShapeCast)

	v.SetDefault("motion.launch_power", parameter.LaunchPower)
	v.SetDefault("motion.grab_radius", parameter.GrabRadius)
	v.SetDefault("motion.facing_dead_zone", parameter.FacingDeadZone)
	v.SetDefault("motion.spawn_color", parameter.SpawnColor)

	v.SetDefault("engine.fixed_step", parameter.FixedStep)
	v.SetDefault("engine.frame_interval", parameter.FrameUpdateInterval)
	v.SetDefault("engine.max_catch_up", parameter.MaxCatchUpTicks)

	for name, bit := range parameter.DefaultLayers {
		v.SetDefault("layers."+name, bit)
	}
	for color, layers := range parameter.DefaultGroundMasks {
		v.SetDefault("masks.ground."+color, layers)
	}
	for color, layers := range parameter.DefaultGrabbableMasks {
		v.SetDefault("masks.grabbable."+color, layers)
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration without touching the filesystem
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(fmt.Sprintf("config: built-in defaults do not decode: %v", err))
	}
	cfg.resolve(zerolog.Nop())
	return cfg
}

// Load builds the configuration from defaults, an optional TOML file at path
// and SLIME_ environment overrides
// Invalid values are rewritten to defaults and returned as issues, each logged once
func Load(path string, log zerolog.Logger) (*Config, []Issue, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}

	issues := cfg.resolve(log)
	return cfg, issues, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &cfg, nil
}

// resolve validates, builds the mask tables and reports issues
func (c *Config) resolve(log zerolog.Logger) []Issue {
	issues := c.Validate()

	var maskIssues []Issue
	c.GroundMasks, c.GrabbableMasks, maskIssues = c.MaskTables()
	issues = append(issues, maskIssues...)

	reportIssues(log, issues)
	return issues
}

// GravityProfile converts the physics section
func (c *Config) GravityProfile() physics.GravityProfile {
	return physics.GravityProfile{
		Acceleration:     c.Physics.Gravity,
		MaxFallSpeed:     c.Physics.MaxFallSpeed,
		AscentMultiplier: c.Physics.AscentMultiplier,
		FallingEpsilon:   c.Physics.FallingEpsilon,
		LinearDamping:    c.Physics.LinearDamping,
		UseDamping:       c.Physics.UseDamping,
	}
}

// GroundProfile converts the ground section, override is threshold plus margin
func (c *Config) GroundProfile() physics.GroundProfile {
	g := c.Ground
	return physics.NewGroundProfile(g.EnterDebounce, g.ExitDebounce, g.GroundedThreshold, g.OverrideMargin)
}

// GroundProbe converts the probe geometry
func (c *Config) GroundProbe() physics.GroundProbe {
	return physics.GroundProbe{
		Offset:      vmath.V2(0, c.Ground.ProbeOffsetY),
		HalfExtents: vmath.V2(c.Ground.ProbeWidth/2, c.Ground.ProbeHeight/2),
	}
}

// StepMode converts the forecast step mode name
func (c *Config) StepMode() physics.StepMode {
	if c.Forecast.StepMode == "variable" {
		return physics.StepVariable
	}
	return physics.StepFixed
}
