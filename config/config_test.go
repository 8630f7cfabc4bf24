package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/physics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slime.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, parameter.GravityAcceleration, cfg.Physics.Gravity)
	assert.Equal(t, parameter.MaxFallSpeed, cfg.Physics.MaxFallSpeed)
	assert.Equal(t, parameter.ArcSteps, cfg.Forecast.MaxSteps)
	assert.Equal(t, "fixed", cfg.Forecast.StepMode)
	assert.Equal(t, parameter.FixedStep, cfg.Engine.FixedStep)
	assert.Equal(t, "green", cfg.Motion.SpawnColor)

	// green stands on neutral (bit 0) and tiles_green (bit 1)
	assert.Equal(t, physics.Mask(0b11), cfg.GroundMasks[0])
	assert.Equal(t, physics.LayerMask(5), cfg.GrabbableMasks[0])
	assert.Equal(t, physics.LayerMask(0)|physics.LayerMask(4), cfg.GroundMasks[3])
}

func TestDefaultHasNoIssues(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.Validate())
	_, _, issues := cfg.MaskTables()
	assert.Empty(t, issues)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, issues, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, Default().Physics, cfg.Physics)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
[physics]
gravity = 30.0

[forecast]
step_mode = "variable"
max_steps = 90

[engine]
fixed_step = "10ms"

[layers]
lava = 12

[masks.ground]
red = ["neutral", "lava"]
`)

	cfg, issues, err := Load(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.Equal(t, 30.0, cfg.Physics.Gravity)
	assert.Equal(t, parameter.MaxFallSpeed, cfg.Physics.MaxFallSpeed)
	assert.Equal(t, physics.StepVariable, cfg.StepMode())
	assert.Equal(t, 90, cfg.Forecast.MaxSteps)
	assert.Equal(t, 10*time.Millisecond, cfg.Engine.FixedStep)
	assert.Equal(t, physics.LayerMask(0)|physics.LayerMask(12), cfg.GroundMasks[3])
	assert.Equal(t, physics.Mask(0b11), cfg.GroundMasks[0], "other colours keep defaults")
}

func TestLoad_InvalidValuesDegrade(t *testing.T) {
	path := writeConfig(t, `
[physics]
ascent_multiplier = 1.5
max_fall_speed = -3.0

[forecast]
max_steps = 1
step_mode = "sometimes"

[masks.ground]
blue = ["neutral", "missing_layer"]

[masks.grabbable]
purple = ["grab_red"]
`)

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	cfg, issues, err := Load(path, log)
	require.NoError(t, err)

	assert.Equal(t, parameter.AscentGravityMultiplier, cfg.Physics.AscentMultiplier)
	assert.Equal(t, parameter.MaxFallSpeed, cfg.Physics.MaxFallSpeed)
	assert.Equal(t, parameter.ArcSteps, cfg.Forecast.MaxSteps)
	assert.Equal(t, "fixed", cfg.Forecast.StepMode)
	assert.Equal(t, physics.MaskAll, cfg.GroundMasks[1])
	assert.NotEqual(t, physics.MaskAll, cfg.GroundMasks[0])

	keys := make([]string, 0, len(issues))
	for _, is := range issues {
		keys = append(keys, is.Key)
	}
	assert.ElementsMatch(t, []string{
		"physics.ascent_multiplier",
		"physics.max_fall_speed",
		"forecast.max_steps",
		"forecast.step_mode",
		"masks.ground.blue",
		"masks.grabbable.purple",
	}, keys)

	// One warn line per issue
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(issues))
	assert.Contains(t, buf.String(), `"key":"masks.ground.blue"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SLIME_PHYSICS_GRAVITY", "40")
	t.Setenv("SLIME_MOTION_SPAWN_COLOR", "pink")

	cfg, _, err := Load("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.Physics.Gravity)
	assert.Equal(t, "pink", cfg.Motion.SpawnColor)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load("/nonexistent/slime.toml", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestMaskTables_MissingEntry(t *testing.T) {
	cfg := Default()
	delete(cfg.Masks.Ground, "pink")

	ground, grab, issues := cfg.MaskTables()
	assert.Equal(t, physics.MaskAll, ground[2])
	assert.Equal(t, physics.LayerMask(7), grab[2])
	require.Len(t, issues, 1)
	assert.Equal(t, "masks.ground.pink", issues[0].Key)
}

func TestMaskTables_LayerOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Layers["huge"] = 40
	cfg.Masks.Grabbable["green"] = []string{"huge"}

	_, grab, issues := cfg.MaskTables()
	assert.Equal(t, physics.MaskAll, grab[0])
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "huge")
}

func TestProfiles(t *testing.T) {
	cfg := Default()

	assert.Equal(t, physics.DefaultGravityProfile(), cfg.GravityProfile())
	assert.Equal(t, physics.DefaultGroundProfile(), cfg.GroundProfile())
	assert.Equal(t, physics.DefaultGroundProbe(), cfg.GroundProbe())
	assert.Equal(t, physics.LayerMask(9), cfg.Layer("pickup"))
	assert.Equal(t, physics.MaskNone, cfg.Layer("nope"))
}

func TestGroundProfileOverride(t *testing.T) {
	cfg := Default()
	ground := cfg.GroundProfile()
	assert.InDelta(t, parameter.GroundedThreshold+parameter.GroundedOverrideMargin, ground.VelocityOverride, 1e-12)
	assert.InDelta(t, parameter.GroundEnterDebounce, ground.EnterDebounce, 1e-12)

	cfg.Ground.GroundedThreshold = 0.3
	cfg.Ground.OverrideMargin = 0.1
	assert.InDelta(t, 0.4, cfg.GroundProfile().VelocityOverride, 1e-12)
}
