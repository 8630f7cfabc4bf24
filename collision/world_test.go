package collision

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/slime-launch/physics"
	"github.com/lixenwraith/slime-launch/vmath"
)

var (
	floorLayer = physics.LayerMask(1)
	wallLayer  = physics.LayerMask(5)
)

// newLevel builds a floor whose top is y=-2 and a grabbable wall at x in [3,4]
func newLevel(t *testing.T) *World {
	t.Helper()
	w := NewWorld(zerolog.Nop())
	w.AddBox(vmath.V2(-50, -3), vmath.V2(50, -2), floorLayer, "floor")
	w.AddBox(vmath.V2(3, -2), vmath.V2(4, 5), wallLayer, physics.TagGrabbable)
	return w
}

func TestOverlapBox(t *testing.T) {
	w := newLevel(t)

	assert.True(t, w.OverlapBox(vmath.V2(0, -2), vmath.V2(0.3, 0.05), floorLayer))
	assert.False(t, w.OverlapBox(vmath.V2(0, 0), vmath.V2(0.3, 0.05), floorLayer))
	assert.False(t, w.OverlapBox(vmath.V2(0, -2), vmath.V2(0.3, 0.05), wallLayer), "floor is not on the wall layer")
	assert.True(t, w.OverlapBox(vmath.V2(0, -2), vmath.V2(0.3, 0.05), physics.MaskAll))
}

func TestSegmentCast(t *testing.T) {
	w := newLevel(t)

	hit, ok := w.SegmentCast(vmath.V2(0, 0), vmath.V2(0, -4), floorLayer)
	require.True(t, ok)
	assert.InDelta(t, -2, hit.Point[1], 1e-9)
	assert.InDelta(t, 2, hit.Distance, 1e-9)
	assert.InDelta(t, 1, hit.Normal[1], 1e-9)

	_, ok = w.SegmentCast(vmath.V2(0, 0), vmath.V2(0, -1), floorLayer)
	assert.False(t, ok, "segment ends above the floor")

	_, ok = w.SegmentCast(vmath.V2(0, 0), vmath.V2(0, -4), physics.LayerMask(2))
	assert.False(t, ok, "floor masked out")

	_, ok = w.SegmentCast(vmath.V2(1, 1), vmath.V2(1, 1), physics.MaskAll)
	assert.False(t, ok, "zero-length cast")
}

func TestShapeCastReportsCenter(t *testing.T) {
	w := newLevel(t)

	hit, ok := w.ShapeCast(vmath.V2(0, 0), vmath.V2(0.5, 0.5), vmath.V2(0, -4), floorLayer)
	require.True(t, ok)
	assert.InDelta(t, -1.5, hit.Point[1], 1e-9)
	assert.InDelta(t, 1.5, hit.Distance, 1e-9)
}

func TestOverlapCircle(t *testing.T) {
	w := newLevel(t)

	got := w.OverlapCircle(vmath.V2(2, 1), 1.5, wallLayer)
	require.Len(t, got, 1)
	assert.Equal(t, physics.TagGrabbable, got[0].Tag)

	assert.Empty(t, w.OverlapCircle(vmath.V2(-2, 1), 1.5, wallLayer))

	// Both shapes in range, nearest first
	got = w.OverlapCircle(vmath.V2(2.5, -1.8), 1.0, physics.MaskAll)
	require.Len(t, got, 2)
	assert.Equal(t, "floor", got[0].Tag)
}

func TestOverlapCircleExcludesBoxCorners(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	w.AddBox(vmath.V2(0, 0), vmath.V2(1, 1), physics.LayerMask(3), "tile")

	// Circle bounds overlap the box, its nearest point (1,1) is 1.13 away
	assert.Empty(t, w.OverlapCircle(vmath.V2(1.8, 1.8), 1.0, physics.MaskAll))
	assert.Len(t, w.OverlapCircle(vmath.V2(1.8, 1.8), 1.2, physics.MaskAll), 1)
}

func TestQueriesSeeShapesWithoutRebuild(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	id := w.AddBox(vmath.V2(0, 0), vmath.V2(1, 1), physics.LayerMask(3), "tile")

	assert.True(t, w.OverlapBox(vmath.V2(0.5, 1), vmath.V2(0.1, 0.1), physics.MaskAll))
	assert.Len(t, w.OverlapCircle(vmath.V2(0.5, 1.5), 0.6, physics.MaskAll), 1)

	require.True(t, w.Remove(id))
	assert.Empty(t, w.OverlapCircle(vmath.V2(0.5, 1.5), 0.6, physics.MaskAll))
}

func TestRemove(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	id := w.AddBox(vmath.V2(0, 0), vmath.V2(1, 1), physics.LayerMask(9), "pickup_blue")
	require.Equal(t, 1, w.Len())

	c, ok := w.Collider(id)
	require.True(t, ok)
	assert.Equal(t, "pickup_blue", c.Tag)

	assert.True(t, w.Remove(id))
	assert.False(t, w.Remove(id))
	assert.False(t, w.OverlapBox(vmath.V2(0.5, 0.5), vmath.V2(0.1, 0.1), physics.MaskAll))
	assert.Zero(t, w.Len())
}

func TestKineticRestsOnWorldFloor(t *testing.T) {
	w := newLevel(t)
	k := physics.NewKinetic(vmath.V2(0, 0))
	g := physics.DefaultGravityProfile()
	var fall physics.FallState

	for i := 0; i < 100; i++ {
		k.SetVelocity(physics.StepVelocity(k.Velocity(), 0.02, &g, &fall))
		k.Step(0.02, w, floorLayer)
	}

	feet := k.Position()[1] - k.HalfExtents[1]
	assert.InDelta(t, -2, feet, 2*k.Skin)

	probe := physics.DefaultGroundProbe()
	assert.True(t, probe.Contact(w, k.Position(), floorLayer))
}

func TestForecastAgainstWorld(t *testing.T) {
	w := newLevel(t)
	g := physics.DefaultGravityProfile()
	f := physics.NewForecaster(&g, w, floorLayer)

	path, term := f.Forecast(vmath.Zero, vmath.Zero, 0.016)
	require.Equal(t, physics.TerminatedCollision, term)
	assert.Less(t, len(path), f.MaxSteps)
	assert.InDelta(t, -2, path.Last()[1], 1e-9)
}
