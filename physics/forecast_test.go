package physics

import (
	"testing"

	"github.com/lixenwraith/slime-launch/vmath"
)

func newTestForecaster(q CollisionQuery) *Forecaster {
	g := DefaultGravityProfile()
	return NewForecaster(&g, q, MaskAll)
}

func TestForecastHitsFloor(t *testing.T) {
	floor := &flatFloor{Y: -2, Layer: LayerMask(1)}
	f := newTestForecaster(floor)

	path, term := f.Forecast(vmath.Zero, vmath.Zero, 0.016)

	if term != TerminatedCollision {
		t.Fatalf("Expected collision termination, got %s", term)
	}
	if len(path) != 21 {
		t.Fatalf("Expected 21 points, got %d", len(path))
	}
	if !approx(path.Last()[1], -2) {
		t.Errorf("Expected last point on floor, got %v", path.Last())
	}
	// y_n = -0.01 * n(n+1)/2
	for n := 1; n < 20; n++ {
		want := -0.01 * float64(n*(n+1)) / 2
		if !approx(path[n][1], want) {
			t.Errorf("Point %d: expected y %f, got %f", n, want, path[n][1])
		}
	}
}

func TestForecastBudgetExhausted(t *testing.T) {
	f := newTestForecaster(nil)

	path, term := f.Forecast(vmath.Zero, vmath.V2(1, 10), 0.016)
	if term != TerminatedBudget {
		t.Errorf("Expected budget termination, got %s", term)
	}
	if len(path) != f.MaxSteps {
		t.Errorf("Expected %d points, got %d", f.MaxSteps, len(path))
	}
	if path[0] != vmath.Zero {
		t.Errorf("Expected path to begin at start, got %v", path[0])
	}
}

func TestForecastMatchesIntegration(t *testing.T) {
	g := DefaultGravityProfile()
	f := NewForecaster(&g, nil, MaskAll)

	start := vmath.V2(1, 3)
	vel := vmath.V2(2, 6)
	path, _ := f.Forecast(start, vel, 0.016)

	// Real integration with the same rule and step
	var s FallState
	pos, v := start, vel
	for i := 1; i < len(path); i++ {
		v = StepVelocity(v, f.FixedStep, &g, &s)
		pos = Integrate(pos, v, f.FixedStep)
		if !vmath.ApproxEqualV(pos, path[i], 1e-9) {
			t.Fatalf("Step %d: forecast %v diverged from body %v", i, path[i], pos)
		}
	}
}

func TestForecastIgnoresSelfHit(t *testing.T) {
	// Start exactly on the floor surface; hit at distance 0 is skipped
	floor := &flatFloor{Y: 0, Layer: LayerMask(1)}
	f := newTestForecaster(floor)

	path, term := f.Forecast(vmath.Zero, vmath.V2(0, 10), 0.016)
	if len(path) < 3 {
		t.Fatalf("Expected self contact ignored, path stopped at %d points (%s)", len(path), term)
	}
	if path[1][1] <= 0 {
		t.Errorf("Expected path to rise, got %v", path[1])
	}
}

func TestForecastRespectsMask(t *testing.T) {
	floor := &flatFloor{Y: -2, Layer: LayerMask(3)}
	g := DefaultGravityProfile()
	f := NewForecaster(&g, floor, LayerMask(1))

	_, term := f.Forecast(vmath.Zero, vmath.Zero, 0.016)
	if term != TerminatedBudget {
		t.Errorf("Expected masked floor to be ignored, got %s", term)
	}
}

func TestForecastVariableStep(t *testing.T) {
	f := newTestForecaster(nil)
	f.Mode = StepVariable

	if got := f.StepDuration(0.033); got != 0.033 {
		t.Errorf("Expected frame delta step, got %f", got)
	}
	path, _ := f.Forecast(vmath.Zero, vmath.V2(1, 0), 0.033)
	if !approx(path[1][0], 0.033) {
		t.Errorf("Expected x advance by frame delta, got %f", path[1][0])
	}
}

func TestForecastStartOffset(t *testing.T) {
	f := newTestForecaster(nil)
	f.StartOffset = vmath.V2(0, 0.53)

	path, _ := f.Forecast(vmath.V2(2, 1), vmath.Zero, 0.016)
	if !vmath.ApproxEqualV(path[0], vmath.V2(2, 1.53), 1e-12) {
		t.Errorf("Expected offset start, got %v", path[0])
	}
}

func TestForecastShapeCast(t *testing.T) {
	floor := &flatFloor{Y: -2, Layer: LayerMask(1)}
	f := newTestForecaster(floor)
	f.UseShapeCast = true
	f.ShapeHalfExtents = vmath.V2(0.3, 0.5)

	path, term := f.Forecast(vmath.Zero, vmath.Zero, 0.016)
	if term != TerminatedCollision {
		t.Fatalf("Expected collision, got %s", term)
	}
	// Box bottom touches the floor when the center is at -1.5
	if !approx(path.Last()[1], -1.5) {
		t.Errorf("Expected center rest at -1.5, got %f", path.Last()[1])
	}
}
