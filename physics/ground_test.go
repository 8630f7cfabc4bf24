package physics

import (
	"testing"

	"github.com/lixenwraith/slime-launch/parameter"
	"github.com/lixenwraith/slime-launch/vmath"
)

func feed(sensor *GroundSensor, s *GroundState, contact bool, samples int, dt, vy float64) bool {
	var g bool
	for i := 0; i < samples; i++ {
		g = sensor.Sense(s, contact, dt, vy)
	}
	return g
}

func TestGroundSensorEnterDebounce(t *testing.T) {
	sensor := NewGroundSensor(DefaultGroundProfile())
	var s GroundState

	if sensor.Sense(&s, true, 0.01, 0) {
		t.Error("Expected airborne after 10ms of contact")
	}
	if !sensor.Sense(&s, true, 0.015, 0) {
		t.Error("Expected grounded after 25ms of contact")
	}
}

func TestGroundSensorIgnoresShortPulses(t *testing.T) {
	sensor := NewGroundSensor(DefaultGroundProfile())

	// Contact pulse shorter than enter debounce
	var s GroundState
	if feed(sensor, &s, true, 1, 0.01, 0) {
		t.Error("Expected short contact pulse ignored")
	}
	feed(sensor, &s, false, 1, 0.01, 0)
	if s.Grounded() {
		t.Error("Expected still airborne")
	}

	// Gap shorter than exit debounce
	feed(sensor, &s, true, 5, 0.01, 0)
	if !s.Grounded() {
		t.Fatal("Expected grounded after sustained contact")
	}
	if !feed(sensor, &s, false, 4, 0.01, 0) {
		t.Error("Expected 40ms gap ignored")
	}
	feed(sensor, &s, true, 1, 0.01, 0)
	if !s.Grounded() {
		t.Error("Expected grounded after gap")
	}
}

func TestGroundSensorExitDebounce(t *testing.T) {
	sensor := NewGroundSensor(DefaultGroundProfile())
	var s GroundState
	feed(sensor, &s, true, 3, 0.02, 0)

	if !sensor.Sense(&s, false, 0.03, 0) {
		t.Error("Expected grounded 30ms after losing contact")
	}
	if sensor.Sense(&s, false, 0.03, 0) {
		t.Error("Expected airborne 60ms after losing contact")
	}
}

func TestGroundSensorVelocityOverride(t *testing.T) {
	sensor := NewGroundSensor(DefaultGroundProfile())
	var s GroundState
	feed(sensor, &s, true, 3, 0.02, 0)

	// Below the 0.15 override
	if !sensor.Sense(&s, true, 0.02, 0.12) {
		t.Error("Expected grounded at vy 0.12")
	}
	if sensor.Sense(&s, true, 0.02, 0.2) {
		t.Error("Expected upward velocity to veto grounded")
	}
}

func TestGroundSensorReset(t *testing.T) {
	sensor := NewGroundSensor(DefaultGroundProfile())
	var s GroundState
	feed(sensor, &s, true, 3, 0.02, 0)
	s.Reset()
	if s.Grounded() {
		t.Error("Expected airborne after reset")
	}
}

func TestGroundProbeContact(t *testing.T) {
	floor := &flatFloor{Y: 0, Layer: LayerMask(1)}
	probe := DefaultGroundProbe()

	// Body center at 0.5: feet at 0, probe spans [-0.05, 0.05]
	if !probe.Contact(floor, vmath.V2(0, 0.5), LayerMask(1)) {
		t.Error("Expected contact when standing on floor")
	}
	if probe.Contact(floor, vmath.V2(0, 2), LayerMask(1)) {
		t.Error("Expected no contact when airborne")
	}
	if probe.Contact(floor, vmath.V2(0, 0.5), LayerMask(2)) {
		t.Error("Expected masked-out floor ignored")
	}
	if probe.Contact(nil, vmath.V2(0, 0.5), MaskAll) {
		t.Error("Expected nil query to report no contact")
	}
}

func TestNewGroundProfileMatchesDefault(t *testing.T) {
	enter, exit := parameter.GroundEnterDebounce, parameter.GroundExitDebounce
	threshold, margin := parameter.GroundedThreshold, parameter.GroundedOverrideMargin

	got := NewGroundProfile(enter, exit, threshold, margin)
	if got != DefaultGroundProfile() {
		t.Errorf("Expected %+v, got %+v", DefaultGroundProfile(), got)
	}
}
