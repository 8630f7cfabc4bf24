// Package telemetry holds the OpenTelemetry instruments of the simulation
// All recording methods are safe on a nil *Metrics
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics groups the counters recorded by the simulation packages
type Metrics struct {
	transitions       metric.Int64Counter
	physicsTicks      metric.Int64Counter
	droppedTicks      metric.Int64Counter
	forecastRequests  metric.Int64Counter
	forecastTruncated metric.Int64Counter
	configIssues      metric.Int64Counter
}

// New creates the instruments from the global meter (no-op if not configured)
func New() (*Metrics, error) {
	return NewWithMeter(meter())
}

// NewWithMeter creates the instruments from m
func NewWithMeter(m metric.Meter) (*Metrics, error) {
	mt := &Metrics{}
	var err error

	mt.transitions, err = m.Int64Counter(
		"behavior.transitions",
		metric.WithDescription("Committed behavior state transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	mt.physicsTicks, err = m.Int64Counter(
		"engine.physics_ticks",
		metric.WithDescription("Fixed physics ticks executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating physics ticks counter: %w", err)
	}

	mt.droppedTicks, err = m.Int64Counter(
		"engine.dropped_ticks",
		metric.WithDescription("Physics ticks dropped by the catch-up bound"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped ticks counter: %w", err)
	}

	mt.forecastRequests, err = m.Int64Counter(
		"forecast.requests",
		metric.WithDescription("Trajectory forecasts computed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating forecast requests counter: %w", err)
	}

	mt.forecastTruncated, err = m.Int64Counter(
		"forecast.truncated",
		metric.WithDescription("Forecast terminations by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating forecast truncated counter: %w", err)
	}

	mt.configIssues, err = m.Int64Counter(
		"config.issues",
		metric.WithDescription("Configuration values replaced by defaults"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating config issues counter: %w", err)
	}

	return mt, nil
}

// Transition counts a committed state change
func (m *Metrics) Transition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("from", from), attribute.String("to", to)))
}

// PhysicsTicks counts executed and dropped fixed ticks
func (m *Metrics) PhysicsTicks(ran, dropped int) {
	if m == nil {
		return
	}
	ctx := context.Background()
	if ran > 0 {
		m.physicsTicks.Add(ctx, int64(ran))
	}
	if dropped > 0 {
		m.droppedTicks.Add(ctx, int64(dropped))
	}
}

// Forecast counts one forecast and its termination reason
func (m *Metrics) Forecast(reason string) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.forecastRequests.Add(ctx, 1)
	m.forecastTruncated.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// ConfigIssues counts configuration values that were replaced
func (m *Metrics) ConfigIssues(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.configIssues.Add(context.Background(), int64(n))
}
