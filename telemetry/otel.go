package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/slime-launch"

// meter returns the global meter, no-op unless a provider is installed
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
