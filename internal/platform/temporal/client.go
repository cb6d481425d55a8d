// Package temporal dials the Temporal cluster shared by the API and worker processes.
package temporal

import (
	"errors"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/logitrack/logitrack/internal/platform/observability"
)

// ErrDisabled is returned by Dial when TEMPORAL_DISABLED is set.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Settings locates the Temporal frontend.
type Settings struct {
	Address   string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	Namespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	Disabled  bool   `env:"TEMPORAL_DISABLED"`
}

// Dial connects a client with OpenTelemetry tracing and slog-backed logging.
func Dial(settings Settings, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	options := client.Options{
		HostPort:  settings.Address,
		Namespace: settings.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
