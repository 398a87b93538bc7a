// Package telemetry wires OpenTelemetry tracing for dgame. Every package asks
// for its tracer through Tracer, so spans stay no-ops until Setup installs an
// exporting provider.
package telemetry

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "dgame"
	serviceVersion = "0.2.0"
	tracerPrefix   = serviceName + "/"
)

// Run describes the game session the traces belong to. Empty fields are left
// off the resource.
type Run struct {
	MapSize string
	Biome   string
	Seed    string // as typed on the command line, before hashing
}

// attributes returns the non-empty run fields as game.* resource attributes.
func (r Run) attributes() []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if r.MapSize != "" {
		attrs = append(attrs, attribute.String("game.map_size", r.MapSize))
	}
	if r.Biome != "" {
		attrs = append(attrs, attribute.String("game.biome", r.Biome))
	}
	if r.Seed != "" {
		attrs = append(attrs, attribute.String("game.seed_phrase", r.Seed))
	}
	return attrs
}

// Setup installs a batching OTLP/HTTP tracer provider as the global provider.
// Endpoint and headers come from the standard OTEL_EXPORTER_OTLP_* variables.
// SDK diagnostics go to log. The returned function flushes and stops the
// exporter.
func Setup(ctx context.Context, log logr.Logger, run Run) (shutdown func(context.Context) error, err error) {
	otel.SetLogger(log.WithName("otel"))

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, run)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	log.V(1).Info("tracing enabled", "service", serviceName, "mapSize", run.MapSize, "biome", run.Biome)
	return tp.Shutdown, nil
}

// newResource describes this process and run. It is built on its own rather
// than merged with resource.Default() so schema URLs cannot conflict.
func newResource(ctx context.Context, run Run) (*resource.Resource, error) {
	attrs := append([]attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
	}, run.attributes()...)

	return resource.New(ctx,
		resource.WithAttributes(attrs...),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithOSType(),
		resource.WithProcessRuntimeName(),
		resource.WithProcessRuntimeVersion(),
	)
}

// Tracer returns the tracer for one component, named dgame/<name>.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerPrefix + name)
}

// NoopTracer returns a tracer that records nothing, for callers that must
// stay silent even after Setup.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerPrefix + "noop")
}
