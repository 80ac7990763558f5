// Package telemetry sets up the global OpenTelemetry tracer and meter
// providers and the metric instruments the todo server and client record.
//
//	tp, err := telemetry.InitTracer(ctx, "todomvc", telemetry.ExporterStdout, "")
//	mp, err := telemetry.InitMeter(ctx, "todomvc", telemetry.ExporterStdout, "")
//	metrics, err := telemetry.NewMetrics(mp, "todomvc")
//
// Both providers must be shut down on exit.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporters.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// collector is where an OTLP exporter sends data.
type collector struct {
	host     string
	insecure bool
}

// parseExporter validates the exporter name and, for OTLP, splits the
// endpoint URL into host:port and transport security. A nil collector means
// stdout.
func parseExporter(exporter, endpoint string) (*collector, error) {
	switch exporter {
	case ExporterStdout:
		return nil, nil
	case ExporterOTLP:
	default:
		return nil, fmt.Errorf("unsupported exporter %q", exporter)
	}
	if endpoint == "" {
		return nil, errors.New("otlp exporter requires an endpoint")
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return &collector{host: endpoint, insecure: true}, nil
	}
	return &collector{host: u.Host, insecure: u.Scheme != "https"}, nil
}

// InitTracer installs a batching TracerProvider as the global provider and
// sets W3C trace context plus baggage as the propagator.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	exp, err := spanExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp), sdktrace.WithResource(res))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// InitMeter installs a periodically exporting MeterProvider as the global
// provider.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	res, err := newResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	exp, err := metricExporter(ctx, exporter, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	))
}

func spanExporter(ctx context.Context, exporter, endpoint string) (sdktrace.SpanExporter, error) {
	c, err := parseExporter(exporter, endpoint)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.host)}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func metricExporter(ctx context.Context, exporter, endpoint string) (sdkmetric.Exporter, error) {
	c, err := parseExporter(exporter, endpoint)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return stdoutmetric.New()
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(c.host)}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}
