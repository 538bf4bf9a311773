package telemetry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ExporterEnv names the environment variable selecting the telemetry
// exporter. Unset, empty and "none" all leave telemetry disabled.
const ExporterEnv = "REFINECTL_OTEL_EXPORTER"

const ShutdownTimeout = 5 * time.Second

var (
	stdoutSpanFactory = func() (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	stdoutMetricFactory = func() (sdkmetric.Exporter, error) {
		return stdoutmetric.New()
	}
	otlpGRPCFactory = func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return otlptrace.New(ctx, otlptracegrpc.NewClient())
	}
	otlpHTTPFactory = func(ctx context.Context) (sdktrace.SpanExporter, error) {
		return otlptrace.New(ctx, otlptracehttp.NewClient())
	}
)

// Setup installs the global OpenTelemetry providers selected through
// ExporterEnv and returns the function that flushes them. An unrecognized
// exporter name behaves like "none".
func Setup(ctx context.Context) (func(context.Context) error, error) {
	switch os.Getenv(ExporterEnv) {
	case "stdout":
		spans, err := stdoutSpanFactory()
		if err != nil {
			return nil, err
		}
		metrics, err := stdoutMetricFactory()
		if err != nil {
			return nil, err
		}
		return install(ctx, spans, metrics)
	case "otlp-grpc":
		spans, err := otlpGRPCFactory(ctx)
		if err != nil {
			return nil, err
		}
		return install(ctx, spans, nil)
	case "otlp-http":
		spans, err := otlpHTTPFactory(ctx)
		if err != nil {
			return nil, err
		}
		return install(ctx, spans, nil)
	default:
		return func(context.Context) error { return nil }, nil
	}
}

func install(ctx context.Context, spans sdktrace.SpanExporter, metrics sdkmetric.Exporter) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("refinectl"),
			semconv.ServiceInstanceIDKey.String(instanceID()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spans),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	var mp *sdkmetric.MeterProvider
	if metrics != nil {
		mp = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metrics)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
	}

	return func(ctx context.Context) error {
		if mp != nil {
			if err := mp.Shutdown(ctx); err != nil {
				return err
			}
		}
		return tp.Shutdown(ctx)
	}, nil
}

// instanceID identifies the host without leaking its name into exported
// telemetry.
func instanceID() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	sum := sha256.Sum256([]byte(host))
	return hex.EncodeToString(sum[:])
}
