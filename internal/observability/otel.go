package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/envutil"
	"github.com/Branis333/Brainink-afterskool-sub003/internal/platform/logger"
)

const tracerName = "brainink-afterschool-client"

type OtelConfig struct {
	ServiceName string
	Environment string
	Version     string
}

var otelShutdown func(context.Context) error

// InitTracing wires an env-gated tracer provider. Disabled (the default) it
// returns a no-op shutdown. Enable with BRAININK_OTEL_ENABLED=1; an OTLP-HTTP
// exporter is used when OTEL_EXPORTER_OTLP_ENDPOINT is set, otherwise spans
// go to stdout when BRAININK_OTEL_STDOUT=1.
func InitTracing(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	noop := func(context.Context) error { return nil }
	if !envutil.Bool("BRAININK_OTEL_ENABLED", false) {
		return noop
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = tracerName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(strings.TrimSpace(cfg.Version)),
			attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		),
	)
	if err != nil && log != nil {
		log.Warn("otel resource init failed (continuing)", "error", err)
	}

	exporter := buildExporter(ctx, log)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio()))),
		sdktrace.WithResource(res),
	}
	if exporter != nil {
		batchTimeout := envutil.Seconds("BRAININK_OTEL_BATCH_SECONDS", 5*time.Second)
		opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(batchTimeout)))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otelShutdown = tp.Shutdown
	if log != nil {
		log.Info("otel tracing initialized", "service", serviceName)
	}
	return tp.Shutdown
}

func buildExporter(ctx context.Context, log *logger.Logger) sdktrace.SpanExporter {
	if endpoint := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""); endpoint != "" {
		exp, err := otlptracehttp.New(ctx)
		if err == nil {
			return exp
		}
		if log != nil {
			log.Warn("otlp exporter init failed (continuing)", "error", err)
		}
	}
	if envutil.Bool("BRAININK_OTEL_STDOUT", false) {
		exp, err := stdouttrace.New()
		if err == nil {
			return exp
		}
		if log != nil {
			log.Warn("stdout exporter init failed (continuing)", "error", err)
		}
	}
	return nil
}

func sampleRatio() float64 {
	raw := envutil.String("BRAININK_OTEL_SAMPLE_RATIO", "")
	if raw == "" {
		return 1.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return 1.0
	}
	return v
}

// Tracer returns the client tracer. With no provider installed this yields
// no-op spans, so call sites never branch on whether tracing is enabled.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
