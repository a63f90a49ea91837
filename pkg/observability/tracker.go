package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	tracer "go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"
)

// Global tracing variables
var (
	Tracer         tracer.Tracer
	TracerProvider *trace.TracerProvider
)

// InitOtelTracing initializes the OpenTelemetry tracing and registers the
// OTLP HTTP exporter.
func InitOtelTracing(ctx context.Context, serviceName, serviceVersion, tracingPort string) {
	otlpEndpoint := fmt.Sprintf("otel-collector:%s", tracingPort)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(otlpEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		klog.Errorf("Failed to create OTLP HTTP exporter: %v", err)
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
	)
	if err != nil {
		klog.Errorf("Failed to create resource: %v", err)
	}

	TracerProvider = trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
	)

	otel.SetTracerProvider(TracerProvider)
}

// InitTracer initializes the global tracer.
func InitTracer(ctx context.Context, serviceName, serviceVersion, tracingPort string) {
	InitOtelTracing(ctx, serviceName, serviceVersion, tracingPort)

	Tracer = otel.Tracer(serviceName)
	klog.Infof("Tracing initialized for service: %s, version: %s, port: %s", serviceName, serviceVersion, tracingPort)
}

// StartSpan starts a span for operationName if tracing is initialized and
// returns the possibly-updated context. The returned span is nil when
// tracing is disabled.
func StartSpan(ctx context.Context, operationName string) (context.Context, tracer.Span) {
	if Tracer == nil {
		return ctx, nil
	}
	return Tracer.Start(ctx, operationName)
}

// TraceFunctionData records the outcome of one operation on span, which
// may be nil when tracing is disabled.
func TraceFunctionData(span tracer.Span, operationName string, params map[string]string, err error) {
	if span == nil {
		return
	}
	for key, value := range params {
		span.SetAttributes(attribute.String(key, value))
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		span.End()
		klog.V(4).Infof("Error in operation %s: %v. Params: %v", operationName, err, params)
	} else {
		span.SetStatus(codes.Ok, "operation successful")
		span.End()
	}
}
