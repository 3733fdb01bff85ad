package tracing

import (
    "context"

    "go.opentelemetry.io/otel"
    "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
    "go.opentelemetry.io/otel/sdk/resource"
    sdktrace "go.opentelemetry.io/otel/sdk/trace"
    semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

    "github.com/xiangyu-lab/discover-feed/config"
)

// Init 初始化 OTLP HTTP 上报；返回关闭函数
func Init(ctx context.Context, cfg *config.Config, serviceName string) (func(context.Context) error, error) {
    if !cfg.Trace.Enabled {
        return func(context.Context) error { return nil }, nil
    }

    exporter, err := otlptracehttp.New(ctx,
        otlptracehttp.WithEndpoint(cfg.Trace.Endpoint),
        otlptracehttp.WithInsecure(),
    )
    if err != nil {
        return nil, err
    }

    res := resource.NewSchemaless(semconv.ServiceName(serviceName))

    tp := sdktrace.NewTracerProvider(
        sdktrace.WithBatcher(exporter),
        sdktrace.WithResource(res),
    )
    otel.SetTracerProvider(tp)
    return tp.Shutdown, nil
}
