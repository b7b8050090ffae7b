// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"time"

	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerProvider builds a batching [sdktrace.TracerProvider].
type TracerProvider struct {
	Resource       config.Reader[*resource.Resource]
	Exporter       config.Reader[sdktrace.SpanExporter]
	SampleRatio    config.Reader[float64]
	ExportInterval config.Reader[time.Duration]
	MaxBatchSize   config.Reader[int]
}

// TracerProviderFromEnv reads the sampling ratio from OTEL_TRACES_SAMPLER_ARG
// and the batch settings from OTEL_BSP_SCHEDULE_DELAY and
// OTEL_BSP_MAX_EXPORT_BATCH_SIZE.
func TracerProviderFromEnv(rsc config.Reader[*resource.Resource], exporter config.Reader[sdktrace.SpanExporter]) TracerProvider {
	return TracerProvider{
		Resource:       rsc,
		Exporter:       exporter,
		SampleRatio:    config.Float64FromString(config.Env("OTEL_TRACES_SAMPLER_ARG")),
		ExportInterval: config.DurationFromString(config.Env("OTEL_BSP_SCHEDULE_DELAY")),
		MaxBatchSize:   config.IntFromString(config.Env("OTEL_BSP_MAX_EXPORT_BATCH_SIZE")),
	}
}

// Read implements the [config.Reader] interface.
func (tp TracerProvider) Read(ctx context.Context) (config.Value[trace.TracerProvider], error) {
	rsc := config.Must(ctx, tp.Resource)
	exporter := config.Must(ctx, tp.Exporter)

	bsp := sdktrace.NewBatchSpanProcessor(
		exporter,
		sdktrace.WithBatchTimeout(config.MustOr(ctx, 5*time.Second, tp.ExportInterval)),
		sdktrace.WithMaxExportBatchSize(config.MustOr(ctx, 512, tp.MaxBatchSize)),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(rsc),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.MustOr(ctx, 1.0, tp.SampleRatio))),
		sdktrace.WithSpanProcessor(bsp),
	)
	return config.ValueOf[trace.TracerProvider](provider), nil
}
