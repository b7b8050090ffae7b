// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"time"

	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
)

// LoggerProvider builds a batching [sdklog.LoggerProvider].
type LoggerProvider struct {
	Resource       config.Reader[*resource.Resource]
	Exporter       config.Reader[sdklog.Exporter]
	ExportInterval config.Reader[time.Duration]
	MaxBatchSize   config.Reader[int]
}

// LoggerProviderFromEnv reads the batch settings from OTEL_BLRP_SCHEDULE_DELAY
// and OTEL_BLRP_MAX_EXPORT_BATCH_SIZE.
func LoggerProviderFromEnv(rsc config.Reader[*resource.Resource], exporter config.Reader[sdklog.Exporter]) LoggerProvider {
	return LoggerProvider{
		Resource:       rsc,
		Exporter:       exporter,
		ExportInterval: config.DurationFromString(config.Env("OTEL_BLRP_SCHEDULE_DELAY")),
		MaxBatchSize:   config.IntFromString(config.Env("OTEL_BLRP_MAX_EXPORT_BATCH_SIZE")),
	}
}

// Read implements the [config.Reader] interface.
func (lp LoggerProvider) Read(ctx context.Context) (config.Value[log.LoggerProvider], error) {
	rsc := config.Must(ctx, lp.Resource)
	exporter := config.Must(ctx, lp.Exporter)

	processor := sdklog.NewBatchProcessor(
		exporter,
		sdklog.WithExportInterval(config.MustOr(ctx, time.Second, lp.ExportInterval)),
		sdklog.WithExportMaxBatchSize(config.MustOr(ctx, 512, lp.MaxBatchSize)),
	)

	provider := sdklog.NewLoggerProvider(
		sdklog.WithResource(rsc),
		sdklog.WithProcessor(processor),
	)
	return config.ValueOf[log.LoggerProvider](provider), nil
}
