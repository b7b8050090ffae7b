// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"time"

	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// MeterProvider builds a [sdkmetric.MeterProvider] with a periodic reader.
type MeterProvider struct {
	Resource       config.Reader[*resource.Resource]
	Exporter       config.Reader[sdkmetric.Exporter]
	ExportInterval config.Reader[time.Duration]
}

// MeterProviderFromEnv reads the export interval from OTEL_METRIC_EXPORT_INTERVAL.
func MeterProviderFromEnv(rsc config.Reader[*resource.Resource], exporter config.Reader[sdkmetric.Exporter]) MeterProvider {
	return MeterProvider{
		Resource:       rsc,
		Exporter:       exporter,
		ExportInterval: config.DurationFromString(config.Env("OTEL_METRIC_EXPORT_INTERVAL")),
	}
}

// Read implements the [config.Reader] interface.
func (mp MeterProvider) Read(ctx context.Context) (config.Value[metric.MeterProvider], error) {
	rsc := config.Must(ctx, mp.Resource)
	exporter := config.Must(ctx, mp.Exporter)

	reader := sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(config.MustOr(ctx, time.Minute, mp.ExportInterval)),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(rsc),
		sdkmetric.WithReader(reader),
	)
	return config.ValueOf[metric.MeterProvider](provider), nil
}

// RuntimeMetrics starts collecting Go runtime metrics into the global
// meter provider. It must run after the provider has been registered.
func RuntimeMetrics(interval time.Duration) error {
	return runtime.Start(
		runtime.WithMinimumReadMemStatsInterval(interval),
	)
}
