// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sample

import (
	"context"
	"time"

	"github.com/z5labs/apidocs/config"
	"github.com/z5labs/apidocs/otel"
	"github.com/z5labs/apidocs/otel/otlp"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// SDK exports every signal over OTLP/gRPC once an OTLP endpoint is
// configured. Without one telemetry is discarded.
func SDK(serviceName string) otel.SDK {
	rsc := otel.ResourceFromEnv(otel.ServiceName(config.Default(serviceName, config.Env("OTEL_SERVICE_NAME"))))

	return otel.SDK{
		TracerProvider: config.Map(otlp.EndpointFromEnv(otlp.Traces), func(ctx context.Context, endpoint string) (trace.TracerProvider, error) {
			tp := otel.TracerProviderFromEnv(rsc, otlp.GrpcTraceExporter(otlp.GrpcConn(config.ReaderOf(endpoint))))
			return config.Read[trace.TracerProvider](ctx, tp)
		}),
		MeterProvider: config.Map(otlp.EndpointFromEnv(otlp.Metrics), func(ctx context.Context, endpoint string) (metric.MeterProvider, error) {
			mp := otel.MeterProviderFromEnv(rsc, otlp.GrpcMetricExporter(otlp.GrpcConn(config.ReaderOf(endpoint))))
			return config.Read[metric.MeterProvider](ctx, mp)
		}),
		LoggerProvider: config.Map(otlp.EndpointFromEnv(otlp.Logs), func(ctx context.Context, endpoint string) (log.LoggerProvider, error) {
			lp := otel.LoggerProviderFromEnv(rsc, otlp.GrpcLogExporter(otlp.GrpcConn(config.ReaderOf(endpoint))))
			return config.Read[log.LoggerProvider](ctx, lp)
		}),
		RuntimeMetricsInterval: config.Default(15*time.Second, config.DurationFromString(config.Env("OTEL_METRIC_EXPORT_INTERVAL"))),
	}
}
