// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otlp exports documentation host telemetry over OTLP.
//
// Each signal can be exported over gRPC or HTTP/protobuf. Endpoints are read
// from the signal specific OTEL_EXPORTER_OTLP_{TRACES,METRICS,LOGS}_ENDPOINT
// variable and fall back to OTEL_EXPORTER_OTLP_ENDPOINT.
package otlp

import (
	"context"

	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Signal is a telemetry signal type.
type Signal string

const (
	Traces  Signal = "TRACES"
	Metrics Signal = "METRICS"
	Logs    Signal = "LOGS"
)

// EndpointFromEnv reads the endpoint configured for s.
func EndpointFromEnv(s Signal) config.Reader[string] {
	return config.Or(
		config.Env("OTEL_EXPORTER_OTLP_"+string(s)+"_ENDPOINT"),
		config.Env("OTEL_EXPORTER_OTLP_ENDPOINT"),
	)
}

// GrpcConn dials target without transport security.
func GrpcConn(target config.Reader[string]) config.Reader[*grpc.ClientConn] {
	return config.ReaderFunc[*grpc.ClientConn](func(ctx context.Context) (config.Value[*grpc.ClientConn], error) {
		cc, err := grpc.NewClient(
			config.Must(ctx, target),
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return config.Value[*grpc.ClientConn]{}, err
		}
		return config.ValueOf(cc), nil
	})
}

func exporter[T, E any](src config.Reader[T], f func(context.Context, T) (E, error)) config.Reader[E] {
	return config.ReaderFunc[E](func(ctx context.Context) (config.Value[E], error) {
		exp, err := f(ctx, config.Must(ctx, src))
		if err != nil {
			return config.Value[E]{}, err
		}
		return config.ValueOf(exp), nil
	})
}

// GrpcTraceExporter exports spans over conn.
func GrpcTraceExporter(conn config.Reader[*grpc.ClientConn]) config.Reader[sdktrace.SpanExporter] {
	return exporter(conn, func(ctx context.Context, cc *grpc.ClientConn) (sdktrace.SpanExporter, error) {
		return otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(cc))
	})
}

// GrpcMetricExporter exports metrics over conn.
func GrpcMetricExporter(conn config.Reader[*grpc.ClientConn]) config.Reader[sdkmetric.Exporter] {
	return exporter(conn, func(ctx context.Context, cc *grpc.ClientConn) (sdkmetric.Exporter, error) {
		return otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(cc))
	})
}

// GrpcLogExporter exports log records over conn.
func GrpcLogExporter(conn config.Reader[*grpc.ClientConn]) config.Reader[sdklog.Exporter] {
	return exporter(conn, func(ctx context.Context, cc *grpc.ClientConn) (sdklog.Exporter, error) {
		return otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(cc))
	})
}

// HttpTraceExporter exports spans to the "host:port" endpoint.
func HttpTraceExporter(endpoint config.Reader[string]) config.Reader[sdktrace.SpanExporter] {
	return exporter(endpoint, func(ctx context.Context, ep string) (sdktrace.SpanExporter, error) {
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(ep))
	})
}

// HttpMetricExporter exports metrics to the "host:port" endpoint.
func HttpMetricExporter(endpoint config.Reader[string]) config.Reader[sdkmetric.Exporter] {
	return exporter(endpoint, func(ctx context.Context, ep string) (sdkmetric.Exporter, error) {
		return otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(ep))
	})
}

// HttpLogExporter exports log records to the "host:port" endpoint.
func HttpLogExporter(endpoint config.Reader[string]) config.Reader[sdklog.Exporter] {
	return exporter(endpoint, func(ctx context.Context, ep string) (sdklog.Exporter, error) {
		return otlploghttp.New(ctx, otlploghttp.WithEndpoint(ep))
	})
}
