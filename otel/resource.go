// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otel configures the OpenTelemetry SDK for the documentation host.
//
// Every component is a [config.Reader] so providers are only constructed
// while the application is being built. Environment readers follow the
// OpenTelemetry naming, e.g. OTEL_SERVICE_NAME and OTEL_METRIC_EXPORT_INTERVAL.
package otel

import (
	"context"

	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
)

// Resource describes the service producing telemetry.
type Resource struct {
	ServiceName    config.Reader[string]
	ServiceVersion config.Reader[string]
	SchemaURL      config.Reader[string]
}

// ResourceOption configures a [Resource].
type ResourceOption func(*Resource)

// ServiceName sets the service.name attribute.
func ServiceName(name config.Reader[string]) ResourceOption {
	return func(r *Resource) {
		r.ServiceName = name
	}
}

// ServiceVersion sets the service.version attribute.
func ServiceVersion(version config.Reader[string]) ResourceOption {
	return func(r *Resource) {
		r.ServiceVersion = version
	}
}

// ResourceFromEnv reads the service name and version from OTEL_SERVICE_NAME
// and OTEL_SERVICE_VERSION. Later options take precedence.
func ResourceFromEnv(opts ...ResourceOption) Resource {
	r := Resource{
		ServiceName:    config.Env("OTEL_SERVICE_NAME"),
		ServiceVersion: config.Env("OTEL_SERVICE_VERSION"),
		SchemaURL:      config.EmptyReader[string](),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Read implements the [config.Reader] interface.
func (r Resource) Read(ctx context.Context) (config.Value[*resource.Resource], error) {
	opts := []resource.Option{
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(config.MustOr(ctx, "apidocs", r.ServiceName)),
			semconv.ServiceVersion(config.MustOr(ctx, "", r.ServiceVersion)),
		),
	}
	if url := config.MustOr(ctx, "", r.SchemaURL); url != "" {
		opts = append(opts, resource.WithSchemaURL(url))
	}

	rsc, err := resource.New(ctx, opts...)
	if err != nil {
		return config.Value[*resource.Resource]{}, err
	}
	return config.ValueOf(rsc), nil
}
