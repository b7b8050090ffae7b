// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"errors"
	"time"

	"github.com/z5labs/apidocs/app"
	"github.com/z5labs/apidocs/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SDK holds the providers registered globally while the application runs.
// Unset readers fall back to no-op providers and W3C propagation.
type SDK struct {
	TextMapPropagator config.Reader[propagation.TextMapPropagator]
	TracerProvider    config.Reader[trace.TracerProvider]
	MeterProvider     config.Reader[metric.MeterProvider]
	LoggerProvider    config.Reader[log.LoggerProvider]

	// RuntimeMetricsInterval enables Go runtime metrics when set.
	RuntimeMetricsInterval config.Reader[time.Duration]
}

// Runtime shuts the providers down once the wrapped runtime returns.
type Runtime struct {
	inner     app.Runtime
	providers []any
}

// Build registers the providers of sdk globally before building the
// inner runtime, so anything built by builder can already emit telemetry.
func Build[T app.Runtime](sdk SDK, builder app.Builder[T]) app.Builder[Runtime] {
	return app.BuilderFunc[Runtime](func(ctx context.Context) (Runtime, error) {
		tmp := config.MustOr[propagation.TextMapPropagator](
			ctx,
			propagation.NewCompositeTextMapPropagator(propagation.Baggage{}, propagation.TraceContext{}),
			sdk.TextMapPropagator,
		)
		tp := config.MustOr[trace.TracerProvider](ctx, tracenoop.NewTracerProvider(), sdk.TracerProvider)
		mp := config.MustOr[metric.MeterProvider](ctx, metricnoop.NewMeterProvider(), sdk.MeterProvider)
		lp := config.MustOr[log.LoggerProvider](ctx, lognoop.NewLoggerProvider(), sdk.LoggerProvider)

		otel.SetTextMapPropagator(tmp)
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		global.SetLoggerProvider(lp)

		interval, err := config.Read(ctx, sdk.RuntimeMetricsInterval)
		if err != nil {
			return Runtime{}, err
		}
		if interval > 0 {
			err = RuntimeMetrics(interval)
			if err != nil {
				return Runtime{}, err
			}
		}

		inner, err := builder.Build(ctx)
		if err != nil {
			return Runtime{}, err
		}

		return Runtime{
			inner:     inner,
			providers: []any{tp, mp, lp},
		}, nil
	})
}

type shutdowner interface {
	Shutdown(context.Context) error
}

// Run implements the [app.Runtime] interface. Providers are shut down even
// when the inner runtime fails and their errors are joined with its error.
func (rt Runtime) Run(ctx context.Context) error {
	runErr := rt.inner.Run(ctx)

	var shutdownErr error
	for _, p := range rt.providers {
		s, ok := p.(shutdowner)
		if !ok {
			continue
		}
		shutdownErr = errors.Join(shutdownErr, s.Shutdown(context.Background()))
	}
	return errors.Join(runErr, shutdownErr)
}
