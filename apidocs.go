// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package apidocs assembles versioned OpenAPI documentation for HTTP
// services built with the rest package.
//
// The packages are layered as follows:
//   - version describes the API versions a service exposes
//   - swagger generates one OpenAPI document per version group
//   - docs registers those documents and mounts the explorer and
//     reference viewer pages
//
// Applications are assembled with the app, http and otel packages.
package apidocs

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger returns a [slog.Logger] which records to the global
// OpenTelemetry logger provider.
func Logger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// LogHandler returns the [slog.Handler] backing [Logger].
func LogHandler(name string) slog.Handler {
	return otelslog.NewHandler(name)
}
