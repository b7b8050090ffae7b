// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/z5labs/apidocs"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultRoutePrefix is the path segment documents are served below.
const DefaultRoutePrefix = "swagger"

// UseOptions configure how [UseSwagger] serves documents.
type UseOptions struct {
	RoutePrefix string
}

// UseOption configures [UseOptions].
type UseOption func(*UseOptions)

// RoutePrefix serves documents below "/{prefix}" instead of [DefaultRoutePrefix].
func RoutePrefix(prefix string) UseOption {
	return func(uo *UseOptions) {
		uo.RoutePrefix = strings.Trim(prefix, "/")
	}
}

// DocumentPath is the path a document is served at, relative to the
// route prefix, e.g. "v1/swagger.json".
func DocumentPath(name string, format Format) string {
	return name + "/swagger." + string(format)
}

// UseSwagger serves every document of docs as
// GET /{prefix}/{document}/swagger.json and GET /{prefix}/{document}/swagger.yaml.
// Unknown documents are answered with 404.
func UseSwagger(r chi.Router, docs *Documents, opts ...UseOption) {
	uo := &UseOptions{
		RoutePrefix: DefaultRoutePrefix,
	}
	for _, opt := range opts {
		opt(uo)
	}

	h := &documentHandler{
		log:  apidocs.Logger("github.com/z5labs/apidocs/swagger"),
		docs: docs,
	}
	requests, err := otel.Meter("github.com/z5labs/apidocs/swagger").Int64Counter(
		"apidocs.document.requests",
		metric.WithDescription("Number of generated document requests served."),
	)
	if err == nil {
		h.requests = requests
	}

	for _, format := range []Format{JSON, YAML} {
		route := "/" + uo.RoutePrefix + "/{document}/swagger." + string(format)
		r.Method(http.MethodGet, route, otelhttp.WithRouteTag(route, h.serve(format)))
	}
}

type documentHandler struct {
	log      *slog.Logger
	docs     *Documents
	requests metric.Int64Counter
}

var contentTypes = map[Format]string{
	JSON: "application/json; charset=utf-8",
	YAML: "application/yaml; charset=utf-8",
}

func (h *documentHandler) serve(format Format) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		name := chi.URLParam(r, "document")

		if h.requests != nil {
			h.requests.Add(ctx, 1, metric.WithAttributes(
				attribute.String("document", name),
				attribute.String("format", string(format)),
			))
		}

		b, err := h.docs.Marshal(name, format)
		if errors.Is(err, ErrUnknownDocument) {
			h.log.DebugContext(ctx, "unknown document requested", slog.String("document", name))
			http.NotFound(w, r)
			return
		}
		if err != nil {
			h.log.ErrorContext(ctx, "failed to serialize document", slog.String("document", name), slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(b)
		if err != nil {
			h.log.ErrorContext(ctx, "failed to write document", slog.String("document", name), slog.Any("error", err))
		}
	})
}
