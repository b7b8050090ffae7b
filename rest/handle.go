// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"net/http"
	"strconv"

	"github.com/z5labs/apidocs"
	"github.com/z5labs/apidocs/version"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
	"github.com/z5labs/sdk-go/try"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Handler extends [http.Handler] with OpenAPI schema information.
// Implementations define how to handle HTTP requests and provide metadata
// for generating OpenAPI documents.
//
// See [ProduceJson], [ConsumeJson] and [HandleJson] for implementations.
type Handler interface {
	http.Handler

	RequestBody() openapi3.RequestBodyOrRef
	Responses() openapi3.Responses
}

type securityScheme struct {
	name   string
	scheme openapi3.SecurityScheme
}

// OperationOptions holds configuration for an HTTP operation registered with [Handle].
type OperationOptions struct {
	def        openapi3.Operation
	parameters []openapi3.ParameterOrRef
	transforms []func(*http.Request) (*http.Request, error)
	errHandler ErrorHandler

	securitySchemes []securityScheme
	versions        []version.Version

	declaring  bool
	controller []any
	metadata   []any
}

// OperationOption configures an operation created by [Handle].
type OperationOption func(*OperationOptions)

func (oo *OperationOptions) addMetadata(vs ...any) {
	if oo.declaring {
		oo.controller = append(oo.controller, vs...)
		return
	}
	oo.metadata = append(oo.metadata, vs...)
}

// OnError configures a custom [ErrorHandler] for an operation.
// If not specified, operations use a default error handler that logs errors
// and returns appropriate HTTP status codes.
func OnError(eh ErrorHandler) OperationOption {
	return func(oo *OperationOptions) {
		oo.errHandler = eh
	}
}

// Summary sets the short summary of the operation.
func Summary(s string) OperationOption {
	return func(oo *OperationOptions) {
		oo.def.Summary = ptr.Ref(s)
	}
}

// Description sets the long description of the operation.
func Description(s string) OperationOption {
	return func(oo *OperationOptions) {
		oo.def.Description = ptr.Ref(s)
	}
}

// OperationID sets the unique identifier of the operation.
func OperationID(id string) OperationOption {
	return func(oo *OperationOptions) {
		oo.def.ID = ptr.Ref(id)
	}
}

// Tags appends tags to the operation.
func Tags(tags ...string) OperationOption {
	return func(oo *OperationOptions) {
		oo.def.Tags = append(oo.def.Tags, tags...)
	}
}

// Versions assigns the operation to the given API versions. It panics if
// any of vs is not a valid version.
func Versions(vs ...string) OperationOption {
	versions := make([]version.Version, len(vs))
	for i, v := range vs {
		versions[i] = version.MustParse(v)
	}

	return func(oo *OperationOptions) {
		oo.versions = append(oo.versions, versions...)
	}
}

// Metadata attaches arbitrary values to the operation. Documentation rules
// discover them through [swagger.MetadataOf].
//
// [swagger.MetadataOf]: https://pkg.go.dev/github.com/z5labs/apidocs/swagger#MetadataOf
func Metadata(vs ...any) OperationOption {
	return func(oo *OperationOptions) {
		oo.addMetadata(vs...)
	}
}

type controllerScope struct {
	name string
	opts []OperationOption
}

// Controller groups operations under a named declaring type. opts apply to
// every operation registered by ops and any metadata they attach is recorded
// as declaring metadata. Operations without tags are tagged with name.
//
// Example:
//
//	rest.Controller(
//	    "Pets",
//	    []rest.OperationOption{rest.Authorize()},
//	    rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets),
//	    rest.Handle(http.MethodPost, rest.BasePath("/pets"), createPet),
//	)
func Controller(name string, opts []OperationOption, ops ...ApiOption) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		parent := ao.scope
		ao.scope = &controllerScope{
			name: name,
			opts: opts,
		}
		defer func() {
			ao.scope = parent
		}()

		for _, op := range ops {
			op.ApplyApiOption(ao)
		}
	})
}

type operationHandler struct {
	tracer     trace.Tracer
	errHandler ErrorHandler
	transforms []func(*http.Request) (*http.Request, error)
	inner      http.Handler
}

// Handle registers an HTTP operation (endpoint) with an [Api].
//
// The operation is routed with the given method and path and described to
// the documentation generator with the schemas provided by h.
//
// Example:
//
//	getPet := rest.Handle(
//	    http.MethodGet,
//	    rest.BasePath("/pets").Param("id"),
//	    rest.ProduceJson(getPetHandler),
//	    rest.Versions("1", "2"),
//	    rest.QueryParam("fields", rest.Describe("fields to include")),
//	    rest.ResponseHeader("X-Request-Id", openapi3.SchemaTypeString, "request identifier"),
//	)
//	api := rest.NewApi("Pet Store", "1.0.0", getPet)
func Handle(method string, path Path, h Handler, opts ...OperationOption) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		var pathParams []OperationOption
		for _, pp := range path.params() {
			pathParams = append(pathParams, param(pp.name, openapi3.ParameterInPath, append([]ParameterOption{Required()}, pp.opts...)...))
		}

		oo := &OperationOptions{
			errHandler: defaultErrorHandler(apidocs.LogHandler("github.com/z5labs/apidocs/rest")),
		}
		if ao.scope != nil {
			oo.declaring = true
			for _, opt := range ao.scope.opts {
				opt(oo)
			}
			oo.declaring = false
		}
		for _, opt := range append(pathParams, opts...) {
			opt(oo)
		}

		op := oo.def
		op.Parameters = oo.parameters
		if len(op.Tags) == 0 && ao.scope != nil {
			op.Tags = []string{ao.scope.name}
		}

		reqBody := h.RequestBody()
		if reqBody.RequestBody != nil {
			op.RequestBody = &reqBody
		}

		op.Responses = h.Responses()
		if len(op.Responses.MapOfResponseOrRefValues) == 0 {
			op.Responses.MapOfResponseOrRefValues = map[string]openapi3.ResponseOrRef{
				strconv.Itoa(http.StatusOK): {
					Response: &openapi3.Response{
						Description: http.StatusText(http.StatusOK),
					},
				},
			}
		}

		var schemes map[string]openapi3.SecuritySchemeOrRef
		for _, s := range oo.securitySchemes {
			if schemes == nil {
				schemes = make(map[string]openapi3.SecuritySchemeOrRef)
			}

			scheme := s.scheme
			schemes[s.name] = openapi3.SecuritySchemeOrRef{
				SecurityScheme: &scheme,
			}
			op.Security = append(op.Security, map[string][]string{
				s.name: {},
			})
		}

		pattern := path.String()
		handler := otelhttp.WithRouteTag(pattern, &operationHandler{
			tracer:     otel.Tracer("github.com/z5labs/apidocs/rest"),
			errHandler: oo.errHandler,
			transforms: oo.transforms,
			inner:      h,
		})

		ao.endpoints = append(ao.endpoints, &endpoint{
			method:          method,
			path:            pattern,
			handler:         handler,
			operation:       op,
			securitySchemes: schemes,
			versions:        oo.versions,
			declaring:       oo.controller,
			metadata:        oo.metadata,
		})
	})
}

// ServeHTTP implements [http.Handler] for operation handlers.
// It applies request transformations (parameter validation, auth checks),
// delegates to the inner handler, and handles any errors via the configured
// error handler.
func (o *operationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	spanCtx, span := o.tracer.Start(r.Context(), "operationHandler.ServeHTTP")
	defer span.End()

	var err error
	defer func() {
		if err == nil {
			return
		}

		span.RecordError(err)
		o.errHandler.OnError(spanCtx, w, err)
	}()
	defer try.Recover(&err)

	r = r.WithContext(withErrorHandler(spanCtx, o.errHandler))
	for _, transform := range o.transforms {
		r, err = transform(r)
		if err != nil {
			return
		}
	}

	o.inner.ServeHTTP(w, r)
}
