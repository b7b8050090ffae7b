// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/z5labs/apidocs/health"
	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/version"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/openapi-go/openapi3"
)

// ApiOptions holds configuration values used when constructing an [Api].
type ApiOptions struct {
	pathBase         string
	liveness         health.Monitor
	readiness        health.Monitor
	notFound         http.Handler
	methodNotAllowed http.Handler

	versions       []version.Descriptor
	defaultVersion *version.Version

	scope     *controllerScope
	endpoints []*endpoint
}

// ApiOption is an interface for configuring an [Api].
//
// Common implementations include:
//   - [Handle] - registers HTTP operations
//   - [Controller] - groups operations sharing metadata
//   - [ApiVersion] - declares an API version
//   - [Readiness] - configures readiness probe endpoint
//   - [Liveness] - configures liveness probe endpoint
type ApiOption interface {
	ApplyApiOption(*ApiOptions)
}

type apiOptionFunc func(*ApiOptions)

func (f apiOptionFunc) ApplyApiOption(ao *ApiOptions) {
	f(ao)
}

// Readiness configures the monitor reported at GET /health/readiness.
//
// See [Liveness, Readiness, and Startup Probes] for more details.
//
// [Liveness, Readiness, and Startup Probes]: https://kubernetes.io/docs/concepts/configuration/liveness-readiness-startup-probes/
func Readiness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.readiness = m
	})
}

// Liveness configures the monitor reported at GET /health/liveness.
//
// See [Liveness, Readiness, and Startup Probes] for more details.
//
// [Liveness, Readiness, and Startup Probes]: https://kubernetes.io/docs/concepts/configuration/liveness-readiness-startup-probes/
func Liveness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.liveness = m
	})
}

// NotFound configures a custom handler for requests that don't match any registered routes.
func NotFound(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.notFound = h
	})
}

// MethodNotAllowed configures a custom handler for requests to valid routes
// with unsupported HTTP methods.
func MethodNotAllowed(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.methodNotAllowed = h
	})
}

// PathBase mounts the whole [Api] below base, e.g. "/v1/sample".
// Routes added through [Api.Router] are relative to base as well, while
// generated documents keep the operation paths without it.
func PathBase(base string) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		base = strings.TrimSuffix(base, "/")
		if base != "" && !strings.HasPrefix(base, "/") {
			base = "/" + base
		}
		ao.pathBase = base
	})
}

// VersionOptions configure a version declared with [ApiVersion].
type VersionOptions struct {
	deprecated bool
}

// VersionOption sets a value on [VersionOptions].
type VersionOption func(*VersionOptions)

// Deprecated marks an API version as deprecated.
func Deprecated() VersionOption {
	return func(vo *VersionOptions) {
		vo.deprecated = true
	}
}

// ApiVersion declares an API version, e.g. "1" or "2.1". It panics if v is
// not a valid version.
//
// Operations are assigned to versions with [Versions]. Declaring a version
// which no operation uses still produces a (possibly empty) document for it.
func ApiVersion(v string, opts ...VersionOption) ApiOption {
	ver := version.MustParse(v)

	return apiOptionFunc(func(ao *ApiOptions) {
		vo := &VersionOptions{}
		for _, opt := range opts {
			opt(vo)
		}

		desc := version.Describe(ver, vo.deprecated)
		i := slices.IndexFunc(ao.versions, func(d version.Descriptor) bool {
			return d.Version.Compare(ver) == 0
		})
		if i >= 0 {
			ao.versions[i] = desc
			return
		}
		ao.versions = append(ao.versions, desc)
	})
}

// DefaultApiVersion assigns every operation registered without [Versions]
// to v. It panics if v is not a valid version.
func DefaultApiVersion(v string) ApiOption {
	ver := version.MustParse(v)

	return apiOptionFunc(func(ao *ApiOptions) {
		ao.defaultVersion = &ver
	})
}

// Api is a chi based [http.Handler] which records an [swagger.ApiDescription]
// for every operation registered with [Handle].
//
// # Standard Features
//
// Every Api automatically provides:
//   - Default liveness probe at GET /health/liveness (returns 200 OK)
//   - Default readiness probe at GET /health/readiness (returns 200 OK)
//   - Standard 404 Not Found handling
//   - Standard 405 Method Not Allowed handling
//
// # Usage
//
//	listPets := rest.Handle(http.MethodGet, rest.BasePath("/pets"), rest.ProduceJson(listPetsHandler))
//	api := rest.NewApi("Pet Store", "1.0.0", listPets)
//	http.ListenAndServe(":8080", api)
type Api struct {
	title    string
	version  string
	pathBase string

	handler http.Handler
	router  chi.Router

	versions       []version.Descriptor
	defaultVersion *version.Version
	endpoints      []*endpoint
}

// NewApi creates a new [Api] with the specified title and version.
//
// Example:
//
//	api := rest.NewApi(
//	    "Bookstore API",
//	    "2.1.0",
//	    rest.ApiVersion("1", rest.Deprecated()),
//	    rest.ApiVersion("2"),
//	    rest.Handle(http.MethodGet, rest.BasePath("/books"), listBooks, rest.Versions("1", "2")),
//	    rest.Handle(http.MethodPost, rest.BasePath("/books"), createBook, rest.Versions("2")),
//	)
func NewApi(title, apiVersion string, opts ...ApiOption) *Api {
	healthy := &health.Binary{}
	healthy.MarkHealthy()

	ao := &ApiOptions{
		liveness:  healthy,
		readiness: healthy,
	}
	for _, opt := range opts {
		opt.ApplyApiOption(ao)
	}

	router := chi.NewRouter()
	if ao.notFound != nil {
		router.NotFound(ao.notFound.ServeHTTP)
	}
	if ao.methodNotAllowed != nil {
		router.MethodNotAllowed(ao.methodNotAllowed.ServeHTTP)
	}
	router.Method(http.MethodGet, "/health/liveness", health.Handler(ao.liveness))
	router.Method(http.MethodGet, "/health/readiness", health.Handler(ao.readiness))

	for _, ep := range ao.endpoints {
		router.Method(ep.method, ep.path, ep.handler)
	}

	var handler http.Handler = router
	if ao.pathBase != "" {
		base := chi.NewRouter()
		base.Mount(ao.pathBase, router)
		handler = base
	}

	return &Api{
		title:          title,
		version:        apiVersion,
		pathBase:       ao.pathBase,
		handler:        handler,
		router:         router,
		versions:       ao.versions,
		defaultVersion: ao.defaultVersion,
		endpoints:      ao.endpoints,
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (api *Api) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	api.handler.ServeHTTP(w, req)
}

// Router returns the router operations are served from, below any
// [PathBase]. Documentation routes are added to it.
func (api *Api) Router() chi.Router {
	return api.router
}

// PathBase implements the [swagger.PathBaseProvider] interface.
func (api *Api) PathBase() string {
	return api.pathBase
}

// Info returns the title and version given to [NewApi] as a document template.
func (api *Api) Info() swagger.Info {
	return swagger.Info{
		Title:   api.title,
		Version: api.version,
	}
}

// ApiVersionDescriptions implements the [version.Provider] interface.
//
// The result holds every version declared with [ApiVersion], every version
// referenced by [Versions] and the [DefaultApiVersion] if an operation
// relies on it, sorted ascending.
func (api *Api) ApiVersionDescriptions() []version.Descriptor {
	descs := slices.Clone(api.versions)
	add := func(v version.Version) {
		known := slices.ContainsFunc(descs, func(d version.Descriptor) bool {
			return d.Version.Compare(v) == 0
		})
		if !known {
			descs = append(descs, version.Describe(v, false))
		}
	}

	for _, ep := range api.endpoints {
		for _, v := range api.versionsOf(ep) {
			add(v)
		}
	}

	version.Sort(descs)
	return descs
}

func (api *Api) versionsOf(ep *endpoint) []version.Version {
	if len(ep.versions) > 0 {
		return ep.versions
	}
	if api.defaultVersion != nil {
		return []version.Version{*api.defaultVersion}
	}
	return nil
}

// ApiDescriptions implements the [swagger.ApiDescriptionProvider] interface.
//
// A versioned operation produces one description per version it belongs to,
// grouped under the descriptor of the matching version however either one
// spells it, so "1" and "1.0" share a document. Operations of an
// unversioned Api produce a single description with an empty group name.
func (api *Api) ApiDescriptions() []swagger.ApiDescription {
	versions := api.ApiVersionDescriptions()

	var descs []swagger.ApiDescription
	for _, ep := range api.endpoints {
		evs := api.versionsOf(ep)
		if len(evs) == 0 {
			descs = append(descs, ep.describe("", false))
			continue
		}

		for _, v := range evs {
			i := slices.IndexFunc(versions, func(d version.Descriptor) bool {
				return d.Version.Compare(v) == 0
			})
			d := versions[i]
			descs = append(descs, ep.describe(d.GroupName, d.Deprecated))
		}
	}
	return descs
}

type endpoint struct {
	method  string
	path    string
	handler http.Handler

	operation       openapi3.Operation
	securitySchemes map[string]openapi3.SecuritySchemeOrRef
	versions        []version.Version
	declaring       []any
	metadata        []any
}

func (ep *endpoint) describe(group string, deprecated bool) swagger.ApiDescription {
	return swagger.ApiDescription{
		GroupName:         group,
		Method:            ep.method,
		Path:              ep.path,
		Operation:         ep.operation,
		SecuritySchemes:   ep.securitySchemes,
		Deprecated:        deprecated,
		DeclaringMetadata: ep.declaring,
		Metadata:          ep.metadata,
	}
}
