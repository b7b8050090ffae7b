// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"slices"

	"github.com/z5labs/apidocs/swagger"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// Cookie declares a cookie read by the operation.
//
//	rest.Cookie("session", rest.Required())
func Cookie(name string, opts ...ParameterOption) OperationOption {
	return param(name, openapi3.ParameterInCookie, opts...)
}

// Header declares a request header read by the operation.
//
//	rest.Header("X-Request-Id", rest.Regex(regexp.MustCompile(`^[a-f0-9]{32}$`)))
func Header(name string, opts ...ParameterOption) OperationOption {
	return param(name, openapi3.ParameterInHeader, opts...)
}

// QueryParam declares a query parameter read by the operation.
//
//	rest.QueryParam("limit", rest.Type(openapi3.SchemaTypeInteger, "int32"), rest.DefaultValue(20))
func QueryParam(name string, opts ...ParameterOption) OperationOption {
	return param(name, openapi3.ParameterInQuery, opts...)
}

type paramKey struct {
	name string
	in   openapi3.ParameterIn
}

type paramValue struct {
	cookies []*http.Cookie
	values  []string
}

func lookup(ctx context.Context, name string, in openapi3.ParameterIn) paramValue {
	v, _ := ctx.Value(paramKey{name: name, in: in}).(paramValue)
	return v
}

// CookieValue returns the cookies named by a [Cookie] parameter.
func CookieValue(ctx context.Context, name string) []*http.Cookie {
	return lookup(ctx, name, openapi3.ParameterInCookie).cookies
}

// HeaderValue returns the values of a [Header] parameter.
func HeaderValue(ctx context.Context, name string) []string {
	return lookup(ctx, name, openapi3.ParameterInHeader).values
}

// QueryParamValue returns the values of a [QueryParam] parameter.
func QueryParamValue(ctx context.Context, name string) []string {
	return lookup(ctx, name, openapi3.ParameterInQuery).values
}

// PathParamValue returns the value of a path parameter declared with [Path.Param].
func PathParamValue(ctx context.Context, name string) string {
	vs := lookup(ctx, name, openapi3.ParameterInPath).values
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func readParam(r *http.Request, name string, in openapi3.ParameterIn) paramValue {
	switch in {
	case openapi3.ParameterInCookie:
		cookies := r.CookiesNamed(name)
		values := make([]string, len(cookies))
		for i, c := range cookies {
			values[i] = c.Value
		}
		return paramValue{cookies: cookies, values: values}
	case openapi3.ParameterInHeader:
		return paramValue{values: r.Header.Values(name)}
	case openapi3.ParameterInPath:
		if v := chi.URLParam(r, name); v != "" {
			return paramValue{values: []string{v}}
		}
		return paramValue{}
	case openapi3.ParameterInQuery:
		return paramValue{values: r.URL.Query()[name]}
	default:
		panic("rest: unsupported parameter location: " + in)
	}
}

// ParameterOptions holds the documented parameter and the operation it
// belongs to.
type ParameterOptions struct {
	operationOptions *OperationOptions
	def              *openapi3.Parameter
}

// ParameterOption configures a parameter created by [Cookie], [Header],
// [QueryParam] or [Path.Param].
type ParameterOption func(*ParameterOptions)

func (po *ParameterOptions) validate(check func(paramValue) error) {
	name, in := po.def.Name, po.def.In

	po.operationOptions.transforms = append(po.operationOptions.transforms, func(r *http.Request) (*http.Request, error) {
		err := check(lookup(r.Context(), name, in))
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}

func (po *ParameterOptions) addSecurityScheme(name string, scheme openapi3.SecurityScheme) {
	po.operationOptions.securitySchemes = append(po.operationOptions.securitySchemes, securityScheme{
		name:   name,
		scheme: scheme,
	})
}

// param documents the parameter as a string unless [Type] says otherwise
// and stores its request values in the context before any validator runs.
func param(name string, in openapi3.ParameterIn, opts ...ParameterOption) OperationOption {
	return func(oo *OperationOptions) {
		key := paramKey{name: name, in: in}
		oo.transforms = append(oo.transforms, func(r *http.Request) (*http.Request, error) {
			ctx := context.WithValue(r.Context(), key, readParam(r, name, in))
			return r.WithContext(ctx), nil
		})

		po := &ParameterOptions{
			operationOptions: oo,
			def: &openapi3.Parameter{
				Name: name,
				In:   in,
				Schema: &openapi3.SchemaOrRef{
					Schema: (&openapi3.Schema{}).WithType(openapi3.SchemaTypeString),
				},
			},
		}
		for _, opt := range opts {
			opt(po)
		}

		oo.parameters = append(oo.parameters, openapi3.ParameterOrRef{
			Parameter: po.def,
		})
	}
}

// MissingRequiredParameterError is the cause of the [BadRequestError]
// returned for a request without a [Required] parameter.
type MissingRequiredParameterError struct {
	Parameter string
	In        string
}

func (e MissingRequiredParameterError) Error() string {
	return fmt.Sprintf("missing required request parameter in %s: %s", e.In, e.Parameter)
}

// Required documents the parameter as required and rejects requests
// without it with 400 Bad Request.
func Required() ParameterOption {
	return func(po *ParameterOptions) {
		po.def.Required = ptr.Ref(true)

		name, in := po.def.Name, string(po.def.In)
		po.validate(func(v paramValue) error {
			if len(v.values) > 0 {
				return nil
			}
			return BadRequestError{
				Cause: MissingRequiredParameterError{Parameter: name, In: in},
			}
		})
	}
}

// InvalidParameterValueError is the cause of the [BadRequestError]
// returned when a parameter fails [Regex].
type InvalidParameterValueError struct {
	Parameter string
	In        string
}

func (e InvalidParameterValueError) Error() string {
	return fmt.Sprintf("invalid parameter value in %s: %s", e.In, e.Parameter)
}

// Regex documents re as the pattern of the parameter and rejects requests
// where no value matches it with 400 Bad Request.
//
//	rest.QueryParam("page", rest.Regex(regexp.MustCompile(`^\d+$`)))
func Regex(re *regexp.Regexp) ParameterOption {
	return func(po *ParameterOptions) {
		po.def.Schema.Schema.WithPattern(re.String())

		name, in := po.def.Name, string(po.def.In)
		po.validate(func(v paramValue) error {
			if slices.ContainsFunc(v.values, re.MatchString) {
				return nil
			}
			return BadRequestError{
				Cause: InvalidParameterValueError{Parameter: name, In: in},
			}
		})
	}
}

// Describe sets the description of a parameter.
func Describe(description string) ParameterOption {
	return func(po *ParameterOptions) {
		po.def.Description = ptr.Ref(description)
	}
}

// Type sets the schema type and, if non-empty, format of a parameter.
//
//	rest.QueryParam("limit", rest.Type(openapi3.SchemaTypeInteger, "int32"))
func Type(t openapi3.SchemaType, format string) ParameterOption {
	return func(po *ParameterOptions) {
		po.def.Schema.Schema.WithType(t)
		if format != "" {
			po.def.Schema.Schema.WithFormat(format)
		}
	}
}

// DefaultValue declares the value a parameter takes when the request omits
// it. The value is recorded as [swagger.ParameterDefault] metadata and
// surfaces as the schema default of the documented parameter.
//
// [swagger.ParameterDefault]: https://pkg.go.dev/github.com/z5labs/apidocs/swagger#ParameterDefault
func DefaultValue(v any) ParameterOption {
	return func(po *ParameterOptions) {
		po.operationOptions.addMetadata(swagger.ParameterDefault{
			Name:  po.def.Name,
			In:    po.def.In,
			Value: v,
		})
	}
}
