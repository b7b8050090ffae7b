// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package rest provides the host framework API documents are generated from.
//
// # Overview
//
// An [Api] is a chi based [net/http.Handler]. Every operation registered
// with [Handle] is routed and also recorded as a
// [github.com/z5labs/apidocs/swagger.ApiDescription], so the Api can be
// handed straight to the documentation generator:
//
//	api := rest.NewApi(
//	    "Sample API",
//	    "1.0.0",
//	    rest.ApiVersion("1", rest.Deprecated()),
//	    rest.ApiVersion("2"),
//	    rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets, rest.Versions("1", "2")),
//	)
//
//	docs, err := swagger.Build(ctx, services.AddApiVersioning(api), api)
//
// # Versions
//
// Operations join API versions with [Versions]. [ApiVersion] declares a
// version up front and can mark it [Deprecated]. An Api without any
// version produces descriptions with an empty group name which every
// generated document includes.
//
// # Metadata
//
// Options such as [Authorize], [ResponseHeader] and [DefaultValue] attach
// metadata to an operation. Inside a [Controller] the shared options
// become declaring metadata. Documentation rules read both.
//
// # Parameters
//
// Parameters are declared with [Header], [QueryParam], [Cookie] and the
// path built by [BasePath]. They are validated at request time by options
// like [Required] and [Regex] and their values are read back with
// [HeaderValue], [QueryParamValue] and [CookieValue].
package rest
