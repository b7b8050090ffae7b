// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"strings"

	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/swagger/redoc"
	"github.com/z5labs/apidocs/swagger/swaggerui"
	"github.com/z5labs/apidocs/version"

	"github.com/go-chi/chi/v5"
)

// ReferenceRoutePrefix is where [UseDocumentation] serves the reference viewer.
const ReferenceRoutePrefix = "docs"

// ExplorerURL is the URL of a document as seen from the explorer page.
func ExplorerURL(group string) string {
	return "./" + swagger.DefaultRoutePrefix + "/" + swagger.DocumentPath(group, swagger.JSON)
}

// ReferenceSpecURL is the URL of a document as seen from the reference
// viewer page.
func ReferenceSpecURL(group string) string {
	return "../" + swagger.DefaultRoutePrefix + "/" + swagger.DocumentPath(group, swagger.JSON)
}

// ExplorerEndpoints binds every group to its explorer URL, labelled with
// the upper cased group name.
func ExplorerEndpoints(groups ...string) []swaggerui.Endpoint {
	endpoints := make([]swaggerui.Endpoint, len(groups))
	for i, group := range groups {
		endpoints[i] = swaggerui.Endpoint{
			URL:  ExplorerURL(group),
			Name: strings.ToUpper(group),
		}
	}
	return endpoints
}

// UseExplorer serves docs and an explorer listing the given groups.
// configure runs after the endpoints have been added.
func UseExplorer(r chi.Router, docs *swagger.Documents, groups []string, configure func(*swaggerui.Options)) {
	swagger.UseSwagger(r, docs)

	swaggerui.Use(r, func(o *swaggerui.Options) {
		for _, e := range ExplorerEndpoints(groups...) {
			o.SwaggerEndpoint(e.URL, e.Name)
		}
		if configure != nil {
			configure(o)
		}
	})
}

// UseVersionedDocumentation serves docs and an explorer listing one
// document per API version known to provider. Groups which were never
// generated are answered with 404 when requested.
func UseVersionedDocumentation(r chi.Router, docs *swagger.Documents, provider version.Provider, configure func(*swaggerui.Options)) {
	descs := provider.ApiVersionDescriptions()

	groups := make([]string, len(descs))
	for i, desc := range descs {
		groups[i] = desc.GroupName
	}
	UseExplorer(r, docs, groups, configure)
}

// ReferenceOptions configure [UseDocumentation].
type ReferenceOptions struct {
	groupName string
	configure []func(*redoc.Options)
}

// ReferenceOption sets a value on [ReferenceOptions].
type ReferenceOption interface {
	ApplyReferenceOption(*ReferenceOptions)
}

type referenceOptionFunc func(*ReferenceOptions)

func (f referenceOptionFunc) ApplyReferenceOption(ro *ReferenceOptions) {
	f(ro)
}

// ReDoc runs f after the reference viewer defaults have been set.
func ReDoc(f func(*redoc.Options)) ReferenceOption {
	return referenceOptionFunc(func(ro *ReferenceOptions) {
		ro.configure = append(ro.configure, f)
	})
}

// GroupNameOption names the single document of [AddDocumentation] and
// [UseDocumentation].
type GroupNameOption string

// GroupName replaces [DefaultGroupName].
func GroupName(name string) GroupNameOption {
	return GroupNameOption(name)
}

// ApplyDocumentationOption implements the [DocumentationOption] interface.
func (o GroupNameOption) ApplyDocumentationOption(do *DocumentationOptions) {
	do.groupName = string(o)
}

// ApplyReferenceOption implements the [ReferenceOption] interface.
func (o GroupNameOption) ApplyReferenceOption(ro *ReferenceOptions) {
	ro.groupName = string(o)
}

// UseDocumentation serves docs and the reference viewer for one document
// at /docs/.
func UseDocumentation(r chi.Router, docs *swagger.Documents, opts ...ReferenceOption) {
	ro := &ReferenceOptions{
		groupName: DefaultGroupName,
	}
	for _, opt := range opts {
		opt.ApplyReferenceOption(ro)
	}

	swagger.UseSwagger(r, docs)

	redoc.Use(r, func(o *redoc.Options) {
		o.SpecURL = ReferenceSpecURL(ro.groupName)
		o.RoutePrefix = ReferenceRoutePrefix
		o.HideDownloadButton()
		o.ExpandResponses("200,201")
		o.RequiredPropsFirst()
		o.PathInMiddlePanel()
		o.NativeScrollbars()
		o.SortPropsAlphabetically()

		for _, f := range ro.configure {
			f(o)
		}
	})
}
