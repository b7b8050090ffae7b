// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"path"
)

// PathElement is a static segment or a parameter of a [Path].
type PathElement interface {
	pattern() string
}

// PathSegment is a static part of a [Path], e.g. "pets".
type PathSegment string

func (s PathSegment) pattern() string {
	return string(s)
}

type pathParam struct {
	name string
	opts []ParameterOption
}

func (p pathParam) pattern() string {
	return "{" + p.name + "}"
}

// PathParam is a path parameter. It is documented as a required string
// unless opts say otherwise.
func PathParam(name string, opts ...ParameterOption) PathElement {
	return pathParam{name: name, opts: opts}
}

// Path is the route of an operation as given to [Handle]. The same value
// is used by the router and as the path of the generated documents.
//
//	rest.BasePath("/pets").Param("id").Segment("photos")
//	// /pets/{id}/photos
type Path []PathElement

// BasePath starts a [Path] at s.
func BasePath(s string) Path {
	return Path{PathSegment(s)}
}

// Segment appends the static segment s.
func (p Path) Segment(s string) Path {
	return append(p, PathSegment(s))
}

// Param appends the path parameter name.
func (p Path) Param(name string, opts ...ParameterOption) Path {
	return append(p, PathParam(name, opts...))
}

func (p Path) params() []pathParam {
	var params []pathParam
	for _, el := range p {
		if pp, ok := el.(pathParam); ok {
			params = append(params, pp)
		}
	}
	return params
}

// String returns the route pattern, e.g. "/pets/{id}".
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, el := range p {
		parts[i] = el.pattern()
	}
	return path.Join(parts...)
}
