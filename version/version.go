// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package version describes the API versions exposed by a service.
package version

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is an API version. It keeps the text it was declared with
// so "1" is rendered as "1" and not "1.0.0".
type Version struct {
	v *semver.Version
}

// Parse parses s as a lenient semantic version, e.g. "1", "2.1" or "v3".
func Parse(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("version: invalid api version %q: %w", s, err)
	}
	return Version{v: v}, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as it was declared.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1 depending on whether v is lower than,
// equal to or greater than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.v == nil && o.v == nil:
		return 0
	case v.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return v.v.Compare(o.v)
}

// GroupName is the document name used for v, e.g. "v1". A leading "v"
// in the declared text is not repeated.
func GroupName(v Version) string {
	return "v" + strings.TrimPrefix(v.String(), "v")
}

// Descriptor describes one API version and the document group it maps to.
type Descriptor struct {
	GroupName  string
	Version    Version
	Deprecated bool
}

// Describe returns the [Descriptor] of v.
func Describe(v Version, deprecated bool) Descriptor {
	return Descriptor{
		GroupName:  GroupName(v),
		Version:    v,
		Deprecated: deprecated,
	}
}

// Provider lists every API version known to a service.
type Provider interface {
	ApiVersionDescriptions() []Descriptor
}

// ProviderFunc is a func type of the [Provider] interface.
type ProviderFunc func() []Descriptor

// ApiVersionDescriptions implements the [Provider] interface.
func (f ProviderFunc) ApiVersionDescriptions() []Descriptor {
	return f()
}

// Static is a fixed set of descriptors.
type Static []Descriptor

// ApiVersionDescriptions implements the [Provider] interface.
func (s Static) ApiVersionDescriptions() []Descriptor {
	return s
}

// Sort orders descs by ascending version.
func Sort(descs []Descriptor) {
	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].Version.Compare(descs[j].Version) < 0
	})
}
