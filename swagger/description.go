// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"encoding/json"

	"github.com/swaggest/openapi-go/openapi3"
)

// ApiDescription describes one operation as discovered from the host
// framework. Operations which belong to several API versions produce one
// description per version group.
type ApiDescription struct {
	// GroupName is the version group, e.g. "v1". Empty for operations
	// which are not versioned.
	GroupName string
	Method    string
	Path      string

	Operation openapi3.Operation

	// SecuritySchemes referenced by the operation's security requirements.
	SecuritySchemes map[string]openapi3.SecuritySchemeOrRef

	// Deprecated is set when the operation's API version is deprecated.
	Deprecated bool

	// DeclaringMetadata is attached to the type (controller) declaring
	// the operation and Metadata is attached to the operation itself.
	DeclaringMetadata []any
	Metadata          []any
}

// AllMetadata returns the declaring metadata followed by the operation metadata.
func (d ApiDescription) AllMetadata() []any {
	all := make([]any, 0, len(d.DeclaringMetadata)+len(d.Metadata))
	all = append(all, d.DeclaringMetadata...)
	return append(all, d.Metadata...)
}

// MetadataOf returns every metadata entry of d which is a T.
func MetadataOf[T any](d ApiDescription) []T {
	var ts []T
	for _, m := range d.AllMetadata() {
		if t, ok := m.(T); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// ApiDescriptionProvider lists the operations of an API.
type ApiDescriptionProvider interface {
	ApiDescriptions() []ApiDescription
}

// PathBaseProvider is implemented by providers whose operations are served
// below a path base. [Build] lists the path base as the server of every
// document unless servers were added with [GenOptions.Server].
type PathBaseProvider interface {
	PathBase() string
}

// ApiDescriptionProviderFunc is a func type of the [ApiDescriptionProvider] interface.
type ApiDescriptionProviderFunc func() []ApiDescription

// ApiDescriptions implements the [ApiDescriptionProvider] interface.
func (f ApiDescriptionProviderFunc) ApiDescriptions() []ApiDescription {
	return f()
}

// ParameterDefault declares the default value of an operation parameter.
type ParameterDefault struct {
	Name  string
	In    openapi3.ParameterIn
	Value any
}

// ResponseHeader declares a header returned by an operation.
// An empty StatusCodes applies the header to every response.
type ResponseHeader struct {
	StatusCodes []string
	Name        string
	Type        openapi3.SchemaType
	Format      string
	Description string
}

func cloneOperation(op openapi3.Operation) (openapi3.Operation, error) {
	b, err := json.Marshal(op)
	if err != nil {
		return openapi3.Operation{}, err
	}

	var out openapi3.Operation
	err = json.Unmarshal(b, &out)
	return out, err
}
