// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"github.com/z5labs/apidocs/swagger"

	"github.com/stoewer/go-strcase"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// DefaultValueSource looks up the default value of an operation parameter.
type DefaultValueSource interface {
	DefaultValue(swagger.OperationContext, *openapi3.Parameter) (any, bool)
}

// DefaultValueSourceFunc is a func type of the [DefaultValueSource] interface.
type DefaultValueSourceFunc func(swagger.OperationContext, *openapi3.Parameter) (any, bool)

// DefaultValue implements the [DefaultValueSource] interface.
func (f DefaultValueSourceFunc) DefaultValue(ctx swagger.OperationContext, p *openapi3.Parameter) (any, bool) {
	return f(ctx, p)
}

// MetadataDefaultValues reads defaults from [swagger.ParameterDefault]
// metadata. Parameter names match as declared or in camelCase.
type MetadataDefaultValues struct{}

// DefaultValue implements the [DefaultValueSource] interface.
func (MetadataDefaultValues) DefaultValue(ctx swagger.OperationContext, p *openapi3.Parameter) (any, bool) {
	for _, d := range swagger.MetadataOf[swagger.ParameterDefault](ctx.Description) {
		if d.In != p.In {
			continue
		}
		if d.Name == p.Name || strcase.LowerCamelCase(d.Name) == p.Name {
			return d.Value, true
		}
	}
	return nil, false
}

// DefaultValues normalizes the documented operation: it is marked
// deprecated when its API version is, path parameters are marked required
// and parameters without a schema default get the one src knows about.
func DefaultValues(src DefaultValueSource) swagger.OperationRule {
	return swagger.OperationRuleFunc(func(op *openapi3.Operation, ctx swagger.OperationContext) {
		if ctx.Description.Deprecated {
			op.Deprecated = ptr.Ref(true)
		}

		for _, p := range op.Parameters {
			param := p.Parameter
			if param == nil {
				continue
			}

			if param.In == openapi3.ParameterInPath {
				param.Required = ptr.Ref(true)
			}

			v, ok := src.DefaultValue(ctx, param)
			if !ok {
				continue
			}

			if param.Schema == nil {
				param.Schema = &openapi3.SchemaOrRef{}
			}
			if param.Schema.Schema == nil {
				param.Schema.Schema = &openapi3.Schema{}
			}
			if param.Schema.Schema.Default == nil {
				param.Schema.Schema.Default = &v
			}
		}
	})
}
