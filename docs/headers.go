// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"slices"

	"github.com/z5labs/apidocs/swagger"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// ResponseHeaders adds every [swagger.ResponseHeader] declared on an
// operation to its documented responses. A header already documented on
// a response is left alone.
func ResponseHeaders() swagger.OperationRule {
	return swagger.OperationRuleFunc(func(op *openapi3.Operation, ctx swagger.OperationContext) {
		for _, h := range swagger.MetadataOf[swagger.ResponseHeader](ctx.Description) {
			for code, resp := range op.Responses.MapOfResponseOrRefValues {
				if resp.Response == nil {
					continue
				}
				if len(h.StatusCodes) > 0 && !slices.Contains(h.StatusCodes, code) {
					continue
				}
				addHeader(resp.Response, h)
			}
		}
	})
}

func addHeader(resp *openapi3.Response, h swagger.ResponseHeader) {
	if _, exists := resp.Headers[h.Name]; exists {
		return
	}
	if resp.Headers == nil {
		resp.Headers = make(map[string]openapi3.HeaderOrRef)
	}

	typ := h.Type
	if typ == "" {
		typ = openapi3.SchemaTypeString
	}
	schema := (&openapi3.Schema{}).WithType(typ)
	if h.Format != "" {
		schema.WithFormat(h.Format)
	}

	header := &openapi3.Header{
		Schema: &openapi3.SchemaOrRef{
			Schema: schema,
		},
	}
	if h.Description != "" {
		header.Description = ptr.Ref(h.Description)
	}
	resp.Headers[h.Name] = openapi3.HeaderOrRef{
		Header: header,
	}
}
