// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"github.com/swaggest/openapi-go/openapi3"
)

// OperationContext is what an [OperationRule] knows about the operation
// it is transforming.
type OperationContext struct {
	DocumentName string
	Description  ApiDescription
}

// OperationRule transforms one documented operation.
type OperationRule interface {
	Apply(*openapi3.Operation, OperationContext)
}

// OperationRuleFunc is a func type of the [OperationRule] interface.
type OperationRuleFunc func(*openapi3.Operation, OperationContext)

// Apply implements the [OperationRule] interface.
func (f OperationRuleFunc) Apply(op *openapi3.Operation, ctx OperationContext) {
	f(op, ctx)
}

// DocumentContext is what a [DocumentRule] knows about the document
// it is transforming.
type DocumentContext struct {
	DocumentName string
	Descriptions []ApiDescription
}

// DocumentRule transforms a whole generated document.
type DocumentRule interface {
	Apply(*openapi3.Spec, DocumentContext)
}

// DocumentRuleFunc is a func type of the [DocumentRule] interface.
type DocumentRuleFunc func(*openapi3.Spec, DocumentContext)

// Apply implements the [DocumentRule] interface.
func (f DocumentRuleFunc) Apply(spec *openapi3.Spec, ctx DocumentContext) {
	f(spec, ctx)
}
