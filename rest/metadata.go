// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"strconv"

	"github.com/z5labs/apidocs/swagger"

	"github.com/swaggest/openapi-go/openapi3"
)

// AuthorizeMetadata marks an operation, or every operation of a
// [Controller], as requiring an authenticated user.
type AuthorizeMetadata struct {
	Policies []string
}

// AuthorizationRequired always reports true.
func (AuthorizeMetadata) AuthorizationRequired() bool {
	return true
}

// Authorize marks the operation as requiring an authenticated user,
// optionally restricted to the named policies. It only describes the
// operation; requests are authenticated by parameter validators such
// as [JWTAuth].
func Authorize(policies ...string) OperationOption {
	return func(oo *OperationOptions) {
		oo.addMetadata(AuthorizeMetadata{Policies: policies})
	}
}

// ResponseHeader documents a header returned by the operation. Without
// statuses the header is added to every documented response.
//
// Example:
//
//	rest.ResponseHeader("X-Total-Count", openapi3.SchemaTypeInteger, "number of pets", http.StatusOK)
func ResponseHeader(name string, typ openapi3.SchemaType, description string, statuses ...int) OperationOption {
	codes := make([]string, len(statuses))
	for i, status := range statuses {
		codes[i] = strconv.Itoa(status)
	}

	return func(oo *OperationOptions) {
		oo.addMetadata(swagger.ResponseHeader{
			StatusCodes: codes,
			Name:        name,
			Type:        typ,
			Description: description,
		})
	}
}
