// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"net/http"
	"strconv"

	"github.com/z5labs/apidocs/swagger"

	"github.com/swaggest/openapi-go/openapi3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// AuthRequirement answers whether an operation requires an authenticated user.
type AuthRequirement interface {
	RequiresAuth(swagger.OperationContext) bool
}

// AuthRequirementFunc is a func type of the [AuthRequirement] interface.
type AuthRequirementFunc func(swagger.OperationContext) bool

// RequiresAuth implements the [AuthRequirement] interface.
func (f AuthRequirementFunc) RequiresAuth(ctx swagger.OperationContext) bool {
	return f(ctx)
}

// AuthorizationMetadata is implemented by operation metadata which
// carries an authorization requirement, e.g. rest.AuthorizeMetadata.
type AuthorizationMetadata interface {
	AuthorizationRequired() bool
}

// MetadataAuthRequirement requires authentication for operations whose
// declaring or own metadata holds an [AuthorizationMetadata] reporting true.
type MetadataAuthRequirement struct{}

// RequiresAuth implements the [AuthRequirement] interface.
func (MetadataAuthRequirement) RequiresAuth(ctx swagger.OperationContext) bool {
	for _, m := range swagger.MetadataOf[AuthorizationMetadata](ctx.Description) {
		if m.AuthorizationRequired() {
			return true
		}
	}
	return false
}

const (
	msgUnauthenticated = "No authenticated user was found."
	msgForbidden       = "User does not have permission to perform this operation."
)

var authMessages = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	b.SetString(language.English, msgUnauthenticated, msgUnauthenticated)
	b.SetString(language.English, msgForbidden, msgForbidden)
	b.SetString(language.BrazilianPortuguese, msgUnauthenticated, "Nenhum usuário autenticado foi encontrado.")
	b.SetString(language.BrazilianPortuguese, msgForbidden, "Usuário não tem permissão para realizar essa operação.")
	return b
}()

// AuthResponses adds 401 and 403 responses, described in the language
// tag, to every operation req reports as requiring authentication.
// Responses already documented for either status are kept as they are.
func AuthResponses(req AuthRequirement, tag language.Tag) swagger.OperationRule {
	p := message.NewPrinter(tag, message.Catalog(authMessages))
	responses := map[string]string{
		strconv.Itoa(http.StatusUnauthorized): p.Sprintf(msgUnauthenticated),
		strconv.Itoa(http.StatusForbidden):    p.Sprintf(msgForbidden),
	}

	return swagger.OperationRuleFunc(func(op *openapi3.Operation, ctx swagger.OperationContext) {
		if !req.RequiresAuth(ctx) {
			return
		}

		if op.Responses.MapOfResponseOrRefValues == nil {
			op.Responses.MapOfResponseOrRefValues = make(map[string]openapi3.ResponseOrRef, len(responses))
		}
		for code, description := range responses {
			if _, exists := op.Responses.MapOfResponseOrRefValues[code]; exists {
				continue
			}
			op.Responses.MapOfResponseOrRefValues[code] = openapi3.ResponseOrRef{
				Response: &openapi3.Response{
					Description: description,
				},
			}
		}
	})
}
