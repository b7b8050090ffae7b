// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// APIKey documents the parameter as an API key security scheme named
// schemeName. Validating the key is left to the handler.
//
//	rest.Header("X-API-Key", rest.Required(), rest.APIKey("apiKey"))
func APIKey(schemeName string) ParameterOption {
	return func(po *ParameterOptions) {
		po.addSecurityScheme(schemeName, openapi3.SecurityScheme{
			APIKeySecurityScheme: &openapi3.APIKeySecurityScheme{
				Name: po.def.Name,
				In:   openapi3.APIKeySecuritySchemeIn(po.def.In),
			},
		})
	}
}

// BasicAuth documents the parameter as an HTTP basic security scheme.
func BasicAuth(schemeName string) ParameterOption {
	return func(po *ParameterOptions) {
		po.addSecurityScheme(schemeName, openapi3.SecurityScheme{
			HTTPSecurityScheme: &openapi3.HTTPSecurityScheme{
				Scheme: "basic",
			},
		})
	}
}

// OpenIDConnect documents the parameter as an OpenID Connect security
// scheme discovered at wellKnownURL.
func OpenIDConnect(schemeName, wellKnownURL string) ParameterOption {
	return func(po *ParameterOptions) {
		po.addSecurityScheme(schemeName, openapi3.SecurityScheme{
			OpenIDConnectSecurityScheme: &openapi3.OpenIDConnectSecurityScheme{
				OpenIDConnectURL: wellKnownURL,
			},
		})
	}
}

// JWTVerifier verifies a bearer token and returns a context carrying
// whatever the handler needs from its claims.
type JWTVerifier interface {
	Verify(ctx context.Context, token string) (context.Context, error)
}

// InvalidJWTError is the cause of the [UnauthorizedError] returned for a
// missing, malformed or rejected bearer token.
type InvalidJWTError struct {
	Parameter string
	In        string
	Cause     error
}

func (e InvalidJWTError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid JWT in %s %s: %v", e.In, e.Parameter, e.Cause)
	}
	return fmt.Sprintf("invalid JWT in %s: %s", e.In, e.Parameter)
}

func (e InvalidJWTError) Unwrap() error {
	return e.Cause
}

var (
	errMissingBearer = errors.New("missing bearer token")
	errNotBearer     = errors.New("expected Bearer scheme")
	errEmptyBearer   = errors.New("empty bearer token")
)

// bearerToken follows RFC 6750 section 2.1 and only reads the first value.
func bearerToken(values []string) (string, error) {
	if len(values) == 0 {
		return "", errMissingBearer
	}

	token, ok := strings.CutPrefix(values[0], "Bearer ")
	if !ok {
		return "", errNotBearer
	}
	if token == "" {
		return "", errEmptyBearer
	}
	return token, nil
}

// JWTAuth documents the parameter as a bearer JWT security scheme and
// verifies the token of every request with verifier. Requests whose token
// is missing or rejected are answered with 401 Unauthorized.
//
//	rest.Header("Authorization", rest.Required(), rest.JWTAuth("jwt", verifier))
func JWTAuth(schemeName string, verifier JWTVerifier) ParameterOption {
	return func(po *ParameterOptions) {
		po.addSecurityScheme(schemeName, openapi3.SecurityScheme{
			HTTPSecurityScheme: &openapi3.HTTPSecurityScheme{
				Scheme:       "bearer",
				BearerFormat: ptr.Ref("JWT"),
			},
		})

		name, in := po.def.Name, po.def.In
		unauthorized := func(err error) error {
			return UnauthorizedError{
				Cause: InvalidJWTError{Parameter: name, In: string(in), Cause: err},
			}
		}

		po.operationOptions.transforms = append(po.operationOptions.transforms, func(r *http.Request) (*http.Request, error) {
			ctx := r.Context()

			token, err := bearerToken(lookup(ctx, name, in).values)
			if err != nil {
				return nil, unauthorized(err)
			}

			ctx, err = verifier.Verify(ctx, token)
			if err != nil {
				return nil, unauthorized(err)
			}
			return r.WithContext(ctx), nil
		})
	}
}
