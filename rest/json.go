// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/swaggest/jsonschema-go"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
	"go.opentelemetry.io/otel"
)

// HandlerFunc is the core logic of a JSON operation.
type HandlerFunc[Req, Resp any] func(context.Context, *Req) (*Resp, error)

// ProducerFunc produces a response without reading a request body.
type ProducerFunc[T any] func(context.Context) (*T, error)

// ConsumerFunc consumes a request body without producing a response body.
type ConsumerFunc[T any] func(context.Context, *T) error

// InvalidContentTypeError is returned when a request body is not JSON.
type InvalidContentTypeError struct {
	ContentType string
}

func (e InvalidContentTypeError) Error() string {
	return fmt.Sprintf("invalid content type for request: %s", e.ContentType)
}

// Empty is the body of operations which read or write none.
type Empty struct{}

// JsonHandler is a [Handler] which reads and writes JSON bodies and
// reflects their schemas for the generated documents.
type JsonHandler[Req, Resp any] struct {
	consumes bool
	produces bool
	handle   HandlerFunc[Req, Resp]
}

// ProduceJson creates a handler that returns JSON responses without consuming a request body.
//
// Example:
//
//	handler := rest.ProduceJson(func(ctx context.Context) (*[]Pet, error) {
//	    return store.List(ctx)
//	})
func ProduceJson[T any](p ProducerFunc[T]) *JsonHandler[Empty, T] {
	return &JsonHandler[Empty, T]{
		produces: true,
		handle: func(ctx context.Context, _ *Empty) (*T, error) {
			return p(ctx)
		},
	}
}

// ConsumeJson creates a handler that consumes JSON requests and answers
// with 204 No Content.
func ConsumeJson[T any](c ConsumerFunc[T]) *JsonHandler[T, Empty] {
	return &JsonHandler[T, Empty]{
		consumes: true,
		handle: func(ctx context.Context, req *T) (*Empty, error) {
			return nil, c(ctx, req)
		},
	}
}

// HandleJson creates a handler that both consumes and produces JSON.
func HandleJson[Req, Resp any](h HandlerFunc[Req, Resp]) *JsonHandler[Req, Resp] {
	return &JsonHandler[Req, Resp]{
		consumes: true,
		produces: true,
		handle:   h,
	}
}

func reflectSchema(v any) (*openapi3.SchemaOrRef, error) {
	var reflector jsonschema.Reflector

	jsonSchema, err := reflector.Reflect(v, jsonschema.InlineRefs)
	if err != nil {
		return nil, err
	}

	var schemaOrRef openapi3.SchemaOrRef
	schemaOrRef.FromJSONSchema(jsonSchema.ToSchemaOrBool())
	return &schemaOrRef, nil
}

// RequestBody implements the [Handler] interface.
func (h *JsonHandler[Req, Resp]) RequestBody() openapi3.RequestBodyOrRef {
	if !h.consumes {
		return openapi3.RequestBodyOrRef{}
	}

	var req Req
	schema, err := reflectSchema(req)
	if err != nil {
		return openapi3.RequestBodyOrRef{}
	}

	return openapi3.RequestBodyOrRef{
		RequestBody: &openapi3.RequestBody{
			Required: ptr.Ref(true),
			Content: map[string]openapi3.MediaType{
				"application/json": {
					Schema: schema,
				},
			},
		},
	}
}

// Responses implements the [Handler] interface.
func (h *JsonHandler[Req, Resp]) Responses() openapi3.Responses {
	if !h.produces {
		return openapi3.Responses{
			MapOfResponseOrRefValues: map[string]openapi3.ResponseOrRef{
				strconv.Itoa(http.StatusNoContent): {
					Response: &openapi3.Response{
						Description: http.StatusText(http.StatusNoContent),
					},
				},
			},
		}
	}

	resp := &openapi3.Response{
		Description: http.StatusText(http.StatusOK),
	}

	var body Resp
	schema, err := reflectSchema(body)
	if err == nil {
		resp.Content = map[string]openapi3.MediaType{
			"application/json": {
				Schema: schema,
			},
		}
	}

	return openapi3.Responses{
		MapOfResponseOrRefValues: map[string]openapi3.ResponseOrRef{
			strconv.Itoa(http.StatusOK): {
				Response: resp,
			},
		},
	}
}

// ServeHTTP implements the [http.Handler] interface.
func (h *JsonHandler[Req, Resp]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	spanCtx, span := otel.Tracer("github.com/z5labs/apidocs/rest").Start(r.Context(), "JsonHandler.ServeHTTP")
	defer span.End()

	var req Req
	if h.consumes {
		err := readJson(r, &req)
		if err != nil {
			span.RecordError(err)
			OnErrorFromContext(spanCtx, w, err)
			return
		}
	}

	resp, err := h.handle(spanCtx, &req)
	if err != nil {
		span.RecordError(err)
		OnErrorFromContext(spanCtx, w, err)
		return
	}

	if !h.produces {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		span.RecordError(err)
	}
}

func readJson(r *http.Request, v any) error {
	defer r.Body.Close()

	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return BadRequestError{
			Cause: InvalidContentTypeError{
				ContentType: contentType,
			},
		}
	}

	err = json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		return BadRequestError{Cause: err}
	}
	return nil
}
