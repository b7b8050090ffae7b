// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/z5labs/apidocs"
)

// HttpResponseWriter is implemented by errors which write their own
// response. The default [ErrorHandler] finds them with [errors.As].
type HttpResponseWriter interface {
	WriteHttpResponse(context.Context, http.ResponseWriter)
}

// ErrorHandler answers requests whose operation failed. The default one
// logs the error and answers 500 unless the error is a [HttpResponseWriter].
// Operations choose another with [OnError].
type ErrorHandler interface {
	OnError(context.Context, http.ResponseWriter, error)
}

// ErrorHandlerFunc is a func type of the [ErrorHandler] interface.
type ErrorHandlerFunc func(context.Context, http.ResponseWriter, error)

// OnError implements the [ErrorHandler] interface.
func (f ErrorHandlerFunc) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	f(ctx, w, err)
}

type errorHandlerCtxKey struct{}

func withErrorHandler(ctx context.Context, eh ErrorHandler) context.Context {
	return context.WithValue(ctx, errorHandlerCtxKey{}, eh)
}

// OnErrorFromContext reports err with the [ErrorHandler] of the operation
// serving ctx. Handlers use it for errors found after [Handle] has handed
// them the request.
func OnErrorFromContext(ctx context.Context, w http.ResponseWriter, err error) {
	eh, ok := ctx.Value(errorHandlerCtxKey{}).(ErrorHandler)
	if !ok {
		eh = defaultErrorHandler(apidocs.LogHandler("github.com/z5labs/apidocs/rest"))
	}
	eh.OnError(ctx, w, err)
}

func defaultErrorHandler(h slog.Handler) ErrorHandlerFunc {
	log := slog.New(h)

	return func(ctx context.Context, w http.ResponseWriter, err error) {
		log.ErrorContext(ctx, "sending error response", slog.Any("error", err))

		var hrw HttpResponseWriter
		if errors.As(err, &hrw) {
			hrw.WriteHttpResponse(ctx, w)
			return
		}

		w.WriteHeader(http.StatusInternalServerError)
	}
}

// BadRequestError answers 400 Bad Request. Parameter validators such as
// [Required] and [Regex] wrap their errors in it.
type BadRequestError struct {
	Cause error
}

func (e BadRequestError) Error() string {
	return fmt.Sprintf("bad request error: %v", e.Cause)
}

func (e BadRequestError) Unwrap() error {
	return e.Cause
}

// WriteHttpResponse implements the [HttpResponseWriter] interface.
func (e BadRequestError) WriteHttpResponse(ctx context.Context, rw http.ResponseWriter) {
	rw.WriteHeader(http.StatusBadRequest)
}

// UnauthorizedError answers 401 Unauthorized. [JWTAuth] wraps rejected
// tokens in it.
type UnauthorizedError struct {
	Cause error
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized error: %v", e.Cause)
}

func (e UnauthorizedError) Unwrap() error {
	return e.Cause
}

// WriteHttpResponse implements the [HttpResponseWriter] interface.
func (e UnauthorizedError) WriteHttpResponse(ctx context.Context, rw http.ResponseWriter) {
	rw.WriteHeader(http.StatusUnauthorized)
}
