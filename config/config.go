// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides composable, lazily evaluated configuration values.
//
// Every configurable value is expressed as a [Reader]. Readers can be
// chained together (e.g. [Or], [Default], [Map]) so that the final value
// is resolved only when it is needed, typically while an [app.Builder]
// is building the application.
//
// [app.Builder]: https://pkg.go.dev/github.com/z5labs/apidocs/app#Builder
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrValueNotSet is the panic value used by [Must] when a [Reader]
// does not produce a value.
var ErrValueNotSet = errors.New("config: value not set")

// Value is an optional configuration value. The zero value is "not set".
type Value[T any] struct {
	value T
	set   bool
}

// ValueOf returns a [Value] which is set to v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{
		value: v,
		set:   true,
	}
}

// Value returns the underlying value and whether or not it was set.
func (v Value[T]) Value() (T, bool) {
	return v.value, v.set
}

// Reader resolves a configuration value.
type Reader[T any] interface {
	Read(context.Context) (Value[T], error)
}

// ReaderFunc is a func type of the [Reader] interface.
type ReaderFunc[T any] func(context.Context) (Value[T], error)

// Read implements the [Reader] interface.
func (f ReaderFunc[T]) Read(ctx context.Context) (Value[T], error) {
	return f(ctx)
}

// ReaderOf returns a [Reader] which always produces v.
func ReaderOf[T any](v T) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		return ValueOf(v), nil
	})
}

// EmptyReader returns a [Reader] which never produces a value.
func EmptyReader[T any]() Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		return Value[T]{}, nil
	})
}

// Read resolves r and returns the underlying value. An unset value
// is not an error, the zero value of T is returned instead.
func Read[T any](ctx context.Context, r Reader[T]) (T, error) {
	if r == nil {
		var zero T
		return zero, nil
	}

	val, err := r.Read(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	v, _ := val.Value()
	return v, nil
}

// Must resolves r and panics if it fails or does not produce a value.
func Must[T any](ctx context.Context, r Reader[T]) T {
	if r == nil {
		panic(ErrValueNotSet)
	}

	val, err := r.Read(ctx)
	if err != nil {
		panic(err)
	}

	v, ok := val.Value()
	if !ok {
		panic(ErrValueNotSet)
	}
	return v
}

// MustOr resolves r and returns def if r does not produce a value.
// It panics if r fails.
func MustOr[T any](ctx context.Context, def T, r Reader[T]) T {
	if r == nil {
		return def
	}

	val, err := r.Read(ctx)
	if err != nil {
		panic(err)
	}

	v, ok := val.Value()
	if !ok {
		return def
	}
	return v
}

// Or returns a [Reader] which produces the first set value of rs.
func Or[T any](rs ...Reader[T]) Reader[T] {
	return ReaderFunc[T](func(ctx context.Context) (Value[T], error) {
		for _, r := range rs {
			if r == nil {
				continue
			}

			val, err := r.Read(ctx)
			if err != nil {
				return Value[T]{}, err
			}
			if _, ok := val.Value(); ok {
				return val, nil
			}
		}
		return Value[T]{}, nil
	})
}

// Default returns a [Reader] which produces def whenever r does not produce a value.
func Default[T any](def T, r Reader[T]) Reader[T] {
	return Or(r, ReaderOf(def))
}

// Map transforms the value produced by r. f is only called when r produces a value.
func Map[A, B any](r Reader[A], f func(context.Context, A) (B, error)) Reader[B] {
	return ReaderFunc[B](func(ctx context.Context) (Value[B], error) {
		val, err := r.Read(ctx)
		if err != nil {
			return Value[B]{}, err
		}

		a, ok := val.Value()
		if !ok {
			return Value[B]{}, nil
		}

		b, err := f(ctx, a)
		if err != nil {
			return Value[B]{}, err
		}
		return ValueOf(b), nil
	})
}

// Env returns a [Reader] for the environment variable name.
// Unset variables do not produce a value.
func Env(name string) Reader[string] {
	return ReaderFunc[string](func(ctx context.Context) (Value[string], error) {
		v, ok := os.LookupEnv(name)
		if !ok {
			return Value[string]{}, nil
		}
		return ValueOf(v), nil
	})
}

// InvalidValueError is returned by converting readers when a raw value
// can not be converted into the requested type.
type InvalidValueError struct {
	Value string
	Type  string
	Cause error
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("config: can not convert %q to %s: %v", e.Value, e.Type, e.Cause)
}

func (e InvalidValueError) Unwrap() error {
	return e.Cause
}
