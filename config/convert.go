// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/z5labs/sdk-go/try"
	"gopkg.in/yaml.v3"
)

func parseString[T any](typ string, parse func(string) (T, error)) func(context.Context, string) (T, error) {
	return func(ctx context.Context, s string) (T, error) {
		v, err := parse(s)
		if err != nil {
			var zero T
			return zero, InvalidValueError{
				Value: s,
				Type:  typ,
				Cause: err,
			}
		}
		return v, nil
	}
}

// BoolFromString parses the value of r with [strconv.ParseBool].
func BoolFromString(r Reader[string]) Reader[bool] {
	return Map(r, parseString("bool", strconv.ParseBool))
}

// IntFromString parses the value of r with [strconv.Atoi].
func IntFromString(r Reader[string]) Reader[int] {
	return Map(r, parseString("int", strconv.Atoi))
}

// Int64FromString parses the value of r as a base 10 int64.
func Int64FromString(r Reader[string]) Reader[int64] {
	return Map(r, parseString("int64", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	}))
}

// Float64FromString parses the value of r as a float64.
func Float64FromString(r Reader[string]) Reader[float64] {
	return Map(r, parseString("float64", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}))
}

// DurationFromString parses the value of r with [time.ParseDuration].
func DurationFromString(r Reader[string]) Reader[time.Duration] {
	return Map(r, parseString("time.Duration", time.ParseDuration))
}

// UnmarshalJSON decodes the JSON document produced by r into a T.
// If r implements [io.Closer] it will be closed once decoded.
func UnmarshalJSON[T any](r Reader[io.Reader]) Reader[T] {
	return Map(r, func(ctx context.Context, src io.Reader) (t T, err error) {
		if c, ok := src.(io.Closer); ok {
			defer try.Close(&err, c)
		}

		err = json.NewDecoder(src).Decode(&t)
		return
	})
}

// UnmarshalYAML decodes the YAML document produced by r into a T.
// If r implements [io.Closer] it will be closed once decoded.
func UnmarshalYAML[T any](r Reader[io.Reader]) Reader[T] {
	return Map(r, func(ctx context.Context, src io.Reader) (t T, err error) {
		if c, ok := src.(io.Closer); ok {
			defer try.Close(&err, c)
		}

		err = yaml.NewDecoder(src).Decode(&t)
		return
	})
}
