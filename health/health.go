// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package health reports whether the documentation host is able to serve.
package health

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
)

// Monitor reports its current state of health.
type Monitor interface {
	Healthy(context.Context) (bool, error)
}

// MonitorFunc is a func type of the [Monitor] interface.
type MonitorFunc func(context.Context) (bool, error)

// Healthy implements the [Monitor] interface.
func (f MonitorFunc) Healthy(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Binary is a [Monitor] that is either healthy or unhealthy.
// The zero value is unhealthy and it is safe for concurrent use.
type Binary struct {
	healthy atomic.Bool
}

// MarkHealthy flips the state to healthy.
func (b *Binary) MarkHealthy() {
	b.healthy.Store(true)
}

// MarkUnhealthy flips the state to unhealthy.
func (b *Binary) MarkUnhealthy() {
	b.healthy.Store(false)
}

// Healthy implements the [Monitor] interface.
func (b *Binary) Healthy(ctx context.Context) (bool, error) {
	return b.healthy.Load(), nil
}

// All is healthy only when every [Monitor] is healthy.
// It stops at the first unhealthy or failing monitor.
func All(ms ...Monitor) Monitor {
	return MonitorFunc(func(ctx context.Context) (bool, error) {
		for _, m := range ms {
			healthy, err := m.Healthy(ctx)
			if !healthy || err != nil {
				return false, err
			}
		}
		return true, nil
	})
}

// Any is healthy when at least one [Monitor] is healthy.
// Errors from every unhealthy monitor are joined together.
func Any(ms ...Monitor) Monitor {
	return MonitorFunc(func(ctx context.Context) (bool, error) {
		var errs error
		for _, m := range ms {
			healthy, err := m.Healthy(ctx)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			if healthy {
				return true, nil
			}
		}
		return false, errs
	})
}

// Handler responds 200 when m is healthy and 503 otherwise.
func Handler(m Monitor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		healthy, err := m.Healthy(r.Context())
		if err != nil || !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}
