// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"context"
	"errors"
)

// HookFunc runs once the inner [Runtime] has returned.
type HookFunc func(context.Context) error

// HookRegistry collects post-run hooks while an application is being built.
type HookRegistry struct {
	hooks []HookFunc
}

// OnPostRun registers hook. Hooks run in registration order and every
// hook runs even if the runtime or an earlier hook failed.
func (r *HookRegistry) OnPostRun(hook HookFunc) {
	r.hooks = append(r.hooks, hook)
}

// HookRuntime runs an inner [Runtime] followed by its post-run hooks.
type HookRuntime struct {
	inner Runtime
	hooks []HookFunc
}

// Run implements the [Runtime] interface. The returned error joins the
// runtime error with every hook error.
func (rt HookRuntime) Run(ctx context.Context) error {
	runErr := rt.inner.Run(ctx)

	var hookErr error
	for _, hook := range rt.hooks {
		err := hook(ctx)
		if err != nil {
			hookErr = errors.Join(hookErr, err)
		}
	}

	return errors.Join(runErr, hookErr)
}

// WithHooks lets f register cleanup hooks while building its [Runtime].
//
//	builder := app.WithHooks(func(ctx context.Context, h *app.HookRegistry) (httpserver.App, error) {
//	    docs, err := swagger.Build(ctx, services, api)
//	    if err != nil {
//	        return httpserver.App{}, err
//	    }
//	    h.OnPostRun(func(ctx context.Context) error {
//	        log.InfoContext(ctx, "stopped serving documents", slog.Any("groups", docs.Names()))
//	        return nil
//	    })
//	    return build(ctx, docs)
//	})
func WithHooks[T Runtime](f func(context.Context, *HookRegistry) (T, error)) Builder[HookRuntime] {
	return BuilderFunc[HookRuntime](func(ctx context.Context) (HookRuntime, error) {
		registry := &HookRegistry{}

		inner, err := f(ctx, registry)
		if err != nil {
			return HookRuntime{}, err
		}

		return HookRuntime{
			inner: inner,
			hooks: registry.hooks,
		}, nil
	})
}
