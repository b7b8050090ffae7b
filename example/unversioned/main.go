// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command unversioned serves a pet store API with a single generated
// document, an explorer and a reference viewer.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"net/http"
	"os"

	"github.com/z5labs/apidocs"
	"github.com/z5labs/apidocs/app"
	"github.com/z5labs/apidocs/config"
	"github.com/z5labs/apidocs/docs"
	"github.com/z5labs/apidocs/example/internal/sample"
	"github.com/z5labs/apidocs/health"
	httpserver "github.com/z5labs/apidocs/http"
	"github.com/z5labs/apidocs/otel"
	"github.com/z5labs/apidocs/rest"
	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/swagger/redoc"

	"golang.org/x/text/language"
)

//go:embed config.yaml
var configBytes []byte

func buildHandler(ctx context.Context, h *app.HookRegistry) (http.Handler, error) {
	cfg, err := config.Read(ctx, config.UnmarshalYAML[docs.InfoConfig](
		config.ReaderOf[io.Reader](bytes.NewReader(configBytes)),
	))
	if err != nil {
		return nil, err
	}

	ready := &health.Binary{}
	store := sample.NewStore()
	api := rest.NewApi(
		cfg.Title,
		cfg.Version,
		rest.PathBase("/v1/sample"),
		rest.Readiness(ready),
		rest.Handle(http.MethodGet, rest.BasePath("/pets"), sample.ListPets(store), rest.Tags("Pets")),
		rest.Handle(http.MethodPost, rest.BasePath("/pets"), sample.AddPet(store), rest.Tags("Pets"), rest.Authorize()),
	)

	services := docs.AddDocumentation(swagger.NewServices(), cfg.Info(), docs.Locale(language.English))
	documents, err := swagger.Build(ctx, services, api)
	if err != nil {
		return nil, err
	}

	docs.UseExplorer(api.Router(), documents, documents.Names(), nil)
	docs.UseDocumentation(api.Router(), documents, docs.ReDoc(func(o *redoc.Options) {
		o.DocumentTitle = cfg.Title
	}))

	ready.MarkHealthy()
	h.OnPostRun(func(ctx context.Context) error {
		ready.MarkUnhealthy()
		return nil
	})
	return api, nil
}

func main() {
	ctx := context.Background()

	srv := httpserver.NewServer(
		httpserver.NewTCPListener(httpserver.Addr(httpserver.AddrFromEnv())),
		httpserver.TimeoutsFromEnv(),
	)

	builder := app.WithHooks(func(ctx context.Context, h *app.HookRegistry) (httpserver.App, error) {
		handler := app.Build(func(ctx context.Context) (http.Handler, error) {
			return buildHandler(ctx, h)
		})
		return httpserver.Build(srv, handler).Build(ctx)
	})

	err := app.Run(ctx, otel.Build(sample.SDK("unversioned"), builder))
	if err != nil {
		app.LogError(apidocs.LogHandler("main"), err)
		os.Exit(1)
	}
}
