// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command versioned serves a pet store API in two versions, with one
// generated document per version and an explorer listing both.
package main

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"net/http"
	"os"
	"regexp"

	"github.com/z5labs/apidocs"
	"github.com/z5labs/apidocs/app"
	"github.com/z5labs/apidocs/config"
	"github.com/z5labs/apidocs/docs"
	"github.com/z5labs/apidocs/example/internal/sample"
	httpserver "github.com/z5labs/apidocs/http"
	"github.com/z5labs/apidocs/otel"
	"github.com/z5labs/apidocs/rest"
	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/swagger/swaggerui"

	"github.com/swaggest/openapi-go/openapi3"
)

//go:embed config.yaml
var configBytes []byte

func buildApi(store *sample.Store) *rest.Api {
	return rest.NewApi(
		"Sample API",
		"2.0.0",
		rest.PathBase("/v1/sample"),
		rest.ApiVersion("1", rest.Deprecated()),
		rest.ApiVersion("2"),
		rest.Controller(
			"Pets",
			[]rest.OperationOption{sample.OnPetError()},
			rest.Handle(
				http.MethodGet,
				rest.BasePath("/pets"),
				sample.ListPets(store),
				rest.Versions("1", "2"),
				rest.Summary("List pets"),
				rest.QueryParam("limit", rest.Type(openapi3.SchemaTypeInteger, "int32"), rest.DefaultValue(sample.DefaultLimit)),
				rest.ResponseHeader("X-Request-Id", openapi3.SchemaTypeString, "request identifier"),
			),
			rest.Handle(
				http.MethodGet,
				rest.BasePath("/pets").Param("id", rest.Regex(regexp.MustCompile(`^[0-9]+$`))),
				sample.GetPet(store),
				rest.Versions("1", "2"),
				rest.Summary("Find a pet"),
			),
			rest.Handle(
				http.MethodPost,
				rest.BasePath("/pets"),
				sample.AddPet(store),
				rest.Versions("2"),
				rest.Summary("Add a pet"),
				rest.Authorize("pets:write"),
				rest.Header("X-API-Key", rest.Required(), rest.APIKey("apiKey")),
			),
		),
	)
}

func main() {
	ctx := context.Background()

	handler := app.Build(func(ctx context.Context) (http.Handler, error) {
		cfg, err := config.Read(ctx, config.UnmarshalYAML[docs.InfoConfig](
			config.ReaderOf[io.Reader](bytes.NewReader(configBytes)),
		))
		if err != nil {
			return nil, err
		}

		api := buildApi(sample.NewStore())

		services := docs.AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(api),
			cfg.Info(),
			docs.Configure(func(g *swagger.GenOptions) {
				g.DocumentRule(docs.XLogo("https://example.com/logo.png", cfg.Title))
			}),
		)

		documents, err := swagger.Build(ctx, services, api)
		if err != nil {
			return nil, err
		}

		docs.UseVersionedDocumentation(api.Router(), documents, api, func(o *swaggerui.Options) {
			o.DocumentTitle = cfg.Title
		})
		return api, nil
	})

	srv := httpserver.NewServer(
		httpserver.NewTCPListener(httpserver.Addr(httpserver.AddrFromEnv())),
		httpserver.TimeoutsFromEnv(),
	)

	err := app.Run(ctx, otel.Build(sample.SDK("versioned"), httpserver.Build(srv, handler)))
	if err != nil {
		app.LogError(apidocs.LogHandler("main"), err)
		os.Exit(1)
	}
}
