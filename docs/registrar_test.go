// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"context"
	"net/http"
	"testing"

	"github.com/z5labs/apidocs/rest"
	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/version"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/swaggest/openapi-go/openapi3"
)

type pet struct {
	Name string `json:"name"`
}

func listPets() rest.Handler {
	return rest.ProduceJson(func(ctx context.Context) (*[]pet, error) {
		return &[]pet{}, nil
	})
}

func noComments() DocumentationOption {
	return Comments(afero.NewMemMapFs(), "/")
}

func sampleInfo() swagger.Info {
	return swagger.Info{
		Title:       "Demo",
		Description: "Sample API",
	}
}

func TestInfoForVersion(t *testing.T) {
	t.Run("will set the version text", func(t *testing.T) {
		info := InfoForVersion(sampleInfo(), version.Describe(version.MustParse("1"), false))

		require.Equal(t, "Demo", info.Title)
		require.Equal(t, "1", info.Version)
		require.Equal(t, "Sample API", info.Description)
	})

	t.Run("will append the deprecation notice once", func(t *testing.T) {
		info := InfoForVersion(sampleInfo(), version.Describe(version.MustParse("2"), true))

		require.Equal(t, "Sample API This API version has been deprecated.", info.Description)
	})

	t.Run("will only use the notice", func(t *testing.T) {
		t.Run("if the template has no description", func(t *testing.T) {
			info := InfoForVersion(swagger.Info{Title: "Demo"}, version.Describe(version.MustParse("2"), true))

			require.Equal(t, DeprecationNotice, info.Description)
		})
	})

	t.Run("will never modify the template", func(t *testing.T) {
		template := sampleInfo()
		template.Extensions = map[string]any{"x-logo": map[string]any{"url": "logo.png"}}

		for _, v := range []string{"1", "2", "3"} {
			info := InfoForVersion(template, version.Describe(version.MustParse(v), true))
			info.Extensions["x-logo"].(map[string]any)["url"] = "other.png"
		}

		require.Equal(t, "Sample API", template.Description)
		require.Empty(t, template.Version)
		require.Equal(t, "logo.png", template.Extensions["x-logo"].(map[string]any)["url"])
	})
}

func versionedApi() *rest.Api {
	return rest.NewApi(
		"Demo",
		"1.0.0",
		rest.ApiVersion("1"),
		rest.ApiVersion("2", rest.Deprecated()),
		rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets(), rest.Versions("1", "2")),
		rest.Handle(http.MethodPost, rest.BasePath("/pets"), listPets(), rest.Versions("2")),
	)
}

func TestAddVersionedDocumentation(t *testing.T) {
	t.Run("will register one document per version", func(t *testing.T) {
		api := versionedApi()
		services := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(api),
			sampleInfo(),
			noComments(),
		)

		opts, err := services.Options()
		require.NoError(t, err)

		docs := opts.Documents()
		require.Len(t, docs, 2)

		require.Equal(t, "v1", docs[0].Name)
		require.Equal(t, swagger.Info{Title: "Demo", Version: "1", Description: "Sample API"}, docs[0].Info)

		require.Equal(t, "v2", docs[1].Name)
		require.Equal(t, swagger.Info{Title: "Demo", Version: "2", Description: "Sample API This API version has been deprecated."}, docs[1].Info)
	})

	t.Run("will register no documents", func(t *testing.T) {
		t.Run("if no versions are known", func(t *testing.T) {
			services := AddVersionedDocumentation(
				swagger.NewServices().AddApiVersioning(version.Static{}),
				sampleInfo(),
				noComments(),
			)

			opts, err := services.Options()
			require.NoError(t, err)
			require.Empty(t, opts.Documents())
		})
	})

	t.Run("will not leak deprecation between version sets", func(t *testing.T) {
		template := sampleInfo()

		deprecated := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(version.Static{
				version.Describe(version.MustParse("1"), true),
			}),
			template,
			noComments(),
		)
		current := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(version.Static{
				version.Describe(version.MustParse("1"), false),
				version.Describe(version.MustParse("2"), false),
			}),
			template,
			noComments(),
		)

		_, err := deprecated.Options()
		require.NoError(t, err)

		opts, err := current.Options()
		require.NoError(t, err)
		for _, doc := range opts.Documents() {
			require.Equal(t, "Sample API", doc.Info.Description, doc.Name)
		}
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if no version provider is registered", func(t *testing.T) {
			services := AddVersionedDocumentation(swagger.NewServices(), sampleInfo(), noComments())

			_, err := services.Options()
			require.ErrorIs(t, err, swagger.ErrNoVersionProvider)

			_, err = swagger.Build(context.Background(), services, versionedApi())
			require.ErrorIs(t, err, swagger.ErrNoVersionProvider)
		})
	})

	t.Run("will resolve the provider registered after it", func(t *testing.T) {
		services := AddVersionedDocumentation(swagger.NewServices(), sampleInfo(), noComments())
		services.AddApiVersioning(versionedApi())

		opts, err := services.Options()
		require.NoError(t, err)
		require.Len(t, opts.Documents(), 2)
	})

	t.Run("will attach the rules in order", func(t *testing.T) {
		var rules []swagger.OperationRule
		services := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(version.Static{}),
			sampleInfo(),
			noComments(),
			Configure(func(g *swagger.GenOptions) {
				rules = g.OperationRules()
			}),
		)

		_, err := services.Options()
		require.NoError(t, err)
		require.Len(t, rules, 3)

		op := okOperation()
		op.Parameters = []openapi3.ParameterOrRef{
			{Parameter: &openapi3.Parameter{Name: "pageSize", In: openapi3.ParameterInQuery}},
		}
		ctx := swagger.OperationContext{
			Description: swagger.ApiDescription{
				Metadata: []any{
					swagger.ResponseHeader{Name: "X-Request-Id"},
					rest.AuthorizeMetadata{},
					swagger.ParameterDefault{Name: "page_size", In: openapi3.ParameterInQuery, Value: 25},
				},
			},
		}
		responses := op.Responses.MapOfResponseOrRefValues
		pageSize := op.Parameters[0].Parameter

		rules[0].Apply(op, ctx)
		require.Contains(t, responses["200"].Response.Headers, "X-Request-Id")
		require.NotContains(t, responses, "401")
		require.Nil(t, pageSize.Schema)

		rules[1].Apply(op, ctx)
		require.Contains(t, responses, "401")
		require.Contains(t, responses, "403")
		require.NotContains(t, responses["401"].Response.Headers, "X-Request-Id")
		require.Nil(t, pageSize.Schema)

		rules[2].Apply(op, ctx)
		require.NotNil(t, pageSize.Schema)
		require.Equal(t, 25, *pageSize.Schema.Schema.Default)
	})

	t.Run("will let Configure override the default responses", func(t *testing.T) {
		api := rest.NewApi(
			"Demo",
			"1.0.0",
			rest.ApiVersion("1"),
			rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets(), rest.Versions("1"), rest.Authorize()),
		)
		services := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(api),
			sampleInfo(),
			noComments(),
			Configure(func(g *swagger.GenOptions) {
				g.OperationRule(swagger.OperationRuleFunc(func(op *openapi3.Operation, _ swagger.OperationContext) {
					if resp, ok := op.Responses.MapOfResponseOrRefValues["401"]; ok {
						resp.Response.Description = "Sign in first."
					}
				}))
			}),
		)

		docs, err := swagger.Build(context.Background(), services, api)
		require.NoError(t, err)

		v1, _ := docs.Get("v1")
		op := v1.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues["get"]
		require.Equal(t, "Sign in first.", responseDescription(t, &op, "401"))
		require.Equal(t, "Usuário não tem permissão para realizar essa operação.", responseDescription(t, &op, "403"))
	})

	t.Run("will generate every document end to end", func(t *testing.T) {
		api := versionedApi()
		services := AddVersionedDocumentation(
			swagger.NewServices().AddApiVersioning(api),
			sampleInfo(),
			noComments(),
		)

		docs, err := swagger.Build(context.Background(), services, api)
		require.NoError(t, err)
		require.Equal(t, []string{"v1", "v2"}, docs.Names())

		v1, ok := docs.Get("v1")
		require.True(t, ok)
		require.Equal(t, "1", v1.Info.Version)
		require.Equal(t, "Sample API", *v1.Info.Description)
		require.Len(t, v1.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues, 1)
		require.Nil(t, v1.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues["get"].Deprecated)

		v2, ok := docs.Get("v2")
		require.True(t, ok)
		require.Equal(t, "2", v2.Info.Version)
		require.Equal(t, "Sample API This API version has been deprecated.", *v2.Info.Description)
		require.Len(t, v2.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues, 2)
		require.True(t, *v2.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues["get"].Deprecated)
	})
}

func TestAddVersionedDocumentation_equivalentVersions(t *testing.T) {
	t.Run("will document an operation under its declared version", func(t *testing.T) {
		t.Run("if the operation spells the version differently", func(t *testing.T) {
			api := rest.NewApi(
				"Demo",
				"1.0.0",
				rest.ApiVersion("1"),
				rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets(), rest.Versions("1.0")),
			)
			services := AddVersionedDocumentation(
				swagger.NewServices().AddApiVersioning(api),
				sampleInfo(),
				noComments(),
			)

			docs, err := swagger.Build(context.Background(), services, api)
			require.NoError(t, err)
			require.Equal(t, []string{"v1"}, docs.Names())

			v1, _ := docs.Get("v1")
			require.Contains(t, v1.Paths.MapOfPathItemValues, "/pets")
		})
	})
}

func TestAddDocumentation(t *testing.T) {
	unversioned := func() *rest.Api {
		return rest.NewApi(
			"Demo",
			"1.0.0",
			rest.Handle(http.MethodGet, rest.BasePath("/pets"), listPets()),
		)
	}

	t.Run("will register exactly one document named v1", func(t *testing.T) {
		api := unversioned()
		services := AddDocumentation(swagger.NewServices(), sampleInfo(), noComments())

		docs, err := swagger.Build(context.Background(), services, api)
		require.NoError(t, err)
		require.Equal(t, []string{"v1"}, docs.Names())

		v1, _ := docs.Get("v1")
		require.Equal(t, "Demo", v1.Info.Title)
		require.Equal(t, "Sample API", *v1.Info.Description)
		require.Contains(t, v1.Paths.MapOfPathItemValues, "/pets")
	})

	t.Run("will use the given group name", func(t *testing.T) {
		services := AddDocumentation(swagger.NewServices(), sampleInfo(), noComments(), GroupName("public"))

		opts, err := services.Options()
		require.NoError(t, err)

		docs := opts.Documents()
		require.Len(t, docs, 1)
		require.Equal(t, "public", docs[0].Name)
	})

	t.Run("will not need a version provider", func(t *testing.T) {
		_, err := AddDocumentation(swagger.NewServices(), sampleInfo(), noComments()).Options()
		require.NoError(t, err)
	})

	t.Run("will describe parameters in camel case", func(t *testing.T) {
		api := rest.NewApi(
			"Demo",
			"1.0.0",
			rest.Handle(
				http.MethodGet,
				rest.BasePath("/pets"),
				listPets(),
				rest.QueryParam("page_size", rest.DefaultValue(25)),
			),
		)
		services := AddDocumentation(swagger.NewServices(), sampleInfo(), noComments())

		docs, err := swagger.Build(context.Background(), services, api)
		require.NoError(t, err)

		v1, _ := docs.Get("v1")
		params := v1.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues["get"].Parameters
		require.Len(t, params, 1)
		require.Equal(t, "pageSize", params[0].Parameter.Name)
		require.EqualValues(t, 25, *params[0].Parameter.Schema.Schema.Default)
	})

	t.Run("will apply operation comments", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		err := afero.WriteFile(fs, "/app/pets.comments.yaml", []byte(`operations:
  GET /pets:
    summary: List every pet
`), 0o644)
		require.NoError(t, err)
		err = afero.WriteFile(fs, "/app/ignored.yaml", []byte(`operations:
  GET /pets:
    description: never read
`), 0o644)
		require.NoError(t, err)

		services := AddDocumentation(swagger.NewServices(), sampleInfo(), Comments(fs, "/app"))

		opts, err := services.Options()
		require.NoError(t, err)
		require.Equal(t, []string{"/app/pets.comments.yaml"}, opts.CommentFiles())

		docs, err := swagger.Build(context.Background(), services, unversioned())
		require.NoError(t, err)

		v1, _ := docs.Get("v1")
		op := v1.Paths.MapOfPathItemValues["/pets"].MapOfOperationValues["get"]
		require.Equal(t, "List every pet", *op.Summary)
		require.Nil(t, op.Description)
	})

	t.Run("will let configure add document rules", func(t *testing.T) {
		services := AddDocumentation(
			swagger.NewServices(),
			sampleInfo(),
			noComments(),
			Configure(func(g *swagger.GenOptions) {
				g.DocumentRule(XLogo("https://example.com/logo.png", "Demo"))
			}),
		)

		docs, err := swagger.Build(context.Background(), services, unversioned())
		require.NoError(t, err)

		v1, _ := docs.Get("v1")
		require.Equal(t, map[string]any{
			"url":     "https://example.com/logo.png",
			"altText": "Demo",
		}, v1.Info.MapOfAnything[LogoExtension])
	})
}
