// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/z5labs/apidocs/health"
	"github.com/z5labs/apidocs/swagger"

	"github.com/stretchr/testify/require"
	"github.com/swaggest/openapi-go/openapi3"
)

type pet struct {
	Name string `json:"name"`
}

func listPets() Handler {
	return ProduceJson(func(ctx context.Context) (*[]pet, error) {
		return &[]pet{{Name: "rex"}}, nil
	})
}

func TestNewApi(t *testing.T) {
	t.Run("will serve registered operations", func(t *testing.T) {
		api := NewApi("Pets", "1.0.0", Handle(http.MethodGet, BasePath("/pets"), listPets()))

		w := httptest.NewRecorder()
		api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `[{"name":"rex"}]`, w.Body.String())
	})

	t.Run("will serve health endpoints", func(t *testing.T) {
		t.Run("if no monitors are configured", func(t *testing.T) {
			api := NewApi("Pets", "1.0.0")

			for _, path := range []string{"/health/liveness", "/health/readiness"} {
				w := httptest.NewRecorder()
				api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				require.Equal(t, http.StatusOK, w.Code, path)
			}
		})

		t.Run("if the readiness monitor is unhealthy", func(t *testing.T) {
			api := NewApi("Pets", "1.0.0", Readiness(&health.Binary{}))

			w := httptest.NewRecorder()
			api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	})

	t.Run("will mount every route below the path base", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			PathBase("/v1/sample"),
			Handle(http.MethodGet, BasePath("/pets"), listPets()),
		)
		api.Router().Get("/extra", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "extra")
		})

		srv := httptest.NewServer(api)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/v1/sample/pets")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, err = http.Get(srv.URL + "/v1/sample/extra")
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, "extra", string(b))

		resp, err = http.Get(srv.URL + "/pets")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("will use the custom not found handler", func(t *testing.T) {
		api := NewApi("Pets", "1.0.0", NotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})))

		w := httptest.NewRecorder()
		api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Equal(t, http.StatusTeapot, w.Code)
	})
}

func TestApi_ApiVersionDescriptions(t *testing.T) {
	t.Run("will return declared and referenced versions in order", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			ApiVersion("2"),
			ApiVersion("1", Deprecated()),
			Handle(http.MethodGet, BasePath("/pets"), listPets(), Versions("1", "3")),
		)

		descs := api.ApiVersionDescriptions()
		require.Len(t, descs, 3)

		require.Equal(t, "v1", descs[0].GroupName)
		require.Equal(t, "1", descs[0].Version.String())
		require.True(t, descs[0].Deprecated)

		require.Equal(t, "v2", descs[1].GroupName)
		require.False(t, descs[1].Deprecated)

		require.Equal(t, "v3", descs[2].GroupName)
		require.False(t, descs[2].Deprecated)
	})

	t.Run("will include the default version", func(t *testing.T) {
		t.Run("if an operation has no versions", func(t *testing.T) {
			api := NewApi(
				"Pets",
				"1.0.0",
				DefaultApiVersion("1"),
				Handle(http.MethodGet, BasePath("/pets"), listPets()),
			)

			descs := api.ApiVersionDescriptions()
			require.Len(t, descs, 1)
			require.Equal(t, "v1", descs[0].GroupName)
		})
	})

	t.Run("will return nothing", func(t *testing.T) {
		t.Run("if the api is unversioned", func(t *testing.T) {
			api := NewApi("Pets", "1.0.0", Handle(http.MethodGet, BasePath("/pets"), listPets()))

			require.Empty(t, api.ApiVersionDescriptions())
		})
	})
}

func TestApi_ApiDescriptions(t *testing.T) {
	t.Run("will describe an operation once per version", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			ApiVersion("1", Deprecated()),
			Handle(
				http.MethodGet,
				BasePath("/pets").Param("id"),
				listPets(),
				Versions("1", "2"),
				Summary("Get a pet"),
			),
		)

		descs := api.ApiDescriptions()
		require.Len(t, descs, 2)

		require.Equal(t, "v1", descs[0].GroupName)
		require.True(t, descs[0].Deprecated)
		require.Equal(t, "v2", descs[1].GroupName)
		require.False(t, descs[1].Deprecated)

		for _, d := range descs {
			require.Equal(t, http.MethodGet, d.Method)
			require.Equal(t, "/pets/{id}", d.Path)
			require.Equal(t, "Get a pet", *d.Operation.Summary)

			require.Len(t, d.Operation.Parameters, 1)
			p := d.Operation.Parameters[0].Parameter
			require.Equal(t, "id", p.Name)
			require.True(t, *p.Required)
			require.NotNil(t, p.Schema)
		}
	})

	t.Run("will use the group of the declared version", func(t *testing.T) {
		t.Run("if the operation spells the version differently", func(t *testing.T) {
			api := NewApi(
				"Pets",
				"1.0.0",
				ApiVersion("1", Deprecated()),
				ApiVersion("v3"),
				Handle(http.MethodGet, BasePath("/pets"), listPets(), Versions("1.0", "3")),
			)

			groups := make([]string, 0, 2)
			for _, d := range api.ApiVersionDescriptions() {
				groups = append(groups, d.GroupName)
			}
			require.Equal(t, []string{"v1", "v3"}, groups)

			descs := api.ApiDescriptions()
			require.Len(t, descs, 2)
			require.Equal(t, "v1", descs[0].GroupName)
			require.True(t, descs[0].Deprecated)
			require.Equal(t, "v3", descs[1].GroupName)
			require.False(t, descs[1].Deprecated)
		})
	})

	t.Run("will use an empty group name", func(t *testing.T) {
		t.Run("if the api is unversioned", func(t *testing.T) {
			api := NewApi("Pets", "1.0.0", Handle(http.MethodGet, BasePath("/pets"), listPets()))

			descs := api.ApiDescriptions()
			require.Len(t, descs, 1)
			require.Empty(t, descs[0].GroupName)
		})
	})

	t.Run("will keep paths free of the path base", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			PathBase("/v1/sample"),
			Handle(http.MethodGet, BasePath("/pets"), listPets()),
		)

		descs := api.ApiDescriptions()
		require.Len(t, descs, 1)
		require.Equal(t, "/pets", descs[0].Path)
	})

	t.Run("will record controller options as declaring metadata", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			Controller(
				"Pets",
				[]OperationOption{Authorize("admin")},
				Handle(http.MethodGet, BasePath("/pets"), listPets()),
				Handle(http.MethodDelete, BasePath("/pets").Param("id"), listPets(), Tags("Admin")),
			),
			Handle(http.MethodGet, BasePath("/status"), listPets()),
		)

		descs := api.ApiDescriptions()
		require.Len(t, descs, 3)

		require.Equal(t, []any{AuthorizeMetadata{Policies: []string{"admin"}}}, descs[0].DeclaringMetadata)
		require.Empty(t, descs[0].Metadata)
		require.Equal(t, []string{"Pets"}, descs[0].Operation.Tags)

		require.Equal(t, []string{"Admin"}, descs[1].Operation.Tags)

		require.Empty(t, descs[2].DeclaringMetadata)
		require.Empty(t, descs[2].Operation.Tags)
	})

	t.Run("will record operation metadata", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			Handle(
				http.MethodGet,
				BasePath("/pets"),
				listPets(),
				Authorize(),
				ResponseHeader("X-Total-Count", "integer", "number of pets", http.StatusOK),
				QueryParam("limit", DefaultValue(10)),
			),
		)

		descs := api.ApiDescriptions()
		require.Len(t, descs, 1)

		require.Len(t, swagger.MetadataOf[AuthorizeMetadata](descs[0]), 1)
		require.Equal(t, []swagger.ResponseHeader{{
			StatusCodes: []string{"200"},
			Name:        "X-Total-Count",
			Type:        "integer",
			Description: "number of pets",
		}}, swagger.MetadataOf[swagger.ResponseHeader](descs[0]))
		require.Equal(t, []swagger.ParameterDefault{{
			Name:  "limit",
			In:    "query",
			Value: 10,
		}}, swagger.MetadataOf[swagger.ParameterDefault](descs[0]))
	})

	t.Run("will describe security schemes", func(t *testing.T) {
		api := NewApi(
			"Pets",
			"1.0.0",
			Handle(
				http.MethodGet,
				BasePath("/pets"),
				listPets(),
				Header("X-API-Key", Required(), APIKey("api-key")),
			),
		)

		descs := api.ApiDescriptions()
		require.Len(t, descs, 1)
		require.Contains(t, descs[0].SecuritySchemes, "api-key")
		require.Equal(t, []map[string][]string{{"api-key": {}}}, descs[0].Operation.Security)
	})

	t.Run("will default the responses", func(t *testing.T) {
		t.Run("if the handler describes none", func(t *testing.T) {
			api := NewApi("Pets", "1.0.0", Handle(http.MethodGet, BasePath("/ping"), noResponses{}))

			descs := api.ApiDescriptions()
			require.Len(t, descs, 1)
			require.Contains(t, descs[0].Operation.Responses.MapOfResponseOrRefValues, "200")
			require.Nil(t, descs[0].Operation.RequestBody)
		})
	})
}

type noResponses struct{}

func (noResponses) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

func (noResponses) RequestBody() openapi3.RequestBodyOrRef {
	return openapi3.RequestBodyOrRef{}
}

func (noResponses) Responses() openapi3.Responses {
	return openapi3.Responses{}
}
