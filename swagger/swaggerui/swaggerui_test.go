// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swaggerui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func noRedirects(t *testing.T) *http.Client {
	t.Helper()

	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestUse(t *testing.T) {
	t.Run("will render every endpoint in order", func(t *testing.T) {
		r := chi.NewRouter()
		Use(r, func(o *Options) {
			o.SwaggerEndpoint("./swagger/v1/swagger.json", "V1")
			o.SwaggerEndpoint("./swagger/v2/swagger.json", "V2")
			o.DocumentTitle = "Demo"
		})

		srv := httptest.NewServer(r)
		defer srv.Close()

		resp, err := http.Get(srv.URL + "/swagger")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		page := string(b)
		require.Contains(t, page, "<title>Demo</title>")
		require.Contains(t, page, `{"url":"./swagger/v1/swagger.json","name":"V1"},{"url":"./swagger/v2/swagger.json","name":"V2"}`)
	})

	t.Run("will redirect to the page with a relative location", func(t *testing.T) {
		r := chi.NewRouter()
		Use(r, nil)

		srv := httptest.NewServer(r)
		defer srv.Close()

		for _, path := range []string{"/swagger/", "/swagger/index.html"} {
			t.Run(path, func(t *testing.T) {
				resp, err := noRedirects(t).Get(srv.URL + path)
				require.NoError(t, err)
				defer resp.Body.Close()

				require.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
				require.Equal(t, "../swagger", resp.Header.Get("Location"))
			})
		}
	})

	t.Run("will serve at the root if the prefix is empty", func(t *testing.T) {
		r := chi.NewRouter()
		Use(r, func(o *Options) {
			o.RoutePrefix = ""
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("will apply configure after the defaults", func(t *testing.T) {
		var seen Options
		r := chi.NewRouter()
		Use(r, func(o *Options) {
			seen = *o
			o.DocExpansion("none")
			o.EnableFilter()
		})

		require.Equal(t, "swagger", seen.RoutePrefix)
		require.Equal(t, "list", seen.ConfigObject.DocExpansion)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger", nil))
		require.Contains(t, w.Body.String(), `"docExpansion":"none"`)
		require.Contains(t, w.Body.String(), `"filter":true`)
	})
}
