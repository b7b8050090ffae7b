// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package swaggerui serves the interactive Swagger UI explorer.
package swaggerui

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/z5labs/apidocs"

	"github.com/go-chi/chi/v5"
)

// DefaultAssetsURL is the CDN the Swagger UI scripts and styles are loaded from.
const DefaultAssetsURL = "https://unpkg.com/swagger-ui-dist@5"

//go:embed index.html.tmpl
var indexTmpl string

var index = template.Must(template.New("swaggerui").Parse(indexTmpl))

// Endpoint is a document listed in the explorer's document selector.
type Endpoint struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ConfigObject holds the SwaggerUIBundle settings.
type ConfigObject struct {
	Urls                     []Endpoint `json:"urls,omitempty"`
	DeepLinking              bool       `json:"deepLinking"`
	DisplayOperationID       bool       `json:"displayOperationId"`
	DefaultModelsExpandDepth int        `json:"defaultModelsExpandDepth"`
	DocExpansion             string     `json:"docExpansion"`
	Filter                   bool       `json:"filter"`
	DisplayRequestDuration   bool       `json:"displayRequestDuration"`
	ShowExtensions           bool       `json:"showExtensions"`
	ValidatorURL             *string    `json:"validatorUrl"`
}

// Options configure the explorer page.
type Options struct {
	// RoutePrefix is the path segment the page is served at.
	// An empty prefix serves the page at the root.
	RoutePrefix   string
	DocumentTitle string
	AssetsURL     string
	ConfigObject  ConfigObject
}

// DefaultOptions returns the options [Use] starts from.
func DefaultOptions() Options {
	return Options{
		RoutePrefix:   "swagger",
		DocumentTitle: "Swagger UI",
		AssetsURL:     DefaultAssetsURL,
		ConfigObject: ConfigObject{
			DeepLinking:              true,
			DefaultModelsExpandDepth: 1,
			DocExpansion:             "list",
		},
	}
}

// SwaggerEndpoint lists the document served at url under name.
func (o *Options) SwaggerEndpoint(url, name string) {
	o.ConfigObject.Urls = append(o.ConfigObject.Urls, Endpoint{URL: url, Name: name})
}

// DocExpansion is one of "list", "full" or "none".
func (o *Options) DocExpansion(mode string) {
	o.ConfigObject.DocExpansion = mode
}

// DisplayRequestDuration shows how long "try it out" requests took.
func (o *Options) DisplayRequestDuration() {
	o.ConfigObject.DisplayRequestDuration = true
}

// EnableFilter shows the tag filter box.
func (o *Options) EnableFilter() {
	o.ConfigObject.Filter = true
}

// DefaultModelsExpandDepth sets how deep models are expanded. -1 hides them.
func (o *Options) DefaultModelsExpandDepth(depth int) {
	o.ConfigObject.DefaultModelsExpandDepth = depth
}

// Handler renders the explorer page of opts.
func Handler(opts Options) http.Handler {
	log := apidocs.Logger("github.com/z5labs/apidocs/swagger/swaggerui")

	page, err := render(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			log.ErrorContext(r.Context(), "failed to render swagger ui", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(page); err != nil {
			log.ErrorContext(r.Context(), "failed to write swagger ui page", slog.Any("error", err))
		}
	})
}

func render(opts Options) ([]byte, error) {
	config, err := json.Marshal(opts.ConfigObject)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = index.Execute(&buf, struct {
		Title     string
		AssetsURL string
		Config    template.JS
	}{
		Title:     opts.DocumentTitle,
		AssetsURL: strings.TrimRight(opts.AssetsURL, "/"),
		Config:    template.JS(config),
	})
	return buf.Bytes(), err
}

// Use mounts the explorer on r. The page is served at "/{prefix}" and
// "/{prefix}/" as well as "/{prefix}/index.html" redirect to it, so
// endpoint URLs relative to the page resolve the same way behind any
// path base. configure runs after the defaults are applied.
func Use(r chi.Router, configure func(*Options)) {
	opts := DefaultOptions()
	if configure != nil {
		configure(&opts)
	}

	prefix := strings.Trim(opts.RoutePrefix, "/")
	h := Handler(opts)
	if prefix == "" {
		r.Method(http.MethodGet, "/", h)
		return
	}

	r.Method(http.MethodGet, "/"+prefix, h)

	back := redirect("../" + prefix)
	r.Method(http.MethodGet, "/"+prefix+"/", back)
	r.Method(http.MethodGet, "/"+prefix+"/index.html", back)
}

// redirect answers with a relative Location so it survives path bases.
func redirect(location string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusMovedPermanently)
	})
}
