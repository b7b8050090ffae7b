// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package redoc serves the read-only ReDoc reference viewer.
package redoc

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

// DefaultAssetsURL is the CDN the ReDoc bundle is loaded from.
const DefaultAssetsURL = "https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"

//go:embed index.html.tmpl
var indexTmpl string

var index = template.Must(template.New("redoc").Parse(indexTmpl))

// ConfigObject holds the ReDoc settings. Field names follow the ReDoc
// configuration keys.
type ConfigObject struct {
	HideDownloadButton      bool   `json:"hideDownloadButton,omitempty"`
	ExpandResponses         string `json:"expandResponses,omitempty"`
	RequiredPropsFirst      bool   `json:"requiredPropsFirst,omitempty"`
	PathInMiddlePanel       bool   `json:"pathInMiddlePanel,omitempty"`
	NativeScrollbars        bool   `json:"nativeScrollbars,omitempty"`
	SortPropsAlphabetically bool   `json:"sortPropsAlphabetically,omitempty"`
	HideHostname            bool   `json:"hideHostname,omitempty"`
	UntrustedSpec           bool   `json:"untrustedSpec,omitempty"`
	DisableSearch           bool   `json:"disableSearch,omitempty"`
	ScrollYOffset           int    `json:"scrollYOffset,omitempty"`
}

// Options configure the reference viewer page.
type Options struct {
	RoutePrefix   string
	DocumentTitle string
	SpecURL       string
	AssetsURL     string
	ConfigObject  ConfigObject
}

// DefaultOptions returns the options [Use] starts from.
func DefaultOptions() Options {
	return Options{
		RoutePrefix:   "api-docs",
		DocumentTitle: "API Docs",
		SpecURL:       "../swagger/v1/swagger.json",
		AssetsURL:     DefaultAssetsURL,
	}
}

// HideDownloadButton hides the "Download" button of the document.
func (o *Options) HideDownloadButton() { o.ConfigObject.HideDownloadButton = true }

// ExpandResponses expands the comma separated status codes by default,
// e.g. "200,201". "all" expands every response.
func (o *Options) ExpandResponses(codes string) { o.ConfigObject.ExpandResponses = codes }

// RequiredPropsFirst lists required properties before optional ones.
func (o *Options) RequiredPropsFirst() { o.ConfigObject.RequiredPropsFirst = true }

// PathInMiddlePanel shows the operation path in the middle panel.
func (o *Options) PathInMiddlePanel() { o.ConfigObject.PathInMiddlePanel = true }

// NativeScrollbars uses the browser scrollbars.
func (o *Options) NativeScrollbars() { o.ConfigObject.NativeScrollbars = true }

// SortPropsAlphabetically sorts properties by name.
func (o *Options) SortPropsAlphabetically() { o.ConfigObject.SortPropsAlphabetically = true }

// HideHostname hides the server host in operation paths.
func (o *Options) HideHostname() { o.ConfigObject.HideHostname = true }

// EnableUntrustedSpec sanitizes the document before rendering it.
func (o *Options) EnableUntrustedSpec() { o.ConfigObject.UntrustedSpec = true }

// DisableSearch hides the search box.
func (o *Options) DisableSearch() { o.ConfigObject.DisableSearch = true }

// Handler renders the reference viewer page of opts.
func Handler(opts Options) http.Handler {
	log := apidocs.Logger("github.com/z5labs/apidocs/swagger/redoc")

	page, err := render(opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			log.ErrorContext(r.Context(), "failed to render redoc", slog.Any("error", err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(page); err != nil {
			log.ErrorContext(r.Context(), "failed to write redoc page", slog.Any("error", err))
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
		SpecURL   string
		Config    template.JS
	}{
		Title:     opts.DocumentTitle,
		AssetsURL: opts.AssetsURL,
		SpecURL:   opts.SpecURL,
		Config:    template.JS(config),
	})
	return buf.Bytes(), err
}

// Use mounts the reference viewer on r at "/{prefix}/" and
// "/{prefix}/index.html". "/{prefix}" redirects to "{prefix}/" so the
// spec URL, which is relative to the page, resolves behind any path base.
// configure runs after the defaults are applied.
func Use(r chi.Router, configure func(*Options)) {
	opts := DefaultOptions()
	if configure != nil {
		configure(&opts)
	}

	prefix := strings.Trim(opts.RoutePrefix, "/")
	h := Handler(opts)
	if prefix == "" {
		r.Method(http.MethodGet, "/", h)
		r.Method(http.MethodGet, "/index.html", h)
		return
	}

	r.Method(http.MethodGet, "/"+prefix+"/", h)
	r.Method(http.MethodGet, "/"+prefix+"/index.html", h)
	r.Method(http.MethodGet, "/"+prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", prefix+"/")
		w.WriteHeader(http.StatusMovedPermanently)
	}))
}
