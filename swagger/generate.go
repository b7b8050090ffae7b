// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/z5labs/apidocs"
	"github.com/z5labs/apidocs/concurrent"

	"github.com/stoewer/go-strcase"
	"github.com/swaggest/openapi-go/openapi3"
	"gopkg.in/yaml.v3"
)

// OpenAPIVersion is the OpenAPI version of every generated document.
const OpenAPIVersion = "3.0.3"

// ErrUnknownDocument is returned when a document name was never registered.
var ErrUnknownDocument = errors.New("swagger: unknown document")

// Format is a serialization format of a generated document.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

type cacheKey struct {
	name   string
	format Format
}

// Documents are the generated documents of an application.
type Documents struct {
	names []string
	specs map[string]*openapi3.Spec
	cache *concurrent.Cache[cacheKey, []byte]
}

// Names returns the document names in registration order.
func (d *Documents) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Get returns the document registered under name. It must not be modified.
func (d *Documents) Get(name string) (*openapi3.Spec, bool) {
	spec, ok := d.specs[name]
	return spec, ok
}

// Marshal serializes the document registered under name. The result is
// computed once per document and format.
func (d *Documents) Marshal(name string, format Format) ([]byte, error) {
	spec, ok := d.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}

	return d.cache.GetOr(cacheKey{name: name, format: format}, func() ([]byte, error) {
		switch format {
		case JSON:
			return json.Marshal(spec)
		case YAML:
			return marshalYAML(spec)
		default:
			return nil, fmt.Errorf("swagger: unsupported format %q", format)
		}
	})
}

func marshalYAML(spec *openapi3.Spec) ([]byte, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	err = yaml.Unmarshal(b, &node)
	if err != nil {
		return nil, err
	}
	blockStyle(&node)

	return yaml.Marshal(&node)
}

// blockStyle drops the flow style inherited from the JSON source.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Build generates every document registered with services from the
// operations listed by provider.
func Build(ctx context.Context, services *Services, provider ApiDescriptionProvider) (*Documents, error) {
	log := apidocs.Logger("github.com/z5labs/apidocs/swagger")

	opts, err := services.Options()
	if err != nil {
		return nil, err
	}

	comments, err := loadComments(opts)
	if err != nil {
		return nil, err
	}

	if pb, ok := provider.(PathBaseProvider); ok && len(opts.servers) == 0 && pb.PathBase() != "" {
		opts.Server(pb.PathBase())
	}

	descs := provider.ApiDescriptions()
	docs := &Documents{
		specs: make(map[string]*openapi3.Spec, len(opts.docs)),
		cache: concurrent.NewCache[cacheKey, []byte](),
	}
	for _, doc := range opts.docs {
		spec, err := generate(opts, comments, doc, descs)
		if err != nil {
			return nil, err
		}

		docs.names = append(docs.names, doc.Name)
		docs.specs[doc.Name] = spec

		log.InfoContext(
			ctx,
			"generated api document",
			slog.String("document", doc.Name),
			slog.String("title", spec.Info.Title),
			slog.String("version", spec.Info.Version),
			slog.Int("paths", len(spec.Paths.MapOfPathItemValues)),
		)
	}
	return docs, nil
}

func loadComments(opts *GenOptions) (Comments, error) {
	comments := make(Comments)
	for _, src := range opts.comments {
		cs, err := ReadComments(src.fs, src.path)
		if err != nil {
			return nil, err
		}
		for k, v := range cs {
			comments[k] = v
		}
	}
	return comments, nil
}

func generate(opts *GenOptions, comments Comments, doc Document, descs []ApiDescription) (*openapi3.Spec, error) {
	spec := &openapi3.Spec{
		Openapi: OpenAPIVersion,
		Info:    doc.Info.openapi(),
		Servers: slices.Clone(opts.servers),
	}

	var included []ApiDescription
	for _, d := range descs {
		if !opts.includes(doc.Name, d) {
			continue
		}
		included = append(included, d)

		op, err := cloneOperation(d.Operation)
		if err != nil {
			return nil, fmt.Errorf("swagger: failed to copy operation %s %s: %w", d.Method, d.Path, err)
		}

		comments.Apply(d.Method, d.Path, &op)
		if opts.camelCase {
			camelCaseParameters(&op)
		}

		ctx := OperationContext{
			DocumentName: doc.Name,
			Description:  d,
		}
		for _, rule := range opts.operationRules {
			rule.Apply(&op, ctx)
		}

		addOperation(spec, d.Method, d.Path, op)
		for name, scheme := range d.SecuritySchemes {
			spec.ComponentsEns().SecuritySchemesEns().WithMapOfSecuritySchemeOrRefValuesItem(name, scheme)
		}
	}

	ctx := DocumentContext{
		DocumentName: doc.Name,
		Descriptions: included,
	}
	for _, rule := range opts.documentRules {
		rule.Apply(spec, ctx)
	}
	return spec, nil
}

func addOperation(spec *openapi3.Spec, method, path string, op openapi3.Operation) {
	if spec.Paths.MapOfPathItemValues == nil {
		spec.Paths.MapOfPathItemValues = make(map[string]openapi3.PathItem)
	}

	item := spec.Paths.MapOfPathItemValues[path]
	if item.MapOfOperationValues == nil {
		item.MapOfOperationValues = make(map[string]openapi3.Operation)
	}
	item.MapOfOperationValues[strings.ToLower(method)] = op
	spec.Paths.MapOfPathItemValues[path] = item
}

func camelCaseParameters(op *openapi3.Operation) {
	for _, p := range op.Parameters {
		if p.Parameter == nil {
			continue
		}
		switch p.Parameter.In {
		case openapi3.ParameterInQuery, openapi3.ParameterInCookie:
			p.Parameter.Name = strcase.LowerCamelCase(p.Parameter.Name)
		}
	}
}
