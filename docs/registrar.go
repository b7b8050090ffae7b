// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package docs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/z5labs/apidocs/swagger"
	"github.com/z5labs/apidocs/version"

	"github.com/spf13/afero"
	"golang.org/x/text/language"
)

// DefaultGroupName is the document name used by [AddDocumentation] and
// [UseDocumentation] unless told otherwise.
const DefaultGroupName = "v1"

// DeprecationNotice is appended to the description of deprecated versions.
const DeprecationNotice = "This API version has been deprecated."

// CommentFilePattern matches the operation comment files picked up next to
// the executable.
const CommentFilePattern = "*.comments.yaml"

// DocumentationOptions configure document registration.
type DocumentationOptions struct {
	groupName  string
	configure  []func(*swagger.GenOptions)
	commentsFS afero.Fs
	commentDir string
	auth       AuthRequirement
	defaults   DefaultValueSource
	locale     language.Tag
}

// DocumentationOption sets a value on [DocumentationOptions].
type DocumentationOption interface {
	ApplyDocumentationOption(*DocumentationOptions)
}

type documentationOptionFunc func(*DocumentationOptions)

func (f documentationOptionFunc) ApplyDocumentationOption(do *DocumentationOptions) {
	f(do)
}

// Configure runs f after every default has been applied to the generation
// options. Several Configure steps run in the order given.
func Configure(f func(*swagger.GenOptions)) DocumentationOption {
	return documentationOptionFunc(func(do *DocumentationOptions) {
		do.configure = append(do.configure, f)
	})
}

// Comments reads operation comment files matching [CommentFilePattern]
// from dir instead of the directory of the running executable.
func Comments(fs afero.Fs, dir string) DocumentationOption {
	return documentationOptionFunc(func(do *DocumentationOptions) {
		do.commentsFS = fs
		do.commentDir = dir
	})
}

// WithAuthRequirement replaces [MetadataAuthRequirement] as the source of
// truth for whether an operation requires authentication.
func WithAuthRequirement(req AuthRequirement) DocumentationOption {
	return documentationOptionFunc(func(do *DocumentationOptions) {
		do.auth = req
	})
}

// WithDefaultValues replaces [MetadataDefaultValues] as the source of
// parameter default values.
func WithDefaultValues(src DefaultValueSource) DocumentationOption {
	return documentationOptionFunc(func(do *DocumentationOptions) {
		do.defaults = src
	})
}

// Locale selects the language of the 401 and 403 response descriptions.
// It defaults to Brazilian Portuguese.
func Locale(tag language.Tag) DocumentationOption {
	return documentationOptionFunc(func(do *DocumentationOptions) {
		do.locale = tag
	})
}

func newDocumentationOptions(opts []DocumentationOption) *DocumentationOptions {
	do := &DocumentationOptions{
		groupName: DefaultGroupName,
		auth:      MetadataAuthRequirement{},
		defaults:  MetadataDefaultValues{},
		locale:    language.BrazilianPortuguese,
	}
	for _, opt := range opts {
		opt.ApplyDocumentationOption(do)
	}
	return do
}

func (do *DocumentationOptions) apply(g *swagger.GenOptions) error {
	g.DescribeAllParametersInCamelCase()

	err := do.includeComments(g)
	if err != nil {
		return err
	}

	g.OperationRule(ResponseHeaders())
	g.OperationRule(AuthResponses(do.auth, do.locale))
	g.OperationRule(DefaultValues(do.defaults))

	for _, f := range do.configure {
		f(g)
	}
	return nil
}

func (do *DocumentationOptions) includeComments(g *swagger.GenOptions) error {
	fs, dir := do.commentsFS, do.commentDir
	if fs == nil {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("docs: failed to locate comment files: %w", err)
		}
		fs, dir = afero.NewOsFs(), filepath.Dir(exe)
	}

	paths, err := afero.Glob(fs, filepath.Join(dir, CommentFilePattern))
	if err != nil {
		return fmt.Errorf("docs: failed to list comment files: %w", err)
	}
	for _, path := range paths {
		g.IncludeComments(fs, path)
	}
	return nil
}

// InfoForVersion derives the info of one API version from template.
// The version is set from desc and deprecated versions get
// [DeprecationNotice] appended to their description. template is never
// modified.
func InfoForVersion(template swagger.Info, desc version.Descriptor) swagger.Info {
	info := template.Clone()
	info.Version = desc.Version.String()
	if !desc.Deprecated {
		return info
	}

	if info.Description == "" {
		info.Description = DeprecationNotice
		return info
	}
	info.Description += " " + DeprecationNotice
	return info
}

// AddVersionedDocumentation registers one document per API version known
// to the [version.Provider] registered on s. The documents are named
// after the version group names and described by [InfoForVersion].
//
// The provider is resolved when the generation options are built, so a
// missing provider surfaces as [swagger.ErrNoVersionProvider] from
// [swagger.Services.Options] and [swagger.Build].
func AddVersionedDocumentation(s *swagger.Services, info swagger.Info, opts ...DocumentationOption) *swagger.Services {
	do := newDocumentationOptions(opts)

	return s.AddSwaggerGen(func(g *swagger.GenOptions) error {
		provider, err := s.VersionProvider()
		if err != nil {
			return err
		}

		for _, desc := range provider.ApiVersionDescriptions() {
			g.SwaggerDoc(desc.GroupName, InfoForVersion(info, desc))
		}
		return do.apply(g)
	})
}

// AddDocumentation registers a single document named [DefaultGroupName],
// or the name given with [GroupName], described by info as is.
func AddDocumentation(s *swagger.Services, info swagger.Info, opts ...DocumentationOption) *swagger.Services {
	do := newDocumentationOptions(opts)

	return s.AddSwaggerGen(func(g *swagger.GenOptions) error {
		g.SwaggerDoc(do.groupName, info.Clone())
		return do.apply(g)
	})
}
