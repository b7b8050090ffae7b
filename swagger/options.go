// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"slices"

	"github.com/spf13/afero"
	"github.com/swaggest/openapi-go/openapi3"
)

// Document is a document registration: the group name it is served under
// and the info it is generated with.
type Document struct {
	Name string
	Info Info
}

type commentSource struct {
	fs   afero.Fs
	path string
}

// GenOptions is the document generation configuration assembled by the
// setup steps registered with [Services.AddSwaggerGen].
type GenOptions struct {
	docs           []Document
	operationRules []OperationRule
	documentRules  []DocumentRule
	comments       []commentSource
	camelCase      bool
	servers        []openapi3.Server
	include        func(string, ApiDescription) bool
}

// SwaggerDoc registers a document named name. Registering the same name
// twice replaces the earlier info but keeps its position.
func (o *GenOptions) SwaggerDoc(name string, info Info) {
	i := slices.IndexFunc(o.docs, func(d Document) bool {
		return d.Name == name
	})
	if i >= 0 {
		o.docs[i].Info = info
		return
	}
	o.docs = append(o.docs, Document{Name: name, Info: info})
}

// Documents returns the registered documents in registration order.
func (o *GenOptions) Documents() []Document {
	return slices.Clone(o.docs)
}

// OperationRule appends r to the operation rules. Rules run in the
// order they were added.
func (o *GenOptions) OperationRule(r OperationRule) {
	o.operationRules = append(o.operationRules, r)
}

// OperationRules returns the registered operation rules in order.
func (o *GenOptions) OperationRules() []OperationRule {
	return slices.Clone(o.operationRules)
}

// DocumentRule appends r to the document rules. They run after every
// operation rule.
func (o *GenOptions) DocumentRule(r DocumentRule) {
	o.documentRules = append(o.documentRules, r)
}

// DocumentRules returns the registered document rules in order.
func (o *GenOptions) DocumentRules() []DocumentRule {
	return slices.Clone(o.documentRules)
}

// IncludeComments reads operation comments from the YAML file at path.
func (o *GenOptions) IncludeComments(fs afero.Fs, path string) {
	o.comments = append(o.comments, commentSource{fs: fs, path: path})
}

// CommentFiles returns the paths of every registered comment file.
func (o *GenOptions) CommentFiles() []string {
	paths := make([]string, len(o.comments))
	for i, c := range o.comments {
		paths[i] = c.path
	}
	return paths
}

// DescribeAllParametersInCamelCase renames query and cookie parameters
// to camelCase.
func (o *GenOptions) DescribeAllParametersInCamelCase() {
	o.camelCase = true
}

// Server lists url as a server of every document, e.g. "/v1/sample".
func (o *GenOptions) Server(url string) {
	o.servers = append(o.servers, openapi3.Server{URL: url})
}

// Servers returns the servers added with [GenOptions.Server].
func (o *GenOptions) Servers() []openapi3.Server {
	return slices.Clone(o.servers)
}

// DocInclusionPredicate decides which descriptions are part of which
// document. By default a description is part of the document matching
// its group name and unversioned descriptions are part of every document.
func (o *GenOptions) DocInclusionPredicate(f func(docName string, d ApiDescription) bool) {
	o.include = f
}

func (o *GenOptions) includes(docName string, d ApiDescription) bool {
	if o.include != nil {
		return o.include(docName, d)
	}
	return d.GroupName == "" || d.GroupName == docName
}
