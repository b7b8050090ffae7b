// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// OperationComment documents one operation. Comment files map
// "METHOD /path" keys to an OperationComment:
//
//	operations:
//	  GET /pets/{id}:
//	    summary: Find a pet
//	    parameters:
//	      id: Identifier of the pet
//	    responses:
//	      "404": No pet exists with the given id
type OperationComment struct {
	Summary     string            `yaml:"summary"`
	Description string            `yaml:"description"`
	Parameters  map[string]string `yaml:"parameters"`
	Responses   map[string]string `yaml:"responses"`
}

type commentFile struct {
	Operations map[string]OperationComment `yaml:"operations"`
}

// Comments are operation comments indexed by "METHOD /path".
type Comments map[string]OperationComment

func commentKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// ReadComments parses the comment file at path. Later files win when the
// same operation is documented more than once.
func ReadComments(fs afero.Fs, paths ...string) (Comments, error) {
	comments := make(Comments)
	for _, path := range paths {
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, err
		}

		var f commentFile
		err = yaml.Unmarshal(b, &f)
		if err != nil {
			return nil, fmt.Errorf("swagger: invalid comment file %s: %w", path, err)
		}

		for key, c := range f.Operations {
			method, p, ok := strings.Cut(strings.TrimSpace(key), " ")
			if !ok {
				return nil, fmt.Errorf("swagger: invalid operation key %q in %s", key, path)
			}
			comments[commentKey(method, strings.TrimSpace(p))] = c
		}
	}
	return comments, nil
}

func empty(s *string) bool {
	return s == nil || *s == ""
}

// Apply fills the empty summary, description, parameter and response
// descriptions of op. Text already present on op is never replaced.
func (c Comments) Apply(method, path string, op *openapi3.Operation) {
	comment, ok := c[commentKey(method, path)]
	if !ok {
		return
	}

	if empty(op.Summary) && comment.Summary != "" {
		op.Summary = ptr.Ref(comment.Summary)
	}
	if empty(op.Description) && comment.Description != "" {
		op.Description = ptr.Ref(comment.Description)
	}

	for _, p := range op.Parameters {
		if p.Parameter == nil || !empty(p.Parameter.Description) {
			continue
		}
		desc, ok := comment.Parameters[p.Parameter.Name]
		if !ok {
			continue
		}
		p.Parameter.Description = ptr.Ref(desc)
	}

	for code, desc := range comment.Responses {
		resp, ok := op.Responses.MapOfResponseOrRefValues[code]
		if !ok || resp.Response == nil || resp.Response.Description != "" {
			continue
		}
		resp.Response.Description = desc
	}
}
