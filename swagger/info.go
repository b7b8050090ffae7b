// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package swagger

import (
	"maps"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
)

// Contact is the contact information of the documented API.
type Contact struct {
	Name  string `yaml:"name" json:"name"`
	URL   string `yaml:"url" json:"url"`
	Email string `yaml:"email" json:"email"`
}

// License is the license of the documented API.
type License struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Info is the descriptive metadata of a single document.
type Info struct {
	Title          string
	Version        string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License

	// Extensions are rendered as "x-" properties of the info object.
	Extensions map[string]any
}

// Clone returns a copy of info which shares no mutable state with it.
func (info Info) Clone() Info {
	if info.Contact != nil {
		c := *info.Contact
		info.Contact = &c
	}
	if info.License != nil {
		l := *info.License
		info.License = &l
	}
	if info.Extensions != nil {
		info.Extensions = cloneExtensions(info.Extensions)
	}
	return info
}

func cloneExtensions(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneExtensions(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.Ref(s)
}

func (info Info) openapi() openapi3.Info {
	out := openapi3.Info{
		Title:          info.Title,
		Version:        info.Version,
		Description:    optional(info.Description),
		TermsOfService: optional(info.TermsOfService),
	}
	if info.Contact != nil {
		out.Contact = &openapi3.Contact{
			Name:  optional(info.Contact.Name),
			URL:   optional(info.Contact.URL),
			Email: optional(info.Contact.Email),
		}
	}
	if info.License != nil {
		out.License = &openapi3.License{
			Name: info.License.Name,
			URL:  optional(info.License.URL),
		}
	}
	if len(info.Extensions) > 0 {
		out.MapOfAnything = maps.Clone(info.Extensions)
	}
	return out
}
